/*
 * batch.go, part of govsepr.
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package cli

import (
	"bufio"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rmera/govsepr/chemjson"
)

func newBatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "batch",
		Short: "Answer JSON requests read from stdin",
		Long: "Batch reads one JSON request per line, like {\"Input\":\"H2O\"}, and writes one\n" +
			"JSON result or error per line to stdout, in the same order.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := GetEnv(cmd)
			if err != nil {
				return err
			}
			return runBatch(cmd, env, bufio.NewReader(cmd.InOrStdin()), cmd.OutOrStdout())
		},
	}
}

func runBatch(cmd *cobra.Command, env *Env, in *bufio.Reader, out io.Writer) error {
	var n int
	for {
		req, err := chemjson.DecodeRequest(in)
		if err == io.EOF {
			break
		}
		if err != nil {
			env.Logger.Warn("bad request", zap.Error(err))
			if jerr := chemjson.EncodeError(out, "", err); jerr != nil {
				return jerr
			}
			continue
		}
		n++
		r, err := env.Predictor.Predict(cmd.Context(), req.Input)
		if err != nil {
			if cerr := cmd.Context().Err(); cerr != nil {
				return cerr
			}
			if jerr := chemjson.EncodeError(out, req.Input, err); jerr != nil {
				return jerr
			}
			continue
		}
		if jerr := chemjson.Encode(out, r); jerr != nil {
			return jerr
		}
	}
	env.Logger.Debug("batch done", zap.Int("requests", n))
	return nil
}
