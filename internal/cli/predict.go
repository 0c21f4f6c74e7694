/*
 * predict.go, part of govsepr.
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
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	chem "github.com/rmera/govsepr"
	"github.com/rmera/govsepr/chemjson"
	"github.com/rmera/govsepr/predict"
	"github.com/rmera/govsepr/xyz"
)

func newPredictCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "predict <input>...",
		Short: "Predict the structure of one or more formulas or names",
		Long: "Predict builds and positions each input and prints it in the output format.\n" +
			"Failed inputs are reported and the rest are still predicted.",
		Example: "  vsepr predict H2O \"SO4 2-\" 2-methylpropane\n  vsepr predict -o json XeF4",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := GetEnv(cmd)
			if err != nil {
				return err
			}
			var failed error
			for _, in := range args {
				r, err := env.Predictor.Predict(cmd.Context(), in)
				if err != nil {
					failed = multierr.Append(failed, fmt.Errorf("%s: %w", in, err))
					if werr := writeFailure(cmd.OutOrStdout(), cmd.ErrOrStderr(), env, in, err); werr != nil {
						return werr
					}
					continue
				}
				if err := writeResult(cmd.OutOrStdout(), env, r); err != nil {
					return err
				}
			}
			if failed != nil {
				return fmt.Errorf("%d of %d predictions failed: %w", len(multierr.Errors(failed)), len(args), failed)
			}
			return nil
		},
	}
}

// writeResult prints r in the configured output format.
func writeResult(out io.Writer, env *Env, r *predict.Result) error {
	switch env.Config.Output.Format {
	case "json":
		if jerr := chemjson.Encode(out, r); jerr != nil {
			return jerr
		}
		return nil
	case "xyz":
		vdw, _ := env.Config.Vdw()
		return xyz.Write(out, r.Structure, vdw, fmt.Sprintf("%s %s", r.Input, r.Formula))
	}
	if _, err := fmt.Fprintln(out, summary(r)); err != nil {
		return err
	}
	return chem.Report(out, r.Structure)
}

// writeFailure reports a failed prediction. In json mode the error goes to
// out, so a reading program gets one line per request.
func writeFailure(out, errOut io.Writer, env *Env, input string, err error) error {
	if env.Config.Output.Format == "json" {
		if jerr := chemjson.EncodeError(out, input, err); jerr != nil {
			return jerr
		}
		return nil
	}
	_, werr := fmt.Fprintf(errOut, "%s: %s (%s)\n", input, err.Error(), chem.KindOf(err))
	return werr
}

func summary(r *predict.Result) string {
	if r.Kind == predict.Organic {
		s := fmt.Sprintf("%s: %s, organic, %d atoms", r.Input, r.Formula, len(r.Structure))
		if len(r.Rings) > 0 {
			s += fmt.Sprintf(", rings %v", r.Rings)
		}
		return s
	}
	s := fmt.Sprintf("%s: %s, %s (%s electron geometry, %d lone pairs on the central atom)",
		r.Input, r.Formula, r.Shape, r.ElectronGeometry, r.LonePairs)
	if r.Optimized {
		s += ", formal charge optimized"
	}
	return s
}
