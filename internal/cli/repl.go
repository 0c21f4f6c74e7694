/*
 * repl.go, part of govsepr.
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
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	chem "github.com/rmera/govsepr"
	"github.com/rmera/govsepr/handoff"
)

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Read inputs line by line and show each prediction",
		Long: "Repl reads one formula or name per line. A producer goroutine predicts each\n" +
			"line and hands the result to the display goroutine. Without backpressure\n" +
			"the display may skip results that were replaced before it got to them.\n" +
			"An empty line is ignored, \"quit\" or end of input stops the loop.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := GetEnv(cmd)
			if err != nil {
				return err
			}
			return runRepl(cmd.Context(), env, cmd.InOrStdin(), cmd.OutOrStdout(), prompter(cmd))
		},
	}
}

func runRepl(ctx context.Context, env *Env, in io.Reader, out io.Writer, prompt func()) error {
	slot := handoff.New(env.Config.Handoff.Backpressure, env.Logger, handoff.WithObserver(env.Metrics))
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var werr error
		for snap := range slot.Updates() {
			if werr == nil {
				werr = display(out, snap)
			}
			slot.Ready()
			if werr == nil && prompt != nil {
				prompt()
			}
		}
		return werr
	})
	g.Go(func() error {
		defer slot.Close()
		if prompt != nil {
			prompt()
		}
		return produce(ctx, env, slot, in)
	})
	return g.Wait()
}

// prompter returns a function printing a prompt to stderr, or nil if stdin
// is not a terminal.
func prompter(cmd *cobra.Command) func() {
	f, ok := cmd.InOrStdin().(*os.File)
	if !ok || !(isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return nil
	}
	errOut := cmd.ErrOrStderr()
	return func() { fmt.Fprint(errOut, "vsepr> ") }
}

// produce predicts each line read from in and publishes the results to slot.
func produce(ctx context.Context, env *Env, slot *handoff.Slot, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}
		snap := handoff.Snapshot{Input: line}
		r, err := env.Predictor.Predict(ctx, line)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			snap.Err = err
		} else {
			snap.ID = r.ID
			snap.Structure = r.Structure
		}
		if _, err := slot.Publish(ctx, snap); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		env.Logger.Error("reading input", zap.Error(err))
		return err
	}
	return nil
}

func display(out io.Writer, snap handoff.Snapshot) error {
	if snap.Err != nil {
		_, err := fmt.Fprintf(out, "[%d] %s: %s (%s)\n", snap.Seq, snap.Input, snap.Err.Error(), chem.KindOf(snap.Err))
		return err
	}
	if _, err := fmt.Fprintf(out, "[%d] %s: %s\n", snap.Seq, snap.Input, snap.Structure.Formula()); err != nil {
		return err
	}
	return chem.Report(out, snap.Structure)
}
