/*
 * export.go, part of govsepr.
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

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rmera/govsepr/chemplot"
	"github.com/rmera/govsepr/depict"
	"github.com/rmera/govsepr/predict"
	"github.com/rmera/govsepr/xyz"
)

// exportCmd returns a command that predicts its single argument and hands
// the result to save, which writes it to the file given with -f.
func exportCmd(use, short string, save func(env *Env, r *predict.Result, file string) error) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   use + " <input> -f file",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := GetEnv(cmd)
			if err != nil {
				return err
			}
			r, err := env.Predictor.Predict(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := save(env, r, file); err != nil {
				return fmt.Errorf("%s: writing %s: %w", use, file, err)
			}
			env.Logger.Info("written", zap.String("file", file), zap.String("formula", r.Formula))
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "output file (required)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newXYZCmd() *cobra.Command {
	return exportCmd("xyz", "Write a prediction as an XYZ file (.zst and .gz are compressed)",
		func(env *Env, r *predict.Result, file string) error {
			vdw, _ := env.Config.Vdw()
			return xyz.WriteFile(file, r.Structure, vdw, fmt.Sprintf("%s %s", r.Input, r.Formula))
		})
}

func newPlotCmd() *cobra.Command {
	var plane string
	cmd := exportCmd("plot", "Plot a 2D projection of a prediction (png, svg, pdf...)",
		func(env *Env, r *predict.Result, file string) error {
			opts := chemplot.DefaultOptions()
			var err error
			if opts.Plane, err = chemplot.ParsePlane(plane); err != nil {
				return err
			}
			opts.Vdw, _ = env.Config.Vdw()
			opts.Width, opts.Height = env.Config.Render.Width, env.Config.Render.Height
			return chemplot.Projection(r.Structure, r.Input, file, opts)
		})
	cmd.Flags().StringVar(&plane, "plane", "xy", "projection plane: xy, xz or yz")
	return cmd
}

func newDepictCmd() *cobra.Command {
	var tilt, turn float64
	var labels bool
	cmd := exportCmd("depict", "Draw a ball-and-stick PNG of a prediction",
		func(env *Env, r *predict.Result, file string) error {
			opts := depict.DefaultOptions()
			opts.Vdw, _ = env.Config.Vdw()
			opts.Width, opts.Height = env.Config.Render.Width, env.Config.Render.Height
			opts.Tilt, opts.Turn, opts.Labels = tilt, turn, labels
			return depict.Save(r.Structure, file, opts)
		})
	def := depict.DefaultOptions()
	cmd.Flags().Float64Var(&tilt, "tilt", def.Tilt, "rotation about the x axis, radians")
	cmd.Flags().Float64Var(&turn, "turn", def.Turn, "rotation about the y axis, radians")
	cmd.Flags().BoolVar(&labels, "labels", def.Labels, "print element symbols on heavy atoms")
	return cmd
}
