/*
 * root.go, part of govsepr.
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

// Package cli implements the vsepr command line program.
package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	chem "github.com/rmera/govsepr"
	"github.com/rmera/govsepr/internal/config"
	"github.com/rmera/govsepr/internal/logging"
	"github.com/rmera/govsepr/internal/metrics"
	"github.com/rmera/govsepr/predict"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
)

// RootOptions holds the global flags.
type RootOptions struct {
	ConfigPath   string
	LogLevel     string
	OutputFormat string
}

// Env carries the initialized dependencies through the command tree.
type Env struct {
	Config    *config.Config
	Logger    *zap.Logger
	Table     *chem.Table
	Predictor *predict.Predictor
	Metrics   *metrics.Metrics
}

type envKey struct{}

// NewRootCommand returns the vsepr command with all its subcommands.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}
	cmd := &cobra.Command{
		Use:   "vsepr",
		Short: "Predict Lewis structures and VSEPR geometries",
		Long: "vsepr builds Lewis structures and 3D geometries for inorganic formulas such as\n" +
			"\"H2O\" or \"SO4 2-\", and for simple IUPAC alkane, alkene and alkyne names such\n" +
			"as \"2,2-dimethylpropane\".",
		Version: fmt.Sprintf("%s (commit: %s)", Version, GitCommit),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return persistentPreRun(cmd, opts)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if env, err := GetEnv(cmd); err == nil {
				_ = env.Logger.Sync()
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.ConfigPath, "config", "c", "", "YAML config file (VSEPR_* env variables override it)")
	pf.StringVar(&opts.LogLevel, "log-level", "", "log level: debug, info, warn or error (default from config)")
	pf.StringVarP(&opts.OutputFormat, "output", "o", "", "output format: table, json or xyz (default from config)")

	cmd.AddCommand(
		newPredictCmd(),
		newReplCmd(),
		newBatchCmd(),
		newXYZCmd(),
		newPlotCmd(),
		newDepictCmd(),
		newElementsCmd(),
	)
	return cmd
}

func persistentPreRun(cmd *cobra.Command, opts *RootOptions) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}
	if opts.OutputFormat != "" {
		cfg.Output.Format = strings.ToLower(opts.OutputFormat)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger, err := logging.New(cfg.Logging())
	if err != nil {
		return fmt.Errorf("logger initialization failed: %w", err)
	}
	table := chem.DefaultTable()
	if cfg.Table.Path != "" {
		if table, err = chem.ReadTableFile(cfg.Table.Path); err != nil {
			return fmt.Errorf("periodic table initialization failed: %w", err)
		}
		logger.Debug("periodic table loaded", zap.String("path", cfg.Table.Path), zap.Int("elements", table.Len()))
	}
	m := metrics.New()
	p, err := predict.New(table, predict.Options{
		BondLength:       cfg.Geometry.BondLength,
		StickSetWidth:    cfg.Geometry.StickSetWidth,
		HydrogenThinning: cfg.Geometry.HydrogenThinning,
		Logger:           logger,
		Observer:         m,
	})
	if err != nil {
		return err
	}
	env := &Env{Config: cfg, Logger: logger, Table: table, Predictor: p, Metrics: m}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.Metrics.Addr != "" {
		go func() {
			if err := m.Serve(ctx, cfg.Metrics.Addr, logger); err != nil {
				logger.Error("metrics endpoint failed", zap.String("addr", cfg.Metrics.Addr), zap.Error(err))
			}
		}()
	}
	cmd.SetContext(context.WithValue(ctx, envKey{}, env))
	return nil
}

// GetEnv extracts the Env stored by the root command from cmd's context.
func GetEnv(cmd *cobra.Command) (*Env, error) {
	ctx := cmd.Context()
	if ctx == nil {
		return nil, errors.New("cli: command context is nil")
	}
	env, ok := ctx.Value(envKey{}).(*Env)
	if !ok || env == nil {
		return nil, errors.New("cli: environment not found in command context")
	}
	return env, nil
}

// Execute runs the vsepr program.
func Execute(ctx context.Context) error {
	rootCmd := NewRootCommand()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		PrintError(rootCmd, err)
		return err
	}
	return nil
}

// PrintError writes err to stderr, with its kind if it has one.
func PrintError(cmd *cobra.Command, err error) {
	if err == nil {
		return
	}
	var ce *chem.CError
	if errors.As(err, &ce) {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error (%s): %s\n", ce.Kind(), err.Error())
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", err.Error())
}
