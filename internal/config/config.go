/*
 * config.go, part of govsepr.
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

// Package config loads the settings of the vsepr program from an optional
// YAML file and VSEPR_* environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/rmera/govsepr/internal/logging"
)

// envPrefix is the prefix of all environment overrides. A nested key like
// "geometry.bond_length" is read from VSEPR_GEOMETRY_BOND_LENGTH.
const envPrefix = "VSEPR"

const (
	DefaultLogLevel         = "info"
	DefaultLogFormat        = "console"
	DefaultBondLength       = 1.0
	DefaultStickSetWidth    = 0.3
	DefaultHydrogenThinning = 0.7
	DefaultOutputFormat     = "table"
	DefaultOutputFrame      = "stick"
	DefaultBackpressure     = true
	DefaultRenderSize       = 512
)

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type TableConfig struct {
	Path string `mapstructure:"path"` //CSV periodic table; empty means the embedded one
}

type GeometryConfig struct {
	BondLength       float64 `mapstructure:"bond_length"`
	StickSetWidth    float64 `mapstructure:"stick_set_width"`
	HydrogenThinning float64 `mapstructure:"hydrogen_thinning"`
}

type OutputConfig struct {
	Format string `mapstructure:"format"` //table, json or xyz
	Frame  string `mapstructure:"frame"`  //stick or vdw
}

type HandoffConfig struct {
	Backpressure bool `mapstructure:"backpressure"`
}

type MetricsConfig struct {
	Addr string `mapstructure:"addr"` //host:port for /metrics; empty disables the endpoint
}

type RenderConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

// Config holds every setting of the program.
type Config struct {
	Log      LogConfig      `mapstructure:"log"`
	Table    TableConfig    `mapstructure:"table"`
	Geometry GeometryConfig `mapstructure:"geometry"`
	Output   OutputConfig   `mapstructure:"output"`
	Handoff  HandoffConfig  `mapstructure:"handoff"`
	Render   RenderConfig   `mapstructure:"render"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	cfg := &Config{Handoff: HandoffConfig{Backpressure: DefaultBackpressure}}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills the zero-value fields of cfg with defaults.
// Booleans are left alone, their defaults come from the loader.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
	if cfg.Geometry.BondLength == 0 {
		cfg.Geometry.BondLength = DefaultBondLength
	}
	if cfg.Geometry.StickSetWidth == 0 {
		cfg.Geometry.StickSetWidth = DefaultStickSetWidth
	}
	if cfg.Geometry.HydrogenThinning == 0 {
		cfg.Geometry.HydrogenThinning = DefaultHydrogenThinning
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = DefaultOutputFormat
	}
	if cfg.Output.Frame == "" {
		cfg.Output.Frame = DefaultOutputFrame
	}
	if cfg.Render.Width == 0 {
		cfg.Render.Width = DefaultRenderSize
	}
	if cfg.Render.Height == 0 {
		cfg.Render.Height = DefaultRenderSize
	}
}

// Validate checks that every setting has a usable value.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected console|json", c.Log.Format)
	}
	if c.Geometry.BondLength <= 0 {
		return fmt.Errorf("config: geometry.bond_length must be > 0, got %g", c.Geometry.BondLength)
	}
	if c.Geometry.StickSetWidth < 0 {
		return fmt.Errorf("config: geometry.stick_set_width must be ≥ 0, got %g", c.Geometry.StickSetWidth)
	}
	if c.Geometry.HydrogenThinning <= 0 || c.Geometry.HydrogenThinning > 1 {
		return fmt.Errorf("config: geometry.hydrogen_thinning must be in (0, 1], got %g", c.Geometry.HydrogenThinning)
	}
	switch c.Output.Format {
	case "table", "json", "xyz":
	default:
		return fmt.Errorf("config: output.format %q is invalid; expected table|json|xyz", c.Output.Format)
	}
	if _, err := c.Vdw(); err != nil {
		return err
	}
	if c.Render.Width < 1 || c.Render.Height < 1 {
		return fmt.Errorf("config: render size %dx%d is invalid", c.Render.Width, c.Render.Height)
	}
	return nil
}

// Vdw returns true if the configured output frame is the space-filling one.
func (c *Config) Vdw() (bool, error) {
	switch strings.ToLower(c.Output.Frame) {
	case "stick":
		return false, nil
	case "vdw":
		return true, nil
	}
	return false, fmt.Errorf("config: output.frame %q is invalid; expected stick|vdw", c.Output.Frame)
}

// Logging returns the logger settings.
func (c *Config) Logging() logging.Config {
	return logging.Config{Level: c.Log.Level, Format: c.Log.Format}
}
