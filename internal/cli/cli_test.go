/*
 * cli_test.go, part of govsepr.
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
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chem "github.com/rmera/govsepr"
	"github.com/rmera/govsepr/chemjson"
	"github.com/rmera/govsepr/xyz"
)

// run executes the vsepr command with args and stdin, and returns what it
// wrote to stdout and stderr.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	assert.Equal(t, "vsepr", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	names := map[string]bool{}
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	for _, want := range []string{"predict", "repl", "batch", "xyz", "plot", "depict", "elements"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
	for _, flag := range []string{"config", "log-level", "output"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), "missing flag %s", flag)
	}
	assert.Equal(t, "o", cmd.PersistentFlags().Lookup("output").Shorthand)
}

func TestPredictTable(t *testing.T) {
	out, _, err := run(t, "", "predict", "H2O", "2-methylpropane")
	require.NoError(t, err)
	assert.Contains(t, out, "H2O: H2O, bent (tetrahedral electron geometry, 2 lone pairs")
	assert.Contains(t, out, "| oxygen")
	assert.Contains(t, out, "2-methylpropane: C4H10, organic, 14 atoms")
	assert.Equal(t, 2, strings.Count(out, "Total formal charge"))
}

func TestPredictJSON(t *testing.T) {
	out, _, err := run(t, "", "-o", "json", "predict", "XeF4", "Xx2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2")
	in := bufio.NewReader(strings.NewReader(out))
	res, err := chemjson.DecodeResult(in)
	require.NoError(t, err)
	assert.Equal(t, "square planar", res.Shape)
	assert.Equal(t, "F4Xe", res.Formula)
	_, err = chemjson.DecodeResult(in)
	var jerr *chemjson.Error
	require.True(t, errors.As(err, &jerr))
	assert.Equal(t, "Xx2", jerr.Input)
	assert.Equal(t, chem.ParseFailure.String(), jerr.Kind)
}

func TestPredictFailureText(t *testing.T) {
	out, errOut, err := run(t, "", "predict", "2,2,2-trimethylpropane")
	require.Error(t, err)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "overbonding")
}

func TestPredictXYZOutput(t *testing.T) {
	out, _, err := run(t, "", "-o", "xyz", "predict", "CO2")
	require.NoError(t, err)
	s, comment, err := xyz.Read(strings.NewReader(out), chem.DefaultTable())
	require.NoError(t, err)
	assert.Len(t, s, 3)
	assert.Contains(t, comment, "CO2")
}

func TestRepl(t *testing.T) {
	out, _, err := run(t, "H2O\n\nQq\nCO2\nquit\nCH4\n", "repl")
	require.NoError(t, err)
	assert.Contains(t, out, "[1] H2O: H2O")
	assert.Contains(t, out, "[2] Qq:")
	assert.Contains(t, out, "[3] CO2: CO2")
	assert.NotContains(t, out, "CH4")
	assert.Less(t, strings.Index(out, "[1]"), strings.Index(out, "[3]"))
}

func TestBatch(t *testing.T) {
	stdin := "{\"Input\":\"NH3\"}\nnonsense\n{\"Input\":\"cyclohexane\"}\n"
	out, _, err := run(t, stdin, "batch")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	in := bufio.NewReader(strings.NewReader(out))
	r, err := chemjson.DecodeResult(in)
	require.NoError(t, err)
	assert.Equal(t, "trigonal pyramidal", r.Shape)
	_, err = chemjson.DecodeResult(in)
	assert.Error(t, err)
	r, err = chemjson.DecodeResult(in)
	require.NoError(t, err)
	assert.Equal(t, []int{6}, r.Rings)
}

func TestExports(t *testing.T) {
	dir := t.TempDir()
	zst := filepath.Join(dir, "sf6.xyz.zst")
	_, _, err := run(t, "", "xyz", "SF6", "-f", zst)
	require.NoError(t, err)
	s, _, err := xyz.ReadFile(zst, chem.DefaultTable())
	require.NoError(t, err)
	assert.Len(t, s, 7)

	for _, args := range [][]string{
		{"plot", "ethene", "--plane", "xz", "-f", filepath.Join(dir, "ethene.png")},
		{"depict", "SF6", "-f", filepath.Join(dir, "sf6.png")},
	} {
		_, _, err := run(t, "", args...)
		require.NoError(t, err, args[0])
		info, err := os.Stat(args[len(args)-1])
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}

	_, _, err = run(t, "", "xyz", "SF6")
	assert.Error(t, err, "-f is required")
	_, _, err = run(t, "", "plot", "SF6", "--plane", "ab", "-f", filepath.Join(dir, "x.png"))
	assert.Error(t, err)
}

func TestElements(t *testing.T) {
	out, _, err := run(t, "", "elements")
	require.NoError(t, err)
	assert.Contains(t, out, "carbon")
	assert.Contains(t, out, "Symbol")
	assert.Equal(t, chem.DefaultTable().Len()+1, strings.Count(out, "\n"))
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vsepr.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output:\n  format: json\ngeometry:\n  bond_length: 2\n"), 0o644))
	out, _, err := run(t, "", "--config", path, "predict", "CO2")
	require.NoError(t, err)
	r, err := chemjson.DecodeResult(bufio.NewReader(strings.NewReader(out)))
	require.NoError(t, err)
	require.Len(t, r.Atoms, 3)
	c := r.Atoms[1].Coords
	assert.InDelta(t, 2.0, math.Sqrt(c[0]*c[0]+c[1]*c[1]+c[2]*c[2]), 1e-9)

	_, _, err = run(t, "", "--config", filepath.Join(t.TempDir(), "missing.yaml"), "elements")
	assert.Error(t, err)
	_, _, err = run(t, "", "-o", "pdb", "elements")
	assert.Error(t, err)
}
