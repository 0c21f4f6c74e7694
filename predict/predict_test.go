/*
 * predict_test.go, part of govsepr.
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

package predict

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	chem "github.com/rmera/govsepr"
)

func newPredictor(t *testing.T, log *zap.Logger) *Predictor {
	t.Helper()
	p, err := New(chem.DefaultTable(), Options{Logger: log})
	require.NoError(t, err)
	return p
}

func TestPredictInorganic(t *testing.T) {
	p := newPredictor(t, nil)
	r, err := p.Predict(context.Background(), "  SO4 2- ")
	require.NoError(t, err)
	assert.Equal(t, Inorganic, r.Kind)
	assert.Equal(t, "SO4 2-", r.Input)
	assert.Equal(t, "O4S", r.Formula)
	assert.Equal(t, 3, r.Index)
	assert.Equal(t, "tetrahedral", r.Shape)
	assert.Equal(t, 32, r.Budget)
	assert.True(t, r.Optimized)
	assert.Len(t, r.Structure, 5)
	assert.NotEqual(t, uuid.Nil, r.ID)
	assert.Empty(t, r.Rings)

	r, err = p.Predict(context.Background(), "H2O")
	require.NoError(t, err)
	assert.Equal(t, "bent", r.Shape)
	assert.Equal(t, 2, r.LonePairs)
	assert.Equal(t, "H2O", r.Formula)
}

func TestPredictOrganic(t *testing.T) {
	p := newPredictor(t, nil)
	r, err := p.Predict(context.Background(), "cyclohexane")
	require.NoError(t, err)
	assert.Equal(t, Organic, r.Kind)
	assert.Equal(t, "C6H12", r.Formula)
	assert.Len(t, r.Structure, 18)
	assert.Equal(t, []int{6}, r.Rings)
	assert.Equal(t, -1, r.Index)

	r, err = p.Predict(context.Background(), "2-methylpropane")
	require.NoError(t, err)
	assert.Equal(t, "C4H10", r.Formula)
}

func TestPredictFailures(t *testing.T) {
	p := newPredictor(t, nil)
	cases := map[string]chem.ErrorKind{
		"":                       chem.ParseFailure,
		"Qq3":                    chem.ParseFailure,
		"NO2":                    chem.Infeasible,
		"2,2,2-trimethylpropane": chem.Overbonding,
		"5-methylpropane":        chem.ParseFailure,
	}
	for in, kind := range cases {
		r, err := p.Predict(context.Background(), in)
		assert.Nil(t, r, in)
		require.Error(t, err, in)
		assert.Equal(t, kind, chem.KindOf(err), in)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.Predict(ctx, "H2O")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPredictLogs(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	p := newPredictor(t, zap.New(core))
	r, err := p.Predict(context.Background(), "CO2")
	require.NoError(t, err)
	done := logs.FilterMessage("prediction done").All()
	require.Len(t, done, 1)
	fields := done[0].ContextMap()
	assert.Equal(t, r.ID.String(), fields["request"])
	assert.Equal(t, "CO2", fields["input"])
	assert.EqualValues(t, 3, fields["atoms"])
	assert.NotEmpty(t, logs.FilterMessage("building Lewis structure").All())

	_, err = p.Predict(context.Background(), "NO2")
	require.Error(t, err)
	failed := logs.FilterMessage("prediction failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, zap.WarnLevel, failed[0].Level)
	assert.Equal(t, "infeasible structure", failed[0].ContextMap()["kind"])
}

func TestPredictConcurrent(t *testing.T) {
	p := newPredictor(t, nil)
	inputs := []string{"H2O", "propane", "SF6", "2,2-dimethylpropane", "XeF4", "ethyne"}
	var wg sync.WaitGroup
	ids := make([]uuid.UUID, len(inputs))
	for i, in := range inputs {
		wg.Add(1)
		go func(i int, in string) {
			defer wg.Done()
			r, err := p.Predict(context.Background(), in)
			if assert.NoError(t, err, in) {
				ids[i] = r.ID
			}
		}(i, in)
	}
	wg.Wait()
	seen := make(map[uuid.UUID]bool)
	for _, id := range ids {
		assert.False(t, seen[id])
		seen[id] = true
	}
}

type recorder struct {
	mu    sync.Mutex
	calls []string
	atoms []int
}

func (r *recorder) ObservePrediction(kind, outcome string, elapsed time.Duration, atoms int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, kind+"/"+outcome)
	r.atoms = append(r.atoms, atoms)
}

func TestPredictObserver(t *testing.T) {
	rec := &recorder{}
	p, err := New(chem.DefaultTable(), Options{Observer: rec})
	require.NoError(t, err)
	for _, in := range []string{"CH4", "propane", "Xx", "2,2,2-trimethylpropane"} {
		_, _ = p.Predict(context.Background(), in)
	}
	assert.Equal(t, []string{"inorganic/ok", "organic/ok", "inorganic/parse_failure", "organic/overbonding"}, rec.calls)
	assert.Equal(t, []int{5, 11}, rec.atoms[:2])

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.Predict(ctx, "CH4")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, rec.calls, 4, "cancelled requests are not observed")

	assert.Equal(t, "ok", Outcome(nil))
	assert.Equal(t, "infeasible_structure", Outcome(chem.NewError(chem.Infeasible, "", "x")))
}
