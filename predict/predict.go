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

// Package predict runs one request through the whole engine: it decides
// whether the input is a formula or an organic name, builds and positions
// the structure, and checks the result.
package predict

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	chem "github.com/rmera/govsepr"
	"github.com/rmera/govsepr/chemgraph"
	"github.com/rmera/govsepr/geometry"
	"github.com/rmera/govsepr/internal/logging"
	"github.com/rmera/govsepr/lewis"
	"github.com/rmera/govsepr/organic"
)

// Kind is the path a request took.
type Kind string

const (
	Inorganic Kind = "inorganic"
	Organic   Kind = "organic"
)

// Result is a finished structure plus what is known about it.
// Index, Shape, LonePairs and Optimized only apply to inorganic species.
type Result struct {
	ID               uuid.UUID
	Input            string
	Kind             Kind
	Structure        chem.Structure
	Formula          string
	Index            int
	Shape            string
	ElectronGeometry string
	LonePairs        int
	Budget           int
	Optimized        bool
	Rings            []int
	Elapsed          time.Duration
}

// Observer is told about every finished prediction. Outcome is "ok" or
// the error kind with underscores, like "parse_failure".
type Observer interface {
	ObservePrediction(kind, outcome string, elapsed time.Duration, atoms int)
}

// Options for a Predictor. Zero values take the defaults.
type Options struct {
	BondLength       float64
	StickSetWidth    float64
	HydrogenThinning float64
	Logger           *zap.Logger
	Observer         Observer
}

// Predictor holds the read-only tables shared by all requests. It is safe for concurrent use.
type Predictor struct {
	table   chem.ElementSearcher
	geo     *geometry.Table
	organic *organic.Interpreter
	bond    float64
	log     *zap.Logger
	obs     Observer
}

// New returns a Predictor using the elements in table.
func New(table chem.ElementSearcher, opts Options) (*Predictor, error) {
	def := organic.DefaultOptions()
	if opts.BondLength <= 0 {
		opts.BondLength = def.BondLength
	}
	geo := geometry.VSEPR()
	oi, err := organic.New(table, geo, organic.Options{
		BondLength:       opts.BondLength,
		StickSetWidth:    opts.StickSetWidth,
		HydrogenThinning: opts.HydrogenThinning,
	})
	if err != nil {
		return nil, chem.ErrDecorate(err, "predict.New")
	}
	return &Predictor{
		table:   table,
		geo:     geo,
		organic: oi,
		bond:    opts.BondLength,
		log:     logging.OrNop(opts.Logger),
		obs:     opts.Observer,
	}, nil
}

// Predict builds the structure for input. Names ending in ane, ene or yne go
// through the organic interpreter, anything else is read as a formula.
// Failed predictions return a *chem.CError whose kind tells why the request
// failed. A cancelled ctx gives the context error.
func (P *Predictor) Predict(ctx context.Context, input string) (*Result, error) {
	start := time.Now()
	r := &Result{ID: uuid.New(), Input: strings.TrimSpace(input), Index: -1}
	log := P.log.With(zap.String("request", r.ID.String()), zap.String("input", r.Input))
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var err error
	if organic.IsOrganic(r.Input) {
		err = P.predictOrganic(r, log)
	} else {
		err = P.predictInorganic(r, log)
	}
	if err == nil {
		log.Debug("checking graph")
		err = chemgraph.Check(r.Structure)
	}
	if err == nil {
		r.Rings, err = chemgraph.RingSizes(r.Structure)
	}
	r.Elapsed = time.Since(start)
	P.observe(r, err)
	if err != nil {
		log.Warn("prediction failed", zap.Stringer("kind", chem.KindOf(err)), zap.Error(err), zap.Duration("elapsed", r.Elapsed))
		return nil, chem.ErrDecorate(err, "Predict")
	}
	r.Formula = r.Structure.Formula()
	log.Info("prediction done",
		zap.String("kind", string(r.Kind)),
		zap.String("formula", r.Formula),
		zap.Int("atoms", len(r.Structure)),
		zap.Int("index", r.Index),
		zap.Duration("elapsed", r.Elapsed))
	return r, nil
}

func (P *Predictor) predictInorganic(r *Result, log *zap.Logger) error {
	r.Kind = Inorganic
	log.Debug("building Lewis structure")
	m, err := lewis.Predict(P.table, P.geo, r.Input, P.bond)
	if err != nil {
		return err
	}
	r.Structure = m.Structure
	r.Index = m.Index
	r.Shape = m.Shape
	r.ElectronGeometry = geometry.ElectronGeometry(m.Index)
	r.LonePairs = m.LonePairs
	r.Budget = m.Budget
	r.Optimized = m.Optimized
	log.Debug("positioned", zap.Int("index", m.Index), zap.Bool("optimized", m.Optimized))
	return nil
}

func (P *Predictor) predictOrganic(r *Result, log *zap.Logger) error {
	r.Kind = Organic
	log.Debug("interpreting organic name")
	s, err := P.organic.Interpret(r.Input)
	if err != nil {
		return err
	}
	r.Structure = s
	r.Budget = s.CountElectrons()
	return nil
}

// Outcome returns the label an Observer gets for err.
func Outcome(err error) string {
	if err == nil {
		return "ok"
	}
	return strings.ReplaceAll(chem.KindOf(err).String(), " ", "_")
}

func (P *Predictor) observe(r *Result, err error) {
	if P.obs == nil {
		return
	}
	P.obs.ObservePrediction(string(r.Kind), Outcome(err), r.Elapsed, len(r.Structure))
}

// Table returns the element table used by P.
func (P *Predictor) Table() chem.ElementSearcher {
	return P.table
}
