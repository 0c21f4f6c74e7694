/*
 * metrics.go, part of govsepr.
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

// Package metrics keeps Prometheus counters for predictions and hand-offs,
// and can serve them over HTTP.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/rmera/govsepr/internal/logging"
)

const namespace = "vsepr"

// DurationBuckets are the prediction latency buckets, in seconds.
var DurationBuckets = []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1}

// Metrics holds the collectors of one program run, on their own registry.
type Metrics struct {
	registry  *prometheus.Registry
	requests  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	atoms     prometheus.Histogram
	published prometheus.Counter
	replaced  prometheus.Counter
}

// New returns a Metrics with all collectors registered.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "predict",
			Name:      "requests_total",
			Help:      "Predictions by kind (inorganic or organic) and outcome (ok or the error kind).",
		}, []string{"kind", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "predict",
			Name:      "duration_seconds",
			Help:      "Time spent on each prediction.",
			Buckets:   DurationBuckets,
		}, []string{"kind"}),
		atoms: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "predict",
			Name:      "atoms",
			Help:      "Atoms in each successful prediction.",
			Buckets:   prometheus.ExponentialBuckets(2, 2, 7),
		}),
		published: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "handoff",
			Name:      "published_total",
			Help:      "Snapshots published to the display.",
		}),
		replaced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "handoff",
			Name:      "replaced_total",
			Help:      "Snapshots replaced before the display read them.",
		}),
	}
	m.registry.MustRegister(m.requests, m.duration, m.atoms, m.published, m.replaced)
	return m
}

// ObservePrediction records one finished prediction. atoms is ignored unless outcome is "ok".
func (m *Metrics) ObservePrediction(kind, outcome string, elapsed time.Duration, atoms int) {
	m.requests.WithLabelValues(kind, outcome).Inc()
	m.duration.WithLabelValues(kind).Observe(elapsed.Seconds())
	if outcome == "ok" {
		m.atoms.Observe(float64(atoms))
	}
}

// ObservePublish records one hand-off publication.
func (m *Metrics) ObservePublish(replaced bool) {
	m.published.Inc()
	if replaced {
		m.replaced.Inc()
	}
}

// Requests returns the number of predictions recorded with the given labels.
func (m *Metrics) Requests(kind, outcome string) prometheus.Counter {
	return m.requests.WithLabelValues(kind, outcome)
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns an HTTP handler exposing the metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

// Serve exposes the metrics on addr, under /metrics, until ctx is done.
func (m *Metrics) Serve(ctx context.Context, addr string, log *zap.Logger) error {
	log = logging.OrNop(log)
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	errc := make(chan error, 1)
	go func() {
		log.Info("serving metrics", zap.String("addr", addr))
		errc <- srv.ListenAndServe()
	}()
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdown, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdown); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
