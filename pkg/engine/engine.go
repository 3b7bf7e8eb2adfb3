/*
Copyright 2022 The Numaproj Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package engine evaluates a set of named properties over traces: it compiles the properties once and checks
// them concurrently, recording logs and metrics along the way.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/atomic"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/numaproj/stlmon/pkg/formula"
	"github.com/numaproj/stlmon/pkg/metrics"
	"github.com/numaproj/stlmon/pkg/monitoring"
	"github.com/numaproj/stlmon/pkg/shared/logging"
	"github.com/numaproj/stlmon/pkg/signal"
	"github.com/numaproj/stlmon/pkg/trace"
)

// Property is a named formula.
type Property struct {
	Name    string
	Formula formula.Formula
}

// Result is the verdict of a property over a trace.
type Result[R comparable] struct {
	Property string
	Verdict  *signal.Signal[R]
	Duration time.Duration
}

// Engine checks properties over traces with the monitors of a compiler.
type Engine[R comparable] struct {
	compiler *monitoring.Compiler[trace.Record, R]
	monitors *lru.Cache[string, monitoring.Monitor[trace.Record, R]]
	opts     *options
}

// New returns an engine compiling its monitors with compiler.
func New[R comparable](compiler *monitoring.Compiler[trace.Record, R], opts ...Option) (*Engine[R], error) {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	cache, err := lru.New[string, monitoring.Monitor[trace.Record, R]](o.cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create the monitor cache: %w", err)
	}
	return &Engine[R]{
		compiler: compiler,
		monitors: cache,
		opts:     o,
	}, nil
}

// Compile compiles the properties, returning every failure at once.
func (e *Engine[R]) Compile(props []Property) ([]monitoring.Monitor[trace.Record, R], error) {
	var errs error
	monitors := make([]monitoring.Monitor[trace.Record, R], len(props))
	for i, p := range props {
		m, err := e.monitor(p.Formula)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("property %q: %w", p.Name, err))
			continue
		}
		monitors[i] = m
	}
	if errs != nil {
		return nil, errs
	}
	return monitors, nil
}

func (e *Engine[R]) monitor(f formula.Formula) (monitoring.Monitor[trace.Record, R], error) {
	if f == nil {
		return e.compiler.Compile(f)
	}
	key := f.String()
	if m, ok := e.monitors.Get(key); ok {
		return m, nil
	}
	m, err := e.compiler.Compile(f)
	if err != nil {
		return nil, err
	}
	e.monitors.Add(key, m)
	return m, nil
}

// Check evaluates the properties over the trace. The results keep the order of props.
//
// Properties are evaluated concurrently, each monitor call only reads the trace. A cancelled context stops the
// evaluation of the properties not yet started.
func (e *Engine[R]) Check(ctx context.Context, tr trace.Trace, props []Property) ([]Result[R], error) {
	log := e.logger(ctx).With("runID", uuid.NewString())
	monitors, err := e.Compile(props)
	if err != nil {
		for _, p := range props {
			metrics.MonitorRunErrors.WithLabelValues(p.Name, "compile").Inc()
		}
		return nil, err
	}
	duration := tr.End() - tr.Start()
	log.Infow("Checking properties", zap.Int("properties", len(props)), zap.Int("samples", tr.Size()), zap.Float64("duration", duration))

	results := make([]Result[R], len(props))
	segments := atomic.NewInt64(0)
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.workers)
	for i, p := range props {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				metrics.MonitorRunErrors.WithLabelValues(p.Name, "cancelled").Inc()
				return fmt.Errorf("property %q: %w", p.Name, err)
			}
			if h := formula.Horizon(p.Formula); h.End > duration {
				log.Warnw("Trace is shorter than the horizon of the property, the verdict may be empty",
					zap.String("property", p.Name), zap.String("horizon", h.String()))
			}
			start := time.Now()
			verdict := monitors[i].Monitor(tr)
			elapsed := time.Since(start)
			metrics.MonitorRuns.WithLabelValues(p.Name, e.opts.domain).Inc()
			metrics.MonitorDuration.WithLabelValues(p.Name).Observe(elapsed.Seconds())
			metrics.MonitorOutputSegments.WithLabelValues(p.Name).Observe(float64(verdict.Size()))
			log.Debugw("Property checked", zap.String("property", p.Name), zap.Int("segments", verdict.Size()), zap.Duration("elapsed", elapsed))
			segments.Add(int64(verdict.Size()))
			results[i] = Result[R]{Property: p.Name, Verdict: verdict, Duration: elapsed}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	log.Infow("Properties checked", zap.Int("properties", len(props)), zap.Int64("segments", segments.Load()))
	return results, nil
}

// CheckAll evaluates the properties over every trace, e.g. the runs of a simulation.
func (e *Engine[R]) CheckAll(ctx context.Context, traces []trace.Trace, props []Property) ([][]Result[R], error) {
	all := make([][]Result[R], 0, len(traces))
	for _, tr := range traces {
		results, err := e.Check(ctx, tr, props)
		if err != nil {
			return nil, err
		}
		all = append(all, results)
	}
	return all, nil
}

func (e *Engine[R]) logger(ctx context.Context) *zap.SugaredLogger {
	if e.opts.logger != nil {
		return e.opts.logger
	}
	return logging.FromContext(ctx)
}
