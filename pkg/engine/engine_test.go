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

package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/numaproj/stlmon/pkg/domain"
	"github.com/numaproj/stlmon/pkg/formula"
	"github.com/numaproj/stlmon/pkg/interval"
	"github.com/numaproj/stlmon/pkg/monitoring"
	"github.com/numaproj/stlmon/pkg/signal"
	"github.com/numaproj/stlmon/pkg/trace"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func bounded(a, b float64) *interval.Interval {
	i := interval.MustNew(a, b)
	return &i
}

func speedTrace(t *testing.T, speeds ...float64) trace.Trace {
	records := make([]trace.Record, 0, len(speeds))
	for i, v := range speeds {
		records = append(records, trace.Record{"time": float64(i), "speed": v})
	}
	end := float64(len(speeds))
	tr, err := trace.FromRecords(records, &end, trace.Options{})
	require.NoError(t, err)
	return tr
}

func newEngine(t *testing.T, opts ...Option) *Engine[bool] {
	c := monitoring.NewCompiler[trace.Record, bool](domain.Boolean{})
	c.AddAtom("fast", func(r trace.Record) bool { return r["speed"].(float64) > 10 })
	c.AddAtom("stopped", func(r trace.Record) bool { return r["speed"].(float64) == 0 })
	e, err := New(c, append([]Option{WithLogger(zap.NewNop().Sugar()), WithDomain("boolean")}, opts...)...)
	require.NoError(t, err)
	return e
}

func TestEngine_Check(t *testing.T) {
	e := newEngine(t, WithWorkers(2))
	tr := speedTrace(t, 0, 5, 12, 15, 8, 0)
	props := []Property{
		{Name: "never-fast", Formula: formula.Globally{Arg: formula.Not{Arg: formula.Atomic{ID: "fast"}}}},
		{Name: "stops-soon", Formula: formula.Eventually{Arg: formula.Atomic{ID: "stopped"}, Interval: bounded(0, 2)}},
		{Name: "was-fast", Formula: formula.Once{Arg: formula.Atomic{ID: "fast"}}},
	}

	results, err := e.Check(context.Background(), tr, props)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "never-fast", results[0].Property)
	assert.Equal(t, []signal.Point[bool]{{Time: 0, Value: false}, {Time: 4, Value: true}}, results[0].Verdict.Points())
	assert.Equal(t, 6.0, results[0].Verdict.End())

	assert.Equal(t, []signal.Point[bool]{{Time: 0, Value: true}, {Time: 1, Value: false}, {Time: 3, Value: true}}, results[1].Verdict.Points())
	assert.Equal(t, 4.0, results[1].Verdict.End())

	assert.Equal(t, []signal.Point[bool]{{Time: 0, Value: false}, {Time: 2, Value: true}}, results[2].Verdict.Points())
}

func TestEngine_CompileErrors(t *testing.T) {
	e := newEngine(t)
	props := []Property{
		{Name: "ok", Formula: formula.Atomic{ID: "fast"}},
		{Name: "unknown", Formula: formula.Atomic{ID: "braking"}},
		{Name: "nil"},
	}
	_, err := e.Check(context.Background(), speedTrace(t, 1), props)
	require.Error(t, err)
	errs := multierr.Errors(err)
	require.Len(t, errs, 2)
	assert.True(t, errors.Is(errs[0], monitoring.ErrUnknownAtomic))
	assert.Contains(t, errs[0].Error(), `"unknown"`)
	assert.True(t, errors.Is(errs[1], monitoring.ErrUnsupportedFormula))
}

func TestEngine_Cache(t *testing.T) {
	e := newEngine(t, WithCacheSize(1))
	f := formula.Eventually{Arg: formula.Atomic{ID: "fast"}}
	_, err := e.Compile([]Property{{Name: "a", Formula: f}, {Name: "b", Formula: f}})
	require.NoError(t, err)
	assert.Equal(t, 1, e.monitors.Len())
	assert.True(t, e.monitors.Contains(f.String()))

	g := formula.Globally{Arg: formula.Atomic{ID: "fast"}}
	_, err = e.Compile([]Property{{Name: "c", Formula: g}})
	require.NoError(t, err)
	assert.Equal(t, 1, e.monitors.Len())
	assert.True(t, e.monitors.Contains(g.String()))
	assert.False(t, e.monitors.Contains(f.String()))
}

func TestEngine_Cancelled(t *testing.T) {
	e := newEngine(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := e.Check(ctx, speedTrace(t, 1, 2), []Property{{Name: "p", Formula: formula.Atomic{ID: "fast"}}})
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestEngine_CheckAll(t *testing.T) {
	e := newEngine(t)
	traces := []trace.Trace{speedTrace(t, 0, 20), speedTrace(t, 20, 0)}
	all, err := e.CheckAll(context.Background(), traces, []Property{{Name: "fast", Formula: formula.Atomic{ID: "fast"}}})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, []signal.Point[bool]{{Time: 0, Value: false}, {Time: 1, Value: true}}, all[0][0].Verdict.Points())
	assert.Equal(t, []signal.Point[bool]{{Time: 0, Value: true}, {Time: 1, Value: false}}, all[1][0].Verdict.Points())
}
