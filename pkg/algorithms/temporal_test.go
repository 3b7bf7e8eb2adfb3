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

package algorithms

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/numaproj/stlmon/pkg/domain"
	"github.com/numaproj/stlmon/pkg/interval"
	"github.com/numaproj/stlmon/pkg/signal"
)

func booleans(end float64, points ...bp) *signal.Signal[bool] {
	return signal.Of(end, points...)
}

func TestUnboundedUntil(t *testing.T) {
	d := domain.Boolean{}
	tests := []struct {
		name     string
		left     *signal.Signal[bool]
		right    *signal.Signal[bool]
		expected []bp
	}{
		{
			name:     "left holds until right",
			left:     booleans(10, bp{Time: 0, Value: true}),
			right:    booleans(10, bp{Time: 0, Value: false}, bp{Time: 5, Value: true}),
			expected: []bp{{Time: 0, Value: true}},
		},
		{
			name:     "left starts late",
			left:     booleans(10, bp{Time: 0, Value: false}, bp{Time: 3, Value: true}),
			right:    booleans(10, bp{Time: 0, Value: false}, bp{Time: 5, Value: true}),
			expected: []bp{{Time: 0, Value: false}, {Time: 3, Value: true}},
		},
		{
			name:     "right never holds",
			left:     booleans(10, bp{Time: 0, Value: true}),
			right:    booleans(10, bp{Time: 0, Value: false}),
			expected: []bp{{Time: 0, Value: false}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := UnboundedUntil[bool](d, tt.left, tt.right)
			assert.Equal(t, tt.expected, result.Points())
			assert.Equal(t, 10.0, result.End())
		})
	}
}

func TestUnboundedSince(t *testing.T) {
	d := domain.Boolean{}
	right := booleans(10, bp{Time: 0, Value: true}, bp{Time: 2, Value: false})

	result := UnboundedSince[bool](d, booleans(10, bp{Time: 0, Value: true}), right)
	assert.Equal(t, []bp{{Time: 0, Value: true}}, result.Points())
	assert.Equal(t, 10.0, result.End())

	result = UnboundedSince[bool](d, booleans(10, bp{Time: 0, Value: true}, bp{Time: 4, Value: false}), right)
	assert.Equal(t, []bp{{Time: 0, Value: true}, {Time: 4, Value: false}}, result.Points())
	assert.Equal(t, 10.0, result.End())
}

func TestUnbounded_Fixpoint(t *testing.T) {
	d := domain.Boolean{}
	s := booleans(7, bp{Time: 1, Value: true})
	for _, result := range []*signal.Signal[bool]{UnboundedUntil[bool](d, s, s), UnboundedSince[bool](d, s, s)} {
		assert.Equal(t, []bp{{Time: 1, Value: true}}, result.Points())
		assert.Equal(t, 1.0, result.Start())
		assert.Equal(t, 7.0, result.End())
	}
	assert.True(t, UnboundedUntil[bool](d, s, signal.New[bool]()).IsEmpty())
	assert.True(t, UnboundedSince[bool](d, signal.New[bool](), s).IsEmpty())
}

func TestUnboundedUntil_Robustness(t *testing.T) {
	d := domain.Robustness{}
	left := signal.Of(4, fp{Time: 0, Value: 2}, fp{Time: 2, Value: 5})
	right := signal.Of(4, fp{Time: 0, Value: -1}, fp{Time: 3, Value: 1})

	result := UnboundedUntil[float64](d, left, right)
	// max(right, min(left, acc)) scanned from the end
	assert.Equal(t, []fp{{Time: 0, Value: 1}}, result.Points())
	assert.Equal(t, 4.0, result.End())
}

func TestComputeFuture_Unbounded(t *testing.T) {
	d := domain.Boolean{}
	s := booleans(10, bp{Time: 0, Value: false}, bp{Time: 3, Value: true}, bp{Time: 5, Value: false})

	result := ComputeFuture(s, nil, d.Disjunction, d.Min())
	assert.Equal(t, []bp{{Time: 0, Value: true}, {Time: 5, Value: false}}, result.Points())
	assert.Equal(t, 10.0, result.End())

	unbounded := interval.Unbounded()
	assert.Equal(t, result.Points(), ComputeFuture(s, &unbounded, d.Disjunction, d.Min()).Points())

	result = ComputePast(s, nil, d.Conjunction, d.Max())
	assert.Equal(t, []bp{{Time: 0, Value: false}}, result.Points())
	assert.Equal(t, 10.0, result.End())
}

func TestComputeUntil_Bounded(t *testing.T) {
	d := domain.Boolean{}
	left := booleans(10, bp{Time: 0, Value: true})
	right := booleans(10, bp{Time: 0, Value: false}, bp{Time: 5, Value: true})
	itv := interval.MustNew(0, 2)

	result := ComputeUntil[bool](d, left, &itv, right)
	assert.Equal(t, []bp{{Time: 0, Value: false}, {Time: 3, Value: true}}, result.Points())
	assert.Equal(t, 8.0, result.End())

	// without a bound the mask is not applied.
	result = ComputeUntil[bool](d, left, nil, right)
	assert.Equal(t, []bp{{Time: 0, Value: true}}, result.Points())
	assert.Equal(t, 10.0, result.End())
}

func TestComputeSince_Bounded(t *testing.T) {
	d := domain.Boolean{}
	left := booleans(10, bp{Time: 0, Value: true})
	right := booleans(10, bp{Time: 0, Value: true}, bp{Time: 2, Value: false})
	itv := interval.MustNew(0, 3)

	result := ComputeSince[bool](d, left, &itv, right)
	assert.Equal(t, []bp{{Time: 3, Value: true}, {Time: 5, Value: false}}, result.Points())
	assert.Equal(t, 3.0, result.Start())
	assert.Equal(t, 10.0, result.End())
}

// unrolled evaluates the until (backward) or since (forward) recurrence at every breakpoint of the two signals.
func unrolled(d domain.Robustness, left, right *signal.Signal[float64], backward bool) map[float64]float64 {
	start, end, _ := overlap(left, right)
	var times []float64
	for _, tm := range append(left.TimeSet(), right.TimeSet()...) {
		if tm >= start && tm <= end {
			times = append(times, tm)
		}
	}
	sort.Float64s(times)
	if backward {
		sort.Sort(sort.Reverse(sort.Float64Slice(times)))
	}
	values := make(map[float64]float64, len(times))
	current := d.Min()
	for _, tm := range times {
		if _, ok := values[tm]; ok {
			continue
		}
		l, _ := left.ValueAt(tm)
		r, _ := right.ValueAt(tm)
		current = untilOp[float64](d, l, r, current)
		values[tm] = current
	}
	return values
}

func TestUnbounded_Random(t *testing.T) {
	d := domain.Robustness{}
	r := rand.New(rand.NewSource(11))
	for n := 0; n < 200; n++ {
		left, right := randomSignal(r), randomSignal(r)
		if _, _, ok := overlap(left, right); !ok {
			assert.True(t, UnboundedUntil[float64](d, left, right).IsEmpty())
			continue
		}
		for name, tc := range map[string]struct {
			result   *signal.Signal[float64]
			backward bool
		}{
			"until": {result: UnboundedUntil[float64](d, left, right), backward: true},
			"since": {result: UnboundedSince[float64](d, left, right), backward: false},
		} {
			for tm, expected := range unrolled(d, left, right, tc.backward) {
				v, ok := tc.result.ValueAt(tm)
				if assert.True(t, ok, "%s defined at %v", name, tm) {
					assert.Equal(t, expected, v, "%s at %v", name, tm)
				}
			}
		}
	}
}
