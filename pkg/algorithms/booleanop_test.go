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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/numaproj/stlmon/pkg/signal"
)

type fp = signal.Point[float64]

type bp = signal.Point[bool]

func sum(x, y float64) float64 { return x + y }

func TestApplyUnary(t *testing.T) {
	s := signal.Of(5, fp{Time: 0, Value: 1}, fp{Time: 2, Value: -1}, fp{Time: 3, Value: 2})
	result := ApplyUnary(s, func(v float64) bool { return v > 0 })
	assert.Equal(t, []bp{{Time: 0, Value: true}, {Time: 2, Value: false}, {Time: 3, Value: true}}, result.Points())
	assert.Equal(t, 5.0, result.End())

	// coalesced breakpoints
	result = ApplyUnary(s, func(v float64) bool { return true })
	assert.Equal(t, []bp{{Time: 0, Value: true}}, result.Points())
	assert.Equal(t, 5.0, result.End())

	assert.True(t, ApplyUnary(signal.New[float64](), func(v float64) bool { return true }).IsEmpty())
}

func TestApplyBinary(t *testing.T) {
	s1 := signal.Of(6, fp{Time: 0, Value: 1}, fp{Time: 2, Value: 3})
	s2 := signal.Of(5, fp{Time: 1, Value: 10}, fp{Time: 4, Value: 20})

	result := ApplyBinary(s1, sum, s2)
	assert.Equal(t, []fp{{Time: 1, Value: 11}, {Time: 2, Value: 13}, {Time: 4, Value: 23}}, result.Points())
	assert.Equal(t, 1.0, result.Start())
	assert.Equal(t, 5.0, result.End())
}

func TestApplyBinary_Empty(t *testing.T) {
	s := signal.Of(1, fp{Time: 0, Value: 1})
	assert.True(t, ApplyBinary(s, sum, signal.New[float64]()).IsEmpty())
	assert.True(t, ApplyBinary(signal.New[float64](), sum, s).IsEmpty())
	// disjoint domains
	assert.True(t, ApplyBinary(s, sum, signal.Of(3, fp{Time: 2, Value: 1})).IsEmpty())
	// touching domains share a single instant
	result := ApplyBinary(s, sum, signal.Of(3, fp{Time: 1, Value: 1}))
	assert.Equal(t, []fp{{Time: 1, Value: 2}}, result.Points())
	assert.Equal(t, 1.0, result.End())
}

func randomSignal(r *rand.Rand) *signal.Signal[float64] {
	s := signal.New[float64]()
	tm := float64(r.Intn(4))
	n := 1 + r.Intn(15)
	for i := 0; i < n; i++ {
		s.Add(tm, float64(r.Intn(5)))
		tm += float64(1 + r.Intn(3))
	}
	s.EndAt(tm)
	return s
}

func TestApplyBinary_Random(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for n := 0; n < 200; n++ {
		s1, s2 := randomSignal(r), randomSignal(r)
		result := ApplyBinary(s1, sum, s2)
		start, end, ok := overlap(s1, s2)
		if !ok {
			assert.True(t, result.IsEmpty())
			continue
		}
		require.Equal(t, start, result.Start())
		require.Equal(t, end, result.End())
		for tm := start; tm <= end; tm += 0.25 {
			v1, _ := s1.ValueAt(tm)
			v2, _ := s2.ValueAt(tm)
			v, ok := result.ValueAt(tm)
			require.True(t, ok)
			assert.Equal(t, v1+v2, v, "at %v", tm)
		}
		// no redundant breakpoints
		points := result.Points()
		for i := 1; i < len(points); i++ {
			assert.NotEqual(t, points[i-1].Value, points[i].Value)
		}
	}
}
