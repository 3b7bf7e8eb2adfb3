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

package signal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignal_Empty(t *testing.T) {
	s := New[float64]()
	assert.True(t, s.IsEmpty())
	assert.True(t, math.IsNaN(s.Start()))
	assert.True(t, math.IsNaN(s.End()))
	_, ok := s.ValueAt(0)
	assert.False(t, ok)
	assert.Equal(t, "Signal [ ]", s.String())
	assert.Panics(t, func() { s.EndAt(1) })
}

func TestSignal_Add(t *testing.T) {
	s := New[float64]()
	s.Add(0, 1)
	s.Add(1, 2)
	s.Add(2, 3)
	s.EndAt(5)
	assert.Equal(t, 3, s.Size())
	assert.Equal(t, 0.0, s.Start())
	assert.Equal(t, 5.0, s.End())
	assert.Equal(t, "Signal [start=0, end=5, size=3]", s.String())

	tests := []struct {
		time     float64
		expected float64
		ok       bool
	}{
		{-1, 0, false},
		{0, 1, true},
		{0.5, 1, true},
		{1, 2, true},
		{2.9, 3, true},
		{5, 3, true},
		{5.1, 0, false},
	}
	for _, tt := range tests {
		v, ok := s.ValueAt(tt.time)
		assert.Equal(t, tt.ok, ok, "time %v", tt.time)
		assert.Equal(t, tt.expected, v, "time %v", tt.time)
	}
}

func TestSignal_AddCoalesces(t *testing.T) {
	s := New[bool]()
	s.Add(0, true)
	s.Add(1, true)
	s.Add(2, false)
	s.Add(3, false)
	assert.Equal(t, []Point[bool]{{0, true}, {2, false}}, s.Points())
	assert.Equal(t, 3.0, s.End())

	raw := NewWithEqual[map[string]int](nil)
	raw.Add(0, map[string]int{"x": 1})
	raw.Add(1, map[string]int{"x": 1})
	assert.Equal(t, 2, raw.Size())
}

func TestSignal_AddOverwritesLastBreakpoint(t *testing.T) {
	s := New[int]()
	s.Add(0, 1)
	s.Add(1, 2)
	s.Add(1, 3)
	assert.Equal(t, []Point[int]{{0, 1}, {1, 3}}, s.Points())
	s.Add(1, 1)
	assert.Equal(t, []Point[int]{{0, 1}}, s.Points())
	assert.Equal(t, 1.0, s.End())
}

func TestSignal_AddOutOfOrder(t *testing.T) {
	s := New[int]()
	s.Add(1, 1)
	s.Add(2, 1)
	assert.Panics(t, func() { s.Add(1.5, 2) })
	assert.Panics(t, func() { s.Add(math.NaN(), 2) })
	assert.Panics(t, func() { s.EndAt(1) })
	assert.NotPanics(t, func() { s.Add(2, 3) })
}

func TestSignal_TimeSetAndSample(t *testing.T) {
	s := Of(4, Point[int]{0, 1}, Point[int]{2, 2})
	assert.Equal(t, []float64{0, 2, 4}, s.TimeSet())
	assert.Equal(t, []Point[int]{{1, 1}, {3, 2}}, s.Sample([]float64{-1, 1, 3, 5}))

	closed := Of(2, Point[int]{0, 1}, Point[int]{2, 2})
	assert.Equal(t, []float64{0, 2}, closed.TimeSet())
}

func TestIterate(t *testing.T) {
	s := Of(4, Point[float64]{0, 1}, Point[float64]{1, 3}, Point[float64]{2, 2}, Point[float64]{3, 0})
	maxOf := func(v, acc float64) float64 { return math.Max(v, acc) }

	forward := IterateForward(s, maxOf, math.Inf(-1))
	assert.Equal(t, []Point[float64]{{0, 1}, {1, 3}}, forward.Points())
	assert.Equal(t, 4.0, forward.End())

	backward := IterateBackward(s, maxOf, math.Inf(-1))
	assert.Equal(t, []Point[float64]{{0, 3}, {2, 2}, {3, 0}}, backward.Points())
	assert.Equal(t, 4.0, backward.End())

	assert.True(t, IterateForward(New[float64](), maxOf, 0).IsEmpty())
}
