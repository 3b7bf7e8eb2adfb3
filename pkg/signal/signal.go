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
	"fmt"
	"math"
	"sort"
)

// Point is a single breakpoint of a signal.
type Point[V any] struct {
	Time  float64
	Value V
}

// Signal is a piecewise-constant signal over float64 time.
type Signal[V any] struct {
	points []Point[V]
	end    float64
	// equal is used to coalesce consecutive equal values, nil disables coalescing.
	equal func(a, b V) bool
}

// New returns an empty signal whose consecutive equal values are coalesced.
func New[V comparable]() *Signal[V] {
	return NewWithEqual(func(a, b V) bool { return a == b })
}

// NewWithEqual returns an empty signal which uses the given function to coalesce consecutive values.
// A nil function keeps every breakpoint, which is what traces of non-comparable records need.
func NewWithEqual[V any](equal func(a, b V) bool) *Signal[V] {
	return &Signal[V]{
		points: make([]Point[V], 0),
		end:    math.NaN(),
		equal:  equal,
	}
}

// Of builds a sealed signal from the given points.
func Of[V comparable](end float64, points ...Point[V]) *Signal[V] {
	s := New[V]()
	for _, p := range points {
		s.Add(p.Time, p.Value)
	}
	if !s.IsEmpty() {
		s.EndAt(end)
	}
	return s
}

// Start returns the time of the first breakpoint, NaN if the signal is empty.
func (s *Signal[V]) Start() float64 {
	if len(s.points) == 0 {
		return math.NaN()
	}
	return s.points[0].Time
}

// End returns the end time of the signal, NaN if the signal is empty.
func (s *Signal[V]) End() float64 {
	return s.end
}

// IsEmpty returns true if the signal has no breakpoints.
func (s *Signal[V]) IsEmpty() bool {
	return len(s.points) == 0
}

// Size returns the number of breakpoints.
func (s *Signal[V]) Size() int {
	return len(s.points)
}

// Add appends the breakpoint (t, v).
//
// t must not precede the current end of the signal. Adding at exactly the time of the last breakpoint overwrites
// its value, and adding a value equal to the last one only moves the end of the signal forward.
func (s *Signal[V]) Add(t float64, v V) {
	if math.IsNaN(t) {
		panic("signal: cannot add a point at NaN time")
	}
	n := len(s.points)
	if n == 0 {
		s.points = append(s.points, Point[V]{Time: t, Value: v})
		s.end = t
		return
	}
	if t < s.end {
		panic(fmt.Sprintf("signal: time %v precedes the signal end %v", t, s.end))
	}
	last := &s.points[n-1]
	if t == last.Time {
		last.Value = v
		if n > 1 && s.same(s.points[n-2].Value, v) {
			s.points = s.points[:n-1]
		}
		return
	}
	if !s.same(last.Value, v) {
		s.points = append(s.points, Point[V]{Time: t, Value: v})
	}
	s.end = t
}

// EndAt seals the signal at the given time.
func (s *Signal[V]) EndAt(t float64) {
	if len(s.points) == 0 {
		panic("signal: cannot set the end of an empty signal")
	}
	if math.IsNaN(t) || t < s.end {
		panic(fmt.Sprintf("signal: end %v precedes the signal end %v", t, s.end))
	}
	s.end = t
}

func (s *Signal[V]) same(a, b V) bool {
	return s.equal != nil && s.equal(a, b)
}

// Contains returns true if t lies in [Start, End].
func (s *Signal[V]) Contains(t float64) bool {
	return len(s.points) > 0 && t >= s.points[0].Time && t <= s.end
}

// segmentIndex returns the index of the segment covering t, -1 when t is outside the signal.
func (s *Signal[V]) segmentIndex(t float64) int {
	if !s.Contains(t) {
		return -1
	}
	return sort.Search(len(s.points), func(i int) bool {
		return s.points[i].Time > t
	}) - 1
}

// ValueAt returns the value of the signal at time t, and false when t is outside the signal.
func (s *Signal[V]) ValueAt(t float64) (V, bool) {
	i := s.segmentIndex(t)
	if i < 0 {
		var zero V
		return zero, false
	}
	return s.points[i].Value, true
}

// Points returns a copy of the breakpoints.
func (s *Signal[V]) Points() []Point[V] {
	points := make([]Point[V], len(s.points))
	copy(points, s.points)
	return points
}

// TimeSet returns the breakpoint times followed by the end time when it is not a breakpoint itself.
func (s *Signal[V]) TimeSet() []float64 {
	times := make([]float64, 0, len(s.points)+1)
	for _, p := range s.points {
		times = append(times, p.Time)
	}
	if len(s.points) > 0 && s.end > s.points[len(s.points)-1].Time {
		times = append(times, s.end)
	}
	return times
}

// Sample returns the value of the signal at each of the given times, skipping the times outside the signal.
func (s *Signal[V]) Sample(times []float64) []Point[V] {
	samples := make([]Point[V], 0, len(times))
	for _, t := range times {
		if v, ok := s.ValueAt(t); ok {
			samples = append(samples, Point[V]{Time: t, Value: v})
		}
	}
	return samples
}

// ForEach calls f for every breakpoint in time order.
func (s *Signal[V]) ForEach(f func(t float64, v V)) {
	for _, p := range s.points {
		f(p.Time, p.Value)
	}
}

// Iterator returns a cursor positioned on the first segment, or on the end of the last one if forward is false.
func (s *Signal[V]) Iterator(forward bool) *Cursor[V] {
	return newCursor(s, forward)
}

func (s *Signal[V]) String() string {
	if s.IsEmpty() {
		return "Signal [ ]"
	}
	return fmt.Sprintf("Signal [start=%v, end=%v, size=%d]", s.Start(), s.End(), s.Size())
}
