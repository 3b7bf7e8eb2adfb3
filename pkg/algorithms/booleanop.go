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
	"math"

	"github.com/numaproj/stlmon/pkg/signal"
)

// ApplyUnary maps every value of s through f, keeping its breakpoints and end.
func ApplyUnary[V any, R comparable](s *signal.Signal[V], f func(V) R) *signal.Signal[R] {
	result := signal.New[R]()
	if s.IsEmpty() {
		return result
	}
	s.ForEach(func(t float64, v V) {
		result.Add(t, f(v))
	})
	result.EndAt(s.End())
	return result
}

// ApplyBinary merges s1 and s2 pointwise with op. The result is defined on the intersection of the two domains
// and has a breakpoint only where one of the inputs has one.
func ApplyBinary[A, B any, R comparable](s1 *signal.Signal[A], op func(A, B) R, s2 *signal.Signal[B]) *signal.Signal[R] {
	result := signal.New[R]()
	start, end, ok := overlap(s1, s2)
	if !ok {
		return result
	}
	c1 := s1.Iterator(true)
	c2 := s2.Iterator(true)
	time := start
	c1.Move(time)
	c2.Move(time)
	for {
		result.Add(time, op(c1.Value(), c2.Value()))
		time = minTime(c1.NextTime(), c2.NextTime())
		if math.IsNaN(time) || time > end {
			break
		}
		c1.Seek(time)
		c2.Seek(time)
	}
	result.EndAt(end)
	return result
}

// minTime returns the smallest of two instants ignoring NaN, NaN if both are.
func minTime(t1, t2 float64) float64 {
	switch {
	case math.IsNaN(t1):
		return t2
	case math.IsNaN(t2):
		return t1
	default:
		return math.Min(t1, t2)
	}
}

// maxTime returns the largest of two instants ignoring NaN, NaN if both are.
func maxTime(t1, t2 float64) float64 {
	switch {
	case math.IsNaN(t1):
		return t2
	case math.IsNaN(t2):
		return t1
	default:
		return math.Max(t1, t2)
	}
}
