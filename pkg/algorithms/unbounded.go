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

	"github.com/numaproj/stlmon/pkg/domain"
	"github.com/numaproj/stlmon/pkg/signal"
)

// UnboundedUntil computes left U right by scanning both signals backward from the end of their common domain.
// The accumulator starts at the domain minimum and each merged breakpoint sets it to right ∨ (left ∧ acc).
func UnboundedUntil[R comparable](d domain.Domain[R], left, right *signal.Signal[R]) *signal.Signal[R] {
	result := signal.New[R]()
	start, end, ok := overlap(left, right)
	if !ok {
		return result
	}
	c1 := left.Iterator(false)
	c2 := right.Iterator(false)
	// the scan runs backward, the values are collected and replayed in time order.
	steps := make([]signal.Point[R], 0, left.Size()+right.Size())
	current := d.Min()
	time := end
	c1.Move(time)
	c2.Move(time)
	for {
		current = untilOp(d, c1.Value(), c2.Value(), current)
		steps = append(steps, signal.Point[R]{Time: time, Value: current})
		time = maxTime(c1.PreviousTime(), c2.PreviousTime())
		if math.IsNaN(time) || time < start {
			break
		}
		c1.Seek(time)
		c2.Seek(time)
	}
	for i := len(steps) - 1; i >= 0; i-- {
		result.Add(steps[i].Time, steps[i].Value)
	}
	result.EndAt(end)
	return result
}

// UnboundedSince computes left S right by scanning both signals forward from the start of their common domain.
func UnboundedSince[R comparable](d domain.Domain[R], left, right *signal.Signal[R]) *signal.Signal[R] {
	result := signal.New[R]()
	start, end, ok := overlap(left, right)
	if !ok {
		return result
	}
	c1 := left.Iterator(true)
	c2 := right.Iterator(true)
	current := d.Min()
	time := start
	c1.Move(time)
	c2.Move(time)
	for {
		current = untilOp(d, c1.Value(), c2.Value(), current)
		result.Add(time, current)
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

// untilOp is one unrolling step of the until fixpoint.
// TODO: the textbook least fixpoint conjoins right with left as well, keep the current semantics until the
// bounded decomposition is revisited with it.
func untilOp[R comparable](d domain.Domain[R], left, right, current R) R {
	return d.Disjunction(right, d.Conjunction(left, current))
}

// overlap returns the common domain of the two signals, false when they do not intersect.
func overlap[A, B any](s1 *signal.Signal[A], s2 *signal.Signal[B]) (float64, float64, bool) {
	if s1.IsEmpty() || s2.IsEmpty() {
		return math.NaN(), math.NaN(), false
	}
	start := math.Max(s1.Start(), s2.Start())
	end := math.Min(s1.End(), s2.End())
	return start, end, start <= end
}
