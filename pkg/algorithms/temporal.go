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
	"github.com/numaproj/stlmon/pkg/domain"
	"github.com/numaproj/stlmon/pkg/interval"
	"github.com/numaproj/stlmon/pkg/signal"
	"github.com/numaproj/stlmon/pkg/window"
)

// ComputeFuture aggregates s over the future interval itv with op. A nil or unbounded interval aggregates up to the
// end of the signal, starting from init.
func ComputeFuture[R comparable](s *signal.Signal[R], itv *interval.Interval, op func(x, y R) R, init R) *signal.Signal[R] {
	if isUnbounded(itv) {
		return signal.IterateBackward(s, op, init)
	}
	return window.New(itv.Start, itv.End, op, true).Apply(s)
}

// ComputePast aggregates s over the past interval itv with op. A nil or unbounded interval aggregates from the
// start of the signal, starting from init.
func ComputePast[R comparable](s *signal.Signal[R], itv *interval.Interval, op func(x, y R) R, init R) *signal.Signal[R] {
	if isUnbounded(itv) {
		return signal.IterateForward(s, op, init)
	}
	return window.New(itv.Start, itv.End, op, false).Apply(s)
}

// ComputeUntil evaluates left U_itv right as the unbounded until masked by the eventually of right over itv.
func ComputeUntil[R comparable](d domain.Domain[R], left *signal.Signal[R], itv *interval.Interval, right *signal.Signal[R]) *signal.Signal[R] {
	unbounded := UnboundedUntil(d, left, right)
	if isUnbounded(itv) {
		return unbounded
	}
	eventually := ComputeFuture(right, itv, d.Disjunction, d.Min())
	return ApplyBinary(unbounded, d.Conjunction, eventually)
}

// ComputeSince evaluates left S_itv right as the unbounded since masked by the once of right over itv.
func ComputeSince[R comparable](d domain.Domain[R], left *signal.Signal[R], itv *interval.Interval, right *signal.Signal[R]) *signal.Signal[R] {
	unbounded := UnboundedSince(d, left, right)
	if isUnbounded(itv) {
		return unbounded
	}
	once := ComputePast(right, itv, d.Disjunction, d.Min())
	return ApplyBinary(unbounded, d.Conjunction, once)
}

func isUnbounded(itv *interval.Interval) bool {
	return itv == nil || itv.IsUnbounded()
}
