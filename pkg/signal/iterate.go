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

// IterateForward scans s from its start and returns the signal of the running accumulation f(v, acc), seeded
// with init. It is the fixpoint used by unbounded past operators.
func IterateForward[V any, R comparable](s *Signal[V], f func(v V, acc R) R, init R) *Signal[R] {
	result := New[R]()
	if s.IsEmpty() {
		return result
	}
	acc := init
	for _, p := range s.points {
		acc = f(p.Value, acc)
		result.Add(p.Time, acc)
	}
	result.EndAt(s.end)
	return result
}

// IterateBackward scans s from its end and returns the signal of the running accumulation f(v, acc), seeded
// with init. It is the fixpoint used by unbounded future operators.
func IterateBackward[V any, R comparable](s *Signal[V], f func(v V, acc R) R, init R) *Signal[R] {
	result := New[R]()
	if s.IsEmpty() {
		return result
	}
	values := make([]R, len(s.points))
	acc := init
	for i := len(s.points) - 1; i >= 0; i-- {
		acc = f(s.points[i].Value, acc)
		values[i] = acc
	}
	for i, p := range s.points {
		result.Add(p.Time, values[i])
	}
	result.EndAt(s.end)
	return result
}
