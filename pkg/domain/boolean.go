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

package domain

// Boolean is the classic two-valued interpretation.
type Boolean struct{}

var _ Comparator[bool] = Boolean{}

func (Boolean) Conjunction(x, y bool) bool { return x && y }

func (Boolean) Disjunction(x, y bool) bool { return x || y }

func (Boolean) Negation(x bool) bool { return !x }

func (Boolean) Min() bool { return false }

func (Boolean) Max() bool { return true }

func (Boolean) FromBool(b bool) bool { return b }

// FromFloat treats strictly positive values as true.
func (Boolean) FromFloat(v float64) bool { return v > 0 }

func (Boolean) Compare(op Operator, lhs, rhs float64) bool {
	switch op {
	case LessThan:
		return lhs < rhs
	case LessOrEqual:
		return lhs <= rhs
	case Equal:
		return lhs == rhs
	case GreaterOrEqual:
		return lhs >= rhs
	case GreaterThan:
		return lhs > rhs
	default:
		return false
	}
}
