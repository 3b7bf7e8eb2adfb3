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

// Package atoms builds atomic propositions from declarative definitions over trace records.
package atoms

import (
	"errors"
	"fmt"

	"github.com/numaproj/stlmon/pkg/domain"
	"github.com/numaproj/stlmon/pkg/metrics"
	"github.com/numaproj/stlmon/pkg/shared/expr"
	"github.com/numaproj/stlmon/pkg/trace"
)

// ErrInvalidDefinition is returned for definitions which cannot be turned into an atomic proposition.
var ErrInvalidDefinition = errors.New("invalid atomic proposition")

// Definition declares an atomic proposition.
//
// Expr is evaluated on every sample. Without Op, a boolean result is mapped with FromBool and a numeric one with
// FromFloat. With Op, the numeric result is compared against Threshold, e.g. speed <= 120 gives the distance to
// the limit in the robustness domain.
type Definition struct {
	Name      string  `json:"name" mapstructure:"name"`
	Expr      string  `json:"expr" mapstructure:"expr"`
	Op        string  `json:"op,omitempty" mapstructure:"op"`
	Threshold float64 `json:"threshold,omitempty" mapstructure:"threshold"`
}

// Build compiles the definitions into the atomic propositions of the domain cmp.
//
// A sample an atom fails to evaluate on maps to cmp.Min() and is counted in the atom_eval_errors_total metric.
func Build[R comparable](defs []Definition, cmp domain.Comparator[R]) (map[string]func(trace.Record) R, error) {
	result := make(map[string]func(trace.Record) R, len(defs))
	for _, def := range defs {
		if def.Name == "" {
			return nil, fmt.Errorf("%w: missing name for expression %q", ErrInvalidDefinition, def.Expr)
		}
		if _, ok := result[def.Name]; ok {
			return nil, fmt.Errorf("%w: duplicate name %q", ErrInvalidDefinition, def.Name)
		}
		atom, err := New(def, cmp)
		if err != nil {
			return nil, err
		}
		result[def.Name] = atom
	}
	return result, nil
}

// New compiles a single definition.
func New[R comparable](def Definition, cmp domain.Comparator[R]) (func(trace.Record) R, error) {
	if def.Expr == "" {
		return nil, fmt.Errorf("%w: %q has no expression", ErrInvalidDefinition, def.Name)
	}
	program, err := expr.Compile(def.Expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidDefinition, def.Name, err)
	}
	errorsCounter := metrics.AtomEvalErrors.WithLabelValues(def.Name)
	if def.Op == "" {
		return func(r trace.Record) R {
			result, err := program.Run(r)
			if err != nil {
				errorsCounter.Inc()
				return cmp.Min()
			}
			if b, ok := result.(bool); ok {
				return cmp.FromBool(b)
			}
			v, err := expr.ToFloat(result)
			if err != nil {
				errorsCounter.Inc()
				return cmp.Min()
			}
			return cmp.FromFloat(v)
		}, nil
	}
	op, err := domain.ParseOperator(def.Op)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidDefinition, def.Name, err)
	}
	return func(r trace.Record) R {
		v, err := program.EvalFloat(r)
		if err != nil {
			errorsCounter.Inc()
			return cmp.Min()
		}
		return cmp.Compare(op, v, def.Threshold)
	}, nil
}
