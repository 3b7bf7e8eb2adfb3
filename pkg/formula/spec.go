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

package formula

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/goccy/go-json"
	"sigs.k8s.io/yaml"

	"github.com/numaproj/stlmon/pkg/interval"
)

// Operator names of the serialized form. Names are case-insensitive and the single letter aliases are accepted.
const (
	OpAtomic       = "atomic"
	OpAnd          = "and"
	OpOr           = "or"
	OpNot          = "not"
	OpImplies      = "implies"
	OpEventually   = "eventually"
	OpGlobally     = "globally"
	OpOnce         = "once"
	OpHistorically = "historically"
	OpUntil        = "until"
	OpSince        = "since"
)

var aliases = map[string]string{
	"atom": OpAtomic,
	"&":    OpAnd,
	"|":    OpOr,
	"!":    OpNot,
	"->":   OpImplies,
	"f":    OpEventually,
	"g":    OpGlobally,
	"o":    OpOnce,
	"h":    OpHistorically,
	"u":    OpUntil,
	"s":    OpSince,
}

// ErrInvalidSpec is returned when a serialized formula cannot be built.
var ErrInvalidSpec = errors.New("invalid formula")

// Spec is the serialized form of a formula, used by configuration files and JSON documents.
// Intervals are closed, Build rejects the open flags.
//
//	{"op": "eventually", "interval": {"start": 0, "end": 5}, "args": [{"op": "atomic", "atom": "speeding"}]}
type Spec struct {
	Op       string             `json:"op" mapstructure:"op"`
	Atom     string             `json:"atom,omitempty" mapstructure:"atom"`
	Args     []Spec             `json:"args,omitempty" mapstructure:"args"`
	Interval *interval.Interval `json:"interval,omitempty" mapstructure:"interval"`
}

// Parse decodes a JSON formula.
func Parse(data []byte) (Formula, error) {
	var s Spec
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode formula: %w", err)
	}
	return s.Build()
}

// ParseYAML decodes a YAML formula.
func ParseYAML(data []byte) (Formula, error) {
	j, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode formula: %w", err)
	}
	return Parse(j)
}

// Build validates the spec and returns the formula it describes.
func (s Spec) Build() (Formula, error) {
	op := strings.ToLower(strings.TrimSpace(s.Op))
	if alias, ok := aliases[op]; ok {
		op = alias
	}
	switch op {
	case OpAtomic:
		if s.Atom == "" {
			return nil, fmt.Errorf("%w: atomic proposition without a name", ErrInvalidSpec)
		}
		if len(s.Args) > 0 || s.Interval != nil {
			return nil, fmt.Errorf("%w: atomic proposition %q takes no arguments", ErrInvalidSpec, s.Atom)
		}
		return Atomic{ID: s.Atom}, nil
	case OpNot:
		args, err := s.build(op, 1)
		if err != nil {
			return nil, err
		}
		return Not{Arg: args[0]}, nil
	case OpAnd, OpOr, OpImplies:
		args, err := s.build(op, 2)
		if err != nil {
			return nil, err
		}
		switch op {
		case OpAnd:
			return And{Left: args[0], Right: args[1]}, nil
		case OpOr:
			return Or{Left: args[0], Right: args[1]}, nil
		default:
			return Or{Left: Not{Arg: args[0]}, Right: args[1]}, nil
		}
	case OpEventually, OpGlobally, OpOnce, OpHistorically:
		args, err := s.build(op, 1)
		if err != nil {
			return nil, err
		}
		itv, err := s.bound(op)
		if err != nil {
			return nil, err
		}
		switch op {
		case OpEventually:
			return Eventually{Arg: args[0], Interval: itv}, nil
		case OpGlobally:
			return Globally{Arg: args[0], Interval: itv}, nil
		case OpOnce:
			return Once{Arg: args[0], Interval: itv}, nil
		default:
			return Historically{Arg: args[0], Interval: itv}, nil
		}
	case OpUntil, OpSince:
		args, err := s.build(op, 2)
		if err != nil {
			return nil, err
		}
		itv, err := s.bound(op)
		if err != nil {
			return nil, err
		}
		if op == OpUntil {
			return Until{Left: args[0], Right: args[1], Interval: itv}, nil
		}
		return Since{Left: args[0], Right: args[1], Interval: itv}, nil
	default:
		return nil, fmt.Errorf("%w: unknown operator %q", ErrInvalidSpec, s.Op)
	}
}

// build builds the arguments of op checking its arity.
func (s Spec) build(op string, arity int) ([]Formula, error) {
	if len(s.Args) != arity {
		return nil, fmt.Errorf("%w: %s expects %d argument(s), got %d", ErrInvalidSpec, op, arity, len(s.Args))
	}
	if s.Atom != "" {
		return nil, fmt.Errorf("%w: %s cannot name an atom", ErrInvalidSpec, op)
	}
	args := make([]Formula, 0, arity)
	for _, a := range s.Args {
		f, err := a.Build()
		if err != nil {
			return nil, err
		}
		args = append(args, f)
	}
	return args, nil
}

// bound validates the interval of a temporal operator. [0, +Inf) is normalized to nil.
func (s Spec) bound(op string) (*interval.Interval, error) {
	if s.Interval == nil {
		return nil, nil
	}
	// monitors evaluate closed windows only.
	if s.Interval.OpenLeft || s.Interval.OpenRight {
		return nil, fmt.Errorf("%w: %s: open interval %s is not supported, bounds are closed", ErrInvalidSpec, op, s.Interval)
	}
	itv, err := interval.New(s.Interval.Start, s.Interval.End)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidSpec, op, err)
	}
	if math.IsInf(itv.End, 1) {
		if itv.Start != 0 {
			return nil, fmt.Errorf("%w: %s: unbounded interval must start at 0, got %v", ErrInvalidSpec, op, itv.Start)
		}
		return nil, nil
	}
	return &itv, nil
}

// ToSpec returns the serialized form of f.
func ToSpec(f Formula) Spec {
	switch n := f.(type) {
	case Atomic:
		return Spec{Op: OpAtomic, Atom: n.ID}
	case Not:
		return Spec{Op: OpNot, Args: []Spec{ToSpec(n.Arg)}}
	case And:
		return Spec{Op: OpAnd, Args: []Spec{ToSpec(n.Left), ToSpec(n.Right)}}
	case Or:
		return Spec{Op: OpOr, Args: []Spec{ToSpec(n.Left), ToSpec(n.Right)}}
	case Eventually:
		return Spec{Op: OpEventually, Args: []Spec{ToSpec(n.Arg)}, Interval: n.Interval}
	case Globally:
		return Spec{Op: OpGlobally, Args: []Spec{ToSpec(n.Arg)}, Interval: n.Interval}
	case Once:
		return Spec{Op: OpOnce, Args: []Spec{ToSpec(n.Arg)}, Interval: n.Interval}
	case Historically:
		return Spec{Op: OpHistorically, Args: []Spec{ToSpec(n.Arg)}, Interval: n.Interval}
	case Until:
		return Spec{Op: OpUntil, Args: []Spec{ToSpec(n.Left), ToSpec(n.Right)}, Interval: n.Interval}
	case Since:
		return Spec{Op: OpSince, Args: []Spec{ToSpec(n.Left), ToSpec(n.Right)}, Interval: n.Interval}
	default:
		return Spec{}
	}
}

// Marshal encodes f as JSON.
func Marshal(f Formula) ([]byte, error) {
	return json.Marshal(ToSpec(f))
}
