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

package expr

import (
	"fmt"

	"github.com/antonmedv/expr"
	"github.com/antonmedv/expr/vm"
)

// Program is an expression compiled once and evaluated against many records.
type Program struct {
	expression string
	program    *vm.Program
}

// Compile compiles the given expression. Record fields are resolved at evaluation time, see Env.
func Compile(expression string) (*Program, error) {
	program, err := expr.Compile(expression)
	if err != nil {
		return nil, fmt.Errorf("unable to compile expression '%s': %s", expression, err)
	}
	return &Program{expression: expression, program: program}, nil
}

// String returns the source expression.
func (p *Program) String() string {
	return p.expression
}

// Run evaluates the program against the record.
func (p *Program) Run(record map[string]interface{}) (result interface{}, err error) {
	// the helper functions panic on bad input.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("unable to execute expression '%s': %v", p.expression, r)
		}
	}()
	result, err = expr.Run(p.program, Env(record))
	if err != nil {
		return nil, fmt.Errorf("unable to execute expression '%s': %s", p.expression, err)
	}
	return result, nil
}

// EvalFloat evaluates the program and converts the result to a float64. Booleans convert to 1 and 0.
func (p *Program) EvalFloat(record map[string]interface{}) (float64, error) {
	result, err := p.Run(record)
	if err != nil {
		return 0, err
	}
	v, err := ToFloat(result)
	if err != nil {
		return 0, fmt.Errorf("unable to cast expression result '%v' to float: %w", result, err)
	}
	return v, nil
}
