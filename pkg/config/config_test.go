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

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/numaproj/stlmon/pkg/atoms"
	"github.com/numaproj/stlmon/pkg/domain"
	"github.com/numaproj/stlmon/pkg/formula"
	"github.com/numaproj/stlmon/pkg/interval"
)

const sample = `
domain: robustness
trace:
  timeField: ts
atoms:
  - name: fast
    expr: speed
    op: ">"
    threshold: 120
  - name: braking
    expr: brake.pressure > 0
properties:
  - name: never-fast
    formula:
      op: globally
      args:
        - op: not
          args:
            - {op: atomic, atom: fast}
  - name: brakes-soon
    formula:
      op: until
      interval: {start: 0, end: 2.5}
      args:
        - {op: atomic, atom: fast}
        - {op: atomic, atom: braking}
`

func TestRead(t *testing.T) {
	conf, err := Read(strings.NewReader(sample), "yaml")
	require.NoError(t, err)
	assert.Equal(t, "robustness", conf.Domain)
	assert.Equal(t, "ts", conf.Trace.TimeField)
	require.Len(t, conf.Atoms, 2)
	assert.Equal(t, ">", conf.Atoms[0].Op)
	assert.Equal(t, 120.0, conf.Atoms[0].Threshold)
	assert.Equal(t, "brake.pressure > 0", conf.Atoms[1].Expr)
	require.NoError(t, conf.Validate())

	kind, err := conf.Kind()
	require.NoError(t, err)
	assert.Equal(t, domain.KindRobustness, kind)

	props, err := conf.BuildProperties()
	require.NoError(t, err)
	require.Len(t, props, 2)
	assert.Equal(t, "never-fast", props[0].Name)
	assert.Equal(t, formula.Globally{Arg: formula.Not{Arg: formula.Atomic{ID: "fast"}}}, props[0].Formula)
	itv := interval.MustNew(0, 2.5)
	assert.Equal(t, formula.Until{Left: formula.Atomic{ID: "fast"}, Right: formula.Atomic{ID: "braking"}, Interval: &itv}, props[1].Formula)
}

func TestRead_Defaults(t *testing.T) {
	conf, err := Read(strings.NewReader(`{"properties": [{"name": "p", "formula": {"op": "atomic", "atom": "a"}}]}`), "json")
	require.NoError(t, err)
	assert.Equal(t, "boolean", conf.Domain)
	assert.Equal(t, "time", conf.Trace.TimeField)
}

func TestRead_Env(t *testing.T) {
	t.Setenv("STLMON_DOMAIN", "robustness")
	conf, err := Read(strings.NewReader(sample), "yaml")
	require.NoError(t, err)
	assert.Equal(t, "robustness", conf.Domain)

	t.Setenv("STLMON_DOMAIN", "boolean")
	conf, err = Read(strings.NewReader(sample), "yaml")
	require.NoError(t, err)
	assert.Equal(t, "boolean", conf.Domain)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))
	conf, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, conf.Properties, 2)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	conf := &Config{
		Domain: "fuzzy",
		Atoms: []atoms.Definition{
			{Name: "a", Expr: "x"},
			{Name: "a", Expr: "y"},
			{Expr: "z"},
		},
		Properties: []Property{
			{Name: "p", Formula: formula.Spec{Op: "atomic", Atom: "b"}},
			{Name: "p", Formula: formula.Spec{Op: "next"}},
		},
	}
	err := conf.Validate()
	require.Error(t, err)
	errs := multierr.Errors(err)
	assert.Len(t, errs, 6)
	for _, e := range errs {
		assert.True(t, errors.Is(e, ErrInvalidConfig))
	}

	_, err = conf.BuildProperties()
	assert.True(t, errors.Is(err, formula.ErrInvalidSpec))

	assert.Error(t, (&Config{Domain: "boolean"}).Validate())
}
