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

// Package config loads the description of a monitoring job: the domain, the atomic propositions and the properties.
package config

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/multierr"

	"github.com/numaproj/stlmon/pkg/atoms"
	"github.com/numaproj/stlmon/pkg/domain"
	"github.com/numaproj/stlmon/pkg/engine"
	"github.com/numaproj/stlmon/pkg/formula"
	"github.com/numaproj/stlmon/pkg/trace"
)

// EnvPrefix prefixes the environment variables overriding the configuration, e.g. STLMON_DOMAIN.
const EnvPrefix = "STLMON"

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config describes a monitoring job.
//
//	domain: robustness
//	trace:
//	  timeField: ts
//	atoms:
//	  - name: fast
//	    expr: speed
//	    op: ">"
//	    threshold: 120
//	properties:
//	  - name: never-fast
//	    formula:
//	      op: globally
//	      args: [{op: not, args: [{op: atomic, atom: fast}]}]
type Config struct {
	Domain     string             `json:"domain" mapstructure:"domain"`
	Trace      TraceConfig        `json:"trace" mapstructure:"trace"`
	Atoms      []atoms.Definition `json:"atoms" mapstructure:"atoms"`
	Properties []Property         `json:"properties" mapstructure:"properties"`
}

// TraceConfig tells how traces are decoded.
type TraceConfig struct {
	TimeField string `json:"timeField" mapstructure:"timeField"`
}

// Property is a named formula.
type Property struct {
	Name    string       `json:"name" mapstructure:"name"`
	Formula formula.Spec `json:"formula" mapstructure:"formula"`
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetDefault("domain", string(domain.KindBoolean))
	v.SetDefault("trace.timeField", trace.DefaultTimeField)
	return v
}

// Load reads the configuration file at path. Without a path, stlmon.yaml is looked up in the working directory
// and in /etc/stlmon.
func Load(path string) (*Config, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("stlmon")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/stlmon")
	}
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to load configuration file. %w", err)
	}
	return unmarshal(v)
}

// Read reads a configuration of the given format, e.g. yaml or json.
func Read(r io.Reader, format string) (*Config, error) {
	v := newViper()
	v.SetConfigType(format)
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("failed to read configuration. %w", err)
	}
	return unmarshal(v)
}

func unmarshal(v *viper.Viper) (*Config, error) {
	conf := &Config{}
	if err := v.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("failed unmarshal configuration file. %w", err)
	}
	return conf, nil
}

// Kind returns the domain of the configuration.
func (c *Config) Kind() (domain.Kind, error) {
	return domain.ParseKind(c.Domain)
}

// BuildProperties builds the formulas of the properties.
func (c *Config) BuildProperties() ([]engine.Property, error) {
	var errs error
	props := make([]engine.Property, 0, len(c.Properties))
	for i, p := range c.Properties {
		f, err := p.Formula.Build()
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("property %d (%s): %w", i, p.Name, err))
			continue
		}
		props = append(props, engine.Property{Name: p.Name, Formula: f})
	}
	if errs != nil {
		return nil, errs
	}
	return props, nil
}

// Validate checks the whole configuration, reporting every problem found.
func (c *Config) Validate() error {
	var errs error
	if _, err := c.Kind(); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("%w: %v", ErrInvalidConfig, err))
	}
	defined := make(map[string]struct{}, len(c.Atoms))
	for i, a := range c.Atoms {
		switch {
		case a.Name == "":
			errs = multierr.Append(errs, fmt.Errorf("%w: atom %d has no name", ErrInvalidConfig, i))
		case a.Expr == "":
			errs = multierr.Append(errs, fmt.Errorf("%w: atom %q has no expression", ErrInvalidConfig, a.Name))
		}
		if _, ok := defined[a.Name]; ok {
			errs = multierr.Append(errs, fmt.Errorf("%w: atom %q is defined twice", ErrInvalidConfig, a.Name))
		}
		defined[a.Name] = struct{}{}
	}
	if len(c.Properties) == 0 {
		errs = multierr.Append(errs, fmt.Errorf("%w: no properties", ErrInvalidConfig))
	}
	names := make(map[string]struct{}, len(c.Properties))
	for i, p := range c.Properties {
		if p.Name == "" {
			errs = multierr.Append(errs, fmt.Errorf("%w: property %d has no name", ErrInvalidConfig, i))
		} else if _, ok := names[p.Name]; ok {
			errs = multierr.Append(errs, fmt.Errorf("%w: property %q is defined twice", ErrInvalidConfig, p.Name))
		}
		names[p.Name] = struct{}{}
		f, err := p.Formula.Build()
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%w: property %q: %v", ErrInvalidConfig, p.Name, err))
			continue
		}
		for _, id := range formula.Atoms(f) {
			if _, ok := defined[id]; !ok {
				errs = multierr.Append(errs, fmt.Errorf("%w: property %q uses the undefined atom %q", ErrInvalidConfig, p.Name, id))
			}
		}
	}
	return errs
}
