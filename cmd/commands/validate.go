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

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/numaproj/stlmon/pkg/atoms"
	"github.com/numaproj/stlmon/pkg/config"
	"github.com/numaproj/stlmon/pkg/domain"
	"github.com/numaproj/stlmon/pkg/engine"
	"github.com/numaproj/stlmon/pkg/monitoring"
	"github.com/numaproj/stlmon/pkg/shared/logging"
	"github.com/numaproj/stlmon/pkg/trace"
)

func NewValidateCommand() *cobra.Command {
	var (
		configFile string
		futureOnly bool
	)

	command := &cobra.Command{
		Use:   "validate",
		Short: "Validate a configuration and compile its properties",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logging.NewLogger().Named("validate")
			conf, err := loadConfig(configFile)
			if err != nil {
				return err
			}
			kind, err := conf.Kind()
			if err != nil {
				return err
			}
			switch kind {
			case domain.KindBoolean:
				err = validate[bool](conf, domain.Boolean{}, futureOnly)
			case domain.KindRobustness:
				err = validate[float64](conf, domain.Robustness{}, futureOnly)
			default:
				err = fmt.Errorf("unsupported domain %q", kind)
			}
			if err != nil {
				return err
			}
			log.Infow("Configuration is valid", "properties", len(conf.Properties), "atoms", len(conf.Atoms))
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "configuration is valid: %d properties, %s domain\n", len(conf.Properties), kind)
			return err
		},
	}
	command.Flags().StringVarP(&configFile, "config", "c", "", "Configuration file, stlmon.yaml in the working directory or in /etc/stlmon by default")
	command.Flags().BoolVar(&futureOnly, "future-only", false, "Reject the properties using past operators")
	return command
}

func validate[R comparable](conf *config.Config, cmp domain.Comparator[R], futureOnly bool) error {
	var copts []monitoring.Option[trace.Record, R]
	if futureOnly {
		copts = append(copts, monitoring.WithFutureOnly[trace.Record, R]())
	}
	eng, props, err := newEngine(conf, cmp, copts)
	if err != nil {
		return err
	}
	_, err = eng.Compile(props)
	return err
}

// newEngine wires the atoms and the properties of the configuration into an engine over the domain cmp.
func newEngine[R comparable](conf *config.Config, cmp domain.Comparator[R], copts []monitoring.Option[trace.Record, R], opts ...engine.Option) (*engine.Engine[R], []engine.Property, error) {
	defs, err := atoms.Build(conf.Atoms, cmp)
	if err != nil {
		return nil, nil, err
	}
	copts = append([]monitoring.Option[trace.Record, R]{monitoring.WithAtoms(defs)}, copts...)
	compiler := monitoring.NewCompiler[trace.Record, R](cmp, copts...)
	eng, err := engine.New(compiler, append([]engine.Option{engine.WithDomain(conf.Domain)}, opts...)...)
	if err != nil {
		return nil, nil, err
	}
	props, err := conf.BuildProperties()
	if err != nil {
		return nil, nil, err
	}
	return eng, props, nil
}
