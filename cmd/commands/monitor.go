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
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/numaproj/stlmon"
	"github.com/numaproj/stlmon/pkg/config"
	"github.com/numaproj/stlmon/pkg/domain"
	"github.com/numaproj/stlmon/pkg/engine"
	"github.com/numaproj/stlmon/pkg/metrics"
	"github.com/numaproj/stlmon/pkg/shared/logging"
	"github.com/numaproj/stlmon/pkg/shared/util"
	sig "github.com/numaproj/stlmon/pkg/signal"
	"github.com/numaproj/stlmon/pkg/statistics"
	"github.com/numaproj/stlmon/pkg/trace"
)

// EnvWorkers overrides the default of the --workers flag.
const EnvWorkers = "STLMON_WORKERS"

type monitorOptions struct {
	configFile  string
	workers     int
	summary     bool
	summaryAt   float64
	dumpMetrics bool
}

func NewMonitorCommand() *cobra.Command {
	opts := monitorOptions{}

	command := &cobra.Command{
		Use:   "monitor [flags] TRACE...",
		Short: "Check the configured properties over traces",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logging.NewLogger().Named("monitor")
			v := stlmon.GetVersion()
			log.Infow("Starting monitor", "version", v)
			metrics.BuildInfo.WithLabelValues(CLIName, v.Version, v.Platform).Set(1)

			conf, err := loadConfig(opts.configFile)
			if err != nil {
				return err
			}
			log.Debugw("Loaded configuration", "domain", conf.Domain, "properties", util.MustJSON(propertyNames(conf)))
			traces := make([]trace.Trace, 0, len(args))
			for _, path := range args {
				tr, err := readTrace(path, conf.Trace.TimeField)
				if err != nil {
					return err
				}
				traces = append(traces, tr)
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			ctx = logging.WithLogger(ctx, log)

			kind, err := conf.Kind()
			if err != nil {
				return err
			}
			switch kind {
			case domain.KindBoolean:
				err = runMonitor[bool](ctx, cmd.OutOrStdout(), conf, domain.Boolean{}, args, traces, opts)
			case domain.KindRobustness:
				err = runMonitor[float64](ctx, cmd.OutOrStdout(), conf, domain.Robustness{}, args, traces, opts)
			default:
				err = fmt.Errorf("unsupported domain %q", kind)
			}
			if err != nil {
				log.Errorw("Monitoring failed", zap.Error(err))
				return err
			}
			if opts.dumpMetrics {
				return metrics.Dump(cmd.ErrOrStderr())
			}
			return nil
		},
	}
	command.Flags().StringVarP(&opts.configFile, "config", "c", "", "Configuration file, stlmon.yaml in the working directory or in /etc/stlmon by default")
	command.Flags().IntVar(&opts.workers, "workers", util.LookupEnvIntOr(EnvWorkers, 4), "Number of properties checked concurrently")
	command.Flags().BoolVar(&opts.summary, "summary", false, "Print the statistics of every property across the traces")
	command.Flags().Float64Var(&opts.summaryAt, "at", 0, "Time the verdicts are sampled at for the summary")
	command.Flags().BoolVar(&opts.dumpMetrics, "metrics", false, "Dump the metrics to stderr when done")
	return command
}

func loadConfig(path string) (*config.Config, error) {
	conf, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

func propertyNames(conf *config.Config) []string {
	names := make([]string, 0, len(conf.Properties))
	for _, p := range conf.Properties {
		names = append(names, p.Name)
	}
	return names
}

func readTrace(path, timeField string) (trace.Trace, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace, %w", err)
	}
	defer f.Close()
	tr, err := trace.Read(f, trace.Options{TimeField: timeField})
	if err != nil {
		return nil, fmt.Errorf("trace %s: %w", path, err)
	}
	return tr, nil
}

func runMonitor[R comparable](ctx context.Context, w io.Writer, conf *config.Config, cmp domain.Comparator[R], names []string, traces []trace.Trace, opts monitorOptions) error {
	eng, props, err := newEngine(conf, cmp, nil, engine.WithWorkers(opts.workers))
	if err != nil {
		return err
	}
	all, err := eng.CheckAll(ctx, traces, props)
	if err != nil {
		return err
	}
	verdicts := make([]trace.Verdict, 0, len(traces)*len(props))
	for i, results := range all {
		for _, r := range results {
			v := trace.NewVerdict(r.Property, r.Verdict)
			v.Trace = filepath.Base(names[i])
			verdicts = append(verdicts, v)
		}
	}
	if err := trace.Encode(w, verdicts...); err != nil {
		return fmt.Errorf("failed to write the verdicts, %w", err)
	}
	if !opts.summary {
		return nil
	}
	summaries := make(map[string]statistics.Summary, len(props))
	for j, p := range props {
		signals := make([]*sig.Signal[R], 0, len(all))
		for _, results := range all {
			signals = append(signals, results[j].Verdict)
		}
		s, err := statistics.SummarizeAt(signals, opts.summaryAt)
		if err != nil {
			logging.FromContext(ctx).Warnw("No summary", zap.String("property", p.Name), zap.Error(err))
			continue
		}
		summaries[p.Name] = s
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(summaries)
}
