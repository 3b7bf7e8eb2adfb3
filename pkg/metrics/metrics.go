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

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	LabelVersion   = "version"
	LabelPlatform  = "platform"
	LabelComponent = "component"
	LabelProperty  = "property"
	LabelDomain    = "domain"
	LabelAtom      = "atom"
	LabelReason    = "reason"
)

var (
	BuildInfo = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "build_info",
		Help: "A metric with a constant value '1', labeled by stlmon binary version, platform, and other information",
	}, []string{LabelComponent, LabelVersion, LabelPlatform})
)

// Monitor metrics
var (
	// MonitorRuns is used to indicate the number of property evaluations
	MonitorRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Subsystem: "monitor",
		Name:      "runs_total",
		Help:      "Total number of property evaluations",
	}, []string{LabelProperty, LabelDomain})

	// MonitorRunErrors is used to indicate the number of failed property evaluations
	MonitorRunErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Subsystem: "monitor",
		Name:      "run_errors_total",
		Help:      "Total number of failed property evaluations",
	}, []string{LabelProperty, LabelReason})

	// MonitorDuration is a histogram of the time taken to evaluate a property over a trace
	MonitorDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Subsystem: "monitor",
		Name:      "duration_seconds",
		Help:      "Time taken to evaluate a property over a trace",
		Buckets:   prometheus.ExponentialBucketsRange(0.00001, 10, 12),
	}, []string{LabelProperty})

	// MonitorOutputSegments is a histogram of the number of segments of the verdict signals
	MonitorOutputSegments = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Subsystem: "monitor",
		Name:      "output_segments",
		Help:      "Number of segments of a verdict signal",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
	}, []string{LabelProperty})
)

// Atom metrics
var (
	// AtomEvalErrors is used to indicate the number of samples an atomic proposition failed to evaluate on
	AtomEvalErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Subsystem: "atom",
		Name:      "eval_errors_total",
		Help:      "Total number of samples an atomic proposition could not be evaluated on",
	}, []string{LabelAtom})
)
