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

// Package statistics summarizes the verdicts of a property over many traces, e.g. simulation runs.
package statistics

import (
	"errors"
	"fmt"

	"github.com/montanaflynn/stats"

	"github.com/numaproj/stlmon/pkg/signal"
)

// ErrNoData is returned when there is nothing to summarize.
var ErrNoData = errors.New("no data to summarize")

// Summary describes a sample of verdict values. Variance and StdDev are the population ones.
type Summary struct {
	Count    int     `json:"count"`
	Mean     float64 `json:"mean"`
	Variance float64 `json:"variance"`
	StdDev   float64 `json:"stddev"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Median   float64 `json:"median"`
}

// Summarize computes the summary of values.
func Summarize(values []float64) (Summary, error) {
	if len(values) == 0 {
		return Summary{}, ErrNoData
	}
	data := stats.Float64Data(values)
	s := Summary{Count: len(values)}
	var err error
	if s.Mean, err = stats.Mean(data); err != nil {
		return Summary{}, fmt.Errorf("failed to compute the mean: %w", err)
	}
	if s.Variance, err = stats.PopulationVariance(data); err != nil {
		return Summary{}, fmt.Errorf("failed to compute the variance: %w", err)
	}
	if s.StdDev, err = stats.StandardDeviationPopulation(data); err != nil {
		return Summary{}, fmt.Errorf("failed to compute the standard deviation: %w", err)
	}
	if s.Min, err = stats.Min(data); err != nil {
		return Summary{}, fmt.Errorf("failed to compute the minimum: %w", err)
	}
	if s.Max, err = stats.Max(data); err != nil {
		return Summary{}, fmt.Errorf("failed to compute the maximum: %w", err)
	}
	if s.Median, err = stats.Median(data); err != nil {
		return Summary{}, fmt.Errorf("failed to compute the median: %w", err)
	}
	return s, nil
}

// SummarizeAt samples every signal at t and summarizes the values. Boolean verdicts count as 1 and 0, the signals
// undefined at t are skipped.
func SummarizeAt[R any](signals []*signal.Signal[R], t float64) (Summary, error) {
	values := make([]float64, 0, len(signals))
	for _, s := range signals {
		v, ok := s.ValueAt(t)
		if !ok {
			continue
		}
		f, err := toFloat(v)
		if err != nil {
			return Summary{}, err
		}
		values = append(values, f)
	}
	return Summarize(values)
}

func toFloat(v interface{}) (float64, error) {
	switch w := v.(type) {
	case bool:
		if w {
			return 1, nil
		}
		return 0, nil
	case float64:
		return w, nil
	default:
		return 0, fmt.Errorf("unsupported verdict value %v of type %T", v, v)
	}
}
