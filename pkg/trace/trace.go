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

// Package trace loads the sampled executions monitors run on and renders their verdicts.
package trace

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/araddon/dateparse"
	"github.com/goccy/go-json"
	"github.com/spf13/cast"

	"github.com/numaproj/stlmon/pkg/signal"
)

// DefaultTimeField is the record field holding the sample time.
const DefaultTimeField = "time"

// ErrInvalidTrace is returned for traces which cannot be turned into a signal.
var ErrInvalidTrace = errors.New("invalid trace")

// Record is a sample of the monitored system.
type Record = map[string]interface{}

// Trace is the piecewise-constant signal of the samples, each record holding until the next one.
type Trace = *signal.Signal[Record]

type document struct {
	End     *float64 `json:"end"`
	Samples []Record `json:"samples"`
}

// Options tune the decoding of a trace.
type Options struct {
	// TimeField names the field holding the sample time, DefaultTimeField when empty.
	TimeField string
}

// Read decodes a JSON trace from r.
func Read(r io.Reader, opts Options) (Trace, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read trace: %w", err)
	}
	return Decode(data, opts)
}

// Decode decodes a JSON trace, either an array of samples or an object {"end": t, "samples": [...]}.
//
// Sample times are numbers of seconds or date strings. Dates are made relative to the first sample.
func Decode(data []byte, opts Options) (Trace, error) {
	var doc document
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &doc.Samples); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidTrace, err)
		}
	} else if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTrace, err)
	}
	return FromRecords(doc.Samples, doc.End, opts)
}

// FromRecords builds the trace of the given samples. The trace ends at end, or at the last sample when end is nil.
func FromRecords(records []Record, end *float64, opts Options) (Trace, error) {
	field := opts.TimeField
	if field == "" {
		field = DefaultTimeField
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no samples", ErrInvalidTrace)
	}
	clk := &clock{}
	// records are not comparable, consecutive equal samples are kept.
	s := signal.NewWithEqual[Record](nil)
	last := math.Inf(-1)
	for i, r := range records {
		raw, ok := r[field]
		if !ok {
			return nil, fmt.Errorf("%w: sample %d has no %q field", ErrInvalidTrace, i, field)
		}
		t, err := clk.seconds(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: sample %d: %v", ErrInvalidTrace, i, err)
		}
		if t <= last {
			return nil, fmt.Errorf("%w: sample %d at %v does not follow %v", ErrInvalidTrace, i, t, last)
		}
		s.Add(t, r)
		last = t
	}
	if end != nil {
		if *end < last {
			return nil, fmt.Errorf("%w: end %v precedes the last sample at %v", ErrInvalidTrace, *end, last)
		}
		s.EndAt(*end)
	}
	return s, nil
}

// clock converts sample times to seconds, dates are relative to the first date seen.
type clock struct {
	origin *time.Time
}

func (c *clock) seconds(raw interface{}) (float64, error) {
	v, err := c.parse(raw)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("time must be finite, got %v", v)
	}
	return v, nil
}

func (c *clock) parse(raw interface{}) (float64, error) {
	if str, ok := raw.(string); ok {
		if v, err := cast.ToFloat64E(str); err == nil {
			return v, nil
		}
		at, err := dateparse.ParseAny(str)
		if err != nil {
			return 0, fmt.Errorf("unable to parse time %q: %v", str, err)
		}
		if c.origin == nil {
			c.origin = &at
		}
		return at.Sub(*c.origin).Seconds(), nil
	}
	v, err := cast.ToFloat64E(raw)
	if err != nil {
		return 0, fmt.Errorf("unable to parse time %v: %v", raw, err)
	}
	return v, nil
}
