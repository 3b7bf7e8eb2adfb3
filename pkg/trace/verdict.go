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

package trace

import (
	"io"
	"math"

	"github.com/goccy/go-json"

	"github.com/numaproj/stlmon/pkg/signal"
)

// Point is a breakpoint of a rendered verdict.
type Point struct {
	Time  float64     `json:"t"`
	Value interface{} `json:"v"`
}

// Verdict is the JSON form of a monitor output. Infinite robustness values render as "+Inf" and "-Inf".
type Verdict struct {
	Property string  `json:"property,omitempty"`
	Trace    string  `json:"trace,omitempty"`
	Start    float64 `json:"start"`
	End      float64 `json:"end"`
	Points   []Point `json:"points"`
}

// NewVerdict renders s. An empty signal has no points and zero bounds.
func NewVerdict[R any](property string, s *signal.Signal[R]) Verdict {
	v := Verdict{Property: property, Points: make([]Point, 0, s.Size())}
	if s.IsEmpty() {
		return v
	}
	v.Start, v.End = s.Start(), s.End()
	s.ForEach(func(t float64, value R) {
		v.Points = append(v.Points, Point{Time: t, Value: jsonValue(value)})
	})
	return v
}

func jsonValue(v interface{}) interface{} {
	if f, ok := v.(float64); ok && math.IsInf(f, 0) {
		if f > 0 {
			return "+Inf"
		}
		return "-Inf"
	}
	return v
}

// Encode writes the verdicts as indented JSON.
func Encode(w io.Writer, verdicts ...Verdict) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(verdicts)
}
