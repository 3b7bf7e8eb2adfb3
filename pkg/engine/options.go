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

package engine

import (
	"go.uber.org/zap"
)

type options struct {
	// workers is the number of properties evaluated concurrently
	workers int
	// cacheSize is the number of compiled monitors kept
	cacheSize int
	// domain labels the metrics
	domain string
	logger *zap.SugaredLogger
}

// Option configures an Engine.
type Option func(*options)

func defaultOptions() *options {
	return &options{
		workers:   4,
		cacheSize: 128,
		domain:    "unknown",
	}
}

// WithWorkers sets the number of properties evaluated concurrently.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithCacheSize sets the number of compiled monitors kept by the engine.
func WithCacheSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.cacheSize = n
		}
	}
}

// WithDomain sets the domain name the metrics are labeled with.
func WithDomain(name string) Option {
	return func(o *options) {
		o.domain = name
	}
}

// WithLogger sets the logger of the engine, the one carried by the context is used otherwise.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(o *options) {
		o.logger = logger
	}
}
