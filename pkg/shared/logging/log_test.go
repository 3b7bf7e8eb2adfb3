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

package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestFromContext(t *testing.T) {
	logger := zap.NewNop().Sugar()
	ctx := WithLogger(context.Background(), logger)
	assert.Same(t, logger, FromContext(ctx))

	assert.NotNil(t, FromContext(context.Background()))
}

func TestNewLogger_Debug(t *testing.T) {
	t.Setenv(EnvDebug, "true")
	logger := NewLogger()
	assert.True(t, logger.Desugar().Core().Enabled(zap.DebugLevel))

	t.Setenv(EnvDebug, "false")
	assert.False(t, NewLogger().Desugar().Core().Enabled(zap.DebugLevel))
}
