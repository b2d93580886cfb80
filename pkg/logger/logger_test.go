/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package logger

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithNilConfig(t *testing.T) {
	log, err := New(context.Background(), nil)
	require.NoError(t, err)
	require.NotNil(t, log)
}

func TestNewRejectsBadLevel(t *testing.T) {
	_, err := New(context.Background(), &Config{Level: "loud"})
	require.Error(t, err)
}

func TestNewComponent(t *testing.T) {
	log, err := NewComponent(context.Background(), &Config{Level: "info"}, "engine")
	require.NoError(t, err)
	require.NotNil(t, log)
}

func TestTestLoggerDiscards(t *testing.T) {
	log := NewTestLogger()

	// Must not panic or emit anywhere.
	log.Info().Str("k", "v").Msg("dropped")
	log.Error().Msg("dropped too")
}

func TestOTelWriterRequiresEndpoint(t *testing.T) {
	_, err := NewOTelWriter(context.Background(), OTelConfig{Enabled: true})
	require.ErrorIs(t, err, ErrOTelEndpointRequired)

	_, err = NewOTelWriter(context.Background(), OTelConfig{Enabled: false})
	require.ErrorIs(t, err, ErrOTelDisabled)
}

func TestMapSeverity(t *testing.T) {
	tests := map[string]string{
		"trace":   "TRACE",
		"debug":   "DEBUG",
		"info":    "INFO",
		"warn":    "WARN",
		"warning": "WARN",
		"error":   "ERROR",
		"fatal":   "FATAL",
		"panic":   "FATAL",
		"unknown": "INFO",
	}

	for level, want := range tests {
		assert.Equal(t, want, mapSeverity(level).String(), "level %s", level)
	}
}

func TestAttributeValue(t *testing.T) {
	assert.Equal(t, "null", attributeValue(nil))
	assert.Equal(t, "plain", attributeValue("plain"))
	assert.Equal(t, "true", attributeValue(true))
	assert.Equal(t, "42", attributeValue(float64(42)))
	assert.Equal(t, `{"a":1}`, attributeValue(map[string]interface{}{"a": 1}))

	long := make([]byte, maxAttributeLen+100)
	for i := range long {
		long[i] = 'x'
	}

	assert.Len(t, attributeValue(string(long)), maxAttributeLen)
}

func TestDurationRoundTrip(t *testing.T) {
	var d Duration

	require.NoError(t, json.Unmarshal([]byte(`"30s"`), &d))
	assert.Equal(t, 30*time.Second, time.Duration(d))

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"30s"`, string(out))
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NotNil(t, cfg)
	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "stdout", cfg.Output)
}
