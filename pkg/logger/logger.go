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

// Package logger wraps zerolog behind a narrow interface so components
// take an injected Logger instead of a global, and optionally mirrors
// every record to an OTLP collector.
package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

type zerologLogger struct {
	logger zerolog.Logger
}

// New builds a Logger from config. A nil config gets defaults from the
// environment. When OTel export is enabled the returned logger writes to
// both the configured output and the OTLP endpoint.
func New(ctx context.Context, config *Config) (Logger, error) {
	if config == nil {
		config = DefaultConfig()
	}

	var output io.Writer = os.Stdout
	if config.Output == "stderr" {
		output = os.Stderr
	}

	level := zerolog.InfoLevel

	if config.Debug {
		level = zerolog.DebugLevel
	} else if config.Level != "" {
		parsed, err := zerolog.ParseLevel(config.Level)
		if err != nil {
			return nil, err
		}

		level = parsed
	}

	if config.TimeFormat != "" {
		zerolog.TimeFieldFormat = config.TimeFormat
	} else {
		zerolog.TimeFieldFormat = time.RFC3339
	}

	if config.OTel.Enabled && config.OTel.Endpoint != "" {
		otelWriter, err := NewOTelWriter(ctx, config.OTel)
		if err != nil {
			return nil, err
		}

		output = zerolog.MultiLevelWriter(output, otelWriter)
	}

	zlog := zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()

	return &zerologLogger{logger: zlog}, nil
}

// NewComponent builds a Logger with a component field attached to every
// record.
func NewComponent(ctx context.Context, config *Config, component string) (Logger, error) {
	base, err := New(ctx, config)
	if err != nil {
		return nil, err
	}

	zl := base.(*zerologLogger)

	return &zerologLogger{logger: zl.logger.With().Str("component", component).Logger()}, nil
}

func (l *zerologLogger) Trace() *zerolog.Event { return l.logger.Trace() }
func (l *zerologLogger) Debug() *zerolog.Event { return l.logger.Debug() }
func (l *zerologLogger) Info() *zerolog.Event  { return l.logger.Info() }
func (l *zerologLogger) Warn() *zerolog.Event  { return l.logger.Warn() }
func (l *zerologLogger) Error() *zerolog.Event { return l.logger.Error() }
func (l *zerologLogger) Fatal() *zerolog.Event { return l.logger.Fatal() }
func (l *zerologLogger) Panic() *zerolog.Event { return l.logger.Panic() }
func (l *zerologLogger) With() zerolog.Context { return l.logger.With() }

func (l *zerologLogger) WithComponent(component string) zerolog.Logger {
	return l.logger.With().Str("component", component).Logger()
}

func (l *zerologLogger) WithFields(fields map[string]interface{}) zerolog.Logger {
	ctx := l.logger.With()
	for key, value := range fields {
		ctx = ctx.Interface(key, value)
	}

	return ctx.Logger()
}

func (l *zerologLogger) SetLevel(level zerolog.Level) {
	l.logger = l.logger.Level(level)
}

func (l *zerologLogger) SetDebug(debug bool) {
	if debug {
		l.SetLevel(zerolog.DebugLevel)
	} else {
		l.SetLevel(zerolog.InfoLevel)
	}
}
