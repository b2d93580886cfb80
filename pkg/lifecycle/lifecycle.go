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

// Package lifecycle runs long-lived services under signal handling with a
// bounded graceful shutdown.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/carverauto/netweave/pkg/logger"
)

const defaultShutdownTimeout = 30 * time.Second

// ErrShutdownTimeout is returned when a service does not stop within the
// shutdown window.
var ErrShutdownTimeout = errors.New("service failed to stop before the shutdown deadline")

// Service is a long-running component with explicit start and stop.
// Start must not block past initialization; background work belongs in
// goroutines the service owns.
type Service interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// Options tunes Run.
type Options struct {
	// ShutdownTimeout bounds Stop. Default 30s.
	ShutdownTimeout time.Duration
}

// Run starts the service, blocks until the context is canceled or a
// SIGINT/SIGTERM arrives, then stops it gracefully.
func Run(ctx context.Context, svc Service, log logger.Logger, opts Options) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("service start failed: %w", err)
	}

	log.Info().Msg("service started")

	<-ctx.Done()

	log.Info().Msg("shutdown signal received")

	timeout := opts.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), timeout)
	defer stopCancel()

	done := make(chan error, 1)

	go func() {
		done <- svc.Stop(stopCtx)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("service stop failed: %w", err)
		}

		log.Info().Msg("service stopped")

		return nil
	case <-stopCtx.Done():
		return ErrShutdownTimeout
	}
}
