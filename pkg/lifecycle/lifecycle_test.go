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

package lifecycle

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/netweave/pkg/logger"
)

type fakeService struct {
	startErr error
	stopErr  error
	stopped  chan struct{}
	hang     bool
}

func (f *fakeService) Start(_ context.Context) error {
	return f.startErr
}

func (f *fakeService) Stop(ctx context.Context) error {
	if f.hang {
		<-ctx.Done()
		return ctx.Err()
	}

	if f.stopped != nil {
		close(f.stopped)
	}

	return f.stopErr
}

func TestRunStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	svc := &fakeService{stopped: make(chan struct{})}

	errCh := make(chan error, 1)

	go func() {
		errCh <- Run(ctx, svc, logger.NewTestLogger(), Options{ShutdownTimeout: time.Second})
	}()

	cancel()

	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}

	select {
	case <-svc.stopped:
	default:
		t.Fatal("service was not stopped")
	}
}

func TestRunPropagatesStartError(t *testing.T) {
	boom := errors.New("boom")
	svc := &fakeService{startErr: boom}

	err := Run(context.Background(), svc, logger.NewTestLogger(), Options{})
	require.ErrorIs(t, err, boom)
}

func TestRunShutdownTimeout(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	svc := &fakeService{hang: true}

	errCh := make(chan error, 1)

	go func() {
		errCh <- Run(ctx, svc, logger.NewTestLogger(), Options{ShutdownTimeout: 50 * time.Millisecond})
	}()

	cancel()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, ErrShutdownTimeout)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not time out")
	}
}
