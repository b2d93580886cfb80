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

package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/mock/gomock"
)

var errTestPurge = errors.New("purge error")

func TestSweepFactsUsesRetentionCutoff(t *testing.T) {
	srv, mockDB := newTestServer(t)

	wantCutoff := coreTime.Add(-srv.factMaxAge)

	mockDB.EXPECT().
		PurgeFactsBefore(gomock.Any(), wantCutoff).
		Return(int64(42), nil)

	srv.sweepFacts(context.Background())
}

func TestSweepFactsToleratesStoreErrors(t *testing.T) {
	srv, mockDB := newTestServer(t)

	mockDB.EXPECT().
		PurgeFactsBefore(gomock.Any(), gomock.Any()).
		Return(int64(0), errTestPurge)

	// A failed sweep logs and waits for the next tick.
	srv.sweepFacts(context.Background())
}

func TestRetentionSweepLoopStops(t *testing.T) {
	srv, mockDB := newTestServer(t)
	srv.sweepInterval = 5 * time.Millisecond

	sweeps := make(chan struct{}, 16)

	mockDB.EXPECT().
		PurgeFactsBefore(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ time.Time) (int64, error) {
			select {
			case sweeps <- struct{}{}:
			default:
			}

			return 0, nil
		}).
		AnyTimes()

	finished := make(chan struct{})

	go func() {
		srv.runRetentionSweep(context.Background())
		close(finished)
	}()

	// Wait for the startup sweep plus one ticker sweep.
	for i := 0; i < 2; i++ {
		select {
		case <-sweeps:
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for retention sweep")
		}
	}

	close(srv.done)

	select {
	case <-finished:
	case <-time.After(5 * time.Second):
		t.Fatal("retention sweep loop did not stop")
	}
}
