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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/carverauto/netweave/pkg/db"
	"github.com/carverauto/netweave/pkg/engine"
	"github.com/carverauto/netweave/pkg/logger"
	"github.com/carverauto/netweave/pkg/models"
)

var coreTime = time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

// newTestServer assembles a Server over a mocked store with a pinned
// clock. Background loops are not started.
func newTestServer(t *testing.T) (*Server, *db.MockService) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockDB := db.NewMockService(ctrl)

	srv := newServerWithDB(mockDB, &models.CoreServiceConfig{}, logger.NewTestLogger())
	srv.nowFn = func() time.Time { return coreTime }
	srv.cache.nowFn = srv.nowFn

	return srv, mockDB
}

func TestPublishLinkEventFansOutToAllSinks(t *testing.T) {
	srv, _ := newTestServer(t)
	ctrl := gomock.NewController(t)

	errSink := errors.New("sink unavailable")
	event := &models.LinkEvent{
		Type:      models.LinkEventCreated,
		Edge:      models.Edge{ADevice: "dev-a", BDevice: "dev-b"},
		Timestamp: coreTime,
	}

	healthy := engine.NewMockEventSink(ctrl)
	healthy.EXPECT().PublishLinkEvent(gomock.Any(), event).Return(nil)

	failing := engine.NewMockEventSink(ctrl)
	failing.EXPECT().PublishLinkEvent(gomock.Any(), event).Return(errSink)

	srv.AddLinkSink(healthy)
	srv.AddLinkSink(failing)

	err := srv.PublishLinkEvent(context.Background(), event)
	require.Error(t, err)
	assert.ErrorIs(t, err, errSink)
}

func TestPublishLinkEventWithoutSinksIsQuiet(t *testing.T) {
	srv, _ := newTestServer(t)

	err := srv.PublishLinkEvent(context.Background(), &models.LinkEvent{Type: models.LinkEventConfirmed})
	assert.NoError(t, err)
}

func TestAddLinkSinkIgnoresNil(t *testing.T) {
	srv, _ := newTestServer(t)

	srv.AddLinkSink(nil)

	assert.Empty(t, srv.sinks)
}

func TestStopClosesStore(t *testing.T) {
	srv, mockDB := newTestServer(t)

	mockDB.EXPECT().Close().Return(nil)

	err := srv.Stop(context.Background())
	assert.NoError(t, err)
}

func TestStopReportsStoreCloseFailure(t *testing.T) {
	srv, mockDB := newTestServer(t)

	errClose := errors.New("close failed")
	mockDB.EXPECT().Close().Return(errClose)

	err := srv.Stop(context.Background())
	assert.ErrorIs(t, err, errClose)
}
