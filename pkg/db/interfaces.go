/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package db pkg/db/interfaces.go
package db

import (
	"context"
	"time"

	"github.com/carverauto/netweave/pkg/models"
)

//go:generate mockgen -destination=mock_db.go -package=db github.com/carverauto/netweave/pkg/db Service

// Service represents all database operations for the topology store.
type Service interface {
	Close() error

	// Fact operations.

	RecordFacts(ctx context.Context, facts []*models.Fact) (int, error)
	QueryFacts(ctx context.Context, filter models.FactFilter) ([]*models.Fact, error)
	PurgeFactsBefore(ctx context.Context, cutoff time.Time) (int64, error)
	CountFacts(ctx context.Context) (int, error)

	// Edge operations.

	UpsertEdge(ctx context.Context, edge *models.Edge) error
	GetEdge(ctx context.Context, aDevice, aIfname, bDevice, bIfname string, method models.Method) (*models.Edge, error)
	ListEdges(ctx context.Context, filter models.EdgeFilter) ([]*models.Edge, error)
	CountEdges(ctx context.Context) (int, error)

	// Device registry operations.

	EnsureDevice(ctx context.Context, device *models.Device) error
	GetDevice(ctx context.Context, deviceID string) (*models.Device, error)
	GetDeviceByMgmtIP(ctx context.Context, mgmtIP string) (*models.Device, error)
	ListDevices(ctx context.Context, filter models.NodeFilter) ([]*models.Device, error)
	CountDevices(ctx context.Context) (int, error)

	// Interface registry operations.

	UpsertInterface(ctx context.Context, iface *models.NetInterface) error
	GetInterface(ctx context.Context, deviceID, ifname string) (*models.NetInterface, error)
	ListInterfaces(ctx context.Context, deviceID string) ([]*models.NetInterface, error)
}
