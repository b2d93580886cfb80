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

package registry

//go:generate mockgen -destination=mock_registry.go -package=registry github.com/carverauto/netweave/pkg/registry Manager

import (
	"context"
	"time"

	"github.com/carverauto/netweave/pkg/models"
)

// Manager is the authoritative device/interface registry. Every edge
// endpoint the engine emits passes through here first, so devices exist
// before any edge references them.
type Manager interface {
	// EnsureDevice is idempotent: it creates the device if absent,
	// otherwise refreshes last_seen and fills only missing fields from
	// defaults. Operator-set fields such as role and site are never
	// overwritten.
	EnsureDevice(ctx context.Context, deviceID string, defaults models.DeviceDefaults, observed time.Time) error

	// UpsertInterface records the latest observed state for one
	// interface, keyed by (device, ifname).
	UpsertInterface(ctx context.Context, iface *models.NetInterface) error

	// ResolveDeviceID maps a collector-supplied address to the canonical
	// device identifier. Any network-mask suffix is stripped first; when
	// no registry entry matches, the cleaned address itself is returned.
	ResolveDeviceID(ctx context.Context, addr string) (string, error)

	// GetInterface fetches one interface record for confidence scoring.
	GetInterface(ctx context.Context, deviceID, ifname string) (*models.NetInterface, error)
}
