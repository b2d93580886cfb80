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

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/carverauto/netweave/pkg/db"
	"github.com/carverauto/netweave/pkg/logger"
	"github.com/carverauto/netweave/pkg/models"
)

var ErrDeviceIDRequired = errors.New("device id is required")

// DeviceRegistry is the concrete implementation of registry.Manager.
type DeviceRegistry struct {
	db     db.Service
	logger logger.Logger
}

// NewDeviceRegistry creates the authoritative device registry backed by
// the topology store.
func NewDeviceRegistry(database db.Service, log logger.Logger) *DeviceRegistry {
	return &DeviceRegistry{
		db:     database,
		logger: log,
	}
}

// EnsureDevice creates or refreshes one device record. Defaults fill only
// fields the registry has never seen a value for; existing values,
// including anything an operator set by hand, always win.
func (r *DeviceRegistry) EnsureDevice(ctx context.Context, deviceID string, defaults models.DeviceDefaults, observed time.Time) error {
	deviceID = strings.TrimSpace(deviceID)
	if deviceID == "" {
		return ErrDeviceIDRequired
	}

	if observed.IsZero() {
		observed = time.Now()
	}

	return r.db.EnsureDevice(ctx, &models.Device{
		DeviceID:  deviceID,
		MgmtIP:    defaults.MgmtIP,
		Vendor:    defaults.Vendor,
		Model:     defaults.Model,
		OSVersion: defaults.OSVersion,
		Role:      defaults.Role,
		Site:      defaults.Site,
		LastSeen:  observed,
	})
}

// UpsertInterface records the latest observed state for one interface.
func (r *DeviceRegistry) UpsertInterface(ctx context.Context, iface *models.NetInterface) error {
	return r.db.UpsertInterface(ctx, iface)
}

// ResolveDeviceID maps an address as collectors report it (possibly with a
// mask suffix, e.g. "10.0.40.2/24") to the canonical device identifier.
// Resolution order: exact device id, then management IP, then the cleaned
// address itself. A registry miss is not an error; the engine auto-creates
// the device afterwards.
func (r *DeviceRegistry) ResolveDeviceID(ctx context.Context, addr string) (string, error) {
	clean := NormalizeAddr(addr)
	if clean == "" {
		return "", nil
	}

	if device, err := r.db.GetDevice(ctx, clean); err == nil {
		return device.DeviceID, nil
	} else if !errors.Is(err, db.ErrDeviceNotFound) {
		return "", err
	}

	if device, err := r.db.GetDeviceByMgmtIP(ctx, clean); err == nil {
		return device.DeviceID, nil
	} else if !errors.Is(err, db.ErrDeviceNotFound) {
		return "", err
	}

	return clean, nil
}

// GetInterface fetches one interface record.
func (r *DeviceRegistry) GetInterface(ctx context.Context, deviceID, ifname string) (*models.NetInterface, error) {
	return r.db.GetInterface(ctx, deviceID, ifname)
}

// NormalizeAddr trims whitespace and strips a trailing network-mask
// suffix, so "192.168.1.1/24" and "192.168.1.1" resolve identically.
func NormalizeAddr(addr string) string {
	addr = strings.TrimSpace(addr)

	if idx := strings.IndexByte(addr, '/'); idx >= 0 {
		addr = addr[:idx]
	}

	return addr
}
