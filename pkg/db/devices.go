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

package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/carverauto/netweave/pkg/models"
)

// The merge direction is deliberate: the stored value wins, so a column is
// only ever filled while NULL. Operator-set fields like role and site
// survive every engine-driven ensure.
const upsertDeviceSQL = `
INSERT INTO devices (
	device_id,
	mgmt_ip,
	vendor,
	model,
	os_version,
	role,
	site,
	first_seen,
	last_seen,
	metadata
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8, COALESCE($9::jsonb, '{}'::jsonb))
ON CONFLICT (device_id) DO UPDATE SET
	mgmt_ip    = COALESCE(devices.mgmt_ip, EXCLUDED.mgmt_ip),
	vendor     = COALESCE(devices.vendor, EXCLUDED.vendor),
	model      = COALESCE(devices.model, EXCLUDED.model),
	os_version = COALESCE(devices.os_version, EXCLUDED.os_version),
	role       = COALESCE(devices.role, EXCLUDED.role),
	site       = COALESCE(devices.site, EXCLUDED.site),
	last_seen  = GREATEST(devices.last_seen, EXCLUDED.last_seen),
	metadata   = EXCLUDED.metadata || devices.metadata`

const upsertInterfaceSQL = `
INSERT INTO interfaces (
	device_id,
	ifname,
	admin_status,
	oper_status,
	speed_mbps,
	duplex,
	vlan,
	ip_addr,
	mac_addr,
	last_seen
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (device_id, ifname) DO UPDATE SET
	admin_status = COALESCE(EXCLUDED.admin_status, interfaces.admin_status),
	oper_status  = COALESCE(EXCLUDED.oper_status, interfaces.oper_status),
	speed_mbps   = COALESCE(EXCLUDED.speed_mbps, interfaces.speed_mbps),
	duplex       = COALESCE(EXCLUDED.duplex, interfaces.duplex),
	vlan         = COALESCE(EXCLUDED.vlan, interfaces.vlan),
	ip_addr      = COALESCE(EXCLUDED.ip_addr, interfaces.ip_addr),
	mac_addr     = COALESCE(EXCLUDED.mac_addr, interfaces.mac_addr),
	last_seen    = GREATEST(interfaces.last_seen, EXCLUDED.last_seen)`

const selectDeviceColumns = `
SELECT device_id, mgmt_ip, vendor, model, os_version, role, site, first_seen, last_seen, metadata
FROM devices`

const selectInterfaceColumns = `
SELECT device_id, ifname, admin_status, oper_status, speed_mbps, duplex, vlan, ip_addr, mac_addr, last_seen
FROM interfaces`

// EnsureDevice creates the device if absent, otherwise refreshes last_seen
// and fills only columns that are still NULL. Safe to call on every edge
// upsert.
func (db *DB) EnsureDevice(ctx context.Context, device *models.Device) error {
	args, err := buildDeviceArgs(device)
	if err != nil {
		return err
	}

	if _, err := db.conn().Exec(ctx, upsertDeviceSQL, args...); err != nil {
		return fmt.Errorf("%w device: %w", ErrFailedToInsert, err)
	}

	return nil
}

func (db *DB) GetDevice(ctx context.Context, deviceID string) (*models.Device, error) {
	row := db.conn().QueryRow(ctx, selectDeviceColumns+`
WHERE device_id = $1`, deviceID)

	device, err := scanDevice(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDeviceNotFound
		}

		return nil, fmt.Errorf("%w device: %w", ErrFailedToScan, err)
	}

	return device, nil
}

// GetDeviceByMgmtIP resolves a device through its management address.
// When several devices share the address the lowest device_id wins, so
// resolution stays deterministic.
func (db *DB) GetDeviceByMgmtIP(ctx context.Context, mgmtIP string) (*models.Device, error) {
	row := db.conn().QueryRow(ctx, selectDeviceColumns+`
WHERE mgmt_ip = $1
ORDER BY device_id
LIMIT 1`, mgmtIP)

	device, err := scanDevice(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDeviceNotFound
		}

		return nil, fmt.Errorf("%w device: %w", ErrFailedToScan, err)
	}

	return device, nil
}

// ListDevices returns devices matching the filter ordered by device_id.
func (db *DB) ListDevices(ctx context.Context, filter models.NodeFilter) ([]*models.Device, error) {
	query, args := buildDeviceQuery(filter)

	rows, err := db.conn().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w devices: %w", ErrFailedToQuery, err)
	}
	defer rows.Close()

	devices := make([]*models.Device, 0)

	for rows.Next() {
		device, err := scanDevice(rows)
		if err != nil {
			return nil, fmt.Errorf("%w device: %w", ErrFailedToScan, err)
		}

		devices = append(devices, device)
	}

	return devices, rows.Err()
}

func (db *DB) CountDevices(ctx context.Context) (int, error) {
	var count int

	if err := db.conn().QueryRow(ctx, `SELECT count(*) FROM devices`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w device count: %w", ErrFailedToQuery, err)
	}

	return count, nil
}

// UpsertInterface records the latest observed state for one interface.
// Fields absent from this observation keep their stored values. The
// device row must exist first; rows cascade-delete with their device.
func (db *DB) UpsertInterface(ctx context.Context, iface *models.NetInterface) error {
	args, err := buildInterfaceArgs(iface)
	if err != nil {
		return err
	}

	if _, err := db.conn().Exec(ctx, upsertInterfaceSQL, args...); err != nil {
		return fmt.Errorf("%w interface: %w", ErrFailedToInsert, err)
	}

	return nil
}

func (db *DB) GetInterface(ctx context.Context, deviceID, ifname string) (*models.NetInterface, error) {
	row := db.conn().QueryRow(ctx, selectInterfaceColumns+`
WHERE device_id = $1 AND ifname = $2`, deviceID, ifname)

	iface, err := scanInterface(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInterfaceNotFound
		}

		return nil, fmt.Errorf("%w interface: %w", ErrFailedToScan, err)
	}

	return iface, nil
}

func (db *DB) ListInterfaces(ctx context.Context, deviceID string) ([]*models.NetInterface, error) {
	rows, err := db.conn().Query(ctx, selectInterfaceColumns+`
WHERE device_id = $1
ORDER BY ifname`, deviceID)
	if err != nil {
		return nil, fmt.Errorf("%w interfaces: %w", ErrFailedToQuery, err)
	}
	defer rows.Close()

	ifaces := make([]*models.NetInterface, 0)

	for rows.Next() {
		iface, err := scanInterface(rows)
		if err != nil {
			return nil, fmt.Errorf("%w interface: %w", ErrFailedToScan, err)
		}

		ifaces = append(ifaces, iface)
	}

	return ifaces, rows.Err()
}

func buildDeviceArgs(device *models.Device) ([]interface{}, error) {
	if device == nil {
		return nil, ErrDeviceNil
	}

	deviceID := strings.TrimSpace(device.DeviceID)
	if deviceID == "" {
		return nil, ErrDeviceIDRequired
	}

	observed := device.LastSeen
	if observed.IsZero() {
		observed = time.Now()
	}

	return []interface{}{
		deviceID,
		toNullableString(device.MgmtIP),
		toNullableString(device.Vendor),
		toNullableString(device.Model),
		toNullableString(device.OSVersion),
		toNullableString(device.Role),
		toNullableString(device.Site),
		observed.UTC(),
		toNullableJSON(device.Metadata),
	}, nil
}

func buildInterfaceArgs(iface *models.NetInterface) ([]interface{}, error) {
	if iface == nil {
		return nil, ErrInterfaceNil
	}

	deviceID := strings.TrimSpace(iface.DeviceID)
	ifname := strings.TrimSpace(iface.Ifname)

	if deviceID == "" || ifname == "" {
		return nil, ErrInterfaceKeyMissing
	}

	observed := iface.LastSeen
	if observed.IsZero() {
		observed = time.Now()
	}

	var speed interface{}
	if iface.SpeedMbps > 0 {
		speed = iface.SpeedMbps
	}

	var vlan interface{}
	if iface.VLAN > 0 {
		vlan = iface.VLAN
	}

	return []interface{}{
		deviceID,
		ifname,
		toNullableString(iface.AdminStatus),
		toNullableString(iface.OperStatus),
		speed,
		toNullableString(iface.Duplex),
		vlan,
		toNullableString(iface.IPAddr),
		toNullableString(iface.MACAddr),
		observed.UTC(),
	}, nil
}

func buildDeviceQuery(filter models.NodeFilter) (string, []interface{}) {
	var (
		conds []string
		args  []interface{}
	)

	if filter.Site != "" {
		args = append(args, filter.Site)
		conds = append(conds, fmt.Sprintf("site = $%d", len(args)))
	}

	if filter.Role != "" {
		args = append(args, filter.Role)
		conds = append(conds, fmt.Sprintf("role = $%d", len(args)))
	}

	query := selectDeviceColumns
	if len(conds) > 0 {
		query += "\nWHERE " + strings.Join(conds, " AND ")
	}

	query += "\nORDER BY device_id"

	return query, args
}

func scanDevice(row rowScanner) (*models.Device, error) {
	var (
		device    models.Device
		mgmtIP    *string
		vendor    *string
		model     *string
		osVersion *string
		role      *string
		site      *string
		metadata  []byte
	)

	if err := row.Scan(&device.DeviceID, &mgmtIP, &vendor, &model, &osVersion, &role, &site,
		&device.FirstSeen, &device.LastSeen, &metadata); err != nil {
		return nil, err
	}

	device.MgmtIP = stringValue(mgmtIP)
	device.Vendor = stringValue(vendor)
	device.Model = stringValue(model)
	device.OSVersion = stringValue(osVersion)
	device.Role = stringValue(role)
	device.Site = stringValue(site)

	if len(metadata) > 0 {
		device.Metadata = json.RawMessage(metadata)
	}

	return &device, nil
}

func scanInterface(row rowScanner) (*models.NetInterface, error) {
	var (
		iface       models.NetInterface
		adminStatus *string
		operStatus  *string
		speed       *int64
		duplex      *string
		vlan        *int
		ipAddr      *string
		macAddr     *string
	)

	if err := row.Scan(&iface.DeviceID, &iface.Ifname, &adminStatus, &operStatus, &speed,
		&duplex, &vlan, &ipAddr, &macAddr, &iface.LastSeen); err != nil {
		return nil, err
	}

	iface.AdminStatus = stringValue(adminStatus)
	iface.OperStatus = stringValue(operStatus)
	iface.Duplex = stringValue(duplex)
	iface.IPAddr = stringValue(ipAddr)
	iface.MACAddr = stringValue(macAddr)

	if speed != nil {
		iface.SpeedMbps = *speed
	}

	if vlan != nil {
		iface.VLAN = *vlan
	}

	return &iface, nil
}
