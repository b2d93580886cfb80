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

package models

import (
	"encoding/json"
	"errors"
	"time"
)

// Device roles assigned by the engine's auto-creation heuristic. An
// operator-set role is never overwritten by these defaults.
const (
	RoleSwitch   = "switch"
	RoleRouter   = "router"
	RoleEndpoint = "endpoint"
)

// Device is a network endpoint tracked by the registry. Identified by its
// primary address (management IP preferred over hostname). Devices are
// auto-created the first time they appear as an edge endpoint and are
// never deleted automatically.
type Device struct {
	DeviceID  string          `json:"device_id"`
	MgmtIP    string          `json:"mgmt_ip,omitempty"`
	Vendor    string          `json:"vendor,omitempty"`
	Model     string          `json:"model,omitempty"`
	OSVersion string          `json:"os_version,omitempty"`
	Role      string          `json:"role,omitempty"`
	Site      string          `json:"site,omitempty"`
	FirstSeen time.Time       `json:"first_seen"`
	LastSeen  time.Time       `json:"last_seen"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`
}

// DeviceDefaults carries the fields EnsureDevice may fill on a device
// record. Only NULL columns are filled; existing values always win.
type DeviceDefaults struct {
	MgmtIP    string `json:"mgmt_ip,omitempty"`
	Vendor    string `json:"vendor,omitempty"`
	Model     string `json:"model,omitempty"`
	OSVersion string `json:"os_version,omitempty"`
	Role      string `json:"role,omitempty"`
	Site      string `json:"site,omitempty"`
}

// NetInterface is one interface on a device, keyed by (device_id, ifname).
// Rows cascade-delete with their device.
type NetInterface struct {
	DeviceID    string    `json:"device_id"`
	Ifname      string    `json:"ifname"`
	AdminStatus string    `json:"admin_status,omitempty"`
	OperStatus  string    `json:"oper_status,omitempty"`
	SpeedMbps   int64     `json:"speed_mbps,omitempty"`
	Duplex      string    `json:"duplex,omitempty"`
	VLAN        int       `json:"vlan,omitempty"`
	IPAddr      string    `json:"ip_addr,omitempty"`
	MACAddr     string    `json:"mac_addr,omitempty"`
	LastSeen    time.Time `json:"last_seen"`
}

var (
	ErrInterfaceDeviceRequired = errors.New("interface device_id is required")
	ErrInterfaceNameRequired   = errors.New("interface ifname is required")
)

// Validate checks the interface key fields before a registry upsert.
func (i *NetInterface) Validate() error {
	if i.DeviceID == "" {
		return ErrInterfaceDeviceRequired
	}

	if i.Ifname == "" {
		return ErrInterfaceNameRequired
	}

	return nil
}

// NodeFilter narrows device listings. Zero fields match everything.
type NodeFilter struct {
	Site string `json:"site,omitempty"`
	Role string `json:"role,omitempty"`
}
