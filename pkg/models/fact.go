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
	"fmt"
	"time"
)

// FactProtocol identifies the observation type a collector delivered.
type FactProtocol string

const (
	ProtocolLLDP FactProtocol = "lldp"
	ProtocolCDP  FactProtocol = "cdp"
	ProtocolARP  FactProtocol = "arp"
	ProtocolMAC  FactProtocol = "mac"
	ProtocolOSPF FactProtocol = "ospf"
	ProtocolBGP  FactProtocol = "bgp"
	ProtocolFlow FactProtocol = "flow"
)

// FactProtocols lists every accepted protocol value.
var FactProtocols = []FactProtocol{
	ProtocolLLDP,
	ProtocolCDP,
	ProtocolARP,
	ProtocolMAC,
	ProtocolOSPF,
	ProtocolBGP,
	ProtocolFlow,
}

func (p FactProtocol) Valid() bool {
	switch p {
	case ProtocolLLDP, ProtocolCDP, ProtocolARP, ProtocolMAC, ProtocolOSPF, ProtocolBGP, ProtocolFlow:
		return true
	default:
		return false
	}
}

// Method returns the discovery method that claims derived from this
// protocol carry. ARP and MAC-table facts only produce edges together,
// through the correlation join, so both map to MethodMACARP.
func (p FactProtocol) Method() Method {
	switch p {
	case ProtocolLLDP:
		return MethodLLDP
	case ProtocolCDP:
		return MethodCDP
	case ProtocolARP, ProtocolMAC:
		return MethodMACARP
	case ProtocolOSPF:
		return MethodOSPF
	case ProtocolBGP:
		return MethodBGP
	case ProtocolFlow:
		return MethodInferredFlow
	default:
		return ""
	}
}

var (
	ErrFactDeviceRequired   = errors.New("fact device is required")
	ErrFactTimestampMissing = errors.New("fact collected_at is required")
	ErrUnknownProtocol      = errors.New("unknown fact protocol")
)

// Fact is one immutable, timestamped observation delivered by a collector.
// Facts are append-only; nothing updates them, and only the retention
// sweep removes them.
type Fact struct {
	ID          int64           `json:"id,omitempty"`
	CollectedAt time.Time       `json:"collected_at"`
	Device      string          `json:"device"`
	Ifname      string          `json:"ifname,omitempty"`
	PeerDevice  string          `json:"peer_device,omitempty"`
	PeerIfname  string          `json:"peer_ifname,omitempty"`
	MACAddr     string          `json:"mac_addr,omitempty"`
	IPAddr      string          `json:"ip_addr,omitempty"`
	VLAN        int             `json:"vlan,omitempty"`
	Protocol    FactProtocol    `json:"protocol"`
	Payload     json.RawMessage `json:"payload,omitempty"`
}

func (f *Fact) Validate() error {
	if f.Device == "" {
		return ErrFactDeviceRequired
	}

	if f.CollectedAt.IsZero() {
		return ErrFactTimestampMissing
	}

	if !f.Protocol.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownProtocol, f.Protocol)
	}

	return nil
}

// FactFilter narrows a fact store query. Zero fields match everything.
type FactFilter struct {
	Device   string       `json:"device,omitempty"`
	Protocol FactProtocol `json:"protocol,omitempty"`
	Since    time.Time    `json:"since,omitempty"`
	Limit    int          `json:"limit,omitempty"`
}
