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
	"time"
)

// Evidence payloads are a tagged union keyed by the edge's method: each
// variant carries only the fields that prove that kind of claim. They
// marshal into Edge.Evidence and stay readable for audit.

// EvidenceLayerL3 tags routing-adjacency evidence so consumers can keep
// L3 reachability out of physical-link queries.
const EvidenceLayerL3 = "l3"

// NeighborEvidence backs lldp and cdp claims: the reporting protocol and
// the raw announcement payload the collector captured.
type NeighborEvidence struct {
	Source  FactProtocol    `json:"source"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MACARPEvidence backs mac_arp claims with the correlating observation:
// the MAC address both table entries agreed on and when each side of the
// join was collected.
type MACARPEvidence struct {
	MACAddr string    `json:"mac_addr"`
	VLAN    int       `json:"vlan,omitempty"`
	ARPSeen time.Time `json:"arp_seen"`
	MACSeen time.Time `json:"mac_seen"`
}

// RoutingEvidence backs ospf and bgp claims. Layer is always
// EvidenceLayerL3: these edges assert reachability, not cabling.
type RoutingEvidence struct {
	Layer   string          `json:"layer"`
	Source  FactProtocol    `json:"source"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// FlowEvidence backs inferred_flow claims: observed traffic between two
// devices with no protocol announcement behind it.
type FlowEvidence struct {
	Source  FactProtocol    `json:"source"`
	Payload json.RawMessage `json:"payload,omitempty"`
}
