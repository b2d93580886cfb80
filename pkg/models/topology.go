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

import "time"

// CanonicalLink is the single winning claim for one undirected physical
// connection, selected from all competing edges that reference the same
// endpoint pair in either direction. Derived on read, never persisted.
type CanonicalLink struct {
	Edge

	// ClaimCount is how many distinct claims competed for this link.
	ClaimCount int `json:"claim_count"`
}

// PathHop is one traversal step in a path query result, oriented in
// travel direction regardless of how the underlying edge is stored.
type PathHop struct {
	Device     string  `json:"device"`
	Ifname     string  `json:"ifname,omitempty"`
	PeerDevice string  `json:"peer_device"`
	PeerIfname string  `json:"peer_ifname,omitempty"`
	Method     Method  `json:"method"`
	Confidence float64 `json:"confidence"`
}

// PathResult is the outcome of a path query. Found=false with empty hops
// is the explicit not-found answer; queries never error on missing paths.
type PathResult struct {
	Source    string    `json:"source"`
	Target    string    `json:"target"`
	Found     bool      `json:"found"`
	Hops      []PathHop `json:"hops,omitempty"`
	TotalHops int       `json:"total_hops"`
}

// ImpactResult is the blast radius of a failing node or port: every
// device transitively reachable downstream over canonical links.
type ImpactResult struct {
	Node            string   `json:"node"`
	Port            string   `json:"port,omitempty"`
	AffectedDevices []string `json:"affected_devices"`
	Count           int      `json:"count"`
}

// Link event types published to the websocket stream and the event bus.
const (
	LinkEventCreated   = "created"
	LinkEventConfirmed = "confirmed"
)

// LinkEvent announces that a compute pass created or re-confirmed a claim.
type LinkEvent struct {
	Type      string    `json:"type"`
	Edge      Edge      `json:"edge"`
	Timestamp time.Time `json:"timestamp"`
}
