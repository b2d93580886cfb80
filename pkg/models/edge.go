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

// Method is the discovery technique that produced a connectivity claim.
type Method string

const (
	MethodLLDP         Method = "lldp"
	MethodCDP          Method = "cdp"
	MethodMACARP       Method = "mac_arp"
	MethodOSPF         Method = "ospf"
	MethodBGP          Method = "bgp"
	MethodInferredFlow Method = "inferred_flow"
)

// Methods lists every accepted method value.
var Methods = []Method{
	MethodLLDP,
	MethodCDP,
	MethodMACARP,
	MethodOSPF,
	MethodBGP,
	MethodInferredFlow,
}

func (m Method) Valid() bool {
	switch m {
	case MethodLLDP, MethodCDP, MethodMACARP, MethodOSPF, MethodBGP, MethodInferredFlow:
		return true
	default:
		return false
	}
}

// IsRoutingAdjacency reports whether the method describes Layer-3
// reachability rather than a confirmed physical link.
func (m Method) IsRoutingAdjacency() bool {
	return m == MethodOSPF || m == MethodBGP
}

var (
	ErrUnknownMethod        = errors.New("unknown discovery method")
	ErrConfidenceOutOfRange = errors.New("confidence out of range")
	ErrEdgeEndpointMissing  = errors.New("edge endpoint is required")
)

// Edge is one connectivity claim: an assertion that (a_dev, a_if) connects
// to (b_dev, b_if), discovered by one method at some confidence. The tuple
// (a_dev, a_if, b_dev, b_if, method) identifies the claim; re-observation
// updates confidence and last_seen in place. Edges are never deleted, so
// stale claims stay visible for audit.
type Edge struct {
	ADevice       string          `json:"a_dev"`
	AIfname       string          `json:"a_if"`
	BDevice       string          `json:"b_dev"`
	BIfname       string          `json:"b_if"`
	Method        Method          `json:"method"`
	Confidence    float64         `json:"confidence"`
	FirstSeen     time.Time       `json:"first_seen"`
	LastSeen      time.Time       `json:"last_seen"`
	ConfirmStreak int             `json:"confirm_streak,omitempty"`
	Evidence      json.RawMessage `json:"evidence,omitempty"`
}

// Validate enforces the schema invariants before an edge reaches the
// store: endpoints present, method in the enumeration, confidence in
// [0,1]. Violations are fatal for the single edge, never the pass.
func (e *Edge) Validate() error {
	if e.ADevice == "" || e.BDevice == "" {
		return ErrEdgeEndpointMissing
	}

	if !e.Method.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownMethod, e.Method)
	}

	if e.Confidence < 0 || e.Confidence > 1 {
		return fmt.Errorf("%w: %f", ErrConfidenceOutOfRange, e.Confidence)
	}

	return nil
}

// ClaimKey returns the identity of the claim this edge represents.
func (e *Edge) ClaimKey() string {
	return e.ADevice + "|" + e.AIfname + "|" + e.BDevice + "|" + e.BIfname + "|" + string(e.Method)
}

// EdgeFilter narrows raw edge listings. Zero fields match everything.
type EdgeFilter struct {
	Site          string  `json:"site,omitempty"`
	Role          string  `json:"role,omitempty"`
	MinConfidence float64 `json:"min_confidence,omitempty"`
}
