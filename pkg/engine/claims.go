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

package engine

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/carverauto/netweave/pkg/models"
)

// claim is one candidate edge produced from the current fact window,
// before streak tracking and confidence scoring.
type claim struct {
	aDevice   string
	aIfname   string
	bDevice   string
	bIfname   string
	method    models.Method
	base      float64
	lastSeen  time.Time
	evidence  json.RawMessage
	aDefaults models.DeviceDefaults
	bDefaults models.DeviceDefaults
}

func (c *claim) key() string {
	return c.aDevice + "|" + c.aIfname + "|" + c.bDevice + "|" + c.bIfname + "|" + string(c.method)
}

// claimSet collects candidate claims, collapsing repeat observations of
// the same claim to the most recent one while keeping first-appearance
// order so passes process deterministically.
type claimSet struct {
	byKey map[string]*claim
	order []string
}

func newClaimSet() *claimSet {
	return &claimSet{byKey: make(map[string]*claim)}
}

func (s *claimSet) add(c *claim) {
	key := c.key()

	prev, ok := s.byKey[key]
	if !ok {
		s.byKey[key] = c
		s.order = append(s.order, key)

		return
	}

	if c.lastSeen.After(prev.lastSeen) {
		s.byKey[key] = c
	}
}

func (s *claimSet) all() []*claim {
	out := make([]*claim, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, s.byKey[key])
	}

	return out
}

// neighborClaims turns lldp, cdp, and flow facts into direct claims: the
// reporting device asserts what sits on the far side of one of its
// interfaces. Facts without a peer carry nothing to join and are dropped
// silently.
func (e *Engine) neighborClaims(facts []*models.Fact, set *claimSet) {
	for _, fact := range facts {
		switch fact.Protocol {
		case models.ProtocolLLDP, models.ProtocolCDP, models.ProtocolFlow:
		default:
			continue
		}

		device := strings.TrimSpace(fact.Device)
		peer := strings.TrimSpace(fact.PeerDevice)

		if device == "" || peer == "" || device == peer {
			continue
		}

		set.add(&claim{
			aDevice:  device,
			aIfname:  strings.TrimSpace(fact.Ifname),
			bDevice:  peer,
			bIfname:  strings.TrimSpace(fact.PeerIfname),
			method:   fact.Protocol.Method(),
			base:     baseConfidence(fact.Protocol.Method()),
			lastSeen: fact.CollectedAt,
			evidence: e.observationEvidence(fact),
		})
	}
}

// observationEvidence wraps a fact's payload in the evidence variant for
// its protocol. An unmarshalable payload degrades to no evidence rather
// than losing the claim.
func (e *Engine) observationEvidence(fact *models.Fact) json.RawMessage {
	var v interface{}

	switch fact.Protocol {
	case models.ProtocolFlow:
		v = models.FlowEvidence{Source: fact.Protocol, Payload: fact.Payload}
	case models.ProtocolOSPF, models.ProtocolBGP:
		v = models.RoutingEvidence{Layer: models.EvidenceLayerL3, Source: fact.Protocol, Payload: fact.Payload}
	default:
		v = models.NeighborEvidence{Source: fact.Protocol, Payload: fact.Payload}
	}

	raw, err := json.Marshal(v)
	if err != nil {
		e.logger.Warn().Err(err).
			Str("device", fact.Device).
			Str("protocol", string(fact.Protocol)).
			Msg("Dropping unusable fact payload from evidence")

		return nil
	}

	return raw
}

// routingClaims turns ospf and bgp adjacency facts into L3 claims. The
// evidence layer tag is what lets traversal exclude them from
// physical-link queries later.
func (e *Engine) routingClaims(facts []*models.Fact, set *claimSet) {
	for _, fact := range facts {
		if fact.Protocol != models.ProtocolOSPF && fact.Protocol != models.ProtocolBGP {
			continue
		}

		device := strings.TrimSpace(fact.Device)
		peer := strings.TrimSpace(fact.PeerDevice)

		if device == "" || peer == "" || device == peer {
			continue
		}

		set.add(&claim{
			aDevice:   device,
			aIfname:   strings.TrimSpace(fact.Ifname),
			bDevice:   peer,
			bIfname:   strings.TrimSpace(fact.PeerIfname),
			method:    fact.Protocol.Method(),
			base:      baseConfidenceRouting,
			lastSeen:  fact.CollectedAt,
			evidence:  e.observationEvidence(fact),
			aDefaults: models.DeviceDefaults{Role: models.RoleRouter},
			bDefaults: models.DeviceDefaults{Role: models.RoleRouter},
		})
	}
}
