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
	"context"
	"strings"
	"unicode"

	"github.com/carverauto/netweave/pkg/models"
)

// Base weights per discovery method and the additive bonuses layered on
// top of them. Confidence never leaves [0, 1]; the cap absorbs bonus
// stacking on already-strong methods.
const (
	baseConfidenceNeighbor = 1.00
	baseConfidenceMACARP   = 0.90
	baseConfidenceRouting  = 0.70
	baseConfidenceFlow     = 0.60

	bonusIfnamePattern = 0.05
	bonusSpeedDuplex   = 0.03
	bonusConfirmed     = 0.07

	// confirmedStreak is how many consecutive passes must re-confirm a
	// claim before the confirmation bonus applies.
	confirmedStreak = 3

	maxConfidence = 1.00
)

func baseConfidence(method models.Method) float64 {
	switch method {
	case models.MethodLLDP, models.MethodCDP:
		return baseConfidenceNeighbor
	case models.MethodMACARP:
		return baseConfidenceMACARP
	case models.MethodOSPF, models.MethodBGP:
		return baseConfidenceRouting
	case models.MethodInferredFlow:
		return baseConfidenceFlow
	default:
		return 0
	}
}

// score computes a claim's final confidence: base weight plus whichever
// bonuses the evidence supports, capped at 1.0.
func (e *Engine) score(ctx context.Context, c *claim, streak int) float64 {
	confidence := c.base

	if ifnamesCorrelate(c.aIfname, c.bIfname) {
		confidence += bonusIfnamePattern
	}

	if e.interfacesAgree(ctx, c) {
		confidence += bonusSpeedDuplex
	}

	if streak >= confirmedStreak {
		confidence += bonusConfirmed
	}

	if confidence > maxConfidence {
		confidence = maxConfidence
	}

	return confidence
}

// ifnamesCorrelate reports whether both interface names belong to the
// same naming family (Gi1/0/1 with Gi1/0/24, eth0 with eth1). A shared
// prefix is weak corroboration that both sides describe the same kind of
// port, worth a small bump.
func ifnamesCorrelate(a, b string) bool {
	pa, pb := ifnamePrefix(a), ifnamePrefix(b)
	return pa != "" && strings.EqualFold(pa, pb)
}

// ifnamePrefix returns the leading letters of an interface name, the
// vendor naming family before any slot or unit digits.
func ifnamePrefix(ifname string) string {
	for i, r := range ifname {
		if !unicode.IsLetter(r) {
			return ifname[:i]
		}
	}

	return ifname
}

// interfacesAgree reports whether the registry knows both endpoint
// interfaces and their speed and duplex settings match. Unknown
// interfaces or unset speeds contribute nothing.
func (e *Engine) interfacesAgree(ctx context.Context, c *claim) bool {
	if c.aIfname == "" || c.bIfname == "" {
		return false
	}

	a, err := e.registry.GetInterface(ctx, c.aDevice, c.aIfname)
	if err != nil || a == nil {
		return false
	}

	b, err := e.registry.GetInterface(ctx, c.bDevice, c.bIfname)
	if err != nil || b == nil {
		return false
	}

	if a.SpeedMbps <= 0 || a.SpeedMbps != b.SpeedMbps {
		return false
	}

	return strings.EqualFold(a.Duplex, b.Duplex)
}
