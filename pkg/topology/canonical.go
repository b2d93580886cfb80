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

// Package topology resolves the claim set into canonical links and answers
// path and impact queries over them. Everything here is pure in-memory
// graph work; persistence stays in pkg/db.
package topology

import (
	"sort"

	"github.com/carverauto/netweave/pkg/models"
)

// methodPriority orders methods for canonical selection when confidence
// ties. Direct neighbor protocols outrank MAC/ARP correlation, which
// outranks routing adjacency, which outranks flow inference.
func methodPriority(m models.Method) int {
	switch m {
	case models.MethodLLDP, models.MethodCDP:
		return 1
	case models.MethodMACARP:
		return 2
	case models.MethodOSPF, models.MethodBGP:
		return 3
	case models.MethodInferredFlow:
		return 4
	default:
		return 5
	}
}

// Resolve selects exactly one canonical edge per unordered endpoint pair.
// Claims are first collapsed to the most recent edge per claim key, then
// grouped by link identity and ranked. Losing claims stay in the edge
// table as evidence; they just never win traversal.
func Resolve(edges []*models.Edge) []models.CanonicalLink {
	latest := make(map[string]*models.Edge, len(edges))

	for _, edge := range edges {
		if edge == nil {
			continue
		}

		key := edge.ClaimKey()
		if prev, ok := latest[key]; !ok || edge.LastSeen.After(prev.LastSeen) {
			latest[key] = edge
		}
	}

	groups := make(map[string][]*models.Edge)

	for _, edge := range latest {
		oriented := normalizeOrientation(edge)
		key := oriented.ADevice + "|" + oriented.AIfname + "|" + oriented.BDevice + "|" + oriented.BIfname
		groups[key] = append(groups[key], oriented)
	}

	links := make([]models.CanonicalLink, 0, len(groups))

	for _, candidates := range groups {
		best := candidates[0]
		for _, cand := range candidates[1:] {
			if ranksAbove(cand, best) {
				best = cand
			}
		}

		links = append(links, models.CanonicalLink{Edge: *best, ClaimCount: len(candidates)})
	}

	sort.Slice(links, func(i, j int) bool {
		if links[i].ADevice != links[j].ADevice {
			return links[i].ADevice < links[j].ADevice
		}
		if links[i].AIfname != links[j].AIfname {
			return links[i].AIfname < links[j].AIfname
		}
		if links[i].BDevice != links[j].BDevice {
			return links[i].BDevice < links[j].BDevice
		}
		return links[i].BIfname < links[j].BIfname
	})

	return links
}

// normalizeOrientation maps an edge and its swap to the same stored
// orientation: the lexicographically smaller device goes on the A side,
// carrying its paired interface name along.
func normalizeOrientation(edge *models.Edge) *models.Edge {
	swap := edge.BDevice < edge.ADevice
	if edge.ADevice == edge.BDevice {
		swap = edge.BIfname < edge.AIfname
	}

	if !swap {
		return edge
	}

	flipped := *edge
	flipped.ADevice, flipped.BDevice = edge.BDevice, edge.ADevice
	flipped.AIfname, flipped.BIfname = edge.BIfname, edge.AIfname

	return &flipped
}

// ranksAbove reports whether a outranks b for canonical selection:
// confidence descending, then method priority, then last_seen descending.
// Equal timestamps can happen under collector clock skew, so the claim
// key is the final comparison and selection stays total.
func ranksAbove(a, b *models.Edge) bool {
	if a.Confidence != b.Confidence {
		return a.Confidence > b.Confidence
	}

	if pa, pb := methodPriority(a.Method), methodPriority(b.Method); pa != pb {
		return pa < pb
	}

	if !a.LastSeen.Equal(b.LastSeen) {
		return a.LastSeen.After(b.LastSeen)
	}

	return a.ClaimKey() < b.ClaimKey()
}
