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

package topology

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/netweave/pkg/models"
)

var baseTime = time.Date(2025, time.June, 10, 12, 0, 0, 0, time.UTC)

func testEdge(aDev, aIf, bDev, bIf string, method models.Method, confidence float64, lastSeen time.Time) *models.Edge {
	return &models.Edge{
		ADevice:    aDev,
		AIfname:    aIf,
		BDevice:    bDev,
		BIfname:    bIf,
		Method:     method,
		Confidence: confidence,
		FirstSeen:  lastSeen,
		LastSeen:   lastSeen,
	}
}

func TestResolvePrefersHigherConfidence(t *testing.T) {
	edges := []*models.Edge{
		testEdge("sw-a", "Gi1/0/1", "sw-b", "Gi1/0/24", models.MethodLLDP, 1.0, baseTime),
		testEdge("sw-a", "Gi1/0/1", "sw-b", "Gi1/0/24", models.MethodMACARP, 0.9, baseTime.Add(time.Minute)),
	}

	links := Resolve(edges)
	require.Len(t, links, 1)

	assert.Equal(t, models.MethodLLDP, links[0].Method)
	assert.Equal(t, 1.0, links[0].Confidence)
	assert.Equal(t, 2, links[0].ClaimCount)
}

func TestResolveMethodPriorityBreaksConfidenceTie(t *testing.T) {
	edges := []*models.Edge{
		testEdge("sw-a", "Gi1/0/1", "sw-b", "Gi1/0/24", models.MethodOSPF, 0.9, baseTime.Add(time.Hour)),
		testEdge("sw-a", "Gi1/0/1", "sw-b", "Gi1/0/24", models.MethodMACARP, 0.9, baseTime),
	}

	links := Resolve(edges)
	require.Len(t, links, 1)

	// mac_arp outranks routing adjacency even though the ospf claim is newer
	assert.Equal(t, models.MethodMACARP, links[0].Method)
}

func TestResolveRecencyBreaksFullTie(t *testing.T) {
	older := testEdge("10.1.1.5", "arp-inferred", "sw-a", "Gi1/0/1", models.MethodMACARP, 0.9, baseTime)
	newer := testEdge("sw-a", "Gi1/0/1", "10.1.1.5", "arp-inferred", models.MethodMACARP, 0.9, baseTime.Add(30*time.Minute))

	links := Resolve([]*models.Edge{older, newer})
	require.Len(t, links, 1)

	// Both claims describe the same unordered pair; the later one wins
	// and the stored orientation puts the smaller device id first.
	assert.Equal(t, "10.1.1.5", links[0].ADevice)
	assert.Equal(t, "arp-inferred", links[0].AIfname)
	assert.Equal(t, "sw-a", links[0].BDevice)
	assert.True(t, links[0].LastSeen.Equal(baseTime.Add(30*time.Minute)))
	assert.Equal(t, 2, links[0].ClaimCount)
}

func TestResolveCollapsesRepeatedClaims(t *testing.T) {
	edges := []*models.Edge{
		testEdge("sw-a", "Gi1/0/1", "sw-b", "Gi1/0/24", models.MethodLLDP, 1.0, baseTime),
		testEdge("sw-a", "Gi1/0/1", "sw-b", "Gi1/0/24", models.MethodLLDP, 0.95, baseTime.Add(time.Minute)),
	}

	links := Resolve(edges)
	require.Len(t, links, 1)

	// Same claim key: only the most recent edge participates, so the
	// claim count stays at one.
	assert.Equal(t, 0.95, links[0].Confidence)
	assert.Equal(t, 1, links[0].ClaimCount)
}

func TestResolveIsDeterministicOnEqualTimestamps(t *testing.T) {
	// Two claims for the same identity with identical confidence,
	// priority, and last_seen. Collector clock skew makes this
	// reachable; the claim key keeps selection total, so both input
	// orders pick the same winner.
	lldp := testEdge("sw-a", "Gi1/0/1", "sw-b", "Gi1/0/24", models.MethodLLDP, 1.0, baseTime)
	cdp := testEdge("sw-a", "Gi1/0/1", "sw-b", "Gi1/0/24", models.MethodCDP, 1.0, baseTime)

	first := Resolve([]*models.Edge{lldp, cdp})
	second := Resolve([]*models.Edge{cdp, lldp})

	require.Len(t, first, 1)
	require.Equal(t, first, second)
	assert.Equal(t, models.MethodCDP, first[0].Method)
	assert.Equal(t, 2, first[0].ClaimCount)
}

func TestResolveKeepsDistinctPairsApart(t *testing.T) {
	edges := []*models.Edge{
		testEdge("sw-a", "Gi1/0/1", "sw-b", "Gi1/0/24", models.MethodLLDP, 1.0, baseTime),
		testEdge("sw-b", "Gi1/0/25", "sw-c", "Gi1/0/1", models.MethodLLDP, 1.0, baseTime),
	}

	links := Resolve(edges)
	assert.Len(t, links, 2)
}

func TestMethodPriorityOrdering(t *testing.T) {
	assert.Equal(t, 1, methodPriority(models.MethodLLDP))
	assert.Equal(t, 1, methodPriority(models.MethodCDP))
	assert.Equal(t, 2, methodPriority(models.MethodMACARP))
	assert.Equal(t, 3, methodPriority(models.MethodOSPF))
	assert.Equal(t, 3, methodPriority(models.MethodBGP))
	assert.Equal(t, 4, methodPriority(models.MethodInferredFlow))
	assert.Equal(t, 5, methodPriority(models.Method("unknown")))
}

func TestSnapshotLinksConfidenceFloor(t *testing.T) {
	snap := BuildSnapshot([]*models.Edge{
		testEdge("sw-a", "Gi1/0/1", "sw-b", "Gi1/0/24", models.MethodLLDP, 1.0, baseTime),
		testEdge("h-1", "arp-inferred", "sw-b", "Gi1/0/7", models.MethodMACARP, 0.9, baseTime),
	}, baseTime)

	assert.Equal(t, 2, snap.LinkCount())
	assert.Len(t, snap.Links(0), 2)
	assert.Len(t, snap.Links(0.95), 1)
	assert.True(t, snap.BuiltAt().Equal(baseTime))
}
