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
	"sort"
	"time"

	"github.com/carverauto/netweave/pkg/models"
)

// Snapshot is an immutable resolved view of the topology as of one edge
// read. Queries against a snapshot are consistent with each other; the
// caller swaps in a fresh snapshot to pick up newer edges.
type Snapshot struct {
	links     []models.CanonicalLink
	adjacency map[string][]neighbor
	builtAt   time.Time
}

// neighbor is one traversable direction of a canonical link.
type neighbor struct {
	device     string
	localIf    string
	remoteIf   string
	method     models.Method
	confidence float64
}

// BuildSnapshot resolves the edge set and indexes both directions of each
// canonical link for traversal. Neighbor lists are pre-sorted in canonical
// selection order so query expansion is deterministic.
func BuildSnapshot(edges []*models.Edge, builtAt time.Time) *Snapshot {
	links := Resolve(edges)

	adjacency := make(map[string][]neighbor)

	for i := range links {
		link := &links[i]

		adjacency[link.ADevice] = append(adjacency[link.ADevice], neighbor{
			device:     link.BDevice,
			localIf:    link.AIfname,
			remoteIf:   link.BIfname,
			method:     link.Method,
			confidence: link.Confidence,
		})
		adjacency[link.BDevice] = append(adjacency[link.BDevice], neighbor{
			device:     link.ADevice,
			localIf:    link.BIfname,
			remoteIf:   link.AIfname,
			method:     link.Method,
			confidence: link.Confidence,
		})
	}

	for device := range adjacency {
		sortNeighbors(adjacency[device])
	}

	return &Snapshot{
		links:     links,
		adjacency: adjacency,
		builtAt:   builtAt,
	}
}

func sortNeighbors(neighbors []neighbor) {
	sort.Slice(neighbors, func(i, j int) bool {
		if neighbors[i].confidence != neighbors[j].confidence {
			return neighbors[i].confidence > neighbors[j].confidence
		}

		if pi, pj := methodPriority(neighbors[i].method), methodPriority(neighbors[j].method); pi != pj {
			return pi < pj
		}

		if neighbors[i].device != neighbors[j].device {
			return neighbors[i].device < neighbors[j].device
		}

		if neighbors[i].localIf != neighbors[j].localIf {
			return neighbors[i].localIf < neighbors[j].localIf
		}

		return neighbors[i].remoteIf < neighbors[j].remoteIf
	})
}

// Links returns canonical links at or above the confidence floor, in
// stable identity order.
func (s *Snapshot) Links(minConfidence float64) []models.CanonicalLink {
	out := make([]models.CanonicalLink, 0, len(s.links))

	for _, link := range s.links {
		if link.Confidence < minConfidence {
			continue
		}

		out = append(out, link)
	}

	return out
}

// LinkCount reports how many canonical links the snapshot holds.
func (s *Snapshot) LinkCount() int {
	return len(s.links)
}

// BuiltAt reports when the snapshot's edge set was read.
func (s *Snapshot) BuiltAt() time.Time {
	return s.builtAt
}
