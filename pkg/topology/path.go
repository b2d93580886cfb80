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

import "github.com/carverauto/netweave/pkg/models"

// DefaultMaxHops bounds path searches that do not set their own limit.
const DefaultMaxHops = 20

// PathOptions tunes a path search. Zero values mean the defaults: twenty
// hops, physical links only.
type PathOptions struct {
	MaxHops   int
	IncludeL3 bool
}

// FindPath runs a breadth-first search from src to dst over canonical
// links, both orientations traversable. Neighbors expand in canonical
// selection order, so when several shortest paths exist the same one is
// returned every time. A miss is an explicit not-found result, never an
// error.
func (s *Snapshot) FindPath(src, dst string, opts PathOptions) models.PathResult {
	result := models.PathResult{Source: src, Target: dst}

	maxHops := opts.MaxHops
	if maxHops <= 0 || maxHops > DefaultMaxHops {
		maxHops = DefaultMaxHops
	}

	if src == dst {
		result.Found = true
		result.Hops = []models.PathHop{}

		return result
	}

	type parentLink struct {
		prev string
		hop  models.PathHop
	}

	type queueItem struct {
		device string
		depth  int
	}

	visited := map[string]bool{src: true}
	parents := make(map[string]parentLink)
	queue := []queueItem{{src, 0}}

	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		if item.depth >= maxHops {
			continue
		}

		for _, nb := range s.adjacency[item.device] {
			if !opts.IncludeL3 && nb.method.IsRoutingAdjacency() {
				continue
			}

			if visited[nb.device] {
				continue
			}

			visited[nb.device] = true
			parents[nb.device] = parentLink{
				prev: item.device,
				hop: models.PathHop{
					Device:     item.device,
					Ifname:     nb.localIf,
					PeerDevice: nb.device,
					PeerIfname: nb.remoteIf,
					Method:     nb.method,
					Confidence: nb.confidence,
				},
			}

			if nb.device == dst {
				hops := make([]models.PathHop, 0, item.depth+1)

				for current := dst; current != src; {
					link := parents[current]
					hops = append(hops, link.hop)
					current = link.prev
				}

				for i, j := 0, len(hops)-1; i < j; i, j = i+1, j-1 {
					hops[i], hops[j] = hops[j], hops[i]
				}

				result.Found = true
				result.Hops = hops
				result.TotalHops = len(hops)

				return result
			}

			queue = append(queue, queueItem{nb.device, item.depth + 1})
		}
	}

	return result
}
