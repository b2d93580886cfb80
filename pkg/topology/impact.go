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

	"github.com/carverauto/netweave/pkg/models"
)

// FindImpact computes the transitive closure of devices reachable from
// node, the blast radius if that node fails. A non-empty port restricts
// the first expansion to links touching that interface on node; hops
// beyond the first are unrestricted. The starting node is never part of
// its own result, and the visited set keeps cycles from looping.
func (s *Snapshot) FindImpact(node, port string, includeL3 bool) models.ImpactResult {
	result := models.ImpactResult{
		Node:            node,
		Port:            port,
		AffectedDevices: []string{},
	}

	visited := map[string]bool{node: true}

	var frontier []string

	for _, nb := range s.adjacency[node] {
		if port != "" && nb.localIf != port {
			continue
		}

		if !includeL3 && nb.method.IsRoutingAdjacency() {
			continue
		}

		if visited[nb.device] {
			continue
		}

		visited[nb.device] = true
		frontier = append(frontier, nb.device)
	}

	affected := append([]string{}, frontier...)

	for len(frontier) > 0 {
		device := frontier[0]
		frontier = frontier[1:]

		for _, nb := range s.adjacency[device] {
			if !includeL3 && nb.method.IsRoutingAdjacency() {
				continue
			}

			if visited[nb.device] {
				continue
			}

			visited[nb.device] = true
			affected = append(affected, nb.device)
			frontier = append(frontier, nb.device)
		}
	}

	sort.Strings(affected)

	result.AffectedDevices = affected
	result.Count = len(affected)

	return result
}
