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

package core

import (
	"context"
	"strings"

	"github.com/carverauto/netweave/pkg/models"
	"github.com/carverauto/netweave/pkg/topology"
)

// ListNodes returns registry devices matching the filter.
func (s *Server) ListNodes(ctx context.Context, filter models.NodeFilter) ([]*models.Device, error) {
	return s.db.ListDevices(ctx, filter)
}

// ListEdges returns raw claim-level edges matching the filter. Unlike
// canonical links, this view keeps every method's claim for a pair.
func (s *Server) ListEdges(ctx context.Context, filter models.EdgeFilter) ([]*models.Edge, error) {
	return s.db.ListEdges(ctx, filter)
}

// ListCanonicalLinks returns one resolved link per endpoint pair at or
// above the confidence floor.
func (s *Server) ListCanonicalLinks(ctx context.Context, minConfidence float64) ([]models.CanonicalLink, error) {
	snap, err := s.cache.get(ctx)
	if err != nil {
		return nil, err
	}

	return snap.Links(minConfidence), nil
}

// FindPath runs a shortest-path search between two devices over the
// canonical topology. A "l3" layer widens the search to routing
// adjacencies for this query only.
func (s *Server) FindPath(ctx context.Context, src, dst, layer string) (models.PathResult, error) {
	snap, err := s.cache.get(ctx)
	if err != nil {
		return models.PathResult{}, err
	}

	opts := topology.PathOptions{
		MaxHops:   s.maxHops,
		IncludeL3: s.includeL3 || strings.EqualFold(layer, models.EvidenceLayerL3),
	}

	result := snap.FindPath(strings.TrimSpace(src), strings.TrimSpace(dst), opts)
	pathQueries.WithLabelValues(queryOutcome(result.Found)).Inc()

	return result, nil
}

// FindImpact reports every device reachable through the given node, or
// through one of its ports when a port is named.
func (s *Server) FindImpact(ctx context.Context, node, port string) (models.ImpactResult, error) {
	snap, err := s.cache.get(ctx)
	if err != nil {
		return models.ImpactResult{}, err
	}

	result := snap.FindImpact(strings.TrimSpace(node), strings.TrimSpace(port), s.includeL3)
	impactQueries.Inc()

	return result, nil
}

// GetInterface returns one interface record, or db.ErrInterfaceNotFound.
func (s *Server) GetInterface(ctx context.Context, deviceID, ifname string) (*models.NetInterface, error) {
	return s.db.GetInterface(ctx, deviceID, ifname)
}

// ListInterfaces returns every known interface on one device.
func (s *Server) ListInterfaces(ctx context.Context, deviceID string) ([]*models.NetInterface, error) {
	return s.db.ListInterfaces(ctx, deviceID)
}

// Status reports store counts and the engine's pass progress. Host-level
// stats are filled in by the API layer, which owns process introspection.
func (s *Server) Status(ctx context.Context) (*models.StatusResponse, error) {
	devices, err := s.db.CountDevices(ctx)
	if err != nil {
		return nil, err
	}

	edges, err := s.db.CountEdges(ctx)
	if err != nil {
		return nil, err
	}

	facts, err := s.db.CountFacts(ctx)
	if err != nil {
		return nil, err
	}

	return &models.StatusResponse{
		Engine:    s.engine.Status(),
		Devices:   devices,
		Edges:     edges,
		Facts:     facts,
		Timestamp: s.nowFn(),
	}, nil
}

func queryOutcome(found bool) string {
	if found {
		return "found"
	}

	return "not_found"
}
