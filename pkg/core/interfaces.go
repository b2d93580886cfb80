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

//go:generate mockgen -destination=mock_core.go -package=core github.com/carverauto/netweave/pkg/core Service

import (
	"context"

	"github.com/carverauto/netweave/pkg/models"
)

// Service is the ingest and query surface the API layer serves. Queries
// never error on missing data; they answer with empty collections or
// explicit not-found results instead.
type Service interface {
	// IngestFacts validates and appends a batch of collector facts.
	// Invalid facts are rejected individually; the rest commit.
	IngestFacts(ctx context.Context, facts []*models.Fact) (*models.FactIngestResponse, error)

	// IngestInterfaces records collector-observed interface state in the
	// registry, ensuring owning devices exist first. Rejections are
	// per-row, like fact ingest.
	IngestInterfaces(ctx context.Context, ifaces []*models.NetInterface) (*models.InterfaceIngestResponse, error)

	// ListNodes returns registry devices matching the filter.
	ListNodes(ctx context.Context, filter models.NodeFilter) ([]*models.Device, error)

	// ListEdges returns raw, non-canonical edges for evidence browsing.
	ListEdges(ctx context.Context, filter models.EdgeFilter) ([]*models.Edge, error)

	// ListCanonicalLinks returns the resolved one-edge-per-link view.
	ListCanonicalLinks(ctx context.Context, minConfidence float64) ([]models.CanonicalLink, error)

	// FindPath runs a shortest-hop search between two devices. Passing
	// layer "l3" admits routing adjacencies for this query only.
	FindPath(ctx context.Context, src, dst, layer string) (models.PathResult, error)

	// FindImpact computes the downstream blast radius of a node, or of
	// one of its ports when port is non-empty.
	FindImpact(ctx context.Context, node, port string) (models.ImpactResult, error)

	// GetInterface fetches one interface record.
	GetInterface(ctx context.Context, deviceID, ifname string) (*models.NetInterface, error)

	// ListInterfaces returns all interfaces of one device.
	ListInterfaces(ctx context.Context, deviceID string) ([]*models.NetInterface, error)

	// Status reports store counts and engine progress.
	Status(ctx context.Context) (*models.StatusResponse, error)
}
