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
	"fmt"

	"github.com/carverauto/netweave/pkg/models"
)

// IngestFacts validates a collector batch and appends the acceptable facts
// to the store. Rejections are per-fact: one malformed observation never
// blocks the rest of the batch.
func (s *Server) IngestFacts(ctx context.Context, facts []*models.Fact) (*models.FactIngestResponse, error) {
	resp := &models.FactIngestResponse{}
	accepted := make([]*models.Fact, 0, len(facts))
	now := s.nowFn()

	for i, fact := range facts {
		if fact == nil {
			resp.Rejected++
			resp.Errors = append(resp.Errors, fmt.Sprintf("fact %d: empty entry", i))

			continue
		}

		if err := fact.Validate(); err != nil {
			resp.Rejected++
			resp.Errors = append(resp.Errors, fmt.Sprintf("fact %d: %v", i, err))

			continue
		}

		// Collectors with skewed clocks must not inject facts from the
		// future; a future timestamp would pin recency joins until it
		// ages out. Clamp instead of rejecting so the observation is
		// still usable.
		if fact.CollectedAt.After(now.Add(s.skewTolerance)) {
			clamped := *fact
			clamped.CollectedAt = now
			fact = &clamped

			factsClamped.Inc()
			s.logger.Debug().
				Str("device", fact.Device).
				Str("protocol", string(fact.Protocol)).
				Msg("Clamped future fact timestamp")
		}

		accepted = append(accepted, fact)
	}

	if len(accepted) > 0 {
		stored, err := s.db.RecordFacts(ctx, accepted)
		if err != nil {
			return nil, fmt.Errorf("failed to record facts: %w", err)
		}

		resp.Accepted = stored

		for _, fact := range accepted {
			factsIngested.WithLabelValues(string(fact.Protocol)).Inc()
		}
	}

	if resp.Rejected > 0 {
		s.logger.Warn().
			Int("accepted", resp.Accepted).
			Int("rejected", resp.Rejected).
			Msg("Ingest batch had rejected facts")
	}

	return resp, nil
}

// IngestInterfaces records collector-observed interface state. The owning
// device is ensured first so the interface row always has a parent; an
// unknown device is auto-created, never an error.
func (s *Server) IngestInterfaces(ctx context.Context, ifaces []*models.NetInterface) (*models.InterfaceIngestResponse, error) {
	resp := &models.InterfaceIngestResponse{}
	now := s.nowFn()

	for i, iface := range ifaces {
		if iface == nil {
			resp.Rejected++
			resp.Errors = append(resp.Errors, fmt.Sprintf("interface %d: empty entry", i))

			continue
		}

		if err := iface.Validate(); err != nil {
			resp.Rejected++
			resp.Errors = append(resp.Errors, fmt.Sprintf("interface %d: %v", i, err))

			continue
		}

		if iface.LastSeen.IsZero() {
			stamped := *iface
			stamped.LastSeen = now
			iface = &stamped
		}

		if err := s.registry.EnsureDevice(ctx, iface.DeviceID, models.DeviceDefaults{}, iface.LastSeen); err != nil {
			return resp, fmt.Errorf("ensuring device %s: %w", iface.DeviceID, err)
		}

		if err := s.registry.UpsertInterface(ctx, iface); err != nil {
			return resp, fmt.Errorf("upserting interface %s/%s: %w", iface.DeviceID, iface.Ifname, err)
		}

		resp.Accepted++
		interfacesIngested.Inc()
	}

	if resp.Rejected > 0 {
		s.logger.Warn().
			Int("accepted", resp.Accepted).
			Int("rejected", resp.Rejected).
			Msg("Interface batch had rejected rows")
	}

	return resp, nil
}
