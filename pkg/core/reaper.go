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
	"time"
)

// runRetentionSweep purges facts older than the retention window on a
// fixed cadence. Repeated sweeps over an already-clean store are no-ops,
// so a sweep racing an ingest never loses fresh data.
func (s *Server) runRetentionSweep(ctx context.Context) {
	// Sweep once at startup so a long-stopped instance catches up
	// before the first tick.
	s.sweepFacts(ctx)

	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.done:
			return
		case <-ticker.C:
			s.sweepFacts(ctx)
		}
	}
}

// sweepFacts executes a single retention cycle.
func (s *Server) sweepFacts(ctx context.Context) {
	cutoff := s.nowFn().Add(-s.factMaxAge)

	purged, err := s.db.PurgeFactsBefore(ctx, cutoff)
	if err != nil {
		sweepsTotal.WithLabelValues(sweepStatusError).Inc()
		s.logger.Error().
			Err(err).
			Time("cutoff", cutoff).
			Msg("Fact retention sweep failed")

		return
	}

	sweepsTotal.WithLabelValues(sweepStatusOK).Inc()

	if purged > 0 {
		factsPurged.Add(float64(purged))
		s.logger.Info().
			Int64("purged", purged).
			Time("cutoff", cutoff).
			Msg("Purged expired facts")
	}
}
