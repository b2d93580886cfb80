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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	passStatusOK    = "ok"
	passStatusError = "error"
)

var (
	passesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "netweave",
		Subsystem: "engine",
		Name:      "passes_total",
		Help:      "Compute passes by terminal status",
	}, []string{"status"})

	passDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "netweave",
		Subsystem: "engine",
		Name:      "pass_duration_seconds",
		Help:      "Wall time of one compute pass",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
	})

	factsExamined = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "netweave",
		Subsystem: "engine",
		Name:      "facts_examined_total",
		Help:      "Facts read across all compute passes",
	})

	claimsProduced = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "netweave",
		Subsystem: "engine",
		Name:      "claims_total",
		Help:      "Edge claims derived from facts, by method",
	}, []string{"method"})

	claimFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "netweave",
		Subsystem: "engine",
		Name:      "claim_failures_total",
		Help:      "Claims that failed to commit",
	})

	edgesUpserted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "netweave",
		Subsystem: "engine",
		Name:      "edges_upserted_total",
		Help:      "Edge upserts that reached the store, by method",
	}, []string{"method"})

	linkEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "netweave",
		Subsystem: "engine",
		Name:      "link_events_total",
		Help:      "Link events published, by type",
	}, []string{"type"})
)
