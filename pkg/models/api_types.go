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

package models

import "time"

// ErrorResponse is the body returned for every API error.
type ErrorResponse struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// FactIngestResponse reports per-fact validation outcomes for one ingest
// batch. Accepted facts are committed even when others are rejected.
type FactIngestResponse struct {
	Accepted int      `json:"accepted"`
	Rejected int      `json:"rejected"`
	Errors   []string `json:"errors,omitempty"`
}

// InterfaceIngestResponse reports per-row outcomes for one batch of
// collector-observed interface state.
type InterfaceIngestResponse struct {
	Accepted int      `json:"accepted"`
	Rejected int      `json:"rejected"`
	Errors   []string `json:"errors,omitempty"`
}

// EngineStatus is the compute engine's view of its own progress.
type EngineStatus struct {
	LastPassStarted  time.Time `json:"last_pass_started,omitempty"`
	LastPassDuration Duration  `json:"last_pass_duration,omitempty"`
	LastPassEdges    int       `json:"last_pass_edges"`
	LastPassError    string    `json:"last_pass_error,omitempty"`
	PassCount        uint64    `json:"pass_count"`
}

// HostStatus is a small resource snapshot of the host running the core.
type HostStatus struct {
	CPUPercent    float64 `json:"cpu_percent"`
	MemUsedBytes  uint64  `json:"mem_used_bytes"`
	MemTotalBytes uint64  `json:"mem_total_bytes"`
}

// StatusResponse is the /api/status body.
type StatusResponse struct {
	Engine    EngineStatus `json:"engine"`
	Host      *HostStatus  `json:"host,omitempty"`
	Devices   int          `json:"devices"`
	Edges     int          `json:"edges"`
	Facts     int          `json:"facts"`
	Timestamp time.Time    `json:"timestamp"`
}
