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

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/carverauto/netweave/pkg/db"
	"github.com/carverauto/netweave/pkg/models"
)

// maxFactBatchBytes bounds a single ingest request body.
const maxFactBatchBytes = 8 << 20

// @Summary Ingest facts
// @Description Accepts a batch of raw observations from collectors. Valid
// @Description facts are committed even when others in the batch are rejected.
// @Tags Facts
// @Accept json
// @Produce json
// @Success 202 {object} models.FactIngestResponse "Per-fact outcomes"
// @Failure 400 {object} models.ErrorResponse "Malformed request body"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /api/facts [post]
// @Security ApiKeyAuth
func (s *APIServer) postFacts(w http.ResponseWriter, r *http.Request) {
	var facts []*models.Fact

	r.Body = http.MaxBytesReader(w, r.Body, maxFactBatchBytes)

	if err := json.NewDecoder(r.Body).Decode(&facts); err != nil {
		writeError(w, fmt.Sprintf("Invalid fact batch: %v", err), http.StatusBadRequest)
		return
	}

	resp, err := s.service.IngestFacts(r.Context(), facts)
	if err != nil {
		s.logger.Error().Err(err).Msg("Fact ingest failed")
		writeError(w, "Failed to ingest facts", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Error().Err(err).Msg("Error encoding ingest response")
	}
}

// @Summary Ingest interface state
// @Description Accepts a batch of interface attribute observations from
// @Description collectors. Owning devices are auto-created; rejections are
// @Description per-row.
// @Tags Registry
// @Accept json
// @Produce json
// @Success 202 {object} models.InterfaceIngestResponse "Per-row outcomes"
// @Failure 400 {object} models.ErrorResponse "Malformed request body"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /api/interfaces [post]
// @Security ApiKeyAuth
func (s *APIServer) postInterfaces(w http.ResponseWriter, r *http.Request) {
	var ifaces []*models.NetInterface

	r.Body = http.MaxBytesReader(w, r.Body, maxFactBatchBytes)

	if err := json.NewDecoder(r.Body).Decode(&ifaces); err != nil {
		writeError(w, fmt.Sprintf("Invalid interface batch: %v", err), http.StatusBadRequest)
		return
	}

	resp, err := s.service.IngestInterfaces(r.Context(), ifaces)
	if err != nil {
		s.logger.Error().Err(err).Msg("Interface ingest failed")
		writeError(w, "Failed to ingest interfaces", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Error().Err(err).Msg("Error encoding interface ingest response")
	}
}

// @Summary List devices
// @Description Retrieves registry devices, optionally filtered by site or role
// @Tags Topology
// @Produce json
// @Param site query string false "Site filter"
// @Param role query string false "Role filter"
// @Success 200 {array} models.Device "Devices"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /api/nodes [get]
// @Security ApiKeyAuth
func (s *APIServer) getNodes(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := models.NodeFilter{
		Site: query.Get("site"),
		Role: query.Get("role"),
	}

	nodes, err := s.service.ListNodes(r.Context(), filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error fetching nodes")
		writeError(w, "Failed to fetch nodes", http.StatusInternalServerError)

		return
	}

	if nodes == nil {
		nodes = []*models.Device{}
	}

	if err := s.encodeJSONResponse(w, nodes); err != nil {
		s.logger.Error().Err(err).Msg("Error encoding nodes response")
	}
}

// @Summary List raw edges
// @Description Retrieves claim-level edges: every method's claim survives here,
// @Description unlike the canonical link view
// @Tags Topology
// @Produce json
// @Param site query string false "Site filter"
// @Param role query string false "Role filter"
// @Param min_confidence query number false "Confidence floor"
// @Success 200 {array} models.Edge "Edges"
// @Failure 400 {object} models.ErrorResponse "Invalid parameters"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /api/edges [get]
// @Security ApiKeyAuth
func (s *APIServer) getEdges(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	minConfidence, err := parseConfidence(query.Get("min_confidence"))
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	filter := models.EdgeFilter{
		Site:          query.Get("site"),
		Role:          query.Get("role"),
		MinConfidence: minConfidence,
	}

	edges, err := s.service.ListEdges(r.Context(), filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error fetching edges")
		writeError(w, "Failed to fetch edges", http.StatusInternalServerError)

		return
	}

	if edges == nil {
		edges = []*models.Edge{}
	}

	if err := s.encodeJSONResponse(w, edges); err != nil {
		s.logger.Error().Err(err).Msg("Error encoding edges response")
	}
}

// @Summary List canonical links
// @Description Retrieves one resolved link per connected endpoint pair
// @Tags Topology
// @Produce json
// @Param min_confidence query number false "Confidence floor"
// @Success 200 {array} models.CanonicalLink "Canonical links"
// @Failure 400 {object} models.ErrorResponse "Invalid parameters"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /api/links [get]
// @Security ApiKeyAuth
func (s *APIServer) getLinks(w http.ResponseWriter, r *http.Request) {
	minConfidence, err := parseConfidence(r.URL.Query().Get("min_confidence"))
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	links, err := s.service.ListCanonicalLinks(r.Context(), minConfidence)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error resolving canonical links")
		writeError(w, "Failed to resolve links", http.StatusInternalServerError)

		return
	}

	if links == nil {
		links = []models.CanonicalLink{}
	}

	if err := s.encodeJSONResponse(w, links); err != nil {
		s.logger.Error().Err(err).Msg("Error encoding links response")
	}
}

// @Summary Find a path
// @Description Runs a shortest-path search between two devices over canonical
// @Description links. layer=l3 widens the search to routing adjacencies.
// @Tags Topology
// @Produce json
// @Param from query string true "Source device"
// @Param to query string true "Target device"
// @Param layer query string false "Set to l3 to include routing adjacencies"
// @Success 200 {object} models.PathResult "Path found"
// @Failure 400 {object} models.ErrorResponse "Missing endpoints"
// @Failure 404 {object} models.PathResult "No path between the endpoints"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /api/paths [get]
// @Security ApiKeyAuth
func (s *APIServer) getPath(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	from := query.Get("from")
	to := query.Get("to")

	if from == "" || to == "" {
		writeError(w, "Both from and to are required", http.StatusBadRequest)
		return
	}

	result, err := s.service.FindPath(r.Context(), from, to, query.Get("layer"))
	if err != nil {
		s.logger.Error().Err(err).Msg("Path query failed")
		writeError(w, "Failed to compute path", http.StatusInternalServerError)

		return
	}

	if !result.Found {
		// Not-found is an answer, not an error: the result body still
		// echoes the endpoints the caller asked about.
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)

		if err := json.NewEncoder(w).Encode(result); err != nil {
			s.logger.Error().Err(err).Msg("Error encoding path response")
		}

		return
	}

	if err := s.encodeJSONResponse(w, result); err != nil {
		s.logger.Error().Err(err).Msg("Error encoding path response")
	}
}

// @Summary Compute failure impact
// @Description Retrieves every device transitively reachable through a node,
// @Description or through one of its ports when one is named
// @Tags Topology
// @Produce json
// @Param node query string true "Failing device"
// @Param port query string false "Failing port on the device"
// @Success 200 {object} models.ImpactResult "Affected devices"
// @Failure 400 {object} models.ErrorResponse "Missing node"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /api/impact [get]
// @Security ApiKeyAuth
func (s *APIServer) getImpact(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	node := query.Get("node")
	if node == "" {
		writeError(w, "node is required", http.StatusBadRequest)
		return
	}

	result, err := s.service.FindImpact(r.Context(), node, query.Get("port"))
	if err != nil {
		s.logger.Error().Err(err).Msg("Impact query failed")
		writeError(w, "Failed to compute impact", http.StatusInternalServerError)

		return
	}

	if err := s.encodeJSONResponse(w, result); err != nil {
		s.logger.Error().Err(err).Msg("Error encoding impact response")
	}
}

// @Summary Get interfaces
// @Description Retrieves one interface when ifname is given, or every known
// @Description interface on the device otherwise. Query parameters instead of
// @Description path segments because interface names contain slashes.
// @Tags Registry
// @Produce json
// @Param device query string true "Device ID"
// @Param ifname query string false "Interface name"
// @Success 200 {object} models.NetInterface "Interface details"
// @Failure 400 {object} models.ErrorResponse "Missing device"
// @Failure 404 {object} models.ErrorResponse "Interface not found"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /api/interfaces [get]
// @Security ApiKeyAuth
func (s *APIServer) getInterfaces(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	device := query.Get("device")
	if device == "" {
		writeError(w, "device is required", http.StatusBadRequest)
		return
	}

	if ifname := query.Get("ifname"); ifname != "" {
		iface, err := s.service.GetInterface(r.Context(), device, ifname)
		if err != nil {
			if errors.Is(err, db.ErrInterfaceNotFound) {
				writeError(w, "Interface not found", http.StatusNotFound)
				return
			}

			s.logger.Error().Err(err).Msg("Error fetching interface")
			writeError(w, "Failed to fetch interface", http.StatusInternalServerError)

			return
		}

		if err := s.encodeJSONResponse(w, iface); err != nil {
			s.logger.Error().Err(err).Msg("Error encoding interface response")
		}

		return
	}

	ifaces, err := s.service.ListInterfaces(r.Context(), device)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error listing interfaces")
		writeError(w, "Failed to list interfaces", http.StatusInternalServerError)

		return
	}

	if ifaces == nil {
		ifaces = []*models.NetInterface{}
	}

	if err := s.encodeJSONResponse(w, ifaces); err != nil {
		s.logger.Error().Err(err).Msg("Error encoding interfaces response")
	}
}

// @Summary Get system status
// @Description Retrieves engine pass progress, store counts, and host cpu/mem
// @Tags Status
// @Produce json
// @Success 200 {object} models.StatusResponse "Service status"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /api/status [get]
// @Security ApiKeyAuth
func (s *APIServer) getStatus(w http.ResponseWriter, r *http.Request) {
	status, err := s.service.Status(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("Error fetching status")
		writeError(w, "Failed to fetch status", http.StatusInternalServerError)

		return
	}

	status.Host = s.hostStats(r.Context())

	if err := s.encodeJSONResponse(w, status); err != nil {
		s.logger.Error().Err(err).Msg("Error encoding status response")
	}
}

// parseConfidence parses an optional confidence floor query parameter.
func parseConfidence(raw string) (float64, error) {
	if raw == "" {
		return 0, nil
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid min_confidence %q", raw)
	}

	if value < 0 || value > 1 {
		return 0, fmt.Errorf("min_confidence must be between 0 and 1, got %v", value)
	}

	return value, nil
}
