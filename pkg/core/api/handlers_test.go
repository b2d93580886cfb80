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

// Package api pkg/core/api/handlers_test.go
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/carverauto/netweave/pkg/core"
	"github.com/carverauto/netweave/pkg/db"
	"github.com/carverauto/netweave/pkg/logger"
	"github.com/carverauto/netweave/pkg/models"
)

var apiTime = time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

func newTestAPI(t *testing.T, options ...func(*APIServer)) (*APIServer, *core.MockService) {
	t.Helper()

	ctrl := gomock.NewController(t)
	svc := core.NewMockService(ctrl)

	opts := append([]func(*APIServer){
		WithService(svc),
		WithLogger(logger.NewTestLogger()),
	}, options...)

	return NewAPIServer(models.CORSConfig{}, opts...), svc
}

func doRequest(s *APIServer, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	return w
}

func TestPostFactsAccepted(t *testing.T) {
	s, svc := newTestAPI(t)

	svc.EXPECT().
		IngestFacts(gomock.Any(), gomock.Len(1)).
		Return(&models.FactIngestResponse{Accepted: 1}, nil)

	body := `[{"device":"core-sw-01","protocol":"lldp","collected_at":"2025-06-10T11:59:00Z"}]`
	req := httptest.NewRequest(http.MethodPost, "/api/facts", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := doRequest(s, req)

	require.Equal(t, http.StatusAccepted, w.Code)

	var resp models.FactIngestResponse

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Accepted)
}

func TestPostFactsRejectsMalformedBody(t *testing.T) {
	s, _ := newTestAPI(t)

	req := httptest.NewRequest(http.MethodPost, "/api/facts", strings.NewReader(`{"not":"an array"`))
	w := doRequest(s, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp models.ErrorResponse

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Message, "Invalid fact batch")
}

func TestPostFactsServiceFailure(t *testing.T) {
	s, svc := newTestAPI(t)

	svc.EXPECT().
		IngestFacts(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("store down"))

	req := httptest.NewRequest(http.MethodPost, "/api/facts", strings.NewReader(`[]`))
	w := doRequest(s, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestPostInterfacesAccepted(t *testing.T) {
	s, svc := newTestAPI(t)

	svc.EXPECT().
		IngestInterfaces(gomock.Any(), gomock.Len(1)).
		Return(&models.InterfaceIngestResponse{Accepted: 1}, nil)

	body := `[{"device_id":"10.0.0.1","ifname":"Gi1/0/1","speed_mbps":1000,"duplex":"full"}]`
	req := httptest.NewRequest(http.MethodPost, "/api/interfaces", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := doRequest(s, req)

	require.Equal(t, http.StatusAccepted, w.Code)

	var resp models.InterfaceIngestResponse

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Accepted)
}

func TestPostInterfacesRejectsMalformedBody(t *testing.T) {
	s, _ := newTestAPI(t)

	req := httptest.NewRequest(http.MethodPost, "/api/interfaces", strings.NewReader(`{`))
	w := doRequest(s, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetNodesEncodesEmptyList(t *testing.T) {
	s, svc := newTestAPI(t)

	svc.EXPECT().
		ListNodes(gomock.Any(), models.NodeFilter{}).
		Return(nil, nil)

	w := doRequest(s, httptest.NewRequest(http.MethodGet, "/api/nodes", http.NoBody))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestGetNodesPassesFilters(t *testing.T) {
	s, svc := newTestAPI(t)

	svc.EXPECT().
		ListNodes(gomock.Any(), models.NodeFilter{Site: "dc-1", Role: "switch"}).
		Return([]*models.Device{{DeviceID: "core-sw-01"}}, nil)

	w := doRequest(s, httptest.NewRequest(http.MethodGet, "/api/nodes?site=dc-1&role=switch", http.NoBody))

	require.Equal(t, http.StatusOK, w.Code)

	var nodes []*models.Device

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &nodes))
	require.Len(t, nodes, 1)
	assert.Equal(t, "core-sw-01", nodes[0].DeviceID)
}

func TestGetEdgesParsesConfidenceFloor(t *testing.T) {
	s, svc := newTestAPI(t)

	svc.EXPECT().
		ListEdges(gomock.Any(), models.EdgeFilter{MinConfidence: 0.8}).
		Return([]*models.Edge{}, nil)

	w := doRequest(s, httptest.NewRequest(http.MethodGet, "/api/edges?min_confidence=0.8", http.NoBody))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetEdgesRejectsBadConfidence(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"not a number", "min_confidence=high"},
		{"negative", "min_confidence=-0.2"},
		{"above one", "min_confidence=1.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestAPI(t)

			w := doRequest(s, httptest.NewRequest(http.MethodGet, "/api/edges?"+tt.query, http.NoBody))

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestGetLinksDelegates(t *testing.T) {
	s, svc := newTestAPI(t)

	svc.EXPECT().
		ListCanonicalLinks(gomock.Any(), 0.9).
		Return([]models.CanonicalLink{
			{Edge: models.Edge{ADevice: "dev-a", BDevice: "dev-b", Confidence: 1.0}, ClaimCount: 2},
		}, nil)

	w := doRequest(s, httptest.NewRequest(http.MethodGet, "/api/links?min_confidence=0.9", http.NoBody))

	require.Equal(t, http.StatusOK, w.Code)

	var links []models.CanonicalLink

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &links))
	require.Len(t, links, 1)
	assert.Equal(t, 2, links[0].ClaimCount)
}

func TestGetPathRequiresEndpoints(t *testing.T) {
	s, _ := newTestAPI(t)

	w := doRequest(s, httptest.NewRequest(http.MethodGet, "/api/paths?from=dev-a", http.NoBody))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetPathFound(t *testing.T) {
	s, svc := newTestAPI(t)

	svc.EXPECT().
		FindPath(gomock.Any(), "dev-a", "dev-c", "l3").
		Return(models.PathResult{
			Source: "dev-a",
			Target: "dev-c",
			Found:  true,
			Hops: []models.PathHop{
				{Device: "dev-a", PeerDevice: "dev-b", Method: models.MethodLLDP, Confidence: 1.0},
				{Device: "dev-b", PeerDevice: "dev-c", Method: models.MethodOSPF, Confidence: 0.7},
			},
			TotalHops: 2,
		}, nil)

	w := doRequest(s, httptest.NewRequest(http.MethodGet, "/api/paths?from=dev-a&to=dev-c&layer=l3", http.NoBody))

	require.Equal(t, http.StatusOK, w.Code)

	var result models.PathResult

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.Found)
	assert.Len(t, result.Hops, 2)
}

func TestGetPathNotFoundReturns404WithBody(t *testing.T) {
	s, svc := newTestAPI(t)

	svc.EXPECT().
		FindPath(gomock.Any(), "dev-a", "dev-z", "").
		Return(models.PathResult{Source: "dev-a", Target: "dev-z", Found: false}, nil)

	w := doRequest(s, httptest.NewRequest(http.MethodGet, "/api/paths?from=dev-a&to=dev-z", http.NoBody))

	require.Equal(t, http.StatusNotFound, w.Code)

	var result models.PathResult

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.False(t, result.Found)
	assert.Equal(t, "dev-a", result.Source)
	assert.Equal(t, "dev-z", result.Target)
}

func TestGetImpactRequiresNode(t *testing.T) {
	s, _ := newTestAPI(t)

	w := doRequest(s, httptest.NewRequest(http.MethodGet, "/api/impact", http.NoBody))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetImpactWithPort(t *testing.T) {
	s, svc := newTestAPI(t)

	svc.EXPECT().
		FindImpact(gomock.Any(), "sw-s", "Gi1/0/2").
		Return(models.ImpactResult{
			Node:            "sw-s",
			Port:            "Gi1/0/2",
			AffectedDevices: []string{"host-z", "sw-y"},
			Count:           2,
		}, nil)

	w := doRequest(s, httptest.NewRequest(http.MethodGet, "/api/impact?node=sw-s&port=Gi1%2F0%2F2", http.NoBody))

	require.Equal(t, http.StatusOK, w.Code)

	var result models.ImpactResult

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 2, result.Count)
	assert.ElementsMatch(t, []string{"host-z", "sw-y"}, result.AffectedDevices)
}

func TestGetInterfacesSingle(t *testing.T) {
	s, svc := newTestAPI(t)

	svc.EXPECT().
		GetInterface(gomock.Any(), "core-sw-01", "Gi1/0/1").
		Return(&models.NetInterface{DeviceID: "core-sw-01", Ifname: "Gi1/0/1", SpeedMbps: 1000}, nil)

	w := doRequest(s, httptest.NewRequest(http.MethodGet, "/api/interfaces?device=core-sw-01&ifname=Gi1%2F0%2F1", http.NoBody))

	require.Equal(t, http.StatusOK, w.Code)

	var iface models.NetInterface

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &iface))
	assert.Equal(t, int64(1000), iface.SpeedMbps)
}

func TestGetInterfacesNotFound(t *testing.T) {
	s, svc := newTestAPI(t)

	svc.EXPECT().
		GetInterface(gomock.Any(), "core-sw-01", "Gi9/9/9").
		Return(nil, db.ErrInterfaceNotFound)

	w := doRequest(s, httptest.NewRequest(http.MethodGet, "/api/interfaces?device=core-sw-01&ifname=Gi9%2F9%2F9", http.NoBody))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetInterfacesListsWithoutIfname(t *testing.T) {
	s, svc := newTestAPI(t)

	svc.EXPECT().
		ListInterfaces(gomock.Any(), "core-sw-01").
		Return([]*models.NetInterface{
			{DeviceID: "core-sw-01", Ifname: "Gi1/0/1"},
			{DeviceID: "core-sw-01", Ifname: "Gi1/0/2"},
		}, nil)

	w := doRequest(s, httptest.NewRequest(http.MethodGet, "/api/interfaces?device=core-sw-01", http.NoBody))

	require.Equal(t, http.StatusOK, w.Code)

	var ifaces []*models.NetInterface

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ifaces))
	assert.Len(t, ifaces, 2)
}

func TestGetInterfacesRequiresDevice(t *testing.T) {
	s, _ := newTestAPI(t)

	w := doRequest(s, httptest.NewRequest(http.MethodGet, "/api/interfaces", http.NoBody))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetStatusIncludesHostStats(t *testing.T) {
	s, svc := newTestAPI(t)

	s.hostStats = func(_ context.Context) *models.HostStatus {
		return &models.HostStatus{CPUPercent: 12.5, MemUsedBytes: 1 << 30, MemTotalBytes: 4 << 30}
	}

	svc.EXPECT().
		Status(gomock.Any()).
		Return(&models.StatusResponse{
			Engine:    models.EngineStatus{PassCount: 7, LastPassEdges: 42},
			Devices:   5,
			Edges:     9,
			Facts:     120,
			Timestamp: apiTime,
		}, nil)

	w := doRequest(s, httptest.NewRequest(http.MethodGet, "/api/status", http.NoBody))

	require.Equal(t, http.StatusOK, w.Code)

	var status models.StatusResponse

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, uint64(7), status.Engine.PassCount)
	require.NotNil(t, status.Host)
	assert.InDelta(t, 12.5, status.Host.CPUPercent, 0.001)
}

func TestHealthzSkipsAuth(t *testing.T) {
	s, _ := newTestAPI(t, WithAPIKey("secret"))

	w := doRequest(s, httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAPIKeyGuardsProtectedRoutes(t *testing.T) {
	s, svc := newTestAPI(t, WithAPIKey("secret"))

	w := doRequest(s, httptest.NewRequest(http.MethodGet, "/api/nodes", http.NoBody))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	svc.EXPECT().
		ListNodes(gomock.Any(), gomock.Any()).
		Return(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/nodes", http.NoBody)
	req.Header.Set("X-API-Key", "secret")

	w = doRequest(s, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSwaggerSpecServed(t *testing.T) {
	s, _ := newTestAPI(t)

	w := doRequest(s, httptest.NewRequest(http.MethodGet, "/swagger/swagger.json", http.NoBody))

	require.Equal(t, http.StatusOK, w.Code)

	var spec map[string]interface{}

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &spec))
	assert.Equal(t, "2.0", spec["swagger"])
}

func TestServerStartStop(t *testing.T) {
	s, _ := newTestAPI(t, WithListenAddr("127.0.0.1:0"))

	require.NoError(t, s.Start(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	assert.NoError(t, s.Stop(ctx))
}
