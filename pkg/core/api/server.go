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

// Package api provides the HTTP API server for the topology service.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/carverauto/netweave/pkg/core"
	"github.com/carverauto/netweave/pkg/engine"
	nwHttp "github.com/carverauto/netweave/pkg/http"
	"github.com/carverauto/netweave/pkg/logger"
	"github.com/carverauto/netweave/pkg/models"
	"github.com/carverauto/netweave/pkg/swagger"
)

const (
	defaultReadTimeout  = 10 * time.Second
	defaultWriteTimeout = 30 * time.Second
	defaultIdleTimeout  = 60 * time.Second

	// streamPath is exempt from the API key middleware because browsers
	// cannot attach headers to a websocket handshake; the stream handler
	// authenticates after the upgrade instead.
	streamPath = "/api/links/stream"
)

// APIServer exposes the topology service over HTTP: ingest, queries,
// status, Prometheus metrics, and the link event stream.
type APIServer struct {
	service    core.Service
	router     *mux.Router
	httpServer *http.Server
	corsConfig models.CORSConfig
	apiKey     string
	listenAddr string
	logger     logger.Logger
	hub        *streamHub

	// hostStats is swappable so tests do not sample the real host.
	hostStats func(ctx context.Context) *models.HostStatus
}

// NewAPIServer creates a new API server instance with the given configuration.
func NewAPIServer(config models.CORSConfig, options ...func(server *APIServer)) *APIServer {
	s := &APIServer{
		router:     mux.NewRouter(),
		corsConfig: config,
	}

	for _, o := range options {
		o(s)
	}

	if s.logger == nil {
		s.logger = logger.NewTestLogger()
	}

	if s.hostStats == nil {
		s.hostStats = func(ctx context.Context) *models.HostStatus {
			return collectHostStatus(ctx, s.logger)
		}
	}

	s.hub = newStreamHub(s.logger)
	s.setupRoutes()

	return s
}

// WithService sets the topology service the API delegates to.
func WithService(svc core.Service) func(*APIServer) {
	return func(server *APIServer) {
		server.service = svc
	}
}

// WithAPIKey guards /api routes with a static key.
func WithAPIKey(key string) func(*APIServer) {
	return func(server *APIServer) {
		server.apiKey = key
	}
}

// WithListenAddr sets the address Start binds to.
func WithListenAddr(addr string) func(*APIServer) {
	return func(server *APIServer) {
		server.listenAddr = addr
	}
}

// WithLogger sets the API server logger.
func WithLogger(log logger.Logger) func(*APIServer) {
	return func(server *APIServer) {
		server.logger = log
	}
}

// Hub returns the websocket broadcast hub. Register it as a link sink so
// compute passes reach connected stream clients.
func (s *APIServer) Hub() engine.EventSink {
	return s.hub
}

// Router returns the configured router, mainly for tests.
func (s *APIServer) Router() *mux.Router {
	return s.router
}

func (s *APIServer) setupRoutes() {
	s.setupMiddleware()

	s.router.HandleFunc("/healthz", s.getHealth).Methods(http.MethodGet)
	s.router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	s.setupSwaggerRoutes()
	s.setupProtectedRoutes()
}

// setupSwaggerRoutes serves the embedded API documentation.
func (s *APIServer) setupSwaggerRoutes() {
	s.router.HandleFunc("/swagger/swagger.json", s.serveSwaggerJSON).Methods(http.MethodGet)

	s.router.HandleFunc("/api-docs", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/swagger.json", http.StatusMovedPermanently)
	}).Methods(http.MethodGet)
}

// serveSwaggerJSON serves the embedded Swagger JSON file.
func (s *APIServer) serveSwaggerJSON(w http.ResponseWriter, _ *http.Request) {
	data, err := swagger.GetSwaggerJSON()
	if err != nil {
		http.Error(w, "Swagger JSON not found", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if _, err = w.Write(data); err != nil {
		s.logger.Error().Err(err).Msg("Error writing Swagger JSON response")
	}
}

// setupMiddleware configures CORS middleware.
func (s *APIServer) setupMiddleware() {
	corsConfig := models.CORSConfig{
		AllowedOrigins:   s.corsConfig.AllowedOrigins,
		AllowCredentials: s.corsConfig.AllowCredentials,
	}

	middlewareChain := func(next http.Handler) http.Handler {
		return nwHttp.CommonMiddleware(next, corsConfig, s.logger)
	}

	s.router.Use(middlewareChain)
}

// setupProtectedRoutes configures API-key protected routes.
func (s *APIServer) setupProtectedRoutes() {
	protected := s.router.PathPrefix("/api").Subrouter()

	protected.Use(nwHttp.APIKeyMiddlewareWithOptions(nwHttp.APIKeyOptions{
		APIKey:          s.apiKey,
		ExcludePaths:    []string{streamPath},
		LogUnauthorized: true,
		Logger:          s.logger,
	}))

	protected.HandleFunc("/facts", s.postFacts).Methods(http.MethodPost)
	protected.HandleFunc("/nodes", s.getNodes).Methods(http.MethodGet)
	protected.HandleFunc("/edges", s.getEdges).Methods(http.MethodGet)
	protected.HandleFunc("/links", s.getLinks).Methods(http.MethodGet)
	protected.HandleFunc("/links/stream", s.handleLinkStream).Methods(http.MethodGet)
	protected.HandleFunc("/paths", s.getPath).Methods(http.MethodGet)
	protected.HandleFunc("/impact", s.getImpact).Methods(http.MethodGet)
	protected.HandleFunc("/interfaces", s.getInterfaces).Methods(http.MethodGet)
	protected.HandleFunc("/interfaces", s.postInterfaces).Methods(http.MethodPost)
	protected.HandleFunc("/status", s.getStatus).Methods(http.MethodGet)
}

// Start begins serving in the background. It satisfies the lifecycle
// Service contract, so listen errors after startup surface in logs
// rather than the return value.
func (s *APIServer) Start(_ context.Context) error {
	s.httpServer = &http.Server{
		Addr:         s.listenAddr,
		Handler:      s.router,
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
		IdleTimeout:  defaultIdleTimeout,
	}

	s.logger.Info().
		Str("listen_addr", s.listenAddr).
		Msg("Starting HTTP API server")

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error().Err(err).Msg("HTTP server stopped unexpectedly")
		}
	}()

	return nil
}

// Stop drains in-flight requests and closes stream clients.
func (s *APIServer) Stop(ctx context.Context) error {
	s.hub.close()

	if s.httpServer == nil {
		return nil
	}

	return s.httpServer.Shutdown(ctx)
}

// getHealth serves liveness probes. It never touches the store.
func (s *APIServer) getHealth(w http.ResponseWriter, _ *http.Request) {
	if err := s.encodeJSONResponse(w, map[string]string{"status": "ok"}); err != nil {
		s.logger.Error().Err(err).Msg("Error encoding health response")
	}
}

// encodeJSONResponse encodes a response as JSON.
func (*APIServer) encodeJSONResponse(w http.ResponseWriter, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(data); err != nil {
		return err
	}

	return nil
}

func writeError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")

	w.WriteHeader(statusCode)

	errResponse := models.ErrorResponse{
		Message: message,
		Status:  statusCode,
	}

	if err := json.NewEncoder(w).Encode(errResponse); err != nil {
		// Fallback in case encoding fails
		http.Error(w, "Failed to encode error response", http.StatusInternalServerError)
	}
}

// collectHostStatus samples host cpu and memory for /api/status. Failures
// degrade to a nil section rather than failing the endpoint.
func collectHostStatus(ctx context.Context, log logger.Logger) *models.HostStatus {
	status := &models.HostStatus{}

	percent, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		log.Warn().Err(err).Msg("cpu.PercentWithContext failed; omitting host stats")
		return nil
	}

	if len(percent) > 0 {
		status.CPUPercent = percent[0]
	}

	vmStats, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("memory collection failed; omitting host stats")
		return nil
	}

	status.MemUsedBytes = vmStats.Used
	status.MemTotalBytes = vmStats.Total

	return status
}
