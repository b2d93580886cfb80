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

// Package core owns the topology service: fact store, device registry,
// compute engine, snapshot cache, and the retention sweep, behind the
// Service interface the API layer serves.
package core

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/carverauto/netweave/pkg/db"
	"github.com/carverauto/netweave/pkg/engine"
	"github.com/carverauto/netweave/pkg/logger"
	"github.com/carverauto/netweave/pkg/models"
	"github.com/carverauto/netweave/pkg/registry"
)

const (
	defaultMaxHops       = 20
	defaultSkewTolerance = 5 * time.Minute
	defaultFactMaxAge    = 168 * time.Hour
	defaultSweepInterval = time.Hour
)

// Server wires the core components together and runs their background
// loops. It implements Service for the API layer and engine.EventSink to
// fan link events out to registered consumers.
type Server struct {
	config   *models.CoreServiceConfig
	db       db.Service
	registry registry.Manager
	engine   *engine.Engine
	cache    *snapshotCache
	logger   logger.Logger

	includeL3     bool
	maxHops       int
	skewTolerance time.Duration
	factMaxAge    time.Duration
	sweepInterval time.Duration

	sinkMu sync.RWMutex
	sinks  []engine.EventSink

	nowFn    func() time.Time
	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

var _ Service = (*Server)(nil)

// NewServer opens the database, runs migrations, and assembles the core
// service. Background loops do not run until Start.
func NewServer(ctx context.Context, cfg *models.CoreServiceConfig, log logger.Logger) (*Server, error) {
	database, err := db.New(ctx, &cfg.Database, log)
	if err != nil {
		return nil, err
	}

	return newServerWithDB(database, cfg, log), nil
}

func newServerWithDB(database db.Service, cfg *models.CoreServiceConfig, log logger.Logger) *Server {
	maxHops := cfg.Topology.MaxHops
	if maxHops <= 0 {
		maxHops = defaultMaxHops
	}

	srv := &Server{
		config:        cfg,
		db:            database,
		registry:      registry.NewDeviceRegistry(database, log),
		cache:         newSnapshotCache(database, cfg.Topology.SnapshotTTL.OrDefault(defaultSnapshotTTL)),
		logger:        log,
		includeL3:     cfg.Topology.IncludeL3,
		maxHops:       maxHops,
		skewTolerance: cfg.Engine.SkewTolerance.OrDefault(defaultSkewTolerance),
		factMaxAge:    cfg.Retention.FactMaxAge.OrDefault(defaultFactMaxAge),
		sweepInterval: cfg.Retention.SweepInterval.OrDefault(defaultSweepInterval),
		nowFn:         time.Now,
		done:          make(chan struct{}),
	}

	srv.engine = engine.NewEngine(database, srv.registry, cfg.Engine, srv, log)

	return srv
}

// Registry exposes the device registry for transports that register
// devices directly, such as the collector ingest path.
func (s *Server) Registry() registry.Manager {
	return s.registry
}

// AddLinkSink registers a link event consumer. Register sinks before
// Start; events fan out to every registered sink.
func (s *Server) AddLinkSink(sink engine.EventSink) {
	if sink == nil {
		return
	}

	s.sinkMu.Lock()
	s.sinks = append(s.sinks, sink)
	s.sinkMu.Unlock()
}

// PublishLinkEvent fans one event out to every registered sink. Sink
// failures are independent; all are attempted.
func (s *Server) PublishLinkEvent(ctx context.Context, event *models.LinkEvent) error {
	s.sinkMu.RLock()
	sinks := make([]engine.EventSink, len(s.sinks))
	copy(sinks, s.sinks)
	s.sinkMu.RUnlock()

	var errs []error

	for _, sink := range sinks {
		if err := sink.PublishLinkEvent(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Start launches the compute engine and retention sweep loops.
func (s *Server) Start(ctx context.Context) error {
	s.wg.Add(2)

	go func() {
		defer s.wg.Done()

		if err := s.engine.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			s.logger.Error().Err(err).Msg("Engine loop ended")
		}
	}()

	go func() {
		defer s.wg.Done()
		s.runRetentionSweep(ctx)
	}()

	return nil
}

// Stop ends the background loops and closes the store.
func (s *Server) Stop(ctx context.Context) error {
	s.stopOnce.Do(func() {
		close(s.done)
	})

	stopErr := s.engine.Stop(ctx)
	s.wg.Wait()

	return errors.Join(stopErr, s.db.Close())
}
