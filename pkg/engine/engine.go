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

// Package engine converts facts into confidence-scored edge claims. Each
// compute pass reads a bounded recent window of facts, derives claims per
// discovery method, ensures both endpoints exist in the registry, and
// upserts each claim atomically. Failures are per-claim: a bad claim is
// logged and skipped, never a pass abort.
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/carverauto/netweave/pkg/db"
	"github.com/carverauto/netweave/pkg/logger"
	"github.com/carverauto/netweave/pkg/models"
	"github.com/carverauto/netweave/pkg/registry"
)

const (
	defaultInterval    = time.Minute
	defaultFactWindow  = 2 * time.Hour
	defaultARPWindow   = time.Hour
	defaultPassTimeout = 5 * time.Minute
)

// Engine runs periodic edge computation passes against the fact store.
type Engine struct {
	db       db.Service
	registry registry.Manager
	sink     EventSink
	logger   logger.Logger

	interval    time.Duration
	factWindow  time.Duration
	arpWindow   time.Duration
	passTimeout time.Duration

	nowFn    func() time.Time
	done     chan struct{}
	stopOnce sync.Once

	statusMu sync.Mutex
	status   models.EngineStatus
}

// NewEngine wires an engine to its store, registry, and optional event
// sink. A nil sink disables link events; everything else must be set.
func NewEngine(
	database db.Service,
	reg registry.Manager,
	cfg models.EngineConfig,
	sink EventSink,
	log logger.Logger) *Engine {
	return &Engine{
		db:          database,
		registry:    reg,
		sink:        sink,
		logger:      log,
		interval:    cfg.Interval.OrDefault(defaultInterval),
		factWindow:  cfg.FactWindow.OrDefault(defaultFactWindow),
		arpWindow:   cfg.ARPRecencyWindow.OrDefault(defaultARPWindow),
		passTimeout: cfg.PassTimeout.OrDefault(defaultPassTimeout),
		nowFn:       time.Now,
		done:        make(chan struct{}),
	}
}

// Start runs an immediate pass and then one per interval until the
// context ends or Stop is called.
func (e *Engine) Start(ctx context.Context) error {
	e.logger.Info().
		Dur("interval", e.interval).
		Dur("fact_window", e.factWindow).
		Msg("Starting edge computation engine")

	if err := e.RunPass(ctx); err != nil {
		e.logger.Error().Err(err).Msg("Initial compute pass failed")
	}

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-e.done:
			return nil
		case <-ticker.C:
			if err := e.RunPass(ctx); err != nil {
				e.logger.Error().Err(err).Msg("Compute pass failed")
			}
		}
	}
}

// Stop ends the pass loop. Safe to call more than once.
func (e *Engine) Stop(_ context.Context) error {
	e.stopOnce.Do(func() {
		close(e.done)
	})

	return nil
}

// Status reports the engine's own view of its progress for the status
// endpoint.
func (e *Engine) Status() models.EngineStatus {
	e.statusMu.Lock()
	defer e.statusMu.Unlock()

	return e.status
}

func (e *Engine) recordPass(passStart time.Time, committed int, err error) {
	e.statusMu.Lock()
	defer e.statusMu.Unlock()

	e.status.LastPassStarted = passStart
	e.status.LastPassDuration = models.Duration(time.Since(passStart))
	e.status.LastPassEdges = committed
	e.status.PassCount++
	e.status.LastPassError = ""

	if err != nil {
		e.status.LastPassError = err.Error()
	}
}

// RunPass executes one bounded computation pass: read the fact window,
// derive claims, score them against the existing edge set, and commit
// each claim independently.
func (e *Engine) RunPass(ctx context.Context) (err error) {
	ctx, cancel := context.WithTimeout(ctx, e.passTimeout)
	defer cancel()

	passStart := e.nowFn()

	var committed, failed int

	defer func() {
		e.recordPass(passStart, committed, err)
	}()

	facts, err := e.db.QueryFacts(ctx, models.FactFilter{Since: passStart.Add(-e.factWindow)})
	if err != nil {
		passesTotal.WithLabelValues(passStatusError).Inc()
		return fmt.Errorf("reading fact window: %w", err)
	}

	existing, err := e.db.ListEdges(ctx, models.EdgeFilter{})
	if err != nil {
		passesTotal.WithLabelValues(passStatusError).Inc()
		return fmt.Errorf("loading edge set: %w", err)
	}

	previous := make(map[string]*models.Edge, len(existing))
	for _, edge := range existing {
		previous[edge.ClaimKey()] = edge
	}

	set := newClaimSet()
	e.neighborClaims(facts, set)
	e.macARPClaims(ctx, facts, passStart, set)
	e.routingClaims(facts, set)

	claims := set.all()

	for _, c := range claims {
		claimsProduced.WithLabelValues(string(c.method)).Inc()

		if err := e.commitClaim(ctx, c, previous[c.key()], passStart); err != nil {
			failed++
			claimFailures.Inc()
			e.logger.Error().Err(err).
				Str("a_device", c.aDevice).
				Str("a_ifname", c.aIfname).
				Str("b_device", c.bDevice).
				Str("b_ifname", c.bIfname).
				Str("method", string(c.method)).
				Msg("Claim commit failed")

			continue
		}

		committed++
	}

	factsExamined.Add(float64(len(facts)))
	passDuration.Observe(time.Since(passStart).Seconds())
	passesTotal.WithLabelValues(passStatusOK).Inc()

	e.logger.Info().
		Int("facts", len(facts)).
		Int("claims", len(claims)).
		Int("committed", committed).
		Int("failed", failed).
		Dur("elapsed", time.Since(passStart)).
		Msg("Compute pass complete")

	return nil
}

// commitClaim makes one claim durable: endpoints ensured first, then a
// single atomic edge upsert, then the link event. The edge carries the
// streak and confidence computed against the pre-pass edge set.
func (e *Engine) commitClaim(ctx context.Context, c *claim, prev *models.Edge, passStart time.Time) error {
	if err := e.registry.EnsureDevice(ctx, c.aDevice, c.aDefaults, c.lastSeen); err != nil {
		return fmt.Errorf("ensuring device %s: %w", c.aDevice, err)
	}

	if err := e.registry.EnsureDevice(ctx, c.bDevice, c.bDefaults, c.lastSeen); err != nil {
		return fmt.Errorf("ensuring device %s: %w", c.bDevice, err)
	}

	streak := e.nextStreak(prev, c.lastSeen, passStart)

	edge := &models.Edge{
		ADevice:       c.aDevice,
		AIfname:       c.aIfname,
		BDevice:       c.bDevice,
		BIfname:       c.bIfname,
		Method:        c.method,
		Confidence:    e.score(ctx, c, streak),
		FirstSeen:     c.lastSeen,
		LastSeen:      c.lastSeen,
		ConfirmStreak: streak,
		Evidence:      c.evidence,
	}

	if err := edge.Validate(); err != nil {
		return fmt.Errorf("rejecting claim before commit: %w", err)
	}

	if err := e.db.UpsertEdge(ctx, edge); err != nil {
		return err
	}

	edgesUpserted.WithLabelValues(string(edge.Method)).Inc()
	e.emitLinkEvent(ctx, prev, edge)

	return nil
}

// nextStreak tracks consecutive confirmation. Replayed evidence keeps the
// streak where it was, new evidence extends it, and a claim whose prior
// evidence had already aged out of the fact window restarts at one.
func (e *Engine) nextStreak(prev *models.Edge, lastSeen, passStart time.Time) int {
	if prev == nil {
		return 1
	}

	if !lastSeen.After(prev.LastSeen) {
		if prev.ConfirmStreak < 1 {
			return 1
		}

		return prev.ConfirmStreak
	}

	if passStart.Sub(prev.LastSeen) > e.factWindow {
		return 1
	}

	return prev.ConfirmStreak + 1
}

// emitLinkEvent announces a genuinely new observation: a claim seen for
// the first time, or fresh evidence advancing an existing claim. Replays
// inside the window stay quiet so the stream is not sixty-second noise.
func (e *Engine) emitLinkEvent(ctx context.Context, prev, edge *models.Edge) {
	if e.sink == nil {
		return
	}

	eventType := models.LinkEventCreated

	if prev != nil {
		if !edge.LastSeen.After(prev.LastSeen) {
			return
		}

		eventType = models.LinkEventConfirmed
	}

	event := &models.LinkEvent{Type: eventType, Edge: *edge, Timestamp: e.nowFn()}

	if err := e.sink.PublishLinkEvent(ctx, event); err != nil {
		e.logger.Warn().Err(err).Str("type", eventType).Msg("Link event publish failed")
		return
	}

	linkEvents.WithLabelValues(eventType).Inc()
}
