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

// Package collector polls LLDP/CDP neighbor tables, ARP caches, bridge
// forwarding tables, and interface attributes over SNMP v2c and delivers
// them as timestamped facts.
package collector

import (
	"context"
	"sync"
	"time"

	"github.com/gosnmp/gosnmp"

	"github.com/carverauto/netweave/pkg/logger"
	"github.com/carverauto/netweave/pkg/models"
)

const (
	defaultPollInterval = 5 * time.Minute
	defaultTimeout      = 5 * time.Second
	defaultRetries      = 1
	defaultConcurrency  = 10
	defaultCommunity    = "public"
	defaultSNMPPort     = 161
)

// Collector drives polling rounds over the configured targets and hands
// the results to its sender. It satisfies the lifecycle Service contract.
type Collector struct {
	config  *models.CollectorConfig
	sender  Sender
	logger  logger.Logger
	nowFn   func() time.Time
	connect connFactory

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a collector delivering through sender.
func New(config *models.CollectorConfig, sender Sender, log logger.Logger) *Collector {
	c := &Collector{
		config: config,
		sender: sender,
		logger: log,
		nowFn:  time.Now,
	}
	c.connect = c.dialTarget

	return c
}

// Start launches the polling loop. The first round runs immediately.
func (c *Collector) Start(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	c.cancel = cancel

	c.wg.Add(1)

	go func() {
		defer c.wg.Done()
		c.run(runCtx)
	}()

	c.logger.Info().
		Int("targets", len(c.config.Targets)).
		Str("sink", c.config.Sink.Mode).
		Msg("Collector started")

	return nil
}

// Stop cancels the polling loop and waits for in-flight rounds.
func (c *Collector) Stop(_ context.Context) error {
	if c.cancel != nil {
		c.cancel()
	}

	c.wg.Wait()

	return nil
}

func (c *Collector) run(ctx context.Context) {
	interval := time.Duration(c.config.PollInterval)
	if interval <= 0 {
		interval = defaultPollInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	c.pollRound(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.pollRound(ctx)
		}
	}
}

// pollRound fans the target list out over a bounded worker pool and
// waits for every target to finish.
func (c *Collector) pollRound(ctx context.Context) {
	concurrency := c.config.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	if concurrency > len(c.config.Targets) {
		concurrency = len(c.config.Targets)
	}

	targetChan := make(chan models.SNMPTarget)

	var wg sync.WaitGroup

	for i := 0; i < concurrency; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for target := range targetChan {
				c.pollTarget(ctx, target)
			}
		}()
	}

feed:
	for _, target := range c.config.Targets {
		select {
		case <-ctx.Done():
			break feed
		case targetChan <- target:
		}
	}

	close(targetChan)
	wg.Wait()
}

// pollTarget runs one full pass over one switch: interface attributes
// first (the fact builders resolve port names through them), then the
// neighbor, ARP, and forwarding tables.
func (c *Collector) pollTarget(ctx context.Context, target models.SNMPTarget) {
	conn, err := c.connect(target)
	if err != nil {
		pollErrors.WithLabelValues(target.Host).Inc()
		c.logger.Error().Err(err).Str("target", target.Host).Msg("SNMP connect failed")

		return
	}
	defer func() {
		_ = conn.Close()
	}()

	poll := &targetPoll{
		conn:   conn,
		host:   target.Host,
		now:    c.nowFn().UTC(),
		logger: c.logger,
	}

	ifaces, err := poll.interfaces()
	if err != nil {
		pollErrors.WithLabelValues(target.Host).Inc()
		c.logger.Error().Err(err).Str("target", target.Host).Msg("Interface walk failed")

		return
	}

	portNames := make(map[int]string, len(ifaces))
	ifaceRows := make([]*models.NetInterface, 0, len(ifaces))

	for ifIndex, iface := range ifaces {
		portNames[ifIndex] = iface.Ifname
		ifaceRows = append(ifaceRows, iface)
	}

	var facts []*models.Fact

	if neighbors, err := poll.neighborFacts(portNames); err != nil {
		c.logger.Warn().Err(err).Str("target", target.Host).Msg("Neighbor walk failed")
	} else {
		facts = append(facts, neighbors...)
	}

	if arp, err := poll.arpFacts(portNames); err != nil {
		c.logger.Warn().Err(err).Str("target", target.Host).Msg("ARP walk failed")
	} else {
		facts = append(facts, arp...)
	}

	if mac, err := poll.macFacts(portNames); err != nil {
		c.logger.Warn().Err(err).Str("target", target.Host).Msg("FDB walk failed")
	} else {
		facts = append(facts, mac...)
	}

	c.deliver(ctx, target.Host, facts, ifaceRows)
}

// deliver sends one target's batches, facts grouped per protocol.
func (c *Collector) deliver(ctx context.Context, host string, facts []*models.Fact, ifaces []*models.NetInterface) {
	byProtocol := make(map[models.FactProtocol][]*models.Fact)

	for _, fact := range facts {
		byProtocol[fact.Protocol] = append(byProtocol[fact.Protocol], fact)
	}

	for _, protocol := range models.FactProtocols {
		batch := byProtocol[protocol]
		if len(batch) == 0 {
			continue
		}

		if err := c.sender.SendFacts(ctx, protocol, batch); err != nil {
			sendErrors.Inc()
			c.logger.Error().Err(err).
				Str("target", host).
				Str("protocol", string(protocol)).
				Msg("Fact delivery failed")

			continue
		}

		factsCollected.WithLabelValues(string(protocol)).Add(float64(len(batch)))
	}

	if len(ifaces) == 0 {
		return
	}

	if err := c.sender.SendInterfaces(ctx, ifaces); err != nil {
		sendErrors.Inc()
		c.logger.Error().Err(err).Str("target", host).Msg("Interface delivery failed")

		return
	}

	interfacesCollected.Add(float64(len(ifaces)))
}

// dialTarget opens a live SNMP v2c session honoring per-target
// overrides.
func (c *Collector) dialTarget(target models.SNMPTarget) (snmpConn, error) {
	community := target.Community
	if community == "" {
		community = c.config.Community
	}

	if community == "" {
		community = defaultCommunity
	}

	port := target.Port
	if port == 0 {
		port = defaultSNMPPort
	}

	timeout := time.Duration(c.config.Timeout)
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	retries := c.config.Retries
	if retries <= 0 {
		retries = defaultRetries
	}

	client := &gosnmp.GoSNMP{
		Target:    target.Host,
		Port:      port,
		Community: community,
		Version:   gosnmp.Version2c,
		Timeout:   timeout,
		Retries:   retries,
		MaxOids:   gosnmp.MaxOids,
	}

	if err := client.Connect(); err != nil {
		return nil, err
	}

	return gosnmpConn{client}, nil
}

// gosnmpConn adapts gosnmp's session, which exposes its socket rather
// than a close method.
type gosnmpConn struct {
	*gosnmp.GoSNMP
}

func (c gosnmpConn) Close() error {
	if c.Conn == nil {
		return nil
	}

	return c.Conn.Close()
}
