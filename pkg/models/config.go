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

import (
	"errors"

	"github.com/carverauto/netweave/pkg/logger"
)

var (
	ErrListenAddrRequired = errors.New("listen_addr is required")
	ErrDatabaseRequired   = errors.New("database host and name are required")
)

// CoreServiceConfig is the top-level configuration for the netweave core
// service: the topology engine, its store, and the HTTP API around it.
type CoreServiceConfig struct {
	ListenAddr string           `json:"listen_addr"`
	APIKey     string           `json:"api_key,omitempty"`
	Database   PostgresDatabase `json:"database"`
	Engine     EngineConfig     `json:"engine,omitempty"`
	Topology   TopologyConfig   `json:"topology,omitempty"`
	Retention  RetentionConfig  `json:"retention,omitempty"`
	NATS       *NATSConfig      `json:"nats,omitempty"`
	CORS       CORSConfig       `json:"cors,omitempty"`
	Logging    *logger.Config   `json:"logging,omitempty"`
}

func (c *CoreServiceConfig) Validate() error {
	if c.ListenAddr == "" {
		return ErrListenAddrRequired
	}

	if c.Database.Host == "" || c.Database.Database == "" {
		return ErrDatabaseRequired
	}

	return nil
}

// PostgresDatabase describes the Postgres cluster backing the fact store,
// edge set, and registry.
type PostgresDatabase struct {
	Host               string            `json:"host"`
	Port               int               `json:"port,omitempty"`
	Database           string            `json:"database"`
	Username           string            `json:"username,omitempty"`
	Password           string            `json:"password,omitempty"`
	SSLMode            string            `json:"ssl_mode,omitempty"`
	ApplicationName    string            `json:"application_name,omitempty"`
	MaxConnections     int32             `json:"max_connections,omitempty"`
	MinConnections     int32             `json:"min_connections,omitempty"`
	MaxConnLifetime    Duration          `json:"max_conn_lifetime,omitempty"`
	HealthCheckPeriod  Duration          `json:"health_check_period,omitempty"`
	StatementTimeout   Duration          `json:"statement_timeout,omitempty"`
	ExtraRuntimeParams map[string]string `json:"extra_runtime_params,omitempty"`
	CertDir            string            `json:"cert_dir,omitempty"`
	TLS                *TLSFiles         `json:"tls,omitempty"`
}

// TLSFiles points at PEM material on disk. Relative paths resolve against
// the owning config's cert_dir.
type TLSFiles struct {
	CertFile string `json:"cert_file"`
	KeyFile  string `json:"key_file"`
	CAFile   string `json:"ca_file,omitempty"`
}

// EngineConfig tunes the edge computation passes.
type EngineConfig struct {
	// Interval between compute passes. Default 60s.
	Interval Duration `json:"interval,omitempty"`
	// FactWindow bounds how far back a pass reads facts. Default 2h.
	FactWindow Duration `json:"fact_window,omitempty"`
	// ARPRecencyWindow bounds both sides of the ARP/MAC correlation
	// join; older entries are excluded entirely. Default 1h.
	ARPRecencyWindow Duration `json:"arp_recency_window,omitempty"`
	// PassTimeout bounds one compute pass. Default 5m.
	PassTimeout Duration `json:"pass_timeout,omitempty"`
	// SkewTolerance is how far into the future a collector-reported
	// timestamp may sit before ingest clamps it. Default 5m.
	SkewTolerance Duration `json:"skew_tolerance,omitempty"`
}

// TopologyConfig tunes canonical resolution and traversal.
type TopologyConfig struct {
	// IncludeL3 admits ospf/bgp adjacencies into path and impact
	// traversal. They always compete in canonical resolution; this flag
	// only widens traversal. Default false.
	IncludeL3 bool `json:"include_l3,omitempty"`
	// MaxHops bounds path searches. Default 20.
	MaxHops int `json:"max_hops,omitempty"`
	// SnapshotTTL is how long a resolved graph snapshot serves queries
	// before it is rebuilt from the edge set. Default 15s.
	SnapshotTTL Duration `json:"snapshot_ttl,omitempty"`
}

// RetentionConfig tunes the fact retention sweep. The sweep deletes old
// facts only; edges are kept indefinitely.
type RetentionConfig struct {
	// FactMaxAge is the retention window for facts. Default 168h.
	FactMaxAge Duration `json:"fact_max_age,omitempty"`
	// SweepInterval is how often the sweep runs. Default 1h.
	SweepInterval Duration `json:"sweep_interval,omitempty"`
}

// NATSConfig enables the JetStream fact transport and link-event bus.
type NATSConfig struct {
	URL     string    `json:"url"`
	Stream  string    `json:"stream,omitempty"`
	CertDir string    `json:"cert_dir,omitempty"`
	TLS     *TLSFiles `json:"tls,omitempty"`
}

var ErrNATSURLRequired = errors.New("nats url is required")

func (c *NATSConfig) Validate() error {
	if c.URL == "" {
		return ErrNATSURLRequired
	}

	return nil
}

var (
	ErrNoTargets        = errors.New("at least one snmp target is required")
	ErrTargetHostEmpty  = errors.New("snmp target host is required")
	ErrUnknownSinkMode  = errors.New("sink mode must be http or nats")
	ErrCoreURLRequired  = errors.New("sink core_url is required for http mode")
	ErrSinkNATSRequired = errors.New("sink nats block is required for nats mode")
)

// Sink delivery modes for the collector.
const (
	SinkModeHTTP = "http"
	SinkModeNATS = "nats"
)

// CollectorConfig configures the SNMP collector: which switches to poll,
// how often, and where the resulting facts go.
type CollectorConfig struct {
	// PollInterval between polling rounds. Default 5m.
	PollInterval Duration `json:"poll_interval,omitempty"`
	// Timeout per SNMP request. Default 5s.
	Timeout Duration `json:"timeout,omitempty"`
	// Retries per SNMP request. Default 1.
	Retries int `json:"retries,omitempty"`
	// Concurrency bounds how many targets are polled at once. Default 10.
	Concurrency int `json:"concurrency,omitempty"`
	// Community is the default SNMP v2c community. Default "public".
	Community string         `json:"community,omitempty"`
	Targets   []SNMPTarget   `json:"targets"`
	Sink      SinkConfig     `json:"sink"`
	Logging   *logger.Config `json:"logging,omitempty"`
}

func (c *CollectorConfig) Validate() error {
	if len(c.Targets) == 0 {
		return ErrNoTargets
	}

	for i := range c.Targets {
		if c.Targets[i].Host == "" {
			return ErrTargetHostEmpty
		}
	}

	return c.Sink.Validate()
}

// SNMPTarget is one switch or router to poll. Community and port fall
// back to the collector-wide defaults when empty.
type SNMPTarget struct {
	Host      string `json:"host"`
	Community string `json:"community,omitempty"`
	Port      uint16 `json:"port,omitempty"`
}

// SinkConfig selects where the collector delivers its batches: straight
// to the core API over HTTP, or through JetStream.
type SinkConfig struct {
	Mode    string      `json:"mode"`
	CoreURL string      `json:"core_url,omitempty"`
	APIKey  string      `json:"api_key,omitempty"`
	NATS    *NATSConfig `json:"nats,omitempty"`
}

func (c *SinkConfig) Validate() error {
	switch c.Mode {
	case SinkModeHTTP:
		if c.CoreURL == "" {
			return ErrCoreURLRequired
		}
	case SinkModeNATS:
		if c.NATS == nil {
			return ErrSinkNATSRequired
		}

		return c.NATS.Validate()
	default:
		return ErrUnknownSinkMode
	}

	return nil
}

// CORSConfig controls cross-origin headers on the API.
type CORSConfig struct {
	AllowedOrigins   []string `json:"allowed_origins,omitempty"`
	AllowCredentials bool     `json:"allow_credentials,omitempty"`
}
