package core

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	sweepStatusOK    = "ok"
	sweepStatusError = "error"
)

var (
	factsIngested = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "netweave",
		Subsystem: "core",
		Name:      "facts_ingested_total",
		Help:      "Facts accepted into the store, by protocol.",
	}, []string{"protocol"})

	interfacesIngested = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "netweave",
		Subsystem: "core",
		Name:      "interfaces_ingested_total",
		Help:      "Interface state rows accepted into the registry.",
	})

	factsClamped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "netweave",
		Subsystem: "core",
		Name:      "facts_clamped_total",
		Help:      "Facts whose future timestamps were clamped to ingest time.",
	})

	factsPurged = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "netweave",
		Subsystem: "core",
		Name:      "facts_purged_total",
		Help:      "Facts removed by the retention sweep.",
	})

	sweepsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "netweave",
		Subsystem: "core",
		Name:      "retention_sweeps_total",
		Help:      "Retention sweep executions by outcome.",
	}, []string{"status"})

	snapshotRebuilds = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "netweave",
		Subsystem: "core",
		Name:      "snapshot_rebuilds_total",
		Help:      "Topology snapshot cache rebuilds.",
	})

	pathQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "netweave",
		Subsystem: "core",
		Name:      "path_queries_total",
		Help:      "Path queries served, by outcome.",
	}, []string{"outcome"})

	impactQueries = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "netweave",
		Subsystem: "core",
		Name:      "impact_queries_total",
		Help:      "Impact queries served.",
	})
)
