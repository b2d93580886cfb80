package collector

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	factsCollected = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "netweave",
		Subsystem: "collector",
		Name:      "facts_collected_total",
		Help:      "Facts delivered to the sink, by protocol.",
	}, []string{"protocol"})

	interfacesCollected = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "netweave",
		Subsystem: "collector",
		Name:      "interfaces_collected_total",
		Help:      "Interface attribute rows delivered to the sink.",
	})

	pollErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "netweave",
		Subsystem: "collector",
		Name:      "poll_errors_total",
		Help:      "Failed polling passes, by target.",
	}, []string{"target"})

	sendErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "netweave",
		Subsystem: "collector",
		Name:      "send_errors_total",
		Help:      "Batches the sink rejected or failed to deliver.",
	})
)
