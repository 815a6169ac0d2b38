// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	clientInFlightGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "github_in_flight_requests",
		Help:      "A gauge of in-flight requests for the wrapped client.",
	})

	clientCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "github_api_requests_total",
		Help:      "A counter for requests from the wrapped client.",
	},
		[]string{"code", "method"},
	)

	// event is dns_start or dns_done
	clientDNSLatencyVec = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "github_dns_duration_seconds",
		Help:      "Trace dns latency histogram.",
		Buckets:   []float64{.005, .01, .025, .05},
	},
		[]string{"event"},
	)

	// event is tls_handshake_start or tls_handshake_done
	clientTLSLatencyVec = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "github_tls_duration_seconds",
		Help:      "Trace tls latency histogram.",
		Buckets:   []float64{.05, .1, .25, .5},
	},
		[]string{"event"},
	)

	clientHistVec = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "github_request_duration_seconds",
		Help:      "A histogram of request latencies.",
		Buckets:   prometheus.DefBuckets,
	},
		[]string{},
	)
)

// RegisterClientMetrics registers the HTTP client metrics in registry, the default registry if nil.
func RegisterClientMetrics(registry prometheus.Registerer) {
	ResetClientMetrics()
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	registry.MustRegister(clientCounter, clientTLSLatencyVec, clientDNSLatencyVec, clientHistVec, clientInFlightGauge)
}

// ResetClientMetrics resets the HTTP client metrics. The function is useful for designing self-contained unit tests
// where the count of metrics matters.
func ResetClientMetrics() {
	clientCounter.Reset()
	clientTLSLatencyVec.Reset()
	clientDNSLatencyVec.Reset()
	clientHistVec.Reset()
	clientInFlightGauge.Set(0.0)
}

// InstrumentClient instruments the transport of the provided HTTP client, e.g. the
// GitHub API client, for metering requests and their duration
func InstrumentClient(client *http.Client) *http.Client {
	base := client.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	trace := &promhttp.InstrumentTrace{
		DNSStart: func(t float64) {
			clientDNSLatencyVec.WithLabelValues("dns_start").Observe(t)
		},
		DNSDone: func(t float64) {
			clientDNSLatencyVec.WithLabelValues("dns_done").Observe(t)
		},
		TLSHandshakeStart: func(t float64) {
			clientTLSLatencyVec.WithLabelValues("tls_handshake_start").Observe(t)
		},
		TLSHandshakeDone: func(t float64) {
			clientTLSLatencyVec.WithLabelValues("tls_handshake_done").Observe(t)
		},
	}

	roundTripper := promhttp.InstrumentRoundTripperInFlight(clientInFlightGauge,
		promhttp.InstrumentRoundTripperCounter(clientCounter,
			promhttp.InstrumentRoundTripperTrace(trace,
				promhttp.InstrumentRoundTripperDuration(clientHistVec, base),
			),
		),
	)

	client.Transport = roundTripper

	return client
}
