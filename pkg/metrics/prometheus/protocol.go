// Package prometheus provides the concrete Prometheus-backed
// implementation of pkg/metrics's ProtocolMetrics, registered through the
// same constructor-indirection pattern the teacher uses for its cache/s3
// metrics (avoids an import cycle between the interface package and the
// concrete implementation package).
package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/routeflow/ribd/pkg/metrics"
)

func init() {
	metrics.RegisterProtocolMetricsConstructor(newProtocolMetrics)
}

type protocolMetrics struct {
	rxBadPacket       *prometheus.CounterVec
	authFailure       *prometheus.CounterVec
	semanticReject    *prometheus.CounterVec
	lsaReceivedBad    *prometheus.CounterVec
	fsmReset          *prometheus.CounterVec
	resourceFailure   *prometheus.CounterVec
	spfRuns           *prometheus.CounterVec
	spfDuration       *prometheus.HistogramVec
	lsaFlooded        *prometheus.CounterVec
	lsdbSize          *prometheus.GaugeVec
	neighborState     *prometheus.GaugeVec
}

// newProtocolMetrics builds a Prometheus-backed metrics.ProtocolMetrics
// registered against pkg/metrics.GetRegistry(). Called only when metrics
// are enabled (see metrics.NewProtocolMetrics).
func newProtocolMetrics() metrics.ProtocolMetrics {
	reg := metrics.GetRegistry()

	return &protocolMetrics{
		rxBadPacket: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "ribd_if_rx_bad_packet_total",
				Help: "Total number of PDUs discarded for structural decode errors, by protocol and PDU type.",
			},
			[]string{"protocol", "pdu_type"},
		),
		authFailure: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "ribd_authentication_failure_total",
				Help: "Total number of PDUs discarded for authentication failures, by protocol and reason.",
			},
			[]string{"protocol", "reason"},
		),
		semanticReject: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "ribd_adjacency_reject_total",
				Help: "Total number of adjacency attempts rejected for a semantic mismatch, by protocol and reason.",
			},
			[]string{"protocol", "reason"},
		),
		lsaReceivedBad: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "ribd_lsa_received_bad_total",
				Help: "Total number of LSAs/LSPs discarded for bad checksum, age, sequence, or reserved type, by protocol.",
			},
			[]string{"protocol"},
		),
		fsmReset: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "ribd_fsm_reset_total",
				Help: "Total number of neighbor/adjacency FSM resets (SeqNoMismatch, BadLsReq, or session close), by protocol.",
			},
			[]string{"protocol"},
		),
		resourceFailure: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "ribd_resource_failure_total",
				Help: "Total number of resource failures (label allocation, socket bind) propagated as configuration rejections.",
			},
			[]string{"protocol", "resource"},
		),
		spfRuns: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "ribd_spf_runs_total",
				Help: "Total number of completed SPF computations, by protocol.",
			},
			[]string{"protocol"},
		),
		spfDuration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "ribd_spf_run_duration_milliseconds",
				Help: "Duration of SPF computations in milliseconds.",
				Buckets: []float64{
					0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000,
				},
			},
			[]string{"protocol"},
		),
		lsaFlooded: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "ribd_lsa_flooded_total",
				Help: "Total number of LSAs/LSPs enqueued for transmission by the flooding engine, by protocol.",
			},
			[]string{"protocol"},
		),
		lsdbSize: promauto.With(reg).NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "ribd_lsdb_entries",
				Help: "Current number of entries held in the link-state database, by protocol and scope.",
			},
			[]string{"protocol", "scope"},
		),
		neighborState: promauto.With(reg).NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "ribd_neighbors",
				Help: "Current number of neighbors/peers in a given FSM state, by protocol and state.",
			},
			[]string{"protocol", "state"},
		),
	}
}

func (m *protocolMetrics) IncRxBadPacket(protocol, pduType string) {
	m.rxBadPacket.WithLabelValues(protocol, pduType).Inc()
}

func (m *protocolMetrics) IncAuthFailure(protocol, reason string) {
	m.authFailure.WithLabelValues(protocol, reason).Inc()
}

func (m *protocolMetrics) IncSemanticReject(protocol, reason string) {
	m.semanticReject.WithLabelValues(protocol, reason).Inc()
}

func (m *protocolMetrics) IncLSAReceivedBad(protocol string) {
	m.lsaReceivedBad.WithLabelValues(protocol).Inc()
}

func (m *protocolMetrics) IncFSMReset(protocol string) {
	m.fsmReset.WithLabelValues(protocol).Inc()
}

func (m *protocolMetrics) IncResourceFailure(protocol, resource string) {
	m.resourceFailure.WithLabelValues(protocol, resource).Inc()
}

func (m *protocolMetrics) IncSPFRun(protocol string) {
	m.spfRuns.WithLabelValues(protocol).Inc()
}

func (m *protocolMetrics) ObserveSPFDuration(protocol string, d time.Duration) {
	m.spfDuration.WithLabelValues(protocol).Observe(float64(d.Microseconds()) / 1000.0)
}

func (m *protocolMetrics) IncLSAFlooded(protocol string) {
	m.lsaFlooded.WithLabelValues(protocol).Inc()
}

func (m *protocolMetrics) RecordLSDBSize(protocol, scope string, entries int) {
	m.lsdbSize.WithLabelValues(protocol, scope).Set(float64(entries))
}

func (m *protocolMetrics) RecordNeighborState(protocol, state string, count int) {
	m.neighborState.WithLabelValues(protocol, state).Set(float64(count))
}
