package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	Mutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "resume_builder", Name: "mutations_total", Help: "Document mutations by operation and result."},
		[]string{"op", "result"},
	)
	GatewayRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "resume_builder", Name: "gateway_requests_total", Help: "Enrichment gateway calls by kind and result."},
		[]string{"kind", "result"},
	)
	Exports = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "resume_builder", Name: "exports_total", Help: "PDF exports by template and result."},
		[]string{"template", "result"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(Mutations)
	reg.MustRegister(GatewayRequests)
	reg.MustRegister(Exports)
}

// Result maps an error to the label value used by the counters above.
func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
