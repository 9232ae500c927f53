// Package metrics exposes the gateway's Prometheus counters.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "localconnect_requests_total",
		Help: "Gateway HTTP requests by route and status class.",
	}, []string{"route", "status"})

	CheckoutsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "localconnect_checkouts_total",
		Help: "Checkout attempts by outcome.",
	}, []string{"outcome"})

	BackendErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "localconnect_backend_errors_total",
		Help: "Commerce backend failures by error kind.",
	}, []string{"kind"})
)

// Checkout outcomes.
const (
	OutcomePlaced          = "placed"
	OutcomePaymentDeclined = "payment_declined"
	OutcomeEmptyCart       = "empty_cart"
	OutcomeFailed          = "failed"
)

func Handler() http.Handler {
	return promhttp.Handler()
}
