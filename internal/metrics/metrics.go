package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors exported by the storefront.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	CheckoutAttempts *prometheus.CounterVec
	BackendRequests  *prometheus.CounterVec
	CartLines        prometheus.Gauge
	CartUnits        prometheus.Gauge
}

// New creates and registers all collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		CheckoutAttempts: f.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_checkout_attempts_total",
			Help: "Checkout attempts by outcome",
		}, []string{"outcome"}),
		BackendRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_backend_requests_total",
			Help: "Outbound backend requests by method and status code (0 = transport failure)",
		}, []string{"method", "status"}),
		CartLines: f.NewGauge(prometheus.GaugeOpts{
			Name: "storefront_cart_lines",
			Help: "Distinct products currently in the cart",
		}),
		CartUnits: f.NewGauge(prometheus.GaugeOpts{
			Name: "storefront_cart_units",
			Help: "Total units currently in the cart",
		}),
	}
}

func (m *Metrics) ObserveCheckout(outcome string) {
	if m == nil {
		return
	}
	m.CheckoutAttempts.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveBackendRequest(method string, status int) {
	if m == nil {
		return
	}
	m.BackendRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
}

func (m *Metrics) SetCart(lines, units int) {
	if m == nil {
		return
	}
	m.CartLines.Set(float64(lines))
	m.CartUnits.Set(float64(units))
}
