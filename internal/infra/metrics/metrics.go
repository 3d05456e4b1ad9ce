package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// BackendRequests — счётчик запросов к бэкенду мастерской.
// outcome: ok | server_error | transport_error.
var BackendRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "workshop_backend_requests_total",
	Help: "Requests issued to the workshop backend API.",
}, []string{"resource", "method", "outcome"})
