package apiclient

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeOK      = "ok"
	outcomeAPI     = "api_error"
	outcomeNetwork = "network_error"
)

var (
	apiRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ativos_api_requests_total",
			Help: "Requisições ao backend de ativos por operação e resultado",
		},
		[]string{"operation", "outcome"},
	)

	apiRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ativos_api_request_duration_seconds",
			Help:    "Duração das requisições ao backend de ativos em segundos",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

func observe(op string, start time.Time, err error) {
	outcome := outcomeOK
	var apiErr *APIError
	switch {
	case err == nil:
	case errors.As(err, &apiErr):
		outcome = outcomeAPI
	default:
		outcome = outcomeNetwork
	}
	apiRequestsTotal.WithLabelValues(op, outcome).Inc()
	apiRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
