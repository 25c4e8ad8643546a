// Package metrics holds the Prometheus collectors for the storefront.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts HTTP requests by method, route and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "papermart_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration observes request latency by method and route.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "papermart_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// CatalogQueriesTotal counts catalogue queries by addressing mode.
	CatalogQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "papermart_catalog_queries_total",
			Help: "Total number of catalogue queries by addressing mode",
		},
		[]string{"mode"},
	)

	// ProductsCreatedTotal counts successful product creations.
	ProductsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "papermart_products_created_total",
			Help: "Total number of products created",
		},
	)
)

// RecordCatalogQuery increments the query counter for an addressing mode
// ("id" or "slug").
func RecordCatalogQuery(mode string) {
	CatalogQueriesTotal.WithLabelValues(mode).Inc()
}
