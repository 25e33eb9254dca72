package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RedisErrors counts Redis command failures by operation name.
var RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "devconnect_redis_errors_total",
	Help: "Total number of Redis errors by operation type",
}, []string{"operation"})

// UpstreamRequests counts outbound calls to external APIs by service and outcome.
var UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "devconnect_upstream_requests_total",
	Help: "Total number of upstream API requests by service and outcome",
}, []string{"service", "outcome"})

// InitMetrics creates the fiberprometheus middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware wraps the fiberprometheus middleware as a fiber.Handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
