package api

import (
	"MockECommerce/internal/api/handlers"
	"MockECommerce/internal/api/middleware"
	"MockECommerce/pkg/health"
	"MockECommerce/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Router struct {
	order          *handlers.OrderHandler
	auth           middleware.AuthConfig
	healthRegistry *health.Registry
}

func (r *Router) SetUp(engine *gin.Engine) {
	// Health checks (Kubernetes-style)
	engine.GET("/health/live", health.LivenessHandler())
	engine.GET("/health/ready", health.ReadinessHandler(r.healthRegistry, health.DefaultTimeout))

	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	orders := engine.Group(handlers.OrderBasePath, middleware.Authenticate(r.auth))
	r.order.RegisterRoutes(orders)
}

func NewRouter(order *handlers.OrderHandler, auth middleware.AuthConfig, healthRegistry *health.Registry) *Router {
	return &Router{
		order:          order,
		auth:           auth,
		healthRegistry: healthRegistry,
	}
}
