package handler

import (
	"payment-journey-tracker/internal/adapter/http/middleware"
	"payment-journey-tracker/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	Receiver       ports.WebhookReceiver
	InstanceRepo   ports.InstanceRepository
	StepRepo       ports.StepRepository
	HealthCheckers []ports.HealthChecker
	MaxBodySize    int64 // 0 = default 256 KiB
	Logger         zerolog.Logger
}

const defaultMaxBodySize = 256 << 10

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	maxBody := deps.MaxBodySize
	if maxBody <= 0 {
		maxBody = defaultMaxBodySize
	}

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(maxBody))

	// Health check (deep — verifies PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Prometheus scrape endpoint
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Provider webhook intake
	webhookHandler := NewWebhookHandler(deps.Receiver)
	r.POST("/webhooks", webhookHandler.Receive)

	// Read-only journey API
	journeyHandler := NewJourneyHandler(deps.InstanceRepo, deps.StepRepo)
	v1 := r.Group("/api/v1")
	journeys := v1.Group("/journeys")
	{
		journeys.GET("", journeyHandler.List)
		journeys.GET("/stats", journeyHandler.Stats)
		journeys.GET("/:id", journeyHandler.Get)
		journeys.GET("/:id/steps", journeyHandler.Steps)
	}

	return r
}
