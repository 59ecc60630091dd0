package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/orgdesk/backend/internal/infrastructure/config"
	"github.com/orgdesk/backend/internal/infrastructure/logger"
	"github.com/orgdesk/backend/internal/infrastructure/telemetry"
	"github.com/orgdesk/backend/internal/interfaces/http/handler"
	"github.com/orgdesk/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// EngineConfig holds what the engine needs beyond the API handlers
type EngineConfig struct {
	HTTP   config.HTTPConfig
	Logger *zap.Logger
	// ServiceName enables request tracing when set
	ServiceName string
	// Metrics enables request metrics and the scrape endpoint when set
	Metrics     *telemetry.HTTPMetrics
	MetricsPath string
	System      *handler.SystemHandler
	// RateLimiter applies to every request when set
	RateLimiter *middleware.RateLimiter
	// Profiling labels profile samples per route when set
	Profiling bool
}

// NewEngine creates the gin engine with the global middleware stack, the
// health and metrics endpoints and the not-found handler
func NewEngine(cfg EngineConfig) *gin.Engine {
	engine := gin.New()
	engine.HandleMethodNotAllowed = false

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			cfg.Logger.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	} else {
		_ = engine.SetTrustedProxies(nil)
	}

	// Order: request id first so every later layer can log it, recovery next
	// so panics in any layer produce the envelope.
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(cfg.Logger))
	if cfg.ServiceName != "" {
		engine.Use(middleware.Tracing(cfg.ServiceName), middleware.SpanAttributes())
	}
	if cfg.Metrics != nil {
		engine.Use(middleware.Metrics(cfg.Metrics))
	}
	if cfg.Profiling {
		engine.Use(middleware.Profiling("/health", metricsPath(cfg)))
	}
	engine.Use(logger.GinMiddleware(cfg.Logger))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(corsConfig(cfg.HTTP)))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	if cfg.RateLimiter != nil {
		engine.Use(middleware.RateLimit(cfg.RateLimiter))
	}

	if cfg.System != nil {
		engine.GET("/health", cfg.System.Health)
	}
	if cfg.Metrics != nil {
		engine.GET(metricsPath(cfg), gin.WrapH(cfg.Metrics.Handler()))
	}
	engine.NoRoute(handler.NotFound)

	return engine
}

func metricsPath(cfg EngineConfig) string {
	if cfg.MetricsPath == "" {
		return "/metrics"
	}
	return cfg.MetricsPath
}

func corsConfig(http config.HTTPConfig) middleware.CORSConfig {
	cors := middleware.DefaultCORSConfig()
	cors.AllowOrigins = http.CORSAllowOrigins
	if len(http.CORSAllowMethods) > 0 {
		cors.AllowMethods = http.CORSAllowMethods
	}
	if len(http.CORSAllowHeaders) > 0 {
		cors.AllowHeaders = http.CORSAllowHeaders
	}
	cors.MaxAge = 12 * time.Hour
	return cors
}
