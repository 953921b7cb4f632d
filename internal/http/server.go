// README: API gateway; builds the gin engine, middleware chain and route table.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"eztravel/internal/config"
	"eztravel/internal/http/handlers"
	"eztravel/internal/http/middleware"
	"eztravel/internal/metrics"
)

type ServerDeps struct {
	Auth        handlers.AuthService
	Itineraries handlers.ItineraryService
	Cache       handlers.CacheService
	Meta        handlers.MetaService

	Metrics  *metrics.Collector
	Gatherer prometheus.Gatherer

	// Logger receives handler errors; AccessLog receives one record per request.
	Logger    *slog.Logger
	AccessLog *slog.Logger
	RateLimit config.RateLimitConfig
	Dev       bool
}

type Server struct {
	deps ServerDeps
}

func NewServer(deps ServerDeps) *Server {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.AccessLog == nil {
		deps.AccessLog = deps.Logger
	}
	return &Server{deps: deps}
}

func (s *Server) Routes() http.Handler {
	if s.deps.Dev {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logging(s.deps.AccessLog),
		middleware.SecurityHeaders(),
		middleware.CORS(),
	)
	if s.deps.Metrics != nil {
		r.Use(middleware.Metrics(s.deps.Metrics))
	}
	// Innermost, so the 500 it writes is seen by the access log and metrics.
	r.Use(middleware.Recovery(s.deps.Logger))

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	if s.deps.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(metrics.Handler(s.deps.Gatherer)))
	}

	limiter := middleware.NewIPRateLimiter(s.deps.RateLimit.RPS, s.deps.RateLimit.Burst)
	registerRoutes(r.Group("/api/v1"), s.deps, middleware.RateLimit(limiter))
	return r
}
