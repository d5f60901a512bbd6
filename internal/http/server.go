// Package http provides the API server, router assembly, and shared
// middleware for the vault.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"

	"github.com/allisson/tokenvault/internal/config"
	"github.com/allisson/tokenvault/internal/metrics"
	tenantHTTP "github.com/allisson/tokenvault/internal/tenant/http"
	tenantUseCase "github.com/allisson/tokenvault/internal/tenant/usecase"
	tokenizationHTTP "github.com/allisson/tokenvault/internal/tokenization/http"
)

// Server represents the API HTTP server.
type Server struct {
	server *http.Server
	router *gin.Engine
	db     *sql.DB
	logger *slog.Logger
}

// NewServer creates a new API server. The router is assembled separately via
// SetupRouter so tests can use a minimal router.
func NewServer(
	db *sql.DB,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// SetupRouter assembles the Gin router with all middleware and routes.
//
// Middleware order: recovery, request ID, logging, CORS (optional), HTTP
// metrics (optional). All /v1 routes require credential authentication;
// tenant administration additionally requires an admin tenant.
func (s *Server) SetupRouter(
	cfg *config.Config,
	tenantUC tenantUseCase.TenantUseCase,
	tenantHandler *tenantHTTP.TenantHandler,
	tokenHandler *tokenizationHTTP.TokenHandler,
	meterProvider metric.MeterProvider,
) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if cfg.MetricsEnabled && meterProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(meterProvider, cfg.MetricsNamespace))
	}

	// Health and readiness endpoints (unauthenticated)
	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")
	v1.Use(tenantHTTP.AuthenticationMiddleware(tenantUC, s.logger))
	if cfg.RateLimitEnabled {
		v1.Use(tenantHTTP.RateLimitMiddleware(cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, s.logger))
	}

	// Vault operations for the authenticated tenant
	tokens := v1.Group("/tokens")
	{
		tokens.POST("", tokenHandler.TokenizeHandler)
		tokens.GET("", tokenHandler.FindByFingerprintHandler)
		tokens.GET("/:id", tokenHandler.GetHandler)
		tokens.POST("/:id/detokenize", tokenHandler.DetokenizeHandler)
		tokens.DELETE("/:id", tokenHandler.DeleteHandler)
		tokens.GET("/:id/audit", tokenHandler.ListAuditLogsHandler)
	}

	// Tenant administration, restricted to admin tenants
	tenants := v1.Group("/tenants")
	tenants.Use(tenantHTTP.AdminMiddleware(s.logger))
	{
		tenants.POST("", tenantHandler.CreateHandler)
		tenants.GET("", tenantHandler.ListHandler)
		tenants.GET("/:id", tenantHandler.GetHandler)
		tenants.PUT("/:id", tenantHandler.UpdateHandler)
		tenants.DELETE("/:id", tenantHandler.DeactivateHandler)
	}

	s.router = router
	s.server.Handler = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports readiness to serve traffic, checking the database
// connection.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{}
	ready := true

	if s.db == nil {
		components["database"] = "error"
		ready = false
	} else if err := s.db.PingContext(c.Request.Context()); err != nil {
		s.logger.Warn("readiness check failed", slog.Any("error", err))
		components["database"] = "error"
		ready = false
	} else {
		components["database"] = "ok"
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": components,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": components,
	})
}

// Start starts the API HTTP server.
func (s *Server) Start(ctx context.Context) error {
	if s.server.Handler == nil {
		s.server.Handler = s.router
	}

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the API HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
