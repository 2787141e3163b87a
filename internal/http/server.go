// Package http provides the API HTTP server and its route wiring.
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

	authHTTP "github.com/allisson/familyvault/internal/auth/http"
	authUseCase "github.com/allisson/familyvault/internal/auth/usecase"
	categoryHTTP "github.com/allisson/familyvault/internal/category/http"
	"github.com/allisson/familyvault/internal/config"
	"github.com/allisson/familyvault/internal/metrics"
	sharingHTTP "github.com/allisson/familyvault/internal/sharing/http"
	userHTTP "github.com/allisson/familyvault/internal/user/http"
	vaultHTTP "github.com/allisson/familyvault/internal/vault/http"
)

// Server represents the API HTTP server.
type Server struct {
	server *http.Server
	router *gin.Engine
	db     *sql.DB
	logger *slog.Logger
}

// RouterConfig holds the handlers and services required to build the API routes.
type RouterConfig struct {
	Config            *config.Config
	AuthUseCase       authUseCase.AuthUseCase
	AuthHandler       *authHTTP.AuthHandler
	UserHandler       *userHTTP.UserHandler
	CategoryHandler   *categoryHTTP.CategoryHandler
	ItemHandler       *vaultHTTP.ItemHandler
	FieldHandler      *vaultHTTP.FieldHandler
	PermissionHandler *sharingHTTP.PermissionHandler
	MetricsProvider   *metrics.Provider
}

// NewServer creates a new API HTTP server. The router is built later via
// SetupRouter once all handlers are available.
func NewServer(db *sql.DB, host string, port int, logger *slog.Logger) *Server {
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

// SetupRouter builds the Gin engine, registers middlewares and all API routes.
func (s *Server) SetupRouter(rc RouterConfig) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(
		rc.Config.CORSEnabled,
		rc.Config.CORSAllowOrigins,
		s.logger,
	); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if rc.MetricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(
			rc.MetricsProvider.MeterProvider(),
			rc.Config.MetricsNamespace,
		))
	}

	// Health and readiness endpoints
	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")

	// Public endpoints
	v1.POST("/auth/register", rc.UserHandler.RegisterHandler)
	v1.POST("/auth/login", rc.AuthHandler.LoginHandler)

	// Authenticated endpoints
	authenticated := v1.Group("")
	authenticated.Use(authHTTP.AuthenticationMiddleware(rc.AuthUseCase, s.logger))

	authenticated.GET("/auth/me", rc.AuthHandler.MeHandler)
	authenticated.PUT("/auth/me", rc.AuthHandler.UpdateMeHandler)

	authenticated.GET("/users", rc.UserHandler.ListHandler)
	authenticated.GET("/users/:id", rc.UserHandler.GetHandler)

	authenticated.POST("/categories", rc.CategoryHandler.CreateHandler)
	authenticated.GET("/categories", rc.CategoryHandler.ListHandler)
	authenticated.GET("/categories/:id", rc.CategoryHandler.GetHandler)
	authenticated.PUT("/categories/:id", rc.CategoryHandler.UpdateHandler)
	authenticated.DELETE("/categories/:id", rc.CategoryHandler.DeleteHandler)

	authenticated.POST("/items", rc.ItemHandler.CreateHandler)
	authenticated.GET("/items", rc.ItemHandler.ListHandler)
	authenticated.GET("/items/shared", rc.ItemHandler.ListSharedHandler)
	authenticated.GET("/items/:id", rc.ItemHandler.GetHandler)
	authenticated.PUT("/items/:id", rc.ItemHandler.UpdateHandler)
	authenticated.DELETE("/items/:id", rc.ItemHandler.DeleteHandler)
	authenticated.POST("/items/:id/favorite", rc.ItemHandler.ToggleFavoriteHandler)

	authenticated.GET("/items/:id/fields", rc.FieldHandler.ListHandler)
	authenticated.POST("/items/:id/fields", rc.FieldHandler.CreateHandler)
	authenticated.PUT("/items/:id/fields/:field_id", rc.FieldHandler.UpdateHandler)
	authenticated.DELETE("/items/:id/fields/:field_id", rc.FieldHandler.DeleteHandler)

	authenticated.POST("/permissions", rc.PermissionHandler.GrantHandler)
	authenticated.GET("/permissions/item/:item_id", rc.PermissionHandler.ListForItemHandler)
	authenticated.PUT("/permissions/:id", rc.PermissionHandler.UpdateHandler)
	authenticated.DELETE("/permissions/:id", rc.PermissionHandler.RevokeHandler)

	s.router = router
}

// GetHandler returns the configured router. Integration tests mount it on an
// httptest server instead of binding a port.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the server is able to serve traffic.
// The database connection is the only hard dependency.
func (s *Server) readinessHandler(c *gin.Context) {
	components := map[string]string{}
	ready := true

	if s.db == nil {
		components["database"] = "error"
		ready = false
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := s.db.PingContext(ctx); err != nil {
			components["database"] = "error"
			ready = false
		} else {
			components["database"] = "ok"
		}
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
	s.server.Handler = s.router

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
