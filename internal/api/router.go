package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/gmdcok-crypto/meal-manage/internal/dbpool"
	"github.com/gmdcok-crypto/meal-manage/internal/middleware"
	"github.com/gmdcok-crypto/meal-manage/internal/ws"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	Log         *logrus.Logger
	Pool        *dbpool.Pool
	Hub         *ws.Hub
	Events      EventService
	Policies    PolicyService
	Stats       StatsService
	Audit       AuditService
	CORSOrigins []string
	Version     string
}

// maxBodySize caps request bodies; no endpoint accepts large payloads.
const maxBodySize = 1 << 20 // 1 MB

// setupMiddleware configures all middleware on the Gin engine.
func setupMiddleware(r *gin.Engine, deps *RouterDeps) {
	r.SetTrustedProxies(nil) //nolint:errcheck // nil always succeeds.
	r.Use(middleware.RequestID(deps.Log))
	r.Use(ginLogger(deps.Log))
	r.Use(gin.Recovery())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.MaxBodySize(maxBodySize))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     deps.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		MaxAge:           1 * time.Hour,
		AllowCredentials: false,
	}))
	r.Use(middleware.PrometheusMiddleware())

	// Metrics endpoint (unauthenticated, like health).
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// registerRoutes sets up all API route handlers on the given router group.
func registerRoutes(ctx context.Context, api *gin.RouterGroup, deps *RouterDeps) {
	log := deps.Log

	health := NewHealthHandler(deps.Pool, deps.Hub, log, deps.Version)
	events := NewEventHandler(deps.Events, log)
	policies := NewPolicyHandler(deps.Policies, log)
	reports := NewReportsHandler(deps.Stats, log)
	audit := NewAuditHandler(deps.Audit, log)

	api.GET("/health", health.Liveness)
	api.GET("/ready", health.Readiness)

	// Events.
	api.POST("/events/scan", events.Scan)
	api.POST("/events", events.Create)
	api.GET("/events", events.List)
	api.GET("/events/:id", events.Get)
	api.PUT("/events/:id", events.Update)
	api.PATCH("/events/:id/void", events.Void)
	api.DELETE("/events/:id", events.Delete)

	// Policies.
	api.GET("/policies", policies.List)
	api.POST("/policies", policies.Create)
	api.GET("/policies/:id", policies.Get)
	api.PUT("/policies/:id", policies.Update)
	api.DELETE("/policies/:id", policies.Delete)

	// Dashboard and reports.
	api.GET("/dashboard/today", reports.Today)
	api.GET("/reports/daily", reports.Daily)
	api.GET("/reports/monthly", reports.Monthly)
	api.GET("/reports/department", reports.Department)

	// Audit trail.
	api.GET("/audit", audit.Query)

	// WebSocket endpoint for dashboard observers.
	api.GET("/ws", wsHandler(ctx, log, deps.Hub, deps.CORSOrigins))
}

// NewRouter creates and configures the Gin engine with all middleware and routes.
func NewRouter(ctx context.Context, deps *RouterDeps) http.Handler {
	r := gin.New()
	setupMiddleware(r, deps)
	registerRoutes(ctx, r.Group("/api/v1"), deps)

	return r
}
