// Package api exposes the dinner planner pipeline over HTTP.
package api

import (
	"context"
	"net/http"
	"time"

	"dinner_planner/src/logger"
	"dinner_planner/src/model"
	"dinner_planner/src/planner"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Pipeline is the session-scoped planner behind the handlers.
type Pipeline interface {
	Chat(ctx context.Context, sessionID, text string, loc *model.LocationRecord) (planner.ChatResult, error)
	ExtractPreferences(ctx context.Context, sessionID string, loc *model.LocationRecord) (model.PreferenceRecord, error)
	Recommend(ctx context.Context, sessionID string, prefs *model.PreferenceRecord, loc *model.LocationRecord) (planner.Recommendation, error)
	LoadMore(ctx context.Context, sessionID string, loc *model.LocationRecord) (planner.Recommendation, error)
	History(ctx context.Context, sessionID string) ([]string, error)
	Reset(ctx context.Context, sessionID string) error
	Search(ctx context.Context, req planner.SearchRequest) string
}

// HealthChecker reports whether session storage is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

type Router struct {
	engine   *gin.Engine
	pipeline Pipeline
	health   HealthChecker
	started  time.Time
}

func NewRouter(mode string, pipeline Pipeline, health HealthChecker) *Router {
	if mode != "" {
		gin.SetMode(mode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogger())
	engine.Use(cors())

	r := &Router{
		engine:   engine,
		pipeline: pipeline,
		health:   health,
		started:  time.Now(),
	}
	r.setupRoutes()
	return r
}

// Handler returns the http.Handler serving every route.
func (r *Router) Handler() http.Handler {
	return r.engine
}

func (r *Router) setupRoutes() {
	r.engine.GET("/health", r.handleHealth)
	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.engine.Group("/api/v1")
	{
		sessions := v1.Group("/sessions/:id")
		{
			sessions.POST("/messages", r.handleChat)
			sessions.POST("/preferences", r.handleExtractPreferences)
			sessions.POST("/recommendations", r.handleRecommend)
			sessions.POST("/recommendations/more", r.handleLoadMore)
			sessions.GET("/history", r.handleHistory)
			sessions.DELETE("", r.handleReset)
		}

		v1.POST("/search", r.handleSearch)
	}
}

func requestLogger() gin.HandlerFunc {
	log := logger.Component("api")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		event := log.Debug()
		if c.Writer.Status() >= http.StatusInternalServerError {
			event = log.Error()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Str("ip", c.ClientIP()).
			Msg("HTTP request")
	}
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
