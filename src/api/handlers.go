package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"dinner_planner/src/model"
	"dinner_planner/src/planner"

	"github.com/gin-gonic/gin"
)

type chatRequest struct {
	Text     string                `json:"text" binding:"required"`
	Location *model.LocationRecord `json:"location"`
}

type chatResponse struct {
	Reply          string `json:"reply"`
	Ready          bool   `json:"ready"`
	SuggestAfterMs int64  `json:"suggest_after_ms"`
}

type locationRequest struct {
	Location *model.LocationRecord `json:"location"`
}

type recommendRequest struct {
	Preferences *model.PreferenceRecord `json:"preferences"`
	Location    *model.LocationRecord   `json:"location"`
}

type searchRequest struct {
	Query      string                `json:"query"`
	Restaurant string                `json:"restaurant"`
	Cuisine    string                `json:"cuisine"`
	Budget     string                `json:"budget"`
	Location   *model.LocationRecord `json:"location"`
}

type searchResponse struct {
	Summary string `json:"summary"`
}

func (r *Router) handleHealth(c *gin.Context) {
	status := gin.H{
		"status": "healthy",
		"uptime": time.Since(r.started).Round(time.Second).String(),
		"redis":  "ok",
	}
	if err := r.health.HealthCheck(c.Request.Context()); err != nil {
		status["status"] = "degraded"
		status["redis"] = err.Error()
		c.JSON(http.StatusServiceUnavailable, Response{Code: http.StatusServiceUnavailable, Message: "redis unreachable", Data: status})
		return
	}
	success(c, status)
}

func (r *Router) handleChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := validateLocation(req.Location); err != nil {
		badRequest(c, err)
		return
	}

	result, err := r.pipeline.Chat(c.Request.Context(), c.Param("id"), req.Text, req.Location)
	if err != nil {
		storageFailure(c, err)
		return
	}

	success(c, chatResponse{
		Reply:          result.Reply,
		Ready:          result.Ready,
		SuggestAfterMs: result.SuggestAfter.Milliseconds(),
	})
}

func (r *Router) handleExtractPreferences(c *gin.Context) {
	var req locationRequest
	if !bindOptional(c, &req) {
		return
	}
	if err := validateLocation(req.Location); err != nil {
		badRequest(c, err)
		return
	}

	prefs, err := r.pipeline.ExtractPreferences(c.Request.Context(), c.Param("id"), req.Location)
	if err != nil {
		storageFailure(c, err)
		return
	}
	success(c, prefs)
}

func (r *Router) handleRecommend(c *gin.Context) {
	var req recommendRequest
	if !bindOptional(c, &req) {
		return
	}
	if err := validateLocation(req.Location); err != nil {
		badRequest(c, err)
		return
	}

	rec, err := r.pipeline.Recommend(c.Request.Context(), c.Param("id"), req.Preferences, req.Location)
	if err != nil {
		storageFailure(c, err)
		return
	}
	success(c, rec)
}

func (r *Router) handleLoadMore(c *gin.Context) {
	var req locationRequest
	if !bindOptional(c, &req) {
		return
	}
	if err := validateLocation(req.Location); err != nil {
		badRequest(c, err)
		return
	}

	rec, err := r.pipeline.LoadMore(c.Request.Context(), c.Param("id"), req.Location)
	if err != nil {
		storageFailure(c, err)
		return
	}
	success(c, rec)
}

func (r *Router) handleHistory(c *gin.Context) {
	history, err := r.pipeline.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		storageFailure(c, err)
		return
	}
	success(c, gin.H{"messages": history})
}

func (r *Router) handleReset(c *gin.Context) {
	if err := r.pipeline.Reset(c.Request.Context(), c.Param("id")); err != nil {
		storageFailure(c, err)
		return
	}
	success(c, nil)
}

func (r *Router) handleSearch(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.Query == "" && req.Restaurant == "" && req.Cuisine == "" {
		badRequest(c, errors.New("one of query, restaurant or cuisine is required"))
		return
	}
	if err := validateLocation(req.Location); err != nil {
		badRequest(c, err)
		return
	}

	summary := r.pipeline.Search(c.Request.Context(), planner.SearchRequest{
		Query:      req.Query,
		Restaurant: req.Restaurant,
		Cuisine:    req.Cuisine,
		Budget:     req.Budget,
		Location:   req.Location,
	})
	success(c, searchResponse{Summary: summary})
}

// bindOptional binds a JSON body that may be absent entirely.
func bindOptional(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, err)
		return false
	}
	return true
}

func validateLocation(loc *model.LocationRecord) error {
	if loc == nil {
		return nil
	}
	if loc.Latitude < -90 || loc.Latitude > 90 {
		return fmt.Errorf("latitude %v out of range", loc.Latitude)
	}
	if loc.Longitude < -180 || loc.Longitude > 180 {
		return fmt.Errorf("longitude %v out of range", loc.Longitude)
	}
	if loc.Accuracy != nil && *loc.Accuracy < 0 {
		return fmt.Errorf("accuracy %v must not be negative", *loc.Accuracy)
	}
	return nil
}
