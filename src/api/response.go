package api

import (
	"errors"
	"net/http"

	"dinner_planner/src/model"

	"github.com/gin-gonic/gin"
)

// Response is the envelope of every API reply
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func failure(c *gin.Context, code int, message string, err error) {
	response := Response{
		Code:    code,
		Message: message,
	}
	if err != nil {
		response.Error = err.Error()
	}
	c.AbortWithStatusJSON(code, response)
}

func badRequest(c *gin.Context, err error) {
	failure(c, http.StatusBadRequest, "invalid request", err)
}

// storageFailure maps pipeline errors, which only come from session storage.
func storageFailure(c *gin.Context, err error) {
	if errors.Is(err, model.ErrSessionNotFound) {
		failure(c, http.StatusNotFound, "session not found", err)
		return
	}
	failure(c, http.StatusInternalServerError, "session storage unavailable", err)
}
