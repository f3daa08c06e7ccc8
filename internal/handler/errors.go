package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/habitminer/internal/analysis/habit"
	"github.com/jengzang/habitminer/pkg/response"
)

// writeError maps engine errors to HTTP status codes
func writeError(c *gin.Context, message string, err error) {
	var invalid *habit.InvalidSampleError
	var conflict *habit.PersistenceConflictError
	switch {
	case errors.As(err, &invalid):
		response.Error(c, http.StatusBadRequest, "Invalid visit sample", err)
	case errors.As(err, &conflict):
		response.Error(c, http.StatusConflict, "Failed to store habit", err)
	default:
		response.Error(c, http.StatusInternalServerError, message, err)
	}
}
