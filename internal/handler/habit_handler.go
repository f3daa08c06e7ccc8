package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/habitminer/internal/analysis/habit"
	"github.com/jengzang/habitminer/internal/middleware"
	"github.com/jengzang/habitminer/internal/models"
	"github.com/jengzang/habitminer/internal/service"
	"github.com/jengzang/habitminer/pkg/response"
)

// HabitHandler handles HTTP requests for habits
type HabitHandler struct {
	service *service.HabitService
}

// NewHabitHandler creates a new habit handler
func NewHabitHandler(service *service.HabitService) *HabitHandler {
	return &HabitHandler{service: service}
}

// LearnRequest is the optional body of a learn call
type LearnRequest struct {
	LocationVisits []habit.RawVisit `json:"location_visits"`
}

// Learn handles POST /api/v1/habits/learn
func (h *HabitHandler) Learn(c *gin.Context) {
	var req LearnRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	outcome, err := h.service.Learn(c.Request.Context(), c.GetString(middleware.UserIDKey), req.LocationVisits)
	if err != nil {
		writeError(c, "Failed to learn habits", err)
		return
	}

	response.SuccessWithMessage(c, outcome.Message, outcome)
}

// ListHabits handles GET /api/v1/habits
func (h *HabitHandler) ListHabits(c *gin.Context) {
	var filter models.HabitFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid query parameters", err)
		return
	}
	filter.UserID = c.GetString(middleware.UserIDKey)

	habits, err := h.service.ListHabits(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to get habits", err)
		return
	}

	response.Success(c, gin.H{
		"data":  habits,
		"total": len(habits),
	})
}
