package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/habitminer/internal/middleware"
	"github.com/jengzang/habitminer/internal/models"
	"github.com/jengzang/habitminer/internal/service"
	"github.com/jengzang/habitminer/pkg/response"
)

// VisitHandler handles HTTP requests for location visits
type VisitHandler struct {
	service *service.VisitService
}

// NewVisitHandler creates a new visit handler
func NewVisitHandler(service *service.VisitService) *VisitHandler {
	return &VisitHandler{service: service}
}

// RecordRequest is the body of a record call
type RecordRequest struct {
	Visits []service.VisitInput `json:"visits"`
}

// RecordVisits handles POST /api/v1/visits
func (h *VisitHandler) RecordVisits(c *gin.Context) {
	var req RecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if len(req.Visits) == 0 {
		response.Error(c, http.StatusBadRequest, "No visits provided", nil)
		return
	}

	visits, err := h.service.RecordVisits(c.Request.Context(), c.GetString(middleware.UserIDKey), req.Visits)
	if err != nil {
		writeError(c, "Failed to record visits", err)
		return
	}

	response.Success(c, gin.H{
		"recorded": len(visits),
	})
}

// ListVisits handles GET /api/v1/visits
func (h *VisitHandler) ListVisits(c *gin.Context) {
	var filter models.VisitFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid query parameters", err)
		return
	}
	filter.UserID = c.GetString(middleware.UserIDKey)

	visits, err := h.service.ListVisits(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to get visits", err)
		return
	}

	response.Success(c, gin.H{
		"data":  visits,
		"total": len(visits),
	})
}
