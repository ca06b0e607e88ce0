package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/shortsview-backend/internal/http/response"
	"github.com/yungbote/shortsview-backend/internal/services"
)

type AnalyticsHandler struct {
	analytics services.AnalyticsService
}

func NewAnalyticsHandler(analytics services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// GET /analytics
func (h *AnalyticsHandler) Views(c *gin.Context) {
	dash, err := h.analytics.ViewDashboard(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err, "")
		return
	}
	if wantsJSON(c) {
		response.RespondOK(c, dash)
		return
	}
	render(c, http.StatusOK, "analytics.html", Page{Title: "Analytics", Dashboard: dash})
}

// GET /emotion_analytics
func (h *AnalyticsHandler) Emotions(c *gin.Context) {
	dash, err := h.analytics.EmotionDashboard(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err, "")
		return
	}
	if wantsJSON(c) {
		response.RespondOK(c, dash)
		return
	}
	render(c, http.StatusOK, "emotion_analytics.html", Page{Title: "Emotion analytics", Dashboard: dash})
}
