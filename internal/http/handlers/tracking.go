package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/shortsview-backend/internal/domain/analytics"
	"github.com/yungbote/shortsview-backend/internal/http/response"
	"github.com/yungbote/shortsview-backend/internal/pkg/dbctx"
	"github.com/yungbote/shortsview-backend/internal/services"
)

const codeVideoNotFound = "video_not_found"

type TrackingHandler struct {
	tracking services.TrackingService
	emotion  services.EmotionService
}

func NewTrackingHandler(tracking services.TrackingService, emotion services.EmotionService) *TrackingHandler {
	return &TrackingHandler{tracking: tracking, emotion: emotion}
}

// POST /increment_view/:id
func (h *TrackingHandler) IncrementView(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.RespondError(c, http.StatusNotFound, codeVideoNotFound, err)
		return
	}
	views, err := h.tracking.IncrementView(dbctx.New(c.Request.Context()), uint(id))
	if err != nil {
		response.RespondServiceError(c, err, codeVideoNotFound)
		return
	}
	response.RespondOK(c, gin.H{"success": true, "views": views})
}

// POST /track_view
func (h *TrackingHandler) TrackView(c *gin.Context) {
	var req struct {
		VideoID   uint    `json:"video_id"`
		Duration  float64 `json:"duration"`
		Completed bool    `json:"completed"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	views, err := h.tracking.TrackView(dbctx.New(c.Request.Context()), accountID(c), req.VideoID, req.Duration, req.Completed)
	if err != nil {
		response.RespondServiceError(c, err, codeVideoNotFound)
		return
	}
	response.RespondOK(c, gin.H{"success": true, "views": views})
}

// POST /track_emotion
//
// Malformed or partial "emotions" objects count missing or non-numeric
// scores as zero instead of rejecting the sample.
func (h *TrackingHandler) TrackEmotion(c *gin.Context) {
	var req struct {
		VideoID   uint            `json:"video_id"`
		Timestamp float64         `json:"timestamp"`
		Emotions  json.RawMessage `json:"emotions"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	scores := analytics.ParseEmotionScores(req.Emotions)
	warning, err := h.emotion.TrackEmotion(dbctx.New(c.Request.Context()), accountID(c), req.VideoID, req.Timestamp, scores)
	if err != nil {
		response.RespondServiceError(c, err, codeVideoNotFound)
		return
	}
	response.RespondOK(c, gin.H{"success": true, "warning": warning})
}
