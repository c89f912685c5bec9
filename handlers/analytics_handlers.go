// api/handlers/analytics_handlers.go
package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"brightwork/api/models"
)

// AnalyticsRecorder persists visitor activity in the graph store. A nil
// recorder means no storage backend was configured: the endpoints answer
// 503 rather than failing at startup.
type AnalyticsRecorder interface {
	RecordEvent(ctx context.Context, ev models.AnalyticsEvent) error
	Metrics(ctx context.Context) (models.MetricsSnapshot, error)
}

type AnalyticsHandlers struct {
	Store AnalyticsRecorder
}

func NewAnalyticsHandlers(s AnalyticsRecorder) *AnalyticsHandlers {
	return &AnalyticsHandlers{
		Store: s,
	}
}

// RecordEvent validates one beacon event and upserts the visitor alongside it.
func (h *AnalyticsHandlers) RecordEvent(c *gin.Context) {
	if h.Store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Analytics storage not configured"})
		return
	}

	var req models.TrackEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.EventType == "" || req.SessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "eventType and sessionId are required"})
		return
	}

	properties := map[string]any{}
	if len(req.Properties) > 0 {
		if err := json.Unmarshal(req.Properties, &properties); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "properties must be an object"})
			return
		}
	}

	event := models.AnalyticsEvent{
		EventID:    uuid.New().String(),
		EventType:  req.EventType,
		SessionID:  req.SessionID,
		Page:       req.Page,
		Timestamp:  time.Now().UTC(),
		Properties: properties,
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	if err := h.Store.RecordEvent(ctx, event); err != nil {
		log.Printf("ERROR: Failed to persist analytics event: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to persist analytics event"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// GetMetrics folds the visitor/conversion/event counts into one snapshot.
func (h *AnalyticsHandlers) GetMetrics(c *gin.Context) {
	if h.Store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Analytics storage not configured"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	snapshot, err := h.Store.Metrics(ctx)
	if err != nil {
		log.Printf("ERROR: Failed to load analytics metrics: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load analytics metrics"})
		return
	}

	c.JSON(http.StatusOK, snapshot)
}
