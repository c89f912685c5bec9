// api/handlers/companion_handlers.go
package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"brightwork/api/models"
)

// FallbackCompanionReply is returned with success status when no companion
// endpoint is configured; the widget degrades gracefully instead of erroring.
const FallbackCompanionReply = "Your workspace is ready once the companion backend URL is configured."

// CompanionRelay forwards a chat message to the external companion service.
type CompanionRelay interface {
	Relay(ctx context.Context, message string) (string, error)
}

type CompanionHandlers struct {
	Companion CompanionRelay
}

func NewCompanionHandlers(companion CompanionRelay) *CompanionHandlers {
	return &CompanionHandlers{Companion: companion}
}

// RelayMessage proxies one chat message and relays the remote reply.
func (h *CompanionHandlers) RelayMessage(c *gin.Context) {
	var req models.CompanionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		return
	}

	if h.Companion == nil {
		c.JSON(http.StatusOK, gin.H{"reply": FallbackCompanionReply})
		return
	}

	reply, err := h.Companion.Relay(c.Request.Context(), req.Message)
	if err != nil {
		log.Printf("ERROR: Companion webhook error: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Companion service error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reply": reply})
}
