package handler

import (
	"io"
	"net/http"

	"payment-journey-tracker/internal/core/ports"
	"payment-journey-tracker/pkg/apperror"
	"payment-journey-tracker/pkg/response"

	"github.com/gin-gonic/gin"
)

// HeaderWebhookSignature carries the provider's HMAC-SHA256 hex digest of
// the raw request body.
const HeaderWebhookSignature = "X-Request-Signature-SHA-256"

// WebhookHandler handles the inbound provider webhook endpoint.
type WebhookHandler struct {
	receiver ports.WebhookReceiver
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(receiver ports.WebhookReceiver) *WebhookHandler {
	return &WebhookHandler{receiver: receiver}
}

// Receive handles POST /webhooks. The provider expects a fast 200 with the
// ack body for anything it can read; only an unreadable body is a 400.
func (h *WebhookHandler) Receive(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.Error(c, apperror.ErrUnreadableBody(err))
		return
	}

	ack := h.receiver.HandleWebhook(c.Request.Context(), ports.WebhookRequest{
		Body:      body,
		Signature: c.GetHeader(HeaderWebhookSignature),
		SourceIP:  c.ClientIP(),
	})
	c.JSON(http.StatusOK, ack)
}
