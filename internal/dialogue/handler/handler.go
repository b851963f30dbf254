// Package handler exposes the Messenger webhook endpoints: the GET
// verification handshake and the POST event receiver.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"exterior_chat_backend/internal/dialogue/transport"
	"exterior_chat_backend/platform/config"
	"exterior_chat_backend/platform/httpkit"
	"exterior_chat_backend/platform/logger"
)

// DialogueService is the part of the dialogue driver the webhook needs.
type DialogueService interface {
	HandleMessage(ctx context.Context, conversationID, text string) error
	Restart(ctx context.Context, conversationID string) error
}

// Handler serves the Messenger webhook.
type Handler struct {
	svc         DialogueService
	verifyToken string
	log         *logger.Logger
}

// New creates the webhook handler.
func New(svc DialogueService, cfg config.WebhookConfig, log *logger.Logger) *Handler {
	return &Handler{
		svc:         svc,
		verifyToken: cfg.GetVerifyToken(),
		log:         log,
	}
}

// RegisterRoutes mounts the webhook endpoints on the group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.HandleVerify)
	rg.POST("", h.HandleEvents)
}

// HandleVerify answers the subscription handshake. Messenger sends hub.mode,
// hub.verify_token, and hub.challenge; a matching token echoes the challenge.
func (h *Handler) HandleVerify(c *gin.Context) {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode == "subscribe" && token == h.verifyToken {
		h.log.Info("webhook verified")
		c.String(http.StatusOK, challenge)
		return
	}

	h.log.Warn("webhook verification rejected", "mode", mode)
	c.Status(http.StatusForbidden)
}

// HandleEvents receives event batches. Processing errors are logged, never
// surfaced: a non-200 makes the platform redeliver the whole batch.
func (h *Handler) HandleEvents(c *gin.Context) {
	var payload transport.WebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.log.Warn("webhook payload rejected", "error", err.Error())
		httpkit.Error(c, http.StatusBadRequest, "invalid webhook payload", nil)
		return
	}

	if payload.Object != "page" {
		c.Status(http.StatusNotFound)
		return
	}

	ctx := c.Request.Context()
	for _, entry := range payload.Entry {
		for _, ev := range entry.Messaging {
			h.process(ctx, ev)
		}
	}

	c.String(http.StatusOK, "EVENT_RECEIVED")
}

func (h *Handler) process(ctx context.Context, ev transport.MessagingEvent) {
	conversationID := ev.Sender.ID
	if conversationID == "" {
		return
	}

	if ev.Postback != nil {
		if ev.Postback.Payload == transport.GetStartedPayload {
			if err := h.svc.Restart(ctx, conversationID); err != nil {
				h.log.Error("restart failed", "conversation_id", conversationID, "error", err.Error())
			}
		}
		return
	}

	if ev.Message == nil || ev.Message.IsEcho {
		return
	}
	text := ev.Text()
	if text == "" {
		return
	}

	if err := h.svc.HandleMessage(ctx, conversationID, text); err != nil {
		h.log.Error("message handling failed", "conversation_id", conversationID, "error", err.Error())
	}
}
