package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/redondonicolas-afk/padel/internal/usecase/coordinator"
)

type MessageHandler struct {
	coordinator *coordinator.Coordinator
}

func NewMessageHandler(c *coordinator.Coordinator) *MessageHandler {
	return &MessageHandler{
		coordinator: c,
	}
}

// WebhookMessage is one inbound group message as the gateway posts it
type WebhookMessage struct {
	MessageID  string `json:"message_id" binding:"required,notblank"`
	GroupID    string `json:"group_id" binding:"required,notblank"`
	SenderID   string `json:"sender_id" binding:"required,notblank"`
	SenderName string `json:"sender_name"`
	Text       string `json:"text" binding:"required"`
}

// MessageReply carries the bot's answer; empty reply means stay silent
type MessageReply struct {
	Reply string `json:"reply"`
}

// HandleMessage handles POST /webhook/message
func (h *MessageHandler) HandleMessage(c *gin.Context) {
	var req WebhookMessage
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body",
		})
		return
	}

	name := req.SenderName
	if name == "" {
		name = req.SenderID
	}

	reply, err := h.coordinator.Handle(c.Request.Context(), coordinator.InboundMessage{
		MessageID:  req.MessageID,
		GroupID:    req.GroupID,
		SenderID:   req.SenderID,
		SenderName: name,
		Text:       req.Text,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "failed to process message",
		})
		return
	}

	c.JSON(http.StatusOK, MessageReply{Reply: reply})
}
