package http

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/redondonicolas-afk/padel/internal/delivery/http/handler"
	"github.com/redondonicolas-afk/padel/internal/delivery/http/middleware"
)

type Router struct {
	messageHandler *handler.MessageHandler
	gatewayAuth    *middleware.GatewayAuthMiddleware
}

func NewRouter(
	messageHandler *handler.MessageHandler,
	gatewayAuth *middleware.GatewayAuthMiddleware,
) *Router {
	return &Router{
		messageHandler: messageHandler,
		gatewayAuth:    gatewayAuth,
	}
}

func (r *Router) Setup() *gin.Engine {
	router := gin.Default()

	// "required" lets whitespace-only identifiers through; the gateway has
	// produced those on malformed events
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
	}

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	webhook := router.Group("/webhook")
	webhook.Use(r.gatewayAuth.RequireGateway())
	{
		webhook.POST("/message", r.messageHandler.HandleMessage)
	}

	return router
}
