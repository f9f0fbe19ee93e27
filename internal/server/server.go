package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"omnia-sync/internal/app/usecases"
	"omnia-sync/internal/logging"
)

// Server exposes the manual sync trigger and the storefront webhook.
type Server struct {
	engine *gin.Engine
	syncer *usecases.CatalogSyncer
	orders *usecases.OrderProcessor
	logger logging.LoggerService
}

func New(syncer *usecases.CatalogSyncer, orders *usecases.OrderProcessor, logger logging.LoggerService) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		engine: engine,
		syncer: syncer,
		orders: orders,
		logger: logger,
	}

	engine.GET("/healthz", s.handleHealth)
	engine.GET("/sync/all-products-from-apis", s.handleSyncAll)
	engine.POST("/sync/woocommerce/webhook/created-order", s.handleCreatedOrder)

	return s
}

func (s *Server) Run(port string) error {
	return s.engine.Run(":" + port)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleSyncAll(c *gin.Context) {
	report, err := s.syncer.Run(c.Request.Context(), "http")
	if err != nil {
		if errors.Is(err, usecases.ErrSyncInProgress) {
			c.JSON(http.StatusConflict, gin.H{"error": "sync already in progress"})
			return
		}
		s.logger.LogError("manual sync pass failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "sync failed"})
		return
	}
	c.JSON(http.StatusOK, report)
}

// handleCreatedOrder validates and forwards one webhook delivery. Internal
// failure detail is never echoed back to the webhook sender.
func (s *Server) handleCreatedOrder(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
		return
	}
	signature := c.GetHeader("X-WC-Webhook-Signature")

	err = s.orders.ProcessWebhook(c.Request.Context(), body, signature)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"received": true})
	case errors.Is(err, usecases.ErrMissingBody), errors.Is(err, usecases.ErrMissingSignature):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, usecases.ErrInvalidSignature):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid signature"})
	default:
		s.logger.LogError(fmt.Sprintf("webhook processing failed (topic: %s)", c.GetHeader("X-WC-Webhook-Topic")), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
