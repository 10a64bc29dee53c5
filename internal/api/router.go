package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ivangarciagi10/email-servicev2/internal/api/handlers"
	"github.com/ivangarciagi10/email-servicev2/internal/api/middleware"
	"github.com/ivangarciagi10/email-servicev2/internal/config"
	"github.com/ivangarciagi10/email-servicev2/internal/ledger"
)

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, led *ledger.Ledger, processor handlers.Processor, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	startTime := time.Now()

	// Middleware
	router.Use(customRecovery(cfg, logger))
	router.Use(middleware.RequestID())
	router.Use(loggingMiddleware(logger))

	// Root: friendly response so GET / returns 200 instead of 404
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Servicio de Correos Electrónicos - GNP",
			"version": handlers.Version,
			"endpoints": gin.H{
				"webhook": "/api/webhook/shopify",
				"health":  "/health",
			},
		})
	})

	// Health check
	router.GET("/health", handlers.HandleHealth(cfg, startTime))

	// Shopify webhook: draft order created events trigger the two quote emails
	router.POST("/api/webhook/shopify", handlers.HandleDraftOrderWebhook(cfg, led, processor, logger))

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Ruta no encontrada",
			"path":  c.Request.URL.Path,
		})
	})

	return router
}

// customRecovery is a custom recovery middleware that logs panics
func customRecovery(cfg *config.Config, logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("Panic recovered",
			zap.Any("error", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
		resp := gin.H{"error": "Error interno del servidor"}
		if cfg.IsDevelopment() {
			resp["details"] = fmt.Sprintf("%v", recovered)
		}
		c.JSON(http.StatusInternalServerError, resp)
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.String("request_id", c.GetString("request_id")),
		)
	}
}
