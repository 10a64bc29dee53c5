package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ivangarciagi10/email-servicev2/internal/config"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

// HandleHealth handles GET /health.
func HandleHealth(cfg *config.Config, startTime time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "OK",
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
			"uptime":      time.Since(startTime).Seconds(),
			"environment": cfg.Environment,
			"version":     Version,
		})
	}
}
