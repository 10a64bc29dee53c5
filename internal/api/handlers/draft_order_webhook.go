package handlers

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ivangarciagi10/email-servicev2/internal/config"
	"github.com/ivangarciagi10/email-servicev2/internal/domain"
	"github.com/ivangarciagi10/email-servicev2/internal/ledger"
	apperrors "github.com/ivangarciagi10/email-servicev2/pkg/errors"
)

// requiredShopifyHeaders must all be present on a webhook delivery. The HMAC
// value itself is only verified when a webhook secret is configured.
var requiredShopifyHeaders = []string{
	"X-Shopify-Shop-Domain",
	"X-Shopify-Hmac-Sha256",
	"X-Shopify-Topic",
	"X-Shopify-Webhook-Id",
}

var validate = validator.New()

// Processor runs the draft order pipeline for one accepted delivery.
type Processor interface {
	Process(ctx context.Context, order *domain.DraftOrder) error
}

func verifyShopifyHMAC(secret string, body []byte, header string) bool {
	if secret == "" || header == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	// constant-time compare
	return hmac.Equal([]byte(expected), []byte(strings.TrimSpace(header)))
}

// validationFields flattens validator errors into field -> failed-rule pairs.
func validationFields(err error) map[string]string {
	fields := make(map[string]string)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
	}
	return fields
}

// HandleDraftOrderWebhook handles POST /api/webhook/shopify for the
// drafts_orders/create topic. Deliveries are deduplicated and retry-bounded
// by the ledger; an accepted delivery sends the customer and advisor emails.
func HandleDraftOrderWebhook(cfg *config.Config, led *ledger.Ledger, processor Processor, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var missing []string
		for _, header := range requiredShopifyHeaders {
			if c.GetHeader(header) == "" {
				missing = append(missing, header)
			}
		}
		if len(missing) > 0 {
			logger.Warn("Webhook missing Shopify headers", zap.Strings("missing", missing))
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Headers de Shopify inválidos",
				"message": "El webhook no contiene los headers requeridos de Shopify",
			})
			return
		}

		// Raw body is needed for HMAC (computed over raw bytes) and decoding.
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read body"})
			return
		}

		if cfg.ShopifyWebhookSecret != "" {
			if !verifyShopifyHMAC(cfg.ShopifyWebhookSecret, body, c.GetHeader("X-Shopify-Hmac-Sha256")) {
				logger.Warn("Webhook signature verification failed",
					zap.String("shop_domain", c.GetHeader("X-Shopify-Shop-Domain")),
				)
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid webhook signature"})
				return
			}
		}

		var order domain.DraftOrder
		if err := json.Unmarshal(body, &order); err != nil {
			logger.Warn("Webhook payload is not valid JSON", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Datos de draft order inválidos",
				"message": "El payload no contiene la estructura esperada",
			})
			return
		}
		if err := validate.Struct(&order); err != nil {
			verr := &apperrors.ErrValidation{
				Message: "draft order payload failed validation",
				Fields:  validationFields(err),
			}
			logger.Warn("Webhook payload failed validation", zap.Error(verr), zap.Any("fields", verr.Fields))
			resp := gin.H{
				"error":   "Datos de draft order inválidos",
				"message": "El payload no contiene la estructura esperada",
			}
			if cfg.IsDevelopment() {
				resp["details"] = verr.Fields
			}
			c.JSON(http.StatusBadRequest, resp)
			return
		}

		orderID := strconv.FormatInt(order.ID, 10)
		webhookID := c.GetHeader("X-Shopify-Webhook-Id")

		decision := led.Check(orderID)
		switch decision.Status {
		case ledger.StatusDuplicate:
			// A redelivery of a completed order is benign; acknowledge it so
			// Shopify stops retrying.
			logger.Info("Draft order already processed, ignoring",
				zap.String("draft_order_id", orderID),
				zap.String("webhook_id", webhookID),
			)
			c.JSON(http.StatusOK, gin.H{
				"success":      true,
				"message":      "Draft order ya procesado anteriormente",
				"draftOrderId": order.ID,
				"webhookId":    webhookID,
			})
			return
		case ledger.StatusRateLimited:
			rlErr := &apperrors.ErrRateLimited{OrderID: orderID, Attempts: decision.Attempts}
			logger.Warn("Draft order exceeded max processing attempts",
				zap.String("webhook_id", webhookID),
				zap.Error(rlErr),
			)
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":        "Demasiados intentos",
				"message":      "Se excedió el límite de intentos para este draft order",
				"draftOrderId": order.ID,
				"webhookId":    webhookID,
			})
			return
		}

		if decision.InRetryWindow {
			logger.Info("Draft order redelivered within retry window, allowing",
				zap.String("draft_order_id", orderID),
				zap.Int("attempt", decision.Attempts),
			)
		}
		logger.Info("Valid draft order received",
			zap.String("draft_order_id", orderID),
			zap.String("webhook_id", webhookID),
			zap.Int("attempt", decision.Attempts),
		)

		if err := processor.Process(c.Request.Context(), &order); err != nil {
			logger.Error("Failed to process draft order",
				zap.String("draft_order_id", orderID),
				zap.String("webhook_id", webhookID),
				zap.Error(err),
			)
			resp := gin.H{
				"error":   "Error interno del servidor",
				"message": "Error procesando el webhook",
			}
			if cfg.IsDevelopment() {
				resp["details"] = err.Error()
			}
			c.JSON(http.StatusInternalServerError, resp)
			return
		}

		// Mark completed only after both emails went out without error.
		led.Complete(orderID)
		logger.Info("Draft order processed successfully",
			zap.String("draft_order_id", orderID),
			zap.String("webhook_id", webhookID),
		)
		c.JSON(http.StatusOK, gin.H{
			"success":      true,
			"message":      "Webhook procesado correctamente",
			"draftOrderId": order.ID,
			"webhookId":    webhookID,
			"attempts":     decision.Attempts,
		})
	}
}
