package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/ivangarciagi10/email-servicev2/internal/api"
	"github.com/ivangarciagi10/email-servicev2/internal/config"
	"github.com/ivangarciagi10/email-servicev2/internal/ledger"
	"github.com/ivangarciagi10/email-servicev2/internal/service"
	"github.com/ivangarciagi10/email-servicev2/internal/shopify"
)

func main() {
	// Load .env if present; real environment variables take precedence
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	var logger *zap.Logger
	if cfg.Environment == "production" {
		logger, _ = zap.NewProduction()
	} else {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	logger.Info("Starting draft order email service",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment),
		zap.String("from_email", cfg.SendGrid.FromEmail),
		zap.Bool("sendgrid_configured", cfg.SendGrid.APIKey != ""),
		zap.Bool("webhook_signature_verification", cfg.ShopifyWebhookSecret != ""),
	)

	// Wire the processing pipeline
	shopifyClient := shopify.NewClient(cfg.Shopify, logger)
	advisors := service.NewAdvisorResolver(shopifyClient, logger)
	emails := service.NewEmailService(cfg.SendGrid, logger)
	processor := service.NewDraftOrderProcessor(advisors, emails, logger)

	led := ledger.New(ledger.DefaultMaxAttempts, ledger.DefaultRetryWindow, logger)

	// Initialize router
	router := api.NewRouter(cfg, led, processor, logger)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Hourly cache resets: the processing ledger and the sent-email set are
	// cleared independently to bound memory growth
	resetCtx, stopResets := context.WithCancel(context.Background())
	defer stopResets()
	go led.RunResetLoop(resetCtx, ledger.DefaultResetInterval)
	go emails.RunResetLoop(resetCtx, ledger.DefaultResetInterval)

	logger.Info("Server started successfully", zap.String("address", srv.Addr))

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
