// Command test-shopify verifies Admin API credentials by fetching the shop.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/ivangarciagi10/email-servicev2/internal/config"
	"github.com/ivangarciagi10/email-servicev2/internal/shopify"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	client := shopify.NewClient(cfg.Shopify, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	resp, err := client.Execute(ctx, shopify.ShopQuery, nil)
	if err != nil {
		log.Fatalf("Shopify connection failed: %v", err)
	}

	var result struct {
		Shop struct {
			ID              string `json:"id"`
			Name            string `json:"name"`
			MyshopifyDomain string `json:"myshopifyDomain"`
		} `json:"shop"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		log.Fatalf("Failed to parse shop response: %v", err)
	}

	fmt.Printf("Connected to shop %q (%s)\n", result.Shop.Name, result.Shop.MyshopifyDomain)
}
