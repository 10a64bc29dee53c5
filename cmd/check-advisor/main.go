// Command check-advisor resolves the account executive assigned to a
// customer, for debugging metafield setups without sending any email.
//
// Usage: check-advisor <customer-id>
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/ivangarciagi10/email-servicev2/internal/config"
	"github.com/ivangarciagi10/email-servicev2/internal/service"
	"github.com/ivangarciagi10/email-servicev2/internal/shopify"
)

func main() {
	if len(os.Args) != 2 {
		log.Fatalf("usage: %s <customer-id>", os.Args[0])
	}
	customerID, err := strconv.ParseInt(os.Args[1], 10, 64)
	if err != nil {
		log.Fatalf("invalid customer id %q: %v", os.Args[1], err)
	}

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	client := shopify.NewClient(cfg.Shopify, logger)
	resolver := service.NewAdvisorResolver(client, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	advisor, err := resolver.Resolve(ctx, customerID)
	if err != nil {
		log.Fatalf("No advisor for customer %d: %v", customerID, err)
	}

	fmt.Printf("Advisor: %s <%s>\n", advisor.FullName(), advisor.Email)
	if advisor.Phone != "" {
		fmt.Printf("Phone:   %s\n", advisor.Phone)
	}
	fmt.Printf("Role:    %s\n", advisor.Role)
}
