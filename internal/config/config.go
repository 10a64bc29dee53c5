package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	apperrors "github.com/ivangarciagi10/email-servicev2/pkg/errors"
)

type Config struct {
	Port                 string
	Environment          string
	LogLevel             string
	Shopify              ShopifyConfig
	SendGrid             SendGridConfig
	ShopifyWebhookSecret string // SHOPIFY_WEBHOOK_SECRET: verify incoming webhooks (X-Shopify-Hmac-Sha256); empty = presence-only check
}

type ShopifyConfig struct {
	ShopDomain  string
	AccessToken string
	APIVersion  string
}

// SendGridConfig configures outbound email. An empty APIKey switches the
// email service into simulated-send mode instead of failing.
type SendGridConfig struct {
	APIKey    string
	FromEmail string
	FromName  string
}

// IsDevelopment reports whether raw error detail may be surfaced to callers.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("SHOPIFY_API_VERSION", "2023-10")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if .env doesn't exist, we'll use env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		LogLevel:    getEnvOrViper("LOG_LEVEL", "info"),
		Shopify: ShopifyConfig{
			ShopDomain:  strings.TrimSpace(getEnvOrViper("SHOPIFY_SHOP_DOMAIN", "")),
			AccessToken: strings.TrimSpace(getEnvOrViper("SHOPIFY_ACCESS_TOKEN", "")),
			APIVersion:  getEnvOrViper("SHOPIFY_API_VERSION", "2023-10"),
		},
		SendGrid: SendGridConfig{
			APIKey:    strings.TrimSpace(getEnvOrViper("SENDGRID_API_KEY", "")),
			FromEmail: getEnvOrViper("FROM_EMAIL", "noreply@em949.generandoideas.com"),
			FromName:  getEnvOrViper("FROM_NAME", "GNP"),
		},
		ShopifyWebhookSecret: strings.TrimSpace(getEnvOrViper("SHOPIFY_WEBHOOK_SECRET", "")),
	}

	// Validate required fields
	if cfg.Shopify.ShopDomain == "" {
		return nil, &apperrors.ErrConfiguration{Message: "SHOPIFY_SHOP_DOMAIN is required"}
	}
	if cfg.Shopify.AccessToken == "" {
		return nil, &apperrors.ErrConfiguration{Message: "SHOPIFY_ACCESS_TOKEN is required"}
	}

	return cfg, nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}
