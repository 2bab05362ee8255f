// internal/infrastructure/config/config.go
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultBrandSignature closes every composed message unless overridden.
const DefaultBrandSignature = "— Flydubai Contact Centre"

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion     string
	BrandSignature string

	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Directory source documents
	ContactsURL       string
	CargoURL          string
	TravelShopsURL    string
	DirectoryCacheTTL time.Duration
	MaxResults        int

	// Relay gateway
	AllowedOrigins  []string
	RelayURL        string
	RelayRatePerMin int

	// SendGrid
	SendGridAPIKey string
	FromEmail      string
	FromName       string

	// Gmail
	EmailProvider     string
	GmailClientID     string
	GmailClientSecret string
	GmailRefreshToken string

	// WhatsApp
	WhatsAppToken         string
	WhatsAppPhoneNumberID string
	WhatsAppTemplate      string
	WhatsAppTemplateLang  string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	// Set defaults and override with env vars
	config := &Config{
		AppVersion:     getEnv("APP_VERSION", "1.0.0"),
		BrandSignature: getEnv("BRAND_SIGNATURE", DefaultBrandSignature),

		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,

		ContactsURL:       getEnv("CONTACTS_URL", ""),
		CargoURL:          getEnv("CARGO_URL", ""),
		TravelShopsURL:    getEnv("TRAVEL_SHOPS_URL", ""),
		DirectoryCacheTTL: time.Duration(getEnvAsInt("DIRECTORY_CACHE_TTL", 0)) * time.Second,
		MaxResults:        getEnvAsInt("MAX_RESULTS", 500),

		AllowedOrigins:  getEnvAsList("ALLOWED_ORIGINS", ""),
		RelayURL:        getEnv("RELAY_URL", ""),
		RelayRatePerMin: getEnvAsInt("RELAY_RATE_PER_MIN", 10),

		SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),
		FromEmail:      getEnv("FROM_EMAIL", ""),
		FromName:       getEnv("FROM_NAME", "Flydubai Contact Centre"),

		EmailProvider:     getEnv("EMAIL_PROVIDER", "sendgrid"),
		GmailClientID:     getEnv("GMAIL_CLIENT_ID", ""),
		GmailClientSecret: getEnv("GMAIL_CLIENT_SECRET", ""),
		GmailRefreshToken: getEnv("GMAIL_REFRESH_TOKEN", ""),

		WhatsAppToken:         getEnv("WHATSAPP_TOKEN", ""),
		WhatsAppPhoneNumberID: getEnv("WHATSAPP_PHONE_NUMBER_ID", ""),
		WhatsAppTemplate:      getEnv("WHATSAPP_TEMPLATE", ""),
		WhatsAppTemplateLang:  getEnv("WHATSAPP_TEMPLATE_LANG", "en"),
	}

	return config, nil
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsList(key, defaultValue string) []string {
	valueStr := getEnv(key, defaultValue)
	if valueStr == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
