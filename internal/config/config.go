package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

const (
	defaultPlanModel    = "gemini-2.5-pro"
	defaultChatModel    = "gemini-2.5-flash"
	defaultImageModel   = "imagen-3.0-generate-002"
	defaultAIBaseURL    = "https://generativelanguage.googleapis.com/v1beta/openai/"
	defaultCoachLocale  = "es-AR"
	defaultPollInterval = 2 * time.Second

	defaultSubscriptionPrice = "17000"
)

type Config struct {
	Port               string
	DBUrl              string
	JWTSecret          string
	SupabaseURL        string
	SupabaseBucket     string
	SupabaseServiceKey string
	AppEnv             string
	EnableDocs         bool

	AIAPIKey      string
	AIBaseURL     string
	AIPlanModel   string
	AIChatModel   string
	AIImageModel  string
	CoachLanguage string

	AdminPhone               string
	AdminPasswordHash        string
	DefaultSubscriptionPrice decimal.Decimal
	StatusPollInterval       time.Duration
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	jwtSecret, exists := os.LookupEnv("JWT_SECRET")
	if !exists || jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	rawPrice := strings.TrimSpace(getEnv("DEFAULT_SUBSCRIPTION_PRICE", ""))
	if rawPrice == "" {
		rawPrice = defaultSubscriptionPrice
	}
	price, err := decimal.NewFromString(rawPrice)
	if err != nil || !price.IsPositive() {
		return nil, fmt.Errorf("DEFAULT_SUBSCRIPTION_PRICE must be a positive number")
	}

	return &Config{
		Port:                     getEnv("PORT", "8080"),
		DBUrl:                    getEnv("DB_URL", ""),
		JWTSecret:                jwtSecret,
		SupabaseURL:              getEnv("SUPABASE_URL", ""),
		SupabaseBucket:           getEnv("SUPABASE_BUCKET", ""),
		SupabaseServiceKey:       getEnv("SUPABASE_SERVICE_KEY", ""),
		AppEnv:                   normalizeEnv(getEnv("APP_ENV", "production")),
		EnableDocs:               getEnvBool("ENABLE_API_DOCS", false),
		AIAPIKey:                 getEnv("AI_API_KEY", ""),
		AIBaseURL:                getEnv("AI_BASE_URL", defaultAIBaseURL),
		AIPlanModel:              getEnv("AI_PLAN_MODEL", defaultPlanModel),
		AIChatModel:              getEnv("AI_CHAT_MODEL", defaultChatModel),
		AIImageModel:             getEnv("AI_IMAGE_MODEL", defaultImageModel),
		CoachLanguage:            getEnv("COACH_LANGUAGE", defaultCoachLocale),
		AdminPhone:               getEnv("ADMIN_PHONE", ""),
		AdminPasswordHash:        getEnv("ADMIN_PASSWORD_HASH", ""),
		DefaultSubscriptionPrice: price,
		StatusPollInterval:       getEnvDuration("STATUS_POLL_INTERVAL", defaultPollInterval),
	}, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback
	}

	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(value) == "" {
		return fallback
	}

	parsed, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		log.Printf("Invalid %s %q, using %s", key, value, fallback)
		return fallback
	}
	return parsed
}

func normalizeEnv(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "dev", "develop", "development", "local":
		return "development"
	case "prod", "production":
		return "production"
	case "stage", "staging":
		return "staging"
	case "test", "testing":
		return "test"
	default:
		return strings.ToLower(strings.TrimSpace(value))
	}
}

func (c *Config) DocsEnabled() bool {
	return c != nil && c.EnableDocs && c.AppEnv == "development"
}

func (c *Config) StorageEnabled() bool {
	return c != nil && c.SupabaseURL != "" && c.SupabaseBucket != "" && c.SupabaseServiceKey != ""
}

func (c *Config) AdminLoginEnabled() bool {
	return c != nil && c.AdminPasswordHash != ""
}
