package config

import (
	"testing"
	"time"
)

func TestLoadConfigRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error without JWT_SECRET")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("APP_ENV", "dev")
	t.Setenv("STATUS_POLL_INTERVAL", "")
	t.Setenv("DEFAULT_SUBSCRIPTION_PRICE", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.AppEnv != "development" {
		t.Fatalf("expected development env, got %q", cfg.AppEnv)
	}
	if cfg.StatusPollInterval != 2*time.Second {
		t.Fatalf("expected 2s poll interval, got %s", cfg.StatusPollInterval)
	}
	if cfg.AIPlanModel != defaultPlanModel || cfg.AIChatModel != defaultChatModel {
		t.Fatalf("unexpected models: %q %q", cfg.AIPlanModel, cfg.AIChatModel)
	}
}

func TestLoadConfigRejectsNonPositivePrice(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DEFAULT_SUBSCRIPTION_PRICE", "0")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for zero price")
	}
}

func TestGetEnvDurationFallsBackOnGarbage(t *testing.T) {
	t.Setenv("STATUS_POLL_INTERVAL", "soon")

	if got := getEnvDuration("STATUS_POLL_INTERVAL", 3*time.Second); got != 3*time.Second {
		t.Fatalf("expected fallback, got %s", got)
	}
}

func TestDocsEnabledOnlyInDevelopment(t *testing.T) {
	if (&Config{EnableDocs: true, AppEnv: "production"}).DocsEnabled() {
		t.Fatal("docs must stay off outside development")
	}
	if !(&Config{EnableDocs: true, AppEnv: "development"}).DocsEnabled() {
		t.Fatal("docs should be on in development")
	}
}
