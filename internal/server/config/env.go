package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	EnvDatabaseDSN = "POSTPLANNER_DATABASE_DSN"
	EnvAIProvider  = "POSTPLANNER_AI_PROVIDER"
	EnvAIAPIKey    = "POSTPLANNER_AI_API_KEY"
	EnvAIModel     = "POSTPLANNER_AI_MODEL"
	EnvAIEndpoint  = "POSTPLANNER_AI_ENDPOINT"
)

// envFile is loaded when present; variables already set win over it.
var envFile = ".env"

// parseEnv overlays cfg with POSTPLANNER_* variables. The API key falls back
// to the provider's conventional variable (OPENAI_API_KEY, ANTHROPIC_API_KEY).
func parseEnv(cfg *Config) {
	_ = godotenv.Load(envFile)

	setString(&cfg.DatabaseDSN, os.Getenv(EnvDatabaseDSN))
	setString(&cfg.AIProvider, os.Getenv(EnvAIProvider))
	setString(&cfg.AIModel, os.Getenv(EnvAIModel))
	setString(&cfg.AIEndpoint, os.Getenv(EnvAIEndpoint))

	key := os.Getenv(EnvAIAPIKey)
	if key == "" {
		switch strings.ToLower(strings.TrimSpace(cfg.AIProvider)) {
		case "anthropic":
			key = os.Getenv("ANTHROPIC_API_KEY")
		default:
			key = os.Getenv("OPENAI_API_KEY")
		}
	}
	setString(&cfg.AIAPIKey, key)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
