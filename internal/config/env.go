package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Settings holds process settings read from the environment.
type Settings struct {
	Port           int
	Env            string
	LogLevel       string
	LogPretty      bool
	DatabasePath   string // empty: no store, prices come from the reference table
	AllowedOrigins []string
	PricesURL      string
	PricesAPIKey   string
}

// LoadSettings reads settings from the environment after loading .env files
// if present. Missing files are not an error.
func LoadSettings(envFiles ...string) (*Settings, error) {
	_ = godotenv.Load(envFiles...)

	s := &Settings{
		Port:           getEnvAsInt("API_PORT", 8080),
		Env:            getEnv("API_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogPretty:      getEnvAsBool("LOG_PRETTY", false),
		DatabasePath:   getEnv("BESS_DB_PATH", ""),
		AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		PricesURL:      getEnv("BESS_PRICES_URL", ""),
		PricesAPIKey:   getEnv("BESS_PRICES_API_KEY", ""),
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Settings) Validate() error {
	if s.Port <= 0 || s.Port > 65535 {
		return fmt.Errorf("API_PORT must be in 1..65535, got %d", s.Port)
	}
	return nil
}

func (s *Settings) IsProduction() bool {
	return s.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
