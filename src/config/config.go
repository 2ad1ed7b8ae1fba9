package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port               string
	DatabaseURL        string
	CognitoRegion      string
	CognitoUserPoolID  string
	CognitoAppClientID string
}

func Load() Config {
	// Load .env file if present
	_ = godotenv.Load()

	cfg := Config{
		Port:               getEnv("PORT", "8080"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		CognitoRegion:      getEnv("COGNITO_REGION", "us-east-1"),
		CognitoUserPoolID:  getEnv("COGNITO_USER_POOL_ID", ""),
		CognitoAppClientID: getEnv("COGNITO_APP_CLIENT_ID", ""),
	}

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	return cfg
}

// AuthConfigured reports whether the identity provider settings are present.
// When false, protected endpoints answer 503 instead of attempting verification.
func (c Config) AuthConfigured() bool {
	return c.CognitoUserPoolID != "" && c.CognitoAppClientID != ""
}

func (c Config) CognitoIssuer() string {
	return fmt.Sprintf("https://cognito-idp.%s.amazonaws.com/%s", c.CognitoRegion, c.CognitoUserPoolID)
}

func (c Config) CognitoJWKSURL() string {
	return c.CognitoIssuer() + "/.well-known/jwks.json"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
