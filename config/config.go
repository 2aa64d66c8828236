package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config carries every environment setting the server consumes.
type Config struct {
	Port            string
	MongoURI        string
	DatabaseName    string
	JWTSecret       string
	StripeSecretKey string
	SiteDomain      string
}

// Load reads the .env file when present and assembles the configuration.
// Missing optional values fall back to development defaults; the secrets
// required for tokens and checkout are fatal when absent.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("no .env file found, reading environment directly")
	}

	cfg := Config{
		Port:            getEnv("PORT", "3000"),
		MongoURI:        os.Getenv("MONGO_URI"),
		DatabaseName:    getEnv("DB_NAME", "local_chef_db"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		StripeSecretKey: os.Getenv("STRIPE_SECRET_KEY"),
		SiteDomain:      getEnv("SITE_DOMAIN", "http://localhost:5173"),
	}

	if cfg.MongoURI == "" {
		log.Fatal().Msg("MONGO_URI is not set in the environment variables")
	}
	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is not set in the environment variables")
	}
	if cfg.StripeSecretKey == "" {
		log.Fatal().Msg("STRIPE_SECRET_KEY is not set in the environment variables")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
