package config

import (
	"os"

	"github.com/joho/godotenv"

	"shopmanager/internal/receipt"
)

// Config carries the process configuration, read from the environment with
// an optional .env file on top.
type Config struct {
	DatabaseURL string
	Port        string
	Shop        receipt.Identity
}

// Load reads the configuration. A missing .env file is not an error; the
// environment alone is enough.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Port:        getEnv("PORT", "8080"),
		Shop: receipt.Identity{
			Name:    getEnv("SHOP_NAME", "Rama Watch & Mobile Shopee"),
			Address: getEnv("SHOP_ADDRESS", "Viman Nagar, Pune - 411014"),
			Phone:   getEnv("SHOP_PHONE", "+91-9815267856"),
		},
	}
}

// getEnv returns the environment variable or the default when unset.
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
