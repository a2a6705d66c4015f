package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port   string
	DBPath string

	// Guards
	APIAccessKey string
	JWTSecret    string

	// Seeded accounts
	DefaultAdminPassword string
	DefaultDemoPassword  string

	// Mail
	ResendAPIKey string
	MailFrom     string
	AdminEmail   string

	RedisURL string
}

var App *Config

// Load reads .env (if present) and environment variables into App.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	App = &Config{
		Port:                 getEnv("PORT", "5000"),
		DBPath:               getEnv("DB_PATH", "database.db"),
		APIAccessKey:         os.Getenv("SECURE_API_ACCESS_KEY"),
		JWTSecret:            getEnv("JWT_SECRET", "nestira-dev-secret"),
		DefaultAdminPassword: getEnv("DEFAULT_ADMIN_PASSWORD", "admin"),
		DefaultDemoPassword:  getEnv("DEFAULT_DEMO_PASSWORD", "demo"),
		ResendAPIKey:         os.Getenv("RESEND_API_KEY"),
		MailFrom:             getEnv("MAIL_FROM", "Nestira <noreply@nestira.shop>"),
		AdminEmail:           os.Getenv("ADMIN_EMAIL"),
		RedisURL:             os.Getenv("REDIS_URL"),
	}
	return App
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
