package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all environment-derived settings. It is constructed once in
// main and passed into handler/service constructors; nothing reads the
// environment after load. Required values that are absent are reported by the
// endpoint that depends on them, not at load time.
type Config struct {
	PayUMerchantKey  string
	PayUMerchantSalt string

	DatabaseURL string

	BackendURL  string
	FrontendURL string

	AdminPassword string
	Port          string

	ProductInfo   string
	DefaultAmount string

	// VerifyCallback enables response-hash verification on inbound PayU
	// postbacks. The legacy behavior (false) accepts unverified postbacks.
	VerifyCallback bool

	// Kafka settings (comma-separated brokers; empty disables events)
	KafkaBrokers string
	KafkaTopic   string

	SMTPHost  string
	SMTPPort  string
	SMTPUser  string
	SMTPPass  string
	EmailFrom string
}

// Load reads .env (when present) and the process environment into a Config.
func Load() Config {
	// Try loading .env from different locations
	envLocations := []string{
		".env",
		"config/.env",
		"../config/.env",
	}

	envLoaded := false
	for _, location := range envLocations {
		if err := godotenv.Load(location); err == nil {
			envLoaded = true
			break
		}
	}

	if !envLoaded {
		log.Println("No .env file found, using environment variables")
	}

	return Config{
		PayUMerchantKey:  os.Getenv("PAYU_MERCHANT_KEY"),
		PayUMerchantSalt: os.Getenv("PAYU_MERCHANT_SALT"),

		DatabaseURL: getEnvWithDefault("DATABASE_URL", buildConnString()),

		BackendURL:  os.Getenv("BACKEND_URL"),
		FrontendURL: os.Getenv("FRONTEND_URL"),

		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		Port:          getEnvWithDefault("PORT", "3000"),

		ProductInfo:   getEnvWithDefault("PRODUCT_INFO", "ISML Foundation Program"),
		DefaultAmount: getEnvWithDefault("DEFAULT_AMOUNT", "1.00"),

		VerifyCallback: os.Getenv("PAYU_VERIFY_CALLBACK") == "true",

		KafkaBrokers: os.Getenv("KAFKA_BROKERS"),
		KafkaTopic:   getEnvWithDefault("KAFKA_TOPIC", "payments"),

		SMTPHost:  getEnvWithDefault("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:  getEnvWithDefault("SMTP_PORT", "587"),
		SMTPUser:  os.Getenv("SMTP_USER"),
		SMTPPass:  os.Getenv("SMTP_PASS"),
		EmailFrom: os.Getenv("EMAIL_FROM"),
	}
}

// buildConnString assembles a conn string from discrete DB_* variables for
// setups that do not provide DATABASE_URL.
func buildConnString() string {
	return "host=" + getEnvWithDefault("DB_HOST", "localhost") +
		" port=" + getEnvWithDefault("DB_PORT", "5432") +
		" user=" + getEnvWithDefault("DB_USER", "postgres") +
		" password=" + os.Getenv("DB_PASSWORD") +
		" dbname=" + getEnvWithDefault("DB_NAME", "postgres") +
		" sslmode=disable"
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
