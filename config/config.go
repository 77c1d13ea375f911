package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port string

	DBDriver    string // postgres, mysql or sqlite
	DatabaseURL string

	JWTKey          string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	SaltRound       int

	OTPLength  int
	MailDriver string // log, smtp, sendgrid or sms
	MailFrom   string
	MailName   string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string

	SendGridAPIKey string

	SMSApiURL   string
	SMSApiKey   string
	SMSSenderID string

	StorageDriver string // local or cloudinary
	MediaRoot     string
	MediaURL      string

	CloudinaryCloudName    string
	CloudinaryAPIKey       string
	CloudinaryAPISecret    string
	CloudinaryUploadPreset string

	PageSize    int
	MaxPageSize int

	// ProductResubmitPolicy decides what happens to an existing listing when
	// the same product is submitted again: "keep" or "update".
	ProductResubmitPolicy string

	LogLevel string
	LogDev   bool
	LogFile  string

	TokenPurgeSchedule string
}

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	cfg := &Config{
		Port: getEnv("PORT", "3000"),

		DBDriver:    strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DatabaseURL: getEnv("DATABASE_URL", postgresDSNFromParts()),

		JWTKey:          getEnv("JWT_SECRET_KEY", "defaultSecret"),
		AccessTokenTTL:  getEnvDuration("ACCESS_TOKEN_TTL", 24*time.Hour),
		RefreshTokenTTL: getEnvDuration("REFRESH_TOKEN_TTL", 7*24*time.Hour),
		SaltRound:       getEnvInt("SALT_ROUND", 10),

		OTPLength:  getEnvInt("OTP_LENGTH", 6),
		MailDriver: strings.ToLower(getEnv("MAIL_DRIVER", "log")),
		MailFrom:   getEnv("EMAIL_SENDER", "no-reply@onboardu.local"),
		MailName:   getEnv("EMAIL_SENDER_NAME", "OnBoardU"),

		SMTPHost:     getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUser:     getEnv("SMTP_USER", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),

		SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),

		SMSApiURL:   getEnv("SMS_API_URL", ""),
		SMSApiKey:   getEnv("SMS_API_KEY", ""),
		SMSSenderID: getEnv("SMS_SENDER_ID", ""),

		StorageDriver: strings.ToLower(getEnv("STORAGE_DRIVER", "local")),
		MediaRoot:     getEnv("MEDIA_ROOT", "./media"),
		MediaURL:      getEnv("MEDIA_URL", "/media/"),

		CloudinaryCloudName:    getEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryAPIKey:       getEnv("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret:    getEnv("CLOUDINARY_API_SECRET", ""),
		CloudinaryUploadPreset: getEnv("CLOUDINARY_UPLOAD_PRESET", ""),

		PageSize:    getEnvInt("PAGE_SIZE", 10),
		MaxPageSize: getEnvInt("MAX_PAGE_SIZE", 100),

		ProductResubmitPolicy: strings.ToLower(getEnv("PRODUCT_RESUBMIT_POLICY", "keep")),

		LogLevel: getEnv("LOG_LEVEL", ""),
		LogDev:   getEnv("LOG_DEV", "") == "1",
		LogFile:  getEnv("LOG_FILE", ""),

		TokenPurgeSchedule: getEnv("TOKEN_PURGE_SCHEDULE", "@hourly"),
	}

	// Validate critical configuration
	if cfg.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if cfg.MailDriver == "log" {
		log.Println("Warning: MAIL_DRIVER=log, OTP codes are only written to the log.")
	}

	return cfg
}

// Validate reports configuration combinations the server cannot start with.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is not set")
	}
	switch c.ProductResubmitPolicy {
	case "keep", "update":
	default:
		return fmt.Errorf("unsupported PRODUCT_RESUBMIT_POLICY %q", c.ProductResubmitPolicy)
	}
	if c.PageSize < 1 || c.MaxPageSize < c.PageSize {
		return fmt.Errorf("PAGE_SIZE must be between 1 and MAX_PAGE_SIZE")
	}
	if c.OTPLength < 4 || c.OTPLength > 10 {
		return fmt.Errorf("OTP_LENGTH must be between 4 and 10")
	}
	return nil
}

// postgresDSNFromParts builds a key/value DSN from DB_* variables when
// DATABASE_URL is not given.
func postgresDSNFromParts() string {
	if os.Getenv("DB_HOST") == "" {
		return ""
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		getEnv("DB_PORT", "5432"),
	)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to duration: %v", key, err)
		return defaultValue
	}
	return d
}
