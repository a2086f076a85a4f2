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

const (
	// StorageDatabase keeps collections in the kv_entries table
	StorageDatabase = "database"
	// StorageS3 keeps collections as JSON objects in the S3 bucket
	StorageS3 = "s3"
	// StorageMemory keeps collections in process memory (tests, demos)
	StorageMemory = "memory"

	// DefaultAdminPassword is only accepted outside production
	DefaultAdminPassword = "admin123"
)

// Config holds all application configuration
type Config struct {
	DatabaseURL   string
	Port          string
	GoEnv         string
	StorageDriver string
	StoragePrefix string

	Auth0Domain      string
	Auth0Audience    string
	AdminScope       string
	AdminPassword    string
	AdminTokenSecret string

	AWSRegion          string
	AWSS3Bucket        string
	AWSAccessKeyID     string
	AWSSecretAccessKey string

	TwilioAccountSID  string
	TwilioAuthToken   string
	TwilioPhoneNumber string
	StoreOwnerPhone   string

	SMTPHost        string
	SMTPPort        int
	SMTPUsername    string
	SMTPPassword    string
	StoreOwnerEmail string

	Timezone           string
	PickupAddress      string
	VenmoHandle        string
	CORSAllowedOrigins []string
	LogLevel           string

	location *time.Location
}

var configInstance *Config

// Load loads the configuration from environment variables
// It automatically determines which .env file to load based on GO_ENV
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// Try to load environment-specific file first
	envFile := fmt.Sprintf(".env.%s", env)
	if err := godotenv.Load(envFile); err != nil {
		if err := godotenv.Load(); err != nil {
			// In production environment variables are set directly
			log.Printf("No .env file found, using system environment variables")
		}
	} else {
		log.Printf("Loaded configuration from %s", envFile)
	}

	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("SMTP_PORT must be a number: %w", err)
	}

	config := &Config{
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		Port:          getEnv("PORT", "8080"),
		GoEnv:         getEnv("GO_ENV", "development"),
		StorageDriver: strings.ToLower(getEnv("STORAGE_DRIVER", StorageDatabase)),
		StoragePrefix: getEnv("STORAGE_PREFIX", "bakery"),

		Auth0Domain:      getEnv("AUTH0_DOMAIN", ""),
		Auth0Audience:    getEnv("AUTH0_AUDIENCE", ""),
		AdminScope:       getEnv("ADMIN_SCOPE", "manage:store"),
		AdminPassword:    getEnv("ADMIN_PASSWORD", DefaultAdminPassword),
		AdminTokenSecret: getEnv("ADMIN_TOKEN_SECRET", ""),

		AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
		AWSS3Bucket:        getEnv("AWS_S3_BUCKET", ""),
		AWSAccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),

		TwilioAccountSID:  getEnv("TWILIO_ACCOUNT_SID", ""),
		TwilioAuthToken:   getEnv("TWILIO_AUTH_TOKEN", ""),
		TwilioPhoneNumber: getEnv("TWILIO_PHONE_NUMBER", ""),
		StoreOwnerPhone:   getEnv("STORE_OWNER_PHONE", ""),

		SMTPHost:        getEnv("SMTP_HOST", ""),
		SMTPPort:        smtpPort,
		SMTPUsername:    getEnv("SMTP_USERNAME", ""),
		SMTPPassword:    getEnv("SMTP_PASSWORD", ""),
		StoreOwnerEmail: getEnv("STORE_OWNER_EMAIL", ""),

		Timezone:           getEnv("BAKERY_TIMEZONE", "America/Chicago"),
		PickupAddress:      getEnv("PICKUP_ADDRESS", ""),
		VenmoHandle:        getEnv("VENMO_HANDLE", ""),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	SetConfig(config)
	return config, nil
}

// GetConfig returns the loaded configuration
func GetConfig() *Config {
	return configInstance
}

// SetConfig sets the configuration instance (primarily for testing)
func SetConfig(c *Config) {
	configInstance = c
}

// Validate checks that all required configuration values are set
func (c *Config) Validate() error {
	switch c.StorageDriver {
	case StorageDatabase:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when STORAGE_DRIVER is %q", StorageDatabase)
		}
	case StorageS3:
		if c.AWSS3Bucket == "" {
			return fmt.Errorf("AWS_S3_BUCKET is required when STORAGE_DRIVER is %q", StorageS3)
		}
	case StorageMemory:
		if c.IsProduction() {
			return fmt.Errorf("STORAGE_DRIVER %q is not allowed in production", StorageMemory)
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}

	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("invalid BAKERY_TIMEZONE %q: %w", c.Timezone, err)
	}
	c.location = loc

	if c.IsProduction() {
		if c.AdminPassword == "" || c.AdminPassword == DefaultAdminPassword {
			return fmt.Errorf("ADMIN_PASSWORD must be changed from the default in production")
		}
		if !c.Auth0Enabled() && c.AdminTokenSecret == "" {
			return fmt.Errorf("AUTH0_DOMAIN or ADMIN_TOKEN_SECRET is required in production")
		}
	}
	return nil
}

// Location returns the bakery timezone, time.Local until Validate has run
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.Local
	}
	return c.location
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GoEnv == "production"
}

// IsTest returns true if the application is running in test mode
func (c *Config) IsTest() bool {
	return c.GoEnv == "test"
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GoEnv == "development"
}

// Auth0Enabled reports whether admin routes are guarded by Auth0
func (c *Config) Auth0Enabled() bool {
	return c.Auth0Domain != "" && c.Auth0Audience != ""
}

// S3Enabled reports whether a bucket is configured
func (c *Config) S3Enabled() bool {
	return c.AWSS3Bucket != ""
}

// SMSEnabled reports whether Twilio credentials are complete
func (c *Config) SMSEnabled() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != "" && c.TwilioPhoneNumber != ""
}

// MailEnabled reports whether owner e-mail alerts can be sent
func (c *Config) MailEnabled() bool {
	return c.SMTPHost != "" && c.StoreOwnerEmail != ""
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
