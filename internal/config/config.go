// Package config defines the global configuration structure for the golf
// physics API. Configuration is loaded once at process startup and is
// immutable thereafter. It follows 12-Factor App principles by strictly
// separating code from configuration.
//
// Values are resolved via a priority chain:
//
//	OS Environment (Highest) -> Dotenv File (Lowest)
//
// Any missing required value or invalid format causes the application to
// fail immediately on startup (fail fast).
package config

import (
	"time"

	"golfphysics/internal/types"
)

// SecretString is an alias for types.SecretString, the redacted secret type
// used throughout configuration to prevent accidental logging of sensitive
// values.
type SecretString = types.SecretString

// Config is the top-level configuration struct for the service.
// It is populated once during process initialization and never modified.
// Sub-components receive only the specific config subsets they require.
type Config struct {
	// System Metadata
	Environment string `envconfig:"APP_ENV" validate:"required,oneof=local dev staging prod"`
	Service     string `envconfig:"SERVICE_NAME" default:"golfphysics-api"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	// Domain Configurations
	Server        ServerConfig
	Database      DatabaseConfig
	Redis         RedisConfig
	Weather       WeatherConfig
	Email         EmailConfig
	Billing       BillingConfig
	Security      SecurityConfig
	AWS           AWSConfig
	Observability ObservabilityConfig

	// Build Metadata (Injected via ldflags, not Env)
	Build BuildInfo
}

// ServerConfig holds HTTP server and public URL configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8080"`
	// Public URLs for emails and billing redirects (no trailing slash).
	APIExternalURL string        `envconfig:"API_EXTERNAL_URL" validate:"required,url"`
	DocsURL        string        `envconfig:"DOCS_URL" default:"https://docs.golfphysics.io"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"30s"`
}

// DatabaseConfig holds database connection and pool tuning parameters.
type DatabaseConfig struct {
	URL SecretString `envconfig:"DATABASE_URL" validate:"required,url"`

	// Tuning Parameters
	MaxConns          int           `envconfig:"DB_MAX_CONNS" default:"10"`
	MinConns          int           `envconfig:"DB_MIN_CONNS" default:"2"`
	MaxConnLifetime   time.Duration `envconfig:"DB_MAX_CONN_LIFETIME" default:"30m"`
	AcquireTimeout    time.Duration `envconfig:"DB_ACQUIRE_TIMEOUT" default:"2s"`
	HealthCheckPeriod time.Duration `envconfig:"DB_HEALTH_CHECK_PERIOD" default:"1m"`
}

// RedisConfig holds the rate limiter's Redis connection settings.
// Redis is optional: when Addr is empty, rate limiting fails open and every
// request is allowed.
type RedisConfig struct {
	Addr     string       `envconfig:"REDIS_ADDR"`
	Password SecretString `envconfig:"REDIS_PASSWORD"`
	DB       int          `envconfig:"REDIS_DB" default:"0"`
}

// WeatherConfig holds the upstream weather provider settings.
type WeatherConfig struct {
	APIKey  SecretString  `envconfig:"WEATHER_API_KEY" validate:"required"`
	BaseURL string        `envconfig:"WEATHER_API_BASE_URL" default:"https://api.weatherapi.com/v1"`
	Timeout time.Duration `envconfig:"WEATHER_API_TIMEOUT" default:"10s"`
}

// EmailConfig holds email delivery provider credentials and addressing.
type EmailConfig struct {
	SendGridAPIKey SecretString `envconfig:"SENDGRID_API_KEY" validate:"required"`
	FromAddress    string       `envconfig:"EMAIL_FROM_ADDRESS" default:"api@golfphysics.io"`
	FromName       string       `envconfig:"EMAIL_FROM_NAME" default:"Golf Physics API"`
	AdminAddress   string       `envconfig:"EMAIL_ADMIN_ADDRESS" validate:"required,email"`
	Enabled        bool         `envconfig:"FEATURE_ENABLE_EMAIL" default:"true"`
}

// BillingConfig holds Stripe payment integration credentials.
// PriceIDs maps plan tier names to Stripe Price IDs as JSON, for example
// {"starter":"price_123","professional":"price_456"}.
type BillingConfig struct {
	StripeSecretKey     SecretString `envconfig:"STRIPE_SECRET_KEY" validate:"required"`
	StripeWebhookSecret SecretString `envconfig:"STRIPE_WEBHOOK_SECRET" validate:"required"`
	PriceIDs            string       `envconfig:"STRIPE_PRICE_IDS_JSON" validate:"required,json"`
}

// SecurityConfig holds admin access, reCAPTCHA, and CORS settings.
// AdminKeyHash is a bcrypt hash of the operator key, generated with
// cmd/ops/keygen; the plaintext never touches configuration.
type SecurityConfig struct {
	AdminKeyHash       SecretString `envconfig:"ADMIN_KEY_HASH" validate:"required"`
	RecaptchaSecret    SecretString `envconfig:"RECAPTCHA_SECRET"`
	CorsAllowedOrigins []string     `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
}

// AWSConfig holds AWS resource identifiers and regional configuration.
type AWSConfig struct {
	Region        string `envconfig:"AWS_REGION" default:"us-east-1"`
	EmailQueueURL string `envconfig:"SQS_EMAIL_QUEUE" validate:"required,url"`

	// LocalStack Support (Empty in Prod)
	EndpointURL string `envconfig:"AWS_ENDPOINT_URL"`
}

// ObservabilityConfig holds telemetry and monitoring settings.
type ObservabilityConfig struct {
	MetricNamespace string `envconfig:"METRIC_NAMESPACE" default:"GolfPhysics"`
	EnableMetrics   bool   `envconfig:"ENABLE_METRICS" default:"true"`
}

// BuildInfo holds build-time metadata injected via ldflags.
// These values are NOT populated from environment variables.
type BuildInfo struct {
	Version   string
	Commit    string
	BuildTime string
}

// ConfigErrorType categorizes configuration loading failures to aid debugging.
type ConfigErrorType string

const (
	// ErrMissingEnv indicates a required environment variable was not found.
	ErrMissingEnv ConfigErrorType = "MISSING_ENV"
	// ErrValidation indicates the configuration failed struct validation rules.
	ErrValidation ConfigErrorType = "VALIDATION_FAILED"
	// ErrParsing indicates a failure when parsing environment variable values
	// into their target types.
	ErrParsing ConfigErrorType = "PARSING_FAILED"
)
