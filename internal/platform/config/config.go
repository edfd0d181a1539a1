package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Organization holds the issuer identity printed on every document.
type Organization struct {
	Name            string
	TaxID           string
	TradeRegistryID string
	Address         string
	Email           string
	Phone           string
	Website         string
	LogoURL         string
	Currency        string
	Locale          string
}

// SMTP holds outgoing mail settings. An empty Host disables delivery.
type SMTP struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
	Timeout  time.Duration
}

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	JWTSecret     string
	JWTIssuer     string

	CORSAllowedOrigins []string
	RateLimitSend      string

	RedisURL      string
	StatsCacheTTL time.Duration

	Organization       Organization
	TaxExemptionNotice string
	AssetFetchTimeout  time.Duration
	AWSRegion          string

	SMTP SMTP
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_ISSUER", "docflow")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("RATE_LIMIT_SEND", "20-M")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("STATS_CACHE_TTL", "30s")
	viper.SetDefault("ORG_NAME", "")
	viper.SetDefault("ORG_TAX_ID", "")
	viper.SetDefault("ORG_TRADE_REGISTRY_ID", "")
	viper.SetDefault("ORG_ADDRESS", "")
	viper.SetDefault("ORG_EMAIL", "")
	viper.SetDefault("ORG_PHONE", "")
	viper.SetDefault("ORG_WEBSITE", "")
	viper.SetDefault("ORG_LOGO_URL", "")
	viper.SetDefault("ORG_CURRENCY", "RON")
	viper.SetDefault("ORG_LOCALE", "en")
	viper.SetDefault("TAX_EXEMPTION_NOTICE", "")
	viper.SetDefault("ASSET_FETCH_TIMEOUT", "3s")
	viper.SetDefault("AWS_REGION", "eu-central-1")
	viper.SetDefault("SMTP_HOST", "")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("SMTP_USERNAME", "")
	viper.SetDefault("SMTP_PASSWORD", "")
	viper.SetDefault("SMTP_FROM", "")
	viper.SetDefault("SMTP_FROM_NAME", "")
	viper.SetDefault("SMTP_TIMEOUT", "10s")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))
	cfg.RateLimitSend = viper.GetString("RATE_LIMIT_SEND")
	cfg.RedisURL = viper.GetString("REDIS_URL")
	cfg.StatsCacheTTL = durationOr("STATS_CACHE_TTL", 30*time.Second)

	cfg.Organization = Organization{
		Name:            viper.GetString("ORG_NAME"),
		TaxID:           viper.GetString("ORG_TAX_ID"),
		TradeRegistryID: viper.GetString("ORG_TRADE_REGISTRY_ID"),
		Address:         viper.GetString("ORG_ADDRESS"),
		Email:           viper.GetString("ORG_EMAIL"),
		Phone:           viper.GetString("ORG_PHONE"),
		Website:         viper.GetString("ORG_WEBSITE"),
		LogoURL:         viper.GetString("ORG_LOGO_URL"),
		Currency:        viper.GetString("ORG_CURRENCY"),
		Locale:          viper.GetString("ORG_LOCALE"),
	}
	if cfg.Organization.Name == "" {
		log.Println("Warning: ORG_NAME not set. Documents will carry no issuer name.")
	}
	cfg.TaxExemptionNotice = viper.GetString("TAX_EXEMPTION_NOTICE")
	cfg.AssetFetchTimeout = durationOr("ASSET_FETCH_TIMEOUT", 3*time.Second)
	cfg.AWSRegion = viper.GetString("AWS_REGION")

	cfg.SMTP = SMTP{
		Host:     viper.GetString("SMTP_HOST"),
		Port:     viper.GetInt("SMTP_PORT"),
		Username: viper.GetString("SMTP_USERNAME"),
		Password: viper.GetString("SMTP_PASSWORD"),
		From:     viper.GetString("SMTP_FROM"),
		FromName: viper.GetString("SMTP_FROM_NAME"),
		Timeout:  durationOr("SMTP_TIMEOUT", 10*time.Second),
	}
	if cfg.SMTP.Host == "" {
		log.Println("Warning: SMTP_HOST not set. Emails will be logged instead of delivered.")
	}

	return cfg, nil
}

func durationOr(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback)
		}
		return fallback
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
