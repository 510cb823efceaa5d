package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// Credential config
	JWTSecret                  string
	JWTExpiryDuration          time.Duration
	JWTIssuer                  string
	RefreshTokenSecret         string
	RefreshTokenExpiryDuration time.Duration

	// Cookie / CORS config
	AccessTokenCookieName  string
	RefreshTokenCookieName string
	CookieDomain           string
	CORSAllowedOrigins     []string

	// Login protection
	LockoutThreshold    int
	LockoutDuration     time.Duration
	VerificationCodeTTL time.Duration

	// Rate limits, in ulule/limiter format (e.g. "300-M")
	RateLimitGlobal    string
	RateLimitAuth      string
	RateLimitAssistant string

	// Mail collaborator; mail is disabled when SMTPHost is empty
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	// Assistant collaborator; disabled when MistralAPIKey is empty
	MistralAPIKey string
	MistralModel  string

	// Analytics collaborator; disabled when PosthogAPIKey is empty
	PosthogAPIKey   string
	PosthogEndpoint string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "15m")
	viper.SetDefault("JWT_ISSUER", "transg")
	viper.SetDefault("REFRESH_TOKEN_SECRET", "default_insecure_refresh_secret_please_change_this_!@#$")
	viper.SetDefault("REFRESH_TOKEN_EXPIRY_DURATION", "168h")
	viper.SetDefault("ACCESS_TOKEN_COOKIE_NAME", "accessToken")
	viper.SetDefault("REFRESH_TOKEN_COOKIE_NAME", "refreshToken")
	viper.SetDefault("COOKIE_DOMAIN", "")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("LOCKOUT_THRESHOLD", 5)
	viper.SetDefault("LOCKOUT_DURATION", "15m")
	viper.SetDefault("VERIFICATION_CODE_TTL", "15m")
	viper.SetDefault("RATE_LIMIT_GLOBAL", "300-M")
	viper.SetDefault("RATE_LIMIT_AUTH", "10-M")
	viper.SetDefault("RATE_LIMIT_ASSISTANT", "5-M")
	viper.SetDefault("SMTP_HOST", "")
	viper.SetDefault("SMTP_PORT", "587")
	viper.SetDefault("SMTP_USERNAME", "")
	viper.SetDefault("SMTP_PASSWORD", "")
	viper.SetDefault("SMTP_FROM", "")
	viper.SetDefault("MISTRAL_API_KEY", "")
	viper.SetDefault("MISTRAL_MODEL", "mistral-small-latest")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("POSTHOG_ENDPOINT", "https://us.i.posthog.com")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" && cfg.IsProduction {
		log.Println("Warning: JWT_SECRET is the default insecure key. THIS IS NOT FOR PRODUCTION.")
	}
	cfg.JWTExpiryDuration = durationOrDefault("JWT_EXPIRY_DURATION", 15*time.Minute)
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.RefreshTokenSecret = viper.GetString("REFRESH_TOKEN_SECRET")
	if cfg.RefreshTokenSecret == cfg.JWTSecret {
		// The two secrets must differ so a refresh credential can never pass
		// as an access credential.
		log.Println("Warning: REFRESH_TOKEN_SECRET equals JWT_SECRET. Refresh tokens must use their own secret.")
	}
	cfg.RefreshTokenExpiryDuration = durationOrDefault("REFRESH_TOKEN_EXPIRY_DURATION", 7*24*time.Hour)

	cfg.AccessTokenCookieName = viper.GetString("ACCESS_TOKEN_COOKIE_NAME")
	cfg.RefreshTokenCookieName = viper.GetString("REFRESH_TOKEN_COOKIE_NAME")
	cfg.CookieDomain = viper.GetString("COOKIE_DOMAIN")
	cfg.CORSAllowedOrigins = splitAndTrim(viper.GetString("CORS_ALLOWED_ORIGINS"))

	cfg.LockoutThreshold = viper.GetInt("LOCKOUT_THRESHOLD")
	if cfg.LockoutThreshold <= 0 {
		cfg.LockoutThreshold = 5
	}
	cfg.LockoutDuration = durationOrDefault("LOCKOUT_DURATION", 15*time.Minute)
	cfg.VerificationCodeTTL = durationOrDefault("VERIFICATION_CODE_TTL", 15*time.Minute)

	cfg.RateLimitGlobal = viper.GetString("RATE_LIMIT_GLOBAL")
	cfg.RateLimitAuth = viper.GetString("RATE_LIMIT_AUTH")
	cfg.RateLimitAssistant = viper.GetString("RATE_LIMIT_ASSISTANT")

	cfg.SMTPHost = viper.GetString("SMTP_HOST")
	cfg.SMTPPort = viper.GetString("SMTP_PORT")
	cfg.SMTPUsername = viper.GetString("SMTP_USERNAME")
	cfg.SMTPPassword = viper.GetString("SMTP_PASSWORD")
	cfg.SMTPFrom = viper.GetString("SMTP_FROM")
	if cfg.SMTPHost == "" {
		log.Println("Warning: SMTP_HOST not set. Outgoing mail is disabled; verification codes will only be logged.")
	}

	cfg.MistralAPIKey = viper.GetString("MISTRAL_API_KEY")
	cfg.MistralModel = viper.GetString("MISTRAL_MODEL")

	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")
	cfg.PosthogEndpoint = viper.GetString("POSTHOG_ENDPOINT")

	return cfg, nil
}

// durationOrDefault parses a duration env value, falling back with a warning on
// anything unparseable.
func durationOrDefault(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback)
		}
		return fallback
	}
	return d
}

func splitAndTrim(csv string) []string {
	parts := strings.Split(csv, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
