// Package config builds the immutable runtime configuration once at startup.
// Values come from the process environment, optionally seeded from a .env
// file, with defaults suited to local development.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port string

	DatabaseURL   string
	DBAutoMigrate bool
	DBMaxOpen     int
	DBMaxIdle     int

	JWTSecret string
	JWTTTL    time.Duration

	FrontendURL       string
	CORSOrigins       []string
	OAuthRedirectBase string
	Google            OAuthClient
	Facebook          OAuthClient

	UploadDir     string
	PublicBaseURL string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	KafkaBrokers    []string
	KafkaOrderTopic string

	LogLevel  string
	LogFormat string
}

type OAuthClient struct {
	ClientID     string
	ClientSecret string
}

func (c OAuthClient) Enabled() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8000")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "lumariya")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_AUTO_MIGRATE", false)
	v.SetDefault("DB_MAX_OPEN_CONNS", 20)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("JWT_TTL", "24h")
	v.SetDefault("FRONTEND_URL", "http://localhost:3000")
	v.SetDefault("UPLOAD_DIR", "static/uploads")
	v.SetDefault("PUBLIC_BASE_URL", "http://localhost:8000")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("KAFKA_ORDER_TOPIC", "lumariya.orders")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

// Load reads .env (if present) and the environment into a Config.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)
	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	ttl, err := time.ParseDuration(v.GetString("JWT_TTL"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL: %w", err)
	}

	cfg := &Config{
		Port:          v.GetString("PORT"),
		DatabaseURL:   v.GetString("DATABASE_URL"),
		DBAutoMigrate: v.GetBool("DB_AUTO_MIGRATE"),
		DBMaxOpen:     v.GetInt("DB_MAX_OPEN_CONNS"),
		DBMaxIdle:     v.GetInt("DB_MAX_IDLE_CONNS"),
		JWTSecret:     v.GetString("JWT_SECRET"),
		JWTTTL:        ttl,
		FrontendURL:   strings.TrimRight(v.GetString("FRONTEND_URL"), "/"),
		Google: OAuthClient{
			ClientID:     v.GetString("GOOGLE_CLIENT_ID"),
			ClientSecret: v.GetString("GOOGLE_CLIENT_SECRET"),
		},
		Facebook: OAuthClient{
			ClientID:     v.GetString("FACEBOOK_CLIENT_ID"),
			ClientSecret: v.GetString("FACEBOOK_CLIENT_SECRET"),
		},
		UploadDir:       v.GetString("UPLOAD_DIR"),
		PublicBaseURL:   strings.TrimRight(v.GetString("PUBLIC_BASE_URL"), "/"),
		RedisAddr:       v.GetString("REDIS_ADDR"),
		RedisPassword:   v.GetString("REDIS_PASSWORD"),
		RedisDB:         v.GetInt("REDIS_DB"),
		KafkaBrokers:    splitCSV(v.GetString("KAFKA_BROKERS")),
		KafkaOrderTopic: v.GetString("KAFKA_ORDER_TOPIC"),
		LogLevel:        v.GetString("LOG_LEVEL"),
		LogFormat:       v.GetString("LOG_FORMAT"),
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = fmt.Sprintf(
			"postgres://%s:%s@%s:%s/%s?sslmode=%s",
			v.GetString("DB_USER"), v.GetString("DB_PASSWORD"),
			v.GetString("DB_HOST"), v.GetString("DB_PORT"),
			v.GetString("DB_NAME"), v.GetString("DB_SSLMODE"),
		)
	}

	cfg.OAuthRedirectBase = strings.TrimRight(v.GetString("OAUTH_REDIRECT_BASE"), "/")
	if cfg.OAuthRedirectBase == "" {
		cfg.OAuthRedirectBase = cfg.PublicBaseURL
	}

	cfg.CORSOrigins = splitCSV(v.GetString("CORS_ORIGINS"))
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{cfg.FrontendURL, "http://localhost:3000", "http://127.0.0.1:3000"}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set")
	}
	if c.JWTTTL <= 0 {
		return errors.New("JWT_TTL must be positive")
	}
	return nil
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
