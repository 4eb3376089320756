// Package config loads application settings from a .env file and environment variables.
// Environment variables always take precedence over .env file values.
package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	// PostgreSQL – either set DatabaseURL directly, or the individual fields.
	DatabaseURL  string
	DBUser       string
	DBPass       string
	DBHost       string
	DBPort       string
	DBName       string
	DBSSLMode    string
	MaxOpenConns int
	QueryTimeout time.Duration

	// Server
	Debug       bool
	LogLevel    string
	Port        string
	TLSDomains  []string
	CORSOrigins []string

	Search Search
}

// Search holds query validation and paging limits.
type Search struct {
	MinQueryLength      int
	DefaultLimit        int
	MaxLimit            int
	SuggestDefaultLimit int
	MatchesDefaultLimit int
	MatchesMaxLimit     int
}

// Load reads configuration from a .env file (if present) and then from
// environment variables. Environment variables always win.
func Load() *Config {
	cfg, err := load(newViper())
	if err != nil {
		log.Fatal(err)
	}
	return cfg
}

func load(v *viper.Viper) (*Config, error) {
	// Defaults
	v.SetDefault("DB_USER", "wrestle")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "wrestling")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_QUERY_TIMEOUT", "5s")
	v.SetDefault("PORT", ":9000")
	v.SetDefault("TLS_DOMAINS", "")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_LEVEL", "")
	v.SetDefault("SEARCH_MIN_QUERY_LENGTH", 2)
	v.SetDefault("SEARCH_DEFAULT_LIMIT", 20)
	v.SetDefault("SEARCH_MAX_LIMIT", 50)
	v.SetDefault("SUGGEST_DEFAULT_LIMIT", 10)
	v.SetDefault("MATCHES_DEFAULT_LIMIT", 100)
	v.SetDefault("MATCHES_MAX_LIMIT", 500)

	cfg := &Config{
		DatabaseURL:  v.GetString("DATABASE_URL"),
		DBUser:       v.GetString("DB_USER"),
		DBPass:       v.GetString("DB_PASS"),
		DBHost:       v.GetString("DB_HOST"),
		DBPort:       v.GetString("DB_PORT"),
		DBName:       v.GetString("DB_NAME"),
		DBSSLMode:    v.GetString("DB_SSLMODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		QueryTimeout: v.GetDuration("DB_QUERY_TIMEOUT"),
		Debug:        v.GetBool("DEBUG"),
		LogLevel:     v.GetString("LOG_LEVEL"),
		Port:         v.GetString("PORT"),
		TLSDomains:   splitTrimmed(v.GetString("TLS_DOMAINS")),
		CORSOrigins:  splitTrimmed(v.GetString("CORS_ORIGINS")),
		Search: Search{
			MinQueryLength:      v.GetInt("SEARCH_MIN_QUERY_LENGTH"),
			DefaultLimit:        v.GetInt("SEARCH_DEFAULT_LIMIT"),
			MaxLimit:            v.GetInt("SEARCH_MAX_LIMIT"),
			SuggestDefaultLimit: v.GetInt("SUGGEST_DEFAULT_LIMIT"),
			MatchesDefaultLimit: v.GetInt("MATCHES_DEFAULT_LIMIT"),
			MatchesMaxLimit:     v.GetInt("MATCHES_MAX_LIMIT"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// PostgresDSN returns the full PostgreSQL connection string.
// DATABASE_URL takes precedence over individual fields.
func (c *Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser,
		c.DBPass,
		c.DBHost,
		c.DBPort,
		c.DBName,
		c.DBSSLMode,
	)
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" && c.DBPass == "" {
		return ErrNoDSN
	}
	s := c.Search
	for name, n := range map[string]int{
		"SEARCH_DEFAULT_LIMIT":  s.DefaultLimit,
		"SEARCH_MAX_LIMIT":      s.MaxLimit,
		"SUGGEST_DEFAULT_LIMIT": s.SuggestDefaultLimit,
		"MATCHES_DEFAULT_LIMIT": s.MatchesDefaultLimit,
		"MATCHES_MAX_LIMIT":     s.MatchesMaxLimit,
		"DB_MAX_OPEN_CONNS":     c.MaxOpenConns,
	} {
		if n <= 0 {
			return fmt.Errorf("%w: %s=%d", ErrInvalidLimit, name, n)
		}
	}
	if s.MinQueryLength < 1 {
		return fmt.Errorf("%w: SEARCH_MIN_QUERY_LENGTH=%d", ErrInvalidLimit, s.MinQueryLength)
	}
	if c.QueryTimeout <= 0 {
		return fmt.Errorf("%w: DB_QUERY_TIMEOUT=%s", ErrInvalidLimit, c.QueryTimeout)
	}
	return nil
}

func newViper() *viper.Viper {
	// Silently load .env – OK if the file doesn't exist (production uses real env vars).
	if err := godotenv.Load(); err != nil {
		log.Println("config: no .env file found, using environment variables only")
	}

	v := viper.New()
	v.AutomaticEnv()
	return v
}

func splitTrimmed(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
