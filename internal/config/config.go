package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var ErrEmptyStoragePath = errors.New(
	"error getting SR_STORAGE_PATH: variable not specified or contains an empty string",
)

type Config struct {
	Env         string // Env is the current environment: local, development, production.
	StoragePath string
	HTTP        HTTP
	Auth        Auth
	Analyzer    Analyzer
	Scraper     Scraper
	Tg          Telegram
}

type HTTP struct {
	Addr        string
	CORSOrigins []string
}

type Auth struct {
	Secret   string        // Secret signs bearer tokens. Required by the API server only.
	TokenTTL time.Duration // TokenTTL is the lifetime of an issued access token.
}

type Analyzer struct {
	APIKey  string // APIKey is optional; without it every change gets the fallback verdict.
	Model   string
	Timeout time.Duration
}

type Scraper struct {
	FetchTimeout time.Duration
	ProbeTimeout time.Duration
}

type Telegram struct {
	Token           string        // Token is an unique telegram bot token. Alerts are disabled when empty.
	Timeout         time.Duration // Timeout is a poller timeout duration.
	MinSignificance int           // MinSignificance is the lowest score pushed to subscribers.
}

// MustLoad loads the configuration from environment variables and returns a Config struct.
func MustLoad() *Config {
	// Automatically binds environment variables to config keys
	viper.SetEnvPrefix("SR")
	viper.AutomaticEnv()

	// optional args
	viper.SetDefault("ENV", "production")
	viper.SetDefault("HTTP_ADDR", ":8080")
	viper.SetDefault("CORS_ORIGINS", "*")
	viper.SetDefault("JWT_TTL", "30m")
	viper.SetDefault("ANTHROPIC_MODEL", "claude-sonnet-4-5")
	viper.SetDefault("ANALYZE_TIMEOUT", "60s")
	viper.SetDefault("FETCH_TIMEOUT", "30s")
	viper.SetDefault("PROBE_TIMEOUT", "10s")
	viper.SetDefault("TELEGRAM_TIMEOUT", "15s")
	viper.SetDefault("NOTIFY_MIN_SIGNIFICANCE", 4)

	if viper.GetString("STORAGE_PATH") == "" {
		panic(ErrEmptyStoragePath)
	}

	return &Config{
		Env:         viper.GetString("ENV"),
		StoragePath: viper.GetString("STORAGE_PATH"),
		HTTP: HTTP{
			Addr:        viper.GetString("HTTP_ADDR"),
			CORSOrigins: splitList(viper.GetString("CORS_ORIGINS")),
		},
		Auth: Auth{
			Secret:   viper.GetString("JWT_SECRET"),
			TokenTTL: viper.GetDuration("JWT_TTL"),
		},
		Analyzer: Analyzer{
			APIKey:  viper.GetString("ANTHROPIC_API_KEY"),
			Model:   viper.GetString("ANTHROPIC_MODEL"),
			Timeout: viper.GetDuration("ANALYZE_TIMEOUT"),
		},
		Scraper: Scraper{
			FetchTimeout: viper.GetDuration("FETCH_TIMEOUT"),
			ProbeTimeout: viper.GetDuration("PROBE_TIMEOUT"),
		},
		Tg: Telegram{
			Token:           viper.GetString("TELEGRAM_TOKEN"),
			Timeout:         viper.GetDuration("TELEGRAM_TIMEOUT"),
			MinSignificance: viper.GetInt("NOTIFY_MIN_SIGNIFICANCE"),
		},
	}
}

// splitList splits a comma separated value, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}

	return out
}
