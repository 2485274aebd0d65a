package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// GitHub
	Token   string `envconfig:"GITHUB_TOKEN"`
	PerPage int    `split_words:"true" default:"100" validate:"gt=0,lte=100"`

	// App
	LogLevel string `split_words:"true" default:"info" validate:"oneof=debug info warn error"`

	// Performance tuning
	GithubRateLimit   int           `split_words:"true" default:"80" validate:"gt=0"`
	HTTPClientTimeout time.Duration `split_words:"true" default:"30s" validate:"gt=0"`
	CacheSize         int           `split_words:"true" default:"1000" validate:"gt=0"`
	CacheTTL          time.Duration `split_words:"true" default:"1h" validate:"gt=0"`
}

type Loader struct {
	Prefix   string
	Validate *validator.Validate
}

func NewLoader(prefix string) *Loader {
	return &Loader{Prefix: prefix, Validate: validator.New()}
}

func (l *Loader) Load() (Config, error) {
	var cfg Config

	loadDotEnv()
	if err := envconfig.Process(l.Prefix, &cfg); err != nil {
		return cfg, fmt.Errorf("env load: %w", err)
	}

	if err := l.Validate.Struct(cfg); err != nil {
		return cfg, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// loadDotEnv overlays optional .env files onto the environment. Missing
// files are not an error for a one-shot CLI.
func loadDotEnv() {
	files := []string{".env"}
	if appEnv := strings.TrimSpace(os.Getenv("APP_ENV")); appEnv != "" {
		files = append(files, ".env."+appEnv)
	}

	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		_ = godotenv.Overload(f)
	}
}
