package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/andyle182810/boxsdk/goredis"
	"github.com/andyle182810/boxsdk/validator"
	"github.com/caarlos0/env/v11"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	// Application
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogPretty bool   `env:"LOG_PRETTY" envDefault:"false"`

	// Box endpoints
	APIBaseURL    string `env:"BOX_API_BASE_URL"    envDefault:"https://api.box.com/2.0"        validate:"required,url"`
	UploadBaseURL string `env:"BOX_UPLOAD_BASE_URL" envDefault:"https://upload.box.com/api/2.0" validate:"required,url"`
	TokenURL      string `env:"BOX_TOKEN_URL"       envDefault:"https://api.box.com/oauth2/token" validate:"required,url"`

	// Box credentials. AccessToken (developer token) bypasses the client credentials grant.
	ClientID     string `env:"BOX_CLIENT_ID"     validate:"required_without=AccessToken"`
	ClientSecret string `env:"BOX_CLIENT_SECRET" validate:"required_without=AccessToken"`
	SubjectType  string `env:"BOX_SUBJECT_TYPE"  envDefault:"enterprise" validate:"omitempty,oneof=enterprise user"`
	SubjectID    string `env:"BOX_SUBJECT_ID"    validate:"omitempty,boxid"`
	AccessToken  string `env:"BOX_ACCESS_TOKEN"`

	// Transport
	RequestTimeout   time.Duration `env:"BOX_REQUEST_TIMEOUT"    envDefault:"30s"  validate:"gt=0"`
	MaxResponseSize  int64         `env:"BOX_MAX_RESPONSE_SIZE"  envDefault:"52428800" validate:"gt=0"`
	RateLimitRPS     float64       `env:"BOX_RATE_LIMIT_RPS"     envDefault:"10"   validate:"gte=0"`
	RateLimitBurst   int           `env:"BOX_RATE_LIMIT_BURST"   envDefault:"10"   validate:"gte=0"`
	RetryMaxAttempts uint64        `env:"BOX_RETRY_MAX_ATTEMPTS" envDefault:"3"`
	RetryMaxDelay    time.Duration `env:"BOX_RETRY_MAX_DELAY"    envDefault:"60s"  validate:"gte=0"`

	// User cache (Redis)
	Redis        goredis.Config `envPrefix:"REDIS_"`
	UserCacheTTL time.Duration  `env:"USER_CACHE_TTL" envDefault:"10m" validate:"gt=0"`
}

func New() (*Config, error) {
	return Parse(env.Options{}) //nolint:exhaustruct
}

// Parse reads the configuration with explicit env options, mainly so tests can
// supply their own Environment map.
func Parse(opts env.Options) (*Config, error) {
	var cfg Config

	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validator.New().Validate(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return &cfg, nil
}

func (c *Config) UsesDeveloperToken() bool {
	return c.AccessToken != ""
}
