package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/andyle182810/boxsdk/authtoken"
	"github.com/andyle182810/boxsdk/boxresponse"
	"github.com/andyle182810/boxsdk/cache"
	"github.com/andyle182810/boxsdk/config"
	"github.com/andyle182810/boxsdk/files"
	"github.com/andyle182810/boxsdk/goredis"
	"github.com/andyle182810/boxsdk/httpclient"
	"github.com/andyle182810/boxsdk/logutil"
	"github.com/andyle182810/boxsdk/users"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

const (
	metricsNamespace = "boxctl"
	userCacheName    = "users"
)

type app struct {
	cfg     *config.Config
	metrics *prometheus.Registry
	redis   *goredis.Redis
	users   *users.Manager
	files   *files.Manager
}

func newApp(ctx context.Context, logLevel string) (*app, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, err
	}

	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	logutil.Setup(cfg.LogLevel, cfg.LogPretty)

	registry := prometheus.NewRegistry()

	clients := httpclient.NewBoxRegistry(cfg.APIBaseURL, cfg.UploadBaseURL,
		httpclient.WithTimeout(cfg.RequestTimeout),
		httpclient.WithTokenProvider(tokenProvider(cfg)),
		httpclient.WithMaxResponseSize(cfg.MaxResponseSize),
		httpclient.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
		httpclient.WithRetry(httpclient.RetryConfig{
			MaxRetries:   cfg.RetryMaxAttempts,
			InitialDelay: httpclient.DefaultRetryConfig().InitialDelay,
			MaxDelay:     cfg.RetryMaxDelay,
		}),
		httpclient.WithMetrics(httpclient.NewMetrics(registry, metricsNamespace)),
	)

	api := clients.MustClient(httpclient.ServiceAPI)

	application := &app{
		cfg:     cfg,
		metrics: registry,
		redis:   nil,
		users:   nil,
		files:   files.NewManager(api, files.WithUploadClient(clients.MustClient(httpclient.ServiceUpload))),
	}

	var userOpts []users.Option

	if cfg.Redis.Enabled {
		rds, err := goredis.Connect(ctx, &cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to connect user cache: %w", err)
		}

		application.redis = rds
		userOpts = append(userOpts, users.WithCache(cache.New[users.User](rds.Client, userCacheName, cfg.UserCacheTTL)))
	}

	application.users = users.NewManager(api, userOpts...)

	log.Debug().
		Str("api_base_url", cfg.APIBaseURL).
		Str("upload_base_url", cfg.UploadBaseURL).
		Bool("developer_token", cfg.UsesDeveloperToken()).
		Bool("user_cache", cfg.Redis.Enabled).
		Msg("Box client is configured.")

	return application, nil
}

func tokenProvider(cfg *config.Config) httpclient.TokenProvider {
	if cfg.UsesDeveloperToken() {
		return authtoken.NewStatic(cfg.AccessToken)
	}

	opts := []authtoken.Option{
		authtoken.WithTokenURL(cfg.TokenURL),
		authtoken.WithTimeout(cfg.RequestTimeout),
	}

	if cfg.SubjectID != "" {
		opts = append(opts, authtoken.WithSubject(cfg.SubjectType, cfg.SubjectID))
	}

	return authtoken.New(cfg.ClientID, cfg.ClientSecret, opts...)
}

func (a *app) close() {
	if families, err := a.metrics.Gather(); err == nil {
		for _, family := range families {
			log.Debug().
				Str("metric", family.GetName()).
				Int("series", len(family.GetMetric())).
				Msg("Collected client metrics.")
		}
	}

	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close user cache.")
		}
	}
}

// describeError turns failures from the Box error taxonomy into actionable messages.
func describeError(err error) string {
	if rateErr, ok := boxresponse.AsRateLimitError(err); ok {
		return fmt.Sprintf("Box rate limit reached, retry after %ds: %s", rateErr.RetryAfter, rateErr.Message)
	}

	if authErr, ok := boxresponse.AsAuthExpiredError(err); ok {
		return "Box rejected the access token, check BOX_ACCESS_TOKEN or client credentials: " + authErr.Message
	}

	if apiErr, ok := boxresponse.AsAPIError(err); ok {
		msg := fmt.Sprintf("Box API request failed with status %d", apiErr.StatusCode)
		if apiErr.Message != "" {
			msg += ": " + apiErr.Message
		}

		if apiErr.Payload != nil && apiErr.Payload.RequestID != "" {
			msg += " (request id " + apiErr.Payload.RequestID + ")"
		}

		return msg
	}

	if errors.Is(err, config.ErrInvalidConfig) {
		return err.Error() + " (see BOX_* environment variables)"
	}

	return err.Error()
}
