package httpclient

import (
	"maps"
	"net/http"
	"strings"
	"time"

	"github.com/andyle182810/boxsdk/boxresponse"
	"golang.org/x/time/rate"
)

const (
	DefaultTimeout            = 30 * time.Second
	HeaderContentType         = "Content-Type"
	HeaderAccept              = "Accept"
	HeaderXRequestID          = "X-Request-ID"
	HeaderAuthorization       = "Authorization"
	HeaderAsUser              = "As-User"
	ContentTypeJSON           = "application/json"
	ContentTypeFormURLEncoded = "application/x-www-form-urlencoded"
	QueryFields               = "fields"
)

type Option func(*Client)

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if httpClient, ok := c.httpClient.(*http.Client); ok {
			httpClient.Timeout = timeout
		}
	}
}

func WithHTTPClient(httpClient Doer) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

func WithRequestIDKey(key any) Option {
	return func(c *Client) {
		c.requestIDKey = key
	}
}

func WithDefaultHeaders(headers map[string]string) Option {
	return func(c *Client) {
		maps.Copy(c.defaultHeaders, headers)
	}
}

func WithTokenProvider(provider TokenProvider) Option {
	return func(c *Client) {
		c.tokenProvider = provider
	}
}

func WithMaxResponseSize(size int64) Option {
	return func(c *Client) {
		c.maxResponseSize = size
	}
}

func WithConverter(converter boxresponse.Converter) Option {
	return func(c *Client) {
		if converter != nil {
			c.converter = converter
		}
	}
}

// WithRateLimit throttles outgoing requests on the client side.
func WithRateLimit(requestsPerSecond float64, burst int) Option {
	return func(c *Client) {
		if requestsPerSecond <= 0 {
			return
		}

		if burst <= 0 {
			burst = 1
		}

		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
	}
}

func WithRetry(cfg RetryConfig) Option {
	return func(c *Client) {
		c.retry = &cfg
	}
}

func WithMetrics(metrics *Metrics) Option {
	return func(c *Client) {
		c.metrics = metrics
	}
}

type RequestOption func(*requestConfig)

type requestConfig struct {
	headers   map[string]string
	query     map[string]string
	timeout   time.Duration
	requestID string
}

func WithRequestHeader(key, value string) RequestOption {
	return func(rc *requestConfig) {
		if rc.headers == nil {
			rc.headers = make(map[string]string)
		}

		rc.headers[key] = value
	}
}

func WithRequestTimeout(timeout time.Duration) RequestOption {
	return func(rc *requestConfig) {
		rc.timeout = timeout
	}
}

func WithRequestID(requestID string) RequestOption {
	return func(rc *requestConfig) {
		rc.requestID = requestID
	}
}

func WithQuery(key, value string) RequestOption {
	return func(rc *requestConfig) {
		if rc.query == nil {
			rc.query = make(map[string]string)
		}

		rc.query[key] = value
	}
}

func WithQueryParams(params map[string]string) RequestOption {
	return func(rc *requestConfig) {
		if rc.query == nil {
			rc.query = make(map[string]string)
		}

		maps.Copy(rc.query, params)
	}
}

// WithFields limits the response to the given Box fields.
func WithFields(fields ...string) RequestOption {
	if len(fields) == 0 {
		return func(*requestConfig) {}
	}

	return WithQuery(QueryFields, strings.Join(fields, ","))
}

// WithAsUser performs the request on behalf of another enterprise user.
func WithAsUser(userID string) RequestOption {
	if userID == "" {
		return func(*requestConfig) {}
	}

	return WithRequestHeader(HeaderAsUser, userID)
}
