package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/andyle182810/boxsdk/boxresponse"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// TokenProvider supplies bearer credentials for outgoing requests.
type TokenProvider interface {
	GetToken(ctx context.Context) (string, error)
	InvalidateToken()
}

// Refresher is implemented by token providers that know whether invalidating
// their token can yield a different one. Providers without it are assumed to refresh.
type Refresher interface {
	CanRefresh() bool
}

func canRefresh(provider TokenProvider) bool {
	if provider == nil {
		return false
	}

	if r, ok := provider.(Refresher); ok {
		return r.CanRefresh()
	}

	return true
}

var _ Doer = (*http.Client)(nil)

type Client struct {
	baseURL         string
	httpClient      Doer
	requestIDKey    any
	defaultHeaders  map[string]string
	tokenProvider   TokenProvider
	maxResponseSize int64 // 0 means no limit
	converter       boxresponse.Converter
	limiter         *rate.Limiter
	retry           *RetryConfig
	metrics         *Metrics
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{ //nolint:exhaustruct
			Timeout: DefaultTimeout,
		},
		requestIDKey: nil,
		defaultHeaders: map[string]string{
			HeaderContentType: ContentTypeJSON,
			HeaderAccept:      ContentTypeJSON,
		},
		tokenProvider:   nil,
		maxResponseSize: 0,
		converter:       boxresponse.JSONConverter{},
		limiter:         nil,
		retry:           nil,
		metrics:         nil,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Client) Get(ctx context.Context, path string, opts ...RequestOption) (*boxresponse.Exchange, error) {
	return c.Execute(ctx, http.MethodGet, path, nil, opts...)
}

func (c *Client) Post(
	ctx context.Context,
	path string,
	body any,
	opts ...RequestOption,
) (*boxresponse.Exchange, error) {
	return c.Execute(ctx, http.MethodPost, path, body, opts...)
}

func (c *Client) Put(
	ctx context.Context,
	path string,
	body any,
	opts ...RequestOption,
) (*boxresponse.Exchange, error) {
	return c.Execute(ctx, http.MethodPut, path, body, opts...)
}

func (c *Client) Delete(ctx context.Context, path string, opts ...RequestOption) (*boxresponse.Exchange, error) {
	return c.Execute(ctx, http.MethodDelete, path, nil, opts...)
}

// Execute performs one HTTP exchange. Only transport-level problems are
// returned as errors; every status code yields an Exchange.
func (c *Client) Execute(
	ctx context.Context,
	method string,
	path string,
	body any,
	opts ...RequestOption,
) (*boxresponse.Exchange, error) {
	cfg := c.buildRequestConfig(ctx, opts...)

	reqCtx := ctx

	if cfg.timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, cfg.timeout)
		defer cancel()
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(reqCtx); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrRateLimiterWait, err)
		}
	}

	if c.tokenProvider != nil {
		token, err := c.tokenProvider.GetToken(reqCtx)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrAuthFailed, err)
		}

		cfg.headers[HeaderAuthorization] = "Bearer " + token
	}

	req, err := c.buildRequest(reqCtx, method, path, body, cfg)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.observe(method, boxresponse.StatusUnknown, time.Since(start))

		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	exchange, err := c.readExchange(resp)

	if exchange != nil {
		c.metrics.observe(method, exchange.Status, time.Since(start))
	}

	return exchange, err
}

func (c *Client) readExchange(resp *http.Response) (*boxresponse.Exchange, error) {
	body := io.Reader(resp.Body)
	if c.maxResponseSize > 0 {
		body = io.LimitReader(resp.Body, c.maxResponseSize+1)
	}

	bodyBytes, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadResponse, err)
	}

	if c.maxResponseSize > 0 && int64(len(bodyBytes)) > c.maxResponseSize {
		return nil, ErrResponseTooLarge
	}

	return boxresponse.NewExchange(
		resp.StatusCode,
		string(bodyBytes),
		boxresponse.HeadersFromHTTP(resp.Header),
	), nil
}

func (c *Client) buildRequestConfig(ctx context.Context, opts ...RequestOption) *requestConfig {
	cfg := &requestConfig{
		headers:   make(map[string]string),
		query:     nil,
		timeout:   0,
		requestID: "",
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.requestID == "" {
		cfg.requestID = c.extractRequestID(ctx)
	}

	return cfg
}

func (c *Client) extractRequestID(ctx context.Context) string {
	if c.requestIDKey != nil {
		if id, ok := ctx.Value(c.requestIDKey).(string); ok && id != "" {
			return id
		}
	}

	return uuid.New().String()
}

func (c *Client) buildRequest(
	ctx context.Context,
	method string,
	path string,
	body any,
	cfg *requestConfig,
) (*http.Request, error) {
	url := c.buildURL(path, cfg.query)

	bodyReader, contentType, err := encodeBody(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCreateRequest, err)
	}

	for k, v := range c.defaultHeaders {
		req.Header.Set(k, v)
	}

	if contentType != "" {
		req.Header.Set(HeaderContentType, contentType)
	}

	for k, v := range cfg.headers {
		req.Header.Set(k, v)
	}

	if cfg.requestID != "" {
		req.Header.Set(HeaderXRequestID, cfg.requestID)
	}

	return req, nil
}

// RawBody is sent verbatim instead of being JSON encoded. Data is kept as bytes
// so a retried request can send it again.
type RawBody struct {
	ContentType string
	Data        []byte
}

func encodeBody(body any) (io.Reader, string, error) {
	switch b := body.(type) {
	case nil:
		return nil, "", nil
	case RawBody:
		return bytes.NewReader(b.Data), b.ContentType, nil
	case *RawBody:
		if b == nil {
			return nil, "", nil
		}

		return bytes.NewReader(b.Data), b.ContentType, nil
	}

	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrEncodeBody, err)
	}

	return bytes.NewReader(bodyBytes), "", nil
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) buildURL(path string, query map[string]string) string {
	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	fullURL := c.baseURL + path

	if len(query) == 0 {
		return fullURL
	}

	params := url.Values{}
	for k, v := range query {
		params.Add(k, v)
	}

	return fullURL + "?" + params.Encode()
}
