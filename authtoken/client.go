package authtoken

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
)

var (
	ErrTokenRequestFailed = errors.New("authtoken: token request failed")
	ErrNoAccessToken      = errors.New("authtoken: no access token in response")
)

const (
	DefaultTimeout       = 10 * time.Second
	DefaultTokenURL      = "https://api.box.com/oauth2/token"
	SubjectEnterprise    = "enterprise"
	SubjectUser          = "user"
	tokenExpiryBuffer    = 30 * time.Second
	contentTypeForm      = "application/x-www-form-urlencoded"
	grantTypeCredentials = "client_credentials"
)

//nolint:tagliatelle // Box OAuth2 returns snake_case
type TokenResponse struct {
	AccessToken  string   `json:"access_token"`
	TokenType    string   `json:"token_type"`
	ExpiresIn    int      `json:"expires_in"`
	RestrictedTo []string `json:"restricted_to"`
}

//nolint:tagliatelle // Box OAuth2 returns snake_case
type OAuthError struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// Client obtains and caches Box access tokens through the Client Credentials Grant.
type Client struct {
	tokenURL     string
	clientID     string
	clientSecret string
	subjectType  string
	subjectID    string
	restyClient  *resty.Client

	mu          sync.RWMutex
	accessToken string
	expiresAt   time.Time
}

func New(clientID, clientSecret string, opts ...Option) *Client {
	c := &Client{
		tokenURL:     DefaultTokenURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		subjectType:  "",
		subjectID:    "",
		restyClient:  createDefaultRestyClient(),
		mu:           sync.RWMutex{},
		accessToken:  "",
		expiresAt:    time.Time{},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Client) GetToken(ctx context.Context) (string, error) {
	c.mu.RLock()
	if c.accessToken != "" && time.Now().Before(c.expiresAt) {
		token := c.accessToken
		c.mu.RUnlock()

		return token, nil
	}
	c.mu.RUnlock()

	return c.refreshToken(ctx)
}

func (c *Client) refreshToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check after acquiring write lock (another goroutine might have refreshed)
	if c.accessToken != "" && time.Now().Before(c.expiresAt) {
		return c.accessToken, nil
	}

	tokenResp, err := c.fetchToken(ctx)
	if err != nil {
		return "", err
	}

	c.accessToken = tokenResp.AccessToken
	c.expiresAt = time.Now().Add(time.Duration(tokenResp.ExpiresIn)*time.Second - tokenExpiryBuffer)

	log.Debug().
		Str("subject_type", c.subjectType).
		Time("expires_at", c.expiresAt).
		Msg("Box access token refreshed.")

	return c.accessToken, nil
}

func (c *Client) fetchToken(ctx context.Context) (*TokenResponse, error) {
	formData := map[string]string{
		"grant_type":    grantTypeCredentials,
		"client_id":     c.clientID,
		"client_secret": c.clientSecret,
	}

	if c.subjectType != "" {
		formData["box_subject_type"] = c.subjectType
		formData["box_subject_id"] = c.subjectID
	}

	var tokenResp TokenResponse

	var tokenErr OAuthError

	resp, err := c.restyClient.R().
		SetContext(ctx).
		SetFormData(formData).
		SetResult(&tokenResp).
		SetError(&tokenErr).
		Post(c.tokenURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch token: %w", err)
	}

	if !resp.IsSuccess() {
		return nil, fmt.Errorf("%w: status %d, error=%s, description=%s",
			ErrTokenRequestFailed, resp.StatusCode(), tokenErr.Error, tokenErr.ErrorDescription)
	}

	if tokenResp.AccessToken == "" {
		return nil, ErrNoAccessToken
	}

	return &tokenResp, nil
}

func (c *Client) InvalidateToken() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.accessToken = ""
	c.expiresAt = time.Time{}
}

func createDefaultRestyClient() *resty.Client {
	return resty.New().
		SetTimeout(DefaultTimeout).
		SetHeader("Content-Type", contentTypeForm).
		SetHeader("Accept", "application/json")
}
