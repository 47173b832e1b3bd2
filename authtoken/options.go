package authtoken

import (
	"time"

	"github.com/go-resty/resty/v2"
)

type Option func(*Client)

func WithTokenURL(tokenURL string) Option {
	return func(c *Client) {
		if tokenURL != "" {
			c.tokenURL = tokenURL
		}
	}
}

// WithSubject selects whose token is issued: the enterprise service account
// or a managed user.
func WithSubject(subjectType, subjectID string) Option {
	return func(c *Client) {
		c.subjectType = subjectType
		c.subjectID = subjectID
	}
}

func WithRestyClient(restyClient *resty.Client) Option {
	return func(c *Client) {
		if restyClient != nil {
			c.restyClient = restyClient
		}
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.restyClient.SetTimeout(timeout)
		}
	}
}
