package authtoken

import "context"

// Static serves a fixed developer token. It cannot refresh, so invalidation is a no-op.
type Static struct {
	token string
}

func NewStatic(token string) *Static {
	return &Static{token: token}
}

func (s *Static) GetToken(context.Context) (string, error) {
	if s.token == "" {
		return "", ErrNoAccessToken
	}

	return s.token, nil
}

func (s *Static) InvalidateToken() {}

// CanRefresh reports false: a rejected developer token stays rejected.
func (s *Static) CanRefresh() bool {
	return false
}
