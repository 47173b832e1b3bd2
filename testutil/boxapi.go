package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// BoxServer is an in-process stand-in for the Box REST API.
type BoxServer struct {
	*httptest.Server

	mu       sync.Mutex
	mux      *http.ServeMux
	requests []*http.Request
}

func NewBoxServer(t *testing.T) *BoxServer {
	t.Helper()

	srv := &BoxServer{
		Server:   nil,
		mu:       sync.Mutex{},
		mux:      http.NewServeMux(),
		requests: nil,
	}

	srv.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		srv.mu.Lock()
		srv.requests = append(srv.requests, r.Clone(r.Context()))
		srv.mu.Unlock()

		srv.mux.ServeHTTP(w, r)
	}))

	t.Cleanup(srv.Close)

	return srv
}

// Handle registers handler for an http.ServeMux pattern such as "GET /users/{id}".
func (s *BoxServer) Handle(pattern string, handler http.HandlerFunc) {
	s.mux.HandleFunc(pattern, handler)
}

func (s *BoxServer) Requests() []*http.Request {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]*http.Request(nil), s.requests...)
}

func (s *BoxServer) RequestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.requests)
}

func WriteJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	require.NoError(t, json.NewEncoder(w).Encode(body))
}

// WriteBoxError writes an error body shaped like the ones Box returns.
func WriteBoxError(t *testing.T, w http.ResponseWriter, status int, code, message string) {
	t.Helper()

	WriteJSON(t, w, status, map[string]any{
		"type":       "error",
		"status":     status,
		"code":       code,
		"message":    message,
		"request_id": RandomString(12),
	})
}

func WriteRateLimited(t *testing.T, w http.ResponseWriter, retryAfter int) {
	t.Helper()

	w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
	WriteBoxError(t, w, http.StatusTooManyRequests, "rate_limit_exceeded", "Request rate limit exceeded")
}
