package users

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/andyle182810/boxsdk/cache"
	"github.com/andyle182810/boxsdk/httpclient"
	"github.com/andyle182810/boxsdk/pagination"
	"github.com/andyle182810/boxsdk/validator"
	"github.com/andyle182810/boxsdk/workerpool"
	"github.com/rs/zerolog/log"
)

const (
	usersPath       = "/users"
	currentUserPath = "/users/me"

	queryOffset     = "offset"
	queryLimit      = "limit"
	queryFilterTerm = "filter_term"
	queryUserType   = "user_type"

	defaultLookupWorkers = 4
)

// Manager exposes the Box user endpoints.
type Manager struct {
	client    *httpclient.Client
	cache     *cache.Cache[User]
	validator *validator.Validator
	pool      *workerpool.WorkerPool
}

type Option func(*Manager)

// WithCache enables a read-through cache for GetUser lookups without field selection.
func WithCache(c *cache.Cache[User]) Option {
	return func(m *Manager) {
		m.cache = c
	}
}

func WithWorkerPool(pool *workerpool.WorkerPool) Option {
	return func(m *Manager) {
		if pool != nil {
			m.pool = pool
		}
	}
}

func NewManager(client *httpclient.Client, opts ...Option) *Manager {
	m := &Manager{
		client:    client,
		cache:     nil,
		validator: validator.New(),
		pool: workerpool.New(
			workerpool.WithName("user-lookup"),
			workerpool.WithWorkerCount(defaultLookupWorkers),
		),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// GetCurrentUser returns the user the access token was issued for.
func (m *Manager) GetCurrentUser(ctx context.Context, fields ...string) (*User, error) {
	return m.fetch(ctx, currentUserPath, fields...)
}

func (m *Manager) GetUser(ctx context.Context, id string, fields ...string) (*User, error) {
	if !validator.IsBoxID(id) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidUserID, id)
	}

	path := userPath(id)

	if m.cache == nil || len(fields) > 0 {
		return m.fetch(ctx, path, fields...)
	}

	return m.cache.GetOrLoad(ctx, id, func(ctx context.Context) (*User, error) {
		return m.fetch(ctx, path)
	})
}

// UpdateUser changes a user's attributes. Only enterprise admins may call it.
func (m *Manager) UpdateUser(ctx context.Context, req UpdateRequest, fields ...string) (*User, error) {
	if err := m.validator.Validate(&req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	user, err := httpclient.PutJSON[User](ctx, m.client, userPath(req.ID), req, httpclient.WithFields(fields...))
	if err != nil {
		return nil, err
	}

	if user == nil {
		return nil, ErrEmptyResponse
	}

	if m.cache != nil {
		if err := m.cache.Delete(ctx, req.ID); err != nil {
			log.Warn().Err(err).Str("user_id", req.ID).Msg("Failed to evict updated user from cache.")
		}
	}

	return user, nil
}

// ListEnterpriseUsers returns one page of the enterprise's users.
func (m *Manager) ListEnterpriseUsers(ctx context.Context, opts ListOptions) (*Page, error) {
	if err := m.validator.Validate(&opts); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	offset, limit := pagination.Normalize(opts.Offset, opts.Limit)

	reqOpts := []httpclient.RequestOption{
		httpclient.WithQuery(queryOffset, strconv.Itoa(offset)),
		httpclient.WithQuery(queryLimit, strconv.Itoa(limit)),
		httpclient.WithFields(opts.Fields...),
	}

	if opts.FilterTerm != "" {
		reqOpts = append(reqOpts, httpclient.WithQuery(queryFilterTerm, opts.FilterTerm))
	}

	if opts.UserType != "" {
		reqOpts = append(reqOpts, httpclient.WithQuery(queryUserType, opts.UserType))
	}

	coll, err := httpclient.GetJSON[collection](ctx, m.client, usersPath, reqOpts...)
	if err != nil {
		return nil, err
	}

	if coll == nil {
		return nil, ErrEmptyResponse
	}

	if coll.Limit > 0 {
		limit = coll.Limit
	}

	entries := coll.Entries
	if entries == nil {
		entries = []User{}
	}

	return &Page{
		Entries:    entries,
		TotalCount: coll.TotalCount,
		Offset:     coll.Offset,
		Limit:      limit,
		TotalPages: pagination.ComputeTotals(coll.TotalCount, limit),
		HasMore:    pagination.HasMore(coll.Offset, limit, coll.TotalCount),
	}, nil
}

// GetUsers looks up several users concurrently. The returned slice follows the
// order of ids; entries whose lookup failed are nil and their errors are joined.
func (m *Manager) GetUsers(ctx context.Context, ids ...string) ([]*User, error) {
	results := workerpool.Run(ctx, m.pool, ids, func(ctx context.Context, id string) (*User, error) {
		return m.GetUser(ctx, id)
	})

	found := make([]*User, len(results))
	errs := make([]error, 0)

	for _, res := range results {
		if res.Err != nil {
			errs = append(errs, fmt.Errorf("user %s: %w", ids[res.Index], res.Err))

			continue
		}

		found[res.Index] = res.Value
	}

	return found, errors.Join(errs...)
}

func (m *Manager) fetch(ctx context.Context, path string, fields ...string) (*User, error) {
	user, err := httpclient.GetJSON[User](ctx, m.client, path, httpclient.WithFields(fields...))
	if err != nil {
		return nil, err
	}

	if user == nil {
		return nil, ErrEmptyResponse
	}

	return user, nil
}

func userPath(id string) string {
	return usersPath + "/" + url.PathEscape(id)
}
