package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/andyle182810/boxsdk/cache"
	"github.com/andyle182810/boxsdk/goredis"
	"github.com/andyle182810/boxsdk/testutil"
	"github.com/stretchr/testify/require"
)

type testUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Login string `json:"login"`
}

var errLoad = errors.New("load failed")

func setupCache(t *testing.T, namespace string, ttl time.Duration) *cache.Cache[testUser] {
	t.Helper()

	container := testutil.SetupRedisContainer(t)

	client, err := goredis.New(&goredis.Config{ //nolint:exhaustruct
		Host: container.Host,
		Port: container.PortNumber(t),
	})
	require.NoError(t, err)

	t.Cleanup(func() { _ = client.Close() })

	return cache.New[testUser](client.Client, namespace, ttl)
}

func TestNew_DefaultTTL(t *testing.T) {
	t.Parallel()

	c := cache.New[testUser](nil, "users", 0)

	require.Equal(t, time.Hour, c.TTL())
}

func TestCache_EmptyKey(t *testing.T) {
	t.Parallel()

	c := cache.New[testUser](nil, "users", time.Minute)

	_, err := c.Get(t.Context(), "")
	require.ErrorIs(t, err, cache.ErrEmptyKey)
	require.ErrorIs(t, c.Set(t.Context(), "", &testUser{}), cache.ErrEmptyKey) //nolint:exhaustruct
	require.ErrorIs(t, c.Delete(t.Context(), ""), cache.ErrEmptyKey)
}

func TestCache_SetAndGet(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	c := setupCache(t, "users", time.Minute)

	user := &testUser{ID: "11446498", Name: "Aaron Levie", Login: "ceo@example.com"}

	require.NoError(t, c.Set(ctx, user.ID, user))

	retrieved, err := c.Get(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, user, retrieved)
}

func TestCache_GetMissingKey(t *testing.T) {
	t.Parallel()

	c := setupCache(t, "users", time.Minute)

	retrieved, err := c.Get(t.Context(), "404")
	require.ErrorIs(t, err, cache.ErrKeyNotFound)
	require.Nil(t, retrieved)
}

func TestCache_Delete(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	c := setupCache(t, "users", time.Minute)

	require.NoError(t, c.Set(ctx, "1", &testUser{ID: "1", Name: "one", Login: ""}))
	require.NoError(t, c.Delete(ctx, "1"))

	_, err := c.Get(ctx, "1")
	require.ErrorIs(t, err, cache.ErrKeyNotFound)
}

func TestCache_InvalidateOnlyTouchesNamespace(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	container := testutil.SetupRedisContainer(t)

	client, err := goredis.New(&goredis.Config{ //nolint:exhaustruct
		Host: container.Host,
		Port: container.PortNumber(t),
	})
	require.NoError(t, err)

	users := cache.New[testUser](client.Client, "users", time.Minute)
	files := cache.New[testUser](client.Client, "files", time.Minute)

	require.NoError(t, users.Set(ctx, "1", &testUser{ID: "1", Name: "", Login: ""}))
	require.NoError(t, users.Set(ctx, "2", &testUser{ID: "2", Name: "", Login: ""}))
	require.NoError(t, files.Set(ctx, "1", &testUser{ID: "f1", Name: "", Login: ""}))

	require.NoError(t, users.Invalidate(ctx))

	_, err = users.Get(ctx, "1")
	require.ErrorIs(t, err, cache.ErrKeyNotFound)

	_, err = users.Get(ctx, "2")
	require.ErrorIs(t, err, cache.ErrKeyNotFound)

	kept, err := files.Get(ctx, "1")
	require.NoError(t, err)
	require.Equal(t, "f1", kept.ID)
}

func TestCache_EntryExpires(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	c := setupCache(t, "short", time.Second)

	require.NoError(t, c.Set(ctx, "1", &testUser{ID: "1", Name: "", Login: ""}))

	testutil.Eventually(t, func() bool {
		_, err := c.Get(ctx, "1")

		return errors.Is(err, cache.ErrKeyNotFound)
	}, 5*time.Second, 100*time.Millisecond)
}

func TestCache_GetOrLoad(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	c := setupCache(t, "users", time.Minute)

	calls := 0
	load := func(context.Context) (*testUser, error) {
		calls++

		return &testUser{ID: "7", Name: "loaded", Login: ""}, nil
	}

	first, err := c.GetOrLoad(ctx, "7", load)
	require.NoError(t, err)
	require.Equal(t, "loaded", first.Name)

	second, err := c.GetOrLoad(ctx, "7", load)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, 1, calls)
}

func TestCache_GetOrLoadPropagatesLoadError(t *testing.T) {
	t.Parallel()

	c := setupCache(t, "users", time.Minute)

	value, err := c.GetOrLoad(t.Context(), "8", func(context.Context) (*testUser, error) {
		return nil, errLoad
	})

	require.ErrorIs(t, err, errLoad)
	require.Nil(t, value)
}
