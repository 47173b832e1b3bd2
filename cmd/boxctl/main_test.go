package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/andyle182810/boxsdk/boxresponse"
	"github.com/andyle182810/boxsdk/config"
	"github.com/andyle182810/boxsdk/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEnv(t *testing.T, srv *testutil.BoxServer) {
	t.Helper()

	setupHosts(t, srv, srv)
}

func setupHosts(t *testing.T, api, upload *testutil.BoxServer) {
	t.Helper()

	t.Setenv("BOX_API_BASE_URL", api.URL)
	t.Setenv("BOX_UPLOAD_BASE_URL", upload.URL)
	t.Setenv("BOX_ACCESS_TOKEN", "dev-token")
	t.Setenv("BOX_RETRY_MAX_ATTEMPTS", "0")
	t.Setenv("LOG_LEVEL", "disabled")
	t.Setenv("REDIS_ENABLED", "false")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(t.Context())

	return out.String(), err
}

func TestWhoAmI(t *testing.T) {
	srv := testutil.NewBoxServer(t)
	srv.Handle("GET /users/me", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer dev-token", r.Header.Get("Authorization"))
		assert.Equal(t, "id,login", r.URL.Query().Get("fields"))
		testutil.WriteJSON(t, w, http.StatusOK, map[string]any{"type": "user", "id": "1", "login": "me@example.com"})
	})
	setupEnv(t, srv)

	out, err := run(t, "whoami", "--fields", "id,login")
	require.NoError(t, err)

	var user map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &user))
	require.Equal(t, "me@example.com", user["login"])
}

func TestUsersGetMany(t *testing.T) {
	srv := testutil.NewBoxServer(t)
	srv.Handle("GET /users/{id}", func(w http.ResponseWriter, r *http.Request) {
		testutil.WriteJSON(t, w, http.StatusOK, map[string]any{"type": "user", "id": r.PathValue("id")})
	})
	setupEnv(t, srv)

	out, err := run(t, "users", "get", "1", "2", "3")
	require.NoError(t, err)

	var found []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &found))
	require.Len(t, found, 3)
	require.Equal(t, "3", found[2]["id"])
}

func TestUsersList(t *testing.T) {
	srv := testutil.NewBoxServer(t)
	srv.Handle("GET /users", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "50", r.URL.Query().Get("limit"))
		testutil.WriteJSON(t, w, http.StatusOK, map[string]any{
			"total_count": 120,
			"offset":      0,
			"limit":       50,
			"entries":     []any{map[string]any{"type": "user", "id": "1"}},
		})
	})
	setupEnv(t, srv)

	out, err := run(t, "users", "list", "--limit", "50")
	require.NoError(t, err)

	var page map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	require.InDelta(t, 3, page["total_pages"], 0)
	require.Equal(t, true, page["has_more"])
}

func TestUsersUpdate(t *testing.T) {
	srv := testutil.NewBoxServer(t)
	srv.Handle("PUT /users/{id}", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "New Name", body["name"])
		assert.InDelta(t, -1, body["space_amount"], 0)

		testutil.WriteJSON(t, w, http.StatusOK, map[string]any{"type": "user", "id": r.PathValue("id"), "name": "New Name"})
	})
	setupEnv(t, srv)

	out, err := run(t, "users", "update", "42", "--name", "New Name", "--space-amount=-1")
	require.NoError(t, err)
	require.Contains(t, out, "New Name")
}

func TestFilesPreviewPages(t *testing.T) {
	srv := testutil.NewBoxServer(t)
	srv.Handle("GET /files/{id}/preview.png", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Link", `<https://api.box.com/2.0/files/9/preview.png?page=4>; rel="last"`)
		_, _ = w.Write([]byte("png"))
	})
	setupEnv(t, srv)

	out, err := run(t, "files", "preview-pages", "9")
	require.NoError(t, err)

	var result map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.InDelta(t, 4, result["total_pages"], 0)
}

func TestFilesPreviewWritesContent(t *testing.T) {
	srv := testutil.NewBoxServer(t)
	srv.Handle("GET /files/{id}/preview.png", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		_, _ = w.Write([]byte("png-page-2"))
	})
	setupEnv(t, srv)

	target := filepath.Join(t.TempDir(), "page2.png")

	_, err := run(t, "files", "preview", "9", "--page", "2", "--out", target)
	require.NoError(t, err)

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	require.Equal(t, "png-page-2", string(content))
}

func TestFilesUploadGoesToUploadHost(t *testing.T) {
	api := testutil.NewBoxServer(t)
	upload := testutil.NewBoxServer(t)
	upload.Handle("POST /files/content", func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseMultipartForm(1<<20))

		var attributes map[string]any
		assert.NoError(t, json.Unmarshal([]byte(r.FormValue("attributes")), &attributes))
		assert.Equal(t, "notes.txt", attributes["name"])
		assert.Equal(t, map[string]any{"id": "11446498"}, attributes["parent"])

		testutil.WriteJSON(t, w, http.StatusCreated, map[string]any{
			"total_count": 1,
			"entries":     []any{map[string]any{"type": "file", "id": "77", "name": "notes.txt"}},
		})
	})
	setupHosts(t, api, upload)

	source := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(source, []byte("hello box"), 0o600))

	out, err := run(t, "files", "upload", source, "--parent", "11446498")
	require.NoError(t, err)

	var file map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &file))
	require.Equal(t, "77", file["id"])
	require.Equal(t, 1, upload.RequestCount())
	require.Zero(t, api.RequestCount())
}

func TestRateLimitedCommandDescribesRetry(t *testing.T) {
	srv := testutil.NewBoxServer(t)
	srv.Handle("GET /users/me", func(w http.ResponseWriter, _ *http.Request) {
		testutil.WriteRateLimited(t, w, 12)
	})
	setupEnv(t, srv)

	_, err := run(t, "whoami")
	require.ErrorIs(t, err, boxresponse.ErrRateLimited)
	require.Contains(t, describeError(err), "retry after 12s")
}

func TestMissingCredentials(t *testing.T) {
	t.Setenv("BOX_ACCESS_TOKEN", "")
	t.Setenv("BOX_CLIENT_ID", "")
	t.Setenv("BOX_CLIENT_SECRET", "")

	_, err := run(t, "whoami")
	require.ErrorIs(t, err, config.ErrInvalidConfig)
	require.Contains(t, describeError(err), "BOX_* environment variables")
}

func TestDescribeError(t *testing.T) {
	t.Parallel()

	apiErr := &boxresponse.APIError{
		StatusCode: http.StatusConflict,
		Message:    "Item with the same name already exists",
		Payload:    &boxresponse.ErrorPayload{RequestID: "abc123"}, //nolint:exhaustruct
	}

	require.Equal(t,
		"Box API request failed with status 409: Item with the same name already exists (request id abc123)",
		describeError(apiErr))

	authErr := &boxresponse.AuthExpiredError{Message: "expired", Payload: nil}
	require.Contains(t, describeError(authErr), "rejected the access token")
}
