package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/sharefs/pkg/api/auth"
	"github.com/marmos91/sharefs/pkg/api/handlers"
	"github.com/marmos91/sharefs/pkg/sharefs"
	"github.com/marmos91/sharefs/pkg/smbclient/memory"
)

const testSecret = "test-secret-key-for-testing-only-32chars"

type recordedRequest struct {
	method string
	route  string
	status int
}

type recordingMetrics struct {
	mu       sync.Mutex
	requests []recordedRequest
}

func (m *recordingMetrics) ObserveRequest(method, route string, status int, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, recordedRequest{method, route, status})
}

func (m *recordingMetrics) last() recordedRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requests[len(m.requests)-1]
}

func newTestShare(t *testing.T) *sharefs.Conn {
	t.Helper()
	srv := memory.NewServer("files", "docs")
	conn, err := sharefs.Connect(context.Background(), srv, `\\files\docs`, "guest", "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func newTestGateway(t *testing.T, cfg Config, withAuth bool) (*httptest.Server, *recordingMetrics) {
	t.Helper()
	m := &recordingMetrics{}

	var (
		jwt      *auth.JWTService
		accounts handlers.Authenticator
	)
	if withAuth {
		svc, err := auth.NewJWTService(auth.JWTConfig{Secret: testSecret})
		require.NoError(t, err)
		hash, err := auth.HashPassword("correct horse")
		require.NoError(t, err)
		jwt = svc
		accounts = auth.NewAccounts(map[string]string{"alice": hash})
	}

	ts := httptest.NewServer(NewRouter(cfg, newTestShare(t), jwt, accounts, m))
	t.Cleanup(ts.Close)
	return ts, m
}

func do(t *testing.T, method, url, token string, body io.Reader) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func postJSON(t *testing.T, url, token string, v any) *http.Response {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return do(t, http.MethodPost, url, token, bytes.NewReader(b))
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func requireProblem(t *testing.T, resp *http.Response, status int, code string) handlers.Problem {
	t.Helper()
	require.Equal(t, status, resp.StatusCode)
	assert.Equal(t, handlers.ContentTypeProblemJSON, resp.Header.Get("Content-Type"))
	p := decode[handlers.Problem](t, resp)
	assert.Equal(t, status, p.Status)
	if code != "" {
		assert.Equal(t, code, p.Code)
	}
	return p
}

func TestHealth(t *testing.T) {
	ts, _ := newTestGateway(t, Config{}, false)

	resp := do(t, http.MethodGet, ts.URL+"/health", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "healthy", decode[handlers.Response](t, resp).Status)

	resp = do(t, http.MethodGet, ts.URL+"/health/ready", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[handlers.Response](t, resp)
	assert.Equal(t, map[string]any{"share": `\\files\docs`}, body.Data)
}

func TestReadinessWithoutShare(t *testing.T) {
	ts := httptest.NewServer(NewRouter(Config{}, nil, nil, nil, nil))
	defer ts.Close()

	resp := do(t, http.MethodGet, ts.URL+"/health/ready", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestFileLifecycle(t *testing.T) {
	ts, m := newTestGateway(t, Config{}, false)
	fs := ts.URL + "/api/v1/fs"

	resp := postJSON(t, fs+"/mkdir", "", handlers.MkdirRequest{Path: "a/b/c", Parents: true})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = do(t, http.MethodPut, fs+"/content?path=a/b/c/note.txt", "", strings.NewReader("hello"))
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, recordedRequest{http.MethodPut, "/api/v1/fs/content", http.StatusNoContent}, m.last())

	resp = do(t, http.MethodGet, fs+"/content?path=a/b/c/note.txt", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/octet-stream", resp.Header.Get("Content-Type"))
	got, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(got))

	resp = do(t, http.MethodGet, fs+"/stat?path=a/b/c/note.txt", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	st := decode[handlers.StatResponse](t, resp)
	require.NotNil(t, st.Size)
	assert.EqualValues(t, 5, *st.Size)
	assert.False(t, *st.IsDirectory)

	resp = do(t, http.MethodGet, fs+"/stat?path=a/b/c/note.txt&rich=true", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	st = decode[handlers.StatResponse](t, resp)
	require.NotNil(t, st.Rich)
	assert.Equal(t, sharefs.KindFile, st.Rich.Kind)
	assert.EqualValues(t, 5, st.Rich.Size)

	resp = do(t, http.MethodGet, fs+"/list?path=a/b/c", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[handlers.ListResponse](t, resp)
	require.Len(t, list.Entries, 1)
	assert.Equal(t, "note.txt", list.Entries[0].Name)

	resp = postJSON(t, fs+"/rename", "", handlers.RenameRequest{From: "a/b/c/note.txt", To: "a/note.txt"})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, http.MethodGet, fs+"/exists?path=a/note.txt", "", nil)
	ex := decode[handlers.ExistsResponse](t, resp)
	assert.True(t, ex.Exists)
	assert.Equal(t, sharefs.KindFile, ex.Kind)

	for _, p := range []string{"a/note.txt", "a/b/c", "a/b", "a"} {
		resp = do(t, http.MethodDelete, fs+"?path="+p, "", nil)
		require.Equal(t, http.StatusNoContent, resp.StatusCode, "delete %s", p)
	}

	resp = do(t, http.MethodGet, fs+"/exists?path=a", "", nil)
	ex = decode[handlers.ExistsResponse](t, resp)
	assert.False(t, ex.Exists)
	assert.Equal(t, sharefs.KindNotFound, ex.Kind)

	// Removing a missing path succeeds.
	resp = do(t, http.MethodDelete, fs+"?path=a", "", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestErrorMapping(t *testing.T) {
	ts, _ := newTestGateway(t, Config{MaxBodySize: 8}, false)
	fs := ts.URL + "/api/v1/fs"

	require.Equal(t, http.StatusCreated, postJSON(t, fs+"/mkdir", "", handlers.MkdirRequest{Path: "dir"}).StatusCode)
	require.Equal(t, http.StatusNoContent, do(t, http.MethodPut, fs+"/content?path=dir/f", "", strings.NewReader("x")).StatusCode)
	require.Equal(t, http.StatusNoContent, do(t, http.MethodPut, fs+"/content?path=g", "", strings.NewReader("y")).StatusCode)

	t.Run("MissingFile", func(t *testing.T) {
		p := requireProblem(t, do(t, http.MethodGet, fs+"/content?path=nope", "", nil), http.StatusNotFound, "open_error")
		assert.Equal(t, "/api/v1/fs/content", p.Instance)
	})

	t.Run("MissingRichStat", func(t *testing.T) {
		requireProblem(t, do(t, http.MethodGet, fs+"/stat?path=nope&rich=1", "", nil), http.StatusNotFound, "")
	})

	t.Run("DotDot", func(t *testing.T) {
		requireProblem(t, do(t, http.MethodGet, fs+"/list?path=../etc", "", nil), http.StatusBadRequest, "bad_path")
	})

	t.Run("MkdirExisting", func(t *testing.T) {
		requireProblem(t, postJSON(t, fs+"/mkdir", "", handlers.MkdirRequest{Path: "dir"}), http.StatusConflict, "already_exists")
	})

	t.Run("RemoveNonEmpty", func(t *testing.T) {
		requireProblem(t, do(t, http.MethodDelete, fs+"?path=dir", "", nil), http.StatusConflict, "dir_not_empty")
	})

	t.Run("RemoveRoot", func(t *testing.T) {
		requireProblem(t, do(t, http.MethodDelete, fs+"?path=", "", nil), http.StatusBadRequest, "bad_path")
	})

	t.Run("ListFile", func(t *testing.T) {
		requireProblem(t, do(t, http.MethodGet, fs+"/list?path=g", "", nil), http.StatusConflict, "not_a_directory")
	})

	t.Run("ReadDirectory", func(t *testing.T) {
		requireProblem(t, do(t, http.MethodGet, fs+"/content?path=dir", "", nil), http.StatusConflict, "not_a_file")
	})

	t.Run("RenameCollision", func(t *testing.T) {
		resp := postJSON(t, fs+"/rename", "", handlers.RenameRequest{From: "g", To: "dir/f"})
		requireProblem(t, resp, http.StatusConflict, "")
	})

	t.Run("UploadTooLarge", func(t *testing.T) {
		resp := do(t, http.MethodPut, fs+"/content?path=big", "", strings.NewReader("0123456789"))
		requireProblem(t, resp, http.StatusRequestEntityTooLarge, "")
	})

	t.Run("BadRichParam", func(t *testing.T) {
		requireProblem(t, do(t, http.MethodGet, fs+"/stat?path=g&rich=maybe", "", nil), http.StatusBadRequest, "")
	})

	t.Run("UnknownBodyField", func(t *testing.T) {
		resp := do(t, http.MethodPost, fs+"/mkdir", "", strings.NewReader(`{"path":"x","mode":"0755"}`))
		requireProblem(t, resp, http.StatusBadRequest, "")
	})

	t.Run("UnknownRoute", func(t *testing.T) {
		requireProblem(t, do(t, http.MethodGet, ts.URL+"/api/v1/nope", "", nil), http.StatusNotFound, "")
	})
}

func TestAuth(t *testing.T) {
	ts, _ := newTestGateway(t, Config{}, true)
	fs := ts.URL + "/api/v1/fs"

	resp := do(t, http.MethodGet, fs+"/list", "", nil)
	requireProblem(t, resp, http.StatusUnauthorized, "")
	assert.Contains(t, resp.Header.Get("WWW-Authenticate"), "Bearer")

	resp = do(t, http.MethodGet, fs+"/list", "not-a-token", nil)
	requireProblem(t, resp, http.StatusUnauthorized, "")

	resp = postJSON(t, ts.URL+"/api/v1/auth/token", "", handlers.TokenRequest{Username: "alice", Password: "wrong"})
	requireProblem(t, resp, http.StatusUnauthorized, "")

	resp = postJSON(t, ts.URL+"/api/v1/auth/token", "", handlers.TokenRequest{Username: "alice"})
	requireProblem(t, resp, http.StatusBadRequest, "")

	resp = postJSON(t, ts.URL+"/api/v1/auth/token", "", handlers.TokenRequest{Username: "alice", Password: "correct horse"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	tok := decode[auth.Token](t, resp)
	assert.Equal(t, "Bearer", tok.TokenType)
	require.NotEmpty(t, tok.AccessToken)

	resp = do(t, http.MethodGet, fs+"/list", tok.AccessToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Health stays open.
	resp = do(t, http.MethodGet, ts.URL+"/health/ready", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestTokenRouteAbsentWithoutAuth(t *testing.T) {
	ts, _ := newTestGateway(t, Config{}, false)

	resp := postJSON(t, ts.URL+"/api/v1/auth/token", "", handlers.TokenRequest{Username: "a", Password: "b"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
