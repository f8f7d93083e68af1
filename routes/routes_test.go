package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/upb/notice-board/app"
	"github.com/upb/notice-board/auth"
	"github.com/upb/notice-board/config"
	"github.com/upb/notice-board/models"
	"github.com/upb/notice-board/repositories/memory"
	"go.uber.org/zap/zaptest"
)

func testConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		Server: config.ServerConfig{
			RequestTimeout:     5 * time.Second,
			BasePath:           "/api",
			CORSAllowedOrigins: []string{"*"},
		},
		Store: config.StoreConfig{Driver: config.StoreDriverMemory},
		Auth: config.AuthConfig{
			JWTSecret:  "routes-test-secret",
			TokenTTL:   time.Hour,
			Issuer:     "notice-board",
			BcryptCost: 4,
		},
		Seed: config.SeedConfig{
			Enabled:  true,
			Email:    "admin@example.com",
			Password: "admin123",
			FullName: "System Admin",
		},
		Observability: config.ObservabilityConfig{ServiceName: "notice-board-test"},
	}
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := testConfig()
	deps := app.NewDependenciesWithRepositories(cfg, zaptest.NewLogger(t), memory.NewStore().Repositories())
	require.NoError(t, deps.SeedAdmin(context.Background()))

	ts := httptest.NewServer(SetupRoutes(deps))
	t.Cleanup(ts.Close)
	return ts
}

type client struct {
	t    *testing.T
	base string
}

func (c client) do(method, path, token string, body interface{}) (*http.Response, []byte) {
	c.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, c.base+path, &buf)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	var out bytes.Buffer
	_, err = out.ReadFrom(resp.Body)
	require.NoError(c.t, err)
	return resp, out.Bytes()
}

func (c client) login(email, password string) string {
	c.t.Helper()
	resp, body := c.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": email, "password": password})
	require.Equal(c.t, http.StatusOK, resp.StatusCode, string(body))

	var out struct {
		Token string `json:"token"`
	}
	require.NoError(c.t, json.Unmarshal(body, &out))
	require.NotEmpty(c.t, out.Token)
	return out.Token
}

func TestNoticeBoardScenario(t *testing.T) {
	ts := newServer(t)
	c := client{t: t, base: ts.URL}

	adminToken := c.login("admin@example.com", "admin123")

	for _, u := range []map[string]string{
		{"email": "teacher@example.com", "password": "teach123", "role": "teacher", "fullName": "Tina Teacher"},
		{"email": "student@example.com", "password": "study123", "role": "student", "fullName": "Sam Student"},
	} {
		resp, body := c.do(http.MethodPost, "/api/users", adminToken, u)
		require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
		assert.NotContains(t, string(body), u["password"])
	}

	teacherToken := c.login("teacher@example.com", "teach123")
	studentToken := c.login("student@example.com", "study123")

	resp, body := c.do(http.MethodPost, "/api/notices", teacherToken, map[string]string{"title": "Exam", "content": "Friday"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	resp, body = c.do(http.MethodGet, "/api/notices", studentToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var notices []struct {
		ID        string `json:"_id"`
		Title     string `json:"title"`
		Content   string `json:"content"`
		CreatedBy struct {
			ID       string `json:"_id"`
			FullName string `json:"fullName"`
			Role     string `json:"role"`
		} `json:"createdBy"`
	}
	require.NoError(t, json.Unmarshal(body, &notices))
	require.Len(t, notices, 1)
	assert.Equal(t, "Exam", notices[0].Title)
	assert.Equal(t, "Friday", notices[0].Content)
	assert.Equal(t, "teacher", notices[0].CreatedBy.Role)
	assert.Equal(t, "Tina Teacher", notices[0].CreatedBy.FullName)

	noticePath := "/api/notices/" + notices[0].ID

	resp, _ = c.do(http.MethodDelete, noticePath, studentToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body = c.do(http.MethodDelete, noticePath, adminToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "Notice deleted successfully")

	resp, _ = c.do(http.MethodGet, noticePath, teacherToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = c.do(http.MethodGet, "/api/notices", teacherToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, "[]", string(body))
}

func TestDeleteWithAdminTokenForUnknownUser(t *testing.T) {
	ts := newServer(t)
	c := client{t: t, base: ts.URL}

	adminToken := c.login("admin@example.com", "admin123")
	resp, body := c.do(http.MethodPost, "/api/users", adminToken, map[string]string{
		"email": "teacher@example.com", "password": "teach123", "role": "teacher", "fullName": "Tina Teacher",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	teacherToken := c.login("teacher@example.com", "teach123")

	resp, body = c.do(http.MethodPost, "/api/notices", teacherToken, map[string]string{"title": "Exam", "content": "Friday"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var notice struct {
		ID string `json:"_id"`
	}
	require.NoError(t, json.Unmarshal(body, &notice))

	// correctly signed, but the id belongs to nobody in the store
	signed, err := auth.NewTokenManager(testConfig().Auth).Issue(models.Actor{ID: uuid.New(), Role: models.RoleAdmin})
	require.NoError(t, err)

	resp, _ = c.do(http.MethodDelete, "/api/notices/"+notice.ID, signed, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = c.do(http.MethodGet, "/api/notices/"+notice.ID, teacherToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestProtectedEndpoints(t *testing.T) {
	ts := newServer(t)
	c := client{t: t, base: ts.URL}

	testCases := []struct {
		name           string
		method         string
		path           string
		token          string
		expectedStatus int
	}{
		{"list notices without token", http.MethodGet, "/api/notices", "", http.StatusUnauthorized},
		{"create notice without token", http.MethodPost, "/api/notices", "", http.StatusUnauthorized},
		{"create user without token", http.MethodPost, "/api/users", "", http.StatusUnauthorized},
		{"delete notice without token", http.MethodDelete, "/api/notices/x", "", http.StatusUnauthorized},
		{"list notices with garbage token", http.MethodGet, "/api/notices", "not.a.jwt", http.StatusForbidden},
		{"create user with garbage token", http.MethodPost, "/api/users", "not.a.jwt", http.StatusForbidden},
		{"unknown endpoint", http.MethodGet, "/api/nonexistent", "", http.StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp, _ := c.do(tc.method, tc.path, tc.token, nil)
			assert.Equal(t, tc.expectedStatus, resp.StatusCode, "endpoint: %s %s", tc.method, tc.path)
		})
	}
}

func TestLoginFailures(t *testing.T) {
	ts := newServer(t)
	c := client{t: t, base: ts.URL}

	resp, body := c.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "ghost@example.com", "password": "x"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "User not found")

	resp, body = c.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "admin@example.com", "password": "nope"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "Invalid password")
}

func TestHealthEndpoints(t *testing.T) {
	ts := newServer(t)
	c := client{t: t, base: ts.URL}

	for _, path := range []string{"/healthz", "/readyz", "/api/status"} {
		t.Run(path, func(t *testing.T) {
			resp, _ := c.do(http.MethodGet, path, "", nil)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	ts := newServer(t)

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/api/notices", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Authorization, Content-Type")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestRootBasePath(t *testing.T) {
	cfg := testConfig()
	cfg.Server.BasePath = ""
	deps := app.NewDependenciesWithRepositories(cfg, zaptest.NewLogger(t), memory.NewStore().Repositories())
	require.NoError(t, deps.SeedAdmin(context.Background()))

	ts := httptest.NewServer(SetupRoutes(deps))
	defer ts.Close()
	c := client{t: t, base: ts.URL}

	resp, _ := c.do(http.MethodPost, "/auth/login", "", map[string]string{"email": "admin@example.com", "password": "admin123"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
