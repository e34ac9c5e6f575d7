package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SARVESHVARADKAR123/RoastMyGram/internal/config"
)

func testConfig(requests int) *config.Config {
	return &config.Config{
		ServiceName:       "roast-api-test",
		RateLimitRequests: requests,
		RateLimitWindow:   "1m",
		CORSOrigins:       []string{"http://localhost:3000"},
	}
}

func TestRateLimiting(t *testing.T) {
	cfg := testConfig(10)

	// Unknown paths under /api still pass through the limiter, so no handlers are needed.
	handler := NewRouter(nil, nil, cfg)

	server := httptest.NewServer(handler)
	defer server.Close()

	client := server.Client()

	for i := 0; i < 10; i++ {
		req, _ := http.NewRequest("GET", server.URL+"/api/does-not-exist", nil)
		req.Header.Set("X-Forwarded-For", "192.168.1.100")
		res, err := client.Do(req)
		require.NoError(t, err, "request %d", i)
		assert.NotEqual(t, http.StatusTooManyRequests, res.StatusCode, "request %d got 429 too early", i)
		res.Body.Close()
	}

	req, _ := http.NewRequest("GET", server.URL+"/api/does-not-exist", nil)
	req.Header.Set("X-Forwarded-For", "192.168.1.100")
	res, err := client.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusTooManyRequests, res.StatusCode)

	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.False(t, body.Success)
	assert.Equal(t, "RATE_LIMITED", body.Error.Code)

	// Another client is unaffected.
	req, _ = http.NewRequest("GET", server.URL+"/api/does-not-exist", nil)
	req.Header.Set("X-Forwarded-For", "192.168.1.200")
	other, err := client.Do(req)
	require.NoError(t, err)
	other.Body.Close()
	assert.Equal(t, http.StatusNotFound, other.StatusCode)
}

func TestHealthIsNotRateLimited(t *testing.T) {
	handler := NewRouter(nil, nil, testConfig(1))

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestNotFound(t *testing.T) {
	handler := NewRouter(nil, nil, testConfig(100))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t,
		`{"success":false,"error":{"message":"Route not found","code":"NOT_FOUND"}}`,
		rec.Body.String())
}

func TestCORSPreflight(t *testing.T) {
	handler := NewRouter(nil, nil, testConfig(100))

	req := httptest.NewRequest(http.MethodOptions, "/api/roasts", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}
