package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/devsecops/zero-trust-pipeline/pkg/server"
)

func newTestPipeline(t *testing.T) *httptest.Server {
	t.Helper()
	cfg, err := server.NewConfig()
	require.NoError(t, err)

	ts := httptest.NewServer(newServer(cfg).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func request(t *testing.T, method, url string, header map[string]string, payload string) (*http.Response, []byte) {
	t.Helper()
	var rdr io.Reader
	if payload != "" {
		rdr = strings.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(t.Context(), method, url, rdr)
	require.NoError(t, err)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func TestStatus_JSON(t *testing.T) {
	ts := newTestPipeline(t)

	resp, raw := request(t, http.MethodGet, ts.URL+"/api", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))

	var status Status
	require.NoError(t, json.Unmarshal(raw, &status))
	assert.Equal(t, name, status.Name)
	assert.Equal(t, version, status.Version)
	assert.Contains(t, status.Routes, "POST /api/echo")
	assert.False(t, status.Timestamp.IsZero())
}

func TestStatus_YAML(t *testing.T) {
	ts := newTestPipeline(t)

	resp, raw := request(t, http.MethodGet, ts.URL+"/api/", map[string]string{"Accept": "application/yaml"}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/yaml", resp.Header.Get("Content-Type"))

	var status Status
	require.NoError(t, yaml.Unmarshal(raw, &status))
	assert.Equal(t, name, status.Name)
}

func TestEcho(t *testing.T) {
	ts := newTestPipeline(t)

	tests := []struct {
		name       string
		header     map[string]string
		payload    string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "object",
			header:     map[string]string{"Content-Type": "application/json"},
			payload:    `{"stage":"build","attempt":2}`,
			wantStatus: http.StatusOK,
			wantBody:   `{"received":{"stage":"build","attempt":2}}`,
		},
		{
			name:       "array",
			header:     map[string]string{"Content-Type": "application/json; charset=utf-8"},
			payload:    `[1,2.5,"three"]`,
			wantStatus: http.StatusOK,
			wantBody:   `{"received":[1,2.5,"three"]}`,
		},
		{
			name:       "not json",
			header:     map[string]string{"Content-Type": "text/plain"},
			payload:    `hello`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed",
			header:     map[string]string{"Content-Type": "application/json"},
			payload:    `{"stage":`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "non-JSON whitespace rejected",
			header:     map[string]string{"Content-Type": "application/json"},
			payload:    "\u00a0{\"stage\":\"build\"}",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "whitespace-only rejected",
			header:     map[string]string{"Content-Type": "application/json"},
			payload:    "  \n",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "scalar rejected",
			header:     map[string]string{"Content-Type": "application/json"},
			payload:    `"build"`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, raw := request(t, http.MethodPost, ts.URL+"/api/echo", tt.header, tt.payload)
			require.Equal(t, tt.wantStatus, resp.StatusCode, string(raw))
			assert.NotEmpty(t, resp.Header.Get("Content-Security-Policy"))
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, string(raw))
			}
		})
	}
}

func TestRouter_NotFound(t *testing.T) {
	ts := newTestPipeline(t)

	resp, raw := request(t, http.MethodGet, ts.URL+"/api/missing", nil, "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	var errResp server.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &errResp))
	assert.Equal(t, "NOT_FOUND", errResp.Code)
	assert.Equal(t, "Cannot GET /api/missing", errResp.Message)
	assert.NotEmpty(t, errResp.RequestID)
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	ts := newTestPipeline(t)

	resp, raw := request(t, http.MethodGet, ts.URL+"/api/echo", nil, "")
	require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	var errResp server.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &errResp))
	assert.Equal(t, "METHOD_NOT_ALLOWED", errResp.Code)
}
