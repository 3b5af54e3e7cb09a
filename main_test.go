package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fakhrymubarak/weather-dashboard/internal/config"
)

func TestNewServer_FromConfig(t *testing.T) {
	srv := newServer(config.Secrets{WeatherAPIKey: "test_api_key"})

	assert.Equal(t, ":8080", srv.Addr)
	assert.Equal(t, 15*time.Second, srv.ReadHeaderTimeout)
	assert.Equal(t, 15*time.Second, srv.ReadTimeout)
	assert.Equal(t, 30*time.Second, srv.WriteTimeout)
	assert.Equal(t, 60*time.Second, srv.IdleTimeout)
	assert.NotNil(t, srv.Handler)
}

func TestNewServer_ServesProxy(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test_api_key", r.URL.Query().Get("key"))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"location":{"name":"Paris"}}`))
	}))
	defer upstream.Close()

	viper.Set("upstream.base_url", upstream.URL)
	t.Cleanup(func() { viper.Set("upstream.base_url", nil) })

	server := httptest.NewServer(newServer(config.Secrets{WeatherAPIKey: "test_api_key"}).Handler)
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/weather?query=Paris")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `{"location":{"name":"Paris"}}`, string(body))
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestNewServer_WithoutKey(t *testing.T) {
	server := httptest.NewServer(newServer(config.Secrets{}).Handler)
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/weather?query=Paris")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}
