package app

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"merlin/backend/internal/config"
)

func TestNewApp(t *testing.T) {
	cfg := &config.Config{
		AppPort:       5001,
		DatabasePath:  filepath.Join(t.TempDir(), "test.db"),
		OpenAIAPIKey:  "test-key",
		OpenAIModel:   "gpt-4o",
		AdminPassword: "Password@123",
		LogLevel:      "DEBUG",
	}

	app, err := NewApp(cfg)
	require.NoError(t, err)
	require.NotNil(t, app)
	defer func() { require.NoError(t, app.DB.Close()) }()

	assert.NotNil(t, app.DB)
	assert.NotNil(t, app.Server)
	assert.Equal(t, ":5001", app.Server.Addr)

	// The admin account is seeded on first start.
	var count int
	err = app.DB.QueryRow("SELECT COUNT(*) FROM users WHERE username = 'admin'").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()
	app.Server.Handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}
