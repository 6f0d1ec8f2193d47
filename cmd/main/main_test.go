package main

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/Houeta/scoperival/internal/models"
	"github.com/Houeta/scoperival/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		env          string
		debugEnabled bool
		infoEnabled  bool
		warnEnabled  bool
	}{
		{env: envLocal, debugEnabled: true, infoEnabled: true, warnEnabled: true},
		{env: envDev, infoEnabled: true, warnEnabled: true},
		{env: envProd, warnEnabled: true},
		{env: "unknown"},
	}

	for _, tc := range testCases {
		t.Run(tc.env, func(t *testing.T) {
			t.Parallel()

			logger := setupLogger(tc.env, &bytes.Buffer{})

			assert.Equal(t, tc.debugEnabled, logger.Enabled(t.Context(), slog.LevelDebug))
			assert.Equal(t, tc.infoEnabled, logger.Enabled(t.Context(), slog.LevelInfo))
			assert.Equal(t, tc.warnEnabled, logger.Enabled(t.Context(), slog.LevelWarn))
			assert.True(t, logger.Enabled(t.Context(), slog.LevelError))
		})
	}
}

func TestSetupLogger_MasksSensitiveAttributes(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	logger := setupLogger(envDev, &out)

	logger.Info("login", "password", "hunter2", "Authorization", "Bearer abc", "user_id", "u1")

	var record map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &record))
	assert.Equal(t, maskValue, record["password"])
	assert.Equal(t, maskValue, record["Authorization"])
	assert.Equal(t, "u1", record["user_id"])
	assert.NotContains(t, out.String(), "hunter2")
}

func TestSetupLogger_ProductionDropsTime(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	logger := setupLogger(envProd, &out)

	logger.Warn("something", "token", "abc")

	var record map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &record))
	assert.NotContains(t, record, slog.TimeKey)
	assert.Equal(t, maskValue, record["token"])
}

func TestNewRootCmd(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()

	assert.Equal(t, "scoperival", cmd.Use)
	assert.NotEmpty(t, cmd.Short)

	names := make([]string, 0, len(cmd.Commands()))
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"serve", "scan", "discover", "migrate"}, names)

	scan, _, err := cmd.Find([]string{"scan"})
	require.NoError(t, err)
	assert.NotNil(t, scan.Flags().Lookup("owner"))
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(t.Context())

	return out.String(), err
}

func TestDiscoverCmd(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/pricing" {
			w.WriteHeader(http.StatusOK)
			return
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(srv.Close)

	out, err := execute(t, "discover", srv.URL)
	require.NoError(t, err)

	var body struct {
		Suggestions []models.PageSuggestion `json:"suggestions"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	require.Len(t, body.Suggestions, 1)
	assert.Equal(t, srv.URL+"/pricing", body.Suggestions[0].URL)

	_, err = execute(t, "discover")
	require.Error(t, err)
}

func TestServeCmd_RequiresSecret(t *testing.T) {
	t.Setenv("SR_STORAGE_PATH", filepath.Join(t.TempDir(), "serve.db"))
	t.Setenv("SR_JWT_SECRET", "")

	_, err := execute(t, "serve")
	require.ErrorIs(t, err, ErrEmptyJWTSecret)
}

func TestScanCmd(t *testing.T) {
	t.Setenv("SR_STORAGE_PATH", filepath.Join(t.TempDir(), "scan.db"))

	_, err := execute(t, "scan", "c1")
	require.ErrorIs(t, err, ErrEmptyOwner)

	_, err = execute(t, "scan", "--owner", "u1", "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "record not found")
}

func TestMigrateCmd(t *testing.T) {
	t.Setenv("SR_STORAGE_PATH", filepath.Join(t.TempDir(), "migrate.db"))

	_, err := execute(t, "migrate")
	require.NoError(t, err)

	out, err := execute(t, "migrate", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "00001_init.sql")

	_, err = execute(t, "migrate", "down")
	require.NoError(t, err)

	_, err = execute(t, "migrate", "sideways")
	require.Error(t, err)
	assert.NotErrorIs(t, err, migrations.ErrUnknownCommand)
}
