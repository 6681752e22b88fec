package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardevpk/dub/internal/auth"
	"github.com/ardevpk/dub/internal/config"
	"github.com/ardevpk/dub/internal/model"
	"github.com/ardevpk/dub/internal/storage/file"
	"github.com/ardevpk/dub/internal/storage/memory"
)

const appSecret = "app-secret"

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		ServerAddress:   "127.0.0.1:0",
		GRPCAddress:     "127.0.0.1:0",
		FileStoragePath: filepath.Join(t.TempDir(), "outbox.jsonl"),
		SecretKey:       appSecret,
		SenderAddress:   "Dub <system@dub.co>",
		WorkerCount:     1,
		BatchSize:       1,
	}
}

func TestApp_Integration(t *testing.T) {
	app, err := NewApp(context.Background(), testConfig(t))
	require.NoError(t, err)

	app.pool.Start()
	defer app.pool.Shutdown(time.Second)

	server := httptest.NewServer(app.handler)
	defer server.Close()

	token, err := auth.NewJWTService(appSecret).GenerateToken("import-worker")
	require.NoError(t, err)

	body := `{
		"email": "panic@thedis.co",
		"provider": "Bitly",
		"errorLinks": [{"domain": "bit.ly", "key": "xyz", "error": "Link already exists"}],
		"workspaceName": "Acme",
		"workspaceSlug": "acme"
	}`
	req, err := http.NewRequest(http.MethodPost, server.URL+"/api/emails/links-import-errors", strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	var accepted struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&accepted))
	require.NotEmpty(t, accepted.ID)

	assert.Eventually(t, func() bool {
		req, _ := http.NewRequest(http.MethodGet, server.URL+"/api/emails/"+accepted.ID, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return false
		}
		defer resp.Body.Close()

		var msg model.Message
		if err := json.NewDecoder(resp.Body).Decode(&msg); err != nil {
			return false
		}
		return msg.Status == model.MessageStatusSent
	}, 3*time.Second, 20*time.Millisecond)
}

func TestApp_PreviewIsPublic(t *testing.T) {
	app, err := NewApp(context.Background(), testConfig(t))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	app.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/preview/links-import-errors", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Some CSV links have failed to import")

	rec = httptest.NewRecorder()
	app.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/emails", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	app, err := NewApp(context.Background(), testConfig(t))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestNewStorage_Selection(t *testing.T) {
	store, pinger, closeStore, err := newStorage(context.Background(), &config.Config{})
	require.NoError(t, err)
	defer closeStore()
	assert.IsType(t, &memory.Storage{}, store)
	assert.Nil(t, pinger)

	store, _, closeStore, err = newStorage(context.Background(), &config.Config{
		FileStoragePath: filepath.Join(t.TempDir(), "outbox.jsonl"),
	})
	require.NoError(t, err)
	defer closeStore()
	assert.IsType(t, &file.Storage{}, store)
}
