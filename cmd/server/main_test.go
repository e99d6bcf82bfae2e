package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ridehail/internal/config"
	"ridehail/internal/logger"
	"ridehail/internal/notification"
)

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		configPath = ""
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestMigrateCommands_SQLite(t *testing.T) {
	t.Setenv("RIDEHAIL_DATABASE_DRIVER", "sqlite")
	t.Setenv("RIDEHAIL_DATABASE_SQLITE_PATH", filepath.Join(t.TempDir(), "ridehail.db"))
	t.Setenv("RIDEHAIL_SERVER_LOG_LEVEL", "error")

	out, err := executeCommand(t, "migrate", "up")
	require.NoError(t, err, out)
	assert.Contains(t, out, "schema version: 2")

	out, err = executeCommand(t, "migrate", "down")
	require.NoError(t, err, out)
	assert.Contains(t, out, "schema version: 1")

	out, err = executeCommand(t, "migrate", "status")
	require.NoError(t, err, out)
	assert.Contains(t, out, "schema version: 1")
}

func TestMigrateCommand_MemoryDriverHasNoSchema(t *testing.T) {
	t.Setenv("RIDEHAIL_DATABASE_DRIVER", "memory")

	_, err := executeCommand(t, "migrate", "up")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no schema to migrate")
}

func TestRootCommand_MissingConfigFile(t *testing.T) {
	_, err := executeCommand(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "migrate", "status")
	require.Error(t, err)
}

func TestOpenGateway(t *testing.T) {
	cfg := config.NewDefaultConfig().Notification

	gw, err := openGateway(cfg, logger.Discard())
	require.NoError(t, err)
	assert.IsType(t, &notification.LogGateway{}, gw)

	cfg.Driver = config.NotifierAMQP
	cfg.AMQPURL = "http://not-a-broker"
	_, err = openGateway(cfg, logger.Discard())
	assert.Error(t, err)

	cfg.Driver = "carrier-pigeon"
	_, err = openGateway(cfg, logger.Discard())
	assert.Error(t, err)
}

func TestOpenStores_UnknownDriver(t *testing.T) {
	cfg := config.NewDefaultConfig().Database
	cfg.Driver = "oracle"

	_, err := openStores(context.Background(), cfg, logger.Discard())
	assert.Error(t, err)
}

func newTestApp(t *testing.T, mutate func(cfg *config.Config)) *app {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.NewDefaultConfig()
	cfg.Server.Port = "127.0.0.1:0"
	if mutate != nil {
		mutate(cfg)
	}

	a, err := newApp(context.Background(), cfg, logger.Discard())
	require.NoError(t, err)
	return a
}

func TestApp_SQLiteEndToEnd(t *testing.T) {
	a := newTestApp(t, func(cfg *config.Config) {
		cfg.Database.Driver = config.DriverSQLite
		cfg.Database.SQLitePath = filepath.Join(t.TempDir(), "ridehail.db")
	})
	defer func() { require.NoError(t, a.close()) }()

	body := `{"name":"John Doe","email":"john.doe@gmail.com","national_id":"97456321558","is_passenger":true}`
	req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.server.Handler.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	req = httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	a.server.Handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	a := newTestApp(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.run(ctx, time.Second) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
	require.NoError(t, a.close())
}

func TestApp_RunClosesConnectionsAfterShutdownTimeout(t *testing.T) {
	a := newTestApp(t, nil)
	defer a.close()

	started := make(chan struct{})
	handlerDone := make(chan struct{})
	a.server.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
		close(handlerDone)
	})
	require.NoError(t, a.listen())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.run(ctx, 50*time.Millisecond) }()

	go func() {
		resp, err := http.Get("http://" + a.listener.Addr().String() + "/slow")
		if err == nil {
			resp.Body.Close()
		}
	}()

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("request never reached the handler")
	}
	cancel()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.DeadlineExceeded)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after the shutdown timeout")
	}

	select {
	case <-handlerDone:
	case <-time.After(5 * time.Second):
		t.Fatal("open connection was not closed after the shutdown timeout")
	}
}

func TestApp_RunReportsListenError(t *testing.T) {
	a := newTestApp(t, func(cfg *config.Config) {
		cfg.Server.Port = "256.0.0.1:99999"
	})
	defer a.close()

	err := a.run(context.Background(), time.Second)
	require.Error(t, err)
}
