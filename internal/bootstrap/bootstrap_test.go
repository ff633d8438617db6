package bootstrap_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/filesmanager/internal/bootstrap"
	"github.com/dmitrymomot/filesmanager/pkg/clientip"
	"github.com/dmitrymomot/filesmanager/pkg/config"
	"github.com/dmitrymomot/filesmanager/pkg/email"
	"github.com/dmitrymomot/filesmanager/pkg/file"
	"github.com/dmitrymomot/filesmanager/pkg/queue"
	"github.com/dmitrymomot/filesmanager/pkg/ratelimiter"
	"github.com/dmitrymomot/filesmanager/pkg/redis"
	"github.com/dmitrymomot/filesmanager/pkg/requestid"
	"github.com/dmitrymomot/filesmanager/pkg/session"
	"github.com/dmitrymomot/filesmanager/svc/store"
)

type recordingSender struct {
	mu   sync.Mutex
	sent []email.SendEmailParams
}

func (s *recordingSender) SendEmail(_ context.Context, params email.SendEmailParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, params)
	return nil
}

func (s *recordingSender) recipients() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.sent))
	for _, p := range s.sent {
		out = append(out, p.SendTo)
	}
	return out
}

func testConfig() bootstrap.Config {
	return bootstrap.Config{
		Env:        "development",
		BcryptCost: 4,
		Session:    session.DefaultConfig(),
		Queue: queue.Config{
			PollInterval:       5 * time.Millisecond,
			LockTimeout:        time.Minute,
			MaxConcurrentTasks: 2,
			KeyPrefix:          "{test}",
		},
		LoginLimit: ratelimiter.Config{
			Enabled:        true,
			Capacity:       5,
			RefillRate:     1,
			RefillInterval: time.Minute,
		},
	}
}

func newApp(t *testing.T, sender email.EmailSender) *bootstrap.App {
	t.Helper()
	ctx := context.Background()

	srv := miniredis.RunT(t)
	rdb, err := redis.Connect(ctx, redis.Config{ConnectionURL: "redis://" + srv.Addr(), RetryAttempts: 1})
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	blobs, err := file.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	records := store.NewMemory()
	cfg := testConfig()
	app, err := bootstrap.Assemble(cfg, bootstrap.Components{
		Store:        records,
		SessionStore: redis.NewStorage(rdb),
		Blobs:        blobs,
		Tasks:        queue.NewRedisStorage(rdb, cfg.Queue.KeyPrefix),
		Mailer:       sender,
		RedisCheck:   redis.Healthcheck(rdb),
		DBCheck:      records.Ping,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return app
}

type client struct {
	t   *testing.T
	srv http.Handler
}

func (c client) do(method, path, body string, headers ...string) *httptest.ResponseRecorder {
	c.t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	c.srv.ServeHTTP(rec, req)
	return rec
}

func TestAssemble_RequiresComponents(t *testing.T) {
	t.Parallel()

	_, err := bootstrap.Assemble(testConfig(), bootstrap.Components{})
	assert.ErrorIs(t, err, bootstrap.ErrMissingComponent)
}

func TestAssemble_RejectsInvalidTrustedProxy(t *testing.T) {
	t.Parallel()

	blobs, err := file.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	tasks := queue.NewMemoryStorage()
	t.Cleanup(func() { _ = tasks.Close() })
	sessions := session.NewMemoryStore(time.Minute)
	t.Cleanup(func() { _ = sessions.Close() })

	cfg := testConfig()
	cfg.TrustedProxies = []string{"10.0.0.0/8", "proxy.local"}
	_, err = bootstrap.Assemble(cfg, bootstrap.Components{
		Store:        store.NewMemory(),
		SessionStore: sessions,
		Blobs:        blobs,
		Tasks:        tasks,
	})
	assert.ErrorIs(t, err, clientip.ErrInvalidProxy)
}

func TestRouter_EndToEnd(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	sender := &recordingSender{}

	app := newApp(t, sender)
	c := client{t: t, srv: app.Router()}

	w, err := app.NewWorker()
	require.NoError(t, err)
	require.NoError(t, w.Start(ctx))
	t.Cleanup(func() { _ = w.Stop() })

	rec := c.do(http.MethodGet, "/status", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"redis":true,"db":true}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(requestid.Header))

	rec = c.do(http.MethodPost, "/users", `{"email":"bob@dylan.com","password":"toto1234!"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	creds := base64.StdEncoding.EncodeToString([]byte("bob@dylan.com:toto1234!"))
	rec = c.do(http.MethodGet, "/connect", "", "Authorization", "Basic "+creds)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "5", rec.Header().Get("X-RateLimit-Limit"))
	var tok struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tok))

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 50, 25))))
	body := fmt.Sprintf(`{"name":"image.png","type":"image","isPublic":true,"data":%q}`,
		base64.StdEncoding.EncodeToString(buf.Bytes()))
	rec = c.do(http.MethodPost, "/files", body, "X-Token", tok.Token)
	require.Equal(t, http.StatusCreated, rec.Code)
	var img struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &img))

	require.Eventually(t, func() bool {
		return c.do(http.MethodGet, "/files/"+img.ID+"/data?size=100", "").Code == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	rec = c.do(http.MethodGet, "/files/"+img.ID+"/data?size=100", "")
	cfg, _, err := image.DecodeConfig(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Width)

	rec = c.do(http.MethodGet, "/stats", "")
	assert.JSONEq(t, `{"users":1,"files":1}`, rec.Body.String())

	require.Eventually(t, func() bool {
		return len(sender.recipients()) == 1
	}, 5*time.Second, 20*time.Millisecond)
	assert.Equal(t, []string{"bob@dylan.com"}, sender.recipients())

	rec = c.do(http.MethodGet, "/disconnect", "", "X-Token", tok.Token)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = c.do(http.MethodGet, "/nowhere", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Not found"}`, rec.Body.String())
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.LogLevel = "warn"
	log := bootstrap.NewLogger(cfg, "api")
	assert.False(t, log.Enabled(context.Background(), -4))
	assert.True(t, log.Enabled(context.Background(), 4))
}

func TestLoadConfig(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)

	t.Setenv("APP_ENV", "production")
	t.Setenv("PORT", "8080")
	t.Setenv("DB_DATABASE", "files_test")
	t.Setenv("LOGIN_RATE_LIMIT_ENABLED", "false")

	cfg, err := bootstrap.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "files_test", cfg.Mongo.Database)
	assert.Equal(t, "/tmp/files_manager", cfg.Storage.Root)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.False(t, cfg.LoginLimit.Enabled)

	config.Reset()
	t.Setenv("APP_ENV", "moon")
	_, err = bootstrap.LoadConfig()
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}
