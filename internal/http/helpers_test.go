package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"golang.org/x/crypto/bcrypt"

	"chemcatalog/internal/config"
	"chemcatalog/internal/domain"
	"chemcatalog/internal/http/handlers"
	"chemcatalog/internal/password"
	"chemcatalog/internal/repos"
	"chemcatalog/internal/services"
)

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

type testEnv struct {
	app   *fiber.App
	store repos.Store
	deps  *handlers.Deps
	clock *clock
}

func testConfig() config.Config {
	return config.Config{
		AppEnv:            "production",
		SessionSecret:     encryptcookie.GenerateKey(),
		SessionTTL:        30 * 24 * time.Hour,
		BodyLimit:         1 << 20,
		MaxLoginAttempts:  5,
		LockDuration:      15 * time.Minute,
		ProtectedUsername: "admin",
	}
}

// newEnv builds the full app over a seeded in-memory SQLite store.
func newEnv(t *testing.T, tweak func(*config.Config)) *testEnv {
	t.Helper()
	password.Cost = bcrypt.MinCost
	cfg := testConfig()
	if tweak != nil {
		tweak(&cfg)
	}
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	store := repos.NewSQLStore(db)
	t.Cleanup(func() { _ = store.Close() })
	err = repos.SeedUsers(store, []domain.NewUser{
		{Username: "admin", Password: "Admin12345", Role: domain.RoleSuperAdmin},
		{Username: "manager", Password: "Manager12345", Role: domain.RoleManager},
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	clk := &clock{t: time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)}
	lockout := services.NewMemoryLockout(services.LockoutPolicy{MaxAttempts: cfg.MaxLoginAttempts, Duration: cfg.LockDuration})
	deps := handlers.NewDeps(store, cfg, lockout)
	deps.AuthService.Now = clk.now
	return &testEnv{app: handlers.NewApp(cfg, deps), store: store, deps: deps, clock: clk}
}

func cookieValue(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

// do sends a JSON request; sid may be empty.
func (e *testEnv) do(t *testing.T, method, path string, body any, sid string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	}
	resp, err := e.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func (e *testEnv) login(t *testing.T, username, pass string) string {
	t.Helper()
	resp := e.do(t, "POST", "/api/login", fiber.Map{"username": username, "password": pass}, "")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("login %s: status %d", username, resp.StatusCode)
	}
	sid := cookieValue(resp, "sid")
	if sid == "" {
		t.Fatal("sid cookie missing")
	}
	return sid
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return v
}

func bodyString(resp *http.Response) string {
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return string(b)
}

type logEntry struct {
	Level  string         `json:"level"`
	Action string         `json:"action"`
	UserID string         `json:"user_id"`
	Fields map[string]any `json:"fields"`
}

// captureLogs temporarily replaces the standard logger output.
func captureLogs(t *testing.T, fn func()) []logEntry {
	t.Helper()
	var buf bytes.Buffer
	var mu sync.Mutex
	oldW := log.Writer()
	oldFlags := log.Flags()
	log.SetOutput(&lockedWriter{w: &buf, mu: &mu})
	log.SetFlags(0)
	defer func() {
		log.SetOutput(oldW)
		log.SetFlags(oldFlags)
	}()

	fn()

	var entries []logEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var e logEntry
		if err := json.Unmarshal([]byte(strings.TrimSpace(line)), &e); err == nil && e.Action != "" {
			entries = append(entries, e)
		}
	}
	return entries
}

type lockedWriter struct {
	w  *bytes.Buffer
	mu *sync.Mutex
}

func (lw *lockedWriter) Write(p []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	return lw.w.Write(p)
}

func findLog(entries []logEntry, action string) (logEntry, bool) {
	for _, e := range entries {
		if e.Action == action {
			return e, true
		}
	}
	return logEntry{}, false
}
