package handlers_test

import (
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
)

type userBody struct {
	User map[string]any `json:"user"`
}

func TestLoginSuccessAndCurrentUser(t *testing.T) {
	env := newEnv(t, nil)

	resp := env.do(t, "POST", "/api/login", fiber.Map{"username": "admin", "password": "Admin12345"}, "")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
	sid := cookieValue(resp, "sid")
	for _, c := range resp.Cookies() {
		if c.Name == "sid" && !c.HttpOnly {
			t.Fatal("sid cookie must be HttpOnly")
		}
	}
	body := decode[userBody](t, resp)
	if body.User["username"] != "admin" || body.User["role"] != "super_admin" {
		t.Fatalf("unexpected user %v", body.User)
	}

	resp = env.do(t, "GET", "/api/current-user", nil, sid)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("current-user: %d", resp.StatusCode)
	}
	raw := bodyString(resp)
	for _, leak := range []string{"password", "hash", "$2"} {
		if strings.Contains(raw, leak) {
			t.Fatalf("current-user leaked %q: %s", leak, raw)
		}
	}
}

func TestLoginFailureIsGeneric(t *testing.T) {
	env := newEnv(t, nil)

	unknown := env.do(t, "POST", "/api/login", fiber.Map{"username": "ghost", "password": "Admin12345"}, "")
	wrong := env.do(t, "POST", "/api/login", fiber.Map{"username": "admin", "password": "nope"}, "")
	if unknown.StatusCode != fiber.StatusUnauthorized || wrong.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("want 401/401, got %d/%d", unknown.StatusCode, wrong.StatusCode)
	}
	a, b := bodyString(unknown), bodyString(wrong)
	if a != b {
		t.Fatalf("failure bodies differ: %s vs %s", a, b)
	}

	missing := env.do(t, "POST", "/api/login", fiber.Map{"username": "admin"}, "")
	if missing.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("missing password: want 400, got %d", missing.StatusCode)
	}
}

func TestLoginLockoutAndExpiry(t *testing.T) {
	env := newEnv(t, nil)
	bad := fiber.Map{"username": "admin", "password": "wrong"}

	for i := 1; i <= 5; i++ {
		if resp := env.do(t, "POST", "/api/login", bad, ""); resp.StatusCode != fiber.StatusUnauthorized {
			t.Fatalf("attempt %d: want 401, got %d", i, resp.StatusCode)
		}
	}
	resp := env.do(t, "POST", "/api/login", fiber.Map{"username": "admin", "password": "Admin12345"}, "")
	if resp.StatusCode != fiber.StatusTooManyRequests {
		t.Fatalf("6th attempt: want 429, got %d", resp.StatusCode)
	}
	if resp.Header.Get("Retry-After") == "" {
		t.Fatal("Retry-After header missing")
	}
	msg := decode[map[string]string](t, resp)["error"]
	if !strings.Contains(msg, "15 minute") {
		t.Fatalf("lock message should carry remaining minutes: %q", msg)
	}

	// other accounts are unaffected
	env.login(t, "manager", "Manager12345")

	env.clock.advance(15*time.Minute + time.Second)
	env.login(t, "admin", "Admin12345")
}

func TestLogoutIdempotentAndTokenRotation(t *testing.T) {
	env := newEnv(t, nil)
	first := env.login(t, "manager", "Manager12345")

	resp := env.do(t, "POST", "/api/login", fiber.Map{"username": "manager", "password": "Manager12345"}, first)
	second := cookieValue(resp, "sid")
	if resp.StatusCode != fiber.StatusOK || second == "" {
		t.Fatalf("relogin: %d", resp.StatusCode)
	}
	if r := env.do(t, "GET", "/api/current-user", nil, first); r.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("previous session should be gone, got %d", r.StatusCode)
	}

	for i := 0; i < 2; i++ {
		if r := env.do(t, "POST", "/api/logout", nil, second); r.StatusCode != fiber.StatusOK {
			t.Fatalf("logout #%d: %d", i+1, r.StatusCode)
		}
	}
	if r := env.do(t, "GET", "/api/current-user", nil, second); r.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("logged out session still valid: %d", r.StatusCode)
	}
}

func TestSessionExpiry(t *testing.T) {
	env := newEnv(t, nil)
	sid := env.login(t, "manager", "Manager12345")

	env.clock.advance(29 * 24 * time.Hour)
	if r := env.do(t, "GET", "/api/current-user", nil, sid); r.StatusCode != fiber.StatusOK {
		t.Fatalf("session expired early: %d", r.StatusCode)
	}
	env.clock.advance(24 * time.Hour)
	if r := env.do(t, "GET", "/api/current-user", nil, sid); r.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("session outlived its ttl: %d", r.StatusCode)
	}
}

func TestTamperedCookieIsAnonymous(t *testing.T) {
	env := newEnv(t, nil)
	if r := env.do(t, "GET", "/api/current-user", nil, "not-a-valid-cookie"); r.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("want 401, got %d", r.StatusCode)
	}
}
