package handlers_test

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestAdminRoutesRequireSession(t *testing.T) {
	env := newEnv(t, nil)
	cases := []struct{ method, path string }{
		{"POST", "/api/admin/categories"},
		{"PUT", "/api/admin/products/1"},
		{"DELETE", "/api/admin/product-images/1"},
		{"GET", "/api/admin/contact-requests"},
		{"PUT", "/api/admin/settings/phone"},
		{"GET", "/api/admin/users"},
	}
	for _, tc := range cases {
		resp := env.do(t, tc.method, tc.path, fiber.Map{"name": "x"}, "")
		if resp.StatusCode != fiber.StatusUnauthorized {
			t.Fatalf("%s %s: want 401, got %d", tc.method, tc.path, resp.StatusCode)
		}
		if body := decode[map[string]string](t, resp); body["error"] == "" {
			t.Fatalf("%s %s: 401 without JSON error body", tc.method, tc.path)
		}
	}
}

func TestDeniedRequestHasNoSideEffects(t *testing.T) {
	env := newEnv(t, nil)
	_ = env.do(t, "POST", "/api/admin/categories", fiber.Map{"name": "Acids"}, "")
	cats, _ := env.store.ListCategories()
	if len(cats) != 0 {
		t.Fatalf("rejected request created a category: %+v", cats)
	}
}

func TestUsersRequireSuperAdmin(t *testing.T) {
	env := newEnv(t, nil)
	mgr := env.login(t, "manager", "Manager12345")

	if r := env.do(t, "GET", "/api/admin/users", nil, mgr); r.StatusCode != fiber.StatusForbidden {
		t.Fatalf("manager listing users: want 403, got %d", r.StatusCode)
	}
	// managers still reach the regular admin surface
	if r := env.do(t, "POST", "/api/admin/categories", fiber.Map{"name": "Acids"}, mgr); r.StatusCode != fiber.StatusCreated {
		t.Fatalf("manager creating category: want 201, got %d", r.StatusCode)
	}

	root := env.login(t, "admin", "Admin12345")
	r := env.do(t, "GET", "/api/admin/users", nil, root)
	if r.StatusCode != fiber.StatusOK {
		t.Fatalf("super admin listing users: %d", r.StatusCode)
	}
	users := decode[[]map[string]any](t, r)
	if len(users) != 2 {
		t.Fatalf("want 2 users, got %d", len(users))
	}
	for _, u := range users {
		if _, leaked := u["password"]; leaked {
			t.Fatal("user listing leaked a password field")
		}
	}
}

func TestProtectedAccountCarveOut(t *testing.T) {
	env := newEnv(t, nil)
	root := env.login(t, "admin", "Admin12345")
	admin, _ := env.store.GetUserByUsername("admin")

	r := env.do(t, "POST", "/api/admin/users", fiber.Map{"username": "ops", "password": "OpsPassw0rd", "role": "super_admin"}, root)
	if r.StatusCode != fiber.StatusCreated {
		t.Fatalf("create ops: %d %s", r.StatusCode, bodyString(r))
	}
	ops := env.login(t, "ops", "OpsPassw0rd")
	target := fmt.Sprintf("/api/admin/users/%d", admin.ID)

	if r := env.do(t, "PUT", target, fiber.Map{"role": "manager"}, ops); r.StatusCode != fiber.StatusForbidden {
		t.Fatalf("peer demoting protected account: want 403, got %d", r.StatusCode)
	}
	if r := env.do(t, "DELETE", target, nil, ops); r.StatusCode != fiber.StatusForbidden {
		t.Fatalf("peer deleting protected account: want 403, got %d", r.StatusCode)
	}
	if u, _ := env.store.GetUser(admin.ID); u == nil || u.Role != "super_admin" {
		t.Fatalf("protected account changed: %+v", u)
	}

	// self-modification is allowed
	if r := env.do(t, "PUT", target, fiber.Map{"password": "NewAdmin123"}, root); r.StatusCode != fiber.StatusOK {
		t.Fatalf("self update: want 200, got %d", r.StatusCode)
	}
	env.login(t, "admin", "NewAdmin123")
}

func TestAccessDeniedIsLogged(t *testing.T) {
	env := newEnv(t, nil)
	mgr := env.login(t, "manager", "Manager12345")
	logs := captureLogs(t, func() {
		_ = env.do(t, "GET", "/api/admin/users", nil, mgr)
	})
	e, ok := findLog(logs, "access.denied.superadmin")
	if !ok {
		t.Fatal("access.denied.superadmin not logged")
	}
	if e.Level != "warn" || e.UserID == "" {
		t.Fatalf("unexpected entry %+v", e)
	}
}
