package services_test

import (
	"context"
	"testing"

	"chemcatalog/internal/apperr"
	"chemcatalog/internal/domain"
	"chemcatalog/internal/services"
)

func TestUsers_ProtectedAccountCarveOut(t *testing.T) {
	auth, store, _ := newAuth(t)
	users := services.NewUserService(store, "admin")
	ctx := context.Background()

	_, root, _ := auth.Login(ctx, "admin", "Admin12345", "")
	ops, err := users.Create(root, domain.NewUser{Username: "ops", Password: "OpsPassw0rd", Role: domain.RoleSuperAdmin})
	if err != nil {
		t.Fatal(err)
	}

	newPw := "Changed123"
	if _, err := users.Update(ops, root.ID, domain.UserPatch{Password: &newPw}); kindOf(err) != apperr.KindForbidden {
		t.Fatalf("other super admin changed the protected account: %v", err)
	}
	if err := users.Delete(ops, root.ID); kindOf(err) != apperr.KindForbidden {
		t.Fatalf("other super admin deleted the protected account: %v", err)
	}
	if _, err := users.Update(root, root.ID, domain.UserPatch{Password: &newPw}); err != nil {
		t.Fatalf("protected account could not change itself: %v", err)
	}
	if _, _, err := auth.Login(ctx, "admin", newPw, ""); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}
	if err := users.Delete(root, ops.ID); err != nil {
		t.Fatal(err)
	}
}

func TestUsers_ManagerForbidden(t *testing.T) {
	auth, store, _ := newAuth(t)
	users := services.NewUserService(store, "admin")
	_, mgr, _ := auth.Login(context.Background(), "manager", "Manager12345", "")

	if _, err := users.List(mgr); kindOf(err) != apperr.KindForbidden {
		t.Fatalf("manager listed users: %v", err)
	}
	if _, err := users.Create(mgr, domain.NewUser{Username: "x123", Password: "Passw0rd1", Role: domain.RoleManager}); kindOf(err) != apperr.KindForbidden {
		t.Fatalf("manager created a user: %v", err)
	}
}

func TestUsers_CreateAndPasswordChangeEndsSessions(t *testing.T) {
	auth, store, _ := newAuth(t)
	users := services.NewUserService(store, "admin")
	ctx := context.Background()
	_, root, _ := auth.Login(ctx, "admin", "Admin12345", "")

	if _, err := users.Create(root, domain.NewUser{Username: "manager", Password: "Passw0rd1", Role: domain.RoleManager}); kindOf(err) != apperr.KindConflict {
		t.Fatalf("duplicate username: %v", err)
	}
	if _, err := users.Create(root, domain.NewUser{Username: "weak", Password: "short", Role: domain.RoleManager}); kindOf(err) != apperr.KindValidation {
		t.Fatalf("weak password: %v", err)
	}

	sess, mgr, _ := auth.Login(ctx, "manager", "Manager12345", "")
	pw := "Rotated123"
	role := domain.RoleSuperAdmin
	updated, err := users.Update(root, mgr.ID, domain.UserPatch{Password: &pw, Role: &role})
	if err != nil || updated.Role != domain.RoleSuperAdmin {
		t.Fatalf("update: %+v %v", updated, err)
	}
	if _, err := auth.CurrentUser(sess.Token); err == nil {
		t.Fatal("session survived a password change")
	}

	list, err := users.List(root)
	if err != nil || len(list) != 2 {
		t.Fatalf("list: %+v %v", list, err)
	}
	if err := users.Delete(root, 99); kindOf(err) != apperr.KindNotFound {
		t.Fatalf("missing user: %v", err)
	}
}
