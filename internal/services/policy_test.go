package services_test

import (
	"testing"

	"chemcatalog/internal/apperr"
	"chemcatalog/internal/domain"
	"chemcatalog/internal/services"
)

func TestRequireRole(t *testing.T) {
	mgr := &domain.PublicUser{ID: 2, Username: "manager", Role: domain.RoleManager}
	root := &domain.PublicUser{ID: 1, Username: "admin", Role: domain.RoleSuperAdmin}

	if kindOf(services.RequireUser(nil)) != apperr.KindUnauthenticated {
		t.Fatal("anonymous should be unauthenticated")
	}
	if err := services.RequireUser(mgr); err != nil {
		t.Fatal(err)
	}
	if kindOf(services.RequireSuperAdmin(mgr)) != apperr.KindForbidden {
		t.Fatal("manager must be forbidden from super admin actions")
	}
	if kindOf(services.RequireSuperAdmin(nil)) != apperr.KindUnauthenticated {
		t.Fatal("anonymous must be unauthenticated, not forbidden")
	}
	if err := services.RequireSuperAdmin(root); err != nil {
		t.Fatal(err)
	}
	if err := services.RequireRole(mgr, domain.RoleManager, domain.RoleSuperAdmin); err != nil {
		t.Fatal(err)
	}
}

func TestCanModifyUser_ProtectedAccount(t *testing.T) {
	protected := &domain.User{ID: 1, Username: "admin", Role: domain.RoleSuperAdmin}
	other := &domain.User{ID: 3, Username: "ops", Role: domain.RoleSuperAdmin}
	self := protected.Public()
	peer := other.Public()

	cases := []struct {
		name   string
		actor  *domain.PublicUser
		target *domain.User
		want   apperr.Kind
		ok     bool
	}{
		{"self modifies protected", self, protected, 0, true},
		{"peer modifies protected", peer, protected, apperr.KindForbidden, false},
		{"protected modifies peer", self, other, 0, true},
		{"manager modifies peer", &domain.PublicUser{ID: 2, Role: domain.RoleManager}, other, apperr.KindForbidden, false},
	}
	for _, tc := range cases {
		err := services.CanModifyUser(tc.actor, tc.target, "admin")
		if tc.ok && err != nil {
			t.Fatalf("%s: unexpected %v", tc.name, err)
		}
		if !tc.ok && kindOf(err) != tc.want {
			t.Fatalf("%s: want kind %v, got %v", tc.name, tc.want, err)
		}
	}
}
