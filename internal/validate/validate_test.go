package validate_test

import (
	"errors"
	"strings"
	"testing"

	"chemcatalog/internal/apperr"
	"chemcatalog/internal/domain"
	"chemcatalog/internal/validate"
)

func TestStructContactInput(t *testing.T) {
	ok := domain.ContactInput{Name: "Ivan", Email: "ivan@example.com", Phone: "+1 (555) 010-0100"}
	if err := validate.Struct(ok); err != nil {
		t.Fatalf("valid contact rejected: %v", err)
	}

	err := validate.Struct(domain.ContactInput{Name: "", Email: "not-an-email", Phone: "abc"})
	var ae *apperr.Error
	if !errors.As(err, &ae) || ae.Kind != apperr.KindValidation {
		t.Fatalf("want validation error, got %v", err)
	}
	for _, want := range []string{"name is required", "email must be a valid email", "phone must be a valid phone"} {
		if !strings.Contains(ae.Message, want) {
			t.Fatalf("message %q missing %q", ae.Message, want)
		}
	}
}

func TestStructPatchPointers(t *testing.T) {
	empty := ""
	if err := validate.Struct(domain.CategoryPatch{}); err != nil {
		t.Fatalf("empty patch should be valid: %v", err)
	}
	if err := validate.Struct(domain.CategoryPatch{Name: &empty}); err == nil {
		t.Fatal("explicit empty name should be rejected")
	}
}

func TestStructNewUser(t *testing.T) {
	cases := []struct {
		in domain.NewUser
		ok bool
	}{
		{domain.NewUser{Username: "jane.doe", Password: "Passw0rd1", Role: domain.RoleManager}, true},
		{domain.NewUser{Username: "jd", Password: "Passw0rd1", Role: domain.RoleManager}, false},
		{domain.NewUser{Username: "jane", Password: "password", Role: domain.RoleManager}, false},
		{domain.NewUser{Username: "jane", Password: "Passw0rd1", Role: "owner"}, false},
	}
	for _, tc := range cases {
		err := validate.Struct(tc.in)
		if (err == nil) != tc.ok {
			t.Fatalf("%+v: ok=%v err=%v", tc.in, tc.ok, err)
		}
	}
}

func TestImageRef(t *testing.T) {
	for s, want := range map[string]bool{
		"/uploads/a.png":            true,
		"https://cdn.example/a.png": true,
		"//evil.example/a.png":      false,
		"/../etc/passwd":            false,
		"javascript:alert(1)":       false,
		"":                          false,
	} {
		if got := validate.ImageRef(s); got != want {
			t.Fatalf("ImageRef(%q) = %v, want %v", s, got, want)
		}
	}
}

func TestID(t *testing.T) {
	if id, ok := validate.ID("42"); !ok || id != 42 {
		t.Fatalf("ID(42) = %d %v", id, ok)
	}
	for _, s := range []string{"", "0", "-1", "abc", "1.5"} {
		if _, ok := validate.ID(s); ok {
			t.Fatalf("ID(%q) should be rejected", s)
		}
	}
}
