package services

import (
	"slices"

	"chemcatalog/internal/apperr"
	"chemcatalog/internal/domain"
)

// RequireUser allows any authenticated user.
func RequireUser(u *domain.PublicUser) error {
	if u == nil {
		return ErrNoSession
	}
	return nil
}

// RequireRole allows users holding one of roles.
func RequireRole(u *domain.PublicUser, roles ...string) error {
	if err := RequireUser(u); err != nil {
		return err
	}
	if slices.Contains(roles, u.Role) {
		return nil
	}
	return apperr.Forbidden("Insufficient permissions")
}

func RequireSuperAdmin(u *domain.PublicUser) error {
	if err := RequireRole(u, domain.RoleSuperAdmin); err != nil {
		if apperr.As(err).Kind == apperr.KindForbidden {
			return apperr.Forbidden("Super admin access required")
		}
		return err
	}
	return nil
}

// CanModifyUser decides whether actor may update or delete target. The
// protected account can only be changed by itself, even by other super admins.
func CanModifyUser(actor *domain.PublicUser, target *domain.User, protectedUsername string) error {
	if err := RequireSuperAdmin(actor); err != nil {
		return err
	}
	if protectedUsername != "" && target.Username == protectedUsername && actor.ID != target.ID {
		return apperr.Forbidden("This account can only be modified by its owner")
	}
	return nil
}
