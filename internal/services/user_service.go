package services

import (
	"strings"

	"chemcatalog/internal/apperr"
	"chemcatalog/internal/domain"
	"chemcatalog/internal/repos"
	"chemcatalog/internal/validate"
)

type AccountStore interface {
	repos.UserStore
	repos.SessionStore
}

// UserService manages admin accounts. Every method expects the acting user
// and enforces the super admin and protected-account rules itself.
type UserService struct {
	Store     AccountStore
	Protected string
}

func NewUserService(s AccountStore, protectedUsername string) *UserService {
	return &UserService{Store: s, Protected: protectedUsername}
}

func publicUsers(us []domain.User) []domain.PublicUser {
	out := make([]domain.PublicUser, 0, len(us))
	for i := range us {
		out = append(out, *us[i].Public())
	}
	return out
}

func (s *UserService) List(actor *domain.PublicUser) ([]domain.PublicUser, error) {
	if err := RequireSuperAdmin(actor); err != nil {
		return nil, err
	}
	us, err := s.Store.ListUsers()
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return publicUsers(us), nil
}

func (s *UserService) Create(actor *domain.PublicUser, in domain.NewUser) (*domain.PublicUser, error) {
	if err := RequireSuperAdmin(actor); err != nil {
		return nil, err
	}
	in.Username = strings.TrimSpace(in.Username)
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	u, err := s.Store.CreateUser(in)
	if err != nil {
		return nil, storeErr(err, "User")
	}
	return u.Public(), nil
}

func (s *UserService) target(actor *domain.PublicUser, id int64) (*domain.User, error) {
	if err := RequireSuperAdmin(actor); err != nil {
		return nil, err
	}
	u, err := s.Store.GetUser(id)
	if err != nil {
		return nil, storeErr(err, "User")
	}
	if err := CanModifyUser(actor, u, s.Protected); err != nil {
		return nil, err
	}
	return u, nil
}

// Update changes role and/or password. A password change ends the user's
// sessions.
func (s *UserService) Update(actor *domain.PublicUser, id int64, p domain.UserPatch) (*domain.PublicUser, error) {
	if _, err := s.target(actor, id); err != nil {
		return nil, err
	}
	if err := validate.Struct(p); err != nil {
		return nil, err
	}
	u, err := s.Store.UpdateUser(id, p)
	if err != nil {
		return nil, storeErr(err, "User")
	}
	if p.Password != nil {
		if err := s.Store.DeleteUserSessions(id); err != nil {
			return nil, apperr.Internal(err)
		}
	}
	return u.Public(), nil
}

func (s *UserService) Delete(actor *domain.PublicUser, id int64) error {
	if _, err := s.target(actor, id); err != nil {
		return err
	}
	ok, err := s.Store.DeleteUser(id)
	if err := deleteResult(ok, err, "User"); err != nil {
		return err
	}
	if err := s.Store.DeleteUserSessions(id); err != nil {
		return apperr.Internal(err)
	}
	return nil
}
