package repos

import (
	"errors"
	"strings"
	"time"

	"chemcatalog/internal/domain"
	"chemcatalog/internal/password"
)

const userCols = `id, username, password_hash, role, created_at`

func (s *SQLStore) GetUser(id int64) (*domain.User, error) {
	return getOne[domain.User](s.db, `SELECT `+userCols+` FROM users WHERE id = ?`, id)
}

// GetUserByUsername matches the username exactly (case-sensitive).
func (s *SQLStore) GetUserByUsername(username string) (*domain.User, error) {
	return getOne[domain.User](s.db, `SELECT `+userCols+` FROM users WHERE username = ?`, username)
}

func (s *SQLStore) ListUsers() ([]domain.User, error) {
	out := []domain.User{}
	err := s.db.Select(&out, `SELECT `+userCols+` FROM users ORDER BY id`)
	return out, err
}

func (s *SQLStore) CreateUser(in domain.NewUser) (*domain.User, error) {
	if _, err := s.GetUserByUsername(in.Username); err == nil {
		return nil, ErrDuplicate
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	hash, err := password.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	res, err := s.db.Exec(`INSERT INTO users(username, password_hash, role, created_at) VALUES(?,?,?,?)`,
		in.Username, hash, in.Role, stamp(s.now()))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return s.GetUser(id)
}

func (s *SQLStore) UpdateUser(id int64, p domain.UserPatch) (*domain.User, error) {
	u, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}
	if p.Password != nil {
		if u.Hash, err = password.Hash(*p.Password); err != nil {
			return nil, err
		}
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if _, err := s.db.Exec(`UPDATE users SET password_hash = ?, role = ? WHERE id = ?`, u.Hash, u.Role, id); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *SQLStore) DeleteUser(id int64) (bool, error) {
	return deleted(s.db.Exec(`DELETE FROM users WHERE id = ?`, id))
}

func (s *SQLStore) ValidateUser(username, plain string) (*domain.User, error) {
	u, err := s.GetUserByUsername(username)
	if errors.Is(err, ErrNotFound) {
		password.CompareDummy(plain)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !password.Compare(plain, u.Hash) {
		return nil, nil
	}
	return u, nil
}

type sessionRow struct {
	Token     string `db:"token"`
	UserID    int64  `db:"user_id"`
	ExpiresAt int64  `db:"expires_at"`
	CreatedAt string `db:"created_at"`
}

func (s *SQLStore) CreateSession(sess domain.Session) error {
	_, err := s.db.Exec(`INSERT INTO sessions(token, user_id, expires_at, created_at) VALUES(?,?,?,?)
                          ON CONFLICT(token) DO UPDATE SET user_id = excluded.user_id, expires_at = excluded.expires_at`,
		sess.Token, sess.UserID, sess.ExpiresAt.Unix(), sess.CreatedAt)
	return err
}

func (s *SQLStore) GetSession(token string) (*domain.Session, error) {
	r, err := getOne[sessionRow](s.db, `SELECT token, user_id, expires_at, created_at FROM sessions WHERE token = ?`, token)
	if err != nil {
		return nil, err
	}
	return &domain.Session{Token: r.Token, UserID: r.UserID, ExpiresAt: time.Unix(r.ExpiresAt, 0), CreatedAt: r.CreatedAt}, nil
}

func (s *SQLStore) DeleteSession(token string) error {
	_, err := s.db.Exec(`DELETE FROM sessions WHERE token = ?`, token)
	return err
}

func (s *SQLStore) DeleteUserSessions(userID int64) error {
	_, err := s.db.Exec(`DELETE FROM sessions WHERE user_id = ?`, userID)
	return err
}
