package domain

import "time"

const (
	RoleSuperAdmin = "super_admin"
	RoleManager    = "manager"
)

type User struct {
	ID        int64  `db:"id" json:"id"`
	Username  string `db:"username" json:"username"`
	Hash      string `db:"password_hash" json:"-"`
	Role      string `db:"role" json:"role"`
	CreatedAt string `db:"created_at" json:"createdAt"`
}

// PublicUser is the only user shape that is ever serialized to clients.
type PublicUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func (u *User) Public() *PublicUser {
	return &PublicUser{ID: u.ID, Username: u.Username, Role: u.Role}
}

type NewUser struct {
	Username string `json:"username" validate:"required,username"`
	Password string `json:"password" validate:"required,strongpw"`
	Role     string `json:"role" validate:"required,oneof=super_admin manager"`
}

type UserPatch struct {
	Password *string `json:"password" validate:"omitnil,strongpw"`
	Role     *string `json:"role" validate:"omitnil,oneof=super_admin manager"`
}

type Session struct {
	Token     string
	UserID    int64
	ExpiresAt time.Time
	CreatedAt string
}

type Credentials struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required,max=200"`
}
