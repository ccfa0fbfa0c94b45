package user

import (
	"fmt"
	"time"
)

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleViewer  Role = "viewer"
)

func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleAdmin, RoleManager, RoleViewer:
		return r, nil
	}

	return "", fmt.Errorf("role must be one of [admin manager viewer], got %q", s)
}

func (r *Role) UnmarshalText(b []byte) error {
	role, err := ParseRole(string(b))
	if err != nil {
		return err
	}

	*r = role

	return nil
}

// User is an account allowed to sign in. PracticeID scopes managers and
// viewers to one practice; admins have none.
type User struct {
	ID             int64
	Email          string
	HashedPassword string
	FullName       string
	Role           Role
	PracticeID     *int64
	LastLogin      *time.Time
}

// Snapshot is the audit representation of a user. The password hash is never
// recorded.
func (u *User) Snapshot() map[string]any {
	snap := map[string]any{
		"email":       u.Email,
		"full_name":   u.FullName,
		"role":        string(u.Role),
		"practice_id": nil,
	}

	if u.PracticeID != nil {
		snap["practice_id"] = *u.PracticeID
	}

	return snap
}
