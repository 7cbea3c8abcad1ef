// Package auth resolves the identity of the local author.
package auth

import (
	"errors"
	"os/user"
)

// Role decides what a user may do with the record store.
type Role string

const (
	RoleAuthor Role = "author"
	RoleAdmin  Role = "admin"
	RoleViewer Role = "viewer"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleAuthor, RoleAdmin, RoleViewer:
		return true
	}
	return false
}

// CanImport reports whether r may bulk-import quizzes.
func (r Role) CanImport() bool { return r == RoleAuthor || r == RoleAdmin }

// ErrForbidden is returned when the current role may not perform an action.
var ErrForbidden = errors.New("forbidden for current role")

// User is the current identity.
type User struct {
	Name string
	Role Role
}

// Current returns the user named by name and role, falling back to the OS
// account name and the author role.
func Current(name, role string) User {
	u := User{Name: name, Role: Role(role)}
	if u.Name == "" {
		if osu, err := user.Current(); err == nil {
			u.Name = osu.Username
		}
	}
	if u.Name == "" {
		u.Name = "anonymous"
	}
	if !u.Role.Valid() {
		u.Role = RoleAuthor
	}
	return u
}
