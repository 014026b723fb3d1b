// Package session keeps the signed-in user and bearer token in durable storage
// and gates pages that require them.
package session

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Durable storage keys.
const (
	KeyUser  = "user"
	KeyToken = "token"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is the identity returned by the backend on login/register.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// Session is the locally persisted authentication state. A zero Session means
// nobody is signed in.
type Session struct {
	User  *User  `json:"user,omitempty"`
	Token string `json:"token,omitempty"`
}

func (s Session) Authenticated() bool {
	return s.User != nil
}

func (s Session) IsAdmin() bool {
	return s.User != nil && s.User.Role == RoleAdmin
}

// Expired reports whether the token is a JWT whose exp claim is before now.
// Opaque (non-JWT) tokens never expire client side.
func (s Session) Expired(now time.Time) bool {
	if s.Token == "" {
		return false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.Token, claims); err != nil {
		return false
	}
	if _, ok := claims["exp"]; !ok {
		return false
	}
	return !claims.VerifyExpiresAt(now.Unix(), true)
}

// RedirectTarget is where a user lands after signing in.
func RedirectTarget(role string) string {
	if role == RoleAdmin {
		return "/admin/dashboard"
	}
	return "/"
}
