package user

import "errors"

var (
	ErrNotFound        = errors.New("user not found")
	ErrMissingUsername = errors.New("username is required")
	ErrInvalidEmail    = errors.New("a valid email is required")
	ErrMissingPassword = errors.New("password is required")
	ErrInvalidRole     = errors.New("role must be user or admin")
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is an account as listed in the admin console.
type User struct {
	ID        string `json:"_id,omitempty"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// Input is the admin form for creating or editing an account. Password is
// required on create only.
type Input struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Role     string `json:"role"`
}

// Admin is the signed-in administrator shown in the console header.
type Admin struct {
	Name string `json:"name"`
}

const defaultAdminName = "Admin"
