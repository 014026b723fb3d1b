package session

import (
	"context"
	"net/http"

	"github.com/wichananm65/storefront/internal/backend"
)

// AuthResult is the backend's login/register response.
type AuthResult struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// ResetRequest completes a forgot-password flow with the emailed OTP.
type ResetRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"newPassword"`
}

// Authenticator is the backend's auth surface.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (AuthResult, error)
	Register(ctx context.Context, username, email, password string) (AuthResult, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req ResetRequest) error
}

// HTTPAuthenticator calls /api/auth/* on the backend.
type HTTPAuthenticator struct {
	client *backend.Client
}

var _ Authenticator = (*HTTPAuthenticator)(nil)

func NewHTTPAuthenticator(c *backend.Client) *HTTPAuthenticator {
	return &HTTPAuthenticator{client: c}
}

func (a *HTTPAuthenticator) Login(ctx context.Context, email, password string) (AuthResult, error) {
	var out AuthResult
	err := a.client.Do(ctx, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	}, &out)
	return out, err
}

func (a *HTTPAuthenticator) Register(ctx context.Context, username, email, password string) (AuthResult, error) {
	var out AuthResult
	err := a.client.Do(ctx, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, &out)
	return out, err
}

func (a *HTTPAuthenticator) ForgotPassword(ctx context.Context, email string) error {
	return a.client.Do(ctx, http.MethodPost, "/api/auth/forgot-password", "", map[string]string{"email": email}, nil)
}

func (a *HTTPAuthenticator) ResetPassword(ctx context.Context, req ResetRequest) error {
	return a.client.Do(ctx, http.MethodPost, "/api/auth/reset-password", "", req, nil)
}
