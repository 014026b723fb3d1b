package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
)

var (
	ErrMissingCredentials = errors.New("email and password are required")
	ErrMissingUsername    = errors.New("username is required")
	ErrInvalidEmail       = errors.New("a valid email is required")
	ErrMissingResetFields = errors.New("email, otp and new password are required")
)

// Service owns the session lifecycle: sign-in, registration and sign-out.
type Service struct {
	store *Store
	auth  Authenticator
	log   *slog.Logger
	now   func() time.Time
}

func NewService(store *Store, auth Authenticator, log *slog.Logger) *Service {
	return &Service{store: store, auth: auth, log: log, now: time.Now}
}

// Current returns the signed-in session. An expired token is cleared and
// reported as signed out.
func (s *Service) Current(ctx context.Context) (Session, error) {
	sess, err := s.store.Load(ctx)
	if err != nil {
		return Session{}, err
	}
	if sess.Authenticated() && sess.Expired(s.now()) {
		s.log.Info("session token expired, signing out", "user_id", sess.User.ID)
		if err := s.store.Clear(ctx); err != nil {
			return Session{}, err
		}
		return Session{}, nil
	}
	return sess, nil
}

// Login signs in against the backend and persists the session. It returns the
// user and the route the user should land on.
func (s *Service) Login(ctx context.Context, email, password string) (User, string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return User{}, "", ErrMissingCredentials
	}

	res, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return User{}, "", fmt.Errorf("login: %w", err)
	}
	if err := s.persist(ctx, res); err != nil {
		return User{}, "", err
	}
	s.log.Info("signed in", "user_id", res.User.ID, "role", res.User.Role)
	return res.User, RedirectTarget(res.User.Role), nil
}

// Register creates an account and signs the new user in. Role defaults to user.
func (s *Service) Register(ctx context.Context, username, email, password string) (User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" {
		return User{}, ErrMissingUsername
	}
	if email == "" || password == "" {
		return User{}, ErrMissingCredentials
	}
	if !govalidator.IsEmail(email) {
		return User{}, ErrInvalidEmail
	}

	res, err := s.auth.Register(ctx, username, email, password)
	if err != nil {
		return User{}, fmt.Errorf("register: %w", err)
	}
	if res.User.Role == "" {
		res.User.Role = RoleUser
	}
	if err := s.persist(ctx, res); err != nil {
		return User{}, err
	}
	s.log.Info("registered", "user_id", res.User.ID)
	return res.User, nil
}

func (s *Service) Logout(ctx context.Context) error {
	return s.store.Clear(ctx)
}

func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if !govalidator.IsEmail(email) {
		return ErrInvalidEmail
	}
	return s.auth.ForgotPassword(ctx, email)
}

func (s *Service) ResetPassword(ctx context.Context, req ResetRequest) error {
	req.Email = strings.TrimSpace(req.Email)
	req.OTP = strings.TrimSpace(req.OTP)
	if req.Email == "" || req.OTP == "" || req.NewPassword == "" {
		return ErrMissingResetFields
	}
	return s.auth.ResetPassword(ctx, req)
}

func (s *Service) persist(ctx context.Context, res AuthResult) error {
	u := res.User
	if err := s.store.Save(ctx, Session{User: &u, Token: res.Token}); err != nil {
		return err
	}
	return nil
}
