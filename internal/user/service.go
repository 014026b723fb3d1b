package user

import (
	"context"
	"log/slog"
	"strings"

	"github.com/asaskevich/govalidator"
)

type Service struct {
	repo Repository
	log  *slog.Logger
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

func (s *Service) List(ctx context.Context, token string) ([]User, error) {
	return s.repo.List(ctx, token)
}

func normalize(in Input, requirePassword bool) (Input, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	in.Role = strings.ToLower(strings.TrimSpace(in.Role))
	if in.Role == "" {
		in.Role = RoleUser
	}
	switch {
	case in.Username == "":
		return Input{}, ErrMissingUsername
	case !govalidator.IsEmail(in.Email):
		return Input{}, ErrInvalidEmail
	case requirePassword && in.Password == "":
		return Input{}, ErrMissingPassword
	case in.Role != RoleUser && in.Role != RoleAdmin:
		return Input{}, ErrInvalidRole
	}
	return in, nil
}

func (s *Service) Create(ctx context.Context, token string, in Input) (User, error) {
	in, err := normalize(in, true)
	if err != nil {
		return User{}, err
	}
	u, err := s.repo.Create(ctx, token, in)
	if err != nil {
		return User{}, err
	}
	s.log.Info("user created", "username", in.Username, "role", in.Role)
	return u, nil
}

// Update edits an account. An empty password leaves the current one in place.
func (s *Service) Update(ctx context.Context, token, id string, in Input) (User, error) {
	in, err := normalize(in, false)
	if err != nil {
		return User{}, err
	}
	return s.repo.Update(ctx, token, id, in)
}

func (s *Service) Delete(ctx context.Context, token, id string) error {
	if err := s.repo.Delete(ctx, token, id); err != nil {
		return err
	}
	s.log.Info("user deleted", "user_id", id)
	return nil
}

// Me never fails: the console falls back to a generic name.
func (s *Service) Me(ctx context.Context, token string) Admin {
	a, err := s.repo.Me(ctx, token)
	if err != nil {
		s.log.Debug("admin profile unavailable", "error", err)
		return Admin{Name: defaultAdminName}
	}
	if strings.TrimSpace(a.Name) == "" {
		a.Name = defaultAdminName
	}
	return a
}
