// Package newsletter handles mailing list sign-ups.
package newsletter

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/asaskevich/govalidator"
	"github.com/wichananm65/storefront/internal/backend"
)

var ErrInvalidEmail = errors.New("a valid email is required")

const (
	SuccessMessage = "Subscribed successfully!"
	FailureMessage = "Subscription failed."
)

type Subscriber struct {
	ID        string `json:"_id"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt,omitempty"`
}

type Repository interface {
	Subscribe(ctx context.Context, email string) error
	List(ctx context.Context, token string) ([]Subscriber, error)
	Delete(ctx context.Context, token, id string) error
}

type HTTPRepository struct {
	client *backend.Client
}

func NewHTTPRepository(c *backend.Client) *HTTPRepository {
	return &HTTPRepository{client: c}
}

func (r *HTTPRepository) Subscribe(ctx context.Context, email string) error {
	return r.client.Do(ctx, http.MethodPost, "/api/subscribe", "", map[string]string{"email": email}, nil)
}

func (r *HTTPRepository) List(ctx context.Context, token string) ([]Subscriber, error) {
	var subs []Subscriber
	if err := r.client.Do(ctx, http.MethodGet, "/api/subscribe", token, nil, &subs); err != nil {
		return nil, err
	}
	if subs == nil {
		subs = []Subscriber{}
	}
	return subs, nil
}

func (r *HTTPRepository) Delete(ctx context.Context, token, id string) error {
	return r.client.Do(ctx, http.MethodDelete, "/api/subscribe/"+url.PathEscape(id), token, nil, nil)
}

type Service struct {
	repo Repository
	log  *slog.Logger
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

func (s *Service) Subscribe(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if !govalidator.IsEmail(email) {
		return ErrInvalidEmail
	}
	if err := s.repo.Subscribe(ctx, email); err != nil {
		return err
	}
	s.log.Info("newsletter subscription added")
	return nil
}

func (s *Service) List(ctx context.Context, token string) ([]Subscriber, error) {
	return s.repo.List(ctx, token)
}

func (s *Service) Delete(ctx context.Context, token, id string) error {
	return s.repo.Delete(ctx, token, id)
}
