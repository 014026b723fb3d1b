// Package contact accepts messages from the contact form and lets admins
// review them.
package contact

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

var (
	ErrMissingName    = errors.New("name is required")
	ErrInvalidEmail   = errors.New("a valid email is required")
	ErrMissingMessage = errors.New("message is required")
)

const (
	FailureMessage = "Failed to send message. Try again later."
	SuccessMessage = "Message sent. Thank you!"
)

// Message is a contact form submission.
type Message struct {
	ID        string `json:"_id,omitempty"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
	CreatedAt string `json:"createdAt,omitempty"`
}

type Repository interface {
	Create(ctx context.Context, m Message) error
	List(ctx context.Context, token string) ([]Message, error)
	Delete(ctx context.Context, token, id string) error
}

type HTTPRepository struct {
	client *backend.Client
}

func NewHTTPRepository(c *backend.Client) *HTTPRepository {
	return &HTTPRepository{client: c}
}

func (r *HTTPRepository) Create(ctx context.Context, m Message) error {
	return r.client.Do(ctx, http.MethodPost, "/api/create", "", m, nil)
}

func (r *HTTPRepository) List(ctx context.Context, token string) ([]Message, error) {
	var msgs []Message
	if err := r.client.Do(ctx, http.MethodGet, "/api/messages", token, nil, &msgs); err != nil {
		return nil, err
	}
	if msgs == nil {
		msgs = []Message{}
	}
	return msgs, nil
}

func (r *HTTPRepository) Delete(ctx context.Context, token, id string) error {
	return r.client.Do(ctx, http.MethodDelete, "/api/messages/"+url.PathEscape(id), token, nil, nil)
}

type Service struct {
	repo Repository
	log  *slog.Logger
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

func (s *Service) Send(ctx context.Context, m Message) error {
	m.Name = strings.TrimSpace(m.Name)
	m.Email = strings.TrimSpace(m.Email)
	m.Subject = strings.TrimSpace(m.Subject)
	switch {
	case m.Name == "":
		return ErrMissingName
	case !govalidator.IsEmail(m.Email):
		return ErrInvalidEmail
	case strings.TrimSpace(m.Message) == "":
		return ErrMissingMessage
	}
	m.ID = ""
	if err := s.repo.Create(ctx, m); err != nil {
		s.log.Warn("contact message rejected", "error", err)
		return err
	}
	s.log.Info("contact message sent", "subject", m.Subject)
	return nil
}

func (s *Service) List(ctx context.Context, token string) ([]Message, error) {
	return s.repo.List(ctx, token)
}

func (s *Service) Delete(ctx context.Context, token, id string) error {
	return s.repo.Delete(ctx, token, id)
}
