package user

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/wichananm65/storefront/internal/backend"
)

type Repository interface {
	List(ctx context.Context, token string) ([]User, error)
	Create(ctx context.Context, token string, in Input) (User, error)
	Update(ctx context.Context, token, id string, in Input) (User, error)
	Delete(ctx context.Context, token, id string) error
	Me(ctx context.Context, token string) (Admin, error)
}

// HTTPRepository manages accounts through the backend auth endpoints.
type HTTPRepository struct {
	client *backend.Client
}

var _ Repository = (*HTTPRepository)(nil)

func NewHTTPRepository(c *backend.Client) *HTTPRepository {
	return &HTTPRepository{client: c}
}

func (r *HTTPRepository) List(ctx context.Context, token string) ([]User, error) {
	var users []User
	if err := r.client.Do(ctx, http.MethodGet, "/api/auth/users", token, nil, &users); err != nil {
		return nil, err
	}
	if users == nil {
		users = []User{}
	}
	return users, nil
}

// Create registers the account through the public register endpoint, which
// accepts an explicit role.
func (r *HTTPRepository) Create(ctx context.Context, token string, in Input) (User, error) {
	var res struct {
		User User `json:"user"`
	}
	if err := r.client.Do(ctx, http.MethodPost, "/api/auth/register", token, in, &res); err != nil {
		return User{}, err
	}
	return res.User, nil
}

func (r *HTTPRepository) Update(ctx context.Context, token, id string, in Input) (User, error) {
	var updated User
	err := r.client.Do(ctx, http.MethodPut, "/api/auth/users/"+url.PathEscape(id), token, in, &updated)
	if backend.IsNotFound(err) {
		return User{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return updated, err
}

func (r *HTTPRepository) Delete(ctx context.Context, token, id string) error {
	err := r.client.Do(ctx, http.MethodDelete, "/api/auth/users/"+url.PathEscape(id), token, nil, nil)
	if backend.IsNotFound(err) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return err
}

func (r *HTTPRepository) Me(ctx context.Context, token string) (Admin, error) {
	var a Admin
	err := r.client.Do(ctx, http.MethodGet, "/api/admin/me", token, nil, &a)
	return a, err
}
