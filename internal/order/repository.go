package order

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/wichananm65/storefront/internal/backend"
)

type Repository interface {
	Create(ctx context.Context, token string, sub Submission) (Order, error)
	List(ctx context.Context, token string) ([]Order, error)
	UpdateStatus(ctx context.Context, token, id, status string) (Order, error)
	Delete(ctx context.Context, token, id string) error
}

// HTTPRepository stores orders in the backend under /api/orders.
type HTTPRepository struct {
	client *backend.Client
}

var _ Repository = (*HTTPRepository)(nil)

func NewHTTPRepository(c *backend.Client) *HTTPRepository {
	return &HTTPRepository{client: c}
}

func (r *HTTPRepository) Create(ctx context.Context, token string, sub Submission) (Order, error) {
	var res struct {
		Order Order `json:"order"`
	}
	if err := r.client.Do(ctx, http.MethodPost, "/api/orders", token, sub, &res); err != nil {
		return Order{}, err
	}
	if res.Order.ID == "" {
		return Order{}, ErrNoOrderID
	}
	return res.Order, nil
}

func (r *HTTPRepository) List(ctx context.Context, token string) ([]Order, error) {
	var orders []Order
	if err := r.client.Do(ctx, http.MethodGet, "/api/orders", token, nil, &orders); err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []Order{}
	}
	return orders, nil
}

func (r *HTTPRepository) UpdateStatus(ctx context.Context, token, id, status string) (Order, error) {
	var updated Order
	err := r.client.Do(ctx, http.MethodPut, path(id), token, map[string]string{"status": status}, &updated)
	if backend.IsNotFound(err) {
		return Order{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return updated, err
}

func (r *HTTPRepository) Delete(ctx context.Context, token, id string) error {
	err := r.client.Do(ctx, http.MethodDelete, path(id), token, nil, nil)
	if backend.IsNotFound(err) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return err
}

func path(id string) string {
	return "/api/orders/" + url.PathEscape(id)
}
