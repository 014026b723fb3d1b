package product

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/wichananm65/storefront/internal/backend"
)

type Repository interface {
	List(ctx context.Context) ([]Record, error)
	Create(ctx context.Context, token string, r Record) (Record, error)
	Update(ctx context.Context, token, id string, r Record) (Record, error)
	Delete(ctx context.Context, token, id string) error
}

// HTTPRepository reads and writes products through /api/products.
type HTTPRepository struct {
	client *backend.Client
}

var _ Repository = (*HTTPRepository)(nil)

func NewHTTPRepository(c *backend.Client) *HTTPRepository {
	return &HTTPRepository{client: c}
}

func (r *HTTPRepository) List(ctx context.Context) ([]Record, error) {
	var records []Record
	if err := r.client.Get(ctx, "/api/products", &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *HTTPRepository) Create(ctx context.Context, token string, rec Record) (Record, error) {
	var created Record
	if err := r.client.Do(ctx, http.MethodPost, "/api/products", token, rec, &created); err != nil {
		return Record{}, err
	}
	return created, nil
}

func (r *HTTPRepository) Update(ctx context.Context, token, id string, rec Record) (Record, error) {
	var updated Record
	err := r.client.Do(ctx, http.MethodPut, "/api/products/"+url.PathEscape(id), token, rec, &updated)
	if backend.IsNotFound(err) {
		return Record{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return updated, err
}

func (r *HTTPRepository) Delete(ctx context.Context, token, id string) error {
	err := r.client.Do(ctx, http.MethodDelete, "/api/products/"+url.PathEscape(id), token, nil, nil)
	if backend.IsNotFound(err) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return err
}
