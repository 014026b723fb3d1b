package product

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/sync/singleflight"
)

type Service struct {
	repo Repository
	log  *slog.Logger
	sfg  singleflight.Group
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// List fetches the catalog. Concurrent callers share one backend request,
// which outlives the cancellation of whichever caller started it.
func (s *Service) List(ctx context.Context) ([]Product, error) {
	fetchCtx := context.WithoutCancel(ctx)
	v, err, shared := s.sfg.Do("products", func() (interface{}, error) {
		records, err := s.repo.List(fetchCtx)
		if err != nil {
			return nil, err
		}
		return FromRecords(records), nil
	})
	if err != nil {
		s.log.Warn("product fetch failed", "error", err)
		return nil, err
	}
	if shared {
		s.log.Debug("product fetch shared")
	}
	products := v.([]Product)
	out := make([]Product, len(products))
	copy(out, products)
	return out, nil
}

// Get returns the product with id from the current catalog.
func (s *Service) Get(ctx context.Context, id string) (Product, error) {
	products, err := s.List(ctx)
	if err != nil {
		return Product{}, err
	}
	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

// Filter keeps products carrying tag (when set) whose title or description
// contains query, ignoring case.
func Filter(products []Product, tag, query string) []Product {
	tag = strings.TrimSpace(tag)
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if tag != "" && p.Tag != tag {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(p.Title), q) && !strings.Contains(strings.ToLower(p.Description), q) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func validate(r Record) (Record, error) {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return Record{}, ErrMissingName
	}
	if r.Price < 0 {
		return Record{}, ErrInvalidPrice
	}
	return r, nil
}

func (s *Service) Create(ctx context.Context, token string, r Record) (Record, error) {
	r, err := validate(r)
	if err != nil {
		return Record{}, err
	}
	r.ID = ""
	created, err := s.repo.Create(ctx, token, r)
	if err != nil {
		return Record{}, err
	}
	s.log.Info("product created", "product_id", created.ID, "name", created.Name)
	return created, nil
}

func (s *Service) Update(ctx context.Context, token, id string, r Record) (Record, error) {
	r, err := validate(r)
	if err != nil {
		return Record{}, err
	}
	r.ID = ""
	return s.repo.Update(ctx, token, id, r)
}

func (s *Service) Delete(ctx context.Context, token, id string) error {
	if err := s.repo.Delete(ctx, token, id); err != nil {
		return err
	}
	s.log.Info("product deleted", "product_id", id)
	return nil
}
