package order

import (
	"context"
	"log/slog"
	"strings"
)

// Service provides business logic for orders.
type Service struct {
	repo Repository
	log  *slog.Logger
}

func NewService(r Repository, log *slog.Logger) *Service {
	return &Service{repo: r, log: log}
}

// Create submits a new order. Submissions always start as pending.
func (s *Service) Create(ctx context.Context, token string, sub Submission) (Order, error) {
	if len(sub.CartItems) == 0 {
		return Order{}, ErrEmptyOrder
	}
	if sub.PaymentMethod == "" {
		sub.PaymentMethod = PaymentCashOnDelivery
	}
	sub.Status = StatusPending

	created, err := s.repo.Create(ctx, token, sub)
	if err != nil {
		return Order{}, err
	}
	s.log.Info("order created", "order_id", created.ID, "items", len(sub.CartItems), "total", sub.TotalAmount)
	return created, nil
}

func (s *Service) List(ctx context.Context, token string) ([]Order, error) {
	return s.repo.List(ctx, token)
}

func (s *Service) UpdateStatus(ctx context.Context, token, id, status string) (Order, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Order{}, ErrMissingID
	}
	status = strings.ToLower(strings.TrimSpace(status))
	if !ValidStatus(status) {
		return Order{}, ErrInvalidStatus
	}
	return s.repo.UpdateStatus(ctx, token, id, status)
}

func (s *Service) Delete(ctx context.Context, token, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrMissingID
	}
	return s.repo.Delete(ctx, token, id)
}
