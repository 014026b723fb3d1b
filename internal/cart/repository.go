package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/wichananm65/storefront/internal/storage"
)

// Repository persists the cart as a whole.
type Repository interface {
	Load(ctx context.Context) ([]Item, error)
	Save(ctx context.Context, items []Item) error
}

// StorageRepository keeps the cart as a JSON array under one storage key.
type StorageRepository struct {
	kv  storage.Store
	key string
}

var _ Repository = (*StorageRepository)(nil)

func NewStorageRepository(kv storage.Store, key string) *StorageRepository {
	return &StorageRepository{kv: kv, key: key}
}

// Load returns an empty cart when nothing has been stored yet.
func (r *StorageRepository) Load(ctx context.Context) ([]Item, error) {
	var items []Item
	err := storage.GetJSON(ctx, r.kv, r.key, &items)
	if errors.Is(err, storage.ErrNotFound) {
		return []Item{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if items == nil {
		items = []Item{}
	}
	return items, nil
}

func (r *StorageRepository) Save(ctx context.Context, items []Item) error {
	if items == nil {
		items = []Item{}
	}
	if err := storage.SetJSON(ctx, r.kv, r.key, items); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}
