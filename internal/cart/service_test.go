package cart

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wichananm65/storefront/internal/logging"
	"github.com/wichananm65/storefront/internal/storage"
)

type failingRepo struct {
	items   []Item
	saveErr error
}

func (r *failingRepo) Load(context.Context) ([]Item, error) { return clone(r.items), nil }
func (r *failingRepo) Save(context.Context, []Item) error   { return r.saveErr }

func newService(kv storage.Store) *Service {
	return NewService(NewStorageRepository(kv, "cart"), logging.Discard())
}

func TestService_AddMergesSameID(t *testing.T) {
	svc := newService(storage.NewMemoryStore())
	ctx := testContext(t)

	_, err := svc.Add(ctx, Item{ID: "p1", Title: "Bowl", Price: 10, Quantity: 2})
	require.NoError(t, err)
	items, err := svc.Add(ctx, Item{ID: "p1", Title: "Bowl", Price: 10, Quantity: 1})
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
	total, err := svc.Total(ctx)
	require.NoError(t, err)
	assert.Equal(t, 30.0, total)
}

func TestService_AddKeepsInsertionOrder(t *testing.T) {
	svc := newService(storage.NewMemoryStore())
	ctx := testContext(t)
	for _, id := range []string{"b", "a", "c", "a"} {
		_, err := svc.Add(ctx, Item{ID: id, Price: 1, Quantity: 1})
		require.NoError(t, err)
	}
	items, _ := svc.Items(ctx)
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	assert.Equal(t, []string{"b", "a", "c"}, ids)
}

func TestService_DecrementAtOneRemoves(t *testing.T) {
	svc := newService(storage.NewMemoryStore())
	ctx := testContext(t)
	_, _ = svc.Add(ctx, Item{ID: "p1", Price: 10, Quantity: 1})

	items, err := svc.Decrement(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestService_DecrementLowersByOne(t *testing.T) {
	svc := newService(storage.NewMemoryStore())
	ctx := testContext(t)
	_, _ = svc.Add(ctx, Item{ID: "p1", Price: 10, Quantity: 3})
	_, _ = svc.Add(ctx, Item{ID: "p2", Price: 1, Quantity: 1})

	items, err := svc.Decrement(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "p1", items[0].ID, "line keeps its position")
	assert.Equal(t, 2, items[0].Quantity)
}

func TestService_SetQuantity(t *testing.T) {
	svc := newService(storage.NewMemoryStore())
	ctx := testContext(t)
	_, _ = svc.Add(ctx, Item{ID: "p1", Price: 2.5, Quantity: 1})

	items, err := svc.SetQuantity(ctx, "p1", 4)
	require.NoError(t, err)
	assert.Equal(t, 4, items[0].Quantity)

	items, err = svc.SetQuantity(ctx, "p1", 0)
	require.NoError(t, err)
	assert.Empty(t, items)

	_, err = svc.SetQuantity(ctx, "missing", 2)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestService_RemoveUnknownIsNoop(t *testing.T) {
	svc := newService(storage.NewMemoryStore())
	ctx := testContext(t)
	_, _ = svc.Add(ctx, Item{ID: "p1", Price: 1, Quantity: 5})

	items, err := svc.Remove(ctx, "nope")
	require.NoError(t, err)
	assert.Len(t, items, 1)

	items, err = svc.Remove(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestService_Guards(t *testing.T) {
	svc := newService(storage.NewMemoryStore())
	ctx := testContext(t)

	_, err := svc.Add(ctx, Item{ID: "  ", Price: 1, Quantity: 1})
	assert.ErrorIs(t, err, ErrInvalidItem)
	_, err = svc.Add(ctx, Item{ID: "p1", Price: 1, Quantity: 0})
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	_, err = svc.Add(ctx, Item{ID: "p1", Price: -0.01, Quantity: 1})
	assert.ErrorIs(t, err, ErrInvalidPrice)
	_, err = svc.Increment(ctx, "p1")
	assert.ErrorIs(t, err, ErrItemNotFound)

	items, _ := svc.Items(ctx)
	assert.Empty(t, items)
}

func TestService_PersistsAcrossInstances(t *testing.T) {
	kv := storage.NewMemoryStore()
	ctx := testContext(t)

	first := newService(kv)
	_, _ = first.Add(ctx, Item{ID: "p1", Title: "Bowl", Price: 10, Image: "x.png", Quantity: 2})
	_, _ = first.Add(ctx, Item{ID: "p2", Title: "Leash", Price: 4.5, Quantity: 1})

	second := newService(kv)
	items, err := second.Items(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Item{
		{ID: "p1", Title: "Bowl", Price: 10, Image: "x.png", Quantity: 2},
		{ID: "p2", Title: "Leash", Price: 4.5, Quantity: 1},
	}, items)

	require.NoError(t, second.Clear(ctx))
	third := newService(kv)
	items, _ = third.Items(ctx)
	assert.Empty(t, items)
}

func TestService_RestoreNormalizes(t *testing.T) {
	kv := storage.NewMemoryStore()
	ctx := testContext(t)
	require.NoError(t, storage.SetJSON(ctx, kv, "cart", []Item{
		{ID: "p1", Price: 1, Quantity: 1},
		{ID: "p2", Price: 1, Quantity: 0},
		{ID: "p1", Price: 1, Quantity: 2},
	}))

	items, err := newService(kv).Items(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestService_WriteFailureLeavesCartUnchanged(t *testing.T) {
	repo := &failingRepo{items: []Item{{ID: "p1", Price: 1, Quantity: 1}}, saveErr: errors.New("disk full")}
	svc := NewService(repo, logging.Discard())
	ctx := testContext(t)

	_, err := svc.Add(ctx, Item{ID: "p1", Price: 1, Quantity: 1})
	require.Error(t, err)
	items, _ := svc.Items(ctx)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestService_SubscribersSeeEveryChange(t *testing.T) {
	svc := newService(storage.NewMemoryStore())
	ctx := testContext(t)

	var seen [][]Item
	unsubscribe := svc.Subscribe(func(items []Item) { seen = append(seen, items) })

	_, _ = svc.Add(ctx, Item{ID: "p1", Price: 1, Quantity: 1})
	_, _ = svc.Increment(ctx, "p1")
	_, _ = svc.Remove(ctx, "unknown")
	require.Len(t, seen, 2)
	assert.Equal(t, 2, seen[1][0].Quantity)

	unsubscribe()
	_ = svc.Clear(ctx)
	assert.Len(t, seen, 2)
}

func TestService_ConcurrentAdds(t *testing.T) {
	svc := newService(storage.NewMemoryStore())
	ctx := testContext(t)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.Add(ctx, Item{ID: "p1", Price: 1, Quantity: 1})
		}()
	}
	wg.Wait()

	items, _ := svc.Items(ctx)
	require.Len(t, items, 1)
	assert.Equal(t, 50, items[0].Quantity)
}

func TestTotal(t *testing.T) {
	assert.Equal(t, 0.0, Total(nil))
	assert.Equal(t, 0.3, Total([]Item{{Price: 0.1, Quantity: 3}}))
	assert.Equal(t, "12.50", FormatTotal(12.5))
}

func TestService_RemoveThenAddYieldsSingleLine(t *testing.T) {
	svc := newService(storage.NewMemoryStore())
	ctx := testContext(t)
	_, _ = svc.Add(ctx, Item{ID: "p1", Price: 3, Quantity: 7})

	_, err := svc.Remove(ctx, "p1")
	require.NoError(t, err)
	items, err := svc.Add(ctx, Item{ID: "p1", Price: 3, Quantity: 2})
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}
