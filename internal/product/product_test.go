package product

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wichananm65/storefront/internal/backend"
	"github.com/wichananm65/storefront/internal/logging"
)

func TestFromRecords_Mapping(t *testing.T) {
	got := FromRecords([]Record{
		{ID: "a", Name: "Bowl", Price: 10, Description: "Steel", Image: "bowl.png"},
		{ID: "b", Name: "Leash", Price: 4.5},
		{ID: "c", Name: "Bed", Price: 30},
		{ID: "d", Name: "Toy", Price: 2},
	})

	require.Len(t, got, 4)
	assert.Equal(t, Product{ID: "a", Title: "Bowl", Image: "bowl.png", Category: "General", Price: 10, Description: "Steel", Tag: TagFeatured}, got[0])
	assert.Equal(t, "https://picsum.photos/600/400?random=201", got[1].Image)
	assert.Equal(t, TagPopular, got[1].Tag)
	assert.Equal(t, TagNew, got[2].Tag)
	assert.Equal(t, TagFeatured, got[3].Tag)
	assert.Zero(t, got[3].Rating)
	assert.Zero(t, got[3].Reviews)
}

func TestFilter(t *testing.T) {
	products := FromRecords([]Record{
		{ID: "a", Name: "Steel Bowl"},
		{ID: "b", Name: "Leash", Description: "Reflective bowl-friendly strap"},
		{ID: "c", Name: "Bed"},
	})

	assert.Len(t, Filter(products, "", ""), 3)
	assert.Equal(t, "b", Filter(products, TagPopular, "")[0].ID)
	ids := func(ps []Product) []string {
		out := []string{}
		for _, p := range ps {
			out = append(out, p.ID)
		}
		return out
	}
	assert.Equal(t, []string{"a", "b"}, ids(Filter(products, "", "BOWL")))
	assert.Empty(t, Filter(products, TagNew, "bowl"))
}

type slowRepo struct {
	Repository
	calls   atomic.Int32
	entered chan struct{}
	release chan struct{}
}

func (r *slowRepo) List(ctx context.Context) ([]Record, error) {
	if r.calls.Add(1) == 1 {
		close(r.entered)
	}
	<-r.release
	return []Record{{ID: "a", Name: "Bowl"}}, nil
}

func TestService_ListSharesConcurrentFetches(t *testing.T) {
	repo := &slowRepo{entered: make(chan struct{}), release: make(chan struct{})}
	svc := NewService(repo, logging.Discard())

	var wg sync.WaitGroup
	results := make([][]Product, 5)
	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0], _ = svc.List(testContext(t))
	}()
	<-repo.entered
	for i := 1; i < 5; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = svc.List(testContext(t))
		}(i)
	}
	time.Sleep(50 * time.Millisecond)
	close(repo.release)
	wg.Wait()

	assert.Equal(t, int32(1), repo.calls.Load())
	for _, r := range results {
		require.Len(t, r, 1)
		assert.Equal(t, "Bowl", r[0].Title)
	}
}

func TestService_CreateValidates(t *testing.T) {
	svc := NewService(&slowRepo{}, logging.Discard())
	_, err := svc.Create(testContext(t), "tok", Record{Name: "  ", Price: 1})
	assert.ErrorIs(t, err, ErrMissingName)
	_, err = svc.Create(testContext(t), "tok", Record{Name: "Bowl", Price: -1})
	assert.ErrorIs(t, err, ErrInvalidPrice)
}

func newBackendApp(t *testing.T, h http.Handler) *fiber.App {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := backend.New(srv.URL, srv.Client(), nil, nil)
	require.NoError(t, err)
	handler := NewHandler(NewService(NewHTTPRepository(c), logging.Discard()))
	app := fiber.New()
	handler.RegisterPublicRoutes(app)
	handler.RegisterAdminRoutes(app.Group("/admin"))
	return app
}

func TestHandler_PublicCatalog(t *testing.T) {
	app := newBackendApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products", r.URL.Path)
		_, _ = w.Write([]byte(`[{"_id":"a","name":"Bowl","price":10},{"_id":"b","name":"Leash","price":4}]`))
	}))

	res, err := app.Test(httptest.NewRequest("GET", "/products?tag=popular", nil))
	require.NoError(t, err)
	var got []Product
	require.NoError(t, json.NewDecoder(res.Body).Decode(&got))
	require.Len(t, got, 1)
	assert.Equal(t, "Leash", got[0].Title)

	res, _ = app.Test(httptest.NewRequest("GET", "/products/a", nil))
	assert.Equal(t, fiber.StatusOK, res.StatusCode)

	res, _ = app.Test(httptest.NewRequest("GET", "/products/zzz", nil))
	assert.Equal(t, fiber.StatusNotFound, res.StatusCode)
}

func TestHandler_AdminCRUD(t *testing.T) {
	var mu sync.Mutex
	var seen []string
	app := newBackendApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		seen = append(seen, r.Method+" "+r.URL.Path+" "+r.Header.Get("Authorization"))
		mu.Unlock()
		switch {
		case r.Method == http.MethodPost:
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"_id":"n1","name":"Bowl","price":10}`))
		case r.Method == http.MethodPut && strings.HasSuffix(r.URL.Path, "/gone"):
			w.WriteHeader(http.StatusNotFound)
		case r.Method == http.MethodPut:
			_, _ = w.Write([]byte(`{"_id":"n1","name":"Bowl XL","price":12}`))
		case r.Method == http.MethodDelete:
			w.WriteHeader(http.StatusOK)
		default:
			_, _ = w.Write([]byte(`[]`))
		}
	}))

	req := httptest.NewRequest("POST", "/admin/products", strings.NewReader(`{"name":"Bowl","price":10}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(req)
	assert.Equal(t, fiber.StatusCreated, res.StatusCode)

	req = httptest.NewRequest("POST", "/admin/products", strings.NewReader(`{"price":10}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ = app.Test(req)
	assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)

	req = httptest.NewRequest("PUT", "/admin/products/n1", strings.NewReader(`{"name":"Bowl XL","price":12}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ = app.Test(req)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)

	req = httptest.NewRequest("PUT", "/admin/products/gone", strings.NewReader(`{"name":"x","price":1}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ = app.Test(req)
	assert.Equal(t, fiber.StatusNotFound, res.StatusCode)

	res, _ = app.Test(httptest.NewRequest("DELETE", "/admin/products/n1", nil))
	assert.Equal(t, fiber.StatusNoContent, res.StatusCode)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{
		"POST /api/products ",
		"PUT /api/products/n1 ",
		"PUT /api/products/gone ",
		"DELETE /api/products/n1 ",
	}, seen)
}

// cancelAwareRepo blocks until release and fails if its context is cancelled first.
type cancelAwareRepo struct {
	Repository
	entered chan struct{}
	release chan struct{}
}

func (r *cancelAwareRepo) List(ctx context.Context) ([]Record, error) {
	close(r.entered)
	select {
	case <-r.release:
		return []Record{{ID: "a", Name: "Bowl"}}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func TestService_ListSurvivesFirstCallerCancel(t *testing.T) {
	repo := &cancelAwareRepo{entered: make(chan struct{}), release: make(chan struct{})}
	svc := NewService(repo, logging.Discard())

	firstCtx, cancel := context.WithCancel(testContext(t))
	firstDone := make(chan error, 1)
	go func() {
		_, err := svc.List(firstCtx)
		firstDone <- err
	}()
	<-repo.entered

	secondDone := make(chan []Product, 1)
	go func() {
		ps, err := svc.List(testContext(t))
		assert.NoError(t, err)
		secondDone <- ps
	}()
	time.Sleep(50 * time.Millisecond)
	cancel()
	time.Sleep(20 * time.Millisecond)
	close(repo.release)

	require.NoError(t, <-firstDone)
	ps := <-secondDone
	require.Len(t, ps, 1)
	assert.Equal(t, "Bowl", ps[0].Title)
}
