// Package admin serves the admin console landing page.
package admin

import (
	"context"
	"log/slog"

	"github.com/wichananm65/storefront/internal/order"
	"github.com/wichananm65/storefront/internal/product"
	"github.com/wichananm65/storefront/internal/user"
	"golang.org/x/sync/errgroup"
)

type ProductLister interface {
	List(ctx context.Context) ([]product.Product, error)
}

type UserLister interface {
	List(ctx context.Context, token string) ([]user.User, error)
}

type OrderLister interface {
	List(ctx context.Context, token string) ([]order.Order, error)
}

// Counts is the dashboard summary.
type Counts struct {
	Products int `json:"products"`
	Users    int `json:"users"`
	Orders   int `json:"orders"`
}

type Dashboard struct {
	products ProductLister
	users    UserLister
	orders   OrderLister
	log      *slog.Logger
}

func NewDashboard(p ProductLister, u UserLister, o OrderLister, log *slog.Logger) *Dashboard {
	return &Dashboard{products: p, users: u, orders: o, log: log}
}

// Counts fetches the three totals in parallel. Any failure fails the whole
// summary.
func (d *Dashboard) Counts(ctx context.Context, token string) (Counts, error) {
	var out Counts
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		list, err := d.products.List(ctx)
		out.Products = len(list)
		return err
	})
	g.Go(func() error {
		list, err := d.users.List(ctx, token)
		out.Users = len(list)
		return err
	})
	g.Go(func() error {
		list, err := d.orders.List(ctx, token)
		out.Orders = len(list)
		return err
	})
	if err := g.Wait(); err != nil {
		d.log.Warn("dashboard counts failed", "error", err)
		return Counts{}, err
	}
	return out, nil
}
