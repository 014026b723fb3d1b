package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/wichananm65/storefront/internal/admin"
	"github.com/wichananm65/storefront/internal/backend"
	"github.com/wichananm65/storefront/internal/blog"
	"github.com/wichananm65/storefront/internal/cart"
	"github.com/wichananm65/storefront/internal/checkout"
	"github.com/wichananm65/storefront/internal/config"
	"github.com/wichananm65/storefront/internal/contact"
	"github.com/wichananm65/storefront/internal/logging"
	"github.com/wichananm65/storefront/internal/metrics"
	"github.com/wichananm65/storefront/internal/newsletter"
	"github.com/wichananm65/storefront/internal/order"
	"github.com/wichananm65/storefront/internal/product"
	"github.com/wichananm65/storefront/internal/session"
	"github.com/wichananm65/storefront/internal/storage"
	"github.com/wichananm65/storefront/internal/user"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	if err := run(cfg, log); err != nil {
		log.Error("storefront stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New(prometheus.DefaultRegisterer)

	kv, closeStore, err := storage.Open(ctx, storage.Options{
		Driver:      cfg.StorageDriver,
		Path:        cfg.StoragePath,
		DatabaseURL: cfg.DatabaseURL,
		RedisAddr:   cfg.RedisAddr,
	})
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer closeStore()

	client, err := backend.New(cfg.BackendURL, &http.Client{Timeout: cfg.BackendTimeout}, log.With("component", "backend"), m)
	if err != nil {
		return err
	}

	app := newApp(ctx, cfg, log, m, kv, client)

	errCh := make(chan error, 1)
	go func() {
		log.Info("storefront listening", "addr", cfg.Addr, "backend", cfg.BackendURL, "storage", cfg.StorageDriver)
		errCh <- app.Listen(cfg.Addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func newApp(ctx context.Context, cfg config.Config, log *slog.Logger, m *metrics.Metrics, kv storage.Store, client *backend.Client) *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(recover.New())
	app.Use(logger.New())
	setupCORS(app, cfg.CORSAllowOrigins)

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	sessionService := session.NewService(session.NewStore(kv), session.NewHTTPAuthenticator(client), log.With("component", "session"))
	sessionHandler := session.NewHandler(sessionService)
	sessionHandler.RegisterPublicRoutes(app)
	requireSession := sessionHandler.RequireSession("/account")

	cartService := cart.NewService(cart.NewStorageRepository(kv, cfg.CartStorageKey), log.With("component", "cart"))
	cartService.Subscribe(func(items []cart.Item) {
		m.SetCart(len(items), cart.Units(items))
	})
	if items, err := cartService.Items(ctx); err != nil {
		log.Warn("cart restore failed", "error", err)
	} else {
		m.SetCart(len(items), cart.Units(items))
	}
	cart.NewHandler(cartService).RegisterProtectedRoutes(app, requireSession)

	orderService := order.NewService(order.NewHTTPRepository(client), log.With("component", "order"))
	co := checkout.New(cartService, orderService, log.With("component", "checkout"), m)
	checkout.NewHandler(co).RegisterProtectedRoutes(app, requireSession)

	productService := product.NewService(product.NewHTTPRepository(client), log.With("component", "product"))
	productHandler := product.NewHandler(productService)
	productHandler.RegisterPublicRoutes(app)

	blog.NewHandler(blog.NewService(blog.NewHTTPRepository(client), log)).RegisterPublicRoutes(app)

	contactHandler := contact.NewHandler(contact.NewService(contact.NewHTTPRepository(client), log.With("component", "contact")))
	contactHandler.RegisterPublicRoutes(app)

	newsletterHandler := newsletter.NewHandler(newsletter.NewService(newsletter.NewHTTPRepository(client), log.With("component", "newsletter")))
	newsletterHandler.RegisterPublicRoutes(app)

	userService := user.NewService(user.NewHTTPRepository(client), log.With("component", "user"))

	adminGroup := app.Group("/admin", sessionHandler.RequireAdmin())
	admin.NewHandler(admin.NewDashboard(productService, userService, orderService, log)).RegisterAdminRoutes(adminGroup)
	productHandler.RegisterAdminRoutes(adminGroup)
	user.NewHandler(userService).RegisterAdminRoutes(adminGroup)
	order.NewHandler(orderService).RegisterAdminRoutes(adminGroup)
	contactHandler.RegisterAdminRoutes(adminGroup)
	newsletterHandler.RegisterAdminRoutes(adminGroup)

	return app
}

func setupCORS(app *fiber.App, origins []string) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(origins, ","),
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}
