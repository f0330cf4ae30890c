package main

import (
	"context"
	"log/slog"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/portfolio/backend/internal/catalog"
	"github.com/portfolio/backend/internal/config"
	"github.com/portfolio/backend/internal/contact"
	"github.com/portfolio/backend/internal/logging"
	"github.com/portfolio/backend/internal/ratelimit"
	"github.com/portfolio/backend/internal/repository"
	"github.com/portfolio/backend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("invalid configuration", "error", err)
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cat, err := loadCatalog(cfg.Catalog.Path)
	if err != nil {
		logging.Fatal("failed to load catalog", "error", err)
	}
	slog.Info("catalog loaded", "projects", cat.Len(), "source", catalogSource(cfg.Catalog.Path))

	if cfg.Contact.EndpointURL == "" {
		slog.Warn("CONTACT_ENDPOINT_URL is not set; contact submissions will fail")
	}
	pipeline := contact.NewPipeline(
		contact.NewHTTPSender(cfg.Contact.EndpointURL, cfg.Contact.Timeout),
		contact.Config{MinMessageLength: cfg.Contact.MinMessageLength, Timeout: cfg.Contact.Timeout},
	)

	var store repository.ContactStore
	if cfg.Inbox.Enabled() {
		store, err = repository.OpenContactStore(ctx, cfg.Inbox.Driver, cfg.Inbox.DSN())
		if err != nil {
			logging.Fatal("failed to open inbox store", "driver", cfg.Inbox.Driver, "error", err)
		}
		defer store.Close()
		slog.Info("inbox enabled", "driver", cfg.Inbox.Driver)
	}

	limits, closeLimits := openRateLimitStore(ctx, cfg.RateLimit.RedisURL)
	defer closeLimits()

	deps := routerDeps{
		cfg:      cfg,
		projects: service.NewProjectService(cat),
		pipeline: pipeline,
		limits:   limits,
	}
	if store != nil {
		deps.store = store
		deps.contacts = service.NewContactService(store)
	}

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      newRouter(deps),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.Contact.Timeout + 10*time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatal("server error", "error", err)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Load()
	}
	return catalog.LoadFile(path)
}

func catalogSource(path string) string {
	if path == "" {
		return "embedded"
	}
	return path
}

// openRateLimitStore uses Redis when configured and reachable, memory otherwise.
func openRateLimitStore(ctx context.Context, redisURL string) (ratelimit.Store, func()) {
	if redisURL != "" {
		client, err := ratelimit.NewRedisClient(ctx, redisURL)
		if err == nil {
			slog.Info("rate limiting backed by redis", "addr", redactURL(redisURL))
			return ratelimit.NewRedisStore(client), func() { _ = client.Close() }
		}
		slog.Warn("redis unavailable, falling back to in-memory rate limiting", "error", err)
	}
	return ratelimit.NewMemoryStore(ctx, 5*time.Minute, time.Minute), func() {}
}

// redactURL drops credentials from a URL for logging.
func redactURL(u string) string {
	scheme, rest, ok := strings.Cut(u, "://")
	if !ok {
		return u
	}
	if _, host, ok := strings.Cut(rest, "@"); ok {
		return scheme + "://" + host
	}
	return u
}
