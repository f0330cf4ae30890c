package main

import (
	"net/http"
	"strings"

	"github.com/portfolio/backend/internal/config"
	"github.com/portfolio/backend/internal/contact"
	"github.com/portfolio/backend/internal/handler"
	"github.com/portfolio/backend/internal/ratelimit"
	"github.com/portfolio/backend/internal/repository"
	"github.com/portfolio/backend/internal/service"
	"github.com/portfolio/backend/pkg/auth"
)

type routerDeps struct {
	cfg      *config.Config
	projects service.ProjectService
	pipeline *contact.Pipeline
	limits   ratelimit.Store
	// store and contacts are nil when the inbox is disabled.
	store    repository.DB
	contacts service.ContactService
}

func newRouter(d routerDeps) http.Handler {
	h := handler.New(d.store, d.cfg.Server.FrontendURL)
	projectHandler := handler.NewProjectHandler(d.projects)
	contactHandler := handler.NewContactHandler(d.pipeline, d.contacts)
	contactLimit := handler.NewRateLimiter(d.limits, "contact", d.cfg.RateLimit.ContactPerMinute)
	inboxLimit := handler.NewRateLimiter(d.limits, "inbox", d.cfg.RateLimit.ContactPerMinute)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", h.Health)

	// カタログ API（認証不要）
	mux.HandleFunc("GET /api/projects", projectHandler.List)
	mux.HandleFunc("GET /api/projects/stats", projectHandler.Stats)
	mux.HandleFunc("GET /api/projects/{slug}", projectHandler.Get)
	mux.HandleFunc("GET /api/technologies", projectHandler.Technologies)
	mux.HandleFunc("GET /api/categories", projectHandler.Categories)

	mux.Handle("POST /api/contact", contactLimit.Middleware(http.HandlerFunc(contactHandler.Submit)))

	if d.contacts != nil {
		secret := auth.SessionSecretBytes(d.cfg.Admin.SessionSecret)
		adminHandler := handler.NewAdminHandler(d.cfg.Admin.Token, secret, isHTTPS(d.cfg.Server.FrontendURL))
		requireAdmin := auth.RequireAdmin(d.cfg.Admin.Token, secret)

		mux.Handle("POST /api/inbox", inboxLimit.Middleware(http.HandlerFunc(contactHandler.Inbox)))
		mux.Handle("POST /api/admin/login", inboxLimit.Middleware(http.HandlerFunc(adminHandler.Login)))
		mux.HandleFunc("POST /api/admin/logout", adminHandler.Logout)
		mux.Handle("GET /api/admin/contacts", requireAdmin(http.HandlerFunc(contactHandler.AdminList)))
		mux.Handle("PATCH /api/admin/contacts/{id}/status", requireAdmin(http.HandlerFunc(contactHandler.UpdateStatus)))
	}

	return handler.RequestID(handler.RequestLogger(handler.SecurityHeaders(h.CORS(mux))))
}

func isHTTPS(u string) bool {
	return strings.HasPrefix(u, "https://")
}
