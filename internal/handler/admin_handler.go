package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/portfolio/backend/pkg/auth"
)

// AdminHandler exchanges the admin token for a session cookie.
type AdminHandler struct {
	adminToken    string
	sessionSecret []byte
	secureCookie  bool
	now           func() time.Time
}

func NewAdminHandler(adminToken string, sessionSecret []byte, secureCookie bool) *AdminHandler {
	return &AdminHandler{
		adminToken:    adminToken,
		sessionSecret: sessionSecret,
		secureCookie:  secureCookie,
		now:           time.Now,
	}
}

type loginRequest struct {
	Token string `json:"token"`
}

// Login handles POST /api/admin/login.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if !auth.TokenMatches(req.Token, h.adminToken) {
		writeError(w, http.StatusUnauthorized, "invalid_token")
		return
	}

	expires := h.now().Add(auth.DefaultSessionTTL)
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName(),
		Value:    auth.CreateSessionToken(auth.AdminSubject, expires, h.sessionSecret),
		Path:     "/api/admin",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]string{"expires_at": expires.UTC().Format(time.RFC3339)})
}

// Logout handles POST /api/admin/logout.
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName(),
		Value:    "",
		Path:     "/api/admin",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}
