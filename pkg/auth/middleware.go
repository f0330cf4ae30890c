package auth

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

type contextKey string

const (
	subjectKey contextKey = "subject"
	isAdminKey contextKey = "is_admin"
)

// AdminSubject は管理者セッションの subject
const AdminSubject = "admin"

// SubjectFromContext は context から subject を取得する
func SubjectFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(subjectKey).(string)
	return v, ok
}

// WithSubject は context に subject をセットする
func WithSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, subjectKey, subject)
}

// WithIsAdmin stores the admin flag in the context.
func WithIsAdmin(ctx context.Context, isAdmin bool) context.Context {
	return context.WithValue(ctx, isAdminKey, isAdmin)
}

// IsAdminFromContext returns false when the flag was never set.
func IsAdminFromContext(ctx context.Context) bool {
	v, _ := ctx.Value(isAdminKey).(bool)
	return v
}

// TokenMatches は管理者トークンを定数時間で比較する
func TokenMatches(got, want string) bool {
	if want == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

// RequireAdmin は管理者専用ミドルウェア。
// Authorization: Bearer <ADMIN_TOKEN> またはログインで発行したセッションクッキーを受け付ける。
func RequireAdmin(adminToken string, sessionSecret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if bearer, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
				if !TokenMatches(bearer, adminToken) {
					writeUnauthorized(w, "invalid_token")
					return
				}
				next.ServeHTTP(w, r.WithContext(adminContext(r.Context())))
				return
			}

			cookie, err := r.Cookie(SessionCookieName())
			if err != nil {
				writeUnauthorized(w, "unauthorized")
				return
			}

			subject, err := VerifySessionToken(cookie.Value, sessionSecret, time.Now())
			if err != nil || subject != AdminSubject {
				writeUnauthorized(w, "invalid_session")
				return
			}

			next.ServeHTTP(w, r.WithContext(adminContext(r.Context())))
		})
	}
}

func adminContext(ctx context.Context) context.Context {
	return WithIsAdmin(WithSubject(ctx, AdminSubject), true)
}

func writeUnauthorized(w http.ResponseWriter, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code})
}
