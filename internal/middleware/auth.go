package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"AuthKit/internal/model"
	"AuthKit/internal/service"
)

const (
	AccessCookie  = "access_token"
	RefreshCookie = "refresh_token"
)

// UserResolver maps an access token to its user.
type UserResolver interface {
	CurrentUser(ctx context.Context, token string) (*model.User, error)
}

type ctxKey struct{}

type authState struct {
	user *model.User
	err  error
}

// BearerToken извлекает токен из заголовка Authorization или cookie access_token.
func BearerToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	if c, err := r.Cookie(AccessCookie); err == nil {
		return c.Value
	}
	return ""
}

// WithAuth resolves the request's token. Requests without a valid token
// pass through anonymous; handlers decide whether a user is required.
func WithAuth(users UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			st := authState{err: service.ErrNotAuthenticated}
			if tok := BearerToken(r); tok != "" {
				st.user, st.err = users.CurrentUser(r.Context(), tok)
			}
			ctx := context.WithValue(r.Context(), ctxKey{}, st)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserFromContext returns the authenticated user or the reason there is none.
func GetUserFromContext(ctx context.Context) (*model.User, error) {
	st, ok := ctx.Value(ctxKey{}).(authState)
	if !ok {
		return nil, service.ErrNotAuthenticated
	}
	return st.user, st.err
}

// SetAuthCookies выставляет httpOnly cookie с access и refresh токенами.
func SetAuthCookies(w http.ResponseWriter, access, refresh string, accessTTL, refreshTTL time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     AccessCookie,
		Value:    access,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(accessTTL.Seconds()),
	})
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookie,
		Value:    refresh,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(refreshTTL.Seconds()),
	})
}
