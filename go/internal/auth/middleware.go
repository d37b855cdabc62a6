package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/mcdev12/orderalone/go/internal/apperr"
	"github.com/mcdev12/orderalone/go/internal/httputil"
)

type ctxKey struct{}

// WithUserID stores the authenticated user id on ctx.
func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, ctxKey{}, userID)
}

// UserIDFromContext returns the id stored by the middleware.
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(ctxKey{}).(uuid.UUID)
	return id, ok
}

// Middleware rejects requests without a valid access token.
func (i *Issuer) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := bearerToken(r)
		if !ok {
			httputil.WriteError(w, fmt.Errorf("%w: missing bearer token", apperr.ErrInvalidToken))
			return
		}
		userID, err := i.Parse(raw, TokenTypeAccess)
		if err != nil {
			httputil.WriteError(w, apperr.ErrInvalidToken)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}

// Protect wraps a handler func with Middleware.
func (i *Issuer) Protect(fn http.HandlerFunc) http.Handler {
	return i.Middleware(fn)
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", false
	}
	return strings.TrimSpace(token), true
}

// Authenticate reads an access token from the Authorization header or, for websocket
// upgrades that cannot set headers, the token query parameter.
func (i *Issuer) Authenticate(r *http.Request) (uuid.UUID, error) {
	raw, ok := bearerToken(r)
	if !ok {
		raw = strings.TrimSpace(r.URL.Query().Get("token"))
	}
	if raw == "" {
		return uuid.Nil, fmt.Errorf("%w: missing bearer token", apperr.ErrInvalidToken)
	}
	return i.Parse(raw, TokenTypeAccess)
}
