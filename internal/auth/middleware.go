package auth

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey string

const userIDKey ctxKey = "user_id"

// Middleware gates handlers behind a bearer JWT. A zero-length secret means
// auth is disabled and Wrap passes handlers through untouched.
type Middleware struct {
	secret []byte
}

func New(secret []byte) Middleware {
	return Middleware{secret: secret}
}

func (m Middleware) Enabled() bool {
	return len(m.secret) > 0
}

func (m Middleware) Wrap(next http.HandlerFunc) http.HandlerFunc {
	if !m.Enabled() {
		return next
	}
	return func(w http.ResponseWriter, r *http.Request) {
		h := r.Header.Get("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			http.Error(w, "missing token", http.StatusUnauthorized)
			return
		}

		userID, err := ParseToken(m.secret, strings.TrimPrefix(h, "Bearer "))
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next(w, r.WithContext(ctx))
	}
}

func UserIDFromContext(ctx context.Context) (int, bool) {
	v := ctx.Value(userIDKey)
	if v == nil {
		return 0, false
	}
	uid, ok := v.(int)
	return uid, ok
}
