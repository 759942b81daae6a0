package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"emotispell/internal/models"
	"emotispell/internal/service"
	"emotispell/internal/token"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	AccountContextKey ContextKey = "account"
	ClaimsContextKey  ContextKey = "claims"
)

// Middleware holds dependencies for middleware functions
type Middleware struct {
	authService *service.AuthService
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(authService *service.AuthService) *Middleware {
	return &Middleware{authService: authService}
}

// RequireAuth validates the bearer token and puts the resolved account
// and claims on the request context.
func (m *Middleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := bearerToken(r)
		if raw == "" {
			respondWithError(w, http.StatusUnauthorized, "Missing credentials", "", nil)
			return
		}

		account, claims, err := m.authService.ResolveToken(raw)
		if err != nil {
			respondWithError(w, http.StatusUnauthorized, "Unauthorized", "", nil)
			return
		}

		ctx := context.WithValue(r.Context(), AccountContextKey, account)
		ctx = context.WithValue(ctx, ClaimsContextKey, claims)
		next(w, r.WithContext(ctx))
	}
}

// RequireSupervisor admits supervisors and operators.
func (m *Middleware) RequireSupervisor(next http.HandlerFunc) http.HandlerFunc {
	return m.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		account := AccountFromContext(r.Context())
		if account == nil || account.Role == models.RoleChild {
			respondWithError(w, http.StatusForbidden, "Forbidden", "", nil)
			return
		}
		next(w, r)
	})
}

// RequireOperator admits operators only.
func (m *Middleware) RequireOperator(next http.HandlerFunc) http.HandlerFunc {
	return m.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		account := AccountFromContext(r.Context())
		if account == nil || account.Role != models.RoleOperator {
			respondWithError(w, http.StatusForbidden, "Forbidden", "", nil)
			return
		}
		next(w, r)
	})
}

// RequireChild admits child accounts only.
func (m *Middleware) RequireChild(next http.HandlerFunc) http.HandlerFunc {
	return m.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		account := AccountFromContext(r.Context())
		if account == nil || account.Role != models.RoleChild {
			respondWithError(w, http.StatusForbidden, "Forbidden", "", nil)
			return
		}
		next(w, r)
	})
}

// bearerToken extracts the token from the Authorization header, with a
// query-parameter fallback for transports that cannot set headers.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return r.URL.Query().Get("token")
}

// Logging middleware logs HTTP requests
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

// AccountFromContext retrieves the account from the request context
func AccountFromContext(ctx context.Context) *models.Account {
	account, ok := ctx.Value(AccountContextKey).(*models.Account)
	if !ok {
		return nil
	}
	return account
}

// ClaimsFromContext retrieves the token claims from the request context
func ClaimsFromContext(ctx context.Context) *token.Claims {
	claims, ok := ctx.Value(ClaimsContextKey).(*token.Claims)
	if !ok {
		return nil
	}
	return claims
}
