// Package mwauth resolves the caller's identity from an HS256 bearer token.
// Requests without an Authorization header pass through as anonymous.
package mwauth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/render"
	"github.com/golang-jwt/jwt/v5"

	"visitBooker/internal/lib/api/response"
	"visitBooker/internal/lib/logger/sl"
	"visitBooker/internal/models"
)

type ctxKey struct{}

// Claims carries the identity fields the provider puts into the token.
type Claims struct {
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

var errNoSubject = errors.New("token has no subject")

func New(log *slog.Logger, secret string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		log := log.With(
			slog.String("component", "middleware/auth"),
		)

		fn := func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(raw) == "" {
				log.Warn("malformed authorization header")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing bearer token"))
				return
			}

			identity, err := Parse(secret, strings.TrimSpace(raw))
			if err != nil {
				log.Warn("invalid token", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid token"))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		}

		return http.HandlerFunc(fn)
	}
}

// Parse validates the token signature and expiry and maps its claims onto an
// Identity.
func Parse(secret, raw string) (*models.Identity, error) {
	var claims Claims

	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	if claims.Subject == "" {
		return nil, errNoSubject
	}

	return &models.Identity{
		ID:          claims.Subject,
		Email:       claims.Email,
		DisplayName: claims.Name,
	}, nil
}

func WithIdentity(ctx context.Context, identity *models.Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, identity)
}

// FromContext returns nil for anonymous requests.
func FromContext(ctx context.Context) *models.Identity {
	identity, _ := ctx.Value(ctxKey{}).(*models.Identity)
	return identity
}
