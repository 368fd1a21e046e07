package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-crud-keeper/internal/logger"
	"github.com/MKhiriev/go-crud-keeper/internal/utils"
	"github.com/MKhiriev/go-crud-keeper/models"
)

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// It inspects the incoming "Authorization" header, extracts the bearer token,
// validates it via [service.AuthService.ParseToken], and on success stores
// the token's user id and role claim in the request context (see
// [utils.WithActor]) before delegating to the next handler.
//
// The middleware rejects requests with HTTP 401 Unauthorized in the following cases:
//   - The "Authorization" header is absent ([ErrEmptyAuthorizationHeader]).
//   - The header value is not "Bearer <token>" ([ErrInvalidAuthorizationHeader]).
//   - The token has expired ([service.ErrTokenIsExpired]).
//   - The token is otherwise invalid or cannot be parsed.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			h.writeError(w, r, ErrEmptyAuthorizationHeader)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			h.writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidAuthorizationHeader, err))
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			h.writeError(w, r, err)
			return
		}

		ctx = utils.WithActor(ctx, token.UserID, token.Role)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireRole returns a middleware that lets a request through only when the
// token's role claim equals role. It must run after [Handler.auth].
//
// The acting user is re-resolved first, so a token that outlived its user is
// answered with 401 rather than evaluated. The role itself is taken from the
// token, not from the database row.
func (h *Handler) requireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := logger.FromRequest(r)

			userID, ok := utils.GetUserIDFromContext(ctx)
			if !ok {
				h.writeError(w, r, ErrEmptyAuthorizationHeader)
				return
			}
			tokenRole, _ := utils.GetRoleFromContext(ctx)

			if _, err := h.services.AuthService.ResolveActor(ctx, models.Token{UserID: userID, Role: tokenRole}); err != nil {
				h.writeError(w, r, err)
				return
			}

			if tokenRole != role {
				log.Info().
					Int64("id", userID).
					Str("role", tokenRole).
					Str("required_role", role).
					Msg("role check failed")
				h.writeError(w, r, ErrAccessDenied)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
