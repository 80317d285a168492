package middleware

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/BaAEz/taskapp-Immersiveai/internal/application/ports"
	"github.com/BaAEz/taskapp-Immersiveai/internal/domain"
)

// AuthValidator is the gate in front of every owner-scoped endpoint. It
// verifies the bearer token and then re-resolves the user against the store,
// so tokens for deleted users stop working immediately even though tokens
// themselves are stateless.
type AuthValidator struct {
	issuer ports.TokenIssuer
	users  ports.UserRepository
	log    zerolog.Logger
}

func NewAuthValidator(issuer ports.TokenIssuer, users ports.UserRepository, log zerolog.Logger) *AuthValidator {
	return &AuthValidator{issuer: issuer, users: users, log: log}
}

func (m *AuthValidator) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
			writeErr(w, http.StatusUnauthorized, "Access denied. No token provided")
			return
		}
		tokenString := strings.TrimPrefix(auth, "Bearer ")

		userIDStr, err := m.issuer.Verify(tokenString)
		if err != nil {
			writeErr(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}
		userID, err := domain.ParseUserID(userIDStr)
		if err != nil {
			writeErr(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		user, err := m.users.GetByID(r.Context(), userID)
		if err != nil {
			m.log.Error().Err(err).Msg("resolve authenticated user")
			writeErr(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		if user == nil {
			writeErr(w, http.StatusUnauthorized, "User not found")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}
