package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/BaAEz/taskapp-Immersiveai/internal/application/auth"
	domerrors "github.com/BaAEz/taskapp-Immersiveai/internal/domain/errors"
	"github.com/BaAEz/taskapp-Immersiveai/internal/infrastructure/http/middleware"
)

// AuthHandler serves signup, login, and token introspection.
type AuthHandler struct {
	signup   *auth.Signup
	login    *auth.Login
	validate *validator.Validate
	log      zerolog.Logger
}

func NewAuthHandler(signup *auth.Signup, login *auth.Login, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		signup:   signup,
		login:    login,
		validate: validator.New(),
		log:      log,
	}
}

type credentialsBody struct {
	Email    string `json:"email" validate:"max=254"`
	Password string `json:"password" validate:"max=128"`
}

// decodeCredentials parses and sanitizes the shared signup/login body.
// Presence is the only requirement; a missing or empty field yields
// ("", "", false).
func (h *AuthHandler) decodeCredentials(r *http.Request) (email, password string, ok bool) {
	var body credentialsBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return "", "", false
	}
	if err := h.validate.Struct(&body); err != nil {
		return "", "", false
	}
	email = SanitizeEmail(body.Email)
	password = SanitizePassword(body.Password)
	if email == "" || password == "" {
		return "", "", false
	}
	return email, password, true
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	email, password, ok := h.decodeCredentials(r)
	if !ok {
		writeErr(w, http.StatusBadRequest, "Email and password are required")
		return
	}
	result, err := h.signup.Execute(r.Context(), auth.SignupInput{
		Email:    email,
		Password: password,
	})
	if err != nil {
		AuditLog(h.log, r, "user.signup", "", false, err.Error())
		middleware.RecordAuthAttempt("signup", false)
		if err == domerrors.ErrEmailTaken {
			writeErr(w, http.StatusBadRequest, "Email already in use")
			return
		}
		h.log.Error().Err(err).Msg("signup failed")
		writeErr(w, http.StatusInternalServerError, "Server error during registration")
		return
	}
	AuditLog(h.log, r, "user.signup", result.User.ID.String(), true, "")
	middleware.RecordAuthAttempt("signup", true)
	writeSuccess(w, http.StatusCreated, map[string]interface{}{
		"user":  userPayload(result.User),
		"token": result.Token,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	email, password, ok := h.decodeCredentials(r)
	if !ok {
		writeErr(w, http.StatusBadRequest, "Email and password are required")
		return
	}
	result, err := h.login.Execute(r.Context(), auth.LoginInput{
		Email:    email,
		Password: password,
	})
	if err != nil {
		AuditLog(h.log, r, "user.login", "", false, err.Error())
		middleware.RecordAuthAttempt("login", false)
		if err == domerrors.ErrInvalidCredentials {
			// Same message whether the email or the password was wrong.
			writeErr(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		h.log.Error().Err(err).Msg("login failed")
		writeErr(w, http.StatusInternalServerError, "Server error during login")
		return
	}
	AuditLog(h.log, r, "user.login", result.User.ID.String(), true, "")
	middleware.RecordAuthAttempt("login", true)
	writeSuccess(w, http.StatusOK, map[string]interface{}{
		"user":  userPayload(result.User),
		"token": result.Token,
	})
}

// VerifyToken reports the identity behind a valid bearer token. The auth
// middleware has already resolved the user by the time this runs.
func (h *AuthHandler) VerifyToken(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		writeErr(w, http.StatusUnauthorized, "User not found")
		return
	}
	writeSuccess(w, http.StatusOK, map[string]interface{}{
		"user": userPayload(user),
	})
}
