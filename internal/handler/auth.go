package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/msomdec/lamenar/internal/domain"
	"github.com/msomdec/lamenar/internal/logger"
	"github.com/msomdec/lamenar/internal/metrics"
	"github.com/msomdec/lamenar/internal/service"
)

const authCookieName = "auth_token"

// AuthHandler handles authentication-related HTTP requests.
type AuthHandler struct {
	auth         *service.AuthService
	validate     *validator.Validate
	cookieSecure bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		auth:         auth,
		validate:     newValidator(),
		cookieSecure: cookieSecure,
	}
}

// HandleSignup processes a JSON signup request.
// POST /api/auth/signup
// Response: 201 with the created user
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := readJSON(w, r, &req); err != nil {
		metrics.Signups.WithLabelValues(metrics.ResultRejected).Inc()
		writeError(w, r, http.StatusBadRequest, "Invalid request body.")
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	req.ReferrerEmail = strings.TrimSpace(req.ReferrerEmail)

	if err := h.validate.StructCtx(r.Context(), req); err != nil {
		metrics.Signups.WithLabelValues(metrics.ResultRejected).Inc()
		writeError(w, r, http.StatusBadRequest, validationMessage(err))
		return
	}

	user, err := h.auth.Register(r.Context(), service.SignupInput{
		Email:         req.Email,
		Password:      req.Password,
		Name:          req.Name,
		Department:    req.Department,
		Role:          req.Role,
		WasReferred:   req.WasReferred,
		ReferrerName:  req.ReferrerName,
		ReferrerEmail: req.ReferrerEmail,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateEmail):
			metrics.Signups.WithLabelValues(metrics.ResultRejected).Inc()
			writeError(w, r, http.StatusConflict, "Email already registered")
		case errors.Is(err, domain.ErrPersonalEmail), errors.Is(err, domain.ErrInvalidInput):
			metrics.Signups.WithLabelValues(metrics.ResultRejected).Inc()
			writeError(w, r, http.StatusBadRequest, err.Error())
		default:
			metrics.Signups.WithLabelValues(metrics.ResultError).Inc()
			logger.Error(r.Context(), "register user", zap.Error(err))
			writeError(w, r, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
		}
		return
	}

	metrics.Signups.WithLabelValues(metrics.ResultSuccess).Inc()
	writeJSON(w, r, http.StatusCreated, toUserDTO(user))
}

// HandleLogin processes a JSON login request.
// POST /api/auth/login
// Response: {"message": "...", "user": {...}, "token": {...}}
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := readJSON(w, r, &req); err != nil {
		metrics.Logins.WithLabelValues(metrics.ResultRejected).Inc()
		writeError(w, r, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if err := h.validate.StructCtx(r.Context(), req); err != nil {
		metrics.Logins.WithLabelValues(metrics.ResultRejected).Inc()
		writeError(w, r, http.StatusBadRequest, validationMessage(err))
		return
	}

	user, token, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			metrics.Logins.WithLabelValues(metrics.ResultRejected).Inc()
			writeUnauthorized(w, r, "Incorrect email or password")
			return
		}
		metrics.Logins.WithLabelValues(metrics.ResultError).Inc()
		logger.Error(r.Context(), "login user", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(h.auth.TokenTTL().Seconds()),
	})

	metrics.Logins.WithLabelValues(metrics.ResultSuccess).Inc()
	writeJSON(w, r, http.StatusOK, LoginResponse{
		Message: "Login successful",
		User:    toUserDTO(user),
		Token:   TokenDTO{AccessToken: token, TokenType: "bearer"},
	})
}

// HandleLogout clears the auth cookie.
// POST /api/auth/logout
// Response: 204 No Content
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})

	w.WriteHeader(http.StatusNoContent)
}

// HandleMe returns the currently authenticated user.
// GET /api/auth/me
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeUnauthorized(w, r, "Could not validate credentials")
		return
	}

	writeJSON(w, r, http.StatusOK, toUserDTO(user))
}
