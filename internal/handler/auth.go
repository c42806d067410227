package handler

import (
	"errors"
	"net/http"

	"github.com/sakif/starwars-api/internal/apperror"
	"github.com/sakif/starwars-api/internal/metrics"
	"github.com/sakif/starwars-api/internal/service"
)

// AuthHandler serves login and the protected identity echo.
type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

// HandleLogin exchanges credentials for a bearer token.
//
// HTTP: POST /login
// REQUEST BODY: {"email": "luke@tatooine.net", "password": "..."}
// RESPONSE:     {"access_token": "<jwt>"}
//
// The client sends the token back as "Authorization: Bearer <jwt>".
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	token, err := h.auth.Login(r.Context(), req.Email, req.Password)
	metrics.RecordLogin(loginOutcome(err))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{AccessToken: token})
}

// HandleProtected answers {"logged_in_as": email} for a valid token.
func (h *AuthHandler) HandleProtected(w http.ResponseWriter, r *http.Request) {
	caller, err := identity(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"logged_in_as": caller})
}

func loginOutcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, apperror.ErrUnauthorized),
		errors.Is(err, apperror.ErrNotFound),
		errors.Is(err, apperror.ErrValidation):
		return "rejected"
	default:
		return "error"
	}
}
