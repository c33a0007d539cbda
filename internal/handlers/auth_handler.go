package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/askhatb/challenge-on/internal/apperr"
	"github.com/askhatb/challenge-on/internal/models"
	"github.com/askhatb/challenge-on/pkg/middleware"
	"github.com/sirupsen/logrus"
)

// AuthProvider is the slice of AuthService the handler needs.
type AuthProvider interface {
	SignInWithGoogle(ctx context.Context, idToken string) (string, *models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
}

// AuthHandler handles HTTP requests related to authentication.
type AuthHandler struct {
	Service AuthProvider
}

// NewAuthHandler creates a new instance of AuthHandler.
func NewAuthHandler(service AuthProvider) *AuthHandler {
	return &AuthHandler{Service: service}
}

// GoogleSignInHandler exchanges a Google ID token for a session token.
func (h *AuthHandler) GoogleSignInHandler(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		logrus.WithError(err).Warn("Invalid sign-in payload")
		writeError(w, fmt.Errorf("%w: invalid request payload", apperr.ErrValidation))
		return
	}
	defer r.Body.Close()

	if body.Token == "" {
		writeError(w, fmt.Errorf("%w: token is required", apperr.ErrValidation))
		return
	}

	token, user, err := h.Service.SignInWithGoogle(r.Context(), body.Token)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// MeHandler returns the profile of the authenticated user.
func (h *AuthHandler) MeHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		writeError(w, apperr.ErrUnauthenticated)
		return
	}

	user, err := h.Service.GetUser(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}
