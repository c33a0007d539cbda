package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/askhatb/challenge-on/internal/apperr"
	"github.com/askhatb/challenge-on/internal/models"
	"github.com/askhatb/challenge-on/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChallengeProvider is the slice of ChallengeService the handler needs.
type ChallengeProvider interface {
	CreateChallenge(ctx context.Context, userID primitive.ObjectID, challenge *models.Challenge) (*models.Challenge, error)
	GetChallenge(ctx context.Context, userID primitive.ObjectID, id string) (*models.Challenge, error)
	GetChallenges(ctx context.Context, userID primitive.ObjectID) ([]models.Challenge, error)
	UpdateChallenge(ctx context.Context, userID primitive.ObjectID, id string, challenge *models.Challenge) (*models.Challenge, error)
	DeleteChallenge(ctx context.Context, userID primitive.ObjectID, id string) error
}

// ChallengeHandler handles HTTP requests related to challenges.
type ChallengeHandler struct {
	Service ChallengeProvider
}

// NewChallengeHandler creates a new instance of ChallengeHandler.
func NewChallengeHandler(service ChallengeProvider) *ChallengeHandler {
	return &ChallengeHandler{Service: service}
}

// challengeRequest is the wire shape of create and update payloads. Dates come
// in as strings and are validated here before the service sees them.
type challengeRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	ReminderTime string `json:"reminderTime"`
}

func (req *challengeRequest) toModel() (*models.Challenge, error) {
	challenge := &models.Challenge{
		Name:         req.Name,
		Description:  req.Description,
		ReminderTime: req.ReminderTime,
	}

	if req.StartDate != "" {
		start, err := parseDate(req.StartDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid start date %q", apperr.ErrValidation, req.StartDate)
		}
		challenge.StartDate = start
	}
	if req.EndDate != "" {
		end, err := parseDate(req.EndDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid end date %q", apperr.ErrValidation, req.EndDate)
		}
		challenge.EndDate = end
	}

	return challenge, nil
}

// GetChallengesHandler lists the caller's challenges with their progress logs.
func (h *ChallengeHandler) GetChallengesHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		writeError(w, apperr.ErrUnauthenticated)
		return
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		writeError(w, apperr.ErrInvalidSession)
		return
	}

	challenges, err := h.Service.GetChallenges(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	if challenges == nil {
		challenges = []models.Challenge{}
	}

	writeJSON(w, http.StatusOK, challenges)
}

// GetChallengeHandler fetches a single challenge by its ID.
func (h *ChallengeHandler) GetChallengeHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		writeError(w, apperr.ErrUnauthenticated)
		return
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		writeError(w, apperr.ErrInvalidSession)
		return
	}

	challenge, err := h.Service.GetChallenge(r.Context(), userID, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, challenge)
}

// CreateChallengeHandler handles the creation of a new challenge.
func (h *ChallengeHandler) CreateChallengeHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		writeError(w, apperr.ErrUnauthenticated)
		return
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		writeError(w, apperr.ErrInvalidSession)
		return
	}

	var req challengeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logrus.WithError(err).Warn("Invalid challenge payload")
		writeError(w, fmt.Errorf("%w: invalid request payload", apperr.ErrValidation))
		return
	}
	defer r.Body.Close()

	challenge, err := req.toModel()
	if err != nil {
		writeError(w, err)
		return
	}

	created, err := h.Service.CreateChallenge(r.Context(), userID, challenge)
	if err != nil {
		writeError(w, err)
		return
	}

	logrus.WithFields(logrus.Fields{
		"userID":      claims.UserID,
		"challengeID": created.ID.Hex(),
	}).Info("Challenge created")

	writeJSON(w, http.StatusCreated, created)
}

// UpdateChallengeHandler handles updating an existing challenge.
func (h *ChallengeHandler) UpdateChallengeHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		writeError(w, apperr.ErrUnauthenticated)
		return
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		writeError(w, apperr.ErrInvalidSession)
		return
	}

	var req challengeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logrus.WithError(err).Warn("Invalid challenge update payload")
		writeError(w, fmt.Errorf("%w: invalid request payload", apperr.ErrValidation))
		return
	}
	defer r.Body.Close()

	challenge, err := req.toModel()
	if err != nil {
		writeError(w, err)
		return
	}

	updated, err := h.Service.UpdateChallenge(r.Context(), userID, mux.Vars(r)["id"], challenge)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// DeleteChallengeHandler removes a challenge and its progress logs.
func (h *ChallengeHandler) DeleteChallengeHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		writeError(w, apperr.ErrUnauthenticated)
		return
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		writeError(w, apperr.ErrInvalidSession)
		return
	}

	if err := h.Service.DeleteChallenge(r.Context(), userID, mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
