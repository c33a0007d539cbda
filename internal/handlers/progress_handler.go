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

// ProgressProvider is the slice of ProgressService the handler needs.
type ProgressProvider interface {
	GetLogs(ctx context.Context, userID primitive.ObjectID, challengeID string) ([]models.ProgressLog, error)
	CreateLog(ctx context.Context, userID primitive.ObjectID, log *models.ProgressLog) (*models.ProgressLog, error)
	UpdateLog(ctx context.Context, userID primitive.ObjectID, id string, log *models.ProgressLog) (*models.ProgressLog, error)
	DeleteLog(ctx context.Context, userID primitive.ObjectID, id string) error
}

// ProgressHandler handles HTTP requests related to progress logs.
type ProgressHandler struct {
	Service ProgressProvider
}

// NewProgressHandler creates a new instance of ProgressHandler.
func NewProgressHandler(service ProgressProvider) *ProgressHandler {
	return &ProgressHandler{Service: service}
}

type progressRequest struct {
	ChallengeID string `json:"challengeId"`
	Date        string `json:"date"`
	Description string `json:"description"`
	MediaURL    string `json:"mediaUrl"`
}

func (req *progressRequest) toModel() (*models.ProgressLog, error) {
	log := &models.ProgressLog{
		Description: req.Description,
		MediaURL:    req.MediaURL,
	}

	if req.Date != "" {
		date, err := parseDate(req.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid date %q", apperr.ErrValidation, req.Date)
		}
		log.Date = date
	}

	return log, nil
}

// GetLogsHandler lists progress logs for one challenge, most recent first.
func (h *ProgressHandler) GetLogsHandler(w http.ResponseWriter, r *http.Request) {
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

	logs, err := h.Service.GetLogs(r.Context(), userID, mux.Vars(r)["challengeId"])
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, logs)
}

// CreateLogHandler handles the creation of a new progress log.
func (h *ProgressHandler) CreateLogHandler(w http.ResponseWriter, r *http.Request) {
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

	var req progressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logrus.WithError(err).Warn("Invalid progress payload")
		writeError(w, fmt.Errorf("%w: invalid request payload", apperr.ErrValidation))
		return
	}
	defer r.Body.Close()

	log, err := req.toModel()
	if err != nil {
		writeError(w, err)
		return
	}

	challengeID, err := primitive.ObjectIDFromHex(req.ChallengeID)
	if err != nil {
		writeError(w, fmt.Errorf("%w: invalid challenge id", apperr.ErrValidation))
		return
	}
	log.ChallengeID = challengeID

	created, err := h.Service.CreateLog(r.Context(), userID, log)
	if err != nil {
		writeError(w, err)
		return
	}

	logrus.WithFields(logrus.Fields{
		"userID":      claims.UserID,
		"challengeID": req.ChallengeID,
		"logID":       created.ID.Hex(),
	}).Info("Progress log created")

	writeJSON(w, http.StatusCreated, created)
}

// UpdateLogHandler handles updating an existing progress log.
func (h *ProgressHandler) UpdateLogHandler(w http.ResponseWriter, r *http.Request) {
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

	var req progressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logrus.WithError(err).Warn("Invalid progress update payload")
		writeError(w, fmt.Errorf("%w: invalid request payload", apperr.ErrValidation))
		return
	}
	defer r.Body.Close()

	log, err := req.toModel()
	if err != nil {
		writeError(w, err)
		return
	}

	updated, err := h.Service.UpdateLog(r.Context(), userID, mux.Vars(r)["id"], log)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// DeleteLogHandler removes a progress log.
func (h *ProgressHandler) DeleteLogHandler(w http.ResponseWriter, r *http.Request) {
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

	if err := h.Service.DeleteLog(r.Context(), userID, mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
