package services

import (
	"context"
	"fmt"

	"github.com/askhatb/challenge-on/internal/apperr"
	"github.com/askhatb/challenge-on/internal/models"
	"github.com/askhatb/challenge-on/pkg/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProgressService encapsulates the business logic for progress logs.
type ProgressService struct {
	repo       ProgressStore
	challenges ChallengeStore
}

// NewProgressService creates a new instance of ProgressService.
func NewProgressService(repo ProgressStore, challenges ChallengeStore) *ProgressService {
	return &ProgressService{
		repo:       repo,
		challenges: challenges,
	}
}

// GetLogs returns the caller's logs for one challenge, most recent first. The
// challenge itself must belong to the caller.
func (s *ProgressService) GetLogs(ctx context.Context, userID primitive.ObjectID, challengeID string) ([]models.ProgressLog, error) {
	objID, err := primitive.ObjectIDFromHex(challengeID)
	if err != nil {
		return nil, apperr.ErrNotFound
	}

	if _, err := s.challenges.GetChallenge(ctx, objID, userID); err != nil {
		return nil, err
	}

	logs, err := s.repo.GetLogsByChallenge(ctx, objID, userID)
	if err != nil {
		return nil, err
	}
	if logs == nil {
		logs = []models.ProgressLog{}
	}

	return logs, nil
}

// CreateLog stores a new progress log after verifying the referenced challenge
// belongs to the caller.
func (s *ProgressService) CreateLog(ctx context.Context, userID primitive.ObjectID, log *models.ProgressLog) (*models.ProgressLog, error) {
	if log.Description == "" {
		return nil, fmt.Errorf("%w: description is required", apperr.ErrValidation)
	}
	if log.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", apperr.ErrValidation)
	}

	if _, err := s.challenges.GetChallenge(ctx, log.ChallengeID, userID); err != nil {
		logger.Log.WithFields(map[string]interface{}{
			"user_id":      userID.Hex(),
			"challenge_id": log.ChallengeID.Hex(),
		}).Warn("Progress log rejected: challenge not owned by caller")
		return nil, err
	}

	log.UserID = userID
	return s.repo.CreateLog(ctx, log)
}

// UpdateLog replaces the mutable fields of an owner-scoped progress log.
func (s *ProgressService) UpdateLog(ctx context.Context, userID primitive.ObjectID, id string, log *models.ProgressLog) (*models.ProgressLog, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.ErrNotFound
	}

	if log.Description == "" {
		return nil, fmt.Errorf("%w: description is required", apperr.ErrValidation)
	}
	if log.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", apperr.ErrValidation)
	}

	return s.repo.UpdateLog(ctx, objID, userID, log)
}

// DeleteLog removes an owner-scoped progress log.
func (s *ProgressService) DeleteLog(ctx context.Context, userID primitive.ObjectID, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperr.ErrNotFound
	}

	return s.repo.DeleteLog(ctx, objID, userID)
}
