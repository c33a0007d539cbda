package services

import (
	"context"
	"fmt"

	"github.com/askhatb/challenge-on/internal/apperr"
	"github.com/askhatb/challenge-on/internal/models"
	"github.com/askhatb/challenge-on/pkg/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChallengeStore defines the challenge data access consumed by the services.
type ChallengeStore interface {
	CreateChallenge(ctx context.Context, challenge *models.Challenge) (*models.Challenge, error)
	GetChallenge(ctx context.Context, id, userID primitive.ObjectID) (*models.Challenge, error)
	GetChallenges(ctx context.Context, userID primitive.ObjectID) ([]models.Challenge, error)
	UpdateChallenge(ctx context.Context, id, userID primitive.ObjectID, challenge *models.Challenge) (*models.Challenge, error)
	DeleteChallenge(ctx context.Context, id, userID primitive.ObjectID) error
}

// ProgressStore defines the progress log data access consumed by the services.
type ProgressStore interface {
	CreateLog(ctx context.Context, log *models.ProgressLog) (*models.ProgressLog, error)
	GetLogsByChallenge(ctx context.Context, challengeID, userID primitive.ObjectID) ([]models.ProgressLog, error)
	GetLogsByChallengeIDs(ctx context.Context, challengeIDs []primitive.ObjectID, userID primitive.ObjectID) ([]models.ProgressLog, error)
	UpdateLog(ctx context.Context, id, userID primitive.ObjectID, log *models.ProgressLog) (*models.ProgressLog, error)
	DeleteLog(ctx context.Context, id, userID primitive.ObjectID) error
	DeleteLogsByChallenge(ctx context.Context, challengeID, userID primitive.ObjectID) error
}

// ChallengeService encapsulates the business logic for challenges.
type ChallengeService struct {
	repo     ChallengeStore
	progress ProgressStore
}

// NewChallengeService creates a new instance of ChallengeService.
func NewChallengeService(repo ChallengeStore, progress ProgressStore) *ChallengeService {
	return &ChallengeService{
		repo:     repo,
		progress: progress,
	}
}

func validateChallenge(challenge *models.Challenge) error {
	if challenge.Name == "" {
		return fmt.Errorf("%w: name is required", apperr.ErrValidation)
	}
	if challenge.StartDate.IsZero() || challenge.EndDate.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", apperr.ErrValidation)
	}
	if challenge.EndDate.Before(challenge.StartDate) {
		return fmt.Errorf("%w: end date cannot precede start date", apperr.ErrValidation)
	}
	return nil
}

// CreateChallenge validates and stores a new challenge for the given owner.
func (s *ChallengeService) CreateChallenge(ctx context.Context, userID primitive.ObjectID, challenge *models.Challenge) (*models.Challenge, error) {
	if err := validateChallenge(challenge); err != nil {
		logger.Log.WithError(err).Warn("Challenge rejected by validation")
		return nil, err
	}

	challenge.UserID = userID
	created, err := s.repo.CreateChallenge(ctx, challenge)
	if err != nil {
		return nil, err
	}
	created.ProgressLogs = []models.ProgressLog{}

	return created, nil
}

// GetChallenge returns one of the caller's challenges with its logs attached.
func (s *ChallengeService) GetChallenge(ctx context.Context, userID primitive.ObjectID, id string) (*models.Challenge, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// A malformed id cannot name an existing challenge.
		return nil, apperr.ErrNotFound
	}

	challenge, err := s.repo.GetChallenge(ctx, objID, userID)
	if err != nil {
		return nil, err
	}

	logs, err := s.progress.GetLogsByChallenge(ctx, objID, userID)
	if err != nil {
		return nil, err
	}
	challenge.ProgressLogs = logs
	if challenge.ProgressLogs == nil {
		challenge.ProgressLogs = []models.ProgressLog{}
	}

	return challenge, nil
}

// GetChallenges returns all of the caller's challenges, each with its logs.
func (s *ChallengeService) GetChallenges(ctx context.Context, userID primitive.ObjectID) ([]models.Challenge, error) {
	challenges, err := s.repo.GetChallenges(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(challenges))
	for _, challenge := range challenges {
		ids = append(ids, challenge.ID)
	}

	logs, err := s.progress.GetLogsByChallengeIDs(ctx, ids, userID)
	if err != nil {
		return nil, err
	}

	byChallenge := make(map[primitive.ObjectID][]models.ProgressLog, len(challenges))
	for _, log := range logs {
		byChallenge[log.ChallengeID] = append(byChallenge[log.ChallengeID], log)
	}

	for i := range challenges {
		attached := byChallenge[challenges[i].ID]
		if attached == nil {
			attached = []models.ProgressLog{}
		}
		challenges[i].ProgressLogs = attached
	}

	return challenges, nil
}

// UpdateChallenge validates and replaces the mutable fields of a challenge.
func (s *ChallengeService) UpdateChallenge(ctx context.Context, userID primitive.ObjectID, id string, challenge *models.Challenge) (*models.Challenge, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.ErrNotFound
	}

	if err := validateChallenge(challenge); err != nil {
		logger.Log.WithError(err).Warn("Challenge update rejected by validation")
		return nil, err
	}

	updated, err := s.repo.UpdateChallenge(ctx, objID, userID, challenge)
	if err != nil {
		return nil, err
	}

	logs, err := s.progress.GetLogsByChallenge(ctx, objID, userID)
	if err != nil {
		return nil, err
	}
	updated.ProgressLogs = logs
	if updated.ProgressLogs == nil {
		updated.ProgressLogs = []models.ProgressLog{}
	}

	return updated, nil
}

// DeleteChallenge removes a challenge and cascades to its progress logs.
func (s *ChallengeService) DeleteChallenge(ctx context.Context, userID primitive.ObjectID, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperr.ErrNotFound
	}

	// Confirm ownership before touching the logs, so a foreign id fails
	// without side effects.
	if _, err := s.repo.GetChallenge(ctx, objID, userID); err != nil {
		return err
	}

	if err := s.progress.DeleteLogsByChallenge(ctx, objID, userID); err != nil {
		return err
	}

	return s.repo.DeleteChallenge(ctx, objID, userID)
}
