package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/askhatb/challenge-on/internal/apperr"
	"github.com/askhatb/challenge-on/internal/models"
	"github.com/askhatb/challenge-on/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ChallengeRepository handles database operations related to challenges.
type ChallengeRepository struct {
	collection *mongo.Collection
}

// NewChallengeRepository creates a new instance of ChallengeRepository.
func NewChallengeRepository(db *mongo.Database) *ChallengeRepository {
	return &ChallengeRepository{
		collection: db.Collection("challenges"),
	}
}

// CreateChallenge inserts a new challenge into the database.
func (r *ChallengeRepository) CreateChallenge(ctx context.Context, challenge *models.Challenge) (*models.Challenge, error) {
	challenge.CreatedAt = time.Now()
	challenge.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, challenge)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to insert challenge")
		return nil, fmt.Errorf("failed to insert challenge: %v", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		logger.Log.Error("Failed to cast inserted challenge ID")
		return nil, fmt.Errorf("failed to cast inserted ID")
	}
	challenge.ID = insertedID

	logger.Log.WithField("challenge_id", challenge.ID.Hex()).Info("Challenge created")
	return challenge, nil
}

// GetChallenge fetches a challenge by id, scoped to its owner. A challenge that
// exists but belongs to another user is reported exactly like a missing one.
func (r *ChallengeRepository) GetChallenge(ctx context.Context, id, userID primitive.ObjectID) (*models.Challenge, error) {
	var challenge models.Challenge

	err := r.collection.FindOne(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&challenge)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.ErrNotFound
		}
		logger.Log.WithError(err).WithField("challenge_id", id.Hex()).Error("Failed to find challenge")
		return nil, fmt.Errorf("failed to find challenge: %v", err)
	}

	return &challenge, nil
}

// GetChallenges fetches all challenges owned by the given user.
func (r *ChallengeRepository) GetChallenges(ctx context.Context, userID primitive.ObjectID) ([]models.Challenge, error) {
	var challenges []models.Challenge

	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID.Hex()).Error("Failed to fetch challenges")
		return nil, fmt.Errorf("failed to fetch challenges: %v", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var challenge models.Challenge
		if err := cursor.Decode(&challenge); err != nil {
			logger.Log.WithError(err).Error("Failed to decode challenge")
			return nil, fmt.Errorf("failed to decode challenge: %v", err)
		}
		challenges = append(challenges, challenge)
	}

	logger.Log.WithFields(map[string]interface{}{
		"user_id": userID.Hex(),
		"count":   len(challenges),
	}).Info("Challenges fetched")

	return challenges, nil
}

// UpdateChallenge replaces the mutable fields of an owner-scoped challenge.
func (r *ChallengeRepository) UpdateChallenge(ctx context.Context, id, userID primitive.ObjectID, challenge *models.Challenge) (*models.Challenge, error) {
	update := bson.M{"$set": bson.M{
		"name":          challenge.Name,
		"description":   challenge.Description,
		"start_date":    challenge.StartDate,
		"end_date":      challenge.EndDate,
		"reminder_time": challenge.ReminderTime,
		"updated_at":    time.Now(),
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id, "user_id": userID}, update)
	if err != nil {
		logger.Log.WithError(err).WithField("challenge_id", id.Hex()).Error("Failed to update challenge")
		return nil, fmt.Errorf("failed to update challenge: %v", err)
	}
	if result.MatchedCount == 0 {
		return nil, apperr.ErrNotFound
	}

	logger.Log.WithField("challenge_id", id.Hex()).Info("Challenge updated")
	return r.GetChallenge(ctx, id, userID)
}

// DeleteChallenge removes an owner-scoped challenge.
func (r *ChallengeRepository) DeleteChallenge(ctx context.Context, id, userID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		logger.Log.WithError(err).WithField("challenge_id", id.Hex()).Error("Failed to delete challenge")
		return fmt.Errorf("failed to delete challenge: %v", err)
	}
	if result.DeletedCount == 0 {
		return apperr.ErrNotFound
	}

	logger.Log.WithField("challenge_id", id.Hex()).Info("Challenge deleted")
	return nil
}
