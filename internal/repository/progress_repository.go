package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/askhatb/challenge-on/internal/apperr"
	"github.com/askhatb/challenge-on/internal/models"
	"github.com/askhatb/challenge-on/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProgressRepository handles database operations related to progress logs.
type ProgressRepository struct {
	collection *mongo.Collection
}

// NewProgressRepository creates a new instance of ProgressRepository.
func NewProgressRepository(db *mongo.Database) *ProgressRepository {
	return &ProgressRepository{
		collection: db.Collection("progress_logs"),
	}
}

// CreateLog inserts a new progress log into the database.
func (r *ProgressRepository) CreateLog(ctx context.Context, log *models.ProgressLog) (*models.ProgressLog, error) {
	log.CreatedAt = time.Now()
	log.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, log)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to insert progress log")
		return nil, fmt.Errorf("failed to insert progress log: %v", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		logger.Log.Error("Failed to cast inserted progress log ID")
		return nil, fmt.Errorf("failed to cast inserted ID")
	}
	log.ID = insertedID

	logger.Log.WithField("log_id", log.ID.Hex()).Info("Progress log created")
	return log, nil
}

// GetLogsByChallenge fetches the caller's logs for one challenge, most recent first.
func (r *ProgressRepository) GetLogsByChallenge(ctx context.Context, challengeID, userID primitive.ObjectID) ([]models.ProgressLog, error) {
	filter := bson.M{"challenge_id": challengeID, "user_id": userID}
	findOptions := options.Find().SetSort(bson.M{"date": -1})

	return r.findLogs(ctx, filter, findOptions)
}

// GetLogsByChallengeIDs fetches the caller's logs across several challenges in
// one query, for attaching logs to a challenge listing.
func (r *ProgressRepository) GetLogsByChallengeIDs(ctx context.Context, challengeIDs []primitive.ObjectID, userID primitive.ObjectID) ([]models.ProgressLog, error) {
	if len(challengeIDs) == 0 {
		return nil, nil
	}

	filter := bson.M{"challenge_id": bson.M{"$in": challengeIDs}, "user_id": userID}
	findOptions := options.Find().SetSort(bson.M{"date": -1})

	return r.findLogs(ctx, filter, findOptions)
}

func (r *ProgressRepository) findLogs(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.ProgressLog, error) {
	var logs []models.ProgressLog

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to fetch progress logs")
		return nil, fmt.Errorf("failed to fetch progress logs: %v", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var log models.ProgressLog
		if err := cursor.Decode(&log); err != nil {
			logger.Log.WithError(err).Error("Failed to decode progress log")
			return nil, fmt.Errorf("failed to decode progress log: %v", err)
		}
		logs = append(logs, log)
	}

	return logs, nil
}

// UpdateLog updates an owner-scoped progress log's mutable fields.
func (r *ProgressRepository) UpdateLog(ctx context.Context, id, userID primitive.ObjectID, log *models.ProgressLog) (*models.ProgressLog, error) {
	update := bson.M{"$set": bson.M{
		"date":        log.Date,
		"description": log.Description,
		"media_url":   log.MediaURL,
		"updated_at":  time.Now(),
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id, "user_id": userID}, update)
	if err != nil {
		logger.Log.WithError(err).WithField("log_id", id.Hex()).Error("Failed to update progress log")
		return nil, fmt.Errorf("failed to update progress log: %v", err)
	}
	if result.MatchedCount == 0 {
		return nil, apperr.ErrNotFound
	}

	var updated models.ProgressLog
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&updated); err != nil {
		return nil, fmt.Errorf("failed to reload progress log: %v", err)
	}

	logger.Log.WithField("log_id", id.Hex()).Info("Progress log updated")
	return &updated, nil
}

// DeleteLog removes an owner-scoped progress log.
func (r *ProgressRepository) DeleteLog(ctx context.Context, id, userID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		logger.Log.WithError(err).WithField("log_id", id.Hex()).Error("Failed to delete progress log")
		return fmt.Errorf("failed to delete progress log: %v", err)
	}
	if result.DeletedCount == 0 {
		return apperr.ErrNotFound
	}

	logger.Log.WithField("log_id", id.Hex()).Info("Progress log deleted")
	return nil
}

// DeleteLogsByChallenge removes every log attached to a challenge. Used by the
// cascade on challenge delete.
func (r *ProgressRepository) DeleteLogsByChallenge(ctx context.Context, challengeID, userID primitive.ObjectID) error {
	result, err := r.collection.DeleteMany(ctx, bson.M{"challenge_id": challengeID, "user_id": userID})
	if err != nil {
		logger.Log.WithError(err).WithField("challenge_id", challengeID.Hex()).Error("Failed to cascade delete progress logs")
		return fmt.Errorf("failed to delete progress logs: %v", err)
	}

	logger.Log.WithFields(map[string]interface{}{
		"challenge_id": challengeID.Hex(),
		"count":        result.DeletedCount,
	}).Info("Progress logs removed with challenge")
	return nil
}
