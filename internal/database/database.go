package database

import (
	"context"
	"fmt"
	"time"

	"github.com/askhatb/challenge-on/internal/config"
	"github.com/askhatb/challenge-on/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectDB establishes a connection to MongoDB and prepares indexes.
func ConnectDB(cfg *config.Config) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(cfg.MongoURI)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %v", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %v", err)
	}

	db := client.Database(cfg.MongoDB)

	// Users are looked up by their Google subject on every sign-in; the unique
	// index also guarantees the first-sign-in upsert cannot race into duplicates.
	_, err = db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.M{"google_id": 1},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create google_id index: %v", err)
	}

	logger.Log.WithField("database", cfg.MongoDB).Info("Connected to MongoDB")
	return db, nil
}
