package settingsRepo

import (
	"context"
	"fmt"
	"time"

	"taskpilot/database"
	"taskpilot/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSettingsRepo implements SettingsRepository using MongoDB.
type MongoSettingsRepo struct {
	coll *mongo.Collection
}

// NewMongoSettingsRepo creates a new instance of SettingsRepository using MongoDB.
func NewMongoSettingsRepo() SettingsRepository {
	coll := database.Database().Collection("settings")
	repo := &MongoSettingsRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoSettingsRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "notificationsEnabled", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetOrCreate retrieves the settings for a user, creating a default document
// if none exists yet.
func (r *MongoSettingsRepo) GetOrCreate(userID string) (*models.ReminderSettings, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var settings models.ReminderSettings
	err := r.coll.FindOne(ctx, bson.M{"userId": userID}).Decode(&settings)
	if err == mongo.ErrNoDocuments {
		settings = models.DefaultReminderSettings(userID)
		if _, insErr := r.coll.InsertOne(ctx, settings); insErr != nil {
			return nil, fmt.Errorf("failed to create default settings for user %s: %w", userID, insErr)
		}
		return &settings, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch settings for user %s: %w", userID, err)
	}

	settings.Normalize()
	return &settings, nil
}

// Update replaces the stored settings for a user.
func (r *MongoSettingsRepo) Update(settings *models.ReminderSettings) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	settings.UpdatedAt = time.Now()
	filter := bson.M{"userId": settings.UserID}
	update := bson.M{"$set": settings}

	result, err := r.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to update settings for user %s: %w", settings.UserID, err)
	}
	if result.MatchedCount == 0 && result.UpsertedCount == 0 {
		return fmt.Errorf("settings for user %s not found", settings.UserID)
	}
	return nil
}

// ListNotifiable retrieves every settings document with notifications enabled
// and a non-empty webhook URL. This is the tick orchestrator's entry query.
func (r *MongoSettingsRepo) ListNotifiable() ([]models.ReminderSettings, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{
		"notificationsEnabled": true,
		"webhookUrl":           bson.M{"$exists": true, "$ne": ""},
	}

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve notifiable settings: %w", err)
	}
	defer cursor.Close(ctx)

	var all []models.ReminderSettings
	for cursor.Next(ctx) {
		var s models.ReminderSettings
		if err := cursor.Decode(&s); err != nil {
			return nil, fmt.Errorf("failed to decode settings: %w", err)
		}
		s.Normalize()
		all = append(all, s)
	}
	return all, nil
}
