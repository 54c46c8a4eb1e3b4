package taskRepo

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

// MongoTaskRepo implements TaskRepository using MongoDB.
type MongoTaskRepo struct {
	coll *mongo.Collection
}

// NewMongoTaskRepo creates a new instance of TaskRepository using MongoDB.
func NewMongoTaskRepo() TaskRepository {
	coll := database.Database().Collection("tasks")
	repo := &MongoTaskRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoTaskRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "status", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new task document.
func (r *MongoTaskRepo) Create(task *models.Task) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// Update modifies an existing task document, scoped to its owner.
func (r *MongoTaskRepo) Update(task *models.Task) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	task.UpdatedAt = time.Now()
	filter := bson.M{"id": task.ID, "userId": task.UserID}
	update := bson.M{"$set": task}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update task with id %s: %w", task.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("task with id %s not found", task.ID)
	}
	return nil
}

// Delete removes a task document by its ID, scoped to its owner.
func (r *MongoTaskRepo) Delete(id, userID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id, "userId": userID})
	if err != nil {
		return fmt.Errorf("failed to delete task with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("task with id %s not found", id)
	}
	return nil
}

// GetByID retrieves a task by its unique ID, scoped to its owner.
func (r *MongoTaskRepo) GetByID(id, userID string) (*models.Task, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var task models.Task
	if err := r.coll.FindOne(ctx, bson.M{"id": id, "userId": userID}).Decode(&task); err != nil {
		return nil, fmt.Errorf("failed to fetch task with id %s: %w", id, err)
	}
	return &task, nil
}

// ListByUser retrieves all tasks owned by a user.
func (r *MongoTaskRepo) ListByUser(userID string) ([]models.Task, error) {
	return r.list(bson.M{"userId": userID})
}

// ListIncompleteByUser retrieves the user's tasks that are still
// reminder-eligible (status != completed).
func (r *MongoTaskRepo) ListIncompleteByUser(userID string) ([]models.Task, error) {
	return r.list(bson.M{
		"userId": userID,
		"status": bson.M{"$ne": models.StatusCompleted},
	})
}

func (r *MongoTaskRepo) list(filter bson.M) ([]models.Task, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve tasks: %w", err)
	}
	defer cursor.Close(ctx)

	var tasks []models.Task
	for cursor.Next(ctx) {
		var t models.Task
		if err := cursor.Decode(&t); err != nil {
			return nil, fmt.Errorf("failed to decode task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}
