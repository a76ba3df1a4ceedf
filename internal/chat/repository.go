package chat

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"dteai/internal/constants"
)

type MongoDBRepository struct {
	messages *mongo.Collection
}

func NewRepository(db *mongo.Database) *MongoDBRepository {
	return &MongoDBRepository{
		messages: db.Collection(constants.MongoMessagesCollection),
	}
}

func (r *MongoDBRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "session_id", Value: 1}, {Key: "timestamp", Value: -1}}},
	}
	if _, err := r.messages.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create message indexes: %w", err)
	}
	return nil
}

func (r *MongoDBRepository) SaveMessage(ctx context.Context, msg Message) error {
	if _, err := r.messages.InsertOne(ctx, msg); err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}
	return nil
}

// RecentMessages returns the last messages of a session in chronological
// order, oldest first.
func (r *MongoDBRepository) RecentMessages(ctx context.Context, sessionID string, limit int64) ([]Message, error) {
	if limit <= 0 {
		limit = 10
	}
	filter := bson.M{"session_id": sessionID}
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.messages.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find messages: %w", err)
	}
	defer cursor.Close(ctx)

	var messages []Message
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, fmt.Errorf("failed to decode messages: %w", err)
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}
