package analysis

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"dteai/internal/constants"
)

type MongoDBRepository struct {
	analyses *mongo.Collection
	audit    *mongo.Collection
}

func NewRepository(db *mongo.Database) *MongoDBRepository {
	return &MongoDBRepository{
		analyses: db.Collection(constants.MongoAnalysesCollection),
		audit:    db.Collection(constants.MongoAuditCollection),
	}
}

// EnsureIndexes creates the query indexes the analysis collections rely on.
// Creation is idempotent, so it runs unconditionally at startup.
func (r *MongoDBRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "document_id", Value: 1}}},
		{Keys: bson.D{{Key: "company_id", Value: 1}}},
		{Keys: bson.D{{Key: "analysis_type", Value: 1}}},
		{Keys: bson.D{{Key: "risk_level", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}
	if _, err := r.analyses.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create analysis indexes: %w", err)
	}

	auditIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "timestamp", Value: -1}}},
	}
	if _, err := r.audit.Indexes().CreateMany(ctx, auditIndexes); err != nil {
		return fmt.Errorf("failed to create audit indexes: %w", err)
	}

	return nil
}

func (r *MongoDBRepository) SaveAnalysis(ctx context.Context, record *Record) error {
	if _, err := r.analyses.InsertOne(ctx, record); err != nil {
		return fmt.Errorf("failed to insert analysis record: %w", err)
	}
	return nil
}

func (r *MongoDBRepository) LogAuditEvent(ctx context.Context, event AuditEvent) error {
	if _, err := r.audit.InsertOne(ctx, event); err != nil {
		return fmt.Errorf("failed to insert audit event: %w", err)
	}
	return nil
}

func (r *MongoDBRepository) AnalysesByDocument(ctx context.Context, documentID string, limit int64) ([]Record, error) {
	if limit <= 0 {
		limit = 10
	}
	filter := bson.M{"document_id": documentID}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.analyses.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find analyses: %w", err)
	}
	defer cursor.Close(ctx)

	var records []Record
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode analyses: %w", err)
	}

	return records, nil
}
