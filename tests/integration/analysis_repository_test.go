package integration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"dteai/internal/analysis"
)

func TestAnalysisRepository_SaveAndQuery(t *testing.T) {
	infra := SetupTestInfraWithOptions(t, false, true, false)
	ctx := context.Background()

	repo := analysis.NewRepository(infra.MongoDB)
	require.NoError(t, repo.EnsureIndexes(ctx))

	base := time.Now().UTC().Truncate(time.Millisecond)
	records := []*analysis.Record{
		{
			AnalysisID:      "a-1",
			DocumentID:      "doc-1",
			AnalysisType:    analysis.FraudDetection,
			RiskLevel:       analysis.RiskLow,
			ConfidenceScore: 0.8,
			AnalysisResults: map[string]interface{}{"risk_score": 0.3},
			CreatedAt:       base.Add(-2 * time.Hour),
			CompletedAt:     base.Add(-2 * time.Hour),
			CompanyID:       "company-1",
		},
		{
			AnalysisID:      "a-2",
			DocumentID:      "doc-1",
			AnalysisType:    analysis.ComplianceCheck,
			RiskLevel:       analysis.RiskHigh,
			ConfidenceScore: 0.9,
			AnalysisResults: map[string]interface{}{"risk_score": 0.7},
			CreatedAt:       base,
			CompletedAt:     base,
			CompanyID:       "company-1",
		},
		{
			AnalysisID:   "a-3",
			DocumentID:   "doc-2",
			AnalysisType: analysis.FraudDetection,
			RiskLevel:    analysis.RiskMinimal,
			CreatedAt:    base,
			CompletedAt:  base,
		},
	}
	for _, record := range records {
		require.NoError(t, repo.SaveAnalysis(ctx, record))
	}

	// most recent first, scoped to the document
	found, err := repo.AnalysesByDocument(ctx, "doc-1", 10)
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "a-2", found[0].AnalysisID)
	assert.Equal(t, "a-1", found[1].AnalysisID)
	assert.Equal(t, analysis.RiskHigh, found[0].RiskLevel)
	assert.Equal(t, 0.7, found[0].AnalysisResults["risk_score"])

	limited, err := repo.AnalysesByDocument(ctx, "doc-1", 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "a-2", limited[0].AnalysisID)

	none, err := repo.AnalysesByDocument(ctx, "doc-unknown", 10)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestAnalysisRepository_AuditEvents(t *testing.T) {
	infra := SetupTestInfraWithOptions(t, false, true, false)
	ctx := context.Background()

	repo := analysis.NewRepository(infra.MongoDB)
	require.NoError(t, repo.EnsureIndexes(ctx))

	event := analysis.AuditEvent{
		EventID:  "e-1",
		UserID:   "user-1",
		Action:   "document_analysis_fraud_detection",
		Resource: "document:doc-1",
		Metadata: map[string]interface{}{
			"analysis_id": "a-1",
			"risk_level":  "high",
		},
		Timestamp: time.Now().UTC(),
	}
	require.NoError(t, repo.LogAuditEvent(ctx, event))

	count, err := infra.MongoDB.Collection("audit_logs").CountDocuments(ctx, bson.M{"event_id": "e-1"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
