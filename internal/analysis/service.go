package analysis

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"dteai/internal/ai"
	"dteai/internal/config"
	"dteai/internal/constants"
	"dteai/internal/logger"
	"dteai/pkg/errors"
	"dteai/pkg/metrics"
)

// Repository persists analysis records and the audit trail. A nil repository
// disables persistence without disabling analysis.
type Repository interface {
	SaveAnalysis(ctx context.Context, record *Record) error
	LogAuditEvent(ctx context.Context, event AuditEvent) error
	AnalysesByDocument(ctx context.Context, documentID string, limit int64) ([]Record, error)
}

// AnalyzeParams identifies one document analysis request.
type AnalyzeParams struct {
	DocumentData map[string]interface{}
	AnalysisType AnalysisType
	DocumentID   string
	UserID       string
	CompanyID    string
	Metadata     map[string]interface{}
}

// Service orchestrates document analyses: prompt construction, generation,
// risk classification and persistence. Generation failures degrade to a
// reviewable record instead of surfacing as errors.
type Service struct {
	generator ai.Generator
	repo      Repository
	cfg       config.AnalysisConfig
	logger    logger.Logger
}

func NewService(generator ai.Generator, repo Repository, cfg config.AnalysisConfig, log logger.Logger) *Service {
	if log == nil {
		log = logger.NopLogger()
	}
	return &Service{
		generator: generator,
		repo:      repo,
		cfg:       cfg,
		logger:    log,
	}
}

// AnalyzeDocument runs a single analysis end to end. The returned record is
// never nil unless ctx was cancelled; when generation fails the record
// carries the degraded payload and is persisted like any other result.
func (s *Service) AnalyzeDocument(ctx context.Context, p AnalyzeParams) (*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	record := &Record{
		AnalysisID:   uuid.New().String(),
		DocumentID:   p.DocumentID,
		AnalysisType: p.AnalysisType,
		CreatedAt:    start.UTC(),
		UserID:       p.UserID,
		CompanyID:    p.CompanyID,
		Metadata:     p.Metadata,
	}
	if record.DocumentID == "" {
		record.DocumentID = "unknown"
	}
	if record.AnalysisType == "" {
		record.AnalysisType = FraudDetection
	}

	results, err := s.generate(ctx, p.DocumentData, record.AnalysisType)
	status := "success"
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		status = "degraded"
		s.logger.WarnwCtx(ctx, "analysis generation failed, recording degraded result",
			"analysis_id", record.AnalysisID,
			"document_id", record.DocumentID,
			"analysis_type", record.AnalysisType,
			"error", err,
		)
		record.RiskLevel = RiskMedium
		record.ConfidenceScore = constants.DegradedConfidence
		record.AnalysisResults = map[string]interface{}{
			"error":           err.Error(),
			"status":          "failed",
			"recommendations": []string{"Revisión manual requerida"},
		}
	} else {
		riskScore, confidence := RiskInputs(results)
		record.RiskLevel = ClassifyRisk(riskScore, confidence)
		record.ConfidenceScore = numericField(results, "confidence", 0.8)
		record.AnalysisResults = results
	}
	record.CompletedAt = time.Now().UTC()

	s.persist(ctx, record)
	s.audit(ctx, record)

	metrics.AnalysesTotal.WithLabelValues(string(record.AnalysisType), string(record.RiskLevel)).Inc()
	metrics.ObserveAnalysisDuration(time.Since(start), string(record.AnalysisType), status)

	return record, nil
}

// BatchAnalyzeDocuments analyzes documents concurrently under a fixed
// admission bound. Each document is isolated: one failure never aborts the
// batch, and degraded records count as results. Order is not guaranteed.
func (s *Service) BatchAnalyzeDocuments(ctx context.Context, documents []map[string]interface{}, analysisType AnalysisType, userID, companyID string) []*Record {
	if len(documents) == 0 {
		return nil
	}

	concurrency := s.cfg.BatchConcurrency
	if concurrency < 1 {
		concurrency = 1
	}

	batchID := uuid.New().String()
	sem := semaphore.NewWeighted(int64(concurrency))
	records := make([]*Record, 0, len(documents))

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for i, doc := range documents {
		wg.Add(1)
		go func(index int, doc map[string]interface{}) {
			defer wg.Done()
			if err := sem.Acquire(ctx, 1); err != nil {
				return
			}
			defer sem.Release(1)

			record, err := s.AnalyzeDocument(ctx, AnalyzeParams{
				DocumentData: doc,
				AnalysisType: analysisType,
				DocumentID:   DocumentIDOf(doc),
				UserID:       userID,
				CompanyID:    companyID,
				Metadata: map[string]interface{}{
					"batch_id":    batchID,
					"batch_index": index,
				},
			})
			if err != nil {
				s.logger.WarnwCtx(ctx, "batch document skipped",
					"batch_id", batchID,
					"batch_index", index,
					"error", err,
				)
				return
			}

			mu.Lock()
			records = append(records, record)
			mu.Unlock()
		}(i, doc)
	}
	wg.Wait()

	s.logger.InfowCtx(ctx, "batch analysis completed",
		"batch_id", batchID,
		"documents", len(documents),
		"results", len(records),
	)
	return records
}

// GetDocumentHistory returns prior analyses of a document, most recent first.
func (s *Service) GetDocumentHistory(ctx context.Context, documentID string, limit int64) ([]Record, error) {
	if s.repo == nil {
		return nil, errors.ErrInternal.WithMessage("analysis persistence is not configured")
	}
	return s.repo.AnalysesByDocument(ctx, documentID, limit)
}

func (s *Service) generate(ctx context.Context, documentData map[string]interface{}, analysisType AnalysisType) (map[string]interface{}, error) {
	if s.generator == nil {
		return nil, errors.ErrGeneration.WithMessage("ai capability unavailable")
	}

	serialized := serializeDocument(documentData, s.cfg.MaxDocumentChars)
	prompt := BuildAnalysisPrompt(analysisType, serialized)

	generation, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return parseResults(generation.Content), nil
}

func (s *Service) persist(ctx context.Context, record *Record) {
	if s.repo == nil {
		return
	}
	if err := s.repo.SaveAnalysis(ctx, record); err != nil {
		s.logger.ErrorwCtx(ctx, "failed to persist analysis record",
			"analysis_id", record.AnalysisID,
			"document_id", record.DocumentID,
			"error", err,
		)
	}
}

func (s *Service) audit(ctx context.Context, record *Record) {
	if s.repo == nil {
		return
	}
	event := AuditEvent{
		EventID:  uuid.New().String(),
		UserID:   record.UserID,
		Action:   "document_analysis_" + string(record.AnalysisType),
		Resource: "document:" + record.DocumentID,
		Metadata: map[string]interface{}{
			"analysis_id": record.AnalysisID,
			"risk_level":  string(record.RiskLevel),
			"confidence":  record.ConfidenceScore,
		},
		Timestamp: time.Now().UTC(),
	}
	if err := s.repo.LogAuditEvent(ctx, event); err != nil {
		s.logger.WarnwCtx(ctx, "failed to log audit event",
			"analysis_id", record.AnalysisID,
			"error", err,
		)
	}
}

// DocumentIDOf extracts the document identifier from common payload keys.
func DocumentIDOf(doc map[string]interface{}) string {
	for _, key := range []string{"id", "document_id", "documentId", "folio"} {
		if v, ok := doc[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}
