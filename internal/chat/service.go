package chat

import (
	"context"
	"time"

	"dteai/internal/ai"
	"dteai/internal/business"
	"dteai/internal/constants"
	"dteai/internal/logger"
	"dteai/pkg/errors"
	"dteai/pkg/metrics"
	"dteai/pkg/models"
)

var errGeneratorUnavailable = errors.ErrGeneration.WithMessage("ai capability unavailable")

// Store persists and recalls conversation turns. A nil store disables the
// enriched path.
type Store interface {
	SaveMessage(ctx context.Context, msg Message) error
	RecentMessages(ctx context.Context, sessionID string, limit int64) ([]Message, error)
}

// SummaryProvider resolves company context for prompt grounding. A nil
// provider disables the enriched path.
type SummaryProvider interface {
	GetCompanySummary(ctx context.Context, companyID string) (*business.Summary, error)
}

// Service runs the chat fallback chain: enriched processing when both the
// session store and business data are available, direct generation otherwise,
// and an explicit failure result when generation itself is down. It never
// returns an error; the Result says what happened.
type Service struct {
	generator ai.Generator
	store     Store
	business  SummaryProvider
	logger    logger.Logger

	historyLimit int64
}

func NewService(generator ai.Generator, store Store, provider SummaryProvider, log logger.Logger) *Service {
	if log == nil {
		log = logger.NopLogger()
	}
	return &Service{
		generator:    generator,
		store:        store,
		business:     provider,
		logger:       log,
		historyLimit: 10,
	}
}

// ProcessMessage runs one chat turn through the fallback chain. The returned
// Result is never nil.
func (s *Service) ProcessMessage(ctx context.Context, req models.ChatRequest) *Result {
	start := time.Now()

	var result *Result
	if s.store != nil && s.business != nil {
		enriched, err := s.processEnriched(ctx, req)
		if err == nil {
			result = enriched
		} else {
			s.logger.WarnwCtx(ctx, "enriched chat processing failed, falling back to direct generation",
				"session_id", req.SessionID,
				"error", err,
			)
		}
	}
	if result == nil {
		result = s.processDirect(ctx, req)
	}

	metrics.ChatResponsesTotal.WithLabelValues(string(result.Outcome)).Inc()
	metrics.ObserveChatDuration(time.Since(start), string(result.Outcome))
	return result
}

func (s *Service) processEnriched(ctx context.Context, req models.ChatRequest) (*Result, error) {
	if s.generator == nil {
		return nil, errGeneratorUnavailable
	}

	summary, err := s.business.GetCompanySummary(ctx, req.CompanyID)
	if err != nil {
		return nil, err
	}

	intent := DetectIntent(req.Message)

	history, err := s.store.RecentMessages(ctx, req.SessionID, s.historyLimit)
	if err != nil {
		s.logger.WarnwCtx(ctx, "failed to load conversation history",
			"session_id", req.SessionID,
			"error", err,
		)
		history = nil
	}

	prompt := BuildContextualPrompt(req.Message, intent, summary, history)
	generation, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	s.saveTurn(ctx, req, generation.Content, intent, "ai_enhanced")

	return &Result{
		Outcome:        OutcomeEnriched,
		Message:        generation.Content,
		Model:          generation.Model,
		ProcessingType: "ai_enhanced",
		Intent:         intent,
		Confidence:     confidenceOf(generation),
		TokensUsed:     generation.EvalCount,
		ProcessingTime: float64(generation.TotalDuration.Milliseconds()),
	}, nil
}

func (s *Service) processDirect(ctx context.Context, req models.ChatRequest) *Result {
	if s.generator == nil {
		return &Result{
			Outcome: OutcomeFailure,
			Err:     errGeneratorUnavailable,
		}
	}

	prompt := BuildDirectPrompt(req.Message, req.ContextType)
	generation, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		s.logger.ErrorwCtx(ctx, "direct chat generation failed",
			"session_id", req.SessionID,
			"error", err,
		)
		return &Result{
			Outcome: OutcomeFailure,
			Err:     err,
		}
	}

	return &Result{
		Outcome:        OutcomeFallback,
		Message:        generation.Content,
		Model:          generation.Model,
		ProcessingType: "ollama_direct",
		Confidence:     confidenceOf(generation),
		TokensUsed:     generation.EvalCount,
		ProcessingTime: float64(generation.TotalDuration.Milliseconds()),
	}
}

// saveTurn records both sides of the exchange. Persistence is best effort:
// a store failure never fails the turn.
func (s *Service) saveTurn(ctx context.Context, req models.ChatRequest, response, intent, processingType string) {
	now := time.Now().UTC()
	turns := []Message{
		{
			SessionID: req.SessionID,
			Role:      RoleUser,
			Content:   req.Message,
			Timestamp: now,
			Metadata: map[string]interface{}{
				"user_id":    req.UserID,
				"company_id": req.CompanyID,
				"source":     "redis",
			},
		},
		{
			SessionID: req.SessionID,
			Role:      RoleAssistant,
			Content:   response,
			Timestamp: now,
			Metadata: map[string]interface{}{
				"intent":          intent,
				"processing_type": processingType,
			},
		},
	}
	for _, msg := range turns {
		if err := s.store.SaveMessage(ctx, msg); err != nil {
			s.logger.WarnwCtx(ctx, "failed to persist chat message",
				"session_id", req.SessionID,
				"role", msg.Role,
				"error", err,
			)
		}
	}
}

func confidenceOf(g *ai.Generation) float64 {
	if g.Confidence > 0 {
		return g.Confidence
	}
	return constants.DefaultConfidence
}
