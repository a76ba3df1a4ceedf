package main

import (
	"context"
	"encoding/json"
	"strings"

	"dteai/internal/analysis"
	"dteai/internal/chat"
	"dteai/pkg/logging"
	"dteai/pkg/models"
)

// handleChatRequest answers one chat-channel payload with exactly one
// response envelope. Empty messages are discarded without a response.
func (a *App) handleChatRequest(ctx context.Context, payload string) error {
	req, err := models.DecodeChatRequest(payload)
	if err != nil {
		return err
	}
	if strings.TrimSpace(req.Message) == "" {
		return nil
	}

	ctx = logging.WithRequestID(ctx, req.SessionID)
	result := a.chatService.ProcessMessage(ctx, req)

	resp := models.ChatResponse{
		Type:      "chat_response",
		EventID:   req.EventID,
		SessionID: req.SessionID,
		UserID:    req.UserID,
		CompanyID: req.CompanyID,
		Timestamp: models.Now(),
	}
	switch result.Outcome {
	case chat.OutcomeFailure:
		resp.Error = result.Err.Error()
	default:
		resp.Success = true
		resp.Message = result.Message
		resp.Confidence = result.Confidence
		resp.TokensUsed = result.TokensUsed
		resp.ProcessingTime = result.ProcessingTime
		resp.Model = result.Model
		resp.ContextType = req.ContextType
		resp.Intent = result.Intent
		resp.ProcessingType = result.ProcessingType
	}

	a.publish(ctx, resp)
	return nil
}

// handleAnalysisRequest runs one document analysis. Requests without DTE
// data are discarded silently, matching the producer's retry-free contract.
func (a *App) handleAnalysisRequest(ctx context.Context, payload string) error {
	req, err := models.DecodeAnalysisRequest(payload)
	if err != nil {
		return err
	}
	if len(req.DTEData) == 0 {
		return nil
	}

	ctx = logging.WithRequestID(ctx, req.RequestID)
	record, err := a.analysisService.AnalyzeDocument(ctx, analysis.AnalyzeParams{
		DocumentData: req.DTEData,
		AnalysisType: analysis.AnalysisType(req.AnalysisType),
		DocumentID:   analysis.DocumentIDOf(req.DTEData),
	})
	if err != nil {
		return err
	}

	a.publish(ctx, models.AnalysisResponse{
		RequestID:      req.RequestID,
		AnalysisResult: record,
		DTEData:        req.DTEData,
		AnalysisType:   req.AnalysisType,
		Timestamp:      models.Now(),
		Type:           "analysis_response",
	})
	return nil
}

// handleGeneralRequest serves the status probe; other request types on the
// general channel are ignored.
func (a *App) handleGeneralRequest(ctx context.Context, payload string) error {
	req, err := models.DecodeStatusRequest(payload)
	if err != nil {
		return err
	}
	if req.Type != "status" {
		return nil
	}

	status := "online"
	if err := a.aiClient.Ping(ctx); err != nil {
		status = "offline"
	}

	a.publish(ctx, models.StatusResponse{
		RequestID: req.RequestID,
		Status:    status,
		Model:     a.aiClient.Model(),
		Timestamp: models.Now(),
		Type:      "status_response",
	})
	return nil
}

func (a *App) publish(ctx context.Context, envelope interface{}) {
	encoded, err := json.Marshal(envelope)
	if err != nil {
		a.Logger.ErrorwCtx(ctx, "failed to encode response envelope", "error", err)
		return
	}
	a.bus.Publish(ctx, a.Config.Bus.Responses, string(encoded))
}
