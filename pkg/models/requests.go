package models

import (
	"encoding/json"

	"github.com/google/uuid"

	"dteai/pkg/errors"
)

// ChatRequest is a decoded chat-channel payload. The external backend emits
// camelCase fields, older producers snake_case; both are accepted for the
// same logical field.
type ChatRequest struct {
	Message     string
	SessionID   string
	UserID      string
	CompanyID   string
	ContextType string
	EventID     string
}

// AnalysisRequest is a decoded analysis-channel payload.
type AnalysisRequest struct {
	DTEData      map[string]interface{}
	AnalysisType string
	RequestID    string
}

// StatusRequest is a decoded general-channel payload.
type StatusRequest struct {
	Type      string
	RequestID string
}

func DecodeChatRequest(payload string) (ChatRequest, error) {
	raw, err := decodeObject(payload)
	if err != nil {
		return ChatRequest{}, err
	}

	req := ChatRequest{
		Message:     stringField(raw, "message"),
		SessionID:   stringAlias(raw, "sessionId", "session_id"),
		UserID:      stringAlias(raw, "userId", "user_id"),
		CompanyID:   stringAlias(raw, "companyId", "company_id"),
		ContextType: stringAlias(raw, "contextType", "context_type"),
		EventID:     stringAlias(raw, "eventId", "event_id"),
	}

	if req.SessionID == "" {
		req.SessionID = uuid.New().String()
	}
	if req.UserID == "" {
		req.UserID = "unknown"
	}
	if req.CompanyID == "" {
		req.CompanyID = "unknown"
	}
	if req.ContextType == "" {
		req.ContextType = "business_query"
	}

	return req, nil
}

func DecodeAnalysisRequest(payload string) (AnalysisRequest, error) {
	raw, err := decodeObject(payload)
	if err != nil {
		return AnalysisRequest{}, err
	}

	dteData, ok := raw["dteData"].(map[string]interface{})
	if !ok {
		if dteData, ok = raw["dte_data"].(map[string]interface{}); !ok {
			return AnalysisRequest{}, errors.ErrDecode.WithMessage("analysis request missing dteData object")
		}
	}

	req := AnalysisRequest{
		DTEData:      dteData,
		AnalysisType: stringAlias(raw, "analysisType", "analysis_type"),
		RequestID:    stringAlias(raw, "requestId", "request_id"),
	}

	if req.AnalysisType == "" {
		req.AnalysisType = "general"
	}
	if req.RequestID == "" {
		req.RequestID = uuid.New().String()
	}

	return req, nil
}

func DecodeStatusRequest(payload string) (StatusRequest, error) {
	raw, err := decodeObject(payload)
	if err != nil {
		return StatusRequest{}, err
	}

	req := StatusRequest{
		Type:      stringField(raw, "type"),
		RequestID: stringAlias(raw, "requestId", "request_id"),
	}

	if req.Type == "" {
		return StatusRequest{}, errors.ErrDecode.WithMessage("general request missing type")
	}
	if req.RequestID == "" {
		req.RequestID = uuid.New().String()
	}

	return req, nil
}

func decodeObject(payload string) (map[string]interface{}, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return nil, errors.Wrap(err, errors.ErrDecode)
	}
	return raw, nil
}

func stringField(raw map[string]interface{}, key string) string {
	if v, ok := raw[key].(string); ok {
		return v
	}
	return ""
}

func stringAlias(raw map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if v := stringField(raw, key); v != "" {
			return v
		}
	}
	return ""
}
