package models

import "time"

// ChatResponse mirrors the envelope the external backend consumes. EventID
// echoes the request's correlation id unchanged, including when empty.
type ChatResponse struct {
	Success        bool    `json:"success"`
	Type           string  `json:"type"`
	EventID        string  `json:"eventId"`
	SessionID      string  `json:"sessionId"`
	UserID         string  `json:"userId"`
	CompanyID      string  `json:"companyId"`
	Message        string  `json:"message,omitempty"`
	Error          string  `json:"error,omitempty"`
	Confidence     float64 `json:"confidence,omitempty"`
	TokensUsed     int     `json:"tokensUsed,omitempty"`
	ProcessingTime float64 `json:"processingTime,omitempty"`
	Timestamp      string  `json:"timestamp"`
	Model          string  `json:"model,omitempty"`
	ContextType    string  `json:"contextType,omitempty"`
	Intent         string  `json:"intent,omitempty"`
	ProcessingType string  `json:"processing_type,omitempty"`
}

type AnalysisResponse struct {
	RequestID      string                 `json:"requestId"`
	AnalysisResult interface{}            `json:"analysisResult"`
	DTEData        map[string]interface{} `json:"dteData"`
	AnalysisType   string                 `json:"analysisType"`
	Timestamp      string                 `json:"timestamp"`
	Type           string                 `json:"type"`
}

type StatusResponse struct {
	RequestID string `json:"requestId"`
	Status    string `json:"status"`
	Model     string `json:"model"`
	Timestamp string `json:"timestamp"`
	Type      string `json:"type"`
}

func Now() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}
