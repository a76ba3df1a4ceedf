package constants

import "time"

const (
	ServiceName = "dte-ai-service"

	// Bus channel suffixes, joined with the configured prefix.
	ChannelChatRequests     = "chat_requests"
	ChannelAnalysisRequests = "analysis_requests"
	ChannelGeneralRequests  = "ai_requests"
	ChannelResponses        = "ai_responses"

	DefaultChannelPrefix = "cloudmusic_dte"

	// Prompt embedding bound for serialized documents. Oversized documents
	// are truncated, accepting information loss over unbounded prompt cost.
	MaxDocumentChars  = 3000
	TruncationMarker  = "... [documento truncado]"
	BatchConcurrency  = 5
	DefaultConfidence = 0.85

	// Degraded analysis record values when generation fails.
	DegradedConfidence = 0.3

	ShutdownTimeout = 10 * time.Second

	MongoAnalysesCollection = "document_analyses"
	MongoAuditCollection    = "audit_logs"
	MongoMessagesCollection = "chat_messages"
)
