package chat

import "time"

// Outcome names which leg of the fallback chain produced a result.
type Outcome string

const (
	OutcomeEnriched Outcome = "enriched"
	OutcomeFallback Outcome = "fallback"
	OutcomeFailure  Outcome = "failure"
)

// Result is the explicit product of one chat turn. Exactly one of the three
// outcomes is set; Err is populated only on failure.
type Result struct {
	Outcome        Outcome
	Message        string
	Model          string
	ProcessingType string
	Intent         string
	Confidence     float64
	TokensUsed     int
	ProcessingTime float64
	Err            error
}

// Message is one persisted conversation turn.
type Message struct {
	SessionID string                 `bson:"session_id"`
	Role      string                 `bson:"role"`
	Content   string                 `bson:"content"`
	Timestamp time.Time              `bson:"timestamp"`
	Metadata  map[string]interface{} `bson:"metadata,omitempty"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)
