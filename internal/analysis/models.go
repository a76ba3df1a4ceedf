package analysis

import "time"

type AnalysisType string

const (
	FraudDetection    AnalysisType = "fraud_detection"
	ComplianceCheck   AnalysisType = "compliance_check"
	FinancialAnalysis AnalysisType = "financial_analysis"
	PatternAnalysis   AnalysisType = "pattern_analysis"
)

type RiskLevel string

const (
	RiskMinimal  RiskLevel = "minimal"
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// Record is one completed document analysis. Created at request receipt,
// filled after generation (or replaced with the degraded payload on
// failure), persisted once and never mutated again.
type Record struct {
	AnalysisID      string                 `bson:"analysis_id" json:"analysis_id"`
	DocumentID      string                 `bson:"document_id" json:"document_id"`
	AnalysisType    AnalysisType           `bson:"analysis_type" json:"analysis_type"`
	RiskLevel       RiskLevel              `bson:"risk_level" json:"risk_level"`
	ConfidenceScore float64                `bson:"confidence_score" json:"confidence_score"`
	AnalysisResults map[string]interface{} `bson:"analysis_results" json:"analysis_results"`
	CreatedAt       time.Time              `bson:"created_at" json:"created_at"`
	CompletedAt     time.Time              `bson:"completed_at" json:"completed_at"`
	UserID          string                 `bson:"user_id" json:"user_id"`
	CompanyID       string                 `bson:"company_id" json:"company_id"`
	Metadata        map[string]interface{} `bson:"metadata,omitempty" json:"metadata,omitempty"`
}

// ValidationResult is data, never an error: failed checks append to Errors
// and flip IsValid, warnings never do.
type ValidationResult struct {
	IsValid      bool      `json:"is_valid"`
	Errors       []string  `json:"errors"`
	Warnings     []string  `json:"warnings"`
	DocumentType string    `json:"document_type"`
	ValidatedAt  time.Time `json:"validated_at"`
}

type AuditEvent struct {
	EventID   string                 `bson:"event_id"`
	UserID    string                 `bson:"user_id"`
	Action    string                 `bson:"action"`
	Resource  string                 `bson:"resource"`
	Metadata  map[string]interface{} `bson:"metadata,omitempty"`
	Timestamp time.Time              `bson:"timestamp"`
}
