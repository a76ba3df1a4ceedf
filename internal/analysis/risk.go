package analysis

// ClassifyRisk maps an AI-produced (risk_score, confidence) pair to a
// discrete level. The score is discounted by the model's own confidence:
// a risky-looking finding the model is unsure about classifies lower.
func ClassifyRisk(riskScore, confidence float64) RiskLevel {
	adjusted := riskScore * confidence

	switch {
	case adjusted >= 0.8:
		return RiskCritical
	case adjusted >= 0.6:
		return RiskHigh
	case adjusted >= 0.4:
		return RiskMedium
	case adjusted >= 0.2:
		return RiskLow
	default:
		return RiskMinimal
	}
}

// RiskInputs extracts risk_score and confidence from a parsed generation
// payload, defaulting each to 0.5 when absent or non-numeric.
func RiskInputs(results map[string]interface{}) (riskScore, confidence float64) {
	riskScore = numericField(results, "risk_score", 0.5)
	confidence = numericField(results, "confidence", 0.5)
	return riskScore, confidence
}

func numericField(m map[string]interface{}, key string, fallback float64) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return fallback
	}
}
