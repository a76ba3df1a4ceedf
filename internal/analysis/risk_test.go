package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyRisk(t *testing.T) {
	tests := []struct {
		name       string
		riskScore  float64
		confidence float64
		want       RiskLevel
	}{
		{name: "critical at exact threshold", riskScore: 0.8, confidence: 1.0, want: RiskCritical},
		{name: "high discounted from critical", riskScore: 0.9, confidence: 0.7, want: RiskHigh},
		{name: "high at exact threshold", riskScore: 0.6, confidence: 1.0, want: RiskHigh},
		{name: "medium at exact threshold", riskScore: 0.4, confidence: 1.0, want: RiskMedium},
		{name: "low at exact threshold", riskScore: 0.2, confidence: 1.0, want: RiskLow},
		{name: "minimal below low threshold", riskScore: 0.19, confidence: 1.0, want: RiskMinimal},
		{name: "zero score", riskScore: 0.0, confidence: 1.0, want: RiskMinimal},
		{name: "high score but no confidence", riskScore: 1.0, confidence: 0.0, want: RiskMinimal},
		{name: "defaults product", riskScore: 0.5, confidence: 0.5, want: RiskLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyRisk(tt.riskScore, tt.confidence))
		})
	}
}

// Raising either input never lowers the classified level.
func TestClassifyRiskMonotonic(t *testing.T) {
	rank := map[RiskLevel]int{
		RiskMinimal:  0,
		RiskLow:      1,
		RiskMedium:   2,
		RiskHigh:     3,
		RiskCritical: 4,
	}

	steps := []float64{0.0, 0.1, 0.25, 0.5, 0.75, 0.9, 1.0}
	for _, confidence := range steps {
		prev := -1
		for _, score := range steps {
			level := rank[ClassifyRisk(score, confidence)]
			assert.GreaterOrEqual(t, level, prev,
				"score %v confidence %v", score, confidence)
			prev = level
		}
	}
}

func TestRiskInputs(t *testing.T) {
	t.Run("present values", func(t *testing.T) {
		score, confidence := RiskInputs(map[string]interface{}{
			"risk_score": 0.9,
			"confidence": 0.75,
		})
		assert.Equal(t, 0.9, score)
		assert.Equal(t, 0.75, confidence)
	})

	t.Run("missing values default", func(t *testing.T) {
		score, confidence := RiskInputs(map[string]interface{}{})
		assert.Equal(t, 0.5, score)
		assert.Equal(t, 0.5, confidence)
	})

	t.Run("non-numeric values default", func(t *testing.T) {
		score, confidence := RiskInputs(map[string]interface{}{
			"risk_score": "alto",
			"confidence": nil,
		})
		assert.Equal(t, 0.5, score)
		assert.Equal(t, 0.5, confidence)
	})

	t.Run("integer values accepted", func(t *testing.T) {
		score, _ := RiskInputs(map[string]interface{}{"risk_score": 1})
		assert.Equal(t, 1.0, score)
	})
}
