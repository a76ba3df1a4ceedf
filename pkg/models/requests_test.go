package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dteai/pkg/errors"
)

func TestDecodeChatRequest(t *testing.T) {
	t.Run("camelCase fields", func(t *testing.T) {
		req, err := DecodeChatRequest(`{
			"message": "hola",
			"sessionId": "s-1",
			"userId": "u-1",
			"companyId": "c-1",
			"contextType": "support",
			"eventId": "e-1"
		}`)
		require.NoError(t, err)
		assert.Equal(t, "hola", req.Message)
		assert.Equal(t, "s-1", req.SessionID)
		assert.Equal(t, "u-1", req.UserID)
		assert.Equal(t, "c-1", req.CompanyID)
		assert.Equal(t, "support", req.ContextType)
		assert.Equal(t, "e-1", req.EventID)
	})

	t.Run("snake_case fields", func(t *testing.T) {
		req, err := DecodeChatRequest(`{
			"message": "hola",
			"session_id": "s-2",
			"user_id": "u-2",
			"company_id": "c-2"
		}`)
		require.NoError(t, err)
		assert.Equal(t, "s-2", req.SessionID)
		assert.Equal(t, "u-2", req.UserID)
		assert.Equal(t, "c-2", req.CompanyID)
	})

	t.Run("camelCase wins when both present", func(t *testing.T) {
		req, err := DecodeChatRequest(`{"message": "x", "sessionId": "camel", "session_id": "snake"}`)
		require.NoError(t, err)
		assert.Equal(t, "camel", req.SessionID)
	})

	t.Run("defaults applied", func(t *testing.T) {
		req, err := DecodeChatRequest(`{"message": "hola"}`)
		require.NoError(t, err)
		assert.NotEmpty(t, req.SessionID)
		assert.Equal(t, "unknown", req.UserID)
		assert.Equal(t, "unknown", req.CompanyID)
		assert.Equal(t, "business_query", req.ContextType)
		assert.Empty(t, req.EventID)
	})

	t.Run("malformed payload", func(t *testing.T) {
		_, err := DecodeChatRequest(`not json at all`)
		require.Error(t, err)
		assert.True(t, errors.IsDecode(err))
	})

	t.Run("non-object payload", func(t *testing.T) {
		_, err := DecodeChatRequest(`[1, 2, 3]`)
		assert.Error(t, err)
	})
}

func TestDecodeAnalysisRequest(t *testing.T) {
	t.Run("camelCase", func(t *testing.T) {
		req, err := DecodeAnalysisRequest(`{
			"dteData": {"RUTEmisor": "12.345.678-5"},
			"analysisType": "fraud_detection",
			"requestId": "r-1"
		}`)
		require.NoError(t, err)
		assert.Equal(t, "12.345.678-5", req.DTEData["RUTEmisor"])
		assert.Equal(t, "fraud_detection", req.AnalysisType)
		assert.Equal(t, "r-1", req.RequestID)
	})

	t.Run("snake_case dte_data", func(t *testing.T) {
		req, err := DecodeAnalysisRequest(`{"dte_data": {"MntTotal": 100}}`)
		require.NoError(t, err)
		assert.Equal(t, float64(100), req.DTEData["MntTotal"])
	})

	t.Run("defaults", func(t *testing.T) {
		req, err := DecodeAnalysisRequest(`{"dteData": {}}`)
		require.NoError(t, err)
		assert.Equal(t, "general", req.AnalysisType)
		assert.NotEmpty(t, req.RequestID)
	})

	t.Run("missing dte data", func(t *testing.T) {
		_, err := DecodeAnalysisRequest(`{"analysisType": "fraud_detection"}`)
		require.Error(t, err)
		assert.True(t, errors.IsDecode(err))
	})

	t.Run("dte data wrong shape", func(t *testing.T) {
		_, err := DecodeAnalysisRequest(`{"dteData": "not an object"}`)
		assert.Error(t, err)
	})
}

func TestDecodeStatusRequest(t *testing.T) {
	t.Run("status probe", func(t *testing.T) {
		req, err := DecodeStatusRequest(`{"type": "status", "requestId": "r-9"}`)
		require.NoError(t, err)
		assert.Equal(t, "status", req.Type)
		assert.Equal(t, "r-9", req.RequestID)
	})

	t.Run("request id generated when absent", func(t *testing.T) {
		req, err := DecodeStatusRequest(`{"type": "status"}`)
		require.NoError(t, err)
		assert.NotEmpty(t, req.RequestID)
	})

	t.Run("missing type", func(t *testing.T) {
		_, err := DecodeStatusRequest(`{"requestId": "r-9"}`)
		require.Error(t, err)
		assert.True(t, errors.IsDecode(err))
	})
}
