package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dteai/internal/ai"
	"dteai/internal/analysis"
	"dteai/internal/chat"
	"dteai/internal/config"
	"dteai/internal/logger"
	"dteai/pkg/errors"
)

type fakePublisher struct {
	channels []string
	payloads []string
}

func (p *fakePublisher) Publish(_ context.Context, channel, message string) bool {
	p.channels = append(p.channels, channel)
	p.payloads = append(p.payloads, message)
	return true
}

func (p *fakePublisher) decoded(t *testing.T, index int) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(p.payloads[index]), &out))
	return out
}

type fakeGenerator struct {
	response string
	err      error
}

func (g *fakeGenerator) Generate(ctx context.Context, prompt string) (*ai.Generation, error) {
	if g.err != nil {
		return nil, g.err
	}
	return &ai.Generation{Content: g.response, Model: "llama3.2:3b", EvalCount: 42}, nil
}

func newTestApp(generator ai.Generator) (*App, *fakePublisher) {
	cfg := &config.Config{
		Bus: config.BusConfig{
			ChatRequests:     "cloudmusic_dte:chat_requests",
			AnalysisRequests: "cloudmusic_dte:analysis_requests",
			GeneralRequests:  "cloudmusic_dte:ai_requests",
			Responses:        "cloudmusic_dte:ai_responses",
		},
	}
	log := logger.NopLogger()

	bus := &fakePublisher{}
	app := NewApp(cfg, log)
	app.bus = bus
	app.chatService = chat.NewService(generator, nil, nil, log)
	app.analysisService = analysis.NewService(generator, nil, config.AnalysisConfig{}, log)
	return app, bus
}

func TestHandleChatRequestPublishesExactlyOneResponse(t *testing.T) {
	app, bus := newTestApp(&fakeGenerator{response: "Hola, puedo ayudarte con tus facturas."})

	payload := `{"message":"hola","sessionId":"sess-1","eventId":"evt-1","userId":"u-1","companyId":"c-1"}`
	require.NoError(t, app.handleChatRequest(context.Background(), payload))

	require.Len(t, bus.payloads, 1)
	assert.Equal(t, "cloudmusic_dte:ai_responses", bus.channels[0])

	resp := bus.decoded(t, 0)
	assert.Equal(t, "chat_response", resp["type"])
	assert.Equal(t, "sess-1", resp["sessionId"])
	assert.Equal(t, "evt-1", resp["eventId"])
	assert.Equal(t, "u-1", resp["userId"])
	assert.Equal(t, "c-1", resp["companyId"])
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "Hola, puedo ayudarte con tus facturas.", resp["message"])
	assert.Equal(t, 0.85, resp["confidence"])
}

func TestHandleChatRequestGenerationFailureStillResponds(t *testing.T) {
	app, bus := newTestApp(&fakeGenerator{err: errors.ErrGeneration.WithMessage("model down")})

	payload := `{"message":"hola","sessionId":"sess-2","eventId":"evt-2"}`
	require.NoError(t, app.handleChatRequest(context.Background(), payload))

	require.Len(t, bus.payloads, 1)
	resp := bus.decoded(t, 0)
	assert.Equal(t, "sess-2", resp["sessionId"])
	assert.Equal(t, "evt-2", resp["eventId"])
	assert.NotEmpty(t, resp["error"])
	assert.Equal(t, false, resp["success"])
	_, hasMessage := resp["message"]
	assert.False(t, hasMessage)
}

func TestHandleChatRequestEmptyMessageDiscarded(t *testing.T) {
	app, bus := newTestApp(&fakeGenerator{response: "nunca"})

	for _, payload := range []string{
		`{"message":"","sessionId":"sess-3"}`,
		`{"message":"   ","sessionId":"sess-3"}`,
		`{"sessionId":"sess-3"}`,
	} {
		require.NoError(t, app.handleChatRequest(context.Background(), payload))
	}

	assert.Empty(t, bus.payloads)
}

func TestHandleChatRequestMalformedPayload(t *testing.T) {
	app, bus := newTestApp(&fakeGenerator{response: "nunca"})

	err := app.handleChatRequest(context.Background(), `not json`)
	assert.Error(t, err)
	assert.Empty(t, bus.payloads)
}

func TestHandleAnalysisRequestPublishesRecord(t *testing.T) {
	app, bus := newTestApp(&fakeGenerator{response: `{"risk_score": 0.9, "confidence": 0.95}`})

	payload := `{"dteData":{"id":"doc-1","tipo":"factura"},"analysisType":"fraud_detection","requestId":"req-1"}`
	require.NoError(t, app.handleAnalysisRequest(context.Background(), payload))

	require.Len(t, bus.payloads, 1)
	resp := bus.decoded(t, 0)
	assert.Equal(t, "analysis_response", resp["type"])
	assert.Equal(t, "req-1", resp["requestId"])
	assert.Equal(t, "fraud_detection", resp["analysisType"])

	record, ok := resp["analysisResult"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "doc-1", record["document_id"])
}

func TestHandleAnalysisRequestEmptyDataDiscarded(t *testing.T) {
	app, bus := newTestApp(&fakeGenerator{response: "nunca"})

	payload := `{"dteData":{},"analysisType":"fraud_detection","requestId":"req-2"}`
	require.NoError(t, app.handleAnalysisRequest(context.Background(), payload))

	assert.Empty(t, bus.payloads)
}

func TestHandleGeneralRequestStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	app, bus := newTestApp(&fakeGenerator{})
	app.aiClient = ai.NewClient(config.OllamaConfig{Host: server.URL, Model: "llama3.2:3b"}, logger.NopLogger())

	payload := `{"type":"status","requestId":"req-3"}`
	require.NoError(t, app.handleGeneralRequest(context.Background(), payload))

	require.Len(t, bus.payloads, 1)
	resp := bus.decoded(t, 0)
	assert.Equal(t, "status_response", resp["type"])
	assert.Equal(t, "req-3", resp["requestId"])
	assert.Equal(t, "online", resp["status"])
	assert.Equal(t, "llama3.2:3b", resp["model"])
}

func TestHandleGeneralRequestUnreachableModelServer(t *testing.T) {
	app, bus := newTestApp(&fakeGenerator{})
	app.aiClient = ai.NewClient(config.OllamaConfig{Host: "http://127.0.0.1:1", Model: "llama3.2:3b"}, logger.NopLogger())

	payload := `{"type":"status","requestId":"req-4"}`
	require.NoError(t, app.handleGeneralRequest(context.Background(), payload))

	require.Len(t, bus.payloads, 1)
	resp := bus.decoded(t, 0)
	assert.Equal(t, "offline", resp["status"])
}

func TestHandleGeneralRequestOtherTypesIgnored(t *testing.T) {
	app, bus := newTestApp(&fakeGenerator{})

	payload := `{"type":"refresh","requestId":"req-5"}`
	require.NoError(t, app.handleGeneralRequest(context.Background(), payload))

	assert.Empty(t, bus.payloads)
}
