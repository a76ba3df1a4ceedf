package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"dteai/internal/config"
	"dteai/internal/logger"
	"dteai/pkg/errors"
	"dteai/pkg/metrics"
)

// Generator is the opaque generative capability: given a prompt, produce
// text plus usage metadata.
type Generator interface {
	Generate(ctx context.Context, prompt string) (*Generation, error)
}

// Generation carries the model output and the usage metadata the response
// envelopes report. Confidence is 0 when the backend does not score its own
// output; orchestrators apply their defaults.
type Generation struct {
	Content       string
	Model         string
	EvalCount     int
	PromptTokens  int
	TotalDuration time.Duration
	Confidence    float64
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	model      string
	limiter    *rate.Limiter
	logger     logger.Logger
}

type generateRequest struct {
	Model   string                 `json:"model"`
	Prompt  string                 `json:"prompt"`
	Stream  bool                   `json:"stream"`
	Options map[string]interface{} `json:"options,omitempty"`
}

type generateResponse struct {
	Model           string `json:"model"`
	Response        string `json:"response"`
	Done            bool   `json:"done"`
	EvalCount       int    `json:"eval_count"`
	PromptEvalCount int    `json:"prompt_eval_count"`
	TotalDuration   int64  `json:"total_duration"`
}

func NewClient(cfg config.OllamaConfig, log logger.Logger) *Client {
	if log == nil {
		log = logger.NopLogger()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}

	// Unlimited admission unless a rate is configured; the limiter bounds
	// pressure on the model server, not per-request latency.
	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RequestsPerSec > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSec), burst)
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimSuffix(cfg.Host, "/"),
		model:      cfg.Model,
		limiter:    limiter,
		logger:     log,
	}
}

func (c *Client) Model() string {
	return c.model
}

func (c *Client) Generate(ctx context.Context, prompt string) (*Generation, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, errors.Wrap(err, errors.ErrGeneration)
	}

	start := time.Now()
	gen, err := c.generate(ctx, prompt)
	if err != nil {
		metrics.ObserveGenerationDuration(time.Since(start), "error")
		return nil, err
	}

	metrics.ObserveGenerationDuration(time.Since(start), "success")
	metrics.GenerationTokens.Add(float64(gen.EvalCount))

	c.logger.DebugwCtx(ctx, "generation completed",
		"model", gen.Model,
		"eval_count", gen.EvalCount,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return gen, nil
}

func (c *Client) generate(ctx context.Context, prompt string) (*Generation, error) {
	payload := generateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
		Options: map[string]interface{}{
			"temperature": 0.2,
			"top_p":       0.9,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(fmt.Errorf("failed to marshal generate request: %w", err), errors.ErrGeneration)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrGeneration)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(fmt.Errorf("generation request failed: %w", err), errors.ErrGeneration)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(fmt.Errorf("failed to read generation response: %w", err), errors.ErrGeneration)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, errors.ErrGeneration.
			WithMessage(fmt.Sprintf("model server returned status %d", resp.StatusCode)).
			WithDetail("body", string(respBody))
	}

	var gen generateResponse
	if err := json.Unmarshal(respBody, &gen); err != nil {
		return nil, errors.Wrap(fmt.Errorf("failed to decode generation response: %w", err), errors.ErrGeneration)
	}

	return &Generation{
		Content:       strings.TrimSpace(gen.Response),
		Model:         gen.Model,
		EvalCount:     gen.EvalCount,
		PromptTokens:  gen.PromptEvalCount,
		TotalDuration: time.Duration(gen.TotalDuration),
	}, nil
}

// Ping reports whether the model server answers at all. Used by the status
// handler and the health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return errors.Wrap(err, errors.ErrConnection)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, errors.ErrConnection)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.ErrConnection.WithMessage(fmt.Sprintf("model server returned status %d", resp.StatusCode))
	}
	return nil
}
