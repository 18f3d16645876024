package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	OllamaName           = "ollama"
	OllamaDefaultBaseURL = "http://localhost:11434"
	ollamaDefaultModel   = "llama3.2"
)

// OllamaConfig holds configuration for a local Ollama chat client.
type OllamaConfig struct {
	BaseURL    string
	Model      string
	RPM        int
	MaxRetries int
	RetryDelay time.Duration
	Timeout    time.Duration
	HTTPClient *http.Client // Optional (tests)
}

// OllamaClient implements LLMClient against the Ollama /api/chat endpoint.
type OllamaClient struct {
	baseURL    string
	model      string
	rpm        int
	maxRetries int
	retryDelay time.Duration
	client     *http.Client
}

// NewOllamaClient creates a new Ollama client.
func NewOllamaClient(cfg OllamaConfig) *OllamaClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = OllamaDefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = ollamaDefaultModel
	}
	if cfg.RPM <= 0 {
		// Local inference, effectively unthrottled.
		cfg.RPM = 600
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = 500 * time.Millisecond
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 300 * time.Second
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	return &OllamaClient{
		baseURL:    cfg.BaseURL,
		model:      cfg.Model,
		rpm:        cfg.RPM,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		client:     client,
	}
}

// Name returns the client identifier.
func (c *OllamaClient) Name() string {
	return OllamaName
}

// RequestsPerMinute returns the configured rate limit.
func (c *OllamaClient) RequestsPerMinute() int {
	return c.rpm
}

// MaxRetries returns the maximum retry attempts.
func (c *OllamaClient) MaxRetries() int {
	return c.maxRetries
}

// RetryDelayBase returns the base delay between retries.
func (c *OllamaClient) RetryDelayBase() time.Duration {
	return c.retryDelay
}

type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []Message       `json:"messages"`
	Stream   bool            `json:"stream"`
	Format   json.RawMessage `json:"format,omitempty"`
	Options  *ollamaOptions  `json:"options,omitempty"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type ollamaChatResponse struct {
	Model           string  `json:"model"`
	Message         Message `json:"message"`
	Done            bool    `json:"done"`
	PromptEvalCount int     `json:"prompt_eval_count"`
	EvalCount       int     `json:"eval_count"`
	Error           string  `json:"error,omitempty"`
}

// Chat sends a chat completion request. Ollama enforces the output schema
// server-side via the format field; the response is still validated locally
// with bounded self-repair round trips.
func (c *OllamaClient) Chat(ctx context.Context, req *ChatRequest) (*ChatResult, error) {
	start := time.Now()

	requestID := req.RequestID
	if requestID == "" {
		requestID = uuid.New().String()
	}

	model := req.Model
	if model == "" {
		model = c.model
	}

	var format json.RawMessage
	if req.ResponseFormat != nil && len(req.ResponseFormat.JSONSchema) > 0 {
		schema, err := extractValidationSchema(req.ResponseFormat.JSONSchema)
		if err != nil {
			return nil, err
		}
		format = schema
	}

	var opts *ollamaOptions
	if req.Temperature > 0 || req.MaxTokens > 0 {
		opts = &ollamaOptions{Temperature: req.Temperature, NumPredict: req.MaxTokens}
	}

	messages := req.Messages
	result := &ChatResult{
		Provider:  OllamaName,
		ModelUsed: model,
		RequestID: requestID,
	}

	attempts := 0
	for {
		attempts++
		resp, err := c.doRequest(ctx, &ollamaChatRequest{
			Model:    model,
			Messages: messages,
			Stream:   false,
			Format:   format,
			Options:  opts,
		})
		if err != nil {
			return nil, err
		}

		result.Content = resp.Message.Content
		result.PromptTokens += resp.PromptEvalCount
		result.CompletionTokens += resp.EvalCount
		result.TotalTokens += resp.PromptEvalCount + resp.EvalCount

		if req.ResponseFormat == nil {
			break
		}

		parsed, vErr := resolveStructured(req.ResponseFormat, resp.Message.Content)
		if vErr == nil {
			result.ParsedJSON = parsed
			break
		}
		if attempts > maxStructuredRepairAttempts {
			return nil, fmt.Errorf("structured output failed after %d attempts: %w", attempts, vErr)
		}
		messages = append(messages,
			Message{Role: "assistant", Content: resp.Message.Content},
			Message{Role: "user", Content: structuredRepairPrompt(req.ResponseFormat.JSONSchema, resp.Message.Content, vErr)},
		)
	}

	result.Attempts = attempts
	result.ExecutionTime = time.Since(start)
	return result, nil
}

// doRequest makes an HTTP request to Ollama with retry on transient failures.
func (c *OllamaClient) doRequest(ctx context.Context, body *ollamaChatRequest) (*ollamaChatResponse, error) {
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/api/chat", bytes.NewReader(bodyBytes))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("request failed: %w", err)
			c.sleepWithJitter(ctx, attempt)
			continue
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("failed to read response: %w", err)
			c.sleepWithJitter(ctx, attempt)
			continue
		}

		if c.shouldRetry(resp.StatusCode) {
			lastErr = fmt.Errorf("ollama error (status %d): %s", resp.StatusCode, string(respBody))
			c.sleepWithJitter(ctx, attempt)
			continue
		}
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("ollama error (status %d): %s", resp.StatusCode, string(respBody))
		}

		var chatResp ollamaChatResponse
		if err := json.Unmarshal(respBody, &chatResp); err != nil {
			return nil, fmt.Errorf("failed to unmarshal response: %w", err)
		}
		if chatResp.Error != "" {
			return nil, fmt.Errorf("ollama API error: %s", chatResp.Error)
		}

		return &chatResp, nil
	}

	return nil, fmt.Errorf("max retries (%d) exceeded: %w", c.maxRetries, lastErr)
}

// shouldRetry returns true for status codes worth retrying.
func (c *OllamaClient) shouldRetry(statusCode int) bool {
	if statusCode == http.StatusTooManyRequests {
		return true
	}
	return statusCode >= 500
}

// sleepWithJitter sleeps with exponential backoff and jitter, respecting
// context cancellation.
func (c *OllamaClient) sleepWithJitter(ctx context.Context, attempt int) {
	baseDelay := c.retryDelay * time.Duration(1<<attempt)
	if baseDelay > 10*time.Second {
		baseDelay = 10 * time.Second
	}

	// -20% to +30% jitter
	jitter := time.Duration(float64(baseDelay) * (0.8 + 0.5*float64(time.Now().UnixNano()%1000)/1000))

	select {
	case <-ctx.Done():
	case <-time.After(jitter):
	}
}
