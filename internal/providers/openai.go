package providers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	OpenAIName         = "openai"
	openAIDefaultModel = "gpt-4o-mini"
)

// OpenAIConfig holds configuration for the OpenAI chat client.
type OpenAIConfig struct {
	APIKey     string
	Model      string
	RPM        int           // Requests per minute
	MaxRetries int           // SDK transport retries
	RetryDelay time.Duration // Base delay for worker backoff
	Timeout    time.Duration // HTTP timeout
	BaseURL    string        // Optional (tests, proxies)
	HTTPClient *http.Client  // Optional (tests)
}

// OpenAIClient implements LLMClient using the official OpenAI SDK.
type OpenAIClient struct {
	model      string
	rpm        int
	maxRetries int
	retryDelay time.Duration
	client     openai.Client
}

// NewOpenAIClient creates a new OpenAI chat client.
func NewOpenAIClient(cfg OpenAIConfig) *OpenAIClient {
	if cfg.Model == "" {
		cfg.Model = openAIDefaultModel
	}
	if cfg.RPM <= 0 {
		cfg.RPM = 300
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = 2 * time.Second
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 120 * time.Second
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(cfg.MaxRetries),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &OpenAIClient{
		model:      cfg.Model,
		rpm:        cfg.RPM,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		client:     openai.NewClient(opts...),
	}
}

// Name returns the client identifier.
func (c *OpenAIClient) Name() string {
	return OpenAIName
}

// RequestsPerMinute returns the configured rate limit.
func (c *OpenAIClient) RequestsPerMinute() int {
	return c.rpm
}

// MaxRetries returns the maximum retry attempts.
func (c *OpenAIClient) MaxRetries() int {
	return c.maxRetries
}

// RetryDelayBase returns the base delay between retries.
func (c *OpenAIClient) RetryDelayBase() time.Duration {
	return c.retryDelay
}

// Chat sends a chat completion request. Structured output is requested via a
// JSON prompt and validated locally, with bounded self-repair round trips.
func (c *OpenAIClient) Chat(ctx context.Context, req *ChatRequest) (*ChatResult, error) {
	start := time.Now()

	requestID := req.RequestID
	if requestID == "" {
		requestID = uuid.New().String()
	}

	model := req.Model
	if model == "" {
		model = c.model
	}

	messages := req.Messages
	result := &ChatResult{
		Provider:  OpenAIName,
		ModelUsed: model,
		RequestID: requestID,
	}

	attempts := 0
	for {
		attempts++
		content, usage, err := c.complete(ctx, model, messages, req)
		if err != nil {
			return nil, err
		}

		result.Content = content
		result.PromptTokens += usage.prompt
		result.CompletionTokens += usage.completion
		result.TotalTokens += usage.total

		if req.ResponseFormat == nil {
			break
		}

		parsed, vErr := resolveStructured(req.ResponseFormat, content)
		if vErr == nil {
			result.ParsedJSON = parsed
			break
		}
		if attempts > maxStructuredRepairAttempts {
			return nil, fmt.Errorf("structured output failed after %d attempts: %w", attempts, vErr)
		}
		messages = append(messages,
			Message{Role: "assistant", Content: content},
			Message{Role: "user", Content: structuredRepairPrompt(req.ResponseFormat.JSONSchema, content, vErr)},
		)
	}

	result.Attempts = attempts
	result.ExecutionTime = time.Since(start)
	return result, nil
}

type tokenUsage struct {
	prompt     int
	completion int
	total      int
}

func (c *OpenAIClient) complete(ctx context.Context, model string, messages []Message, req *ChatRequest) (string, tokenUsage, error) {
	params := openai.ChatCompletionNewParams{
		Model:    model,
		Messages: toOpenAIMessages(messages),
	}
	if req.Temperature > 0 {
		params.Temperature = openai.Float(req.Temperature)
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", tokenUsage{}, fmt.Errorf("openai chat request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", tokenUsage{}, fmt.Errorf("no choices in openai response (model=%s)", model)
	}

	usage := tokenUsage{
		prompt:     int(resp.Usage.PromptTokens),
		completion: int(resp.Usage.CompletionTokens),
		total:      int(resp.Usage.TotalTokens),
	}
	return resp.Choices[0].Message.Content, usage, nil
}

func toOpenAIMessages(messages []Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case "system":
			out = append(out, openai.SystemMessage(m.Content))
		case "assistant":
			out = append(out, openai.AssistantMessage(m.Content))
		default:
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	return out
}
