package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"
)

const MockClientName = "mock"

// MockClient is an LLMClient for testing.
type MockClient struct {
	// Configurable behavior
	Latency      time.Duration
	ShouldFail   bool
	FailTimes    int // Fail the first N requests (0 = never)
	ResponseText string
	ResponseJSON json.RawMessage

	// Rate limiting
	RPM        int
	Retries    int
	RetryDelay time.Duration

	// State
	requestCount atomic.Int64
}

// NewMockClient creates a new mock client with sensible defaults.
func NewMockClient() *MockClient {
	return &MockClient{
		Latency:      time.Millisecond,
		ResponseText: "mock response",
		RPM:          600,
		Retries:      3,
		RetryDelay:   time.Millisecond,
	}
}

// Name returns the client identifier.
func (c *MockClient) Name() string {
	return MockClientName
}

// RequestsPerMinute returns the RPM limit for rate limiting.
func (c *MockClient) RequestsPerMinute() int {
	return c.RPM
}

// MaxRetries returns the maximum retry attempts.
func (c *MockClient) MaxRetries() int {
	return c.Retries
}

// RetryDelayBase returns the base delay between retries.
func (c *MockClient) RetryDelayBase() time.Duration {
	return c.RetryDelay
}

// RequestCount returns how many requests were received.
func (c *MockClient) RequestCount() int64 {
	return c.requestCount.Load()
}

// Chat sends a mock chat request.
func (c *MockClient) Chat(ctx context.Context, req *ChatRequest) (*ChatResult, error) {
	start := time.Now()
	count := c.requestCount.Add(1)

	if c.Latency > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.Latency):
		}
	}

	if c.ShouldFail || (c.FailTimes > 0 && count <= int64(c.FailTimes)) {
		return nil, fmt.Errorf("mock failure on request %d", count)
	}

	result := &ChatResult{
		Content:       c.ResponseText,
		Provider:      MockClientName,
		ModelUsed:     req.Model,
		RequestID:     fmt.Sprintf("mock-%d", count),
		Attempts:      1,
		PromptTokens:  10,
		TotalTokens:   10,
		ExecutionTime: time.Since(start),
	}

	if req.ResponseFormat != nil {
		body := c.ResponseJSON
		if len(body) == 0 {
			body = json.RawMessage(`{}`)
		}
		result.Content = string(body)
		result.ParsedJSON = body
	}

	return result, nil
}
