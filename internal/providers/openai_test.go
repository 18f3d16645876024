package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func openAIChatResponse(content string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{
			{
				"index":         0,
				"message":       map[string]string{"role": "assistant", "content": content},
				"finish_reason": "stop",
			},
		},
		"usage": map[string]int{
			"prompt_tokens":     10,
			"completion_tokens": 8,
			"total_tokens":      18,
		},
	}
}

func TestOpenAIClient_Chat(t *testing.T) {
	var payload map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("unexpected authorization: %s", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode body: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(openAIChatResponse("Hello! How can I help?"))
	}))
	defer server.Close()

	client := NewOpenAIClient(OpenAIConfig{
		APIKey:  "test-key",
		BaseURL: server.URL,
	})

	result, err := client.Chat(context.Background(), &ChatRequest{
		Messages: []Message{
			{Role: "system", Content: "You are a slide planner."},
			{Role: "user", Content: "Hello"},
		},
		MaxTokens: 256,
	})
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if result.Content != "Hello! How can I help?" {
		t.Fatalf("unexpected content: %q", result.Content)
	}
	if result.TotalTokens != 18 {
		t.Fatalf("unexpected total tokens: %d", result.TotalTokens)
	}
	if result.Provider != OpenAIName {
		t.Fatalf("unexpected provider: %s", result.Provider)
	}
	if result.RequestID == "" {
		t.Fatal("expected a generated request ID")
	}
	if got, _ := payload["model"].(string); got != "gpt-4o-mini" {
		t.Fatalf("expected default model, got %q", got)
	}
	msgs, _ := payload["messages"].([]any)
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
}

func TestOpenAIClient_StructuredRepair(t *testing.T) {
	var calls atomic.Int64

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		content := "Sure, here it is!"
		if calls.Add(1) > 1 {
			content = `{"title": "Fixed"}`
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(openAIChatResponse(content))
	}))
	defer server.Close()

	client := NewOpenAIClient(OpenAIConfig{
		APIKey:     "test-key",
		BaseURL:    server.URL,
		RetryDelay: time.Millisecond,
	})

	schema := json.RawMessage(`{"type":"object","properties":{"title":{"type":"string"}},"required":["title"]}`)
	result, err := client.Chat(context.Background(), &ChatRequest{
		Messages:       []Message{{Role: "user", Content: "Plan slides"}},
		ResponseFormat: &ResponseFormat{Type: "json_schema", JSONSchema: schema},
	})
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if string(result.ParsedJSON) != `{"title":"Fixed"}` {
		t.Fatalf("unexpected parsed JSON: %s", result.ParsedJSON)
	}
	if result.Attempts != 2 {
		t.Fatalf("expected 2 attempts, got %d", result.Attempts)
	}
	// Token usage accumulates across repair round trips.
	if result.TotalTokens != 36 {
		t.Fatalf("expected accumulated tokens, got %d", result.TotalTokens)
	}
}

func TestOpenAIClient_StructuredGivesUp(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(openAIChatResponse("still not json"))
	}))
	defer server.Close()

	client := NewOpenAIClient(OpenAIConfig{
		APIKey:  "test-key",
		BaseURL: server.URL,
	})

	schema := json.RawMessage(`{"type":"object","required":["title"]}`)
	_, err := client.Chat(context.Background(), &ChatRequest{
		Messages:       []Message{{Role: "user", Content: "Plan slides"}},
		ResponseFormat: &ResponseFormat{Type: "json_schema", JSONSchema: schema},
	})
	if err == nil {
		t.Fatal("expected error when structured output never parses")
	}
}
