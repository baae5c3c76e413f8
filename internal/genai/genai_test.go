// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package genai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pdiddy/vault-engine/internal/httputil"
	"github.com/pdiddy/vault-engine/pkg/types"
)

func TestMain(m *testing.M) {
	// Override backoff to avoid real sleeps in retry tests.
	httputil.RetryBaseDelay = time.Millisecond
	os.Exit(m.Run())
}

// completionResponse builds a minimal chat completions response body.
func completionResponse(text string) map[string]any {
	return map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"role": "assistant", "content": text}},
		},
	}
}

func TestNew_SelectsVariantByAPIKey(t *testing.T) {
	if _, ok := New(types.AIConfig{}).(NullBackend); !ok {
		t.Fatal("expected NullBackend without an API key")
	}
	if _, ok := New(types.AIConfig{APIKey: "sk-test"}).(*OpenAIBackend); !ok {
		t.Fatal("expected OpenAIBackend with an API key")
	}
}

func TestNullBackend_AlwaysUnavailable(t *testing.T) {
	_, err := NullBackend{}.GenerateText(context.Background(), TextRequest{Prompt: "anything"})
	if err != ErrUnavailable {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestOpenAIBackend_GenerateText(t *testing.T) {
	var gotReq openaiRequest
	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		json.NewEncoder(w).Encode(completionResponse("Generated prose."))
	}))
	defer ts.Close()

	oldURL := openaiAPIURL
	openaiAPIURL = ts.URL
	defer func() { openaiAPIURL = oldURL }()

	b := &OpenAIBackend{APIKey: "sk-test", Model: "gpt-4"}
	text, err := b.GenerateText(context.Background(), TextRequest{
		System:      "You are a knowledge management expert.",
		Prompt:      "Write about Go.",
		Temperature: 0.7,
		MaxTokens:   1000,
	})
	if err != nil {
		t.Fatalf("GenerateText: %v", err)
	}

	if text != "Generated prose." {
		t.Errorf("text = %q", text)
	}
	if gotAuth != "Bearer sk-test" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotReq.Model != "gpt-4" {
		t.Errorf("model = %q", gotReq.Model)
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[0].Role != "system" || gotReq.Messages[1].Role != "user" {
		t.Errorf("unexpected messages: %+v", gotReq.Messages)
	}
	if gotReq.Temperature != 0.7 || gotReq.MaxTokens != 1000 {
		t.Errorf("sampling params = %v / %d", gotReq.Temperature, gotReq.MaxTokens)
	}
}

func TestOpenAIBackend_OmitsEmptySystemMessage(t *testing.T) {
	var gotReq openaiRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotReq)
		json.NewEncoder(w).Encode(completionResponse("ok"))
	}))
	defer ts.Close()

	oldURL := openaiAPIURL
	openaiAPIURL = ts.URL
	defer func() { openaiAPIURL = oldURL }()

	b := &OpenAIBackend{APIKey: "sk-test"}
	if _, err := b.GenerateText(context.Background(), TextRequest{Prompt: "hi"}); err != nil {
		t.Fatalf("GenerateText: %v", err)
	}

	if len(gotReq.Messages) != 1 || gotReq.Messages[0].Role != "user" {
		t.Errorf("unexpected messages: %+v", gotReq.Messages)
	}
	if gotReq.Model != DefaultModel {
		t.Errorf("model = %q, want default %q", gotReq.Model, DefaultModel)
	}
}

func TestOpenAIBackend_RetriesRateLimit(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		json.NewEncoder(w).Encode(completionResponse("after retry"))
	}))
	defer ts.Close()

	oldURL := openaiAPIURL
	openaiAPIURL = ts.URL
	defer func() { openaiAPIURL = oldURL }()

	b := &OpenAIBackend{APIKey: "sk-test", MaxRetries: 3}
	text, err := b.GenerateText(context.Background(), TextRequest{Prompt: "hi"})
	if err != nil {
		t.Fatalf("GenerateText: %v", err)
	}
	if text != "after retry" {
		t.Errorf("text = %q", text)
	}
	if atomic.LoadInt32(&calls) != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestOpenAIBackend_ErrorStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error": {"message": "invalid key"}}`, http.StatusUnauthorized)
	}))
	defer ts.Close()

	oldURL := openaiAPIURL
	openaiAPIURL = ts.URL
	defer func() { openaiAPIURL = oldURL }()

	b := &OpenAIBackend{APIKey: "sk-bad"}
	_, err := b.GenerateText(context.Background(), TextRequest{Prompt: "hi"})
	if err == nil {
		t.Fatal("expected error for 401 response")
	}
}

func TestOpenAIBackend_EmptyChoices(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer ts.Close()

	oldURL := openaiAPIURL
	openaiAPIURL = ts.URL
	defer func() { openaiAPIURL = oldURL }()

	b := &OpenAIBackend{APIKey: "sk-test"}
	_, err := b.GenerateText(context.Background(), TextRequest{Prompt: "hi"})
	if err == nil {
		t.Fatal("expected error for empty choices")
	}
}
