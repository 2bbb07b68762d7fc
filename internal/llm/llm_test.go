package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/oerlens/oerlens/internal/model"
	"github.com/sashabaranov/go-openai"
)

func sampleReport() model.Report {
	licensed := false
	return model.Report{
		License: model.LicenseInfo{
			Type:              "creativeCommon",
			IsLicensedContent: &licensed,
			Details:           map[string]interface{}{"platform": "YouTube"},
		},
		Quality:      "Quality score: High (YouTube verified content)",
		Adaptability: "Adaptability score: Medium",
		Reusability:  "Reusability score: High",
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt("https://www.youtube.com/watch?v=abc12345678", sampleReport())

	for _, want := range []string{
		"https://www.youtube.com/watch?v=abc12345678",
		"License: creativeCommon",
		"Licensed content: false",
		"Platform: YouTube",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Prompt missing %q", want)
		}
	}
}

func TestNewProvider(t *testing.T) {
	// Disabled when unset
	p, err := NewProvider(Config{})
	if err != nil || p != nil {
		t.Errorf("Expected nil provider with no error, got %v, %v", p, err)
	}

	// OpenAI requires a key
	if _, err := NewProvider(Config{Provider: "openai"}); err == nil {
		t.Error("Expected error for openai without API key")
	}

	p, err = NewProvider(Config{Provider: "openai", APIKey: "test-key"})
	if err != nil {
		t.Fatalf("Failed to create openai provider: %v", err)
	}
	if p.Name() != "openai" {
		t.Errorf("Unexpected provider name: %s", p.Name())
	}

	p, err = NewProvider(Config{Provider: "ollama"})
	if err != nil {
		t.Fatalf("Failed to create ollama provider: %v", err)
	}
	if p.Name() != "ollama" {
		t.Errorf("Unexpected provider name: %s", p.Name())
	}

	if _, err := NewProvider(Config{Provider: "bedrock"}); err == nil {
		t.Error("Expected error for unknown provider")
	}
}

func TestOpenAIProvider_Summarize_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("Expected path /chat/completions, got %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("Expected Authorization header Bearer test-key, got %s", r.Header.Get("Authorization"))
		}

		resp := openai.ChatCompletionResponse{
			ID:     "chatcmpl-123",
			Object: "chat.completion",
			Model:  "gpt-4o-mini",
			Choices: []openai.ChatCompletionChoice{
				{
					Message: openai.ChatCompletionMessage{
						Role:    "assistant",
						Content: "The video carries a Creative Commons license and may be reused with attribution.",
					},
					FinishReason: "stop",
				},
			},
			Usage: openai.Usage{TotalTokens: 80},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	provider, err := NewOpenAIProvider(Config{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Model:   "gpt-4o-mini",
		Timeout: 5,
	})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	resp, err := provider.Summarize(context.Background(), SummarizeRequest{
		URL:    "https://www.youtube.com/watch?v=abc12345678",
		Report: sampleReport(),
	})
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}

	if !strings.Contains(resp.Summary, "Creative Commons") {
		t.Errorf("Unexpected summary: %s", resp.Summary)
	}
	if resp.TokensUsed != 80 {
		t.Errorf("Expected 80 tokens used, got %d", resp.TokensUsed)
	}
}

func TestOpenAIProvider_Summarize_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": {"message": "Internal Server Error", "type": "server_error"}}`))
	}))
	defer server.Close()

	provider, err := NewOpenAIProvider(Config{APIKey: "test-key", BaseURL: server.URL, Timeout: 5})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	if _, err := provider.Summarize(context.Background(), SummarizeRequest{Report: sampleReport()}); err == nil {
		t.Fatal("Expected error, got nil")
	}
}

func TestOllamaProvider_Summarize(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("Expected path /api/generate, got %s", r.URL.Path)
		}
		var req ollamaRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("Failed to decode request: %v", err)
		}
		if req.Model != "llama3.1:8b" {
			t.Errorf("Unexpected model: %s", req.Model)
		}
		_ = json.NewEncoder(w).Encode(ollamaResponse{
			Model:           "llama3.1:8b",
			Response:        "The license is unknown, so reuse terms could not be determined.",
			Done:            true,
			PromptEvalCount: 50,
			EvalCount:       20,
		})
	}))
	defer server.Close()

	provider, err := NewOllamaProvider(Config{BaseURL: server.URL, Model: "llama3.1:8b", Timeout: 5})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	resp, err := provider.Summarize(context.Background(), SummarizeRequest{Report: sampleReport()})
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if resp.TokensUsed != 70 {
		t.Errorf("Expected 70 tokens used, got %d", resp.TokensUsed)
	}
}

func TestOllamaProvider_RequiresModel(t *testing.T) {
	provider, err := NewOllamaProvider(Config{})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}
	if _, err := provider.Summarize(context.Background(), SummarizeRequest{Report: sampleReport()}); err == nil {
		t.Fatal("Expected error when no model is configured")
	}
}

func TestNewSummarizer_Disabled(t *testing.T) {
	s, err := NewSummarizer(Config{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if s != nil {
		t.Error("Expected nil summarizer when no provider is configured")
	}
}
