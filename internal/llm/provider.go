package llm

import (
	"context"
	"fmt"

	"github.com/oerlens/oerlens/internal/model"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Summarize generates a plain-language summary of an evaluation report
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// SummarizeRequest contains the input for LLM summarization
type SummarizeRequest struct {
	// URL is the resource the report was produced for
	URL string

	// Report is the evaluation report to summarize
	Report model.Report

	// Prompt is an optional custom prompt (if empty, use default)
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// SummarizeResponse contains the LLM's summary output
type SummarizeResponse struct {
	// Summary is the generated summary text
	Summary string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "", // Disabled by default
		Model:     "",
		Timeout:   30,
		MaxTokens: 500,
	}
}

const systemPrompt = "You are a helpful assistant that explains resource licensing and reuse terms to educators in plain language."

// BuildPrompt constructs the default prompt for summarizing an evaluation report
func BuildPrompt(rawURL string, report model.Report) string {
	prompt := fmt.Sprintf(`Summarize the following resource evaluation for an educator deciding whether the material can be reused in a course.

RULES:
1. Only describe what the evaluation found. Do not speculate about terms that were not reported.
2. If the license is unknown or was determined offline, say so explicitly.
3. Never claim a resource is safe to reuse unless the license permits it.

Resource: %s

Evaluation:
- License: %s
- Quality: %s
- Adaptability: %s
- Reusability: %s
- Served from cache: %t
`, rawURL, report.License.Type, report.Quality, report.Adaptability, report.Reusability, report.FromCache)

	if report.License.IsLicensedContent != nil {
		prompt += fmt.Sprintf("- Licensed content: %t\n", *report.License.IsLicensedContent)
	}
	if ai := report.License.AccessInfo; ai != nil {
		prompt += fmt.Sprintf("- Viewability: %s\n- Downloadable: %t\n- Public domain: %t\n",
			ai.Viewability, ai.DownloadAvailable, ai.PublicDomain)
	}
	if platform, ok := report.License.Details["platform"].(string); ok && platform != "" {
		prompt += fmt.Sprintf("- Platform: %s\n", platform)
	}

	prompt += "\nProvide a 2-3 sentence summary focusing on what the license allows, not on the resource's content."

	return prompt
}
