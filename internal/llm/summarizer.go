package llm

import (
	"context"
	"fmt"

	"github.com/oerlens/oerlens/internal/model"
)

// Summarizer produces plain-language summaries of evaluation reports.
// The summary is presentation-layer output and is never written back into
// the report or the cache.
type Summarizer struct {
	provider Provider
}

// NewSummarizer creates a summarizer from configuration. Returns nil when
// no provider is configured, which callers treat as "summaries disabled".
func NewSummarizer(config Config) (*Summarizer, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, nil
	}
	return &Summarizer{provider: provider}, nil
}

// Summarize generates a summary for the report produced for rawURL.
func (s *Summarizer) Summarize(ctx context.Context, rawURL string, report model.Report) (string, error) {
	resp, err := s.provider.Summarize(ctx, SummarizeRequest{
		URL:    rawURL,
		Report: report,
	})
	if err != nil {
		return "", fmt.Errorf("summarize report: %w", err)
	}
	return resp.Summary, nil
}
