package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/oerlens/oerlens/internal/llm"
	"github.com/oerlens/oerlens/internal/model"
)

var (
	outJSON      string
	timeout      time.Duration
	userAgent    string
	insecureTLS  bool
	cacheBackend string
	forceOffline bool
	forceOnline  bool
	llmEnabled   bool
	llmProvider  string
	llmModel     string
)

// evaluateCmd represents the evaluate command
var evaluateCmd = &cobra.Command{
	Use:   "evaluate <url>",
	Short: "Evaluate a single resource URL and generate a license report",
	Long: `Evaluate analyzes a video or book URL to:
- Identify the hosting platform (YouTube, Google Books)
- Fetch license metadata from the platform's API
- Rate quality, adaptability and reusability for course reuse
- Cache the report so it stays available offline

Without connectivity, evaluation falls back to the cached report for the
URL, or to platform heuristics when no report is cached.

Example:
  oerlens evaluate https://www.youtube.com/watch?v=dQw4w9WgXcQ
  oerlens evaluate https://books.google.com/books?id=zyTCAlFPjgYC --json report.json
  oerlens evaluate https://youtu.be/dQw4w9WgXcQ --offline
  oerlens evaluate https://youtu.be/dQw4w9WgXcQ --llm --llm-model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runEvaluate,
}

func init() {
	rootCmd.AddCommand(evaluateCmd)

	// Output flags
	evaluateCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (default: stdout)")

	// HTTP flags
	evaluateCmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "overall evaluation timeout")
	evaluateCmd.Flags().StringVar(&userAgent, "ua", "", "HTTP User-Agent override")
	evaluateCmd.Flags().BoolVar(&insecureTLS, "insecure", false, "skip TLS certificate verification (use for self-signed certs)")

	// Cache flags
	evaluateCmd.Flags().StringVar(&cacheBackend, "cache-backend", "", "cache backend (disk, sqlite)")

	// Connectivity flags
	evaluateCmd.Flags().BoolVar(&forceOffline, "offline", false, "skip the connectivity probe and evaluate offline")
	evaluateCmd.Flags().BoolVar(&forceOnline, "online", false, "skip the connectivity probe and evaluate online")
	evaluateCmd.MarkFlagsMutuallyExclusive("offline", "online")

	// LLM flags
	evaluateCmd.Flags().BoolVar(&llmEnabled, "llm", false, "generate a plain-language summary of the report")
	evaluateCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	evaluateCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	url := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyFlags(cfg)

	if llmEnabled {
		if err := configureLLM(cfg); err != nil {
			return err
		}
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Evaluating: %s\n", url)
		fmt.Fprintf(os.Stderr, "Timeout: %v\n", timeout)
		fmt.Fprintf(os.Stderr, "Cache backend: %s\n", cfg.Cache.Backend)
		fmt.Fprintln(os.Stderr)
	}

	eng, s, err := buildEngine(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	report, err := eng.Evaluate(ctx, url)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ License: %s\n", report.License.Type)
		fmt.Fprintf(os.Stderr, "✓ %s\n", report.Quality)
		if report.FromCache {
			fmt.Fprintf(os.Stderr, "✓ Served from cache\n")
		}
		fmt.Fprintln(os.Stderr)
	}

	if err := writeReport(report, outJSON); err != nil {
		return err
	}

	if llmEnabled {
		summarizer, err := llm.NewSummarizer(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			return err
		}
		if summarizer != nil {
			summary, err := summarizer.Summarize(ctx, url, *report)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "\nSummary:\n%s\n", summary)
		}
	}

	return nil
}

// applyFlags overlays evaluate command flags onto the configuration.
func applyFlags(cfg *model.Config) {
	if userAgent != "" {
		cfg.HTTP.UserAgent = userAgent
	}
	cfg.HTTP.InsecureTLS = insecureTLS
	if cacheBackend != "" {
		cfg.Cache.Backend = cacheBackend
	}
	if forceOffline {
		cfg.Connectivity.Mode = "offline"
	}
	if forceOnline {
		cfg.Connectivity.Mode = "online"
	}
}

// configureLLM fills the LLM configuration from flags and environment.
func configureLLM(cfg *model.Config) error {
	cfg.LLM.Provider = llmProvider
	cfg.LLM.Model = llmModel

	switch llmProvider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	}
	return nil
}

// writeReport renders the report as indented JSON to a file or stdout.
func writeReport(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	data = append(data, '\n')

	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Wrote %s\n", path)
	}
	return nil
}
