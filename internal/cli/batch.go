package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/oerlens/oerlens/internal/engine"
	"github.com/oerlens/oerlens/internal/model"
	"github.com/oerlens/oerlens/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Evaluate multiple resource URLs from a file in parallel",
	Long: `Batch processes multiple URLs concurrently:
- Read URLs from input file (one per line, # comments allowed)
- Evaluate URLs in parallel with configurable worker count
- Generate an individual JSON report per URL

Example:
  oerlens batch urls.txt
  oerlens batch urls.txt --concurrency 10 --output-dir ./reports
  oerlens batch urls.txt --offline`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./oerlens-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")

	batchCmd.Flags().BoolVar(&forceOffline, "offline", false, "skip the connectivity probe and evaluate offline")
	batchCmd.Flags().BoolVar(&forceOnline, "online", false, "skip the connectivity probe and evaluate online")
	batchCmd.MarkFlagsMutuallyExclusive("offline", "online")

	batchCmd.Flags().StringVar(&cacheBackend, "cache-backend", "", "cache backend (disk, sqlite)")
	batchCmd.Flags().StringVar(&userAgent, "ua", "", "HTTP User-Agent override")
}

// evaluateJob is one URL evaluation executed by the worker pool.
type evaluateJob struct {
	url    string
	engine *engine.Engine
}

// evaluateResult carries one URL's outcome out of the pool.
type evaluateResult struct {
	url    string
	report *model.Report
	err    error
}

func (r evaluateResult) GetError() error { return r.err }

func (j evaluateJob) Execute(ctx context.Context) worker.Result {
	report, err := j.engine.Evaluate(ctx, j.url)
	return evaluateResult{url: j.url, report: report, err: err}
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyFlags(cfg)

	urls, err := readURLs(file)
	if err != nil {
		return fmt.Errorf("read URLs: %w", err)
	}
	if len(urls) == 0 {
		return fmt.Errorf("no URLs found in %s", file)
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input file:   %s\n", file)
	fmt.Fprintf(os.Stderr, "  URLs:         %d\n", len(urls))
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	eng, s, err := buildEngine(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	pool := worker.NewPool(concurrency)
	pool.Start()

	// Abandon queued work if the batch timeout expires
	go func() {
		<-ctx.Done()
		pool.Shutdown()
	}()

	jobs := make([]worker.Job, 0, len(urls))
	for _, url := range urls {
		jobs = append(jobs, evaluateJob{url: url, engine: eng})
	}
	results := pool.Run(jobs)

	// Honor the batch timeout: report what finished, note what did not
	if ctx.Err() != nil {
		fmt.Fprintf(os.Stderr, "✗ Batch timed out after %v\n", batchTimeout)
	}

	successCount := 0
	failureCount := 0

	for _, result := range results {
		res, ok := result.(evaluateResult)
		if !ok {
			continue
		}
		if res.err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", res.url, res.err)
			continue
		}

		successCount++
		path := filepath.Join(outputDir, sanitizeFilename(res.url)+".json")
		if err := writeReport(res.report, path); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", res.url, err)
			continue
		}
		fmt.Fprintf(os.Stderr, "✓ %s (%s)\n", res.url, res.report.License.Type)
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d URLs\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}

// readURLs reads one URL per line, skipping blanks and # comments.
func readURLs(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	return urls, scanner.Err()
}

// sanitizeFilename turns a URL into a safe report file name.
func sanitizeFilename(s string) string {
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")

	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
		"&", "_",
		"=", "-",
		" ", "-",
	)
	s = replacer.Replace(s)

	if len(s) > 100 {
		s = s[:100]
	}
	return s
}
