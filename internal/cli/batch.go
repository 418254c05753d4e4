package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/otaviolm/mandex/internal/pipeline"
	"github.com/otaviolm/mandex/internal/worker"
	"github.com/spf13/cobra"
)

var (
	outputDir    string
	batchTimeout time.Duration
	docsPerSec   float64
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <dir|list-file>",
	Short: "Extract records from multiple warrant documents",
	Long: `Batch processes multiple documents SEQUENTIALLY, in input order:
- Read documents from a directory (.txt/.html) or a list file (one path per line)
- Each document is awaited to completion before the next begins
- A failure on one document fills only that document's slot
- Pacing respects the downstream geocoding rate limit

Example:
  mandex batch ./mandados
  mandex batch mandados.txt --output-dir ./records --rate 0.5`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./mandex-records", "output directory for records")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().Float64Var(&docsPerSec, "rate", 1.0, "documents per second")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable record cache")
	batchCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "persist the record cache to this directory")
	batchCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// LLM flags
	batchCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable the AI-assisted strategy")
	batchCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	batchCmd.Flags().StringSliceVar(&llmModels, "llm-models", nil, "ordered model fallback ladder")
}

func runBatch(cmd *cobra.Command, args []string) error {
	input := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, keys, err := buildConfig()
	if err != nil {
		return err
	}
	cfg.RateLimiting.DocumentsPerSecond = docsPerSec

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	extractor := pipeline.NewExtractor(cfg, keys)
	processor := worker.NewBatchProcessor(extractor, cfg.RateLimiting.DocumentsPerSecond, cfg.RateLimiting.BurstSize)

	fmt.Fprintf(os.Stderr, "⚙️  Processing documents from %s (sequential)...\n", input)

	results, err := processor.ProcessPath(ctx, input)
	if err != nil {
		return fmt.Errorf("process batch: %w", err)
	}

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	successCount := 0
	failureCount := 0

	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Label, result.Error)
			continue
		}
		successCount++

		slug := strings.TrimSuffix(result.Label, filepath.Ext(result.Label))
		jsonPath := filepath.Join(outputDir, slug+".json")
		mdPath := filepath.Join(outputDir, slug+".md")

		if err := renderer.RenderJSON(result.Record, jsonPath); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write JSON: %v\n", result.Label, err)
			continue
		}
		if err := renderer.RenderMarkdown(result.Record, mdPath); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write Markdown: %v\n", result.Label, err)
			continue
		}

		renderer.RenderSummary(result.Record)
	}

	fmt.Fprintf(os.Stderr, "\nBatch complete: %d ok, %d failed, output in %s\n", successCount, failureCount, outputDir)
	return nil
}
