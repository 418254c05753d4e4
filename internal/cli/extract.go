package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/otaviolm/mandex/internal/llm"
	"github.com/otaviolm/mandex/internal/model"
	"github.com/otaviolm/mandex/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	outJSON     string
	outMD       string
	timeout     time.Duration
	noCache     bool
	cacheDir    string
	noFooter    bool
	llmEnabled  bool
	llmProvider string
	llmModels   []string
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Extract a structured record from one warrant document",
	Long: `Extract reads a single warrant text (or HTML) file and produces:
- Identity fields (name, RG, CPF, birth date, age)
- Process metadata (CNJ process number, issuing court)
- Issue/expiration dates, with the legal computed fallback when absent
- Crime category and custody regime classification
- Addresses, tactical risk markers, search checklist and priority tags

The optional AI-assisted strategy interprets the whole document in one shot
and silently falls back to the deterministic pipeline when disabled or on
any failure.

Example:
  mandex extract mandado.txt
  mandex extract mandado.txt --json record.json --md record.md
  mandex extract mandado.txt --llm openai --llm-models gpt-4o-mini,gpt-4o`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	// Output flags
	extractCmd.Flags().StringVar(&outJSON, "json", "record.json", "output JSON path")
	extractCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	extractCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// Processing flags
	extractCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall extraction timeout")
	extractCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable record cache")
	extractCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "persist the record cache to this directory")

	// LLM flags
	extractCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable the AI-assisted strategy")
	extractCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	extractCmd.Flags().StringSliceVar(&llmModels, "llm-models", nil, "ordered model fallback ladder")
}

func runExtract(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg, keys, err := buildConfig()
	if err != nil {
		return err
	}

	doc, err := pipeline.LoadDocument(path)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Extracting: %s (%d chars)\n", doc.Label, len(doc.Text))
	}

	extractor := pipeline.NewExtractor(cfg, keys)
	record, err := extractor.Extract(ctx, doc.Text, doc.Label)
	if err != nil {
		return fmt.Errorf("extract failed: %w", err)
	}

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	if outJSON != "" {
		if err := renderer.RenderJSON(record, outJSON); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", outJSON)
		}
	}
	if outMD != "" {
		if err := renderer.RenderMarkdown(record, outMD); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote Markdown: %s\n", outMD)
		}
	}

	renderer.RenderSummary(record)
	return nil
}

// buildConfig assembles runtime configuration from flags and environment
func buildConfig() (*model.Config, *llm.KeySource, error) {
	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = !noCache
	cfg.Cache.Dir = cacheDir
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	keys := llm.NewKeySource()

	if llmEnabled {
		cfg.LLM.Provider = strings.ToLower(llmProvider)
		if len(llmModels) > 0 {
			cfg.LLM.Models = llmModels
		}

		switch cfg.LLM.Provider {
		case "openai":
			cfg.LLM.APIKey = keys.Key("OPENAI_API_KEY")
			if cfg.LLM.APIKey == "" {
				return nil, nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		case "ollama":
			// Ollama doesn't need an API key
			if baseURL := keys.Key("OLLAMA_BASE_URL"); baseURL != "" {
				cfg.LLM.BaseURL = baseURL
			}
		}
	}

	return cfg, keys, nil
}
