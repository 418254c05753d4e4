// Package worker processes batches of warrant documents. Processing is
// deliberately sequential, one document at a time in input order: records
// flow onward to a rate-limited geocoding collaborator, and per-document
// error isolation is simpler without concurrency.
package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/otaviolm/mandex/internal/model"
	"github.com/otaviolm/mandex/internal/pipeline"
	"golang.org/x/time/rate"
)

// Extractor defines the interface for extracting one document
type Extractor interface {
	Extract(ctx context.Context, text, sourceLabel string) (*model.WarrantRecord, error)
}

// BatchResult is one document's slot in the batch output. A failed document
// fills only its own slot; it never aborts the batch.
type BatchResult struct {
	Label  string
	Record *model.WarrantRecord
	Error  error
}

// BatchProcessor processes documents sequentially with pacing
type BatchProcessor struct {
	extractor Extractor
	limiter   *rate.Limiter
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(extractor Extractor, documentsPerSecond float64, burst int) *BatchProcessor {
	if burst <= 0 {
		burst = 1
	}
	if documentsPerSecond <= 0 {
		documentsPerSecond = 1
	}
	return &BatchProcessor{
		extractor: extractor,
		limiter:   rate.NewLimiter(rate.Limit(documentsPerSecond), burst),
	}
}

// ProcessDocuments processes documents one at a time, in input order, each
// awaited to completion before the next begins
func (b *BatchProcessor) ProcessDocuments(ctx context.Context, docs []pipeline.Document) []BatchResult {
	results := make([]BatchResult, 0, len(docs))

	for _, doc := range docs {
		if err := b.limiter.Wait(ctx); err != nil {
			results = append(results, BatchResult{Label: doc.Label, Error: err})
			continue
		}

		record, err := b.extractor.Extract(ctx, doc.Text, doc.Label)
		results = append(results, BatchResult{
			Label:  doc.Label,
			Record: record,
			Error:  err,
		})
	}

	return results
}

// ProcessPath loads documents from a path and processes them. A directory
// is walked for .txt/.html files in name order; any other file is treated
// as a list of document paths, one per line.
func (b *BatchProcessor) ProcessPath(ctx context.Context, path string) ([]BatchResult, error) {
	paths, err := CollectDocumentPaths(path)
	if err != nil {
		return nil, err
	}

	var docs []pipeline.Document
	var results []BatchResult
	for _, p := range paths {
		doc, err := pipeline.LoadDocument(p)
		if err != nil {
			results = append(results, BatchResult{Label: filepath.Base(p), Error: err})
			continue
		}
		docs = append(docs, *doc)
	}

	return append(results, b.ProcessDocuments(ctx, docs)...), nil
}

// CollectDocumentPaths resolves a directory or list file to document paths
func CollectDocumentPaths(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat input: %w", err)
	}

	if info.IsDir() {
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, fmt.Errorf("read directory: %w", err)
		}
		var paths []string
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			switch strings.ToLower(filepath.Ext(entry.Name())) {
			case ".txt", ".html", ".htm":
				paths = append(paths, filepath.Join(path, entry.Name()))
			}
		}
		sort.Strings(paths)
		return paths, nil
	}

	return readPathList(path)
}

// readPathList reads document paths from a file (one per line)
func readPathList(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open list file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan list file: %w", err)
	}

	return paths, nil
}
