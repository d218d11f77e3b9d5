package pipeline

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mark3labs/swagger2ts/internal/logging"
)

// BatchResult is the outcome of one entry of a batch.
type BatchResult struct {
	Options Options
	Summary *Summary
	Err     error
}

// Line renders the result as "✓ <outputRoot>" or "✗ <outputDir>: <error>".
func (r BatchResult) Line() string {
	if r.Err != nil {
		dir := strings.TrimSpace(r.Options.OutputDir)
		if dir == "" {
			dir = "unknown"
		}
		return fmt.Sprintf("✗ %s: %v", dir, r.Err)
	}
	return "✓ " + r.Summary.OutputRoot
}

// RunBatch runs every entry to completion in order. A failing entry is
// recorded and the batch continues.
func RunBatch(ctx context.Context, entries []Options, logger *zap.Logger) []BatchResult {
	log := logging.OrNop(logger)
	results := make([]BatchResult, 0, len(entries))
	for i, opts := range entries {
		sum, err := Run(ctx, opts, log.With(zap.Int("entry", i)))
		if err != nil {
			log.Warn("generation failed", zap.Int("entry", i), zap.String("outputDir", opts.OutputDir), zap.Error(err))
		}
		results = append(results, BatchResult{Options: opts, Summary: sum, Err: err})
	}
	return results
}

// FormatBatch joins every result line into one notification.
func FormatBatch(results []BatchResult) string {
	lines := make([]string, 0, len(results))
	for _, r := range results {
		lines = append(lines, r.Line())
	}
	return "Generation finished: " + strings.Join(lines, " | ")
}

// BatchError reports how many entries of a batch failed.
type BatchError struct {
	Failed int
	Total  int
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("%d of %d generation runs failed", e.Failed, e.Total)
}

// Err returns a *BatchError when any result failed.
func Err(results []BatchResult) error {
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	if failed == 0 {
		return nil
	}
	return &BatchError{Failed: failed, Total: len(results)}
}
