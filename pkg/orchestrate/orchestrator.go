// Package orchestrate runs one notebook operation across many files in
// parallel, bounded by the configured worker count.
package orchestrate

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"

	"nboutline/pkg/utils"
)

// FileResult contains the result of processing a single notebook
type FileResult struct {
	Path     string
	Success  bool
	Err      error
	Warnings int  // Non-fatal findings reported for this file
	Changed  bool // False when the file was already up to date
	Duration time.Duration
}

// ProcessFunc runs the selected operation against one notebook file. It is
// called from worker goroutines, so it must not share mutable state.
type ProcessFunc func(ctx context.Context, path string) (warnings int, changed bool, err error)

// Orchestrator manages parallel processing of multiple notebooks
type Orchestrator struct {
	paths   []string
	process ProcessFunc
	log     *logrus.Entry

	// Workers are admitted by a shared semaphore
	sem *semaphore.Weighted

	// Results
	results   []FileResult
	resultsMu sync.Mutex

	// Coordination
	ctx    context.Context
	cancel context.CancelFunc
}

// NewOrchestrator creates an orchestrator over the given notebook paths
func NewOrchestrator(paths []string, workers int, process ProcessFunc, log *logrus.Entry) *Orchestrator {
	ctx, cancel := context.WithCancel(context.Background())

	if workers < 1 {
		workers = 1
	}

	return &Orchestrator{
		paths:   paths,
		process: process,
		log:     log,
		sem:     semaphore.NewWeighted(int64(workers)),
		results: make([]FileResult, 0, len(paths)),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Run processes all notebooks in parallel and waits for completion. Results
// arrive in completion order; one failed file never stops the others.
func (o *Orchestrator) Run() []FileResult {
	startTime := time.Now()
	o.log.Infof("Processing %d notebooks in parallel", len(o.paths))

	var wg sync.WaitGroup

	for _, path := range o.paths {
		wg.Add(1)
		go func(p string) {
			defer wg.Done()
			result := o.processFile(p)
			o.resultsMu.Lock()
			o.results = append(o.results, result)
			o.resultsMu.Unlock()
		}(path)
	}

	wg.Wait()

	totalDuration := time.Since(startTime)
	o.logSummary(totalDuration)

	return o.results
}

// processFile runs the operation for one notebook under the worker limit
func (o *Orchestrator) processFile(path string) FileResult {
	startTime := time.Now()
	result := FileResult{Path: path}

	if err := o.sem.Acquire(o.ctx, 1); err != nil {
		// Cancelled while waiting for a worker slot
		result.Err = err
		return result
	}
	defer o.sem.Release(1)

	warnings, changed, err := o.process(o.ctx, path)
	result.Warnings = warnings
	result.Changed = changed
	result.Duration = time.Since(startTime)
	if err != nil {
		result.Err = err
		o.log.Errorf("Processing failed for '%s': %v", path, err)
		return result
	}

	result.Success = true
	return result
}

// Cancel stops the run; files not yet started report a context error
func (o *Orchestrator) Cancel() {
	o.log.Info("Cancelling batch run...")
	o.cancel()
}

// logSummary logs a summary of all file results
func (o *Orchestrator) logSummary(totalDuration time.Duration) {
	o.log.Info("============================================")
	o.log.Infof("Batch run completed in %v", totalDuration)
	o.log.Info("File results:")

	successCount := 0
	failCount := 0
	changedCount := 0
	totalWarnings := 0

	for _, r := range o.results {
		status := "OK"
		if !r.Success {
			status = "FAILED"
			failCount++
		} else {
			successCount++
		}
		if r.Changed {
			changedCount++
		}
		totalWarnings += r.Warnings

		o.log.Infof("  %s: %s - %d warning(s) in %v", r.Path, status, r.Warnings, r.Duration)
		if r.Err != nil {
			o.log.Infof("    Error: %v [%s]", r.Err, utils.CategorizeError(r.Err))
		}
	}

	o.log.Info("--------------------------------------------")
	o.log.Infof("Total: %d notebooks (%d ok, %d failed), %d changed, %d warning(s)",
		len(o.results), successCount, failCount, changedCount, totalWarnings)
	o.log.Info("============================================")
}

// Failed reports how many results carry an error
func Failed(results []FileResult) int {
	count := 0
	for _, r := range results {
		if !r.Success {
			count++
		}
	}
	return count
}

// ValidatePaths checks that every input exists and is a regular file before
// any worker starts, so a typo fails the whole run up front.
func ValidatePaths(paths []string) error {
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("%w: %w", utils.ErrFilesystem, err)
		}
		if info.IsDir() {
			return fmt.Errorf("%w: '%s' is a directory, not a notebook", utils.ErrFilesystem, path)
		}
	}
	return nil
}
