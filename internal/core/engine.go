// Package core wires the scan, analyze, duplicate and smart-analysis
// stages into one pipeline run.
package core

import (
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/sangnn2012/disk-cleaner/internal/analyzer"
	"github.com/sangnn2012/disk-cleaner/internal/config"
	"github.com/sangnn2012/disk-cleaner/internal/duplicates"
	"github.com/sangnn2012/disk-cleaner/internal/report"
	"github.com/sangnn2012/disk-cleaner/internal/rules"
	"github.com/sangnn2012/disk-cleaner/internal/scanner"
	"github.com/sangnn2012/disk-cleaner/internal/smart"
	"github.com/sangnn2012/disk-cleaner/pkg/models"
)

// ProgressCallback is called to report pipeline progress. Phases:
// scanning, analyzing, duplicates, smart.
type ProgressCallback func(phase string, current, total int, message string)

// Engine runs the full pipeline against one configuration. The stages
// themselves are sequential; a caller typically runs Run on a worker
// goroutine and flips the stop flag from elsewhere.
type Engine struct {
	config           *config.Config
	logger           *zap.Logger
	rules            *rules.Set
	progressCallback ProgressCallback
	stop             atomic.Bool
}

// NewEngine creates an engine, loading rule overrides if configured.
func NewEngine(cfg *config.Config, logger *zap.Logger) (*Engine, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	ruleSet, err := rules.Load(cfg.RulesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load rules: %w", err)
	}
	return &Engine{config: cfg, logger: logger, rules: ruleSet}, nil
}

// SetProgressCallback sets the progress callback function.
func (e *Engine) SetProgressCallback(cb ProgressCallback) {
	e.progressCallback = cb
}

// RequestStop asks the running pipeline to stop at the next
// cancellation point. The pipeline then returns a partial result.
func (e *Engine) RequestStop() {
	e.stop.Store(true)
}

func (e *Engine) shouldStop() bool {
	return e.stop.Load()
}

func (e *Engine) reportProgress(phase string, current, total int, message string) {
	if e.progressCallback != nil {
		e.progressCallback(phase, current, total, message)
	}
}

// Run scans the roots and applies every configured stage. Cancellation
// is not an error: results are partial but internally consistent.
func (e *Engine) Run(roots []string) (*models.ScanResults, error) {
	e.logger.Info("starting pipeline",
		zap.Strings("roots", roots),
		zap.Bool("duplicates", e.config.FindDuplicates),
		zap.Bool("smart", e.config.SmartAnalysis))

	results := &models.ScanResults{
		StartTime: time.Now(),
		Roots:     roots,
	}

	scn := scanner.New(e.rules, e.logger)
	records := scn.ScanAll(roots, func(path string, count int) {
		e.reportProgress("scanning", count, 0, path)
	}, e.shouldStop)
	results.TotalFiles = len(records)

	e.reportProgress("analyzing", 0, len(records), "Classifying files")
	an := analyzer.New(e.rules)
	files := an.Analyze(records)
	files = analyzer.Filter(files, e.config.CategoryList(), e.config.MinSizeBytes(), e.config.MinDaysOld, e.config.Exclude)
	files = analyzer.Sort(files, analyzer.ParseSortKey(e.config.SortBy), !e.config.Ascending)
	results.Files = files
	for _, f := range files {
		results.TotalBytes += f.Size
	}
	e.reportProgress("analyzing", len(records), len(records), "Classification complete")

	if e.config.FindDuplicates && !e.shouldStop() {
		finder := duplicates.New(e.logger)
		results.Duplicates = finder.Find(files, func(stage string, current, total int) {
			e.reportProgress("duplicates", current, total, stage)
		}, e.shouldStop)
		results.DupStats = duplicates.Stats(results.Duplicates)
	}

	if e.config.SmartAnalysis && !e.shouldStop() {
		sm := smart.New(e.rules, e.logger)
		usage := sm.DiskUsage(files)
		usage.EmptyFolders = sm.EmptyFolders(roots, func(path string, count int) {
			e.reportProgress("smart", count, 0, path)
		}, e.shouldStop)
		results.Usage = usage
	}

	results.Stopped = e.shouldStop()
	results.EndTime = time.Now()
	results.Duration = results.EndTime.Sub(results.StartTime)

	reporter := report.NewGenerator(e.config, e.logger)
	reportPath, err := reporter.Generate(results)
	if err != nil {
		e.logger.Error("failed to generate report", zap.Error(err))
		return results, err
	}
	results.ReportPath = reportPath

	e.logger.Info("pipeline completed",
		zap.Duration("duration", results.Duration),
		zap.Int("files", len(results.Files)),
		zap.Bool("stopped", results.Stopped))

	return results, nil
}
