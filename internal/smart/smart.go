// Package smart derives cleanup candidates from the analyzer's output:
// temp and cache files, stale downloads, oversized folders and empty
// directory trees.
package smart

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sangnn2012/disk-cleaner/internal/rules"
	"github.com/sangnn2012/disk-cleaner/pkg/models"
)

// Defaults for the caller-supplied thresholds.
const (
	DefaultDownloadAgeDays = 30
	DefaultLargeFolderSize = 1 << 30 // 1 GiB
)

// ProgressFunc receives the directory currently being checked and the
// cumulative directory count.
type ProgressFunc func(path string, count int)

// StopFunc is polled cooperatively during directory walks.
type StopFunc func() bool

// Analyzer runs the smart-analysis heuristics against one rule set.
type Analyzer struct {
	rules  *rules.Set
	logger *zap.Logger
}

// New creates an Analyzer. A nil rule set selects the built-in
// defaults, a nil logger disables logging.
func New(ruleSet *rules.Set, logger *zap.Logger) *Analyzer {
	if ruleSet == nil {
		ruleSet = rules.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{rules: ruleSet, logger: logger}
}

// TempFiles returns the entries that look like temporary or cache data:
// a temp extension, a temp folder fragment anywhere in the path, or a
// known per-user cache location. Matching is case-insensitive.
func (a *Analyzer) TempFiles(files []models.ClassifiedFile) []models.ClassifiedFile {
	var temp []models.ClassifiedFile
	for _, f := range files {
		if a.isTemp(f) {
			temp = append(temp, f)
		}
	}
	return temp
}

func (a *Analyzer) isTemp(f models.ClassifiedFile) bool {
	if a.rules.IsTempExtension(f.Extension) {
		return true
	}
	pathLower := strings.ToLower(f.Path)
	for _, pattern := range a.rules.TempPatterns {
		if strings.Contains(pathLower, pattern) {
			return true
		}
	}
	for _, cachePath := range a.rules.UserCachePaths {
		if strings.Contains(pathLower, strings.ToLower(cachePath)) {
			return true
		}
	}
	return false
}

// OldDownloads returns entries inside a downloads folder whose last
// access is older than minDays (DefaultDownloadAgeDays when minDays is
// not positive).
func (a *Analyzer) OldDownloads(files []models.ClassifiedFile, minDays int) []models.ClassifiedFile {
	if minDays <= 0 {
		minDays = DefaultDownloadAgeDays
	}
	cutoff := time.Now().AddDate(0, 0, -minDays)

	var old []models.ClassifiedFile
	for _, f := range files {
		if !strings.Contains(strings.ToLower(f.Path), "downloads") {
			continue
		}
		if f.LastAccessed.Before(cutoff) {
			old = append(old, f)
		}
	}
	return old
}

// LargeFolders aggregates size and file count per immediate parent
// directory and returns the folders at or above minBytes
// (DefaultLargeFolderSize when minBytes is not positive), sorted by size
// descending. The grouping is exact, not an ancestor rollup.
func (a *Analyzer) LargeFolders(files []models.ClassifiedFile, minBytes int64) []models.FolderStat {
	if minBytes <= 0 {
		minBytes = DefaultLargeFolderSize
	}

	byFolder := make(map[string]*models.FolderStat)
	for _, f := range files {
		folder := filepath.Dir(f.Path)
		stat, ok := byFolder[folder]
		if !ok {
			stat = &models.FolderStat{Path: folder}
			byFolder[folder] = stat
		}
		stat.Size += f.Size
		stat.FileCount++
	}

	var large []models.FolderStat
	for _, stat := range byFolder {
		if stat.Size >= minBytes {
			large = append(large, *stat)
		}
	}
	sort.Slice(large, func(i, j int) bool {
		if large[i].Size != large[j].Size {
			return large[i].Size > large[j].Size
		}
		return large[i].Path < large[j].Path
	})
	return large
}

// EmptyFolders walks each root bottom-up and returns the directories
// that contain no files and no non-empty subdirectories, children
// before parents. System folders are never reported. Unreadable
// directories count as non-empty.
func (a *Analyzer) EmptyFolders(roots []string, onProgress ProgressFunc, shouldStop StopFunc) []string {
	var empty []string
	checked := 0
	stopped := false

	var walk func(dir string) bool
	walk = func(dir string) bool {
		if stopped || (shouldStop != nil && shouldStop()) {
			stopped = true
			return false
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			a.logger.Debug("skipping unreadable directory",
				zap.String("path", dir), zap.Error(err))
			return false
		}

		isEmpty := true
		for _, entry := range entries {
			if entry.IsDir() {
				if !walk(filepath.Join(dir, entry.Name())) {
					isEmpty = false
				}
			} else {
				isEmpty = false
			}
		}

		checked++
		if onProgress != nil && checked%100 == 0 {
			onProgress(dir, checked)
		}

		if stopped || a.rules.IsSystemPath(dir) {
			return false
		}
		if isEmpty {
			empty = append(empty, dir)
		}
		return isEmpty
	}

	for _, root := range roots {
		if stopped || (shouldStop != nil && shouldStop()) {
			break
		}
		walk(root)
	}
	return empty
}

// DiskUsage combines the per-file heuristics into one report with
// default thresholds. Potential savings cover temp files and old
// downloads only; large folders are informational.
func (a *Analyzer) DiskUsage(files []models.ClassifiedFile) *models.DiskUsage {
	usage := &models.DiskUsage{
		TempFiles:    a.TempFiles(files),
		OldDownloads: a.OldDownloads(files, DefaultDownloadAgeDays),
		LargeFolders: a.LargeFolders(files, DefaultLargeFolderSize),
	}
	for _, f := range usage.TempFiles {
		usage.TempBytes += f.Size
	}
	for _, f := range usage.OldDownloads {
		usage.DownloadsBytes += f.Size
	}
	usage.PotentialSavings = usage.TempBytes + usage.DownloadsBytes
	return usage
}
