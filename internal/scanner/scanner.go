// Package scanner enumerates files under one or more root directories.
package scanner

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/sangnn2012/disk-cleaner/internal/rules"
	"github.com/sangnn2012/disk-cleaner/pkg/models"
)

// ProgressFunc receives the directory currently being scanned and the
// cumulative file count. Invoked synchronously from the scan loop.
type ProgressFunc func(path string, count int)

// StopFunc is polled cooperatively; returning true ends the scan with a
// partial result.
type StopFunc func() bool

// CompleteSentinel is the path reported by the final progress callback.
const CompleteSentinel = "Scan complete"

// progressInterval is how many files pass between progress callbacks.
const progressInterval = 100

var errStopped = errors.New("scan stopped")

// Scanner walks directory trees and collects file metadata.
type Scanner struct {
	rules  *rules.Set
	logger *zap.Logger
}

// New creates a Scanner. A nil rule set selects the built-in defaults,
// a nil logger disables logging.
func New(ruleSet *rules.Set, logger *zap.Logger) *Scanner {
	if ruleSet == nil {
		ruleSet = rules.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scanner{rules: ruleSet, logger: logger}
}

// Scan recursively walks root and returns a record per readable file.
// System and hidden directories are pruned, unreadable files and
// subtrees are skipped silently. A non-existent root yields an empty
// result. Both callbacks may be nil.
func (s *Scanner) Scan(root string, onProgress ProgressFunc, shouldStop StopFunc) []models.FileRecord {
	return s.scanFrom(root, 0, onProgress, shouldStop)
}

// ScanAll scans roots sequentially. Progress counts are continuous
// across roots, and roots after a stop request are not scanned.
func (s *Scanner) ScanAll(roots []string, onProgress ProgressFunc, shouldStop StopFunc) []models.FileRecord {
	var all []models.FileRecord
	for _, root := range roots {
		if shouldStop != nil && shouldStop() {
			break
		}
		all = append(all, s.scanFrom(root, len(all), onProgress, shouldStop)...)
	}
	return all
}

// scanFrom walks one root. offset shifts reported counts so multi-root
// scans stay continuous.
func (s *Scanner) scanFrom(root string, offset int, onProgress ProgressFunc, shouldStop StopFunc) []models.FileRecord {
	var files []models.FileRecord
	count := 0

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Inaccessible file or subtree: skip and keep walking.
			s.logger.Debug("skipping inaccessible path",
				zap.String("path", path), zap.Error(err))
			return nil
		}

		if shouldStop != nil && shouldStop() {
			return errStopped
		}

		if d.IsDir() {
			if path != root {
				name := d.Name()
				if s.rules.SkipFolder(name) || strings.HasPrefix(name, ".") {
					s.logger.Debug("skipping excluded directory", zap.String("path", path))
					return fs.SkipDir
				}
			}
			return nil
		}

		info, err := d.Info()
		if err == nil && d.Type()&fs.ModeSymlink != 0 {
			// Follow file symlinks so size and times describe the target.
			info, err = os.Stat(path)
		}
		if err != nil {
			s.logger.Debug("skipping unreadable file",
				zap.String("path", path), zap.Error(err))
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		files = append(files, models.NewFileRecord(path, info.Size(), accessTime(info), info.ModTime()))
		count++

		if count%progressInterval == 0 && onProgress != nil {
			onProgress(filepath.Dir(path), offset+count)
		}
		return nil
	})
	if err != nil && !errors.Is(err, errStopped) {
		s.logger.Warn("walk aborted", zap.String("root", root), zap.Error(err))
	}

	if onProgress != nil {
		onProgress(CompleteSentinel, offset+count)
	}
	return files
}
