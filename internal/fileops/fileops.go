// Package fileops moves and archives files selected for cleanup. It
// never deletes anything: callers decide what to do with the originals.
package fileops

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/sangnn2012/disk-cleaner/pkg/models"
)

// ProgressFunc receives the file currently being processed and the
// running position within the batch.
type ProgressFunc func(name string, current, total int)

// StopFunc is polled before each file; returning true ends the batch
// with whatever has been processed so far.
type StopFunc func() bool

// MoveStats summarizes a Move batch. Per-file failures are accumulated,
// never fatal.
type MoveStats struct {
	Moved      int
	Failed     int
	TotalBytes int64
	Errors     []string
}

// CompressStats summarizes a Compress batch.
type CompressStats struct {
	Compressed    int
	Failed        int
	OriginalBytes int64
	ArchiveBytes  int64
	Errors        []string
}

// Operator runs batch file operations.
type Operator struct {
	logger *zap.Logger
}

// New creates an Operator. A nil logger disables logging.
func New(logger *zap.Logger) *Operator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Operator{logger: logger}
}

// Move relocates files into destination. With keepStructure the
// volume-stripped source path is recreated under destination; otherwise
// files land flat, with a numeric suffix on name collisions. A failure
// on one file is recorded and the batch continues.
func (o *Operator) Move(files []models.ClassifiedFile, destination string, keepStructure bool, onProgress ProgressFunc, shouldStop StopFunc) MoveStats {
	var stats MoveStats

	if err := os.MkdirAll(destination, 0o755); err != nil {
		stats.Errors = append(stats.Errors, fmt.Sprintf("cannot create destination: %v", err))
		return stats
	}

	total := len(files)
	for i, f := range files {
		if shouldStop != nil && shouldStop() {
			break
		}
		if onProgress != nil {
			onProgress(f.Name, i+1, total)
		}

		destPath, err := o.destinationPath(f, destination, keepStructure)
		if err == nil {
			err = moveFile(f.Path, destPath)
		}
		if err != nil {
			o.logger.Warn("move failed", zap.String("path", f.Path), zap.Error(err))
			stats.Failed++
			stats.Errors = append(stats.Errors, fmt.Sprintf("%s: %v", f.Name, err))
			continue
		}

		stats.Moved++
		stats.TotalBytes += f.Size
	}
	return stats
}

func (o *Operator) destinationPath(f models.ClassifiedFile, destination string, keepStructure bool) (string, error) {
	if keepStructure {
		destPath := filepath.Join(destination, relativeArcPath(f.Path))
		if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
			return "", err
		}
		return destPath, nil
	}

	destPath := filepath.Join(destination, f.Name)
	_, err := os.Stat(destPath)
	if os.IsNotExist(err) {
		return destPath, nil
	}
	if err != nil {
		// Anything but not-exist means the destination cannot be
		// probed; suffixing would hit the same error forever.
		return "", err
	}

	// Flat move with a name collision: suffix until free.
	ext := filepath.Ext(f.Name)
	base := strings.TrimSuffix(f.Name, ext)
	for counter := 1; ; counter++ {
		destPath = filepath.Join(destination, fmt.Sprintf("%s_%d%s", base, counter, ext))
		_, err := os.Stat(destPath)
		if os.IsNotExist(err) {
			return destPath, nil
		}
		if err != nil {
			return "", err
		}
	}
}

// moveFile renames src to dst, falling back to copy-and-remove when the
// rename crosses filesystems.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	if err := copyFile(src, dst); err != nil {
		return err
	}
	return os.Remove(src)
}

// copyFile copies src to dst and syncs the destination.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}

// Compress writes files into a zip archive at archivePath (".zip" is
// appended when missing). Archive entries use the volume-stripped
// source path. Per-file failures are recorded and the batch continues.
func (o *Operator) Compress(files []models.ClassifiedFile, archivePath string, onProgress ProgressFunc, shouldStop StopFunc) CompressStats {
	var stats CompressStats

	if !strings.HasSuffix(strings.ToLower(archivePath), ".zip") {
		archivePath += ".zip"
	}

	out, err := os.Create(archivePath)
	if err != nil {
		stats.Errors = append(stats.Errors, fmt.Sprintf("cannot create archive: %v", err))
		return stats
	}

	zw := zip.NewWriter(out)
	total := len(files)
	for i, f := range files {
		if shouldStop != nil && shouldStop() {
			break
		}
		if onProgress != nil {
			onProgress(f.Name, i+1, total)
		}

		if err := addToArchive(zw, f.Path); err != nil {
			o.logger.Warn("compress failed", zap.String("path", f.Path), zap.Error(err))
			stats.Failed++
			stats.Errors = append(stats.Errors, fmt.Sprintf("%s: %v", f.Name, err))
			continue
		}
		stats.Compressed++
		stats.OriginalBytes += f.Size
	}

	if err := zw.Close(); err != nil {
		stats.Errors = append(stats.Errors, fmt.Sprintf("cannot finalize archive: %v", err))
	}
	if err := out.Close(); err != nil {
		stats.Errors = append(stats.Errors, fmt.Sprintf("cannot close archive: %v", err))
	}

	if info, err := os.Stat(archivePath); err == nil {
		stats.ArchiveBytes = info.Size()
	}
	return stats
}

func addToArchive(zw *zip.Writer, path string) error {
	in, err := os.Open(path)
	if err != nil {
		return err
	}
	defer in.Close()

	w, err := zw.Create(filepath.ToSlash(relativeArcPath(path)))
	if err != nil {
		return err
	}
	_, err = io.Copy(w, in)
	return err
}

// relativeArcPath strips the volume name and leading separators so the
// path can live under another root.
func relativeArcPath(path string) string {
	rel := strings.TrimPrefix(path, filepath.VolumeName(path))
	return strings.TrimLeft(rel, `/\`)
}
