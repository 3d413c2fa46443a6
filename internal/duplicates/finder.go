// Package duplicates finds groups of byte-identical files.
//
// The finder is a three-stage funnel that narrows candidates with
// progressively more expensive checks: exact size grouping (no I/O),
// a digest of the first 4 KiB, and finally a full-content hash. Only
// stage 3 emits groups, so a reported group is always verified
// byte-length and full-hash identical.
package duplicates

import (
	"crypto/md5"
	"encoding/hex"
	"io"
	"os"
	"sort"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"

	"github.com/sangnn2012/disk-cleaner/pkg/models"
)

// Stage names passed to the progress callback.
const (
	StageSizing   = "Grouping by size"
	StagePartial  = "Calculating partial hashes"
	StageComplete = "Complete"
)

// partialHashSize is how many leading bytes the stage-2 pre-filter
// digests.
const partialHashSize = 4096

// StageProgressFunc receives the current stage and its progress counter.
// Invoked synchronously and periodically, not per file.
type StageProgressFunc func(stage string, current, total int)

// StopFunc is polled between buckets and between files; returning true
// ends the search with the groups confirmed so far.
type StopFunc func() bool

// Finder locates duplicate files within a classified set.
type Finder struct {
	logger *zap.Logger
}

// New creates a Finder. A nil logger disables logging.
func New(logger *zap.Logger) *Finder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Finder{logger: logger}
}

// Find returns groups of byte-identical files keyed by their full MD5
// hex digest. Empty files are never grouped, and a file that cannot be
// read at any stage is dropped from consideration without aborting the
// search. Both callbacks may be nil.
func (f *Finder) Find(files []models.ClassifiedFile, onProgress StageProgressFunc, shouldStop StopFunc) models.DuplicateGroups {
	groups := make(models.DuplicateGroups)
	if len(files) == 0 {
		return groups
	}

	report := func(stage string, current, total int) {
		if onProgress != nil {
			onProgress(stage, current, total)
		}
	}
	stopped := func() bool {
		return shouldStop != nil && shouldStop()
	}

	// Stage 1: bucket by exact size. Same content implies same size, so
	// files alone in their bucket cannot have a duplicate.
	report(StageSizing, 0, len(files))

	sizeGroups := make(map[int64][]models.ClassifiedFile)
	for i, file := range files {
		if stopped() {
			return groups
		}
		if file.Size > 0 {
			sizeGroups[file.Size] = append(sizeGroups[file.Size], file)
		}
		if i%100 == 0 {
			report(StageSizing, i, len(files))
		}
	}

	var sizes []int64
	totalToCheck := 0
	for size, group := range sizeGroups {
		if len(group) >= 2 {
			sizes = append(sizes, size)
			totalToCheck += len(group)
		}
	}
	if len(sizes) == 0 {
		return groups
	}
	// Fixed bucket order keeps progress and early-stop behavior
	// reproducible.
	sort.Slice(sizes, func(i, j int) bool { return sizes[i] < sizes[j] })

	// Stage 2: digest the first 4 KiB of every candidate and sub-bucket.
	report(StagePartial, 0, totalToCheck)
	checked := 0

	for _, size := range sizes {
		if stopped() {
			return groups
		}

		partialGroups := make(map[uint64][]models.ClassifiedFile)
		for _, file := range sizeGroups[size] {
			if stopped() {
				return groups
			}

			sum, err := partialHash(file.Path)
			if err != nil {
				f.logger.Debug("dropping unreadable candidate",
					zap.String("path", file.Path), zap.Error(err))
			} else {
				partialGroups[sum] = append(partialGroups[sum], file)
			}

			checked++
			if checked%50 == 0 {
				report(StagePartial, checked, totalToCheck)
			}
		}

		// Stage 3: confirm each partial-hash bucket with a full-content
		// hash. Buckets of one after re-hashing are partial-hash
		// collisions and are discarded.
		for _, candidates := range partialGroups {
			if len(candidates) < 2 {
				continue
			}
			if stopped() {
				return groups
			}

			fullGroups := make(map[string][]models.ClassifiedFile)
			for _, file := range candidates {
				sum, err := fullHash(file.Path)
				if err != nil {
					f.logger.Debug("dropping unreadable candidate",
						zap.String("path", file.Path), zap.Error(err))
					continue
				}
				fullGroups[sum] = append(fullGroups[sum], file)
			}

			for sum, dups := range fullGroups {
				if len(dups) >= 2 {
					groups[sum] = dups
				}
			}
		}
	}

	report(StageComplete, totalToCheck, totalToCheck)
	return groups
}

// Stats summarizes duplicate groups. WastedBytes is the space freed if
// all but one copy per group were removed.
func Stats(groups models.DuplicateGroups) models.DuplicateStats {
	stats := models.DuplicateStats{TotalGroups: len(groups)}
	for _, group := range groups {
		stats.TotalFiles += len(group)
		if len(group) >= 2 {
			stats.WastedBytes += group[0].Size * int64(len(group)-1)
		}
	}
	return stats
}

// partialHash digests the first partialHashSize bytes of the file.
// xxhash is enough here: stage 3 re-verifies every match with a full
// content hash.
func partialHash(path string) (uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	buf := make([]byte, partialHashSize)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return 0, err
	}
	return xxhash.Sum64(buf[:n]), nil
}

// fullHash streams the whole file through MD5 and returns the hex
// digest.
func fullHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
