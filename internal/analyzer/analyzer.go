// Package analyzer classifies scanned files, scores their staleness and
// provides filter and sort operations over the classified set.
package analyzer

import (
	"sort"
	"strings"
	"time"

	"github.com/sangnn2012/disk-cleaner/internal/rules"
	"github.com/sangnn2012/disk-cleaner/pkg/models"
)

// Analyzer applies the classification rule set.
type Analyzer struct {
	rules *rules.Set
}

// New creates an Analyzer. A nil rule set selects the built-in defaults.
func New(ruleSet *rules.Set) *Analyzer {
	if ruleSet == nil {
		ruleSet = rules.Default()
	}
	return &Analyzer{rules: ruleSet}
}

// Categorize maps a record to one of the fixed categories. Executables
// count as Game only when the path contains a known game-install
// fragment; otherwise they fall through to Other.
func (a *Analyzer) Categorize(rec models.FileRecord) models.Category {
	ext := strings.ToLower(rec.Extension)

	if ext == ".exe" {
		pathLower := strings.ToLower(rec.Path)
		for _, frag := range a.rules.GamePaths {
			if strings.Contains(pathLower, frag) {
				return models.CategoryGame
			}
		}
		return models.CategoryOther
	}

	if cat, ok := a.rules.CategoryForExtension(ext); ok {
		return cat
	}
	return models.CategoryOther
}

// StalenessScore ranks a file for deletion: size in MiB times whole days
// since last access, relative to now. Files accessed today score zero.
func (a *Analyzer) StalenessScore(rec models.FileRecord, now time.Time) float64 {
	sizeMB := float64(rec.Size) / (1024 * 1024)
	return sizeMB * float64(DaysSince(rec.LastAccessed, now))
}

// Analyze classifies and scores every record, preserving input order.
func (a *Analyzer) Analyze(records []models.FileRecord) []models.ClassifiedFile {
	now := time.Now()
	classified := make([]models.ClassifiedFile, 0, len(records))
	for _, rec := range records {
		classified = append(classified, models.ClassifiedFile{
			FileRecord:     rec,
			Category:       a.Categorize(rec),
			StalenessScore: a.StalenessScore(rec, now),
		})
	}
	return classified
}

// DaysSince returns the whole days elapsed between t and now, truncated.
// Timestamps in the future count as zero days.
func DaysSince(t, now time.Time) int {
	if t.After(now) {
		return 0
	}
	return int(now.Sub(t) / (24 * time.Hour))
}

// Filter keeps entries matching every predicate: category in the allow
// list (empty list admits all), size and age at or above the inclusive
// lower bounds, and path outside the exclusion prefixes. Relative order
// is preserved.
func Filter(files []models.ClassifiedFile, categories []models.Category, minSize int64, minDaysOld int, exclude []string) []models.ClassifiedFile {
	now := time.Now()

	allowed := make(map[models.Category]bool, len(categories))
	for _, cat := range categories {
		allowed[cat] = true
	}

	var kept []models.ClassifiedFile
	for _, f := range files {
		if len(allowed) > 0 && !allowed[f.Category] {
			continue
		}
		if f.Size < minSize {
			continue
		}
		if DaysSince(f.LastAccessed, now) < minDaysOld {
			continue
		}
		if isExcluded(f.Path, exclude) {
			continue
		}
		kept = append(kept, f)
	}
	return kept
}

// isExcluded checks the path against the prefix denylist,
// case-insensitively.
func isExcluded(path string, exclude []string) bool {
	if len(exclude) == 0 {
		return false
	}
	lower := strings.ToLower(path)
	for _, prefix := range exclude {
		if strings.HasPrefix(lower, strings.ToLower(prefix)) {
			return true
		}
	}
	return false
}

// SortKey selects the sort criterion.
type SortKey string

const (
	SortBySize      SortKey = "size"
	SortByAccessed  SortKey = "accessed"
	SortByStaleness SortKey = "staleness"
	SortByName      SortKey = "name"
	SortByCategory  SortKey = "category"
)

// ParseSortKey maps a key string to a SortKey, defaulting to size for
// anything unrecognized.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortBySize, SortByAccessed, SortByStaleness, SortByName, SortByCategory:
		return SortKey(s)
	default:
		return SortBySize
	}
}

// Sort returns a new slice ordered by key. The sort is stable, so ties
// keep their input order. Descending is the usual choice for size and
// access time.
func Sort(files []models.ClassifiedFile, key SortKey, descending bool) []models.ClassifiedFile {
	sorted := make([]models.ClassifiedFile, len(files))
	copy(sorted, files)

	less := lessFunc(key)
	sort.SliceStable(sorted, func(i, j int) bool {
		if descending {
			return less(sorted[j], sorted[i])
		}
		return less(sorted[i], sorted[j])
	})
	return sorted
}

func lessFunc(key SortKey) func(a, b models.ClassifiedFile) bool {
	switch key {
	case SortByAccessed:
		return func(a, b models.ClassifiedFile) bool { return a.LastAccessed.Before(b.LastAccessed) }
	case SortByStaleness:
		return func(a, b models.ClassifiedFile) bool { return a.StalenessScore < b.StalenessScore }
	case SortByName:
		return func(a, b models.ClassifiedFile) bool {
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	case SortByCategory:
		return func(a, b models.ClassifiedFile) bool { return a.Category < b.Category }
	default:
		return func(a, b models.ClassifiedFile) bool { return a.Size < b.Size }
	}
}
