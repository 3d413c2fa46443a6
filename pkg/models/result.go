package models

import "time"

// ScanResults contains everything one pipeline run produced.
type ScanResults struct {
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Duration  time.Duration `json:"duration"`
	Roots     []string      `json:"roots"`

	TotalFiles int   `json:"total_files"`
	TotalBytes int64 `json:"total_bytes"`

	Files []ClassifiedFile `json:"files"`

	Duplicates DuplicateGroups `json:"duplicates,omitempty"`
	DupStats   DuplicateStats  `json:"duplicate_stats"`

	Usage *DiskUsage `json:"disk_usage,omitempty"`

	Stopped    bool   `json:"stopped"` // True when the run ended via cooperative stop
	ReportPath string `json:"report_path,omitempty"`
}

// CategoryTotals returns per-category file counts and byte totals.
func (r *ScanResults) CategoryTotals() (counts map[Category]int, bytes map[Category]int64) {
	counts = make(map[Category]int)
	bytes = make(map[Category]int64)
	for _, f := range r.Files {
		counts[f.Category]++
		bytes[f.Category] += f.Size
	}
	return counts, bytes
}
