package models

// DuplicateGroups maps a full-content hash (hex string) to the files
// verified to share it. Every group has at least two members of equal,
// non-zero size.
type DuplicateGroups map[string][]ClassifiedFile

// DuplicateStats summarizes a set of duplicate groups.
type DuplicateStats struct {
	TotalGroups int   `json:"total_groups"`
	TotalFiles  int   `json:"total_files"`
	WastedBytes int64 `json:"wasted_bytes"` // Reclaimable if all but one copy per group were removed
}
