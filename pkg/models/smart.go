package models

// FolderStat aggregates the files directly inside one directory.
// The grouping is by immediate parent, not an ancestor rollup.
type FolderStat struct {
	Path      string `json:"path"`
	Size      int64  `json:"size"`
	FileCount int    `json:"file_count"`
}

// DiskUsage is the combined smart-analysis report. PotentialSavings
// covers temp files and old downloads only; large and empty folders are
// informational, not deletion targets.
type DiskUsage struct {
	TempFiles    []ClassifiedFile `json:"temp_files"`
	OldDownloads []ClassifiedFile `json:"old_downloads"`
	LargeFolders []FolderStat     `json:"large_folders"`
	EmptyFolders []string         `json:"empty_folders,omitempty"`

	TempBytes        int64 `json:"temp_bytes"`
	DownloadsBytes   int64 `json:"downloads_bytes"`
	PotentialSavings int64 `json:"potential_savings"`
}
