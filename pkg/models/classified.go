package models

// Category is the classification assigned to a file by the analyzer.
type Category string

const (
	CategoryVideo    Category = "Video"
	CategoryAudio    Category = "Audio"
	CategoryImage    Category = "Image"
	CategoryDocument Category = "Document"
	CategoryArchive  Category = "Archive"
	CategoryGame     Category = "Game"
	CategoryCode     Category = "Code"
	CategoryOther    Category = "Other"
)

// Categories lists every category in display order.
func Categories() []Category {
	return []Category{
		CategoryVideo, CategoryAudio, CategoryImage, CategoryDocument,
		CategoryArchive, CategoryGame, CategoryCode, CategoryOther,
	}
}

// ClassifiedFile is a FileRecord annotated with derived attributes.
// Category and StalenessScore are computed once at analysis time and are
// not refreshed if the underlying file changes; re-analyze to recompute.
type ClassifiedFile struct {
	FileRecord
	Category       Category `json:"category"`
	StalenessScore float64  `json:"staleness_score"`
}
