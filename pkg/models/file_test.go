package models

import (
	"testing"
	"time"
)

func TestExtensionOf(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		expected string
	}{
		{"simple extension", "movie.mp4", ".mp4"},
		{"upper-cased extension", "PHOTO.JPG", ".jpg"},
		{"mixed case", "Report.PdF", ".pdf"},
		{"no extension", "README", ""},
		{"dotfile", ".bashrc", ""},
		{"dotfile with extension", ".config.yaml", ".yaml"},
		{"multiple dots", "archive.tar.gz", ".gz"},
		{"trailing dot", "weird.", "."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtensionOf(tt.fileName); got != tt.expected {
				t.Errorf("ExtensionOf(%q) = %q, want %q", tt.fileName, got, tt.expected)
			}
		})
	}
}

func TestNewFileRecord(t *testing.T) {
	accessed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	modified := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

	rec := NewFileRecord("/home/user/Videos/clip.MKV", 2048, accessed, modified)

	if rec.Name != "clip.MKV" {
		t.Errorf("Name = %q, want %q", rec.Name, "clip.MKV")
	}
	if rec.Extension != ".mkv" {
		t.Errorf("Extension = %q, want %q", rec.Extension, ".mkv")
	}
	if rec.Size != 2048 {
		t.Errorf("Size = %d, want 2048", rec.Size)
	}
	if !rec.LastAccessed.Equal(accessed) || !rec.LastModified.Equal(modified) {
		t.Error("timestamps not preserved")
	}
}
