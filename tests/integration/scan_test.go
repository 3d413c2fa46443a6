package integration

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
}

func TestScanCommand_NoArgs(t *testing.T) {
	cmd := exec.Command("go", "run", "../../cmd/disk-cleaner", "scan")
	output, err := cmd.CombinedOutput()

	if err == nil {
		t.Error("Expected error for missing path argument, got nil")
	}

	if !strings.Contains(string(output), "requires at least 1 arg") {
		t.Errorf("Expected argument error, got: %s", output)
	}
}

func TestScanCommand_InvalidSortKey(t *testing.T) {
	cmd := exec.Command("go", "run", "../../cmd/disk-cleaner", "scan", "--sort", "color", t.TempDir())
	output, err := cmd.CombinedOutput()

	if err == nil {
		t.Error("Expected error for invalid sort key, got nil")
	}

	if !strings.Contains(string(output), "--sort must be one of") {
		t.Errorf("Expected sort validation error, got: %s", output)
	}
}

func TestScanCommand_ConsoleSummary(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "movie.mp4"), "0123456789")
	writeFile(t, filepath.Join(tmpDir, "notes.txt"), "hello")

	cmd := exec.Command("go", "run", "../../cmd/disk-cleaner", "scan", tmpDir)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		t.Fatalf("Command failed: %v, stderr: %s", err, stderr.String())
	}

	if !strings.Contains(stdout.String(), "ANALYSIS COMPLETE") {
		t.Errorf("Expected summary header in stdout, got: %s", stdout.String())
	}

	if !strings.Contains(stdout.String(), "TOP FILES") {
		t.Errorf("Expected top-files listing in stdout, got: %s", stdout.String())
	}
}

func TestScanCommand_CSVReport(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "a.mp4"), "videodata")

	outFile := filepath.Join(t.TempDir(), "report.csv")
	cmd := exec.Command("go", "run", "../../cmd/disk-cleaner", "scan",
		"--report", "csv", "--output", outFile, tmpDir)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		t.Fatalf("Command failed: %v, stderr: %s", err, stderr.String())
	}

	data, err := os.ReadFile(outFile)
	if err != nil {
		t.Fatalf("Report file not written: %v", err)
	}

	if !strings.Contains(string(data), "a.mp4") {
		t.Errorf("Expected scanned file in report, got: %s", data)
	}
}

func TestCleanCommand_RequiresDestination(t *testing.T) {
	cmd := exec.Command("go", "run", "../../cmd/disk-cleaner", "clean", t.TempDir())
	output, err := cmd.CombinedOutput()

	if err == nil {
		t.Error("Expected error without --dest or --archive, got nil")
	}

	if !strings.Contains(string(output), "--dest or --archive") {
		t.Errorf("Expected destination error, got: %s", output)
	}
}

func TestCleanCommand_MoveByCategory(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "movie.mp4"), "videodata")
	writeFile(t, filepath.Join(tmpDir, "notes.txt"), "hello")

	destDir := filepath.Join(t.TempDir(), "staging")
	cmd := exec.Command("go", "run", "../../cmd/disk-cleaner", "clean",
		"--categories", "Video", "--dest", destDir, tmpDir)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		t.Fatalf("Command failed: %v, stderr: %s", err, stderr.String())
	}

	if _, err := os.Stat(filepath.Join(destDir, "movie.mp4")); err != nil {
		t.Errorf("Video file not moved: %v", err)
	}

	// The non-matching file stays put.
	if _, err := os.Stat(filepath.Join(tmpDir, "notes.txt")); err != nil {
		t.Errorf("Filtered-out file went missing: %v", err)
	}
}

func TestScanCommand_DuplicatesAndSmart(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "copy1.bin"), "identical payload")
	writeFile(t, filepath.Join(tmpDir, "copy2.bin"), "identical payload")
	if err := os.MkdirAll(filepath.Join(tmpDir, "hollow"), 0755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}

	cmd := exec.Command("go", "run", "../../cmd/disk-cleaner", "scan",
		"--duplicates", "--smart", tmpDir)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		t.Fatalf("Command failed: %v, stderr: %s", err, stderr.String())
	}

	// The label and count are separated by color codes, so match the
	// unambiguous fragments.
	if !strings.Contains(stdout.String(), "(2 files,") {
		t.Errorf("Expected one duplicate group of two files, got: %s", stdout.String())
	}

	if !strings.Contains(stdout.String(), "Empty folders:") {
		t.Errorf("Expected empty-folder summary, got: %s", stdout.String())
	}
}
