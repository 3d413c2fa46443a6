package report

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/sangnn2012/disk-cleaner/pkg/models"
)

// generateCSV exports the classified file listing to CSV.
func (g *Generator) generateCSV(results *models.ScanResults, outputFile string) error {
	f, err := os.Create(outputFile)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Name", "Size (bytes)", "Size", "Category", "Last Accessed", "Path"}); err != nil {
		return err
	}

	for _, file := range results.Files {
		row := []string{
			file.Name,
			strconv.FormatInt(file.Size, 10),
			humanize.IBytes(uint64(file.Size)),
			string(file.Category),
			file.LastAccessed.Format("2006-01-02 15:04"),
			file.Path,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
