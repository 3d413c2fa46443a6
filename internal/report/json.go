package report

import (
	"encoding/json"
	"os"

	"github.com/sangnn2012/disk-cleaner/pkg/models"
)

// generateJSON writes the full results as indented JSON.
func (g *Generator) generateJSON(results *models.ScanResults, outputFile string) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(outputFile, data, 0o644)
}
