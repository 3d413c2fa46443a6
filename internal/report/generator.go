package report

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/sangnn2012/disk-cleaner/internal/config"
	"github.com/sangnn2012/disk-cleaner/pkg/models"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorGreen  = "\033[32m"
	colorCyan   = "\033[36m"
	colorOrange = "\033[38;5;208m"
	colorGray   = "\033[38;5;245m"
)

// Generator generates scan reports in various formats.
type Generator struct {
	config *config.Config
	logger *zap.Logger
}

// NewGenerator creates a new report generator.
func NewGenerator(cfg *config.Config, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{config: cfg, logger: logger}
}

// Generate writes a report for the results. With no format configured
// the summary is printed to the console and no file is produced.
func (g *Generator) Generate(results *models.ScanResults) (string, error) {
	format := g.config.ReportFormat
	outputFile := g.config.OutputFile

	if format == "" {
		g.printConsole(results)
		return "", nil
	}

	if outputFile == "" {
		timestamp := time.Now().Format("20060102-150405")
		switch format {
		case "csv":
			outputFile = fmt.Sprintf("DISK-CLEANER-REPORT-%s.csv", timestamp)
		case "html":
			outputFile = fmt.Sprintf("DISK-CLEANER-REPORT-%s.html", timestamp)
		case "json":
			outputFile = fmt.Sprintf("DISK-CLEANER-REPORT-%s.json", timestamp)
		default:
			return "", fmt.Errorf("unknown report format: %s", format)
		}
	}

	g.logger.Info("generating report",
		zap.String("format", format),
		zap.String("output", outputFile))

	var err error
	switch format {
	case "csv":
		err = g.generateCSV(results, outputFile)
	case "html":
		err = g.generateHTML(results, outputFile)
	case "json":
		err = g.generateJSON(results, outputFile)
	default:
		return "", fmt.Errorf("unknown report format: %s", format)
	}
	if err != nil {
		return "", fmt.Errorf("failed to generate %s report: %w", format, err)
	}

	absPath, _ := filepath.Abs(outputFile)
	return absPath, nil
}

// printConsole prints a summary to stdout with colors.
func (g *Generator) printConsole(results *models.ScanResults) {
	fmt.Println()
	fmt.Printf("%s%sANALYSIS COMPLETE%s\n", colorBold, colorOrange, colorReset)
	fmt.Println()

	fmt.Printf("  %sFiles:%s     %d\n", colorGray, colorReset, len(results.Files))
	fmt.Printf("  %sSize:%s      %s\n", colorGray, colorReset, humanize.IBytes(uint64(results.TotalBytes)))
	fmt.Printf("  %sDuration:%s  %.2fs\n", colorGray, colorReset, results.Duration.Seconds())
	if results.Stopped {
		fmt.Printf("  %sStopped early - results are partial%s\n", colorGray, colorReset)
	}
	fmt.Println()

	counts, bytes := results.CategoryTotals()
	for _, cat := range models.Categories() {
		if counts[cat] == 0 {
			continue
		}
		fmt.Printf("  %s%-10s%s %6d files  %10s\n",
			colorCyan, cat, colorReset, counts[cat], humanize.IBytes(uint64(bytes[cat])))
	}

	if results.Duplicates != nil {
		fmt.Println()
		fmt.Printf("  %sDuplicate groups:%s %d (%d files, %s wasted)\n",
			colorGray, colorReset,
			results.DupStats.TotalGroups, results.DupStats.TotalFiles,
			humanize.IBytes(uint64(results.DupStats.WastedBytes)))
	}

	if results.Usage != nil {
		fmt.Println()
		fmt.Printf("  %s%sPotential savings:%s %s\n", colorBold, colorGreen, colorReset,
			humanize.IBytes(uint64(results.Usage.PotentialSavings)))
		fmt.Printf("  %sTemp files:%s     %d (%s)\n", colorGray, colorReset,
			len(results.Usage.TempFiles), humanize.IBytes(uint64(results.Usage.TempBytes)))
		fmt.Printf("  %sOld downloads:%s  %d (%s)\n", colorGray, colorReset,
			len(results.Usage.OldDownloads), humanize.IBytes(uint64(results.Usage.DownloadsBytes)))
		fmt.Printf("  %sLarge folders:%s  %d\n", colorGray, colorReset, len(results.Usage.LargeFolders))
		fmt.Printf("  %sEmpty folders:%s  %d\n", colorGray, colorReset, len(results.Usage.EmptyFolders))
	}
	fmt.Println()
}
