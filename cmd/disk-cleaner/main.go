package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sangnn2012/disk-cleaner/internal/config"
	"github.com/sangnn2012/disk-cleaner/internal/core"
	"github.com/sangnn2012/disk-cleaner/internal/fileops"
	"github.com/sangnn2012/disk-cleaner/pkg/models"
)

// ANSI colors
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorCyan   = "\033[36m"
	colorOrange = "\033[38;5;208m"
	colorGray   = "\033[38;5;245m"
)

var (
	version = "0.1.0"
	logger  *zap.Logger
	verbose bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "disk-cleaner",
		Short: "Disk Cleaner - find reclaimable disk space",
		Long: `Scans directories, classifies files by type and staleness, finds
byte-identical duplicates and suggests cleanup candidates.`,
		Version: version,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(scanCmd())
	rootCmd.AddCommand(cleanCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// initLogger builds the logger based on the verbose flag.
func initLogger() error {
	var err error
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		cfg := zap.Config{
			Level:            zap.NewAtomicLevelAt(zapcore.ErrorLevel),
			Encoding:         "json",
			OutputPaths:      []string{"stderr"},
			ErrorOutputPaths: []string{"stderr"},
			EncoderConfig:    zap.NewProductionEncoderConfig(),
		}
		logger, err = cfg.Build()
	}
	return err
}

// scanCmd creates the scan command.
func scanCmd() *cobra.Command {
	var (
		categories   []string
		minSize      string
		minDays      int
		exclude      []string
		sortBy       string
		ascending    bool
		dupes        bool
		smartFlag    bool
		downloadAge  int
		largeFolder  string
		rulesFile    string
		reportFormat string
		outputFile   string
		top          int
	)

	cmd := &cobra.Command{
		Use:   "scan [path...]",
		Short: "Scan directories and analyze disk usage",
		Long:  `Recursively scan one or more directories, classify every file and report cleanup candidates.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFlags(sortBy, reportFormat); err != nil {
				return err
			}

			if err := initLogger(); err != nil {
				fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
				return err
			}
			defer logger.Sync()

			cfg, err := config.LoadConfig()
			if err != nil {
				logger.Error("failed to load config", zap.Error(err))
				return err
			}

			// Override config with CLI flags
			if len(categories) > 0 {
				cfg.Categories = categories
			}
			if minSize != "" {
				cfg.MinSize = minSize
			}
			if minDays > 0 {
				cfg.MinDaysOld = minDays
			}
			if len(exclude) > 0 {
				cfg.Exclude = exclude
			}
			if sortBy != "" {
				cfg.SortBy = sortBy
			}
			cfg.Ascending = ascending
			cfg.FindDuplicates = dupes
			cfg.SmartAnalysis = smartFlag
			if downloadAge > 0 {
				cfg.DownloadAgeDays = downloadAge
			}
			if largeFolder != "" {
				cfg.LargeFolderSize = largeFolder
			}
			if rulesFile != "" {
				cfg.RulesFile = rulesFile
			}
			if reportFormat != "" {
				cfg.ReportFormat = reportFormat
			}
			if outputFile != "" {
				cfg.OutputFile = outputFile
			}

			engine, err := core.NewEngine(cfg, logger)
			if err != nil {
				return err
			}

			// Ctrl-C flips the cooperative stop flag; the pipeline then
			// returns a partial result instead of dying mid-walk.
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(sigCh)
			go func() {
				<-sigCh
				fmt.Printf("\n  %sStopping...%s\n", colorGray, colorReset)
				engine.RequestStop()
			}()

			lastPhase := ""
			engine.SetProgressCallback(func(phase string, current, total int, message string) {
				if lastPhase == phase {
					fmt.Print("\033[1A\033[K")
				}
				lastPhase = phase

				switch phase {
				case "scanning":
					fmt.Printf("  %sScanning:%s   %d files  %s%s%s\n",
						colorGray, colorReset, current, colorGray, truncate(message, 60), colorReset)
				case "analyzing":
					fmt.Printf("  %sAnalyzing:%s  %s\n", colorGray, colorReset, message)
				case "duplicates":
					if total > 0 {
						pct := float64(current) / float64(total) * 100
						fmt.Printf("  %sDuplicates:%s [%s%s%s] %.1f%% %s%s%s\n",
							colorGray, colorReset, colorOrange, bar(current, total, 30), colorReset,
							pct, colorGray, message, colorReset)
					} else {
						fmt.Printf("  %sDuplicates:%s %s\n", colorGray, colorReset, message)
					}
				case "smart":
					fmt.Printf("  %sFolders:%s    %d checked\n", colorGray, colorReset, current)
				}
			})

			fmt.Println()
			fmt.Printf("%s%sDisk Cleaner v%s%s\n", colorBold, colorOrange, version, colorReset)
			fmt.Printf("  %sScanning:%s  %s\n", colorGray, colorReset, strings.Join(args, ", "))
			fmt.Println()

			results, err := engine.Run(args)
			if err != nil {
				logger.Error("scan failed", zap.Error(err))
				return err
			}

			printTop(results, top)

			if results.ReportPath != "" {
				fmt.Printf("  %sReport:%s %s%s%s\n\n", colorGray, colorReset, colorOrange, results.ReportPath, colorReset)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&categories, "categories", nil, "Categories to include (comma-separated: Video, Audio, Image, Document, Archive, Game, Code, Other)")
	cmd.Flags().StringVar(&minSize, "min-size", "", "Minimum file size (e.g. 10M)")
	cmd.Flags().IntVar(&minDays, "min-days", 0, "Minimum days since last access")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "Path prefixes to exclude (comma-separated)")
	cmd.Flags().StringVar(&sortBy, "sort", "size", "Sort key: size, accessed, staleness, name, category")
	cmd.Flags().BoolVar(&ascending, "ascending", false, "Sort ascending instead of descending")
	cmd.Flags().BoolVar(&dupes, "duplicates", false, "Find byte-identical duplicate files")
	cmd.Flags().BoolVar(&smartFlag, "smart", false, "Run smart analysis (temp files, old downloads, large and empty folders)")
	cmd.Flags().IntVar(&downloadAge, "download-age", 0, "Age threshold in days for old downloads (default 30)")
	cmd.Flags().StringVar(&largeFolder, "large-folder", "", "Size threshold for large folders (default 1G)")
	cmd.Flags().StringVar(&rulesFile, "rules", "", "YAML rule file overriding the built-in tables")
	cmd.Flags().StringVarP(&reportFormat, "report", "r", "", "Report format: csv, html, json (default: console output)")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file path")
	cmd.Flags().IntVar(&top, "top", 10, "Number of top files to list")

	return cmd
}

// cleanCmd creates the clean command: scan, filter, then move the
// matching files aside or pack them into a zip archive.
func cleanCmd() *cobra.Command {
	var (
		categories []string
		minSize    string
		minDays    int
		exclude    []string
		rulesFile  string
		dest       string
		archive    string
		keepTree   bool
	)

	cmd := &cobra.Command{
		Use:   "clean [path...]",
		Short: "Move or archive files matching the filters",
		Long: `Scans the given directories, applies the filters and either moves the
matching files into a destination directory or compresses them into a
zip archive. Nothing is ever deleted.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dest == "" && archive == "" {
				return fmt.Errorf("either --dest or --archive is required")
			}
			if dest != "" && archive != "" {
				return fmt.Errorf("--dest and --archive are mutually exclusive")
			}

			if err := initLogger(); err != nil {
				fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
				return err
			}
			defer logger.Sync()

			cfg, err := config.LoadConfig()
			if err != nil {
				logger.Error("failed to load config", zap.Error(err))
				return err
			}
			if len(categories) > 0 {
				cfg.Categories = categories
			}
			if minSize != "" {
				cfg.MinSize = minSize
			}
			if minDays > 0 {
				cfg.MinDaysOld = minDays
			}
			if len(exclude) > 0 {
				cfg.Exclude = exclude
			}
			if rulesFile != "" {
				cfg.RulesFile = rulesFile
			}
			cfg.FindDuplicates = false
			cfg.SmartAnalysis = false

			engine, err := core.NewEngine(cfg, logger)
			if err != nil {
				return err
			}

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(sigCh)
			go func() {
				<-sigCh
				fmt.Printf("\n  %sStopping...%s\n", colorGray, colorReset)
				engine.RequestStop()
			}()

			results, err := engine.Run(args)
			if err != nil {
				logger.Error("scan failed", zap.Error(err))
				return err
			}
			if len(results.Files) == 0 {
				fmt.Println("  No files matched the filters.")
				return nil
			}

			op := fileops.New(logger)
			progress := func(name string, current, total int) {
				fmt.Printf("\033[1A\033[K  %sProcessing:%s [%s%s%s] %d/%d %s%s%s\n",
					colorGray, colorReset, colorOrange, bar(current, total, 30), colorReset,
					current, total, colorGray, truncate(name, 40), colorReset)
			}

			fmt.Println()
			if archive != "" {
				stats := op.Compress(results.Files, archive, progress, nil)
				fmt.Printf("\n  %sCompressed:%s %d files (%s -> %s), %d failed\n\n",
					colorGray, colorReset, stats.Compressed,
					humanize.IBytes(uint64(stats.OriginalBytes)),
					humanize.IBytes(uint64(stats.ArchiveBytes)), stats.Failed)
				printOpErrors(stats.Errors)
				return nil
			}

			stats := op.Move(results.Files, dest, keepTree, progress, nil)
			fmt.Printf("\n  %sMoved:%s %d files (%s), %d failed\n\n",
				colorGray, colorReset, stats.Moved,
				humanize.IBytes(uint64(stats.TotalBytes)), stats.Failed)
			printOpErrors(stats.Errors)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&categories, "categories", nil, "Categories to include (comma-separated)")
	cmd.Flags().StringVar(&minSize, "min-size", "", "Minimum file size (e.g. 10M)")
	cmd.Flags().IntVar(&minDays, "min-days", 0, "Minimum days since last access")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "Path prefixes to exclude (comma-separated)")
	cmd.Flags().StringVar(&rulesFile, "rules", "", "YAML rule file overriding the built-in tables")
	cmd.Flags().StringVar(&dest, "dest", "", "Directory to move matching files into")
	cmd.Flags().StringVar(&archive, "archive", "", "Zip archive to compress matching files into")
	cmd.Flags().BoolVar(&keepTree, "keep-structure", false, "Recreate the source directory layout under --dest")

	return cmd
}

// printOpErrors lists per-file failures from a batch operation.
func printOpErrors(errs []string) {
	for _, e := range errs {
		fmt.Printf("  %s%s%s\n", colorGray, e, colorReset)
	}
	if len(errs) > 0 {
		fmt.Println()
	}
}

// printTop lists the first n entries of the sorted result set.
func printTop(results *models.ScanResults, n int) {
	if n <= 0 || len(results.Files) == 0 {
		return
	}
	if n > len(results.Files) {
		n = len(results.Files)
	}

	fmt.Printf("  %s%sTOP FILES%s\n", colorBold, colorCyan, colorReset)
	for _, f := range results.Files[:n] {
		fmt.Printf("  %10s  %-8s %s\n",
			humanize.IBytes(uint64(f.Size)), f.Category, f.Path)
	}
	fmt.Println()
}

// validateFlags validates CLI flag values.
func validateFlags(sortBy, reportFormat string) error {
	if sortBy != "" {
		validKeys := []string{"size", "accessed", "staleness", "name", "category"}
		if !contains(validKeys, sortBy) {
			return fmt.Errorf("--sort must be one of: %s (got: %s)", strings.Join(validKeys, ", "), sortBy)
		}
	}
	if reportFormat != "" {
		validFormats := []string{"csv", "html", "json"}
		if !contains(validFormats, reportFormat) {
			return fmt.Errorf("--report must be one of: %s (got: %s)", strings.Join(validFormats, ", "), reportFormat)
		}
	}
	return nil
}

// contains checks if a slice contains a string.
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

// bar renders a progress bar of the given width.
func bar(current, total, width int) string {
	filled := 0
	if total > 0 {
		filled = width * current / total
	}
	if filled > width {
		filled = width
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// truncate shortens a string for single-line progress output.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
