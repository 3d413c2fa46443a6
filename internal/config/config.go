package config

import (
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/sangnn2012/disk-cleaner/pkg/models"
)

// Config represents the pipeline configuration.
type Config struct {
	// Filter settings
	Categories []string `mapstructure:"categories"`   // category allow list (empty = all)
	MinSize    string   `mapstructure:"min_size"`     // minimum file size, e.g. "10M"
	MinDaysOld int      `mapstructure:"min_days_old"` // minimum days since last access
	Exclude    []string `mapstructure:"exclude"`      // path prefixes excluded from results

	// Sort settings
	SortBy    string `mapstructure:"sort_by"` // size, accessed, staleness, name, category
	Ascending bool   `mapstructure:"ascending"`

	// Pipeline stages
	FindDuplicates bool `mapstructure:"find_duplicates"`
	SmartAnalysis  bool `mapstructure:"smart_analysis"`

	// Smart-analysis thresholds
	DownloadAgeDays int    `mapstructure:"download_age_days"`
	LargeFolderSize string `mapstructure:"large_folder_size"`

	// Rule overrides
	RulesFile string `mapstructure:"rules_file"` // optional YAML rule file

	// Report settings
	ReportFormat string `mapstructure:"report_format"` // csv, html, json
	OutputFile   string `mapstructure:"output_file"`
}

// LoadConfig loads configuration from environment variables and defaults.
func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("categories", []string{})
	v.SetDefault("min_size", "0")
	v.SetDefault("min_days_old", 0)
	v.SetDefault("exclude", []string{})
	v.SetDefault("sort_by", "size")
	v.SetDefault("ascending", false)
	v.SetDefault("find_duplicates", false)
	v.SetDefault("smart_analysis", false)
	v.SetDefault("download_age_days", 30)
	v.SetDefault("large_folder_size", "1G")
	v.SetDefault("rules_file", "")
	v.SetDefault("report_format", "")
	v.SetDefault("output_file", "")

	v.SetEnvPrefix("DISKCLEANER")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// MinSizeBytes returns the minimum file size filter in bytes.
func (c *Config) MinSizeBytes() int64 {
	return ParseSize(c.MinSize)
}

// LargeFolderBytes returns the large-folder threshold in bytes.
func (c *Config) LargeFolderBytes() int64 {
	return ParseSize(c.LargeFolderSize)
}

// CategoryList converts the configured category names to model
// categories, dropping unknown names.
func (c *Config) CategoryList() []models.Category {
	var cats []models.Category
	for _, name := range c.Categories {
		for _, known := range models.Categories() {
			if strings.EqualFold(name, string(known)) {
				cats = append(cats, known)
				break
			}
		}
	}
	return cats
}

// ParseSize parses a size string like "650K", "10M" or "1G" to bytes.
// A bare number is taken as bytes; malformed input yields zero.
func ParseSize(sizeStr string) int64 {
	sizeStr = strings.TrimSpace(sizeStr)
	if sizeStr == "" {
		return 0
	}

	var multiplier int64 = 1
	switch sizeStr[len(sizeStr)-1] {
	case 'K', 'k':
		multiplier = 1 << 10
		sizeStr = sizeStr[:len(sizeStr)-1]
	case 'M', 'm':
		multiplier = 1 << 20
		sizeStr = sizeStr[:len(sizeStr)-1]
	case 'G', 'g':
		multiplier = 1 << 30
		sizeStr = sizeStr[:len(sizeStr)-1]
	case 'T', 't':
		multiplier = 1 << 40
		sizeStr = sizeStr[:len(sizeStr)-1]
	}

	size, err := strconv.ParseInt(strings.TrimSpace(sizeStr), 10, 64)
	if err != nil || size < 0 {
		return 0
	}
	return size * multiplier
}
