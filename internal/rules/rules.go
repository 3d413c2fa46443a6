// Package rules holds the fixed tables driving classification and
// skip decisions. Built-in defaults can be overridden per table from an
// optional YAML file.
package rules

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sangnn2012/disk-cleaner/pkg/models"
)

// Set is one complete rule set. Lookup helpers below use pre-compiled
// maps; call Load or Default rather than constructing a Set literal.
type Set struct {
	// Directory names never descended into (exact match of the last
	// path component, case-sensitive).
	SkipFolders []string `yaml:"skip_folders"`

	// Extension lists per category. Extensions carry the leading dot.
	Categories map[models.Category][]string `yaml:"categories"`

	// Path fragments that mark an executable as game content.
	GamePaths []string `yaml:"game_paths"`

	// Temp/cache folder name fragments, temp extensions and per-user
	// cache path fragments.
	TempPatterns   []string `yaml:"temp_patterns"`
	TempExtensions []string `yaml:"temp_extensions"`
	UserCachePaths []string `yaml:"user_cache_paths"`

	// Path fragments marking system folders skipped by the empty-folder
	// walk.
	SystemFolderFragments []string `yaml:"system_folder_fragments"`

	skipSet     map[string]bool
	extCategory map[string]models.Category
	tempExtSet  map[string]bool
}

// Default returns the built-in rule set.
func Default() *Set {
	s := &Set{
		SkipFolders: []string{
			"$Recycle.Bin",
			"System Volume Information",
			"Windows",
			"ProgramData",
			"Program Files",
			"Program Files (x86)",
			"Recovery",
			"PerfLogs",
			"$WinREAgent",
			"Config.Msi",
			"Documents and Settings",
			"MSOCache",
			"Intel",
			"AMD",
			"NVIDIA",
			"AppData",
		},
		Categories: map[models.Category][]string{
			models.CategoryVideo:    {".mp4", ".mkv", ".avi", ".mov", ".wmv", ".flv", ".webm", ".m4v", ".mpeg", ".mpg", ".3gp"},
			models.CategoryAudio:    {".mp3", ".wav", ".flac", ".aac", ".ogg", ".wma", ".m4a", ".opus"},
			models.CategoryImage:    {".jpg", ".jpeg", ".png", ".gif", ".bmp", ".webp", ".svg", ".ico", ".tiff", ".raw", ".psd"},
			models.CategoryDocument: {".pdf", ".doc", ".docx", ".xls", ".xlsx", ".ppt", ".pptx", ".txt", ".rtf", ".odt", ".ods"},
			models.CategoryArchive:  {".zip", ".rar", ".7z", ".tar", ".gz", ".bz2", ".xz", ".iso"},
			models.CategoryCode:     {".py", ".js", ".ts", ".java", ".cpp", ".c", ".h", ".cs", ".go", ".rs", ".rb", ".php"},
		},
		GamePaths: []string{
			"steam",
			"steamapps",
			"epic games",
			"origin",
			"ubisoft",
			"games",
			"riot games",
			"battle.net",
			"gog galaxy",
			"xbox",
		},
		TempPatterns: []string{
			"temp", "tmp", "cache", "caches", ".cache",
			"temporary", "__pycache__", "node_modules",
			".npm", ".yarn", ".nuget", "obj", "bin",
			"thumbs.db", "desktop.ini", ".ds_store",
		},
		TempExtensions: []string{
			".tmp", ".temp", ".bak", ".old", ".orig",
			".log", ".dmp", ".crash", ".swp", ".swo",
		},
		UserCachePaths: []string{
			`AppData\Local\Temp`,
			`AppData\Local\Microsoft\Windows\Temporary Internet Files`,
			`AppData\Local\Microsoft\Windows\INetCache`,
			`AppData\Local\Microsoft\Windows\WebCache`,
			`AppData\Local\Google\Chrome\User Data\Default\Cache`,
			`AppData\Local\Mozilla\Firefox\Profiles`,
		},
		SystemFolderFragments: []string{"$recycle", "system volume"},
	}
	s.compile()
	return s
}

// Load reads a YAML rule file and merges it over the defaults. Tables
// present in the file replace the corresponding default table wholesale;
// absent tables keep their defaults. An empty path returns the defaults,
// a path that cannot be read is an error.
func Load(path string) (*Set, error) {
	s := Default()
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Decode into a fresh Set so only the tables the file names are
	// non-nil; unmarshaling into the defaults would merge maps per key.
	var override Set
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, err
	}

	if override.SkipFolders != nil {
		s.SkipFolders = override.SkipFolders
	}
	if override.Categories != nil {
		s.Categories = override.Categories
	}
	if override.GamePaths != nil {
		s.GamePaths = override.GamePaths
	}
	if override.TempPatterns != nil {
		s.TempPatterns = override.TempPatterns
	}
	if override.TempExtensions != nil {
		s.TempExtensions = override.TempExtensions
	}
	if override.UserCachePaths != nil {
		s.UserCachePaths = override.UserCachePaths
	}
	if override.SystemFolderFragments != nil {
		s.SystemFolderFragments = override.SystemFolderFragments
	}
	s.compile()
	return s, nil
}

// compile rebuilds the lookup maps after the public tables change.
func (s *Set) compile() {
	s.skipSet = make(map[string]bool, len(s.SkipFolders))
	for _, name := range s.SkipFolders {
		s.skipSet[name] = true
	}

	s.extCategory = make(map[string]models.Category)
	for cat, exts := range s.Categories {
		for _, ext := range exts {
			s.extCategory[strings.ToLower(ext)] = cat
		}
	}

	s.tempExtSet = make(map[string]bool, len(s.TempExtensions))
	for _, ext := range s.TempExtensions {
		s.tempExtSet[strings.ToLower(ext)] = true
	}
}

// SkipFolder reports whether a directory with this name is never
// descended into.
func (s *Set) SkipFolder(name string) bool {
	return s.skipSet[name]
}

// CategoryForExtension looks up the category table. The extension must
// include the leading dot; matching is case-insensitive.
func (s *Set) CategoryForExtension(ext string) (models.Category, bool) {
	cat, ok := s.extCategory[strings.ToLower(ext)]
	return cat, ok
}

// IsTempExtension reports whether ext is a known temp-file extension.
func (s *Set) IsTempExtension(ext string) bool {
	return s.tempExtSet[strings.ToLower(ext)]
}

// IsSystemPath reports whether path contains a system-folder fragment.
// Matching is case-insensitive.
func (s *Set) IsSystemPath(path string) bool {
	lower := strings.ToLower(path)
	for _, frag := range s.SystemFolderFragments {
		if strings.Contains(lower, frag) {
			return true
		}
	}
	return false
}
