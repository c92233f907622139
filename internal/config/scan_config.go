package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/promptpack/promptpack/internal/types"
	"github.com/promptpack/promptpack/internal/utils"
)

// ScanConfig is the immutable configuration consulted by the inclusion policy
// and the directory walker. It is built once per run and safely shareable
// across concurrent rule evaluations.
type ScanConfig struct {
	Root          string
	GitMode       types.GitMode
	IncludeBinary bool
	// MaxSizeBytes of zero means unlimited.
	MaxSizeBytes int64
	// MaxDepth of zero means unlimited relative path depth.
	MaxDepth           int
	SortAlphabetically bool
	IncludeOnly        bool

	ExcludedDirNames map[string]struct{}
	ExcludedPatterns []string
	IncludedPatterns []string

	// TypeOverrides maps a lower-cased extension (dot included) to whether
	// files of that extension bypass the default denylist.
	TypeOverrides map[string]bool

	AlwaysIncludeNames map[string]struct{}
	AlwaysSkipNames    map[string]struct{}
}

// ScanOptions collects the raw CLI-level knobs that build a ScanConfig.
type ScanOptions struct {
	RootPath           string
	GitMode            types.GitMode
	IncludeBinary      bool
	MaxSizeValue       string
	MaxDepth           int
	SortAlphabetically bool
	IncludeOnly        bool
	ExcludePatterns    []string
	IncludePatterns    []string
	ExcludeExtensions  []string
	IncludeExtensions  []string
	TypeOverrides      map[string]bool
}

// overridableExtensions enumerates the denylisted data-format extensions that
// accept per-type override flags.
var overridableExtensions = []string{
	".json", ".jsonc", ".yaml", ".yml", ".xml", ".html", ".htm",
	".css", ".sql", ".csv", ".tsv", ".md", ".markdown", ".rst",
}

// NewScanConfig validates options, resolves the root to an absolute path, and
// assembles the immutable configuration.
func NewScanConfig(options ScanOptions) (*ScanConfig, error) {
	absoluteRoot, absoluteError := filepath.Abs(options.RootPath)
	if absoluteError != nil {
		return nil, fmt.Errorf("resolving root %s: %w", options.RootPath, absoluteError)
	}
	rootInfo, statError := os.Stat(absoluteRoot)
	if statError != nil {
		return nil, fmt.Errorf("root directory %s: %w", options.RootPath, statError)
	}
	if !rootInfo.IsDir() {
		return nil, fmt.Errorf("root path %s is not a directory", options.RootPath)
	}

	maxSizeBytes, sizeError := utils.ParseSizeLimit(options.MaxSizeValue)
	if sizeError != nil {
		return nil, sizeError
	}

	excludedPatterns := utils.DeduplicatePatterns(options.ExcludePatterns)
	includedPatterns := utils.DeduplicatePatterns(options.IncludePatterns)
	for _, extension := range options.ExcludeExtensions {
		excludedPatterns = appendPattern(excludedPatterns, extensionPattern(extension))
	}
	for _, extension := range options.IncludeExtensions {
		includedPatterns = appendPattern(includedPatterns, extensionPattern(extension))
	}

	typeOverrides := make(map[string]bool, len(overridableExtensions))
	for _, extension := range overridableExtensions {
		typeOverrides[extension] = false
	}
	for extension, enabled := range options.TypeOverrides {
		typeOverrides[normalizeExtension(extension)] = enabled
	}

	return &ScanConfig{
		Root:               absoluteRoot,
		GitMode:            options.GitMode,
		IncludeBinary:      options.IncludeBinary,
		MaxSizeBytes:       maxSizeBytes,
		MaxDepth:           options.MaxDepth,
		SortAlphabetically: options.SortAlphabetically,
		IncludeOnly:        options.IncludeOnly,
		ExcludedDirNames:   DefaultExcludedDirectoryNames(),
		ExcludedPatterns:   excludedPatterns,
		IncludedPatterns:   includedPatterns,
		TypeOverrides:      typeOverrides,
		AlwaysIncludeNames: DefaultAlwaysIncludeNames(),
		AlwaysSkipNames:    DefaultAlwaysSkipNames(),
	}, nil
}

// TypeOverridden reports whether files with the given extension bypass the
// default denylist.
func (scanConfig *ScanConfig) TypeOverridden(extension string) bool {
	return scanConfig.TypeOverrides[strings.ToLower(extension)]
}

func normalizeExtension(extension string) string {
	lowered := strings.ToLower(strings.TrimSpace(extension))
	if lowered == "" || strings.HasPrefix(lowered, ".") {
		return lowered
	}
	return "." + lowered
}

func extensionPattern(extension string) string {
	return "*" + normalizeExtension(extension)
}

func appendPattern(patterns []string, pattern string) []string {
	if utils.ContainsString(patterns, pattern) {
		return patterns
	}
	return append(patterns, pattern)
}
