package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/promptpack/promptpack/internal/types"
	"github.com/promptpack/promptpack/internal/utils"
)

// documentationNameIndicators flags root directory names that are clearly
// documentation trees, such as "docs" or "user-guide".
var documentationNameIndicators = []string{
	"docs", "documentation", "doc", "guide", "manual", "readme", "wiki", "help",
}

// targetedExtraExtensions lists the data and script extensions enabled when the
// scan targets a specific subdirectory rather than the whole project. Pointing
// the tool at one directory signals its contents matter regardless of type.
var targetedExtraExtensions = []string{
	".txt", ".log", ".sh", ".bash", ".zsh", ".fish", ".ps1", ".bat", ".cmd",
	".ini", ".cfg", ".conf", ".properties", ".toml", ".lock",
}

// markdownSampleLimit caps how many files the markdown-share probe inspects.
const markdownSampleLimit = 100

var markdownExtensions = []string{".md", ".markdown", ".rst"}

// AutoTypeOverrides derives implicit type overrides from the scan root.
// Targeted subdirectory scans enable structured data and script types, and
// documentation-heavy roots enable markdown, without requiring the per-type
// flags. Explicit flags are merged on top by the caller, so this only ever
// widens the inclusion set.
func AutoTypeOverrides(rootPath string, markdownRequested bool, gitMode types.GitMode) map[string]bool {
	overrides := make(map[string]bool)

	absoluteRoot, absoluteError := filepath.Abs(rootPath)
	if absoluteError != nil {
		return overrides
	}

	targeted := isTargetedDirectory(absoluteRoot)
	if targeted {
		for _, extension := range []string{".json", ".jsonc", ".yaml", ".yml"} {
			overrides[extension] = true
		}
		for _, extension := range targetedExtraExtensions {
			overrides[extension] = true
		}
	}

	if targeted || shouldAutoIncludeMarkdown(absoluteRoot, markdownRequested, gitMode) {
		for _, extension := range markdownExtensions {
			overrides[extension] = true
		}
	}

	return overrides
}

// isTargetedDirectory reports whether the scan root is an existing directory
// other than the current working directory.
func isTargetedDirectory(absoluteRoot string) bool {
	workingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return false
	}
	if absoluteRoot == workingDirectory {
		return false
	}
	rootInfo, statError := os.Stat(absoluteRoot)
	return statError == nil && rootInfo.IsDir()
}

// shouldAutoIncludeMarkdown detects documentation-heavy roots: either the root
// directory name carries a documentation indicator, or a sample of its files
// is mostly markdown. Suppressed when markdown is already requested or when
// git integration is fully disabled.
func shouldAutoIncludeMarkdown(absoluteRoot string, markdownRequested bool, gitMode types.GitMode) bool {
	if markdownRequested || gitMode == types.GitModeNone {
		return false
	}

	loweredName := strings.ToLower(filepath.Base(absoluteRoot))
	for _, indicator := range documentationNameIndicators {
		if strings.Contains(loweredName, indicator) {
			return true
		}
	}

	totalSampled := 0
	markdownSampled := 0
	walkError := filepath.WalkDir(absoluteRoot, func(entryPath string, entry fs.DirEntry, entryError error) error {
		if entryError != nil || entry.IsDir() {
			return nil
		}
		totalSampled++
		if utils.ContainsString(markdownExtensions, utils.ExtensionLower(entry.Name())) {
			markdownSampled++
		}
		if totalSampled >= markdownSampleLimit {
			return fs.SkipAll
		}
		return nil
	})
	if walkError != nil {
		return false
	}
	return totalSampled > 0 && markdownSampled*2 > totalSampled
}
