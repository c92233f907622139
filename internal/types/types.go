// Package types defines every cross-package data structure used by the promptpack CLI.
package types

const (
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

// GitMode selects how much version-control data participates in filtering.
type GitMode int

const (
	// GitModeNone ignores both .gitignore and tracking data.
	GitModeNone GitMode = iota
	// GitModeGitignoreOnly applies .gitignore patterns but not tracking.
	GitModeGitignoreOnly
	// GitModeFull applies .gitignore patterns and the tracked-file set.
	GitModeFull
)

// String returns the flag-level name of the mode.
func (mode GitMode) String() string {
	switch mode {
	case GitModeGitignoreOnly:
		return "gitignore"
	case GitModeFull:
		return "full"
	default:
		return "none"
	}
}

// UsesGitignore reports whether .gitignore patterns apply under this mode.
func (mode GitMode) UsesGitignore() bool {
	return mode == GitModeGitignoreOnly || mode == GitModeFull
}

// UsesTracking reports whether the tracked-file set applies under this mode.
func (mode GitMode) UsesTracking() bool {
	return mode == GitModeFull
}

// InclusionDecision is the outcome of evaluating one file against the rule chain.
// Reason is diagnostic only and never consumed semantically downstream.
type InclusionDecision struct {
	Included bool
	Reason   string
}

// FileStats carries the display statistics attached to an included file node.
type FileStats struct {
	LineCount  int
	CharCount  int
	Percentage float64
	TokenCount int
}

// TreeNode represents one filesystem entry relative to the scan root.
// Directory inclusion is derived bottom-up and never set independently.
type TreeNode struct {
	Name         string
	RelativePath string
	IsDirectory  bool
	Included     bool
	ErrorMessage string
	Children     []*TreeNode
	Stats        *FileStats
}

// FileResult represents a single included file after its content was read.
type FileResult struct {
	RelativePath string
	AbsolutePath string
	Content      string
	SizeBytes    int64
	LineCount    int
	CharCount    int
	Percentage   float64
	LanguageHint string
	TokenCount   int
	ReadError    bool
}

// Report is the complete analysis produced by one run, consumed by renderers.
type Report struct {
	RootPath       string
	TotalScanned   int
	IncludedFiles  []*FileResult
	Tree           *TreeNode
	TechStack      []string
	KeyDirectories []string
	ElapsedSeconds float64
	TokenModel     string
}

// TotalLines sums line counts across the included files.
func (report *Report) TotalLines() int {
	total := 0
	for _, file := range report.IncludedFiles {
		total += file.LineCount
	}
	return total
}

// TotalChars sums character counts across the included files.
func (report *Report) TotalChars() int {
	total := 0
	for _, file := range report.IncludedFiles {
		total += file.CharCount
	}
	return total
}

// TotalTokens sums token counts across the included files.
func (report *Report) TotalTokens() int {
	total := 0
	for _, file := range report.IncludedFiles {
		total += file.TokenCount
	}
	return total
}
