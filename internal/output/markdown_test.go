package output_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/promptpack/promptpack/internal/output"
	"github.com/promptpack/promptpack/internal/types"
)

func sampleReport() *types.Report {
	return &types.Report{
		RootPath:     "/project",
		TotalScanned: 12,
		IncludedFiles: []*types.FileResult{
			{
				RelativePath: "README.md",
				Content:      "# project\n",
				SizeBytes:    10,
				LineCount:    1,
				CharCount:    10,
				Percentage:   40,
				LanguageHint: "markdown",
			},
			{
				RelativePath: "main.go",
				Content:      "package main\n",
				SizeBytes:    15,
				LineCount:    1,
				CharCount:    15,
				Percentage:   60,
				LanguageHint: "go",
			},
		},
		Tree: &types.TreeNode{
			Name:        "project",
			IsDirectory: true,
			Included:    true,
			Children: []*types.TreeNode{
				{Name: "README.md", RelativePath: "README.md", Included: true, Stats: &types.FileStats{LineCount: 1, CharCount: 10, Percentage: 40}},
				{Name: "main.go", RelativePath: "main.go", Included: true, Stats: &types.FileStats{LineCount: 1, CharCount: 15, Percentage: 60}},
				{Name: "skipped.bin", RelativePath: "skipped.bin", Included: false},
			},
		},
		TechStack:      []string{"Go"},
		KeyDirectories: []string{"cmd/app"},
	}
}

// TestFormatSummary verifies the statistics view: legend, markers, blocks.
func TestFormatSummary(testingHandle *testing.T) {
	summary := output.FormatSummary(sampleReport())

	expectedFragments := []string{
		"# 📁 Project Structure & Statistics",
		"Legend: ✅=Included, ❌=Excluded, 🔲=% Size (Max 10)",
		"├── README.md ✅ (1L, 10C) [~40.00%]",
		"└── skipped.bin ❌",
		"**Total Files:** 2 of 12 scanned",
		"**Total Characters:** 25 (25b)",
		"**Technology Stack:** Go",
		"🔲🔲🔲🔲",
	}
	for _, fragment := range expectedFragments {
		if !strings.Contains(summary, fragment) {
			testingHandle.Errorf("summary missing %q\n%s", fragment, summary)
		}
	}
}

// TestFormatFull verifies the content document: headers, fenced code, and the
// omission of excluded leaf entries from the plain tree.
func TestFormatFull(testingHandle *testing.T) {
	full := output.FormatFull(sampleReport())

	expectedFragments := []string{
		"# 📁 Project Context & Codebase Analysis",
		"## 📄 Source Code & Configuration Files",
		"### 📖 `/README.md` - Project Documentation",
		"### 🐹 `/main.go` - Go Module",
		"```go\npackage main\n",
		"**File Info:** 1 lines • 15 chars • ~60.00% of codebase",
		"- **Size:** ~25b",
	}
	for _, fragment := range expectedFragments {
		if !strings.Contains(full, fragment) {
			testingHandle.Errorf("full output missing %q", fragment)
		}
	}
	if strings.Contains(full, "skipped.bin") {
		testingHandle.Errorf("plain tree must omit excluded leaf entries")
	}
	if strings.Contains(full, "🔲") {
		testingHandle.Errorf("full output must not carry percentage blocks")
	}
}

// TestFormatJSON verifies the machine-readable rendering round-trips.
func TestFormatJSON(testingHandle *testing.T) {
	encoded, encodeError := output.FormatJSON(sampleReport())
	if encodeError != nil {
		testingHandle.Fatalf("encode: %v", encodeError)
	}

	var decoded struct {
		ProjectInfo struct {
			RootDirectory string   `json:"root_dir"`
			TotalFiles    int      `json:"total_files"`
			ScannedCount  int      `json:"scanned_count"`
			TechStack     []string `json:"tech_stack"`
		} `json:"project_info"`
		Files []struct {
			Path      string `json:"path"`
			SizeBytes int64  `json:"size_bytes"`
			Language  string `json:"language"`
		} `json:"files"`
	}
	if decodeError := json.Unmarshal([]byte(encoded), &decoded); decodeError != nil {
		testingHandle.Fatalf("decode: %v", decodeError)
	}

	if decoded.ProjectInfo.RootDirectory != "/project" || decoded.ProjectInfo.TotalFiles != 2 || decoded.ProjectInfo.ScannedCount != 12 {
		testingHandle.Errorf("project info mismatch: %+v", decoded.ProjectInfo)
	}
	if len(decoded.Files) != 2 || decoded.Files[1].Path != "main.go" || decoded.Files[1].Language != "go" {
		testingHandle.Errorf("file entries mismatch: %+v", decoded.Files)
	}
	if decoded.Files[0].SizeBytes != 10 || decoded.Files[1].SizeBytes != 15 {
		testingHandle.Errorf("expected on-disk sizes in file entries: %+v", decoded.Files)
	}
	if strings.Contains(encoded, "package main") {
		testingHandle.Errorf("JSON output must not embed file contents")
	}
}
