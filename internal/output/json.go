package output

import (
	"encoding/json"

	"github.com/promptpack/promptpack/internal/types"
)

const (
	indentPrefix = ""
	indentSpacer = "  "
)

type jsonProjectInfo struct {
	RootDirectory string   `json:"root_dir"`
	TotalFiles    int      `json:"total_files"`
	TotalLines    int      `json:"total_lines"`
	TotalChars    int      `json:"total_chars"`
	ScannedCount  int      `json:"scanned_count"`
	TechStack     []string `json:"tech_stack"`
	TotalTokens   int      `json:"total_tokens,omitempty"`
	TokenModel    string   `json:"token_model,omitempty"`
}

type jsonFileEntry struct {
	Path       string  `json:"path"`
	Lines      int     `json:"lines"`
	Chars      int     `json:"chars"`
	SizeBytes  int64   `json:"size_bytes"`
	Percentage float64 `json:"percentage"`
	Language   string  `json:"language"`
	Tokens     int     `json:"tokens,omitempty"`
}

type jsonReport struct {
	ProjectInfo jsonProjectInfo `json:"project_info"`
	Files       []jsonFileEntry `json:"files"`
}

// FormatJSON renders the machine-readable report: project metadata plus
// per-file statistics, without file contents.
func FormatJSON(report *types.Report) (string, error) {
	document := jsonReport{
		ProjectInfo: jsonProjectInfo{
			RootDirectory: report.RootPath,
			TotalFiles:    len(report.IncludedFiles),
			TotalLines:    report.TotalLines(),
			TotalChars:    report.TotalChars(),
			ScannedCount:  report.TotalScanned,
			TechStack:     append([]string{}, report.TechStack...),
			TotalTokens:   report.TotalTokens(),
			TokenModel:    report.TokenModel,
		},
		Files: make([]jsonFileEntry, 0, len(report.IncludedFiles)),
	}
	for _, file := range report.IncludedFiles {
		document.Files = append(document.Files, jsonFileEntry{
			Path:       file.RelativePath,
			Lines:      file.LineCount,
			Chars:      file.CharCount,
			SizeBytes:  file.SizeBytes,
			Percentage: file.Percentage,
			Language:   file.LanguageHint,
			Tokens:     file.TokenCount,
		})
	}

	encoded, jsonEncodeError := json.MarshalIndent(document, indentPrefix, indentSpacer)
	if jsonEncodeError != nil {
		return "", jsonEncodeError
	}
	return string(encoded), nil
}
