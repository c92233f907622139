package scan

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/promptpack/promptpack/internal/policy"
	"github.com/promptpack/promptpack/internal/types"
	"github.com/promptpack/promptpack/internal/utils"
)

const readErrorContentFormat = "# Error reading file: %v"

// LoadContents reads every included file and computes its display statistics.
// A file that fails to read after inclusion was already decided stays in the
// result as a placeholder carrying an inline error marker.
func LoadContents(includedFiles []policy.Candidate) []*types.FileResult {
	results := make([]*types.FileResult, 0, len(includedFiles))
	for _, includedFile := range includedFiles {
		results = append(results, loadOne(includedFile))
	}
	return results
}

func loadOne(includedFile policy.Candidate) *types.FileResult {
	rawContent, readError := os.ReadFile(includedFile.AbsolutePath)
	if readError != nil {
		return &types.FileResult{
			RelativePath: includedFile.RelativePath,
			AbsolutePath: includedFile.AbsolutePath,
			Content:      fmt.Sprintf(readErrorContentFormat, readError),
			LanguageHint: "plaintext",
			ReadError:    true,
		}
	}

	// Invalid byte sequences are dropped rather than failing the file.
	textContent := strings.ToValidUTF8(string(rawContent), "")
	lineCount := 0
	if textContent != "" {
		lineCount = strings.Count(textContent, "\n") + 1
	}

	return &types.FileResult{
		RelativePath: includedFile.RelativePath,
		AbsolutePath: includedFile.AbsolutePath,
		Content:      textContent,
		SizeBytes:    int64(len(rawContent)),
		LineCount:    lineCount,
		CharCount:    utf8.RuneCountInString(textContent),
		LanguageHint: utils.LanguageHintFor(includedFile.Name),
	}
}

// StatsByPath projects loaded results into the per-path statistics map the
// tree aggregation attaches to file nodes.
func StatsByPath(files []*types.FileResult) map[string]*types.FileStats {
	statsByPath := make(map[string]*types.FileStats, len(files))
	for _, file := range files {
		statsByPath[file.RelativePath] = &types.FileStats{
			LineCount:  file.LineCount,
			CharCount:  file.CharCount,
			Percentage: file.Percentage,
			TokenCount: file.TokenCount,
		}
	}
	return statsByPath
}
