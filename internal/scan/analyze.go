package scan

import (
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/promptpack/promptpack/internal/config"
	"github.com/promptpack/promptpack/internal/types"
	"github.com/promptpack/promptpack/internal/utils"
)

// numberedPrefixExpression recognizes filenames ordered by a numeric prefix
// such as "01_intro.md".
var numberedPrefixExpression = regexp.MustCompile(`^(\d+)_`)

// BuildReport computes percentages, orders the included files, derives the
// tech stack and key directories, and assembles the final report consumed by
// the renderers. The caller attaches the aggregated tree afterwards, once the
// per-file statistics exist to annotate it.
func BuildReport(scanConfig *config.ScanConfig, files []*types.FileResult, totalScanned int, elapsed time.Duration, tokenModel string) *types.Report {
	computePercentages(files)
	orderedFiles := orderFiles(scanConfig, files)

	return &types.Report{
		RootPath:       scanConfig.Root,
		TotalScanned:   totalScanned,
		IncludedFiles:  orderedFiles,
		TechStack:      detectTechStack(orderedFiles),
		KeyDirectories: findKeyDirectories(orderedFiles),
		ElapsedSeconds: elapsed.Seconds(),
		TokenModel:     tokenModel,
	}
}

func computePercentages(files []*types.FileResult) {
	totalChars := 0
	for _, file := range files {
		totalChars += file.CharCount
	}
	if totalChars == 0 {
		return
	}
	for _, file := range files {
		file.Percentage = float64(file.CharCount) / float64(totalChars) * 100
	}
}

// orderFiles picks the ordering mode: alphabetical when requested, numeric
// when most filenames carry a numeric prefix, relevance otherwise.
func orderFiles(scanConfig *config.ScanConfig, files []*types.FileResult) []*types.FileResult {
	ordered := append([]*types.FileResult{}, files...)

	if scanConfig.SortAlphabetically {
		sort.SliceStable(ordered, func(firstIndex, secondIndex int) bool {
			return lowerBase(ordered[firstIndex]) < lowerBase(ordered[secondIndex])
		})
		return ordered
	}

	numberedCount := 0
	for _, file := range files {
		if numberedPrefixExpression.MatchString(path.Base(file.RelativePath)) {
			numberedCount++
		}
	}
	if numberedCount*2 > len(files) {
		sort.SliceStable(ordered, func(firstIndex, secondIndex int) bool {
			return numericSortKey(ordered[firstIndex]) < numericSortKey(ordered[secondIndex])
		})
		return ordered
	}

	sort.SliceStable(ordered, func(firstIndex, secondIndex int) bool {
		firstScore := relevanceScore(ordered[firstIndex])
		secondScore := relevanceScore(ordered[secondIndex])
		if firstScore != secondScore {
			return firstScore > secondScore
		}
		return lowerBase(ordered[firstIndex]) < lowerBase(ordered[secondIndex])
	})
	return ordered
}

func lowerBase(file *types.FileResult) string {
	return strings.ToLower(path.Base(file.RelativePath))
}

// numericSortKey orders numbered files by their prefix value, pushing
// unnumbered files behind them alphabetically.
func numericSortKey(file *types.FileResult) string {
	baseName := path.Base(file.RelativePath)
	match := numberedPrefixExpression.FindStringSubmatch(baseName)
	if match == nil {
		return "1~" + strings.ToLower(baseName)
	}
	numericValue, parseError := strconv.Atoi(match[1])
	if parseError != nil {
		return "1~" + strings.ToLower(baseName)
	}
	return "0~" + padNumber(numericValue) + strings.ToLower(baseName)
}

func padNumber(value int) string {
	digits := strconv.Itoa(value)
	if len(digits) >= 10 {
		return digits
	}
	return strings.Repeat("0", 10-len(digits)) + digits
}

// relevanceScore ranks a file by how useful it is as prompt context: project
// documentation and entrypoints first, deeper and test files later.
func relevanceScore(file *types.FileResult) float64 {
	score := 0.0
	baseName := strings.ToLower(path.Base(file.RelativePath))
	extension := utils.ExtensionLower(baseName)
	segments := utils.PathSegments(file.RelativePath)

	switch {
	case baseName == "readme.md":
		score += 1000
	case baseName == "package.json" || baseName == "pyproject.toml" || baseName == "cargo.toml" || baseName == "go.mod":
		score += 900
	case utils.ContainsString([]string{"main.tsx", "main.ts", "main.js", "main.py", "main.go", "main.rs"}, baseName):
		score += 800
	case utils.ContainsString([]string{"app.tsx", "app.ts", "app.js", "app.py", "app.go", "app.rs"}, baseName):
		score += 750
	case utils.ContainsString([]string{"index.tsx", "index.ts", "index.js", "index.py"}, baseName):
		score += 700
	case strings.Contains(baseName, "main") || strings.Contains(baseName, "app") || strings.Contains(baseName, "index"):
		score += 600
	}

	extensionScores := map[string]float64{
		".tsx": 100, ".ts": 95, ".jsx": 90, ".js": 85,
		".py": 80, ".go": 75, ".rs": 70, ".java": 65,
		".kt": 60, ".swift": 55, ".rb": 50, ".php": 45,
		".c": 40, ".cpp": 35, ".h": 30, ".hpp": 25,
	}
	score += extensionScores[extension]

	specialNameScores := map[string]float64{
		"dockerfile": 50, "docker-compose.yml": 50,
		"makefile": 40, "rakefile": 40, "gemfile": 40,
		"requirements.txt": 45, "setup.py": 45, "setup.cfg": 40,
	}
	score += specialNameScores[baseName]

	// Prefer files closer to the root.
	score -= float64(len(segments)-1) * 10

	loweredContent := strings.ToLower(file.Content)
	switch extension {
	case ".tsx", ".ts", ".jsx", ".js":
		if strings.Contains(loweredContent, "react.fc") || strings.Contains(loweredContent, "usestate") || strings.Contains(loweredContent, "useeffect") {
			score += 50
		}
		if strings.Contains(loweredContent, "export default") {
			score += 30
		}
		if strings.Contains(loweredContent, "function") || strings.Contains(loweredContent, "class") || strings.Contains(loweredContent, "const") {
			score += 20
		}
	case ".py":
		if strings.Contains(loweredContent, "def main") || strings.Contains(loweredContent, "if __name__") {
			score += 50
		}
		if strings.Contains(loweredContent, "class ") || strings.Contains(loweredContent, "def ") {
			score += 30
		}
	}

	switch {
	case file.LineCount >= 50 && file.LineCount <= 500:
		score += 20
	case file.LineCount >= 10 && file.LineCount < 50:
		score += 10
	case file.LineCount > 500:
		score -= 10
	}

	for _, segment := range segments {
		if utils.ContainsString([]string{"src", "lib", "app", "components"}, segment) {
			score += 25
			break
		}
	}
	for _, segment := range segments {
		if utils.ContainsString([]string{"test", "tests", "__tests__"}, segment) {
			score -= 50
			break
		}
	}

	return score
}

// techStackByExtension maps extensions to the technology shown in the report
// overview.
var techStackByExtension = map[string]string{
	".tsx": "TypeScript", ".ts": "TypeScript",
	".jsx": "JavaScript", ".js": "JavaScript",
	".py": "Python", ".go": "Go", ".rs": "Rust",
	".java": "Java", ".kt": "Kotlin", ".cs": "C#",
	".rb": "Ruby", ".php": "PHP",
}

func detectTechStack(files []*types.FileResult) []string {
	seen := make(map[string]struct{})
	var stack []string
	for _, file := range files {
		technology, known := techStackByExtension[utils.ExtensionLower(file.RelativePath)]
		if !known {
			continue
		}
		if _, present := seen[technology]; present {
			continue
		}
		seen[technology] = struct{}{}
		stack = append(stack, technology)
	}
	sort.Strings(stack)
	return stack
}

// findKeyDirectories returns up to ten directories ranked by how many
// included files they hold directly.
func findKeyDirectories(files []*types.FileResult) []string {
	countsByDirectory := make(map[string]int)
	for _, file := range files {
		parentDirectory := path.Dir(file.RelativePath)
		if parentDirectory == "." {
			continue
		}
		countsByDirectory[parentDirectory]++
	}

	directories := make([]string, 0, len(countsByDirectory))
	for directory := range countsByDirectory {
		directories = append(directories, directory)
	}
	sort.Slice(directories, func(firstIndex, secondIndex int) bool {
		firstCount := countsByDirectory[directories[firstIndex]]
		secondCount := countsByDirectory[directories[secondIndex]]
		if firstCount != secondCount {
			return firstCount > secondCount
		}
		return directories[firstIndex] < directories[secondIndex]
	})
	if len(directories) > 10 {
		directories = directories[:10]
	}
	return directories
}
