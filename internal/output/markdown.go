// Package output renders reports as Markdown or JSON and routes the result
// to a file, standard output, or the clipboard.
package output

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/promptpack/promptpack/internal/types"
	"github.com/promptpack/promptpack/internal/utils"
)

const (
	includedMarker = "✅"
	excludedMarker = "❌"
	blockCharacter = "🔲"
	maximumBlocks  = 10

	summaryTitle       = "# 📁 Project Structure & Statistics"
	fullTitle          = "# 📁 Project Context & Codebase Analysis"
	quickOverviewHdr   = "## 🎯 Quick Overview"
	treeStatisticsHdr  = "## 🏗️ Project Tree & Statistics"
	summaryStatsHdr    = "## 📊 Summary Statistics"
	keyInsightsHdr     = "## 🔍 Key Insights"
	projectOverviewHdr = "## 🎯 Project Overview"
	quickStatsHdr      = "### 📊 Quick Stats"
	projectStructHdr   = "### 🏗️ Project Structure"
	fullInsightsHdr    = "### 🔍 Key Insights"
	sourceFilesHdr     = "## 📄 Source Code & Configuration Files"

	unknownTechStack = "Unknown"
)

// FormatSummary renders the statistics view: the full annotated tree with
// percentage blocks plus aggregate counts. This is what lands on stderr next
// to the packaged content.
func FormatSummary(report *types.Report) string {
	var buffer bytes.Buffer

	buffer.WriteString(summaryTitle + "\n")
	fmt.Fprintf(&buffer, "*Directory: %s*\n\n", displayPath(report.RootPath))

	buffer.WriteString(quickOverviewHdr + "\n")
	fmt.Fprintf(&buffer, "*%s project with %s source files*\n\n", techStackLabel(report), utils.GroupDigits(len(report.IncludedFiles)))

	fmt.Fprintf(&buffer, "Legend: %s=Included, %s=Excluded, %s=%% Size (Max %d)\n\n", includedMarker, excludedMarker, blockCharacter, maximumBlocks)

	buffer.WriteString(treeStatisticsHdr + "\n")
	buffer.WriteString("```\n")
	buffer.WriteString(renderTree(report.Tree, true))
	buffer.WriteString("```\n\n")

	totalChars := report.TotalChars()
	buffer.WriteString(summaryStatsHdr + "\n")
	fmt.Fprintf(&buffer, "*   **Total Files:** %s of %s scanned\n", utils.GroupDigits(len(report.IncludedFiles)), utils.GroupDigits(report.TotalScanned))
	fmt.Fprintf(&buffer, "*   **Total Lines:** %s\n", utils.GroupDigits(report.TotalLines()))
	fmt.Fprintf(&buffer, "*   **Total Characters:** %s (%s)\n", utils.GroupDigits(totalChars), utils.FormatFileSize(int64(totalChars)))
	if report.TokenModel != "" {
		fmt.Fprintf(&buffer, "*   **Total Tokens:** %s (model: %s)\n", utils.GroupDigits(report.TotalTokens()), report.TokenModel)
	}
	buffer.WriteString("\n")

	buffer.WriteString(keyInsightsHdr + "\n")
	writeInsights(&buffer, report)
	buffer.WriteString("\n")

	return buffer.String()
}

// FormatFull renders the complete context document: overview, plain tree, and
// every included file's content in a fenced code block.
func FormatFull(report *types.Report) string {
	var buffer bytes.Buffer

	buffer.WriteString(fullTitle + "\n")
	fmt.Fprintf(&buffer, "*Project Directory: `%s`*\n\n", displayPath(report.RootPath))

	buffer.WriteString(projectOverviewHdr + "\n")
	fmt.Fprintf(&buffer, "*This is a **%s** project with **%s source files** and **%s lines of code**.*\n\n",
		techStackLabel(report), utils.GroupDigits(len(report.IncludedFiles)), utils.GroupDigits(report.TotalLines()))

	buffer.WriteString(quickStatsHdr + "\n")
	fmt.Fprintf(&buffer, "- **Files:** %s\n", utils.GroupDigits(len(report.IncludedFiles)))
	fmt.Fprintf(&buffer, "- **Lines:** %s\n", utils.GroupDigits(report.TotalLines()))
	fmt.Fprintf(&buffer, "- **Size:** ~%s\n", utils.FormatFileSize(int64(report.TotalChars())))
	fmt.Fprintf(&buffer, "- **Scanned:** %s items\n", utils.GroupDigits(report.TotalScanned))
	if report.TokenModel != "" {
		fmt.Fprintf(&buffer, "- **Tokens:** %s (model: %s)\n", utils.GroupDigits(report.TotalTokens()), report.TokenModel)
	}
	buffer.WriteString("\n")

	buffer.WriteString(projectStructHdr + "\n")
	buffer.WriteString("```\n")
	buffer.WriteString(renderTree(report.Tree, false))
	buffer.WriteString("```\n\n")

	buffer.WriteString(fullInsightsHdr + "\n")
	writeInsights(&buffer, report)
	buffer.WriteString("\n")

	buffer.WriteString("---\n\n")
	buffer.WriteString(sourceFilesHdr + "\n\n")
	buffer.WriteString("*Files are organized by importance and relevance.*\n\n")

	for _, file := range report.IncludedFiles {
		buffer.WriteString(fileHeader(file) + "\n")
		fmt.Fprintf(&buffer, "**File Info:** %s lines • %s chars • ~%.2f%% of codebase\n",
			utils.GroupDigits(file.LineCount), utils.GroupDigits(file.CharCount), file.Percentage)
		if file.LanguageHint != "" {
			fmt.Fprintf(&buffer, "**Language:** %s\n", file.LanguageHint)
		}
		buffer.WriteString("\n")
		fmt.Fprintf(&buffer, "```%s\n", file.LanguageHint)
		buffer.WriteString(file.Content)
		buffer.WriteString("\n```\n\n")
	}

	return strings.TrimSpace(buffer.String()) + "\n"
}

func writeInsights(buffer *bytes.Buffer, report *types.Report) {
	if len(report.TechStack) > 0 {
		fmt.Fprintf(buffer, "- **Technology Stack:** %s\n", strings.Join(report.TechStack, ", "))
	}
	keyDirectories := report.KeyDirectories
	if len(keyDirectories) > 5 {
		keyDirectories = keyDirectories[:5]
	}
	if len(keyDirectories) > 0 {
		fmt.Fprintf(buffer, "- **Key Directories:** %s\n", strings.Join(keyDirectories, ", "))
	}
}

func techStackLabel(report *types.Report) string {
	if len(report.TechStack) == 0 {
		return unknownTechStack
	}
	return strings.Join(report.TechStack, ", ")
}

// fileHeader picks a descriptive section heading for one file.
func fileHeader(file *types.FileResult) string {
	baseName := strings.ToLower(file.RelativePath)
	if slashIndex := strings.LastIndex(baseName, "/"); slashIndex >= 0 {
		baseName = baseName[slashIndex+1:]
	}
	extension := ""
	if dotIndex := strings.LastIndex(baseName, "."); dotIndex >= 0 {
		extension = baseName[dotIndex:]
	}

	switch {
	case baseName == "readme.md":
		return fmt.Sprintf("### 📖 `/%s` - Project Documentation", file.RelativePath)
	case extension == ".tsx" || extension == ".ts" || extension == ".jsx" || extension == ".js":
		return fmt.Sprintf("### ⚛️ `/%s` - React/JS Component", file.RelativePath)
	case extension == ".py":
		return fmt.Sprintf("### 🐍 `/%s` - Python Module", file.RelativePath)
	case extension == ".go":
		return fmt.Sprintf("### 🐹 `/%s` - Go Module", file.RelativePath)
	case extension == ".rs":
		return fmt.Sprintf("### 🦀 `/%s` - Rust Module", file.RelativePath)
	case extension == ".json":
		return fmt.Sprintf("### ⚙️ `/%s` - Configuration", file.RelativePath)
	case extension == ".md":
		return fmt.Sprintf("### 📝 `/%s` - Documentation", file.RelativePath)
	default:
		return fmt.Sprintf("### 📄 `/%s`", file.RelativePath)
	}
}

// displayPath abbreviates the user's home directory to ~ in headings.
func displayPath(rootPath string) string {
	homeDirectory, homeError := os.UserHomeDir()
	if homeError != nil || homeDirectory == "" {
		return rootPath
	}
	if strings.HasPrefix(rootPath, homeDirectory) {
		return "~" + rootPath[len(homeDirectory):]
	}
	return rootPath
}
