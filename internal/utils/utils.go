// Package utils contains general helper functions used across the promptpack tool.
package utils

import (
	"path/filepath"
	"strconv"
	"strings"
)

const (
	// GitDirectoryName is the name of the Git repository directory.
	GitDirectoryName = ".git"
	// GitIgnoreFileName is the name of the Git ignore file.
	GitIgnoreFileName = ".gitignore"
	// ConfigFileName is the name of the project-local configuration file.
	ConfigFileName = ".promptpack.yaml"
)

// DeduplicatePatterns removes duplicate patterns from a slice while preserving order.
// The first occurrence of each unique pattern is kept.
func DeduplicatePatterns(patterns []string) []string {
	encounteredPatterns := make(map[string]struct{})
	result := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if _, exists := encounteredPatterns[pattern]; !exists {
			encounteredPatterns[pattern] = struct{}{}
			result = append(result, pattern)
		}
	}
	return result
}

// ContainsString checks if a slice of strings contains a specific target string.
func ContainsString(stringSlice []string, targetString string) bool {
	for _, currentString := range stringSlice {
		if currentString == targetString {
			return true
		}
	}
	return false
}

// RelativeSlashPath expresses fullPath relative to root using forward slashes.
// The second return value is false when fullPath cannot be made relative to
// root or would escape it.
func RelativeSlashPath(root string, fullPath string) (string, bool) {
	relativePath, relativeError := filepath.Rel(root, fullPath)
	if relativeError != nil {
		return "", false
	}
	slashPath := filepath.ToSlash(relativePath)
	if slashPath == ".." || strings.HasPrefix(slashPath, "../") {
		return "", false
	}
	return slashPath, true
}

// PathSegments splits a slash-normalized relative path into its segments.
// The root path "." yields no segments.
func PathSegments(relativeSlashPath string) []string {
	if relativeSlashPath == "" || relativeSlashPath == "." {
		return nil
	}
	return strings.Split(relativeSlashPath, "/")
}

// ExtensionLower returns the lower-cased extension of fileName including the dot.
func ExtensionLower(fileName string) string {
	return strings.ToLower(filepath.Ext(fileName))
}

// GroupDigits renders an integer with comma thousand separators.
func GroupDigits(value int) string {
	digits := strconv.Itoa(value)
	negative := strings.HasPrefix(digits, "-")
	if negative {
		digits = digits[1:]
	}
	var grouped strings.Builder
	leadingLength := len(digits) % 3
	if leadingLength > 0 {
		grouped.WriteString(digits[:leadingLength])
	}
	for offset := leadingLength; offset < len(digits); offset += 3 {
		if grouped.Len() > 0 {
			grouped.WriteString(",")
		}
		grouped.WriteString(digits[offset : offset+3])
	}
	if negative {
		return "-" + grouped.String()
	}
	return grouped.String()
}
