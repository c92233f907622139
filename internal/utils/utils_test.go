package utils_test

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/promptpack/promptpack/internal/utils"
)

// TestRelativeSlashPath verifies slash normalization and escape rejection.
func TestRelativeSlashPath(testingHandle *testing.T) {
	root := filepath.Join("/", "project")

	testCases := []struct {
		name         string
		fullPath     string
		expectedPath string
		expectedOK   bool
	}{
		{name: "DirectChild", fullPath: filepath.Join(root, "main.go"), expectedPath: "main.go", expectedOK: true},
		{name: "NestedChild", fullPath: filepath.Join(root, "src", "app.go"), expectedPath: "src/app.go", expectedOK: true},
		{name: "RootItself", fullPath: root, expectedPath: ".", expectedOK: true},
		{name: "EscapesRoot", fullPath: filepath.Join("/", "elsewhere", "main.go"), expectedOK: false},
		{name: "Parent", fullPath: filepath.Dir(root), expectedOK: false},
	}

	for _, testCase := range testCases {
		testingHandle.Run(testCase.name, func(testingHandle *testing.T) {
			relativePath, ok := utils.RelativeSlashPath(root, testCase.fullPath)
			if ok != testCase.expectedOK {
				testingHandle.Fatalf("expected ok=%v, got %v", testCase.expectedOK, ok)
			}
			if ok && relativePath != testCase.expectedPath {
				testingHandle.Fatalf("expected %q, got %q", testCase.expectedPath, relativePath)
			}
		})
	}
}

// TestPathSegments verifies segment splitting of relative slash paths.
func TestPathSegments(testingHandle *testing.T) {
	testCases := []struct {
		name             string
		relativePath     string
		expectedSegments []string
	}{
		{name: "Root", relativePath: ".", expectedSegments: nil},
		{name: "Empty", relativePath: "", expectedSegments: nil},
		{name: "Single", relativePath: "main.go", expectedSegments: []string{"main.go"}},
		{name: "Nested", relativePath: "a/b/c.go", expectedSegments: []string{"a", "b", "c.go"}},
	}

	for _, testCase := range testCases {
		testingHandle.Run(testCase.name, func(testingHandle *testing.T) {
			segments := utils.PathSegments(testCase.relativePath)
			if !reflect.DeepEqual(segments, testCase.expectedSegments) {
				testingHandle.Fatalf("expected %v, got %v", testCase.expectedSegments, segments)
			}
		})
	}
}

// TestExtensionLower verifies extension extraction.
func TestExtensionLower(testingHandle *testing.T) {
	testCases := []struct {
		name     string
		fileName string
		expected string
	}{
		{name: "Lower", fileName: "main.go", expected: ".go"},
		{name: "Upper", fileName: "README.MD", expected: ".md"},
		{name: "NoExtension", fileName: "Makefile", expected: ""},
		{name: "Dotfile", fileName: ".gitignore", expected: ".gitignore"},
	}

	for _, testCase := range testCases {
		testingHandle.Run(testCase.name, func(testingHandle *testing.T) {
			if extension := utils.ExtensionLower(testCase.fileName); extension != testCase.expected {
				testingHandle.Fatalf("expected %q, got %q", testCase.expected, extension)
			}
		})
	}
}

// TestDeduplicatePatterns verifies order-preserving duplicate removal.
func TestDeduplicatePatterns(testingHandle *testing.T) {
	result := utils.DeduplicatePatterns([]string{"*.go", "*.md", "*.go", "*.md"})
	expected := []string{"*.go", "*.md"}
	if !reflect.DeepEqual(result, expected) {
		testingHandle.Fatalf("expected %v, got %v", expected, result)
	}
}

// TestGroupDigits verifies comma separation including negative values.
func TestGroupDigits(testingHandle *testing.T) {
	testCases := []struct {
		name     string
		value    int
		expected string
	}{
		{name: "Zero", value: 0, expected: "0"},
		{name: "Small", value: 999, expected: "999"},
		{name: "Thousands", value: 1234, expected: "1,234"},
		{name: "Millions", value: 1234567, expected: "1,234,567"},
		{name: "Negative", value: -1234567, expected: "-1,234,567"},
	}

	for _, testCase := range testCases {
		testingHandle.Run(testCase.name, func(testingHandle *testing.T) {
			if grouped := utils.GroupDigits(testCase.value); grouped != testCase.expected {
				testingHandle.Fatalf("expected %q, got %q", testCase.expected, grouped)
			}
		})
	}
}

// TestLanguageHintFor verifies hint lookup by extension and by exact name.
func TestLanguageHintFor(testingHandle *testing.T) {
	testCases := []struct {
		name     string
		fileName string
		expected string
	}{
		{name: "GoFile", fileName: "main.go", expected: "go"},
		{name: "TypeScript", fileName: "app.ts", expected: "typescript"},
		{name: "Dockerfile", fileName: "Dockerfile", expected: "dockerfile"},
		{name: "Makefile", fileName: "Makefile", expected: "makefile"},
		{name: "Unknown", fileName: "data.xyz", expected: ""},
	}

	for _, testCase := range testCases {
		testingHandle.Run(testCase.name, func(testingHandle *testing.T) {
			if hint := utils.LanguageHintFor(testCase.fileName); hint != testCase.expected {
				testingHandle.Fatalf("expected %q, got %q", testCase.expected, hint)
			}
		})
	}
}
