package utils_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/promptpack/promptpack/internal/utils"
)

// TestIsBinary verifies NUL-based binary detection on byte slices.
func TestIsBinary(testingHandle *testing.T) {
	testCases := []struct {
		name     string
		data     []byte
		expected bool
	}{
		{name: "Empty", data: nil, expected: false},
		{name: "PlainText", data: []byte("package main\n"), expected: false},
		{name: "InvalidUTF8WithoutNul", data: []byte{0xff, 0xfe, 0x41}, expected: false},
		{name: "LeadingNul", data: []byte{0x00, 0x41}, expected: true},
		{name: "EmbeddedNul", data: []byte("text\x00more"), expected: true},
	}

	for _, testCase := range testCases {
		testingHandle.Run(testCase.name, func(testingHandle *testing.T) {
			if utils.IsBinary(testCase.data) != testCase.expected {
				testingHandle.Fatalf("expected IsBinary=%v for %q", testCase.expected, testCase.data)
			}
		})
	}
}

// TestIsFileBinary verifies probing real files, including the unreadable case.
func TestIsFileBinary(testingHandle *testing.T) {
	temporaryDirectory := testingHandle.TempDir()

	textPath := filepath.Join(temporaryDirectory, "text.go")
	if writeError := os.WriteFile(textPath, []byte("package main\n"), 0o644); writeError != nil {
		testingHandle.Fatalf("write text file: %v", writeError)
	}
	binaryPath := filepath.Join(temporaryDirectory, "blob.bin")
	if writeError := os.WriteFile(binaryPath, []byte{0x00, 0x01, 0x02}, 0o644); writeError != nil {
		testingHandle.Fatalf("write binary file: %v", writeError)
	}

	if utils.IsFileBinary(textPath) {
		testingHandle.Errorf("text file reported as binary")
	}
	if !utils.IsFileBinary(binaryPath) {
		testingHandle.Errorf("binary file reported as text")
	}
	if !utils.IsFileBinary(filepath.Join(temporaryDirectory, "missing.bin")) {
		testingHandle.Errorf("unreadable file must be treated as binary")
	}
}
