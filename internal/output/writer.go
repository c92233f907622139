package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/term"

	"github.com/promptpack/promptpack/internal/services/clipboard"
	"github.com/promptpack/promptpack/internal/utils"
)

const (
	writeFileSuccessFormat = "\nSuccess: Written to %s\n"
	clipboardSuccessFormat = "\nSuccess: %s chars copied to clipboard\n"
	writeFileErrorFormat   = "Error writing to file: %v\n"
	clipboardErrorFormat   = "Error copying to clipboard: %v\n"
)

// Destination selects where the rendered content goes. Zero value means the
// default destination: clipboard on a terminal, stdout when piped.
type Destination struct {
	// FilePath writes content to this path when non-empty. Highest precedence.
	FilePath string
	// ForceStdout prints content to stdout even on a terminal.
	ForceStdout bool
	// DisableClipboard suppresses the clipboard default; only the summary is
	// printed.
	DisableClipboard bool
}

// Writer routes rendered content to one destination and the human summary to
// stderr.
type Writer struct {
	copier       clipboard.Copier
	stdout       io.Writer
	stderr       io.Writer
	stdoutIsPipe bool
}

// NewWriter builds a writer bound to the process streams, detecting whether
// stdout is a pipe so the clipboard default can degrade gracefully.
func NewWriter(copier clipboard.Copier) *Writer {
	return &Writer{
		copier:       copier,
		stdout:       os.Stdout,
		stderr:       os.Stderr,
		stdoutIsPipe: !term.IsTerminal(int(os.Stdout.Fd())),
	}
}

// Write delivers content per the destination precedence: file, then explicit
// stdout, then clipboard. When stdout is a pipe the clipboard default becomes
// stdout so `promptpack | pbcopy` style pipelines behave. The summary always
// goes to stderr except when content itself uses stdout.
func (writer *Writer) Write(content string, summary string, destination Destination) error {
	switch {
	case destination.FilePath != "":
		if directoryError := os.MkdirAll(filepath.Dir(destination.FilePath), 0o755); directoryError != nil {
			fmt.Fprintf(writer.stderr, writeFileErrorFormat, directoryError)
			return directoryError
		}
		if writeError := os.WriteFile(destination.FilePath, []byte(content), 0o644); writeError != nil {
			fmt.Fprintf(writer.stderr, writeFileErrorFormat, writeError)
			return writeError
		}
		fmt.Fprintln(writer.stderr, summary)
		fmt.Fprintf(writer.stderr, writeFileSuccessFormat, destination.FilePath)
		return nil

	case destination.ForceStdout || (writer.stdoutIsPipe && !destination.DisableClipboard):
		fmt.Fprintln(writer.stdout, content)
		return nil

	case !destination.DisableClipboard:
		fmt.Fprintln(writer.stderr, summary)
		if copyError := writer.copier.Copy(content); copyError != nil {
			fmt.Fprintf(writer.stderr, clipboardErrorFormat, copyError)
			return copyError
		}
		fmt.Fprintf(writer.stderr, clipboardSuccessFormat, utils.GroupDigits(len(content)))
		return nil
	}

	fmt.Fprintln(writer.stderr, summary)
	return nil
}
