package utils

import (
	"bytes"
	"io"
	"os"
)

// sniffLen bounds how much of a file is read when probing for binary content.
const sniffLen = 8192

// IsBinary reports whether the provided byte slice appears to contain binary data.
// A NUL byte anywhere in the sample marks the content binary; invalid UTF-8 alone
// does not, so UTF-16 and latin-1 text still reads as text when NUL-free.
func IsBinary(data []byte) bool {
	return bytes.IndexByte(data, 0) >= 0
}

// IsFileBinary reads up to sniffLen bytes from the file at path and determines
// if the content appears to be binary. Unreadable files are treated as binary
// so that the inclusion decision errs toward exclusion.
func IsFileBinary(path string) bool {
	fileHandle, openError := os.Open(path)
	if openError != nil {
		return true
	}
	defer fileHandle.Close()

	buffer := make([]byte, sniffLen)
	bytesRead, readError := fileHandle.Read(buffer)
	if readError != nil && readError != io.EOF {
		return true
	}
	return IsBinary(buffer[:bytesRead])
}
