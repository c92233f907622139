package utils

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	kilobyte = int64(1024)
	megabyte = kilobyte * 1024
	gigabyte = megabyte * 1024
)

// ParseSizeLimit converts a human size string such as "2M", "500k", or "1g"
// into a byte count. An empty string or "0" means no limit and returns zero.
func ParseSizeLimit(sizeValue string) (int64, error) {
	normalized := strings.ToLower(strings.TrimSpace(sizeValue))
	if normalized == "" || normalized == "0" {
		return 0, nil
	}

	multiplier := int64(1)
	switch {
	case strings.HasSuffix(normalized, "g"):
		multiplier = gigabyte
		normalized = strings.TrimSuffix(normalized, "g")
	case strings.HasSuffix(normalized, "m"):
		multiplier = megabyte
		normalized = strings.TrimSuffix(normalized, "m")
	case strings.HasSuffix(normalized, "k"):
		multiplier = kilobyte
		normalized = strings.TrimSuffix(normalized, "k")
	}

	numericValue, parseError := strconv.ParseInt(normalized, 10, 64)
	if parseError != nil || numericValue < 0 {
		return 0, fmt.Errorf("invalid size value %q", sizeValue)
	}
	return numericValue * multiplier, nil
}

// FormatFileSize converts a byte length into a human-readable lower-case unit string.
func FormatFileSize(bytes int64) string {
	if bytes < 0 {
		return "0b"
	}
	units := []string{"b", "kb", "mb", "gb", "tb", "pb"}
	value := float64(bytes)
	unitIndex := 0
	for value >= 1024 && unitIndex < len(units)-1 {
		value /= 1024
		unitIndex++
	}
	if unitIndex == 0 {
		return fmt.Sprintf("%db", bytes)
	}
	if value < 10 {
		formatted := fmt.Sprintf("%.1f", value)
		formatted = strings.TrimSuffix(formatted, ".0")
		return formatted + units[unitIndex]
	}
	return fmt.Sprintf("%.0f%s", value, units[unitIndex])
}
