package policy

import (
	"path"
	"strings"
)

// MatchesPattern reports whether a single glob pattern matches either the bare
// file name or the root-relative slash path. Patterns support *, ?, and
// character classes; a leading "**/" prefix matches the remainder against any
// path suffix.
func MatchesPattern(pattern string, fileName string, relativePath string) bool {
	if strings.HasPrefix(pattern, "**/") {
		trimmedPattern := strings.TrimPrefix(pattern, "**/")
		if matchSingle(trimmedPattern, fileName) {
			return true
		}
		remainder := relativePath
		for {
			if matchSingle(trimmedPattern, remainder) {
				return true
			}
			separatorIndex := strings.Index(remainder, "/")
			if separatorIndex < 0 {
				return false
			}
			remainder = remainder[separatorIndex+1:]
		}
	}
	return matchSingle(pattern, fileName) || matchSingle(pattern, relativePath)
}

// MatchesAny reports whether any pattern in the slice matches the candidate.
func MatchesAny(patterns []string, fileName string, relativePath string) bool {
	for _, pattern := range patterns {
		if MatchesPattern(pattern, fileName, relativePath) {
			return true
		}
	}
	return false
}

// matchSingle evaluates one glob against one string. Malformed patterns never
// match rather than aborting the rule chain.
func matchSingle(pattern string, value string) bool {
	matched, matchError := path.Match(pattern, value)
	return matchError == nil && matched
}
