package policy

import (
	"fmt"
	"os"

	"github.com/promptpack/promptpack/internal/config"
	"github.com/promptpack/promptpack/internal/utils"
)

// Candidate identifies one regular file being evaluated by the rule chain.
type Candidate struct {
	AbsolutePath string
	// RelativePath is slash-normalized and relative to the scan root.
	RelativePath string
	Name         string
}

// Rule is one link of the inclusion chain. Passes returns false together with
// a human-readable reason when the rule rejects the candidate.
type Rule interface {
	Name() string
	Passes(candidate Candidate) (bool, string)
}

// alwaysSkipRule rejects exact filenames from the always-skip set.
type alwaysSkipRule struct {
	scanConfig *config.ScanConfig
}

func (rule alwaysSkipRule) Name() string { return "always-skip" }

func (rule alwaysSkipRule) Passes(candidate Candidate) (bool, string) {
	if _, skipped := rule.scanConfig.AlwaysSkipNames[candidate.Name]; skipped {
		return false, fmt.Sprintf("always skipped file: %s", candidate.Name)
	}
	return true, ""
}

// directoryExclusionRule rejects files residing under an excluded directory
// name or under a directory segment matching an exclude pattern. Every
// ancestor segment is examined, not just the immediate parent.
type directoryExclusionRule struct {
	scanConfig *config.ScanConfig
}

func (rule directoryExclusionRule) Name() string { return "directory-exclusion" }

func (rule directoryExclusionRule) Passes(candidate Candidate) (bool, string) {
	segments := utils.PathSegments(candidate.RelativePath)
	if len(segments) == 0 {
		return false, "path not relative to root"
	}
	for _, ancestorSegment := range segments[:len(segments)-1] {
		if _, excluded := rule.scanConfig.ExcludedDirNames[ancestorSegment]; excluded {
			return false, fmt.Sprintf("in excluded directory: %s", ancestorSegment)
		}
		for _, pattern := range rule.scanConfig.ExcludedPatterns {
			if matchSingle(pattern, ancestorSegment) {
				return false, fmt.Sprintf("directory matches exclude pattern: %s", pattern)
			}
		}
	}
	return true, ""
}

// patternRule rejects files matching explicit exclude patterns, and in
// include-only mode rejects files matching no include pattern.
type patternRule struct {
	scanConfig *config.ScanConfig
}

func (rule patternRule) Name() string { return "patterns" }

func (rule patternRule) Passes(candidate Candidate) (bool, string) {
	for _, pattern := range rule.scanConfig.ExcludedPatterns {
		if MatchesPattern(pattern, candidate.Name, candidate.RelativePath) {
			return false, fmt.Sprintf("matches exclude pattern: %s", pattern)
		}
	}
	if rule.scanConfig.IncludeOnly && len(rule.scanConfig.IncludedPatterns) > 0 {
		if !MatchesAny(rule.scanConfig.IncludedPatterns, candidate.Name, candidate.RelativePath) {
			return false, "include-only mode: matches no include pattern"
		}
	}
	return true, ""
}

// gitignoreRule rejects files the repository's ignore rules match, unless an
// explicit include pattern re-overrides the ignore.
type gitignoreRule struct {
	scanConfig    *config.ScanConfig
	ignoreMatcher func(relativePath string) bool
}

func (rule gitignoreRule) Name() string { return "gitignore" }

func (rule gitignoreRule) Passes(candidate Candidate) (bool, string) {
	if rule.ignoreMatcher == nil || !rule.scanConfig.GitMode.UsesGitignore() {
		return true, ""
	}
	if !rule.ignoreMatcher(candidate.RelativePath) {
		return true, ""
	}
	if MatchesAny(rule.scanConfig.IncludedPatterns, candidate.Name, candidate.RelativePath) {
		return true, ""
	}
	return false, "matched .gitignore pattern"
}

// trackingRule rejects files absent from the tracked-file set, unless the file
// is always-included or matches an explicit include pattern. A nil tracked set
// means no data was available and the rule self-skips.
type trackingRule struct {
	scanConfig   *config.ScanConfig
	trackedPaths map[string]struct{}
}

func (rule trackingRule) Name() string { return "git-tracking" }

func (rule trackingRule) Passes(candidate Candidate) (bool, string) {
	if rule.trackedPaths == nil || !rule.scanConfig.GitMode.UsesTracking() {
		return true, ""
	}
	if _, tracked := rule.trackedPaths[candidate.RelativePath]; tracked {
		return true, ""
	}
	if _, always := rule.scanConfig.AlwaysIncludeNames[candidate.Name]; always {
		return true, ""
	}
	if MatchesAny(rule.scanConfig.IncludedPatterns, candidate.Name, candidate.RelativePath) {
		return true, ""
	}
	return false, "not tracked by git"
}

// sizeRule rejects files larger than the configured limit. Stat failures
// reject the candidate so that unreadable files stay out of the report.
type sizeRule struct {
	scanConfig *config.ScanConfig
}

func (rule sizeRule) Name() string { return "size-limit" }

func (rule sizeRule) Passes(candidate Candidate) (bool, string) {
	if rule.scanConfig.MaxSizeBytes <= 0 {
		return true, ""
	}
	fileInfo, statError := os.Stat(candidate.AbsolutePath)
	if statError != nil {
		return false, fmt.Sprintf("cannot stat file: %v", statError)
	}
	if fileInfo.Size() > rule.scanConfig.MaxSizeBytes {
		return false, fmt.Sprintf("file too large: %d > %d", fileInfo.Size(), rule.scanConfig.MaxSizeBytes)
	}
	return true, ""
}

// binaryRule rejects files whose leading bytes look binary unless binary
// content was requested. Unreadable files count as binary.
type binaryRule struct {
	scanConfig *config.ScanConfig
}

func (rule binaryRule) Name() string { return "binary-detection" }

func (rule binaryRule) Passes(candidate Candidate) (bool, string) {
	if rule.scanConfig.IncludeBinary {
		return true, ""
	}
	if utils.IsFileBinary(candidate.AbsolutePath) {
		return false, "binary file detected"
	}
	return true, ""
}

// defaultDenylistRule rejects files matching the built-in denylist patterns
// unless a type override, always-include name, or explicit include pattern
// rescues them.
type defaultDenylistRule struct {
	scanConfig *config.ScanConfig
}

func (rule defaultDenylistRule) Name() string { return "default-denylist" }

func (rule defaultDenylistRule) Passes(candidate Candidate) (bool, string) {
	if _, always := rule.scanConfig.AlwaysIncludeNames[candidate.Name]; always {
		return true, ""
	}
	if rule.scanConfig.TypeOverridden(utils.ExtensionLower(candidate.Name)) {
		return true, ""
	}
	for _, pattern := range config.DefaultDenylistPatterns {
		if !matchSingle(pattern, candidate.Name) {
			continue
		}
		if MatchesAny(rule.scanConfig.IncludedPatterns, candidate.Name, candidate.RelativePath) {
			return true, ""
		}
		return false, fmt.Sprintf("matches default exclude pattern: %s", pattern)
	}
	return true, ""
}
