// Package gitdata supplies optional version-control inputs for the inclusion
// policy: an ignore predicate derived from .gitignore and the set of tracked
// file paths. Both degrade to absent data instead of failing the run.
package gitdata

import (
	"fmt"
	"os"
	"path/filepath"

	git "github.com/go-git/go-git/v5"
	gitignore "github.com/sabhiram/go-gitignore"

	"github.com/promptpack/promptpack/internal/policy"
	"github.com/promptpack/promptpack/internal/types"
	"github.com/promptpack/promptpack/internal/utils"
)

const warningFormat = "Warning: %s\n"

// Load gathers the git inputs the configured mode calls for. Missing files,
// non-repositories, and parse failures produce absent data with a stderr
// warning; they are never fatal.
func Load(rootDirectoryPath string, gitMode types.GitMode) policy.GitPredicates {
	var predicates policy.GitPredicates

	if gitMode.UsesGitignore() {
		matcher, matcherError := loadIgnoreMatcher(rootDirectoryPath)
		if matcherError != nil {
			fmt.Fprintf(os.Stderr, warningFormat, matcherError)
		} else {
			predicates.IgnoreMatcher = matcher
		}
	}

	if gitMode.UsesTracking() {
		trackedPaths, trackedError := loadTrackedPaths(rootDirectoryPath)
		if trackedError != nil {
			fmt.Fprintf(os.Stderr, warningFormat, trackedError)
		} else {
			predicates.TrackedPaths = trackedPaths
		}
	}

	return predicates
}

// loadIgnoreMatcher compiles the root .gitignore into a predicate over
// root-relative slash paths. A missing file yields a nil matcher.
func loadIgnoreMatcher(rootDirectoryPath string) (func(string) bool, error) {
	gitIgnorePath := filepath.Join(rootDirectoryPath, utils.GitIgnoreFileName)
	if _, statError := os.Stat(gitIgnorePath); statError != nil {
		if os.IsNotExist(statError) {
			return nil, nil
		}
		return nil, fmt.Errorf("stat %s: %w", gitIgnorePath, statError)
	}

	compiled, compileError := gitignore.CompileIgnoreFile(gitIgnorePath)
	if compileError != nil {
		return nil, fmt.Errorf("could not parse %s: %w", gitIgnorePath, compileError)
	}
	return compiled.MatchesPath, nil
}

// loadTrackedPaths reads the repository index and returns the set of
// root-relative slash paths git currently tracks. A nil set signals that
// tracking data is unavailable, in which case full git mode degrades to
// gitignore-only behavior.
func loadTrackedPaths(rootDirectoryPath string) (map[string]struct{}, error) {
	repository, openError := git.PlainOpenWithOptions(rootDirectoryPath, &git.PlainOpenOptions{DetectDotGit: true})
	if openError != nil {
		return nil, fmt.Errorf("not a git repository at %s: %w", rootDirectoryPath, openError)
	}

	repositoryIndex, indexError := repository.Storer.Index()
	if indexError != nil {
		return nil, fmt.Errorf("reading git index for %s: %w", rootDirectoryPath, indexError)
	}

	worktree, worktreeError := repository.Worktree()
	if worktreeError != nil {
		return nil, fmt.Errorf("resolving worktree for %s: %w", rootDirectoryPath, worktreeError)
	}

	// Index entries are relative to the worktree root, which may sit above
	// the scan root when scanning a subdirectory of the repository.
	prefix, relativeOK := utils.RelativeSlashPath(worktree.Filesystem.Root(), rootDirectoryPath)
	if !relativeOK {
		return nil, fmt.Errorf("scan root %s escapes the repository worktree", rootDirectoryPath)
	}

	trackedPaths := make(map[string]struct{}, len(repositoryIndex.Entries))
	for _, indexEntry := range repositoryIndex.Entries {
		entryPath := indexEntry.Name
		if prefix != "." {
			trimmed, underRoot := trimPathPrefix(entryPath, prefix)
			if !underRoot {
				continue
			}
			entryPath = trimmed
		}
		trackedPaths[entryPath] = struct{}{}
	}
	return trackedPaths, nil
}

func trimPathPrefix(entryPath string, prefix string) (string, bool) {
	withSeparator := prefix + "/"
	if len(entryPath) > len(withSeparator) && entryPath[:len(withSeparator)] == withSeparator {
		return entryPath[len(withSeparator):], true
	}
	return "", false
}
