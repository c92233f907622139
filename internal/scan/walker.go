// Package scan enumerates the project tree, applies the inclusion policy,
// aggregates the result into an annotated tree, and reads included content.
package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/promptpack/promptpack/internal/config"
	"github.com/promptpack/promptpack/internal/policy"
	"github.com/promptpack/promptpack/internal/types"
	"github.com/promptpack/promptpack/internal/utils"
)

const warningWalkEntryFormat = "Warning: error accessing %s: %v\n"

// PathDecision pairs one evaluated file with the decision the policy made.
type PathDecision struct {
	Candidate policy.Candidate
	Decision  types.InclusionDecision
}

// WalkResult is the outcome of one full enumeration pass.
type WalkResult struct {
	// Included holds the accepted files in deterministic enumeration order.
	Included []policy.Candidate
	// IncludedSet indexes the accepted root-relative slash paths.
	IncludedSet map[string]struct{}
	// Decisions records every evaluated file, included or not.
	Decisions []PathDecision
	// TotalScanned counts every filesystem entry visited during the walk.
	TotalScanned int
}

// Walker enumerates every entry under the configured root and consults the
// inclusion policy for each regular file.
type Walker struct {
	scanConfig      *config.ScanConfig
	inclusionPolicy *policy.Policy
}

// NewWalker constructs a walker bound to one configuration and policy.
func NewWalker(scanConfig *config.ScanConfig, inclusionPolicy *policy.Policy) *Walker {
	return &Walker{scanConfig: scanConfig, inclusionPolicy: inclusionPolicy}
}

// Run performs the walk. Enumeration is sequential; policy evaluation runs
// concurrently because each decision is a pure function of (path, config,
// predicates). Results keep enumeration order so repeated runs over an
// unchanged tree yield identical output.
func (walker *Walker) Run() (*WalkResult, error) {
	candidates, totalScanned, enumerationError := walker.enumerate()
	if enumerationError != nil {
		return nil, enumerationError
	}

	decisions := make([]types.InclusionDecision, len(candidates))
	evaluationGroup := new(errgroup.Group)
	evaluationGroup.SetLimit(runtime.GOMAXPROCS(0))
	for candidateIndex := range candidates {
		candidateIndex := candidateIndex
		evaluationGroup.Go(func() error {
			decisions[candidateIndex] = walker.inclusionPolicy.Evaluate(candidates[candidateIndex])
			return nil
		})
	}
	if waitError := evaluationGroup.Wait(); waitError != nil {
		return nil, waitError
	}

	result := &WalkResult{
		IncludedSet:  make(map[string]struct{}),
		TotalScanned: totalScanned,
	}
	for candidateIndex, candidate := range candidates {
		result.Decisions = append(result.Decisions, PathDecision{Candidate: candidate, Decision: decisions[candidateIndex]})
		if decisions[candidateIndex].Included {
			result.Included = append(result.Included, candidate)
			result.IncludedSet[candidate.RelativePath] = struct{}{}
		}
	}
	return result, nil
}

// enumerate collects every candidate regular file under the root, skipping
// symbolic links and entries beyond the configured depth. Unreadable entries
// produce a warning and the walk continues with siblings.
func (walker *Walker) enumerate() ([]policy.Candidate, int, error) {
	var candidates []policy.Candidate
	totalScanned := 0

	walkError := filepath.WalkDir(walker.scanConfig.Root, func(entryPath string, directoryEntry fs.DirEntry, entryError error) error {
		if entryError != nil {
			fmt.Fprintf(os.Stderr, warningWalkEntryFormat, entryPath, entryError)
			return nil
		}
		if entryPath == walker.scanConfig.Root {
			return nil
		}
		totalScanned++

		if directoryEntry.Type()&fs.ModeSymlink != 0 {
			return nil
		}

		relativePath, relativeOK := utils.RelativeSlashPath(walker.scanConfig.Root, entryPath)
		if !relativeOK {
			fmt.Fprintf(os.Stderr, warningWalkEntryFormat, entryPath, fmt.Errorf("path not relative to root"))
			return nil
		}

		if walker.scanConfig.MaxDepth > 0 && len(utils.PathSegments(relativePath)) > walker.scanConfig.MaxDepth {
			if directoryEntry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if directoryEntry.IsDir() {
			return nil
		}
		if !directoryEntry.Type().IsRegular() {
			return nil
		}

		candidates = append(candidates, policy.Candidate{
			AbsolutePath: entryPath,
			RelativePath: relativePath,
			Name:         directoryEntry.Name(),
		})
		return nil
	})
	if walkError != nil {
		return nil, 0, fmt.Errorf("walking %s: %w", walker.scanConfig.Root, walkError)
	}
	return candidates, totalScanned, nil
}
