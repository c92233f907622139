// Package policy implements the ordered rule chain that decides, for every
// candidate file, whether it belongs in the report.
package policy

import (
	"github.com/promptpack/promptpack/internal/config"
	"github.com/promptpack/promptpack/internal/types"
)

// GitPredicates carries the optional version-control inputs injected into the
// chain. A nil IgnoreMatcher or TrackedPaths means the corresponding rule
// step is skipped entirely, never treated as "exclude everything".
type GitPredicates struct {
	IgnoreMatcher func(relativePath string) bool
	TrackedPaths  map[string]struct{}
}

// Policy evaluates candidates against the configured rule chain. It holds no
// mutable state and is safe for concurrent use.
type Policy struct {
	scanConfig *config.ScanConfig
	rules      []Rule

	// Hard-veto rules consulted by the explicit-include pre-check. Explicit
	// include patterns bypass gitignore, tracking, and the default denylist,
	// but never these.
	skipVeto      Rule
	directoryVeto Rule
	sizeVeto      Rule
	binaryVeto    Rule
}

// New assembles the rule chain in precedence order.
func New(scanConfig *config.ScanConfig, gitPredicates GitPredicates) *Policy {
	skipVeto := alwaysSkipRule{scanConfig: scanConfig}
	directoryVeto := directoryExclusionRule{scanConfig: scanConfig}
	sizeVeto := sizeRule{scanConfig: scanConfig}
	binaryVeto := binaryRule{scanConfig: scanConfig}

	orderedRules := []Rule{
		skipVeto,
		directoryVeto,
		patternRule{scanConfig: scanConfig},
		gitignoreRule{scanConfig: scanConfig, ignoreMatcher: gitPredicates.IgnoreMatcher},
		trackingRule{scanConfig: scanConfig, trackedPaths: gitPredicates.TrackedPaths},
		sizeVeto,
		binaryVeto,
		defaultDenylistRule{scanConfig: scanConfig},
	}

	return &Policy{
		scanConfig:    scanConfig,
		rules:         orderedRules,
		skipVeto:      skipVeto,
		directoryVeto: directoryVeto,
		sizeVeto:      sizeVeto,
		binaryVeto:    binaryVeto,
	}
}

// Evaluate runs the chain for one candidate file and returns the decision
// with its diagnostic reason.
func (chainPolicy *Policy) Evaluate(candidate Candidate) types.InclusionDecision {
	if MatchesAny(chainPolicy.scanConfig.IncludedPatterns, candidate.Name, candidate.RelativePath) {
		return chainPolicy.evaluateExplicitInclude(candidate)
	}

	for _, chainRule := range chainPolicy.rules {
		passes, reason := chainRule.Passes(candidate)
		if !passes {
			return types.InclusionDecision{Included: false, Reason: reason}
		}
	}
	return types.InclusionDecision{Included: true, Reason: "passed all filters"}
}

// evaluateExplicitInclude applies the pre-check for candidates matching an
// include pattern: the match early-accepts unless one of the hard vetoes
// rejects it. The pre-check never falls through to the remaining chain.
func (chainPolicy *Policy) evaluateExplicitInclude(candidate Candidate) types.InclusionDecision {
	for _, vetoRule := range []Rule{chainPolicy.skipVeto, chainPolicy.directoryVeto, chainPolicy.sizeVeto, chainPolicy.binaryVeto} {
		passes, reason := vetoRule.Passes(candidate)
		if !passes {
			return types.InclusionDecision{Included: false, Reason: reason}
		}
	}
	return types.InclusionDecision{Included: true, Reason: "explicitly included by pattern"}
}
