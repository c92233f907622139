package policy_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/promptpack/promptpack/internal/config"
	"github.com/promptpack/promptpack/internal/policy"
	"github.com/promptpack/promptpack/internal/types"
)

// writeProjectFile creates a file beneath the scan root, including parents.
func writeProjectFile(testingHandle *testing.T, rootDirectory string, relativePath string, content []byte) {
	testingHandle.Helper()
	fullPath := filepath.Join(rootDirectory, filepath.FromSlash(relativePath))
	if directoryError := os.MkdirAll(filepath.Dir(fullPath), 0o755); directoryError != nil {
		testingHandle.Fatalf("create parent directories: %v", directoryError)
	}
	if writeError := os.WriteFile(fullPath, content, 0o644); writeError != nil {
		testingHandle.Fatalf("write %s: %v", relativePath, writeError)
	}
}

// newCandidate builds the policy input for a root-relative path.
func newCandidate(rootDirectory string, relativePath string) policy.Candidate {
	return policy.Candidate{
		AbsolutePath: filepath.Join(rootDirectory, filepath.FromSlash(relativePath)),
		RelativePath: relativePath,
		Name:         filepath.Base(relativePath),
	}
}

// buildScanConfig assembles a configuration over the given root with test options.
func buildScanConfig(testingHandle *testing.T, options config.ScanOptions) *config.ScanConfig {
	testingHandle.Helper()
	scanConfig, configError := config.NewScanConfig(options)
	if configError != nil {
		testingHandle.Fatalf("build scan config: %v", configError)
	}
	return scanConfig
}

// TestEvaluateDefaultInclusion verifies that an unremarkable source file passes
// the whole chain.
func TestEvaluateDefaultInclusion(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	writeProjectFile(testingHandle, rootDirectory, "main.go", []byte("package main\n"))

	scanConfig := buildScanConfig(testingHandle, config.ScanOptions{RootPath: rootDirectory})
	inclusionPolicy := policy.New(scanConfig, policy.GitPredicates{})

	decision := inclusionPolicy.Evaluate(newCandidate(rootDirectory, "main.go"))
	if !decision.Included {
		testingHandle.Fatalf("expected inclusion, got exclusion: %s", decision.Reason)
	}
}

// TestEvaluateGitignore verifies the gitignore step and its explicit-include
// override.
func TestEvaluateGitignore(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	writeProjectFile(testingHandle, rootDirectory, "secret.txt", []byte("token\n"))

	ignoreSecrets := func(relativePath string) bool {
		return strings.HasSuffix(relativePath, "secret.txt")
	}

	testCases := []struct {
		name            string
		includePatterns []string
		expectedInclude bool
	}{
		{name: "IgnoredFileExcluded", expectedInclude: false},
		{name: "IncludePatternOverridesIgnore", includePatterns: []string{"*.txt"}, expectedInclude: true},
	}

	for _, testCase := range testCases {
		testingHandle.Run(testCase.name, func(testingHandle *testing.T) {
			scanConfig := buildScanConfig(testingHandle, config.ScanOptions{
				RootPath:        rootDirectory,
				GitMode:         types.GitModeGitignoreOnly,
				IncludePatterns: testCase.includePatterns,
			})
			inclusionPolicy := policy.New(scanConfig, policy.GitPredicates{IgnoreMatcher: ignoreSecrets})

			decision := inclusionPolicy.Evaluate(newCandidate(rootDirectory, "secret.txt"))
			if decision.Included != testCase.expectedInclude {
				testingHandle.Fatalf("expected included=%v, got %v (%s)", testCase.expectedInclude, decision.Included, decision.Reason)
			}
		})
	}
}

// TestEvaluateExplicitIncludeVetoes verifies that include patterns never
// rescue always-skipped, oversized, or binary files.
func TestEvaluateExplicitIncludeVetoes(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	writeProjectFile(testingHandle, rootDirectory, "package.json", []byte("{}\n"))
	writeProjectFile(testingHandle, rootDirectory, "blob.bin", []byte{0x00, 0x01, 0x02})
	writeProjectFile(testingHandle, rootDirectory, "big.txt", []byte(strings.Repeat("x", 2048)))
	writeProjectFile(testingHandle, rootDirectory, "node_modules/pkg/index.js", []byte("module.exports = {}\n"))

	testCases := []struct {
		name           string
		relativePath   string
		includePattern string
		maxSizeValue   string
		reasonFragment string
	}{
		{name: "AlwaysSkipVeto", relativePath: "package.json", includePattern: "package.json", reasonFragment: "always skipped"},
		{name: "BinaryVeto", relativePath: "blob.bin", includePattern: "*.bin", reasonFragment: "binary"},
		{name: "SizeVeto", relativePath: "big.txt", includePattern: "*.txt", maxSizeValue: "1k", reasonFragment: "too large"},
		{name: "ExcludedDirectoryVeto", relativePath: "node_modules/pkg/index.js", includePattern: "*.js", reasonFragment: "excluded directory"},
	}

	for _, testCase := range testCases {
		testingHandle.Run(testCase.name, func(testingHandle *testing.T) {
			scanConfig := buildScanConfig(testingHandle, config.ScanOptions{
				RootPath:        rootDirectory,
				IncludePatterns: []string{testCase.includePattern},
				MaxSizeValue:    testCase.maxSizeValue,
			})
			inclusionPolicy := policy.New(scanConfig, policy.GitPredicates{})

			decision := inclusionPolicy.Evaluate(newCandidate(rootDirectory, testCase.relativePath))
			if decision.Included {
				testingHandle.Fatalf("expected veto, got inclusion")
			}
			if !strings.Contains(decision.Reason, testCase.reasonFragment) {
				testingHandle.Fatalf("expected reason containing %q, got %q", testCase.reasonFragment, decision.Reason)
			}
		})
	}
}

// TestEvaluateDirectoryExclusion verifies ancestor-segment checks against both
// the built-in names and user exclude patterns.
func TestEvaluateDirectoryExclusion(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	writeProjectFile(testingHandle, rootDirectory, "node_modules/lib/index.js", []byte("x\n"))
	writeProjectFile(testingHandle, rootDirectory, "generated/out.go", []byte("package out\n"))
	writeProjectFile(testingHandle, rootDirectory, "src/app.go", []byte("package app\n"))

	scanConfig := buildScanConfig(testingHandle, config.ScanOptions{
		RootPath:        rootDirectory,
		ExcludePatterns: []string{"generated"},
	})
	inclusionPolicy := policy.New(scanConfig, policy.GitPredicates{})

	if decision := inclusionPolicy.Evaluate(newCandidate(rootDirectory, "node_modules/lib/index.js")); decision.Included {
		testingHandle.Errorf("expected exclusion under node_modules")
	}
	if decision := inclusionPolicy.Evaluate(newCandidate(rootDirectory, "generated/out.go")); decision.Included {
		testingHandle.Errorf("expected exclusion under pattern-matched directory")
	}
	if decision := inclusionPolicy.Evaluate(newCandidate(rootDirectory, "src/app.go")); !decision.Included {
		testingHandle.Errorf("expected inclusion, got: %s", decision.Reason)
	}
}

// TestEvaluateIncludeOnlyMode verifies that include-only mode rejects files
// matching no include pattern.
func TestEvaluateIncludeOnlyMode(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	writeProjectFile(testingHandle, rootDirectory, "main.go", []byte("package main\n"))
	writeProjectFile(testingHandle, rootDirectory, "notes.txt", []byte("notes\n"))

	scanConfig := buildScanConfig(testingHandle, config.ScanOptions{
		RootPath:        rootDirectory,
		IncludeOnly:     true,
		IncludePatterns: []string{"*.go"},
	})
	inclusionPolicy := policy.New(scanConfig, policy.GitPredicates{})

	if decision := inclusionPolicy.Evaluate(newCandidate(rootDirectory, "main.go")); !decision.Included {
		testingHandle.Errorf("expected go file included, got: %s", decision.Reason)
	}
	if decision := inclusionPolicy.Evaluate(newCandidate(rootDirectory, "notes.txt")); decision.Included {
		testingHandle.Errorf("expected text file excluded in include-only mode")
	}
}

// TestEvaluateTracking verifies tracked-set filtering, its overrides, and the
// degradation to gitignore-only behavior when no set is available.
func TestEvaluateTracking(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	writeProjectFile(testingHandle, rootDirectory, "main.go", []byte("package main\n"))
	writeProjectFile(testingHandle, rootDirectory, "scratch.go", []byte("package scratch\n"))
	writeProjectFile(testingHandle, rootDirectory, "README.md", []byte("# readme\n"))

	trackedPaths := map[string]struct{}{"main.go": {}}

	scanConfig := buildScanConfig(testingHandle, config.ScanOptions{
		RootPath: rootDirectory,
		GitMode:  types.GitModeFull,
	})
	inclusionPolicy := policy.New(scanConfig, policy.GitPredicates{TrackedPaths: trackedPaths})

	if decision := inclusionPolicy.Evaluate(newCandidate(rootDirectory, "main.go")); !decision.Included {
		testingHandle.Errorf("expected tracked file included, got: %s", decision.Reason)
	}
	if decision := inclusionPolicy.Evaluate(newCandidate(rootDirectory, "scratch.go")); decision.Included {
		testingHandle.Errorf("expected untracked file excluded")
	}
	if decision := inclusionPolicy.Evaluate(newCandidate(rootDirectory, "README.md")); !decision.Included {
		testingHandle.Errorf("expected always-include name to bypass tracking, got: %s", decision.Reason)
	}

	degradedPolicy := policy.New(scanConfig, policy.GitPredicates{})
	if decision := degradedPolicy.Evaluate(newCandidate(rootDirectory, "scratch.go")); !decision.Included {
		testingHandle.Errorf("expected nil tracked set to skip the tracking step, got: %s", decision.Reason)
	}
}

// TestEvaluateDefaultDenylist verifies the built-in denylist and its rescues.
func TestEvaluateDefaultDenylist(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	writeProjectFile(testingHandle, rootDirectory, "config.yaml", []byte("key: value\n"))
	writeProjectFile(testingHandle, rootDirectory, "schema.sql", []byte("select 1;\n"))
	writeProjectFile(testingHandle, rootDirectory, "README.md", []byte("# readme\n"))

	testCases := []struct {
		name            string
		relativePath    string
		typeOverrides   map[string]bool
		includePatterns []string
		expectedInclude bool
	}{
		{name: "YamlDenied", relativePath: "config.yaml", expectedInclude: false},
		{name: "YamlTypeOverride", relativePath: "config.yaml", typeOverrides: map[string]bool{".yaml": true}, expectedInclude: true},
		{name: "SqlIncludePatternRescue", relativePath: "schema.sql", includePatterns: []string{"*.sql"}, expectedInclude: true},
		{name: "ReadmeAlwaysIncluded", relativePath: "README.md", expectedInclude: true},
	}

	for _, testCase := range testCases {
		testingHandle.Run(testCase.name, func(testingHandle *testing.T) {
			scanConfig := buildScanConfig(testingHandle, config.ScanOptions{
				RootPath:        rootDirectory,
				TypeOverrides:   testCase.typeOverrides,
				IncludePatterns: testCase.includePatterns,
			})
			inclusionPolicy := policy.New(scanConfig, policy.GitPredicates{})

			decision := inclusionPolicy.Evaluate(newCandidate(rootDirectory, testCase.relativePath))
			if decision.Included != testCase.expectedInclude {
				testingHandle.Fatalf("expected included=%v, got %v (%s)", testCase.expectedInclude, decision.Included, decision.Reason)
			}
		})
	}
}

// TestEvaluateBinaryOptIn verifies that --include-binary admits NUL-bearing files.
func TestEvaluateBinaryOptIn(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	writeProjectFile(testingHandle, rootDirectory, "data.dat", []byte{0x00, 0x10, 0x20})

	excludingConfig := buildScanConfig(testingHandle, config.ScanOptions{RootPath: rootDirectory})
	if decision := policy.New(excludingConfig, policy.GitPredicates{}).Evaluate(newCandidate(rootDirectory, "data.dat")); decision.Included {
		testingHandle.Errorf("expected binary file excluded by default")
	}

	includingConfig := buildScanConfig(testingHandle, config.ScanOptions{RootPath: rootDirectory, IncludeBinary: true})
	if decision := policy.New(includingConfig, policy.GitPredicates{}).Evaluate(newCandidate(rootDirectory, "data.dat")); !decision.Included {
		testingHandle.Errorf("expected binary file included when requested, got: %s", decision.Reason)
	}
}
