// Package cli provides the command line interface.
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/promptpack/promptpack/internal/config"
	"github.com/promptpack/promptpack/internal/output"
	"github.com/promptpack/promptpack/internal/policy"
	"github.com/promptpack/promptpack/internal/scan"
	"github.com/promptpack/promptpack/internal/services/clipboard"
	"github.com/promptpack/promptpack/internal/services/gitdata"
	"github.com/promptpack/promptpack/internal/tokenizer"
	"github.com/promptpack/promptpack/internal/types"
	"github.com/promptpack/promptpack/internal/update"
	"github.com/promptpack/promptpack/internal/utils"
)

const (
	rootUse              = "promptpack [root_dir]"
	rootShortDescription = "package a project into LLM-ready Markdown context"
	rootLongDescription  = `promptpack scans a project directory, filters files through gitignore,
size, binary, and pattern rules, and packages the surviving source into a
single Markdown (or JSON) document suitable for pasting into an LLM prompt.
By default the document is copied to the clipboard; when stdout is a pipe the
content goes to stdout instead.`
	rootUsageExample = `  # Package the current project to the clipboard
  promptpack

  # Write the context document to a file, include SQL files
  promptpack -o context.md --include-sql ./server

  # Pipe to another tool, counting tokens for gpt-4o
  promptpack --tokens | wc -c`

	outputFlagName           = "output"
	stdoutFlagName           = "stdout"
	noClipboardFlagName      = "no-clipboard"
	excludeFlagName          = "exclude"
	includeFlagName          = "include"
	includeOnlyFlagName      = "include-only"
	excludeExtensionFlag     = "exclude-extension"
	includeExtensionFlag     = "include-extension"
	maxSizeFlagName          = "max-size"
	includeBinaryFlagName    = "include-binary"
	noGitignoreFlagName      = "no-gitignore"
	gitignoreOnlyFlagName    = "gitignore-only"
	useGitFlagName           = "use-git"
	formatFlagName           = "format"
	maxDepthFlagName         = "max-depth"
	sortAlphaFlagName        = "sort-alpha"
	previewFlagName          = "preview"
	dryRunFlagName           = "dry-run"
	showStatsFlagName        = "show-stats"
	tokensFlagName           = "tokens"
	modelFlagName            = "model"
	versionFlagName          = "version"
	checkUpdatesFlagName     = "check-updates"
	configFlagName           = "config"
	defaultPath              = "."
	defaultMaxSizeValue      = "2M"
	defaultTokenizerModel    = "gpt-4o"
	versionTemplate          = "promptpack version: %s\n"
	invalidFormatMessage     = "invalid format value '%s'"
	invalidGitModeMessage    = "invalid git mode '%s' in configuration"
	noFilesWarning           = "Warning: no files matched the filters\n"
	noFilesContent           = "# No files included"
	noFilesSummary           = "# No files matched the filters"
	warningTokenCountFormat  = "Warning: failed to count tokens for %s: %v\n"
	updateAvailableFormat    = "🚀 New version v%s available! (Current: v%s)\n   Run '%s' to update\n   Or use --check-updates for more options\n\n"
	updateCheckingMessage    = "🔍 Checking for updates..."
	updateLatestMessage      = "✅ You're running the latest version!"
	updateFoundFormat        = "🚀 New version available!\n   Current: v%s\n   Latest:  v%s\n   Update:  %s\n"
	dryRunCompleteFormat     = "\n🔍 Dry Run Complete!\nWould process %d files\nWould generate %s characters\n"
	gitModeNameNone          = "none"
	gitModeNameGitignoreOnly = "gitignore"
	gitModeNameFull          = "full"
)

// rootOptions collects every flag value of the root command.
type rootOptions struct {
	outputPath        string
	forceStdout       bool
	noClipboard       bool
	excludePatterns   []string
	includePatterns   []string
	includeOnly       bool
	excludeExtensions []string
	includeExtensions []string
	maxSizeValue      string
	includeBinary     bool
	noGitignore       bool
	gitignoreOnly     bool
	useGit            bool
	includeJSON       bool
	includeYAML       bool
	includeXML        bool
	includeHTML       bool
	includeCSS        bool
	includeSQL        bool
	includeCSV        bool
	includeMarkdown   bool
	outputFormat      string
	maxDepth          int
	sortAlpha         bool
	preview           bool
	dryRun            bool
	showStats         bool
	tokensEnabled     bool
	tokenizerModel    string
	showVersion       bool
	checkUpdates      bool
	configPath        string
}

// Execute runs the promptpack application.
func Execute() error {
	rootCommand := createRootCommand()
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command carrying the full flag
// surface.
func createRootCommand() *cobra.Command {
	var options rootOptions

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		Example:      rootUsageExample,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			rootPath := defaultPath
			if len(arguments) == 1 {
				rootPath = arguments[0]
			}
			return run(command, rootPath, &options)
		},
	}

	flags := rootCommand.Flags()
	flags.StringVarP(&options.outputPath, outputFlagName, "o", "", "output file path")
	flags.BoolVar(&options.forceStdout, stdoutFlagName, false, "print to stdout")
	flags.BoolVar(&options.noClipboard, noClipboardFlagName, false, "do not copy to clipboard")
	flags.StringArrayVar(&options.excludePatterns, excludeFlagName, nil, "glob pattern to exclude")
	flags.StringArrayVar(&options.includePatterns, includeFlagName, nil, "glob pattern to include")
	flags.BoolVar(&options.includeOnly, includeOnlyFlagName, false, "include ONLY matching patterns")
	flags.StringArrayVar(&options.excludeExtensions, excludeExtensionFlag, nil, "file extension to exclude")
	flags.StringArrayVar(&options.includeExtensions, includeExtensionFlag, nil, "file extension to include")
	flags.StringVar(&options.maxSizeValue, maxSizeFlagName, defaultMaxSizeValue, "max file size (e.g., 500k, 10M)")
	flags.BoolVar(&options.includeBinary, includeBinaryFlagName, false, "include binary files")
	flags.BoolVar(&options.noGitignore, noGitignoreFlagName, false, "ignore .gitignore and git")
	flags.BoolVar(&options.gitignoreOnly, gitignoreOnlyFlagName, false, "use .gitignore only")
	flags.BoolVar(&options.useGit, useGitFlagName, false, "use full git integration")
	flags.BoolVar(&options.includeJSON, "include-json", false, "include JSON files")
	flags.BoolVar(&options.includeYAML, "include-yaml", false, "include YAML files")
	flags.BoolVar(&options.includeXML, "include-xml", false, "include XML files")
	flags.BoolVar(&options.includeHTML, "include-html", false, "include HTML files")
	flags.BoolVar(&options.includeCSS, "include-css", false, "include CSS files")
	flags.BoolVar(&options.includeSQL, "include-sql", false, "include SQL files")
	flags.BoolVar(&options.includeCSV, "include-csv", false, "include CSV files")
	flags.BoolVar(&options.includeMarkdown, "include-markdown", false, "include Markdown files")
	flags.StringVar(&options.outputFormat, formatFlagName, types.FormatMarkdown, "output format (markdown or json)")
	flags.IntVar(&options.maxDepth, maxDepthFlagName, 0, "maximum directory depth (0 = unlimited)")
	flags.BoolVar(&options.sortAlpha, sortAlphaFlagName, false, "sort files alphabetically")
	flags.BoolVar(&options.preview, previewFlagName, false, "preview what would be included")
	flags.BoolVar(&options.dryRun, dryRunFlagName, false, "simulate without writing output")
	flags.BoolVar(&options.showStats, showStatsFlagName, false, "show detailed statistics only")
	flags.BoolVar(&options.tokensEnabled, tokensFlagName, false, "include token counts")
	flags.StringVar(&options.tokenizerModel, modelFlagName, defaultTokenizerModel, "tokenizer model for token counting")
	flags.BoolVar(&options.showVersion, versionFlagName, false, "display application version")
	flags.BoolVar(&options.checkUpdates, checkUpdatesFlagName, false, "check for available updates")
	flags.StringVar(&options.configPath, configFlagName, "", "path to configuration file")

	rootCommand.MarkFlagsMutuallyExclusive(noGitignoreFlagName, gitignoreOnlyFlagName, useGitFlagName)
	rootCommand.MarkFlagsMutuallyExclusive(outputFlagName, stdoutFlagName)

	return rootCommand
}

// run executes the full pipeline for one invocation.
func run(command *cobra.Command, rootPath string, options *rootOptions) error {
	if options.showVersion {
		fmt.Printf(versionTemplate, utils.GetApplicationVersion())
		return nil
	}
	if options.checkUpdates {
		return runUpdateCheck()
	}

	startTime := time.Now()

	applicationConfiguration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{
		ExplicitFilePath: options.configPath,
	})
	if configurationError != nil {
		return configurationError
	}
	if layerError := layerConfiguration(command, options, applicationConfiguration); layerError != nil {
		return layerError
	}

	outputFormatLower := strings.ToLower(options.outputFormat)
	if outputFormatLower != types.FormatMarkdown && outputFormatLower != types.FormatJSON {
		return fmt.Errorf(invalidFormatMessage, options.outputFormat)
	}

	gitMode := resolveGitMode(options)

	overrides := typeOverrides(options)
	for extension := range config.AutoTypeOverrides(rootPath, options.includeMarkdown, gitMode) {
		overrides[extension] = true
	}

	scanConfig, scanConfigError := config.NewScanConfig(config.ScanOptions{
		RootPath:           rootPath,
		GitMode:            gitMode,
		IncludeBinary:      options.includeBinary,
		MaxSizeValue:       options.maxSizeValue,
		MaxDepth:           options.maxDepth,
		SortAlphabetically: options.sortAlpha,
		IncludeOnly:        options.includeOnly,
		ExcludePatterns:    options.excludePatterns,
		IncludePatterns:    options.includePatterns,
		ExcludeExtensions:  options.excludeExtensions,
		IncludeExtensions:  options.includeExtensions,
		TypeOverrides:      overrides,
	})
	if scanConfigError != nil {
		return scanConfigError
	}

	if !options.preview && !options.dryRun {
		notifyUpdateAvailable()
	}

	gitPredicates := gitdata.Load(scanConfig.Root, scanConfig.GitMode)
	inclusionPolicy := policy.New(scanConfig, gitPredicates)
	walker := scan.NewWalker(scanConfig, inclusionPolicy)
	walkResult, walkError := walker.Run()
	if walkError != nil {
		return walkError
	}

	writer := output.NewWriter(clipboard.NewService())
	destination := output.Destination{
		FilePath:         options.outputPath,
		ForceStdout:      options.forceStdout,
		DisableClipboard: options.noClipboard,
	}

	if len(walkResult.Included) == 0 {
		fmt.Fprint(os.Stderr, noFilesWarning)
		if options.dryRun {
			return nil
		}
		return writer.Write(noFilesContent, noFilesSummary, destination)
	}

	fileResults := scan.LoadContents(walkResult.Included)

	tokenModel := ""
	if options.tokensEnabled {
		countedModel, tokenError := countTokens(fileResults, options.tokenizerModel)
		if tokenError != nil {
			return tokenError
		}
		tokenModel = countedModel
	}

	report := scan.BuildReport(scanConfig, fileResults, walkResult.TotalScanned, time.Since(startTime), tokenModel)
	statsByPath := scan.StatsByPath(report.IncludedFiles)
	report.Tree = scan.BuildTree(scanConfig, walkResult.IncludedSet, statsByPath)
	if !scanConfig.SortAlphabetically {
		scan.SortTreeByStats(report.Tree)
	}

	var content, summary string
	if outputFormatLower == types.FormatJSON {
		encoded, encodeError := output.FormatJSON(report)
		if encodeError != nil {
			return encodeError
		}
		content, summary = encoded, encoded
	} else {
		content = output.FormatFull(report)
		summary = output.FormatSummary(report)
	}

	switch {
	case options.preview || options.showStats:
		fmt.Fprintln(os.Stderr, summary)
		return nil
	case options.dryRun:
		fmt.Printf(dryRunCompleteFormat, len(report.IncludedFiles), utils.GroupDigits(len(content)))
		return nil
	}

	return writer.Write(content, summary, destination)
}

// layerConfiguration applies file-sourced defaults beneath flags the user did
// not set explicitly.
func layerConfiguration(command *cobra.Command, options *rootOptions, applicationConfiguration config.ApplicationConfiguration) error {
	flags := command.Flags()

	if !flags.Changed(formatFlagName) && applicationConfiguration.Format != "" {
		options.outputFormat = applicationConfiguration.Format
	}
	if !flags.Changed(maxSizeFlagName) && applicationConfiguration.MaxSize != "" {
		options.maxSizeValue = applicationConfiguration.MaxSize
	}
	if !flags.Changed(sortAlphaFlagName) && applicationConfiguration.SortAlpha != nil {
		options.sortAlpha = *applicationConfiguration.SortAlpha
	}
	if !flags.Changed(noClipboardFlagName) && applicationConfiguration.Clipboard != nil && !*applicationConfiguration.Clipboard {
		options.noClipboard = true
	}
	if !flags.Changed(tokensFlagName) && applicationConfiguration.Tokens.Enabled != nil {
		options.tokensEnabled = *applicationConfiguration.Tokens.Enabled
	}
	if !flags.Changed(modelFlagName) && applicationConfiguration.Tokens.Model != "" {
		options.tokenizerModel = applicationConfiguration.Tokens.Model
	}

	gitFlagSet := flags.Changed(noGitignoreFlagName) || flags.Changed(gitignoreOnlyFlagName) || flags.Changed(useGitFlagName)
	if !gitFlagSet && applicationConfiguration.GitMode != "" {
		switch strings.ToLower(applicationConfiguration.GitMode) {
		case gitModeNameNone:
			options.noGitignore = true
		case gitModeNameGitignoreOnly:
			options.gitignoreOnly = true
		case gitModeNameFull:
			options.useGit = true
		default:
			return fmt.Errorf(invalidGitModeMessage, applicationConfiguration.GitMode)
		}
	}

	options.excludePatterns = append(options.excludePatterns, applicationConfiguration.Paths.Exclude...)
	options.includePatterns = append(options.includePatterns, applicationConfiguration.Paths.Include...)
	return nil
}

// resolveGitMode maps the mutually exclusive git flag trio onto a mode.
// Full integration is the default.
func resolveGitMode(options *rootOptions) types.GitMode {
	switch {
	case options.noGitignore:
		return types.GitModeNone
	case options.gitignoreOnly:
		return types.GitModeGitignoreOnly
	default:
		return types.GitModeFull
	}
}

// typeOverrides converts the per-type include flags into extension overrides.
func typeOverrides(options *rootOptions) map[string]bool {
	overrides := make(map[string]bool)
	if options.includeJSON {
		overrides[".json"] = true
		overrides[".jsonc"] = true
	}
	if options.includeYAML {
		overrides[".yaml"] = true
		overrides[".yml"] = true
	}
	if options.includeXML {
		overrides[".xml"] = true
	}
	if options.includeHTML {
		overrides[".html"] = true
		overrides[".htm"] = true
	}
	if options.includeCSS {
		overrides[".css"] = true
	}
	if options.includeSQL {
		overrides[".sql"] = true
	}
	if options.includeCSV {
		overrides[".csv"] = true
		overrides[".tsv"] = true
	}
	if options.includeMarkdown {
		overrides[".md"] = true
		overrides[".markdown"] = true
		overrides[".rst"] = true
	}
	return overrides
}

// countTokens fills in per-file token counts. Failures on individual files
// warn and leave the count at zero; failing to build a counter is fatal.
func countTokens(fileResults []*types.FileResult, model string) (string, error) {
	counter, resolvedModel, counterError := tokenizer.NewCounter(model)
	if counterError != nil {
		return "", counterError
	}
	for _, fileResult := range fileResults {
		tokenCount, countError := counter.CountString(fileResult.Content)
		if countError != nil {
			fmt.Fprintf(os.Stderr, warningTokenCountFormat, fileResult.RelativePath, countError)
			continue
		}
		fileResult.TokenCount = tokenCount
	}
	return resolvedModel, nil
}

// runUpdateCheck performs the explicit --check-updates flow.
func runUpdateCheck() error {
	fmt.Println(updateCheckingMessage)
	checkContext, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	info, checkError := update.NewChecker().Check(checkContext, utils.GetApplicationVersion())
	if checkError != nil {
		return checkError
	}
	if info == nil {
		fmt.Println(updateLatestMessage)
		return nil
	}
	fmt.Printf(updateFoundFormat, info.CurrentVersion, info.LatestVersion, info.UpdateCommand)
	return nil
}

// notifyUpdateAvailable prints a short banner on normal runs when a newer
// release exists. Failures stay silent.
func notifyUpdateAvailable() {
	checkContext, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	info, checkError := update.NewChecker().Check(checkContext, utils.GetApplicationVersion())
	if checkError != nil || info == nil {
		return
	}
	fmt.Fprintf(os.Stderr, updateAvailableFormat, info.LatestVersion, info.CurrentVersion, info.UpdateCommand)
}
