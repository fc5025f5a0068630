// Package cli provides the command line interface.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/codedigest/cdigest/internal/analyzer"
	"github.com/codedigest/cdigest/internal/archive"
	"github.com/codedigest/cdigest/internal/config"
	"github.com/codedigest/cdigest/internal/ignore"
	"github.com/codedigest/cdigest/internal/output"
	"github.com/codedigest/cdigest/internal/services/clipboard"
	"github.com/codedigest/cdigest/internal/tokenizer"
	"github.com/codedigest/cdigest/internal/utils"
)

const (
	maxDepthFlagName           = "max-depth"
	outputFormatFlagName       = "output-format"
	outputFileFlagName         = "file"
	showSizeFlagName           = "show-size"
	showIgnoredFlagName        = "show-ignored"
	ignoreFlagName             = "ignore"
	noDefaultIgnoresFlagName   = "no-default-ignores"
	noContentFlagName          = "no-content"
	includeGitFlagName         = "include-git"
	maxSizeFlagName            = "max-size"
	copyToClipboardFlagName    = "copy-to-clipboard"
	filterFlagName             = "filter"
	extractDefinitionsFlagName = "extract-definitions"
	createZipFlagName          = "create-zip"
	modelFlagName              = "model"
	versionFlagName            = "version"

	maxDepthFlagDescription           = "maximum depth for directory traversal (negative means unlimited)"
	outputFormatFlagDescription       = "output format: text, json, markdown, xml, or html"
	outputFileFlagDescription         = "output file name (default: <directory>_codebase_digest.<extension>)"
	showSizeFlagDescription           = "show file sizes in the directory tree"
	showIgnoredFlagDescription        = "show ignored files and directories in the tree"
	ignoreFlagDescription             = "additional ignore pattern, may be repeated"
	noDefaultIgnoresFlagDescription   = "disable the built-in default ignore patterns"
	noContentFlagDescription          = "exclude file contents from the output"
	includeGitFlagDescription         = "include the .git directory in the analysis"
	maxSizeFlagDescription            = "maximum allowed text content size in KB"
	copyToClipboardFlagDescription    = "copy the output to the clipboard after analysis"
	filterFlagDescription             = "content pattern a file must contain to be included, may be repeated"
	extractDefinitionsFlagDescription = "extract only class and function definitions containing the filter patterns"
	createZipFlagDescription          = "create a zip archive of the analyzed files in the current directory"
	modelFlagDescription              = "tokenizer model used for token counting"
	versionFlagDescription            = "display application version"

	rootUse              = "cdigest [path]"
	rootShortDescription = "consolidate a codebase into a single digest document"
	rootLongDescription  = `cdigest scans a directory tree, classifies files as text or binary, applies
ignore and content-filter rules, and renders a consolidated report with the
directory structure, summary statistics, and file contents.
Use --output-format to select text, json, markdown, xml, or html output.`
	rootUsageExample = `  # Digest the current directory as markdown
  cdigest -o markdown .

  # Only include files mentioning a symbol, definitions only, zipped
  cdigest --filter MyService --extract-definitions --create-zip ./src`

	versionTemplate = "cdigest version: %s\n"
	defaultPath     = "."

	defaultOutputFormat     = output.FormatText
	defaultMaxSizeKilobytes = 10240
	defaultTokenizerModel   = "gpt-4o"

	bannerText               = "Codebase Digest"
	summaryFrameText         = "Analysis Summary"
	analyzingDirectoryFormat = "Analyzing directory: %s"
	estimatedSizeFormat      = "Estimated output size: %s"
	noMatchesMessage         = "No matching files found after filtering."
	analysisAbortedMessage   = "Analysis aborted."
	analysisSavedFormat      = "Analysis saved to: %s"
	clipboardCopiedMessage   = "Output copied to clipboard!"
	archiveCreatedFormat     = "Zip archive created: %s"
	proceedPrompt            = "Do you want to proceed? (y/n): "
	affirmativeAnswer        = "y"

	estimateExceedsMaximumFormat = "The estimated output size (%s) exceeds the maximum allowed size (%d KB)."
	totalSizeNoticeFormat        = "The total size of all text files in the directory (%s) is significantly larger than the estimated output size."
	totalSizeNoticeDetail        = "This is likely due to large files or directories that will be ignored in the analysis."
	contentExceedsMaximumFormat  = "The text content size (%s) exceeds the maximum allowed size (%d KB)."

	outputFileNameFormat  = "%s_codebase_digest.%s"
	archiveFileNameFormat = "%s_codebase_digest.zip"

	invalidFormatMessage         = "invalid output format '%s'"
	extractWithoutContentMessage = "--extract-definitions cannot be used with --no-content"
	errorPathMissingFormat       = "path '%s' does not exist"
	errorPathNotDirectoryFormat  = "path '%s' is not a directory"
	errorAbsolutePathFormat      = "abs failed for '%s': %w"
	errorStatFormat              = "stat failed for '%s': %w"
	errorWriteOutputFormat       = "writing output to %s: %w"
	warningTokenizerInitFormat   = "Token counting disabled: %v"
	infoTokenizerEncoderFormat   = "Counting tokens with encoder: %s"
	warningClipboardFormat       = "Failed to copy output to clipboard: %v"
	warningStagingCleanupFormat  = "Failed to remove staging directory %s: %v"
)

// rootOptions stores every flag value of the root command.
type rootOptions struct {
	maxDepth           int
	outputFormat       string
	outputFile         string
	showSize           bool
	showIgnored        bool
	ignorePatterns     []string
	noDefaultIgnores   bool
	noContent          bool
	includeGit         bool
	maxSizeKilobytes   int
	copyToClipboard    bool
	filterPatterns     []string
	extractDefinitions bool
	createZip          bool
	tokenizerModel     string
	showVersion        bool
}

// Execute runs the cdigest application.
func Execute(logger *zap.Logger) error {
	rootCommand, _ := createRootCommand(logger)
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command and returns it together with
// the options struct its flags are bound to.
func createRootCommand(logger *zap.Logger) (*cobra.Command, *rootOptions) {
	options := &rootOptions{}

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		Example:      rootUsageExample,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			if options.showVersion {
				fmt.Fprintf(command.OutOrStdout(), versionTemplate, utils.GetApplicationVersion())
				return nil
			}
			inputPath := defaultPath
			if len(arguments) > 0 {
				inputPath = arguments[0]
			}
			return runDigest(command, inputPath, options, logger)
		},
	}

	flagSet := rootCommand.Flags()
	flagSet.IntVarP(&options.maxDepth, maxDepthFlagName, "d", -1, maxDepthFlagDescription)
	flagSet.StringVarP(&options.outputFormat, outputFormatFlagName, "o", defaultOutputFormat, outputFormatFlagDescription)
	flagSet.StringVarP(&options.outputFile, outputFileFlagName, "f", "", outputFileFlagDescription)
	flagSet.BoolVar(&options.showSize, showSizeFlagName, false, showSizeFlagDescription)
	flagSet.BoolVar(&options.showIgnored, showIgnoredFlagName, false, showIgnoredFlagDescription)
	flagSet.StringArrayVar(&options.ignorePatterns, ignoreFlagName, nil, ignoreFlagDescription)
	flagSet.BoolVar(&options.noDefaultIgnores, noDefaultIgnoresFlagName, false, noDefaultIgnoresFlagDescription)
	flagSet.BoolVar(&options.noContent, noContentFlagName, false, noContentFlagDescription)
	flagSet.BoolVar(&options.includeGit, includeGitFlagName, false, includeGitFlagDescription)
	flagSet.IntVar(&options.maxSizeKilobytes, maxSizeFlagName, defaultMaxSizeKilobytes, maxSizeFlagDescription)
	flagSet.BoolVar(&options.copyToClipboard, copyToClipboardFlagName, false, copyToClipboardFlagDescription)
	flagSet.StringArrayVar(&options.filterPatterns, filterFlagName, nil, filterFlagDescription)
	flagSet.BoolVar(&options.extractDefinitions, extractDefinitionsFlagName, false, extractDefinitionsFlagDescription)
	flagSet.BoolVar(&options.createZip, createZipFlagName, false, createZipFlagDescription)
	flagSet.StringVar(&options.tokenizerModel, modelFlagName, defaultTokenizerModel, modelFlagDescription)
	flagSet.BoolVar(&options.showVersion, versionFlagName, false, versionFlagDescription)

	return rootCommand, options
}

// applyConfiguration overlays file configuration onto options for every flag
// the user did not set explicitly.
func applyConfiguration(command *cobra.Command, options *rootOptions, configuration config.ApplicationConfiguration) {
	flagSet := command.Flags()
	if !flagSet.Changed(outputFormatFlagName) && configuration.Format != "" {
		options.outputFormat = configuration.Format
	}
	if !flagSet.Changed(outputFileFlagName) && configuration.File != "" {
		options.outputFile = configuration.File
	}
	if !flagSet.Changed(maxSizeFlagName) && configuration.MaxSizeKilobytes != nil {
		options.maxSizeKilobytes = *configuration.MaxSizeKilobytes
	}
	if !flagSet.Changed(showSizeFlagName) && configuration.ShowSize != nil {
		options.showSize = *configuration.ShowSize
	}
	if !flagSet.Changed(showIgnoredFlagName) && configuration.ShowIgnored != nil {
		options.showIgnored = *configuration.ShowIgnored
	}
	if !flagSet.Changed(modelFlagName) && configuration.TokenizerModel != "" {
		options.tokenizerModel = configuration.TokenizerModel
	}
	if !flagSet.Changed(noDefaultIgnoresFlagName) && configuration.NoDefaultIgnores != nil {
		options.noDefaultIgnores = *configuration.NoDefaultIgnores
	}
	if !flagSet.Changed(copyToClipboardFlagName) && configuration.Clipboard != nil {
		options.copyToClipboard = *configuration.Clipboard
	}
	options.ignorePatterns = append(append([]string{}, configuration.Ignore...), options.ignorePatterns...)
}

// runDigest executes the full scan, render, and delivery sequence for inputPath.
func runDigest(command *cobra.Command, inputPath string, options *rootOptions, logger *zap.Logger) error {
	stdout := command.OutOrStdout()

	if options.extractDefinitions && options.noContent {
		return errors.New(extractWithoutContentMessage)
	}

	scanRoot, validateError := resolveAndValidateDirectory(inputPath)
	if validateError != nil {
		return validateError
	}

	configuration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{})
	if configurationError != nil {
		return configurationError
	}
	applyConfiguration(command, options, configuration)
	outputFormat := strings.ToLower(options.outputFormat)
	if !output.IsSupportedFormat(outputFormat) {
		return fmt.Errorf(invalidFormatMessage, outputFormat)
	}

	pooledPatterns, patternsError := config.LoadIgnorePatterns(scanRoot, options.ignorePatterns, !options.noDefaultIgnores)
	if patternsError != nil {
		return patternsError
	}
	matcher := ignore.NewMatcher(scanRoot, pooledPatterns)

	output.PrintFrame(stdout, bannerText)
	output.PrintHeading(stdout, fmt.Sprintf(analyzingDirectoryFormat, inputPath))

	estimatedSize := analyzer.EstimateOutputSize(scanRoot, matcher)
	fmt.Fprintf(stdout, estimatedSizeFormat+"\n", utils.FormatKilobytes(estimatedSize))

	if !confirmSizeWithinBounds(command, options, scanRoot, estimatedSize) {
		output.PrintNotice(stdout, analysisAbortedMessage)
		return nil
	}

	var stagingArea *analyzer.StagingArea
	if options.createZip {
		createdArea, stagingError := analyzer.NewStagingArea()
		if stagingError != nil {
			return stagingError
		}
		stagingArea = createdArea
		defer func() {
			if removeError := stagingArea.Remove(); removeError != nil {
				logger.Warn(fmt.Sprintf(warningStagingCleanupFormat, stagingArea.RootDirectory(), removeError))
			}
		}()
	}

	tokenCounter := createTokenCounter(options.tokenizerModel, logger)

	analyzerOptions := analyzer.Options{
		Matcher:            matcher,
		IncludeGit:         options.includeGit,
		MaxDepth:           options.maxDepth,
		FilterPatterns:     options.filterPatterns,
		ExtractDefinitions: options.extractDefinitions,
		TokenCounter:       tokenCounter,
		Logger:             logger,
	}
	if stagingArea != nil {
		analyzerOptions.Staging = stagingArea
	}

	rootNode, analyzeError := analyzer.New(scanRoot, analyzerOptions).Analyze()
	if analyzeError != nil {
		return analyzeError
	}
	if rootNode == nil {
		output.PrintNotice(stdout, noMatchesMessage)
		return nil
	}

	renderOptions := output.RenderOptions{
		RootPath:       inputPath,
		EstimatedSize:  estimatedSize,
		ShowSize:       options.showSize,
		ShowIgnored:    options.showIgnored,
		IncludeContent: !options.noContent,
	}
	renderedOutput, renderError := output.Render(outputFormat, rootNode, renderOptions)
	if renderError != nil {
		return renderError
	}

	outputFilePath, deliveryError := deliverResults(options, scanRoot, outputFormat, renderedOutput, stagingArea, logger, stdout)
	if deliveryError != nil {
		return deliveryError
	}
	output.PrintSuccess(stdout, fmt.Sprintf(analysisSavedFormat, outputFilePath))

	output.PrintFrame(stdout, summaryFrameText)
	output.PrintTree(stdout, output.GenerateTreeString(rootNode, output.TreeStringOptions{ShowSize: options.showSize, ShowIgnored: options.showIgnored}))
	output.PrintSummary(stdout, output.GenerateSummaryString(rootNode, estimatedSize))

	if rootNode.TextContentSize/1024 > int64(options.maxSizeKilobytes) {
		output.PrintNotice(stdout, fmt.Sprintf(contentExceedsMaximumFormat, utils.FormatKilobytes(rootNode.TextContentSize), options.maxSizeKilobytes))
	}
	return nil
}

// confirmSizeWithinBounds enforces the pre-traversal size guard. It returns
// false only when the user declines an oversized run.
func confirmSizeWithinBounds(command *cobra.Command, options *rootOptions, scanRoot string, estimatedSize int64) bool {
	stdout := command.OutOrStdout()
	if estimatedSize/1024 > int64(options.maxSizeKilobytes) {
		output.PrintNotice(stdout, fmt.Sprintf(estimateExceedsMaximumFormat, utils.FormatKilobytes(estimatedSize), options.maxSizeKilobytes))
		return promptYes(command.InOrStdin(), stdout)
	}
	totalTextSize := analyzer.TotalTextFileSize(scanRoot)
	if totalTextSize/1024 > int64(options.maxSizeKilobytes)*2 {
		output.PrintNotice(stdout, fmt.Sprintf(totalSizeNoticeFormat, utils.FormatKilobytes(totalTextSize)))
		output.PrintNotice(stdout, totalSizeNoticeDetail)
	}
	return true
}

// promptYes asks for confirmation and reports whether the answer was affirmative.
func promptYes(input io.Reader, stdout io.Writer) bool {
	fmt.Fprint(stdout, proceedPrompt)
	answerReader := bufio.NewReader(input)
	answerLine, readError := answerReader.ReadString('\n')
	if readError != nil && answerLine == "" {
		return false
	}
	return strings.ToLower(strings.TrimSpace(answerLine)) == affirmativeAnswer
}

// createTokenCounter builds the tokenizer, degrading to disabled counting
// with a warning when initialization fails.
func createTokenCounter(model string, logger *zap.Logger) tokenizer.Counter {
	tokenCounter, counterError := tokenizer.NewCounter(tokenizer.Config{Model: model})
	if counterError != nil {
		logger.Warn(fmt.Sprintf(warningTokenizerInitFormat, counterError))
		return nil
	}
	logger.Info(fmt.Sprintf(infoTokenizerEncoderFormat, tokenCounter.Name()))
	return tokenCounter
}

// deliverResults writes the rendered digest to its output file and runs the
// independent delivery steps (clipboard copy, archive creation) concurrently.
// It returns the absolute output file path.
func deliverResults(
	options *rootOptions,
	scanRoot string,
	outputFormat string,
	renderedOutput string,
	stagingArea *analyzer.StagingArea,
	logger *zap.Logger,
	stdout io.Writer,
) (string, error) {
	outputFileName := options.outputFile
	if outputFileName == "" {
		outputFileName = fmt.Sprintf(outputFileNameFormat, filepath.Base(scanRoot), output.FileExtensionForFormat(outputFormat))
	}
	outputFilePath, absoluteError := filepath.Abs(outputFileName)
	if absoluteError != nil {
		return "", fmt.Errorf(errorAbsolutePathFormat, outputFileName, absoluteError)
	}

	deliveryGroup := new(errgroup.Group)

	deliveryGroup.Go(func() error {
		if writeError := os.WriteFile(outputFilePath, []byte(renderedOutput), 0o644); writeError != nil {
			return fmt.Errorf(errorWriteOutputFormat, outputFilePath, writeError)
		}
		return nil
	})

	if options.copyToClipboard {
		deliveryGroup.Go(func() error {
			if copyError := clipboard.NewService().Copy(renderedOutput); copyError != nil {
				logger.Warn(fmt.Sprintf(warningClipboardFormat, copyError))
				return nil
			}
			output.PrintSuccess(stdout, clipboardCopiedMessage)
			return nil
		})
	}

	if stagingArea != nil {
		archiveFileName := fmt.Sprintf(archiveFileNameFormat, filepath.Base(scanRoot))
		deliveryGroup.Go(func() error {
			if archiveError := archive.CreateZipArchive(stagingArea.RootDirectory(), archiveFileName); archiveError != nil {
				return archiveError
			}
			output.PrintSuccess(stdout, fmt.Sprintf(archiveCreatedFormat, archiveFileName))
			return nil
		})
	}

	if waitError := deliveryGroup.Wait(); waitError != nil {
		return "", waitError
	}
	return outputFilePath, nil
}

// resolveAndValidateDirectory converts inputPath to absolute form and verifies
// it exists and is a directory.
func resolveAndValidateDirectory(inputPath string) (string, error) {
	absolutePath, absoluteError := filepath.Abs(inputPath)
	if absoluteError != nil {
		return "", fmt.Errorf(errorAbsolutePathFormat, inputPath, absoluteError)
	}
	cleanPath := filepath.Clean(absolutePath)
	pathInfo, statError := os.Stat(cleanPath)
	if statError != nil {
		if os.IsNotExist(statError) {
			return "", fmt.Errorf(errorPathMissingFormat, inputPath)
		}
		return "", fmt.Errorf(errorStatFormat, inputPath, statError)
	}
	if !pathInfo.IsDir() {
		return "", fmt.Errorf(errorPathNotDirectoryFormat, inputPath)
	}
	return cleanPath, nil
}
