package analyzer

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/codedigest/cdigest/internal/filter"
	"github.com/codedigest/cdigest/internal/ignore"
	"github.com/codedigest/cdigest/internal/tokenizer"
	"github.com/codedigest/cdigest/internal/utils"
)

const (
	// warningSkipDirectoryFormat is used when a directory listing fails and its subtree is skipped.
	warningSkipDirectoryFormat = "Skipping directory %s: %v"
	// warningStatEntryFormat is used when file information cannot be retrieved.
	warningStatEntryFormat = "Unable to stat %s: %v"
	// warningTokenCountFormat is used when token estimation fails for a file.
	warningTokenCountFormat = "Failed to count tokens for %s: %v"
	// readErrorContentFormat substitutes for file content that could not be read.
	readErrorContentFormat = "Error reading file: %v"
)

// Options configures a directory analysis run.
type Options struct {
	// Matcher decides which discovered paths are ignored.
	Matcher *ignore.Matcher
	// IncludeGit opts the VCS metadata directory into traversal. Without it
	// the directory is skipped entirely, independent of pattern evaluation.
	IncludeGit bool
	// MaxDepth bounds traversal depth; a negative value means unlimited.
	MaxDepth int
	// FilterPatterns are substrings a file's content must all contain to be included.
	FilterPatterns []string
	// ExtractDefinitions narrows included content to definition blocks
	// containing at least one filter pattern.
	ExtractDefinitions bool
	// Staging, when non-nil, receives a copy of every included text file.
	Staging Sink
	// TokenCounter estimates tokens for included text content; nil disables counting.
	TokenCounter tokenizer.Counter
	// Logger receives warnings for recoverable conditions.
	Logger *zap.Logger
}

// Analyzer performs the recursive traversal for a single scan root.
type Analyzer struct {
	options  Options
	scanRoot string
	logger   *zap.Logger
}

// New constructs an Analyzer rooted at scanRoot.
func New(scanRoot string, options Options) *Analyzer {
	absoluteScanRoot, absoluteError := filepath.Abs(scanRoot)
	if absoluteError != nil {
		absoluteScanRoot = filepath.Clean(scanRoot)
	}
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{options: options, scanRoot: absoluteScanRoot, logger: logger}
}

// Analyze builds the annotated tree for the scan root. A nil node with a nil
// error means nothing matched after rule and filter application; callers must
// treat that as "nothing to report", not as a failure.
func (analyzer *Analyzer) Analyze() (*Node, error) {
	rootNode, buildError := analyzer.buildDirectory(analyzer.scanRoot, 0)
	if buildError != nil {
		return nil, buildError
	}
	if rootNode == nil {
		return nil, nil
	}
	rootSurvives, aggregateError := analyzer.aggregateAndPrune(rootNode)
	if aggregateError != nil {
		return nil, aggregateError
	}
	if !rootSurvives {
		return nil, nil
	}
	return rootNode, nil
}

// buildDirectory recursively lists directoryPath and produces its unaggregated
// node. A nil node means the branch is absent: the depth limit was exceeded or
// the listing failed and the subtree was skipped.
func (analyzer *Analyzer) buildDirectory(directoryPath string, currentDepth int) (*Node, error) {
	if analyzer.options.MaxDepth >= 0 && currentDepth > analyzer.options.MaxDepth {
		return nil, nil
	}

	directoryNode := &Node{
		Name: filepath.Base(directoryPath),
		Kind: NodeKindDirectory,
		Path: directoryPath,
	}

	directoryEntries, readDirectoryError := os.ReadDir(directoryPath)
	if readDirectoryError != nil {
		analyzer.logger.Warn(fmt.Sprintf(warningSkipDirectoryFormat, directoryPath, readDirectoryError))
		return nil, nil
	}

	for _, directoryEntry := range directoryEntries {
		entryName := directoryEntry.Name()
		if directoryEntry.IsDir() && entryName == utils.GitDirectoryName && !analyzer.options.IncludeGit {
			continue
		}

		entryPath := filepath.Join(directoryPath, entryName)
		entryIsIgnored := analyzer.options.Matcher.Matches(entryPath)

		if directoryEntry.IsDir() {
			if entryIsIgnored {
				directoryNode.Children = append(directoryNode.Children, &Node{
					Name:      entryName,
					Kind:      NodeKindDirectory,
					Path:      entryPath,
					IsIgnored: true,
				})
				continue
			}
			subdirectoryNode, buildError := analyzer.buildDirectory(entryPath, currentDepth+1)
			if buildError != nil {
				return nil, buildError
			}
			if subdirectoryNode != nil {
				directoryNode.Children = append(directoryNode.Children, subdirectoryNode)
			}
			continue
		}

		fileNode, fileError := analyzer.buildFile(directoryNode, entryPath, directoryEntry, entryIsIgnored)
		if fileError != nil {
			return nil, fileError
		}
		if fileNode != nil {
			directoryNode.Children = append(directoryNode.Children, fileNode)
		}
	}

	return directoryNode, nil
}

// buildFile classifies and processes a single directory entry. A nil node with
// a nil error means the file was dropped by content filtering. The parent node
// accumulates the total-text-size counter for every text file, ignored or not,
// before the ignore decision applies.
func (analyzer *Analyzer) buildFile(parentNode *Node, entryPath string, directoryEntry os.DirEntry, entryIsIgnored bool) (*Node, error) {
	entryInfo, infoError := directoryEntry.Info()
	if infoError != nil {
		analyzer.logger.Warn(fmt.Sprintf(warningStatEntryFormat, entryPath, infoError))
		return nil, nil
	}
	fileSize := entryInfo.Size()

	fileIsText := utils.IsTextFile(entryPath)
	if fileIsText {
		parentNode.TotalTextSize += fileSize
	}

	fileNode := &Node{
		Name:      directoryEntry.Name(),
		Kind:      NodeKindFile,
		Size:      fileSize,
		Path:      entryPath,
		IsText:    fileIsText,
		IsIgnored: entryIsIgnored,
	}

	if !fileIsText {
		fileNode.Content = utils.NonTextContentSentinel
	}
	if entryIsIgnored || !fileIsText {
		return fileNode, nil
	}

	content := analyzer.readFileContent(entryPath)
	if len(analyzer.options.FilterPatterns) > 0 {
		if !filter.PassesFilter(content, analyzer.options.FilterPatterns) {
			return nil, nil
		}
		if analyzer.options.ExtractDefinitions {
			content = filter.ExtractDefinitions(content, analyzer.options.FilterPatterns)
			if content == "" {
				return nil, nil
			}
		}
	}

	fileNode.Content = content
	fileNode.Tokens = analyzer.countTokens(entryPath, content)

	if analyzer.options.Staging != nil {
		relativePath := utils.RelativePathOrSelf(entryPath, analyzer.scanRoot)
		if stageError := analyzer.options.Staging.StageFile(relativePath, entryPath); stageError != nil {
			return nil, stageError
		}
	}

	return fileNode, nil
}

// readFileContent reads the file's bytes, substituting an error marker when
// reading fails so the file still counts as processed.
func (analyzer *Analyzer) readFileContent(filePath string) string {
	fileData, readError := os.ReadFile(filePath)
	if readError != nil {
		return fmt.Sprintf(readErrorContentFormat, readError)
	}
	return string(fileData)
}

// countTokens estimates tokens for content, degrading to zero with a warning
// when the tokenizer fails.
func (analyzer *Analyzer) countTokens(filePath string, content string) int {
	if analyzer.options.TokenCounter == nil {
		return 0
	}
	tokenCount, countError := analyzer.options.TokenCounter.CountString(content)
	if countError != nil {
		analyzer.logger.Warn(fmt.Sprintf(warningTokenCountFormat, filePath, countError))
		return 0
	}
	return tokenCount
}
