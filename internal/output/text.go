package output

import (
	"fmt"
	"strings"

	"github.com/codedigest/cdigest/internal/analyzer"
	"github.com/codedigest/cdigest/internal/utils"
)

// contentSeparatorLine frames file headers in text output.
const contentSeparatorLine = "=================================================="

// GenerateSummaryString renders the aggregate summary block shared by the
// text renderer and the console report.
func GenerateSummaryString(root *analyzer.Node, estimatedSize int64) string {
	var summaryBuilder strings.Builder
	summaryBuilder.WriteString("\nSummary:\n")
	summaryBuilder.WriteString(fmt.Sprintf("Total files analyzed: %d\n", root.FileCount))
	summaryBuilder.WriteString(fmt.Sprintf("Total directories analyzed: %d\n", root.DirCount))
	summaryBuilder.WriteString(fmt.Sprintf("Estimated output size: %s\n", utils.FormatKilobytes(estimatedSize)))
	summaryBuilder.WriteString(fmt.Sprintf("Actual analyzed size: %s\n", utils.FormatKilobytes(root.Size)))
	summaryBuilder.WriteString(fmt.Sprintf("Total tokens: %d\n", root.TotalTokens))
	summaryBuilder.WriteString(fmt.Sprintf("Actual text content size: %s\n", utils.FormatKilobytes(root.TextContentSize)))
	return summaryBuilder.String()
}

// RenderText produces the plain-text digest: heading, directory structure,
// summary, and optionally every included file's content.
func RenderText(root *analyzer.Node, options RenderOptions) string {
	var textBuilder strings.Builder
	textBuilder.WriteString(fmt.Sprintf("Codebase Analysis for: %s\n", options.RootPath))
	textBuilder.WriteString("\nDirectory Structure:\n")
	textBuilder.WriteString(GenerateTreeString(root, TreeStringOptions{ShowSize: options.ShowSize, ShowIgnored: options.ShowIgnored}))
	textBuilder.WriteString(GenerateSummaryString(root, options.EstimatedSize))

	if options.IncludeContent {
		textBuilder.WriteString("\nFile Contents:\n")
		for _, fileContent := range analyzer.CollectFileContents(root) {
			textBuilder.WriteString("\n" + contentSeparatorLine + "\n")
			textBuilder.WriteString(fmt.Sprintf("File: %s\n", fileContent.Path))
			textBuilder.WriteString(contentSeparatorLine + "\n")
			textBuilder.WriteString(fileContent.Content)
			textBuilder.WriteString("\n")
		}
	}
	return textBuilder.String()
}
