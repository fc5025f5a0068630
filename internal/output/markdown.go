package output

import (
	"fmt"
	"strings"

	"github.com/codedigest/cdigest/internal/analyzer"
	"github.com/codedigest/cdigest/internal/utils"
)

// RenderMarkdown produces the markdown digest with a fenced directory tree,
// a summary list, and fenced file contents.
func RenderMarkdown(root *analyzer.Node, options RenderOptions) string {
	var markdownBuilder strings.Builder
	markdownBuilder.WriteString(fmt.Sprintf("# Codebase Analysis for: %s\n\n", root.Name))
	markdownBuilder.WriteString("## Directory Structure\n\n")
	markdownBuilder.WriteString("```\n")
	markdownBuilder.WriteString(GenerateTreeString(root, TreeStringOptions{ShowSize: true, ShowIgnored: true}))
	markdownBuilder.WriteString("```\n\n")
	markdownBuilder.WriteString("## Summary\n\n")
	markdownBuilder.WriteString(fmt.Sprintf("- Total files: %d\n", root.FileCount))
	markdownBuilder.WriteString(fmt.Sprintf("- Total directories: %d\n", root.DirCount))
	markdownBuilder.WriteString(fmt.Sprintf("- Analyzed size: %s\n", utils.FormatKilobytes(root.Size)))
	markdownBuilder.WriteString(fmt.Sprintf("- Total text file size (including ignored): %s\n", utils.FormatKilobytes(root.TotalTextSize)))
	markdownBuilder.WriteString(fmt.Sprintf("- Total tokens: %d\n", root.TotalTokens))
	markdownBuilder.WriteString(fmt.Sprintf("- Analyzed text content size: %s\n\n", utils.FormatKilobytes(root.TextContentSize)))

	if options.IncludeContent {
		markdownBuilder.WriteString("## File Contents\n\n")
		for _, fileContent := range analyzer.CollectFileContents(root) {
			markdownBuilder.WriteString(fmt.Sprintf("### %s\n\n```\n%s\n```\n\n", fileContent.Path, fileContent.Content))
		}
	}
	return markdownBuilder.String()
}
