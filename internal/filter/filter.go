// Package filter gates file content on required substrings and extracts
// matching definition blocks. Extraction is heuristic and pattern-based; the
// tool performs no syntactic parsing.
package filter

import (
	"strings"

	"github.com/dlclark/regexp2"
)

// Definition blocks span from their introducer line up to, but not including,
// the next top-level introducer line or the end of the content. The lookahead
// needed to delimit blocks is why regexp2 is used instead of the standard
// library matcher.
var (
	classBlockExpression = regexp2.MustCompile(
		`^\s*class\s+\w+.*?:(.*?)(?=\n^\s*class\s+\w+.*?:|\n^\s*def\s+\w+\(.*?\):|\z)`,
		regexp2.Singleline|regexp2.Multiline,
	)
	functionBlockExpression = regexp2.MustCompile(
		`^\s*def\s+\w+\(.*?\):(.*?)(?=\n^\s*class\s+\w+.*?:|\n^\s*def\s+\w+\(.*?\):|\z)`,
		regexp2.Singleline|regexp2.Multiline,
	)
)

// blockSeparator terminates each retained definition block in the extracted output.
const blockSeparator = "\n\n"

// PassesFilter reports whether content contains every required pattern.
// Empty requiredPatterns admits all content.
func PassesFilter(content string, requiredPatterns []string) bool {
	for _, requiredPattern := range requiredPatterns {
		if !strings.Contains(content, requiredPattern) {
			return false
		}
	}
	return true
}

// ExtractDefinitions returns the class-like and function-like blocks of content
// that contain at least one of the required patterns. Class blocks are scanned
// first, then function blocks, each retained block followed by a blank line.
// An empty result means no definition matched.
func ExtractDefinitions(content string, requiredPatterns []string) string {
	var extractedBuilder strings.Builder
	appendMatchingBlocks(&extractedBuilder, classBlockExpression, content, requiredPatterns)
	appendMatchingBlocks(&extractedBuilder, functionBlockExpression, content, requiredPatterns)
	return extractedBuilder.String()
}

// appendMatchingBlocks writes every block matched by blockExpression that
// contains one of the required patterns.
func appendMatchingBlocks(builder *strings.Builder, blockExpression *regexp2.Regexp, content string, requiredPatterns []string) {
	currentMatch, matchError := blockExpression.FindStringMatch(content)
	for matchError == nil && currentMatch != nil {
		blockText := currentMatch.String()
		if containsAnyPattern(blockText, requiredPatterns) {
			builder.WriteString(blockText)
			builder.WriteString(blockSeparator)
		}
		currentMatch, matchError = blockExpression.FindNextMatch(currentMatch)
	}
}

// containsAnyPattern reports whether text contains at least one pattern.
func containsAnyPattern(text string, patterns []string) bool {
	for _, patternValue := range patterns {
		if strings.Contains(text, patternValue) {
			return true
		}
	}
	return false
}
