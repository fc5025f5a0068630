// Package ignore decides whether filesystem paths match glob-style ignore patterns.
package ignore

import (
	"path/filepath"
	"strings"

	"github.com/codedigest/cdigest/internal/utils"
)

// rootedPatternPrefix marks patterns anchored to the scan root.
const rootedPatternPrefix = "/"

// Matcher evaluates paths against a fixed set of shell-style glob patterns.
// A path matches when any pattern matches its base name, its path relative to
// the scan root, its absolute path, or any single segment of the relative
// path. Patterns prefixed with "/" additionally match when the absolute path
// equals the scan root joined with the pattern stripped of its leading slash.
// There is no negation syntax; a match cannot be undone by a later pattern.
type Matcher struct {
	scanRoot string
	patterns []string
}

// NewMatcher constructs a Matcher for the provided scan root and patterns.
// The scan root is resolved to absolute form once at construction time.
func NewMatcher(scanRoot string, patterns []string) *Matcher {
	absoluteScanRoot, absoluteError := filepath.Abs(scanRoot)
	if absoluteError != nil {
		absoluteScanRoot = filepath.Clean(scanRoot)
	}
	return &Matcher{scanRoot: absoluteScanRoot, patterns: patterns}
}

// Patterns returns the pattern set the Matcher evaluates against.
func (matcher *Matcher) Patterns() []string {
	return matcher.patterns
}

// Matches reports whether the path at candidatePath is excluded by any pattern.
func (matcher *Matcher) Matches(candidatePath string) bool {
	absolutePath := candidatePath
	if !filepath.IsAbs(candidatePath) {
		if resolved, resolveError := filepath.Abs(candidatePath); resolveError == nil {
			absolutePath = resolved
		}
	}
	baseName := filepath.Base(absolutePath)
	relativePath := utils.RelativePathOrSelf(absolutePath, matcher.scanRoot)
	relativeSegments := strings.Split(relativePath, "/")

	for _, patternValue := range matcher.patterns {
		if matcher.patternMatches(patternValue, baseName, relativePath, absolutePath, relativeSegments) {
			return true
		}
	}
	return false
}

// patternMatches evaluates one pattern against every path representation.
func (matcher *Matcher) patternMatches(patternValue, baseName, relativePath, absolutePath string, relativeSegments []string) bool {
	if globMatches(patternValue, baseName) ||
		globMatches(patternValue, relativePath) ||
		globMatches(patternValue, absolutePath) {
		return true
	}

	if strings.HasPrefix(patternValue, rootedPatternPrefix) {
		rootedPattern := filepath.Join(matcher.scanRoot, strings.TrimPrefix(patternValue, rootedPatternPrefix))
		if globMatches(rootedPattern, absolutePath) {
			return true
		}
	}

	for _, pathSegment := range relativeSegments {
		if globMatches(patternValue, pathSegment) {
			return true
		}
	}
	return false
}

// globMatches applies filepath.Match, treating malformed patterns as non-matching.
func globMatches(patternValue, candidate string) bool {
	isMatched, matchError := filepath.Match(patternValue, candidate)
	return matchError == nil && isMatched
}
