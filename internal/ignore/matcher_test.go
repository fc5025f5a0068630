package ignore

import (
	"path/filepath"
	"testing"
)

// TestMatcherBasenamePattern verifies glob matching against the base name.
func TestMatcherBasenamePattern(testingHandle *testing.T) {
	scanRoot := testingHandle.TempDir()
	matcher := NewMatcher(scanRoot, []string{"*.bin"})

	if !matcher.Matches(filepath.Join(scanRoot, "payload.bin")) {
		testingHandle.Fatalf("expected *.bin to match payload.bin")
	}
	if matcher.Matches(filepath.Join(scanRoot, "payload.txt")) {
		testingHandle.Fatalf("expected *.bin not to match payload.txt")
	}
}

// TestMatcherSegmentPattern verifies that a pattern matches any single segment
// of the relative path, not just the base name.
func TestMatcherSegmentPattern(testingHandle *testing.T) {
	scanRoot := testingHandle.TempDir()
	matcher := NewMatcher(scanRoot, []string{"node_modules"})

	nestedPath := filepath.Join(scanRoot, "packages", "node_modules", "left-pad", "index.js")
	if !matcher.Matches(nestedPath) {
		testingHandle.Fatalf("expected node_modules to match a nested path segment")
	}
}

// TestMatcherRelativePathPattern verifies matching against the path relative to the scan root.
func TestMatcherRelativePathPattern(testingHandle *testing.T) {
	scanRoot := testingHandle.TempDir()
	matcher := NewMatcher(scanRoot, []string{"docs/generated.md"})

	if !matcher.Matches(filepath.Join(scanRoot, "docs", "generated.md")) {
		testingHandle.Fatalf("expected relative path pattern to match")
	}
	if matcher.Matches(filepath.Join(scanRoot, "other", "generated.md")) {
		testingHandle.Fatalf("expected relative path pattern not to match a different directory")
	}
}

// TestMatcherRootedPattern verifies the leading-slash rule anchoring a pattern to the scan root.
func TestMatcherRootedPattern(testingHandle *testing.T) {
	scanRoot := testingHandle.TempDir()
	matcher := NewMatcher(scanRoot, []string{"/vendor"})

	if !matcher.Matches(filepath.Join(scanRoot, "vendor")) {
		testingHandle.Fatalf("expected /vendor to match the root-level vendor directory")
	}
}

// TestMatcherNoNegation verifies that matches are absolute: no later pattern can undo one.
func TestMatcherNoNegation(testingHandle *testing.T) {
	scanRoot := testingHandle.TempDir()
	matcher := NewMatcher(scanRoot, []string{"*.log", "!important.log"})

	if !matcher.Matches(filepath.Join(scanRoot, "important.log")) {
		testingHandle.Fatalf("expected *.log to keep matching despite a negation-looking pattern")
	}
}

// TestMatcherEmptyPatterns verifies that an empty pattern set matches nothing.
func TestMatcherEmptyPatterns(testingHandle *testing.T) {
	scanRoot := testingHandle.TempDir()
	matcher := NewMatcher(scanRoot, nil)

	if matcher.Matches(filepath.Join(scanRoot, "anything.txt")) {
		testingHandle.Fatalf("expected no patterns to match nothing")
	}
}
