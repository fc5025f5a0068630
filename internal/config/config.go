// Package config pools ignore patterns from defaults, ignore files, and flags,
// and loads the optional application configuration file.
package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/codedigest/cdigest/internal/utils"
)

// commentPrefix marks skipped lines in ignore files.
const commentPrefix = "#"

// DefaultIgnorePatterns lists the built-in exclusions applied unless disabled:
// interpreter caches, dependency directories, VCS metadata, virtual
// environments, IDE state, temporary and log files, OS artifacts, build
// output, and compiled libraries.
var DefaultIgnorePatterns = []string{
	"*.pyc", "*.pyo", "*.pyd", "__pycache__",
	"node_modules", "bower_components",
	".git", ".svn", ".hg", ".gitignore",
	"venv", ".venv", "env",
	".idea", ".vscode",
	"*.log", "*.bak", "*.swp", "*.tmp",
	".DS_Store",
	"Thumbs.db",
	"build", "dist",
	"*.egg-info",
	"*.so", "*.dylib", "*.dll",
}

// LoadIgnoreFilePatterns reads an ignore file and returns one pattern per
// non-blank, non-comment line. A missing file yields no patterns and no error.
//
// #nosec G304
func LoadIgnoreFilePatterns(ignoreFilePath string) ([]string, error) {
	fileHandle, openFileError := os.Open(ignoreFilePath)
	if openFileError != nil {
		if os.IsNotExist(openFileError) {
			return nil, nil
		}
		return nil, openFileError
	}
	defer func() {
		if closeError := fileHandle.Close(); closeError != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close %s: %v\n", ignoreFilePath, closeError)
		}
	}()

	var patterns []string
	scanner := bufio.NewScanner(fileHandle)
	for scanner.Scan() {
		trimmedLine := strings.TrimSpace(scanner.Text())
		if trimmedLine == "" || strings.HasPrefix(trimmedLine, commentPrefix) {
			continue
		}
		patterns = append(patterns, trimmedLine)
	}
	if scanError := scanner.Err(); scanError != nil {
		return nil, scanError
	}
	return patterns, nil
}

// LoadIgnorePatterns pools ignore patterns for a scan of scanRoot. The
// built-in defaults come first unless useDefaults is false, followed by
// patterns from the project-local ignore file, followed by caller-supplied
// extra patterns. Later sources extend earlier ones; duplicates are dropped
// while preserving first-seen order.
func LoadIgnorePatterns(scanRoot string, extraPatterns []string, useDefaults bool) ([]string, error) {
	var pooledPatterns []string
	if useDefaults {
		pooledPatterns = append(pooledPatterns, DefaultIgnorePatterns...)
	}

	ignoreFilePath := filepath.Join(scanRoot, utils.IgnoreFileName)
	ignoreFilePatterns, loadError := LoadIgnoreFilePatterns(ignoreFilePath)
	if loadError != nil {
		return nil, fmt.Errorf("loading %s from %s: %w", utils.IgnoreFileName, scanRoot, loadError)
	}
	pooledPatterns = append(pooledPatterns, ignoreFilePatterns...)

	for _, extraPattern := range extraPatterns {
		trimmedPattern := strings.TrimSpace(extraPattern)
		if trimmedPattern == "" {
			continue
		}
		pooledPatterns = append(pooledPatterns, trimmedPattern)
	}

	return utils.DeduplicatePatterns(pooledPatterns), nil
}
