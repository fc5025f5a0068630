package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/codedigest/cdigest/internal/utils"
)

func writeFileInDirectory(testingHandle *testing.T, directory string, fileName string, content string) {
	testingHandle.Helper()
	if writeError := os.WriteFile(filepath.Join(directory, fileName), []byte(content), 0o644); writeError != nil {
		testingHandle.Fatalf("failed to write %s: %v", fileName, writeError)
	}
}

// TestLoadIgnorePatternsPoolsAllSources verifies ordering of defaults, ignore
// file entries, and extra patterns, with duplicates dropped.
func TestLoadIgnorePatternsPoolsAllSources(testingHandle *testing.T) {
	scanRoot := testingHandle.TempDir()
	writeFileInDirectory(testingHandle, scanRoot, utils.IgnoreFileName, "# generated artifacts\n*.generated\n\nsecrets/\n*.log\n")

	pooledPatterns, loadError := LoadIgnorePatterns(scanRoot, []string{"extra.txt", "*.generated", "  "}, true)
	if loadError != nil {
		testingHandle.Fatalf("LoadIgnorePatterns returned error: %v", loadError)
	}

	if pooledPatterns[0] != DefaultIgnorePatterns[0] {
		testingHandle.Errorf("expected defaults first, got %q", pooledPatterns[0])
	}
	patternIndex := make(map[string]int, len(pooledPatterns))
	for index, patternValue := range pooledPatterns {
		if previousIndex, alreadySeen := patternIndex[patternValue]; alreadySeen {
			testingHandle.Errorf("pattern %q appears at both %d and %d", patternValue, previousIndex, index)
		}
		patternIndex[patternValue] = index
	}
	for _, expectedPattern := range []string{"*.generated", "secrets/", "extra.txt"} {
		if _, patternPresent := patternIndex[expectedPattern]; !patternPresent {
			testingHandle.Errorf("expected pattern %q in the pooled set", expectedPattern)
		}
	}
	if _, blankPresent := patternIndex[""]; blankPresent {
		testingHandle.Errorf("expected blank extra patterns to be dropped")
	}
}

// TestLoadIgnorePatternsWithoutDefaults verifies that disabling the built-in
// set leaves only file and extra patterns.
func TestLoadIgnorePatternsWithoutDefaults(testingHandle *testing.T) {
	scanRoot := testingHandle.TempDir()
	writeFileInDirectory(testingHandle, scanRoot, utils.IgnoreFileName, "only.me\n")

	pooledPatterns, loadError := LoadIgnorePatterns(scanRoot, []string{"and.me"}, false)
	if loadError != nil {
		testingHandle.Fatalf("LoadIgnorePatterns returned error: %v", loadError)
	}
	if len(pooledPatterns) != 2 || pooledPatterns[0] != "only.me" || pooledPatterns[1] != "and.me" {
		testingHandle.Fatalf("pooled patterns = %v, expected [only.me and.me]", pooledPatterns)
	}
}

// TestLoadIgnorePatternsMissingIgnoreFile verifies that a missing ignore file is not an error.
func TestLoadIgnorePatternsMissingIgnoreFile(testingHandle *testing.T) {
	pooledPatterns, loadError := LoadIgnorePatterns(testingHandle.TempDir(), nil, false)
	if loadError != nil {
		testingHandle.Fatalf("LoadIgnorePatterns returned error: %v", loadError)
	}
	if len(pooledPatterns) != 0 {
		testingHandle.Fatalf("expected no patterns, got %v", pooledPatterns)
	}
}

// TestLoadApplicationConfigurationLocalOverridesGlobal verifies the merge
// order of the home and working-directory configuration files.
func TestLoadApplicationConfigurationLocalOverridesGlobal(testingHandle *testing.T) {
	homeDirectory := testingHandle.TempDir()
	workingDirectory := testingHandle.TempDir()
	testingHandle.Setenv("HOME", homeDirectory)

	writeFileInDirectory(testingHandle, homeDirectory, utils.ConfigFileName, "format: json\nmax_size: 2048\nshow_size: true\n")
	writeFileInDirectory(testingHandle, workingDirectory, utils.ConfigFileName, "format: markdown\nclipboard: true\n")

	loadedConfiguration, loadError := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: workingDirectory})
	if loadError != nil {
		testingHandle.Fatalf("LoadApplicationConfiguration returned error: %v", loadError)
	}

	if loadedConfiguration.Format != "markdown" {
		testingHandle.Errorf("format = %q, expected local override markdown", loadedConfiguration.Format)
	}
	if loadedConfiguration.MaxSizeKilobytes == nil || *loadedConfiguration.MaxSizeKilobytes != 2048 {
		testingHandle.Errorf("max size = %v, expected global value 2048", loadedConfiguration.MaxSizeKilobytes)
	}
	if loadedConfiguration.ShowSize == nil || !*loadedConfiguration.ShowSize {
		testingHandle.Errorf("show size = %v, expected global value true", loadedConfiguration.ShowSize)
	}
	if loadedConfiguration.Clipboard == nil || !*loadedConfiguration.Clipboard {
		testingHandle.Errorf("clipboard = %v, expected local value true", loadedConfiguration.Clipboard)
	}
}

// TestLoadApplicationConfigurationMissingFiles verifies that absent
// configuration files yield an empty configuration without error.
func TestLoadApplicationConfigurationMissingFiles(testingHandle *testing.T) {
	testingHandle.Setenv("HOME", testingHandle.TempDir())

	loadedConfiguration, loadError := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: testingHandle.TempDir()})
	if loadError != nil {
		testingHandle.Fatalf("LoadApplicationConfiguration returned error: %v", loadError)
	}
	if loadedConfiguration.Format != "" || loadedConfiguration.MaxSizeKilobytes != nil {
		testingHandle.Fatalf("expected an empty configuration, got %+v", loadedConfiguration)
	}
}

// TestApplicationConfigurationMergeUnsetFieldsKeepBase verifies that unset
// override fields leave base values intact.
func TestApplicationConfigurationMergeUnsetFieldsKeepBase(testingHandle *testing.T) {
	trueValue := true
	sizeValue := 512
	baseConfiguration := ApplicationConfiguration{
		Format:           "xml",
		MaxSizeKilobytes: &sizeValue,
		ShowIgnored:      &trueValue,
		Ignore:           []string{"*.bak"},
	}

	mergedConfiguration := baseConfiguration.Merge(ApplicationConfiguration{TokenizerModel: "gpt-4"})

	if mergedConfiguration.Format != "xml" {
		testingHandle.Errorf("format = %q, expected base value xml", mergedConfiguration.Format)
	}
	if mergedConfiguration.MaxSizeKilobytes == nil || *mergedConfiguration.MaxSizeKilobytes != 512 {
		testingHandle.Errorf("max size lost during merge")
	}
	if mergedConfiguration.ShowIgnored == nil || !*mergedConfiguration.ShowIgnored {
		testingHandle.Errorf("show ignored lost during merge")
	}
	if mergedConfiguration.TokenizerModel != "gpt-4" {
		testingHandle.Errorf("model = %q, expected override gpt-4", mergedConfiguration.TokenizerModel)
	}
	if len(mergedConfiguration.Ignore) != 1 || mergedConfiguration.Ignore[0] != "*.bak" {
		testingHandle.Errorf("ignore patterns = %v, expected base value", mergedConfiguration.Ignore)
	}
}
