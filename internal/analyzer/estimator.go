package analyzer

import (
	"io/fs"
	"path/filepath"

	"github.com/codedigest/cdigest/internal/ignore"
	"github.com/codedigest/cdigest/internal/utils"
)

const (
	// perFileStructureOverheadBytes approximates the rendered structure cost of one file.
	perFileStructureOverheadBytes = 100
	// summaryOverheadBytes approximates the rendered summary cost.
	summaryOverheadBytes = 1000
)

// EstimateOutputSize walks scanRoot once and approximates the final output
// size: the sizes of non-ignored text files plus fixed structural and summary
// overheads. No file content is read beyond the classification sample, so the
// result is an estimate used for the up-front size warning, not a guarantee.
func EstimateOutputSize(scanRoot string, matcher *ignore.Matcher) int64 {
	var estimatedSize int64
	var includedFileCount int64

	_ = filepath.WalkDir(scanRoot, func(currentPath string, directoryEntry fs.DirEntry, walkError error) error {
		if walkError != nil {
			return nil
		}
		if directoryEntry.IsDir() {
			if currentPath != scanRoot && matcher.Matches(currentPath) {
				return filepath.SkipDir
			}
			return nil
		}
		if matcher.Matches(currentPath) {
			return nil
		}
		if !utils.IsTextFile(currentPath) {
			return nil
		}
		entryInfo, infoError := directoryEntry.Info()
		if infoError != nil {
			return nil
		}
		estimatedSize += entryInfo.Size()
		includedFileCount++
		return nil
	})

	return estimatedSize + includedFileCount*perFileStructureOverheadBytes + summaryOverheadBytes
}

// TotalTextFileSize sums the sizes of every text file under scanRoot,
// including ignored ones, for the oversized-directory notice.
func TotalTextFileSize(scanRoot string) int64 {
	var totalSize int64
	_ = filepath.WalkDir(scanRoot, func(currentPath string, directoryEntry fs.DirEntry, walkError error) error {
		if walkError != nil {
			return nil
		}
		if directoryEntry.IsDir() {
			return nil
		}
		if !utils.IsTextFile(currentPath) {
			return nil
		}
		entryInfo, infoError := directoryEntry.Info()
		if infoError != nil {
			return nil
		}
		totalSize += entryInfo.Size()
		return nil
	})
	return totalSize
}
