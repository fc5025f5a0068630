package analyzer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Sink receives side copies of files that pass filtering during traversal.
// Traversal does not know where copies land; the CLI owns the sink's lifetime
// and must remove it on every exit path.
type Sink interface {
	// StageFile copies the file at sourcePath into the sink under
	// relativePath, creating intermediate directories as needed.
	StageFile(relativePath string, sourcePath string) error
	// RemoveSubtree deletes any partially staged copy below relativePath.
	RemoveSubtree(relativePath string) error
}

// StagingArea is a Sink backed by a temporary directory, used as input to the
// archive step.
type StagingArea struct {
	rootDirectory string
}

// stagingDirectoryPattern names staging directories created under the system temp directory.
const stagingDirectoryPattern = "cdigest_staging_"

// NewStagingArea creates a fresh staging directory under the system temporary directory.
func NewStagingArea() (*StagingArea, error) {
	stagingRoot, createError := os.MkdirTemp("", stagingDirectoryPattern)
	if createError != nil {
		return nil, fmt.Errorf("create staging directory: %w", createError)
	}
	return &StagingArea{rootDirectory: stagingRoot}, nil
}

// RootDirectory returns the absolute path of the staging directory.
func (area *StagingArea) RootDirectory() string {
	return area.rootDirectory
}

// StageFile copies the source file into the staging directory preserving its
// permissions and modification time.
func (area *StagingArea) StageFile(relativePath string, sourcePath string) error {
	destinationPath := filepath.Join(area.rootDirectory, filepath.FromSlash(relativePath))
	if makeDirError := os.MkdirAll(filepath.Dir(destinationPath), 0o755); makeDirError != nil {
		return fmt.Errorf("create staging path for %s: %w", relativePath, makeDirError)
	}
	if copyError := copyFilePreservingMetadata(sourcePath, destinationPath); copyError != nil {
		return fmt.Errorf("stage %s: %w", relativePath, copyError)
	}
	return nil
}

// RemoveSubtree deletes the staged copy below relativePath if one exists.
func (area *StagingArea) RemoveSubtree(relativePath string) error {
	stagedPath := filepath.Join(area.rootDirectory, filepath.FromSlash(relativePath))
	if _, statError := os.Stat(stagedPath); statError != nil {
		if os.IsNotExist(statError) {
			return nil
		}
		return statError
	}
	return os.RemoveAll(stagedPath)
}

// Remove deletes the entire staging directory.
func (area *StagingArea) Remove() error {
	return os.RemoveAll(area.rootDirectory)
}

var _ Sink = (*StagingArea)(nil)

// copyFilePreservingMetadata copies source to destination and carries over the
// source's permission bits and modification time.
func copyFilePreservingMetadata(sourcePath string, destinationPath string) error {
	sourceInfo, statError := os.Stat(sourcePath)
	if statError != nil {
		return statError
	}

	sourceHandle, openError := os.Open(sourcePath)
	if openError != nil {
		return openError
	}
	defer sourceHandle.Close()

	destinationHandle, createError := os.OpenFile(destinationPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, sourceInfo.Mode().Perm())
	if createError != nil {
		return createError
	}
	if _, copyError := io.Copy(destinationHandle, sourceHandle); copyError != nil {
		destinationHandle.Close()
		return copyError
	}
	if closeError := destinationHandle.Close(); closeError != nil {
		return closeError
	}

	return os.Chtimes(destinationPath, sourceInfo.ModTime(), sourceInfo.ModTime())
}
