// Package archive packages a staged directory into a zip file.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// CreateZipArchive writes every file under sourceDirectory into a zip archive
// at archivePath. Entry names are the paths relative to sourceDirectory in
// forward-slash form, so unpacking reproduces the staged layout.
func CreateZipArchive(sourceDirectory string, archivePath string) (err error) {
	archiveHandle, createError := os.Create(archivePath)
	if createError != nil {
		return fmt.Errorf("create archive %s: %w", archivePath, createError)
	}
	defer func() {
		if closeError := archiveHandle.Close(); closeError != nil && err == nil {
			err = fmt.Errorf("close archive %s: %w", archivePath, closeError)
		}
	}()

	zipWriter := zip.NewWriter(archiveHandle)
	defer func() {
		if closeError := zipWriter.Close(); closeError != nil && err == nil {
			err = fmt.Errorf("finalize archive %s: %w", archivePath, closeError)
		}
	}()

	walkError := filepath.WalkDir(sourceDirectory, func(currentPath string, directoryEntry fs.DirEntry, walkError error) error {
		if walkError != nil {
			return walkError
		}
		if directoryEntry.IsDir() {
			return nil
		}
		relativePath, relativeError := filepath.Rel(sourceDirectory, currentPath)
		if relativeError != nil {
			return relativeError
		}
		return addFileToArchive(zipWriter, currentPath, filepath.ToSlash(relativePath), directoryEntry)
	})
	if walkError != nil {
		return fmt.Errorf("archive %s: %w", sourceDirectory, walkError)
	}
	return nil
}

// addFileToArchive streams one file into the zip writer under entryName.
func addFileToArchive(zipWriter *zip.Writer, filePath string, entryName string, directoryEntry fs.DirEntry) error {
	entryInfo, infoError := directoryEntry.Info()
	if infoError != nil {
		return infoError
	}
	header, headerError := zip.FileInfoHeader(entryInfo)
	if headerError != nil {
		return headerError
	}
	header.Name = entryName
	header.Method = zip.Deflate

	entryWriter, entryError := zipWriter.CreateHeader(header)
	if entryError != nil {
		return entryError
	}
	fileHandle, openError := os.Open(filePath)
	if openError != nil {
		return openError
	}
	defer fileHandle.Close()

	_, copyError := io.Copy(entryWriter, fileHandle)
	return copyError
}
