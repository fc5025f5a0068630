package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSampleFile(testingHandle *testing.T, fileName string, content []byte) string {
	testingHandle.Helper()
	filePath := filepath.Join(testingHandle.TempDir(), fileName)
	if writeError := os.WriteFile(filePath, content, 0o644); writeError != nil {
		testingHandle.Fatalf("failed to write %s: %v", filePath, writeError)
	}
	return filePath
}

// TestIsTextFileAllowedBytes verifies that control characters and the printable
// range classify as text.
func TestIsTextFileAllowedBytes(testingHandle *testing.T) {
	sample := []byte("line one\n\tline two\r\n")
	sample = append(sample, 0x07, 0x08, 0x0C, 0x1B, 0xFF)
	filePath := writeSampleFile(testingHandle, "sample.txt", sample)

	if !IsTextFile(filePath) {
		testingHandle.Fatalf("expected allowed byte values to classify as text")
	}
}

// TestIsTextFileNulByte verifies that a NUL byte classifies the file as binary.
func TestIsTextFileNulByte(testingHandle *testing.T) {
	filePath := writeSampleFile(testingHandle, "sample.bin", []byte{'a', 0x00, 'b'})

	if IsTextFile(filePath) {
		testingHandle.Fatalf("expected a NUL byte to classify the file as binary")
	}
}

// TestIsTextFileDeterministic verifies repeated classification of fixed content.
func TestIsTextFileDeterministic(testingHandle *testing.T) {
	filePath := writeSampleFile(testingHandle, "sample.txt", []byte("stable content"))

	firstResult := IsTextFile(filePath)
	for repetition := 0; repetition < 5; repetition++ {
		if IsTextFile(filePath) != firstResult {
			testingHandle.Fatalf("classification changed between calls")
		}
	}
}

// TestIsTextFileMissingFileFailsClosed verifies the read-error path returns false.
func TestIsTextFileMissingFileFailsClosed(testingHandle *testing.T) {
	missingPath := filepath.Join(testingHandle.TempDir(), "missing.txt")

	if IsTextFile(missingPath) {
		testingHandle.Fatalf("expected a missing file to classify as non-text")
	}
}

// TestIsTextFileEmpty verifies that an empty file classifies as text.
func TestIsTextFileEmpty(testingHandle *testing.T) {
	filePath := writeSampleFile(testingHandle, "empty.txt", nil)

	if !IsTextFile(filePath) {
		testingHandle.Fatalf("expected an empty file to classify as text")
	}
}

// TestIsTextFileSamplesPrefixOnly verifies that bytes beyond the sample window
// do not affect classification.
func TestIsTextFileSamplesPrefixOnly(testingHandle *testing.T) {
	content := make([]byte, classificationSampleLength)
	for index := range content {
		content[index] = 'a'
	}
	content = append(content, 0x00)
	filePath := writeSampleFile(testingHandle, "prefix.txt", content)

	if !IsTextFile(filePath) {
		testingHandle.Fatalf("expected classification to inspect only the leading sample")
	}
}
