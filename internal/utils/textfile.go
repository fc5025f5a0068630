package utils

import (
	"io"
	"os"
)

// classificationSampleLength is the maximum number of bytes read when deciding
// whether a file contains text.
const classificationSampleLength = 1024

// textByteAllowed marks every byte value that may appear in a text sample:
// bell, backspace, tab, newline, form feed, carriage return, escape, and the
// printable range 0x20-0xFF.
var textByteAllowed = buildTextByteTable()

func buildTextByteTable() [256]bool {
	var table [256]bool
	for _, controlByte := range []byte{7, 8, 9, 10, 12, 13, 27} {
		table[controlByte] = true
	}
	for byteValue := 0x20; byteValue <= 0xFF; byteValue++ {
		table[byteValue] = true
	}
	return table
}

// IsTextSample reports whether every byte in the sample is allowed in text content.
// An empty sample classifies as text.
func IsTextSample(sample []byte) bool {
	for _, byteValue := range sample {
		if !textByteAllowed[byteValue] {
			return false
		}
	}
	return true
}

// IsTextFile reads up to classificationSampleLength bytes from the file at
// filePath and reports whether the sample classifies as text. The check fails
// closed: any read error classifies the file as non-text.
func IsTextFile(filePath string) bool {
	fileHandle, openError := os.Open(filePath)
	if openError != nil {
		return false
	}
	defer fileHandle.Close()

	sampleBuffer := make([]byte, classificationSampleLength)
	bytesRead, readError := fileHandle.Read(sampleBuffer)
	if readError != nil && readError != io.EOF {
		return false
	}
	return IsTextSample(sampleBuffer[:bytesRead])
}
