package output

import (
	"encoding/xml"
	"fmt"

	"github.com/codedigest/cdigest/internal/analyzer"
)

type xmlDigest struct {
	XMLName            xml.Name       `xml:"codebase-analysis"`
	Name               string         `xml:"name"`
	DirectoryStructure string         `xml:"directory-structure"`
	Summary            xmlSummary     `xml:"summary"`
	FileContents       []xmlFileEntry `xml:"file-contents>file"`
}

type xmlSummary struct {
	TotalFiles              int    `xml:"total-files"`
	TotalDirectories        int    `xml:"total-directories"`
	AnalyzedSizeKB          string `xml:"analyzed-size-kb"`
	TotalTextFileSizeKB     string `xml:"total-text-file-size-kb"`
	TotalTokens             int    `xml:"total-tokens"`
	AnalyzedTextContentSize string `xml:"analyzed-text-content-size-kb"`
}

type xmlFileEntry struct {
	Path    string `xml:"path"`
	Content string `xml:"content"`
}

// RenderXML produces the XML digest document.
func RenderXML(root *analyzer.Node, options RenderOptions) (string, error) {
	document := xmlDigest{
		Name:               root.Name,
		DirectoryStructure: GenerateTreeString(root, TreeStringOptions{ShowSize: true, ShowIgnored: true}),
		Summary: xmlSummary{
			TotalFiles:              root.FileCount,
			TotalDirectories:        root.DirCount,
			AnalyzedSizeKB:          formatKilobytesValue(root.Size),
			TotalTextFileSizeKB:     formatKilobytesValue(root.TotalTextSize),
			TotalTokens:             root.TotalTokens,
			AnalyzedTextContentSize: formatKilobytesValue(root.TextContentSize),
		},
	}
	if options.IncludeContent {
		for _, fileContent := range analyzer.CollectFileContents(root) {
			document.FileContents = append(document.FileContents, xmlFileEntry{
				Path:    fileContent.Path,
				Content: fileContent.Content,
			})
		}
	}

	encoded, marshalError := xml.MarshalIndent(document, "", "  ")
	if marshalError != nil {
		return "", fmt.Errorf("marshal XML digest: %w", marshalError)
	}
	return string(encoded), nil
}

// formatKilobytesValue renders a bare two-decimal kilobyte figure for XML fields.
func formatKilobytesValue(bytes int64) string {
	return fmt.Sprintf("%.2f", float64(bytes)/1024)
}
