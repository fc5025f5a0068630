// Package output renders the analyzed tree model into the supported digest
// formats. Renderers are plain serializers: they consume the tree read-only
// and never alter aggregate fields.
package output

import (
	"fmt"

	"github.com/codedigest/cdigest/internal/analyzer"
)

// Supported output formats.
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
	FormatXML      = "xml"
	FormatHTML     = "html"
)

// errorUnsupportedFormatFormat reports an unrecognized output format.
const errorUnsupportedFormatFormat = "unsupported output format '%s'"

// fileExtensionByFormat maps each format to the extension of its output file.
var fileExtensionByFormat = map[string]string{
	FormatText:     "txt",
	FormatJSON:     "json",
	FormatMarkdown: "md",
	FormatXML:      "xml",
	FormatHTML:     "html",
}

// RenderOptions carries presentation switches shared by the renderers.
type RenderOptions struct {
	// RootPath is the scanned path as the user provided it, used in headings.
	RootPath string
	// EstimatedSize is the estimator's pre-pass result in bytes.
	EstimatedSize int64
	// ShowSize annotates files in the directory tree with their byte size.
	ShowSize bool
	// ShowIgnored lists ignored entries in the directory tree.
	ShowIgnored bool
	// IncludeContent embeds file contents in the output.
	IncludeContent bool
}

// IsSupportedFormat reports whether the provided format is recognized.
func IsSupportedFormat(format string) bool {
	_, supported := fileExtensionByFormat[format]
	return supported
}

// FileExtensionForFormat returns the output file extension for format.
func FileExtensionForFormat(format string) string {
	if extension, supported := fileExtensionByFormat[format]; supported {
		return extension
	}
	return fileExtensionByFormat[FormatText]
}

// Render serializes the tree in the requested format.
func Render(format string, root *analyzer.Node, options RenderOptions) (string, error) {
	switch format {
	case FormatText:
		return RenderText(root, options), nil
	case FormatJSON:
		return RenderJSON(root)
	case FormatMarkdown:
		return RenderMarkdown(root, options), nil
	case FormatXML:
		return RenderXML(root, options)
	case FormatHTML:
		return RenderHTML(root, options)
	default:
		return "", fmt.Errorf(errorUnsupportedFormatFormat, format)
	}
}
