package output

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/codedigest/cdigest/internal/analyzer"
	"github.com/codedigest/cdigest/internal/utils"
)

// htmlDigestTemplate renders the HTML digest. Escaping is handled by
// html/template; contents are embedded inside pre blocks.
var htmlDigestTemplate = template.Must(template.New("digest").Parse(`<html>
<head>
<title>Codebase Analysis for: {{.Name}}</title>
<style>
pre { white-space: pre-wrap; word-wrap: break-word; }
</style>
</head>
<body>
<h1>Codebase Analysis for: {{.Name}}</h1>
<h2>Directory Structure</h2>
<pre>{{.DirectoryStructure}}</pre>
<h2>Summary</h2>
<ul>
<li>Total files: {{.TotalFiles}}</li>
<li>Total directories: {{.TotalDirectories}}</li>
<li>Analyzed size: {{.AnalyzedSize}}</li>
<li>Total text file size (including ignored): {{.TotalTextFileSize}}</li>
<li>Total tokens: {{.TotalTokens}}</li>
<li>Analyzed text content size: {{.TextContentSize}}</li>
</ul>
{{if .Files}}<h2>File Contents</h2>
{{range .Files}}<h3>{{.Path}}</h3><pre>{{.Content}}</pre>
{{end}}{{end}}</body>
</html>
`))

type htmlDigestData struct {
	Name               string
	DirectoryStructure string
	TotalFiles         int
	TotalDirectories   int
	AnalyzedSize       string
	TotalTextFileSize  string
	TotalTokens        int
	TextContentSize    string
	Files              []analyzer.FileContent
}

// RenderHTML produces the HTML digest document.
func RenderHTML(root *analyzer.Node, options RenderOptions) (string, error) {
	data := htmlDigestData{
		Name:               root.Name,
		DirectoryStructure: GenerateTreeString(root, TreeStringOptions{ShowSize: true, ShowIgnored: true}),
		TotalFiles:         root.FileCount,
		TotalDirectories:   root.DirCount,
		AnalyzedSize:       utils.FormatKilobytes(root.Size),
		TotalTextFileSize:  utils.FormatKilobytes(root.TotalTextSize),
		TotalTokens:        root.TotalTokens,
		TextContentSize:    utils.FormatKilobytes(root.TextContentSize),
	}
	if options.IncludeContent {
		data.Files = analyzer.CollectFileContents(root)
	}

	var htmlBuilder strings.Builder
	if executeError := htmlDigestTemplate.Execute(&htmlBuilder, data); executeError != nil {
		return "", fmt.Errorf("render HTML digest: %w", executeError)
	}
	return htmlBuilder.String(), nil
}
