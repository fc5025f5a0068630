// Package analyzer builds the annotated directory tree that every renderer
// consumes. Building happens in two phases: a recursive traversal produces an
// unaggregated tree, then a fold pass computes aggregate counts and prunes
// directories left without included children.
package analyzer

import "path"

// NodeKind discriminates files from directories in the tree model.
type NodeKind string

const (
	// NodeKindFile marks file nodes.
	NodeKindFile NodeKind = "file"
	// NodeKindDirectory marks directory nodes.
	NodeKindDirectory NodeKind = "directory"
)

// Node represents one file or directory discovered during traversal.
//
// For directories the aggregate fields (Size, TotalTokens, FileCount,
// DirCount, TextContentSize) cover included children only: children carrying
// IsIgnored are listed for display but excluded from every sum.
type Node struct {
	Name            string   `json:"name"`
	Kind            NodeKind `json:"type"`
	Size            int64    `json:"size"`
	Tokens          int      `json:"tokens,omitempty"`
	Content         string   `json:"content,omitempty"`
	IsIgnored       bool     `json:"is_ignored,omitempty"`
	Children        []*Node  `json:"children,omitempty"`
	TotalTokens     int      `json:"total_tokens,omitempty"`
	FileCount       int      `json:"file_count,omitempty"`
	DirCount        int      `json:"dir_count,omitempty"`
	TextContentSize int64    `json:"text_content_size,omitempty"`
	TotalTextSize   int64    `json:"total_text_size,omitempty"`

	// Path is the absolute filesystem path of the node, kept for staging
	// bookkeeping and never rendered.
	Path string `json:"-"`
	// IsText records the text/binary classification for file nodes.
	IsText bool `json:"-"`
}

// FileContent pairs a file's path relative to the scanned tree (root directory
// name included) with its final content.
type FileContent struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// CollectFileContents returns an order-preserving flat list of the content of
// every included text file in the tree, the form consumed by all renderers.
func CollectFileContents(root *Node) []FileContent {
	if root == nil {
		return nil
	}
	var collected []FileContent
	collectFileContents(root, "", &collected)
	return collected
}

func collectFileContents(node *Node, parentPath string, collected *[]FileContent) {
	nodePath := path.Join(parentPath, node.Name)
	switch node.Kind {
	case NodeKindFile:
		if !node.IsIgnored && node.IsText {
			*collected = append(*collected, FileContent{Path: nodePath, Content: node.Content})
		}
	case NodeKindDirectory:
		for _, childNode := range node.Children {
			collectFileContents(childNode, nodePath, collected)
		}
	}
}
