package output

import (
	"fmt"
	"strings"

	"github.com/codedigest/cdigest/internal/analyzer"
)

const (
	treeConnectorLast   = "└── "
	treeConnectorMiddle = "├── "
	treePrefixLast      = "    "
	treePrefixMiddle    = "│   "
	ignoredMarker       = " [IGNORED]"
)

// TreeStringOptions controls directory-tree rendering.
type TreeStringOptions struct {
	ShowSize    bool
	ShowIgnored bool
}

// GenerateTreeString renders the directory tree as connector-prefixed lines.
// Ignored entries are omitted unless ShowIgnored is set, in which case they
// carry an [IGNORED] marker.
func GenerateTreeString(root *analyzer.Node, options TreeStringOptions) string {
	var treeBuilder strings.Builder
	writeTreeNode(&treeBuilder, root, "", true, options)
	return treeBuilder.String()
}

func writeTreeNode(treeBuilder *strings.Builder, node *analyzer.Node, prefix string, isLast bool, options TreeStringOptions) {
	if node.IsIgnored && !options.ShowIgnored {
		return
	}

	connector := treeConnectorMiddle
	if isLast {
		connector = treeConnectorLast
	}
	treeBuilder.WriteString(prefix + connector + node.Name)
	if options.ShowSize && node.Kind == analyzer.NodeKindFile {
		treeBuilder.WriteString(fmt.Sprintf(" (%d bytes)", node.Size))
	}
	if node.IsIgnored {
		treeBuilder.WriteString(ignoredMarker)
	}
	treeBuilder.WriteString("\n")

	if node.Kind != analyzer.NodeKindDirectory {
		return
	}
	childPrefix := prefix + treePrefixMiddle
	if isLast {
		childPrefix = prefix + treePrefixLast
	}
	visibleChildren := node.Children
	if !options.ShowIgnored {
		visibleChildren = nil
		for _, childNode := range node.Children {
			if !childNode.IsIgnored {
				visibleChildren = append(visibleChildren, childNode)
			}
		}
	}
	for childIndex, childNode := range visibleChildren {
		writeTreeNode(treeBuilder, childNode, childPrefix, childIndex == len(visibleChildren)-1, options)
	}
}
