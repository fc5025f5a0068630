package analyzer

import (
	"github.com/codedigest/cdigest/internal/utils"
)

// aggregateAndPrune folds aggregate counts into directory nodes bottom-up and
// prunes directories left without included children. It reports whether node
// survives pruning. Ignored children remain listed for display but contribute
// to no aggregate and cannot keep a directory alive. When a subdirectory is
// pruned, its partially staged copy is removed from the sink.
func (analyzer *Analyzer) aggregateAndPrune(node *Node) (bool, error) {
	if node.Kind != NodeKindDirectory || node.IsIgnored {
		return true, nil
	}

	var retainedChildren []*Node
	hasIncludedChild := false
	for _, childNode := range node.Children {
		if childNode.Kind == NodeKindDirectory && !childNode.IsIgnored {
			childSurvives, childError := analyzer.aggregateAndPrune(childNode)
			if childError != nil {
				return false, childError
			}
			if !childSurvives {
				if analyzer.options.Staging != nil {
					relativePath := utils.RelativePathOrSelf(childNode.Path, analyzer.scanRoot)
					if removeError := analyzer.options.Staging.RemoveSubtree(relativePath); removeError != nil {
						return false, removeError
					}
				}
				continue
			}
		}
		retainedChildren = append(retainedChildren, childNode)
		if !childNode.IsIgnored {
			hasIncludedChild = true
		}
	}
	node.Children = retainedChildren

	for _, childNode := range retainedChildren {
		if childNode.IsIgnored {
			continue
		}
		switch childNode.Kind {
		case NodeKindFile:
			node.Size += childNode.Size
			node.TotalTokens += childNode.Tokens
			node.FileCount++
			if childNode.IsText {
				node.TextContentSize += int64(len(childNode.Content))
			}
		case NodeKindDirectory:
			node.Size += childNode.Size
			node.TotalTokens += childNode.TotalTokens
			node.FileCount += childNode.FileCount
			node.DirCount += 1 + childNode.DirCount
			node.TextContentSize += childNode.TextContentSize
			node.TotalTextSize += childNode.TotalTextSize
		}
	}

	return hasIncludedChild, nil
}
