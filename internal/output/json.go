package output

import (
	"encoding/json"
	"fmt"

	"github.com/codedigest/cdigest/internal/analyzer"
)

// RenderJSON serializes the full tree model as indented JSON.
func RenderJSON(root *analyzer.Node) (string, error) {
	encoded, marshalError := json.MarshalIndent(root, "", "  ")
	if marshalError != nil {
		return "", fmt.Errorf("marshal JSON digest: %w", marshalError)
	}
	return string(encoded), nil
}
