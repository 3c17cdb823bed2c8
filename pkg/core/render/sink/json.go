package sink

import (
	"encoding/json"

	"github.com/matzehuels/sigil/pkg/core/seal"
)

// RenderJSON serializes the document tree as indented JSON.
func RenderJSON(doc seal.Node) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
