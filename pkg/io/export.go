package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/sigil/pkg/core/seal"
)

// WriteDocument encodes a document tree as indented JSON and writes it to w.
func WriteDocument(doc seal.Node, w io.Writer) error {
	return encode(doc, w)
}

// ExportDocument writes a document tree to a JSON file at path.
func ExportDocument(doc seal.Node, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteDocument(doc, f)
}

// WriteDictionary encodes d as JSON. The output can be re-read with
// [ReadDictionary].
func WriteDictionary(d *seal.Dictionary, w io.Writer) error {
	return encode(d, w)
}

func encode(v any, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
