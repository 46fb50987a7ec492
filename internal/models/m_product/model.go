package m_product

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Model provides a facade for encoding the product collection blob.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// Encode serializes the collection. A nil collection encodes as "[]".
func (m *Model) Encode(rows []Data) (string, error) {
	if rows == nil {
		rows = []Data{}
	}
	b, err := json.Marshal(rows)
	if err != nil {
		return "", fmt.Errorf("encode products: %w", err)
	}
	return string(b), nil
}

// Decode parses a stored blob. An empty blob decodes to an empty collection;
// anything that is not a JSON array of product objects is an error.
func (m *Model) Decode(blob string) ([]Data, error) {
	if strings.TrimSpace(blob) == "" {
		return []Data{}, nil
	}
	var rows []Data
	if err := json.Unmarshal([]byte(blob), &rows); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	if rows == nil {
		// "null" is what a failed JSON.stringify round trip leaves behind.
		rows = []Data{}
	}
	return rows, nil
}
