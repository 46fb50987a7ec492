package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/light-bringer/procat-inventory/internal/app/product/usecases/import_products"
	"github.com/light-bringer/procat-inventory/internal/models/m_product"
)

var errNoProducts = errors.New(`export has no "products" entry`)

// parseExport accepts either the products array itself or a whole storage
// object whose "products" entry holds that array, usually as a JSON string.
func parseExport(data []byte) ([]import_products.Record, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errors.New("export is empty")
	}

	var raw json.RawMessage
	switch data[0] {
	case '[':
		raw = data
	case '{':
		var storage map[string]json.RawMessage
		if err := json.Unmarshal(data, &storage); err != nil {
			return nil, fmt.Errorf("failed to parse export: %w", err)
		}
		entry, ok := storage[m_product.StorageKey]
		if !ok {
			return nil, errNoProducts
		}
		raw = entry
	default:
		return nil, errors.New("export must be a JSON array or object")
	}

	rows, err := decodeRows(raw)
	if err != nil {
		return nil, err
	}

	records := make([]import_products.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, import_products.Record{
			ProductID: row.ProductID,
			Name:      row.ProductName,
			Quantity:  row.Quantity,
			DateTime:  row.DateTime,
		})
	}
	return records, nil
}

// decodeRows decodes the products value, which storage keeps as a string
// holding JSON.
func decodeRows(raw json.RawMessage) ([]m_product.Data, error) {
	blob := string(raw)

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		blob = s
	}

	rows, err := m_product.NewModel().Decode(blob)
	if err != nil {
		return nil, fmt.Errorf("failed to parse products: %w", err)
	}
	return rows, nil
}
