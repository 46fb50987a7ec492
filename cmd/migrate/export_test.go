package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/procat-inventory/internal/app/product/usecases/import_products"
)

func TestParseExport(t *testing.T) {
	want := []import_products.Record{
		{ProductID: "123456789012345", Name: "Widget", Quantity: "10", DateTime: "1/2/2024, 3:04:05 PM"},
	}

	tests := []struct {
		name string
		data string
	}{
		{
			name: "products array",
			data: `[{"productId":"123456789012345","productName":"Widget","dateTime":"1/2/2024, 3:04:05 PM","quantity":"10"}]`,
		},
		{
			name: "storage object with string value",
			data: `{"isLoggedIn":"true","products":"[{\"productId\":\"123456789012345\",\"productName\":\"Widget\",\"dateTime\":\"1/2/2024, 3:04:05 PM\",\"quantity\":\"10\"}]"}`,
		},
		{
			name: "storage object with array value",
			data: `{"products":[{"productId":"123456789012345","productName":"Widget","dateTime":"1/2/2024, 3:04:05 PM","quantity":"10"}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseExport([]byte("\n" + tt.data + "\n"))
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestParseExport_Errors(t *testing.T) {
	_, err := parseExport([]byte("  "))
	assert.Error(t, err)

	_, err = parseExport([]byte(`{"isLoggedIn":"true"}`))
	assert.ErrorIs(t, err, errNoProducts)

	_, err = parseExport([]byte(`"products"`))
	assert.Error(t, err)

	_, err = parseExport([]byte(`{"products":"not json"}`))
	assert.Error(t, err)
}
