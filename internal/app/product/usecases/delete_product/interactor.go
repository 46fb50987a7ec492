package delete_product

import (
	"context"

	"github.com/light-bringer/procat-inventory/internal/app/product/contracts"
)

// Request contains the product ID to delete.
type Request struct {
	ProductID string
}

// Interactor handles the delete product use case.
type Interactor struct {
	writer contracts.ProductWriter
}

// NewInteractor creates a new delete product interactor.
func NewInteractor(writer contracts.ProductWriter) *Interactor {
	return &Interactor{
		writer: writer,
	}
}

// Execute deletes a product. Deleting an unknown product succeeds.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	return i.writer.Delete(ctx, req.ProductID)
}
