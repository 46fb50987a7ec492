package update_product

import (
	"context"

	"github.com/light-bringer/procat-inventory/internal/app/product/contracts"
	"github.com/light-bringer/procat-inventory/internal/app/product/domain"
)

// Request contains the data to update a product. Both fields are required;
// the stored dateTime is refreshed on every successful update.
type Request struct {
	ProductID string
	Name      string
	Quantity  string
}

// Interactor handles the update product use case.
type Interactor struct {
	writer contracts.ProductWriter
}

// NewInteractor creates a new update product interactor.
func NewInteractor(writer contracts.ProductWriter) *Interactor {
	return &Interactor{
		writer: writer,
	}
}

// Execute updates a product.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	// 1. Validate request
	if req.ProductID == "" {
		return domain.ErrInvalidProductID
	}
	if _, _, err := domain.ValidateDetails(req.Name, req.Quantity); err != nil {
		return err
	}

	// 2. Apply through the writer
	_, err := i.writer.Update(ctx, req.ProductID, req.Name, req.Quantity)
	return err
}
