package create_product

import (
	"context"

	"github.com/light-bringer/procat-inventory/internal/app/product/contracts"
	"github.com/light-bringer/procat-inventory/internal/app/product/domain"
	"github.com/light-bringer/procat-inventory/internal/pkg/clock"
)

// Request contains the data needed to create a product.
type Request struct {
	Name     string
	Quantity string
}

// Draft is the candidate id and timestamp an add form shows before submit.
// It is display-only: Execute assigns the real ones.
type Draft struct {
	ProductID string
	DateTime  string
}

// Interactor handles the create product use case.
type Interactor struct {
	writer contracts.ProductWriter
	ids    domain.IDGenerator
	clock  clock.Clock
}

// NewInteractor creates a new create product interactor.
func NewInteractor(
	writer contracts.ProductWriter,
	ids domain.IDGenerator,
	clock clock.Clock,
) *Interactor {
	return &Interactor{
		writer: writer,
		ids:    ids,
		clock:  clock,
	}
}

// Execute creates a product and returns its id.
func (i *Interactor) Execute(ctx context.Context, req *Request) (string, error) {
	// 1. Validate request
	if _, _, err := domain.ValidateDetails(req.Name, req.Quantity); err != nil {
		return "", err
	}

	// 2. Append through the writer (uniqueness, id, timestamp, persistence)
	product, err := i.writer.Create(ctx, req.Name, req.Quantity)
	if err != nil {
		return "", err
	}

	return product.ID(), nil
}

// Draft returns a fresh candidate id and timestamp.
func (i *Interactor) Draft() Draft {
	return Draft{
		ProductID: i.ids.NewID(),
		DateTime:  domain.FormatTimestamp(i.clock.Now()),
	}
}
