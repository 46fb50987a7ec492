package get_product

import (
	"context"
	"fmt"
	"strings"

	"github.com/light-bringer/procat-inventory/internal/app/product/contracts"
	"github.com/light-bringer/procat-inventory/internal/app/product/domain"
)

// Request names the product to prefill an edit form with.
type Request struct {
	ProductID string
}

// Query fetches a single product for the edit dialog and the update command.
// The lookup covers the whole collection, so a product hidden by the current
// search can still be edited.
type Query struct {
	readModel contracts.ReadModel
}

// NewQuery creates a new get product query.
func NewQuery(readModel contracts.ReadModel) *Query {
	return &Query{
		readModel: readModel,
	}
}

// Execute returns the product with req.ProductID. A blank ID fails with
// domain.ErrInvalidProductID; an unknown one with domain.ErrProductNotFound.
func (q *Query) Execute(ctx context.Context, req *Request) (*contracts.ProductDTO, error) {
	id := strings.TrimSpace(req.ProductID)
	if id == "" {
		return nil, domain.ErrInvalidProductID
	}

	dto, err := q.readModel.GetProductByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product %q: %w", id, err)
	}
	return dto, nil
}
