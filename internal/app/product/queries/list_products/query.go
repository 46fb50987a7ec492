package list_products

import (
	"context"

	"github.com/light-bringer/procat-inventory/internal/app/product/contracts"
)

// Request contains pagination parameters. Search, sort and page size are
// view state and are changed on the engine itself.
type Request struct {
	Page int // 0 = current page
}

// Query handles the list products query use case.
type Query struct {
	readModel contracts.ReadModel
}

// NewQuery creates a new list products query.
func NewQuery(readModel contracts.ReadModel) *Query {
	return &Query{
		readModel: readModel,
	}
}

// Execute retrieves one page of the current view.
func (q *Query) Execute(ctx context.Context, req *Request) (*contracts.ListResult, error) {
	filter := &contracts.ListFilter{
		Page: req.Page,
	}

	return q.readModel.ListProducts(ctx, filter)
}
