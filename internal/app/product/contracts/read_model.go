package contracts

import (
	"context"

	"github.com/light-bringer/procat-inventory/internal/app/product/domain"
	"github.com/light-bringer/procat-inventory/internal/pkg/query"
)

// ProductDTO is a data transfer object for product queries.
type ProductDTO struct {
	ProductID string
	Name      string
	Quantity  string
	DateTime  string
}

// ToDTO converts a domain product for display.
func ToDTO(p domain.Product) *ProductDTO {
	return &ProductDTO{
		ProductID: p.ID(),
		Name:      p.Name(),
		Quantity:  p.Quantity(),
		DateTime:  p.DateTime(),
	}
}

// SortKey names the field the view was last sorted by.
type SortKey string

const (
	SortNone SortKey = ""
	SortName SortKey = "name"
	SortDate SortKey = "date"
)

// ViewSnapshot is a copy of the list view state.
type ViewSnapshot struct {
	SearchQuery   string
	SortKey       SortKey
	NameDirection query.Direction
	DateDirection query.Direction
	PageSize      int
	CurrentPage   int
}

// ListFilter selects what ListProducts returns.
type ListFilter struct {
	// Page to return; 0 means the view's current page. Out-of-range pages
	// are clamped.
	Page int
}

// ListResult contains one page of the filtered, sorted view.
type ListResult struct {
	Products      []*ProductDTO
	View          ViewSnapshot
	Page          int
	PageCount     int
	TotalCount    int
	FilteredCount int
}

// ReadModel defines the interface for product queries.
type ReadModel interface {
	// GetProductByID retrieves a product DTO by ID
	GetProductByID(ctx context.Context, productID string) (*ProductDTO, error)

	// ListProducts returns a page of the current view without changing it
	ListProducts(ctx context.Context, filter *ListFilter) (*ListResult, error)
}
