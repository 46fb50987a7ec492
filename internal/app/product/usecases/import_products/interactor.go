package import_products

import (
	"context"
	"fmt"
	"slices"

	"github.com/light-bringer/procat-inventory/internal/app/product/contracts"
	"github.com/light-bringer/procat-inventory/internal/app/product/domain"
	"github.com/light-bringer/procat-inventory/internal/pkg/clock"
)

// Record is one product as found in an export. Empty ids and timestamps are
// filled in.
type Record struct {
	ProductID string
	Name      string
	Quantity  string
	DateTime  string
}

// Request contains the records to import.
type Request struct {
	Records []Record
	// Replace discards the stored collection instead of appending to it.
	Replace bool
	// DryRun validates without writing.
	DryRun bool
}

// Skipped is a record that was not imported and why.
type Skipped struct {
	Index  int
	Record Record
	Reason error
}

// Response reports the outcome of an import.
type Response struct {
	Imported []domain.Product
	Skipped  []Skipped
	Total    int // collection size after the import
}

// Interactor handles the import products use case.
type Interactor struct {
	store contracts.RecordStore
	ids   domain.IDGenerator
	clock clock.Clock
}

// NewInteractor creates a new import products interactor.
func NewInteractor(
	store contracts.RecordStore,
	ids domain.IDGenerator,
	clock clock.Clock,
) *Interactor {
	return &Interactor{
		store: store,
		ids:   ids,
		clock: clock,
	}
}

// Execute validates every record against the same rules as create and
// writes the accepted ones in a single save. Records that fail are skipped,
// not fatal.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Load the collection to merge into
	var existing []domain.Product
	if !req.Replace {
		products, err := i.store.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load products: %w", err)
		}
		existing = products
	}

	// 2. Validate each record against everything accepted so far
	resp := &Response{}
	merged := slices.Clone(existing)
	for idx, rec := range req.Records {
		product, err := i.toProduct(rec, merged)
		if err != nil {
			resp.Skipped = append(resp.Skipped, Skipped{Index: idx, Record: rec, Reason: err})
			continue
		}
		merged = append(merged, product)
		resp.Imported = append(resp.Imported, product)
	}
	resp.Total = len(merged)

	if req.DryRun || (len(resp.Imported) == 0 && !req.Replace) {
		return resp, nil
	}

	// 3. Persist in one write
	if err := i.store.SaveAll(ctx, merged); err != nil {
		return nil, err
	}
	return resp, nil
}

func (i *Interactor) toProduct(rec Record, accepted []domain.Product) (domain.Product, error) {
	name, quantity, err := domain.ValidateDetails(rec.Name, rec.Quantity)
	if err != nil {
		return domain.Product{}, err
	}
	if err := domain.EnsureUniqueName(accepted, name, ""); err != nil {
		return domain.Product{}, err
	}

	id := rec.ProductID
	if id == "" {
		id = i.ids.NewID()
	}
	if domain.IndexOf(accepted, id) >= 0 {
		return domain.Product{}, domain.ErrDuplicateID
	}

	dateTime := rec.DateTime
	if dateTime == "" {
		dateTime = domain.FormatTimestamp(i.clock.Now())
	}
	return domain.ReconstructProduct(id, name, quantity, dateTime), nil
}
