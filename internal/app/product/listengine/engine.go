// Package listengine owns the in-memory product collection and the view
// derived from it: search filter, sort order and pagination.
//
// Every mutation is written through to the RecordStore before the in-memory
// collection is replaced, and every operation ends by recomputing the view.
// Operations are serialized by a mutex so the Poller can reconcile external
// changes from its own goroutine.
package listengine

import (
	"context"
	"slices"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/light-bringer/procat-inventory/internal/app/product/contracts"
	"github.com/light-bringer/procat-inventory/internal/app/product/domain"
	"github.com/light-bringer/procat-inventory/internal/pkg/clock"
	"github.com/light-bringer/procat-inventory/internal/pkg/query"
)

// AllowedPageSizes lists the page sizes SetPageSize accepts, in display order.
var AllowedPageSizes = [...]int{10, 20, 30, 40, 50}

// DefaultPageSize is the page size after Initialize.
const DefaultPageSize = 10

// IsAllowedPageSize reports whether n is one of AllowedPageSizes.
func IsAllowedPageSize(n int) bool {
	return slices.Contains(AllowedPageSizes[:], n)
}

// Engine is the list engine. The zero value is not usable; call NewEngine.
type Engine struct {
	mu       sync.Mutex
	store    contracts.RecordStore
	clock    clock.Clock
	ids      domain.IDGenerator
	collator *collate.Collator
	logger   *zap.Logger

	products []domain.Product
	view     []domain.Product

	searchQuery string
	sortKey     contracts.SortKey
	nameDir     query.Direction
	dateDir     query.Direction
	pageSize    int
	page        int
}

// NewEngine creates an engine over store. Names are ordered with the
// collation rules of locale. Call Initialize before use.
func NewEngine(
	store contracts.RecordStore,
	clk clock.Clock,
	ids domain.IDGenerator,
	locale language.Tag,
	logger *zap.Logger,
) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{
		store:    store,
		clock:    clk,
		ids:      ids,
		collator: collate.New(locale),
		logger:   logger.With(zap.String("component", "list_engine")),
	}
	e.resetViewLocked()
	return e
}

// Initialize loads the stored collection and resets the view: empty search,
// no active sort, both directions ascending, page size 10, page 1.
func (e *Engine) Initialize(ctx context.Context) {
	products := e.store.LoadAll(ctx)

	e.mu.Lock()
	defer e.mu.Unlock()

	e.products = products
	e.resetViewLocked()
	e.recomputeLocked(true)

	e.logger.Debug("initialized", zap.Int("products", len(products)))
}

// Create validates and appends a new product. The name must be unique
// ignoring case. The id is random and the dateTime is the current time.
func (e *Engine) Create(ctx context.Context, name, quantity string) (domain.Product, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	// 1. Build the product (validates fields)
	product, err := domain.NewProduct(e.ids.NewID(), name, quantity, e.clock.Now())
	if err != nil {
		return domain.Product{}, err
	}

	// 2. Enforce unique names
	if err := domain.EnsureUniqueName(e.products, product.Name(), ""); err != nil {
		return domain.Product{}, err
	}

	// 3. Persist, then swap
	next := append(slices.Clone(e.products), product)
	if err := e.commitLocked(ctx, next); err != nil {
		return domain.Product{}, err
	}

	e.logger.Debug("product created", zap.String("product_id", product.ID()))
	return product, nil
}

// Update replaces a product's name and quantity and refreshes its dateTime.
// The product itself is excluded from the uniqueness check, so changing only
// the quantity or the case of the name is allowed.
func (e *Engine) Update(ctx context.Context, productID, name, quantity string) (domain.Product, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	// 1. Validate fields
	name, quantity, err := domain.ValidateDetails(name, quantity)
	if err != nil {
		return domain.Product{}, err
	}

	// 2. Find the product
	idx := domain.IndexOf(e.products, productID)
	if idx < 0 {
		return domain.Product{}, domain.ErrProductNotFound
	}

	// 3. Enforce unique names
	if err := domain.EnsureUniqueName(e.products, name, productID); err != nil {
		return domain.Product{}, err
	}

	// 4. Apply changes
	updated, err := e.products[idx].WithDetails(name, quantity, e.clock.Now())
	if err != nil {
		return domain.Product{}, err
	}

	// 5. Persist, then swap
	next := slices.Clone(e.products)
	next[idx] = updated
	if err := e.commitLocked(ctx, next); err != nil {
		return domain.Product{}, err
	}

	e.logger.Debug("product updated", zap.String("product_id", productID))
	return updated, nil
}

// Delete removes a product. Unknown ids are a no-op and nothing is written.
func (e *Engine) Delete(ctx context.Context, productID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := domain.IndexOf(e.products, productID)
	if idx < 0 {
		return nil
	}

	next := slices.Delete(slices.Clone(e.products), idx, idx+1)
	if err := e.commitLocked(ctx, next); err != nil {
		return err
	}

	e.logger.Debug("product deleted", zap.String("product_id", productID))
	return nil
}

// SetSearchQuery filters the view to names containing q, ignoring case,
// and returns to page 1.
func (e *Engine) SetSearchQuery(q string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.searchQuery = strings.ToLower(q)
	e.recomputeLocked(true)
}

// ToggleSortByName flips the name direction and sorts the filtered view by
// name. The remembered date direction is left alone.
func (e *Engine) ToggleSortByName() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.nameDir = e.nameDir.Flip()
	e.sortKey = contracts.SortName
	e.sortLocked()
}

// ToggleSortByDate flips the date direction and sorts the filtered view
// chronologically. The remembered name direction is left alone.
func (e *Engine) ToggleSortByDate() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.dateDir = e.dateDir.Flip()
	e.sortKey = contracts.SortDate
	e.sortLocked()
}

// SetPageSize changes the page size and returns to page 1. Sizes outside
// AllowedPageSizes are rejected and leave the view unchanged.
func (e *Engine) SetPageSize(n int) error {
	if !IsAllowedPageSize(n) {
		return domain.ErrInvalidPageSize
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.pageSize = n
	e.page = 1
	return nil
}

// SetPage moves to page n, clamped to [1, max(1, PageCount)].
func (e *Engine) SetPage(n int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.page = query.ClampPage(n, len(e.view), e.pageSize)
}

// CurrentPageSlice returns the products on the current page. The result is
// a copy and is empty when the view is empty.
func (e *Engine) CurrentPageSlice() []domain.Product {
	e.mu.Lock()
	defer e.mu.Unlock()

	return query.Page(e.view, e.page, e.pageSize)
}

// Reconcile replaces the collection with products when the two differ
// structurally, then recomputes the view keeping the search query, sort and
// page size. The current page is re-clamped. changed is false when nothing
// differed.
func (e *Engine) Reconcile(products []domain.Product) (cs domain.ChangeSet, changed bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.reconcileLocked(products)
}

// Refresh reads the store and reconciles with its contents. The read happens
// under the engine lock so it cannot interleave with a mutation's write.
func (e *Engine) Refresh(ctx context.Context) (domain.ChangeSet, bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	products, err := e.store.Load(ctx)
	if err != nil {
		return domain.ChangeSet{}, false, err
	}
	cs, changed := e.reconcileLocked(products)
	return cs, changed, nil
}

// Products returns a copy of the full collection in stored order.
func (e *Engine) Products() []domain.Product {
	e.mu.Lock()
	defer e.mu.Unlock()

	return slices.Clone(e.products)
}

// View returns a copy of the filtered, sorted view.
func (e *Engine) View() []domain.Product {
	e.mu.Lock()
	defer e.mu.Unlock()

	return slices.Clone(e.view)
}

// Snapshot returns the current view state.
func (e *Engine) Snapshot() contracts.ViewSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.snapshotLocked()
}

// TotalCount is the number of products in the collection.
func (e *Engine) TotalCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return len(e.products)
}

// FilteredCount is the number of products matching the search query.
func (e *Engine) FilteredCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return len(e.view)
}

// PageCount is ceil(FilteredCount / page size); 0 for an empty view.
func (e *Engine) PageCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return query.PageCount(len(e.view), e.pageSize)
}

func (e *Engine) resetViewLocked() {
	e.searchQuery = ""
	e.sortKey = contracts.SortNone
	e.nameDir = query.Asc
	e.dateDir = query.Asc
	e.pageSize = DefaultPageSize
	e.page = 1
}

// commitLocked persists next and only then makes it the collection.
func (e *Engine) commitLocked(ctx context.Context, next []domain.Product) error {
	if err := e.store.SaveAll(ctx, next); err != nil {
		return err
	}
	e.products = next
	e.recomputeLocked(false)
	return nil
}

func (e *Engine) reconcileLocked(products []domain.Product) (domain.ChangeSet, bool) {
	if slices.Equal(e.products, products) {
		return domain.ChangeSet{}, false
	}

	cs := domain.Diff(e.products, products)
	e.products = slices.Clone(products)
	e.recomputeLocked(false)
	return cs, true
}

// recomputeLocked rebuilds the view from the collection: filter, then the
// most recent sort, then page clamping (or a reset to page 1).
func (e *Engine) recomputeLocked(resetPage bool) {
	e.view = query.Where(e.products, query.Contains(domain.Product.Name, e.searchQuery))
	e.sortLocked()

	if resetPage {
		e.page = 1
		return
	}
	e.page = query.ClampPage(e.page, len(e.view), e.pageSize)
}

func (e *Engine) sortLocked() {
	switch e.sortKey {
	case contracts.SortName:
		dir := e.nameDir
		slices.SortStableFunc(e.view, func(a, b domain.Product) int {
			return dir.Apply(e.collator.CompareString(a.Name(), b.Name()))
		})
	case contracts.SortDate:
		dir := e.dateDir
		slices.SortStableFunc(e.view, func(a, b domain.Product) int {
			return dir.Apply(domain.CompareTimestamps(a.DateTime(), b.DateTime()))
		})
	}
}

func (e *Engine) snapshotLocked() contracts.ViewSnapshot {
	return contracts.ViewSnapshot{
		SearchQuery:   e.searchQuery,
		SortKey:       e.sortKey,
		NameDirection: e.nameDir,
		DateDirection: e.dateDir,
		PageSize:      e.pageSize,
		CurrentPage:   e.page,
	}
}
