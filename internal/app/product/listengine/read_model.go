package listengine

import (
	"context"

	"github.com/light-bringer/procat-inventory/internal/app/product/contracts"
	"github.com/light-bringer/procat-inventory/internal/app/product/domain"
	"github.com/light-bringer/procat-inventory/internal/pkg/query"
)

var (
	_ contracts.ReadModel     = (*Engine)(nil)
	_ contracts.ProductWriter = (*Engine)(nil)
)

// GetProductByID looks a product up in the whole collection, ignoring the
// search filter.
func (e *Engine) GetProductByID(_ context.Context, productID string) (*contracts.ProductDTO, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := domain.IndexOf(e.products, productID)
	if idx < 0 {
		return nil, domain.ErrProductNotFound
	}
	return contracts.ToDTO(e.products[idx]), nil
}

// ListProducts returns one page of the view. It does not move the current page.
func (e *Engine) ListProducts(_ context.Context, filter *contracts.ListFilter) (*contracts.ListResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	page := e.page
	if filter != nil && filter.Page != 0 {
		page = query.ClampPage(filter.Page, len(e.view), e.pageSize)
	}

	rows := query.Page(e.view, page, e.pageSize)
	dtos := make([]*contracts.ProductDTO, 0, len(rows))
	for _, p := range rows {
		dtos = append(dtos, contracts.ToDTO(p))
	}

	return &contracts.ListResult{
		Products:      dtos,
		View:          e.snapshotLocked(),
		Page:          page,
		PageCount:     query.PageCount(len(e.view), e.pageSize),
		TotalCount:    len(e.products),
		FilteredCount: len(e.view),
	}, nil
}
