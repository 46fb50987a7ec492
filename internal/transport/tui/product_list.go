package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/light-bringer/procat-inventory/internal/app/product/contracts"
	"github.com/light-bringer/procat-inventory/internal/app/product/listengine"
	"github.com/light-bringer/procat-inventory/internal/app/product/queries/get_product"
	"github.com/light-bringer/procat-inventory/internal/app/product/queries/list_products"
	"github.com/light-bringer/procat-inventory/internal/app/product/usecases/delete_product"
	"github.com/light-bringer/procat-inventory/internal/pkg/query"
)

type listMode int

const (
	modeBrowse listMode = iota
	modeSearch
	modeEdit
	modeConfirmDelete
)

const deleteConfirmText = "Are you sure you want to delete this?"

// listPage is the Product List screen: search box, sortable table, page
// controls, edit dialog and delete confirmation.
type listPage struct {
	deps   *Deps
	search textinput.Model
	table  table.Model
	result *contracts.ListResult
	mode   listMode

	edit   editDialog
	target *contracts.ProductDTO

	notice string
	err    string
}

func newListPage(deps *Deps) listPage {
	search := textinput.New()
	search.Prompt = "Search: "
	search.Placeholder = "Search among 0 products"

	t := table.New(
		table.WithColumns(listColumns(contracts.ViewSnapshot{})),
		table.WithFocused(true),
		table.WithHeight(listengine.DefaultPageSize+1),
	)

	return listPage{
		deps:   deps,
		search: search,
		table:  t,
	}
}

// listColumns builds the table header, marking the active sort.
func listColumns(view contracts.ViewSnapshot) []table.Column {
	name, date := "Name", "Date & Time"
	switch view.SortKey {
	case contracts.SortName:
		name += " " + arrow(view.NameDirection)
	case contracts.SortDate:
		date += " " + arrow(view.DateDirection)
	}
	return []table.Column{
		{Title: name, Width: 28},
		{Title: "Product ID", Width: 18},
		{Title: date, Width: 24},
		{Title: "Quantity", Width: 10},
	}
}

func arrow(d query.Direction) string {
	if d == query.Desc {
		return "▼"
	}
	return "▲"
}

// refresh reloads the current page from the list query.
func (p listPage) refresh(ctx context.Context) listPage {
	result, err := p.deps.ListProducts.Execute(ctx, &list_products.Request{})
	if err != nil {
		p.err = errorMessage(err)
		return p
	}
	p.result = result

	p.search.Placeholder = fmt.Sprintf("Search among %d products", result.FilteredCount)
	p.table.SetColumns(listColumns(result.View))
	p.table.SetHeight(result.View.PageSize + 1)

	rows := make([]table.Row, 0, len(result.Products))
	for _, prod := range result.Products {
		rows = append(rows, table.Row{prod.Name, prod.ProductID, prod.DateTime, prod.Quantity})
	}
	p.table.SetRows(rows)
	if p.table.Cursor() >= len(rows) {
		p.table.SetCursor(max(len(rows)-1, 0))
	}
	return p
}

// selected returns the product under the table cursor, or nil.
func (p listPage) selected() *contracts.ProductDTO {
	if p.result == nil {
		return nil
	}
	i := p.table.Cursor()
	if i < 0 || i >= len(p.result.Products) {
		return nil
	}
	return p.result.Products[i]
}

func (p listPage) Update(ctx context.Context, msg tea.Msg) (listPage, tea.Cmd) {
	switch p.mode {
	case modeSearch:
		return p.updateSearch(ctx, msg)
	case modeEdit:
		return p.updateEdit(ctx, msg)
	case modeConfirmDelete:
		return p.updateConfirm(ctx, msg)
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		p.table, cmd = p.table.Update(msg)
		return p, cmd
	}

	p.err = ""
	switch key.String() {
	case "/":
		p.mode = modeSearch
		p.table.Blur()
		return p, p.search.Focus()

	case "n":
		p.deps.Engine.ToggleSortByName()
		return p.refresh(ctx), nil

	case "d":
		p.deps.Engine.ToggleSortByDate()
		return p.refresh(ctx), nil

	case "s":
		if err := p.deps.Engine.SetPageSize(nextPageSize(p.pageSize())); err != nil {
			p.err = errorMessage(err)
		}
		return p.refresh(ctx), nil

	case "right", "l", "pgdown":
		p.deps.Engine.SetPage(p.page() + 1)
		return p.refresh(ctx), nil

	case "left", "h", "pgup":
		p.deps.Engine.SetPage(p.page() - 1)
		return p.refresh(ctx), nil

	case "r":
		if _, _, err := p.deps.Engine.Refresh(ctx); err != nil {
			p.err = errorMessage(err)
		}
		return p.refresh(ctx), nil

	case "e", "enter":
		return p.openEdit(ctx), nil

	case "x", "delete":
		if target := p.selected(); target != nil {
			p.target = target
			p.mode = modeConfirmDelete
		}
		return p, nil
	}

	var cmd tea.Cmd
	p.table, cmd = p.table.Update(msg)
	return p, cmd
}

func (p listPage) updateSearch(ctx context.Context, msg tea.Msg) (listPage, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc", "enter":
			p.mode = modeBrowse
			p.search.Blur()
			p.table.Focus()
			return p, nil
		}
	}

	before := p.search.Value()
	var cmd tea.Cmd
	p.search, cmd = p.search.Update(msg)
	if p.search.Value() != before {
		p.deps.Engine.SetSearchQuery(p.search.Value())
		p = p.refresh(ctx)
	}
	return p, cmd
}

func (p listPage) openEdit(ctx context.Context) listPage {
	target := p.selected()
	if target == nil {
		return p
	}

	// Prefill from the collection, not the possibly stale row.
	product, err := p.deps.GetProduct.Execute(ctx, &get_product.Request{ProductID: target.ProductID})
	if err != nil {
		p.err = errorMessage(err)
		return p.refresh(ctx)
	}

	p.edit = newEditDialog(p.deps.UpdateProduct, product)
	p.mode = modeEdit
	p.table.Blur()
	return p
}

func (p listPage) updateEdit(ctx context.Context, msg tea.Msg) (listPage, tea.Cmd) {
	var (
		cmd  tea.Cmd
		done bool
	)
	p.edit, cmd, done = p.edit.Update(ctx, msg)
	if done {
		p.mode = modeBrowse
		p.table.Focus()
		p = p.refresh(ctx)
	}
	return p, cmd
}

func (p listPage) updateConfirm(ctx context.Context, msg tea.Msg) (listPage, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	switch key.String() {
	case "y", "enter":
		err := p.deps.DeleteProduct.Execute(ctx, &delete_product.Request{ProductID: p.target.ProductID})
		if err != nil {
			p.err = errorMessage(err)
		} else {
			p.notice = fmt.Sprintf("Product %s deleted", p.target.ProductID)
		}
	case "n", "esc":
	default:
		return p, nil
	}

	p.target = nil
	p.mode = modeBrowse
	return p.refresh(ctx), nil
}

// closeDialogs returns to browsing, as when the session ends.
func (p listPage) closeDialogs() listPage {
	p.mode = modeBrowse
	p.target = nil
	p.search.Blur()
	p.table.Focus()
	return p
}

func (p listPage) page() int {
	if p.result == nil {
		return 1
	}
	return p.result.Page
}

func (p listPage) pageSize() int {
	if p.result == nil {
		return listengine.DefaultPageSize
	}
	return p.result.View.PageSize
}

// nextPageSize cycles through the allowed page sizes.
func nextPageSize(current int) int {
	sizes := listengine.AllowedPageSizes
	for i, n := range sizes {
		if n == current {
			return sizes[(i+1)%len(sizes)]
		}
	}
	return sizes[0]
}

func (p listPage) View(s Styles) string {
	var sb strings.Builder

	sb.WriteString(s.Title.Render("Product List") + "\n")
	sb.WriteString(s.field(p.search.View(), p.mode == modeSearch) + "\n\n")

	switch p.mode {
	case modeEdit:
		sb.WriteString(p.edit.View(s) + "\n")
	case modeConfirmDelete:
		confirm := s.Label.Render("Confirm Delete") + "\n\n" +
			deleteConfirmText + "\n\n" +
			s.Muted.Render("y: confirm • n: cancel")
		sb.WriteString(s.Dialog.Render(confirm) + "\n")
	default:
		if p.result != nil && len(p.result.Products) == 0 {
			sb.WriteString(s.Muted.Render("No products found") + "\n")
		} else {
			sb.WriteString(p.table.View() + "\n")
		}
	}

	sb.WriteString(p.footer(s) + "\n")
	sb.WriteString(s.errorLine(p.err))
	if p.notice != "" {
		sb.WriteString(s.Notice.Render(p.notice) + "\n")
	}
	sb.WriteString("\n" + s.Muted.Render(
		"/: search • n: sort by name • d: sort by date • s: page size • ←/→: page • e: edit • x: delete"))
	return sb.String()
}

func (p listPage) footer(s Styles) string {
	pageCount := 1
	if p.result != nil {
		pageCount = max(p.result.PageCount, 1)
	}
	return fmt.Sprintf("%s %d   %s",
		s.Label.Render("Records per Page:"), p.pageSize(),
		fmt.Sprintf("Page %d of %d", p.page(), pageCount))
}
