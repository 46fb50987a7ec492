package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/light-bringer/procat-inventory/internal/app/product/contracts"
	"github.com/light-bringer/procat-inventory/internal/app/product/usecases/update_product"
)

// editDialog edits the name and quantity of one product.
type editDialog struct {
	update  *update_product.Interactor
	product *contracts.ProductDTO
	inputs  []textinput.Model
	focus   int

	nameErr     string
	quantityErr string
	err         string
}

// newEditDialog opens the dialog prefilled with product.
func newEditDialog(update *update_product.Interactor, product *contracts.ProductDTO) editDialog {
	d := editDialog{
		update:  update,
		product: product,
		inputs:  newProductInputs(),
	}
	d.inputs[fieldName].SetValue(product.Name)
	d.inputs[fieldQuantity].SetValue(product.Quantity)
	d.focus = focusInput(d.inputs, fieldName)
	return d
}

// Update handles a key for the dialog. done is true once the dialog should
// close, either saved or cancelled.
func (d editDialog) Update(ctx context.Context, msg tea.Msg) (next editDialog, cmd tea.Cmd, done bool) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			return d, nil, true
		case "tab", "down":
			d.focus = focusInput(d.inputs, d.focus+1)
			return d, nil, false
		case "shift+tab", "up":
			d.focus = focusInput(d.inputs, d.focus-1)
			return d, nil, false
		case "enter":
			return d.save(ctx)
		}
	}

	d.inputs[d.focus], cmd = d.inputs[d.focus].Update(msg)
	return d, cmd, false
}

func (d editDialog) save(ctx context.Context) (editDialog, tea.Cmd, bool) {
	err := d.update.Execute(ctx, &update_product.Request{
		ProductID: d.product.ProductID,
		Name:      d.inputs[fieldName].Value(),
		Quantity:  d.inputs[fieldQuantity].Value(),
	})
	if err != nil {
		d.nameErr, d.quantityErr, d.err = productFieldErrors(err)
		return d, nil, false
	}
	return d, nil, true
}

func (d editDialog) View(s Styles) string {
	var sb strings.Builder

	sb.WriteString(s.Title.Render("Edit Product") + "\n")
	sb.WriteString(s.Label.Render("Product ID ") + s.Muted.Render(d.product.ProductID) + "\n\n")

	sb.WriteString(s.Label.Render("Product Name") + "\n")
	sb.WriteString(s.field(d.inputs[fieldName].View(), d.focus == fieldName) + "\n")
	sb.WriteString(s.errorLine(d.nameErr))

	sb.WriteString(s.Label.Render("Quantity") + "\n")
	sb.WriteString(s.field(d.inputs[fieldQuantity].View(), d.focus == fieldQuantity) + "\n")
	sb.WriteString(s.errorLine(d.quantityErr))

	sb.WriteString(s.errorLine(d.err))
	sb.WriteString("\n" + s.Muted.Render("enter: save • esc: cancel"))
	return s.Dialog.Render(sb.String())
}
