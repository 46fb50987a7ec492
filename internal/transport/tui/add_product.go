package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/light-bringer/procat-inventory/internal/app/product/usecases/create_product"
)

const (
	fieldName = iota
	fieldQuantity
)

// productAddedMsg reports a product created from the add form.
type productAddedMsg struct {
	productID string
}

// addPage is the Add Product form. It shows a draft id and timestamp that
// are regenerated after every successful submit.
type addPage struct {
	create *create_product.Interactor
	draft  create_product.Draft
	inputs []textinput.Model
	focus  int

	nameErr     string
	quantityErr string
	err         string
	notice      string
}

// newProductInputs builds the name and quantity inputs shared by the add
// form and the edit dialog.
func newProductInputs() []textinput.Model {
	name := textinput.New()
	name.Placeholder = "Product name"
	name.CharLimit = 120

	quantity := textinput.New()
	quantity.Placeholder = "Quantity"
	quantity.CharLimit = 18

	return []textinput.Model{name, quantity}
}

func newAddPage(create *create_product.Interactor) addPage {
	p := addPage{
		create: create,
		inputs: newProductInputs(),
	}
	return p.reset()
}

// reset clears the inputs and draws a new draft.
func (p addPage) reset() addPage {
	for i := range p.inputs {
		p.inputs[i].SetValue("")
	}
	p.draft = p.create.Draft()
	p.nameErr, p.quantityErr, p.err = "", "", ""
	p.focus = focusInput(p.inputs, fieldName)
	return p
}

func (p addPage) Update(ctx context.Context, msg tea.Msg) (addPage, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "down":
			p.focus = focusInput(p.inputs, p.focus+1)
			return p, nil
		case "shift+tab", "up":
			p.focus = focusInput(p.inputs, p.focus-1)
			return p, nil
		case "enter":
			return p.submit(ctx)
		}
	}

	var cmd tea.Cmd
	p.inputs[p.focus], cmd = p.inputs[p.focus].Update(msg)
	return p, cmd
}

func (p addPage) submit(ctx context.Context) (addPage, tea.Cmd) {
	id, err := p.create.Execute(ctx, &create_product.Request{
		Name:     p.inputs[fieldName].Value(),
		Quantity: p.inputs[fieldQuantity].Value(),
	})
	if err != nil {
		p.nameErr, p.quantityErr, p.err = productFieldErrors(err)
		p.notice = ""
		return p, nil
	}

	p = p.reset()
	p.notice = fmt.Sprintf("Product %s added", id)
	return p, func() tea.Msg { return productAddedMsg{productID: id} }
}

func (p addPage) View(s Styles) string {
	var sb strings.Builder

	sb.WriteString(s.Title.Render("Add Product") + "\n")
	sb.WriteString(s.Label.Render("Product ID  ") + s.Muted.Render(p.draft.ProductID) + "\n")
	sb.WriteString(s.Label.Render("Date & Time ") + s.Muted.Render(p.draft.DateTime) + "\n\n")

	sb.WriteString(s.Label.Render("Product Name") + "\n")
	sb.WriteString(s.field(p.inputs[fieldName].View(), p.focus == fieldName) + "\n")
	sb.WriteString(s.errorLine(p.nameErr))

	sb.WriteString(s.Label.Render("Quantity") + "\n")
	sb.WriteString(s.field(p.inputs[fieldQuantity].View(), p.focus == fieldQuantity) + "\n")
	sb.WriteString(s.errorLine(p.quantityErr))

	sb.WriteString(s.errorLine(p.err))
	if p.notice != "" {
		sb.WriteString(s.Notice.Render(p.notice) + "\n")
	}
	sb.WriteString("\n" + s.Muted.Render("tab: next field • enter: add product"))
	return sb.String()
}

// focusInput focuses inputs[i], wrapping around, blurs the rest and returns
// the focused index.
func focusInput(inputs []textinput.Model, i int) int {
	i = (i + len(inputs)) % len(inputs)
	for j := range inputs {
		if j == i {
			inputs[j].Focus()
		} else {
			inputs[j].Blur()
		}
	}
	return i
}
