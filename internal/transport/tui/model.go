// Package tui is the terminal front end: a login screen gating an Add
// Product form and a Product List, driven by bubbletea.
package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/light-bringer/procat-inventory/internal/app/product/domain"
	"github.com/light-bringer/procat-inventory/internal/app/product/listengine"
	"github.com/light-bringer/procat-inventory/internal/app/product/queries/get_product"
	"github.com/light-bringer/procat-inventory/internal/app/product/queries/list_products"
	"github.com/light-bringer/procat-inventory/internal/app/product/usecases/create_product"
	"github.com/light-bringer/procat-inventory/internal/app/product/usecases/delete_product"
	"github.com/light-bringer/procat-inventory/internal/app/product/usecases/update_product"
	sessiondomain "github.com/light-bringer/procat-inventory/internal/app/session/domain"
	"github.com/light-bringer/procat-inventory/internal/app/session/monitor"
	"github.com/light-bringer/procat-inventory/internal/app/session/usecases/login"
	"github.com/light-bringer/procat-inventory/internal/app/session/usecases/logout"
)

// Deps are the use cases the screens call.
type Deps struct {
	Engine  *listengine.Engine
	Session *monitor.Monitor
	Logger  *zap.Logger

	CreateProduct *create_product.Interactor
	UpdateProduct *update_product.Interactor
	DeleteProduct *delete_product.Interactor
	GetProduct    *get_product.Query
	ListProducts  *list_products.Query
	Login         *login.Interactor
	Logout        *logout.Interactor
}

type screen int

const (
	screenLogin screen = iota
	screenAdd
	screenList
)

// ProductsChangedMsg tells the program another process changed the stored
// products.
type ProductsChangedMsg struct {
	Changes domain.ChangeSet
}

// SessionChangedMsg tells the program the session flag was flipped by
// another process.
type SessionChangedMsg struct {
	State sessiondomain.State
}

// Model is the root bubbletea model. It routes keys to the active screen and
// sends every screen except login back to login when the session ends.
type Model struct {
	ctx    context.Context
	deps   *Deps
	styles Styles
	screen screen

	login loginPage
	add   addPage
	list  listPage

	width  int
	height int
	err    string
}

// New builds the root model. The first screen depends on the session state
// the monitor has loaded.
func New(ctx context.Context, deps *Deps) Model {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	m := Model{
		ctx:    ctx,
		deps:   deps,
		styles: DefaultStyles(),
		login:  newLoginPage(deps.Login),
		add:    newAddPage(deps.CreateProduct),
		list:   newListPage(deps),
	}
	if deps.Session.State().LoggedIn {
		m.screen = screenAdd
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case loggedInMsg:
		m.deps.Session.Accept(msg.state)
		m.deps.Logger.Info("logged in", zap.String("session_id", msg.state.ID))
		return m.show(screenAdd), nil

	case SessionChangedMsg:
		if !msg.State.LoggedIn {
			return m.toLogin(), nil
		}
		if m.screen == screenLogin {
			return m.show(screenAdd), nil
		}
		return m, nil

	case ProductsChangedMsg:
		if m.screen == screenList && m.list.mode != modeEdit {
			m.list = m.list.refresh(m.ctx)
		}
		return m, nil

	case productAddedMsg:
		m.deps.Logger.Debug("product added", zap.String("product_id", msg.productID))
		return m, nil
	}

	return m.updateScreen(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.screen == screenLogin {
		return m.updateScreen(msg)
	}

	switch msg.String() {
	case "ctrl+t":
		return m.show(screenAdd), nil
	case "ctrl+l":
		return m.show(screenList), nil
	case "ctrl+o":
		return m.logout(), nil
	}
	return m.updateScreen(msg)
}

func (m Model) updateScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.screen {
	case screenLogin:
		m.login, cmd = m.login.Update(m.ctx, msg)
	case screenAdd:
		m.add, cmd = m.add.Update(m.ctx, msg)
	case screenList:
		m.list, cmd = m.list.Update(m.ctx, msg)
	}
	return m, cmd
}

func (m Model) show(s screen) Model {
	m.err = ""
	m.screen = s
	switch s {
	case screenAdd:
		m.add.notice = ""
	case screenList:
		m.list.notice = ""
		m.list = m.list.refresh(m.ctx)
	}
	return m
}

func (m Model) logout() Model {
	state, err := m.deps.Logout.Execute(m.ctx)
	if err != nil {
		m.err = errorMessage(err)
		return m
	}
	m.deps.Session.Accept(state)
	m.deps.Logger.Info("logged out")
	return m.toLogin()
}

func (m Model) toLogin() Model {
	m.screen = screenLogin
	m.err = ""
	m.login = m.login.reset()
	m.add = m.add.reset()
	m.list = m.list.closeDialogs()
	return m
}

func (m Model) View() string {
	var sb strings.Builder

	if m.screen != screenLogin {
		sb.WriteString(m.tabs() + "\n\n")
	}

	switch m.screen {
	case screenLogin:
		sb.WriteString(m.login.View(m.styles))
	case screenAdd:
		sb.WriteString(m.add.View(m.styles))
	case screenList:
		sb.WriteString(m.list.View(m.styles))
	}

	if m.err != "" {
		sb.WriteString("\n" + m.styles.Error.Render(m.err))
	}
	return sb.String() + "\n"
}

func (m Model) tabs() string {
	tab := func(label string, s screen) string {
		if m.screen == s {
			return m.styles.TabOn.Render(label)
		}
		return m.styles.Tab.Render(label)
	}
	return tab("Add Product (ctrl+t)", screenAdd) +
		tab("Product List (ctrl+l)", screenList) +
		m.styles.Tab.Render("Logout (ctrl+o)")
}
