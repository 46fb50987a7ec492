package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/light-bringer/procat-inventory/internal/app/session/domain"
	"github.com/light-bringer/procat-inventory/internal/app/session/usecases/login"
)

const (
	loginEmail = iota
	loginPassword
)

// loggedInMsg reports a successful login from this process.
type loggedInMsg struct {
	state domain.State
}

// loginPage is the credential form shown while no session exists.
type loginPage struct {
	login  *login.Interactor
	inputs []textinput.Model
	focus  int

	emailErr    string
	passwordErr string
	err         string
}

func newLoginPage(li *login.Interactor) loginPage {
	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 254
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return loginPage{
		login:  li,
		inputs: []textinput.Model{email, password},
	}
}

// reset clears the form, as after a logout.
func (p loginPage) reset() loginPage {
	for i := range p.inputs {
		p.inputs[i].SetValue("")
	}
	p.emailErr, p.passwordErr, p.err = "", "", ""
	p.focus = focusInput(p.inputs, loginEmail)
	return p
}

func (p loginPage) Update(ctx context.Context, msg tea.Msg) (loginPage, tea.Cmd) {
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

func (p loginPage) submit(ctx context.Context) (loginPage, tea.Cmd) {
	state, err := p.login.Execute(ctx, &login.Request{
		Email:    strings.TrimSpace(p.inputs[loginEmail].Value()),
		Password: p.inputs[loginPassword].Value(),
	})
	if err != nil {
		p.emailErr, p.passwordErr, p.err = credentialFieldErrors(err)
		return p, nil
	}

	p = p.reset()
	return p, func() tea.Msg { return loggedInMsg{state: state} }
}

func (p loginPage) View(s Styles) string {
	var sb strings.Builder

	sb.WriteString(s.Title.Render("Login") + "\n")

	sb.WriteString(s.Label.Render("Email") + "\n")
	sb.WriteString(s.field(p.inputs[loginEmail].View(), p.focus == loginEmail) + "\n")
	sb.WriteString(s.errorLine(p.emailErr))

	sb.WriteString(s.Label.Render("Password") + "\n")
	sb.WriteString(s.field(p.inputs[loginPassword].View(), p.focus == loginPassword) + "\n")
	sb.WriteString(s.errorLine(p.passwordErr))

	sb.WriteString(s.errorLine(p.err))
	sb.WriteString("\n" + s.Muted.Render("tab: next field • enter: login • ctrl+c: quit"))
	return sb.String()
}
