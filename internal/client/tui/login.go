package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dmitrijs2005/deskmate/internal/client/api"
)

// loginResultMsg carries the outcome of an async login attempt.
type loginResultMsg struct {
	err error
}

type loginView struct {
	ctx  context.Context
	deps *Deps

	username textinput.Model
	password textinput.Model
	focus    int

	submitting bool
	errText    string
}

func newLoginView(ctx context.Context, deps *Deps) *loginView {
	username := textinput.New()
	username.Placeholder = "email"
	username.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword

	return &loginView{ctx: ctx, deps: deps, username: username, password: password}
}

func (v *loginView) Title() string {
	return fmt.Sprintf("deskmate · %s login", v.deps.Config.Role)
}

func (v *loginView) capturesKeys() bool { return true }

func (v *loginView) Init() tea.Cmd {
	return textinput.Blink
}

func (v *loginView) submitCmd() tea.Cmd {
	username := v.username.Value()
	password := v.password.Value()
	return func() tea.Msg {
		return loginResultMsg{err: v.deps.Auth.Login(v.ctx, username, password)}
	}
}

// loginErrorText maps the error taxonomy to what the user should read:
// the backend's own message for rejected credentials, a generic line for
// anything transport-shaped.
func loginErrorText(err error) string {
	var reqErr *api.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Detail()
	}
	if errors.Is(err, api.ErrNetworkOrDecode) {
		return "cannot reach the server"
	}
	return err.Error()
}

func (v *loginView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		v.submitting = false
		if msg.err != nil {
			v.errText = loginErrorText(msg.err)
			return v, nil
		}
		return v, func() tea.Msg { return loggedInMsg{} }

	case tea.KeyMsg:
		if v.submitting {
			return v, nil
		}
		switch msg.String() {
		case "tab", "shift+tab":
			v.focus = (v.focus + 1) % 2
			if v.focus == 0 {
				v.username.Focus()
				v.password.Blur()
			} else {
				v.password.Focus()
				v.username.Blur()
			}
			return v, nil
		case "enter":
			if v.focus == 0 {
				v.focus = 1
				v.username.Blur()
				v.password.Focus()
				return v, nil
			}
			v.submitting = true
			v.errText = ""
			return v, v.submitCmd()
		}
	}

	var cmd tea.Cmd
	if v.focus == 0 {
		v.username, cmd = v.username.Update(msg)
	} else {
		v.password, cmd = v.password.Update(msg)
	}
	return v, cmd
}

func (v *loginView) View() string {
	theme := v.deps.Theme
	var b strings.Builder

	b.WriteString("\n  " + v.username.View())
	b.WriteString("\n  " + v.password.View())
	b.WriteString("\n")

	if v.submitting {
		b.WriteString("\n  " + lipgloss.NewStyle().Foreground(theme.FaintText).Render("signing in..."))
	}
	if v.errText != "" {
		b.WriteString("\n  " + lipgloss.NewStyle().Foreground(theme.ErrorText).Render(v.errText))
	}

	help := lipgloss.NewStyle().Foreground(theme.HelpText)
	b.WriteString("\n\n  " + help.Render("Enter sign in · Tab switch field · C-c quit"))
	return b.String()
}
