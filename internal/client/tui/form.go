package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dmitrijs2005/deskmate/internal/client/api"
	"github.com/dmitrijs2005/deskmate/internal/client/models"
)

// errorText maps the error taxonomy to a one-line status message.
func errorText(err error) string {
	var reqErr *api.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Sprintf("request failed (%d): %s", reqErr.Status, reqErr.Detail())
	}
	if errors.Is(err, api.ErrUnexpectedShape) {
		return "the server returned an unexpected response"
	}
	if errors.Is(err, api.ErrNetworkOrDecode) {
		return "cannot reach the server"
	}
	return err.Error()
}

// formConfig wires one create/edit form.
type formConfig struct {
	title string
	specs []models.FieldSpec

	// draft, when set, seeds the form (edit flows); otherwise a fresh
	// draft is built from specs.
	draft *models.Draft

	// submit receives the typed body. Run asynchronously.
	submit func(ctx context.Context, body map[string]any) error

	// successNote is shown in the status bar after a successful submit.
	successNote string
}

// formResultMsg carries the outcome of an async submit.
type formResultMsg struct {
	err error
}

// formView renders a draft as a column of inputs. Every keystroke writes
// through to the draft one field at a time, so sibling fields are never
// rebuilt or lost. A successful submit pops the form and refreshes the
// view beneath it; a failed submit keeps the form and its values.
type formView struct {
	ctx  context.Context
	deps *Deps
	cfg  formConfig

	draft  *models.Draft
	inputs []textinput.Model
	focus  int

	submitting bool
	errText    string
}

func newFormView(ctx context.Context, deps *Deps, cfg formConfig) *formView {
	draft := cfg.draft
	if draft == nil {
		draft = models.NewDraft(cfg.specs)
	}

	inputs := make([]textinput.Model, len(cfg.specs))
	for i, spec := range cfg.specs {
		input := textinput.New()
		input.Placeholder = spec.Label
		input.SetValue(draft.Get(spec.Name))
		if i == 0 {
			input.Focus()
		}
		inputs[i] = input
	}

	return &formView{ctx: ctx, deps: deps, cfg: cfg, draft: draft, inputs: inputs}
}

func (v *formView) Title() string      { return v.cfg.title }
func (v *formView) capturesKeys() bool { return true }

func (v *formView) Init() tea.Cmd {
	return textinput.Blink
}

func (v *formView) moveFocus(delta int) {
	v.inputs[v.focus].Blur()
	v.focus = (v.focus + delta + len(v.inputs)) % len(v.inputs)
	v.inputs[v.focus].Focus()
}

func (v *formView) submitCmd() tea.Cmd {
	if err := v.draft.Validate(); err != nil {
		v.errText = err.Error()
		return nil
	}
	v.submitting = true
	v.errText = ""
	body := v.draft.Body()
	return func() tea.Msg {
		return formResultMsg{err: v.cfg.submit(v.ctx, body)}
	}
}

func (v *formView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case formResultMsg:
		v.submitting = false
		if msg.err != nil {
			// the form and every typed value stay as they were
			v.errText = errorText(msg.err)
			return v, nil
		}
		note := v.cfg.successNote
		return v, tea.Batch(
			func() tea.Msg { return popViewMsg{refresh: true} },
			func() tea.Msg { return statusNoteMsg{text: note} },
		)

	case tea.KeyMsg:
		if v.submitting {
			return v, nil
		}
		keys := v.deps.Keys
		switch {
		case key.Matches(msg, keys.Back):
			return v, func() tea.Msg { return popViewMsg{} }
		case key.Matches(msg, keys.Next):
			v.moveFocus(1)
			return v, nil
		case msg.String() == "shift+tab":
			v.moveFocus(-1)
			return v, nil
		case msg.String() == "enter":
			if v.focus < len(v.inputs)-1 {
				v.moveFocus(1)
				return v, nil
			}
			return v, v.submitCmd()
		case key.Matches(msg, keys.Submit):
			return v, v.submitCmd()
		}
	}

	var cmd tea.Cmd
	v.inputs[v.focus], cmd = v.inputs[v.focus].Update(msg)
	// write-through: only the focused field's key changes in the draft
	v.draft.Set(v.cfg.specs[v.focus].Name, v.inputs[v.focus].Value())
	return v, cmd
}

func (v *formView) View() string {
	theme := v.deps.Theme
	label := lipgloss.NewStyle().Foreground(theme.FaintText).Width(18)

	var b strings.Builder
	b.WriteString("\n")
	for i, spec := range v.cfg.specs {
		name := spec.Label
		if spec.Required {
			name += " *"
		}
		b.WriteString("  " + label.Render(name) + v.inputs[i].View() + "\n")
	}

	if v.submitting {
		b.WriteString("\n  " + lipgloss.NewStyle().Foreground(theme.FaintText).Render("submitting..."))
	}
	if v.errText != "" {
		b.WriteString("\n  " + lipgloss.NewStyle().Foreground(theme.ErrorText).Render(v.errText))
	}

	help := lipgloss.NewStyle().Foreground(theme.HelpText)
	b.WriteString("\n\n  " + help.Render("Tab next field · Enter/C-d submit · Esc cancel"))
	return b.String()
}
