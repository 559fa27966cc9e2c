package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dmitrijs2005/deskmate/internal/client/session"
)

// Row is one rendered line of a list view.
type Row struct {
	ID      int
	Columns []string
}

// listConfig wires one resource's collection screen.
type listConfig struct {
	title     string
	emptyText string

	// resource keys the remembered selection; empty means selection is
	// not persisted.
	resource session.Resource

	fetch func(ctx context.Context) ([]Row, error)

	// open builds the view pushed when a row is selected; nil disables
	// opening.
	open func(id int) View

	// form, when set, backs the "new record" screen.
	form *formConfig
}

// listLoadedMsg delivers one fetch result. gen ties the response to the
// request generation that issued it; responses from an older generation
// are dropped.
type listLoadedMsg struct {
	gen  int
	rows []Row
	err  error
}

type listView struct {
	ctx  context.Context
	deps *Deps
	cfg  listConfig

	gen      int
	fetching bool
	loaded   bool

	rows    []Row
	errText string
	cursor  int
}

func newListView(ctx context.Context, deps *Deps, cfg listConfig) *listView {
	return &listView{ctx: ctx, deps: deps, cfg: cfg}
}

func (v *listView) Title() string { return v.cfg.title }

func (v *listView) Init() tea.Cmd {
	return v.fetchCmd()
}

// fetchCmd starts a fetch unless one is already in flight. The guard keeps
// a refresh key mashed during a slow request from stacking duplicate
// fetches.
func (v *listView) fetchCmd() tea.Cmd {
	if v.fetching {
		return nil
	}
	v.fetching = true
	v.gen++
	gen := v.gen
	return func() tea.Msg {
		rows, err := v.cfg.fetch(v.ctx)
		return listLoadedMsg{gen: gen, rows: rows, err: err}
	}
}

func (v *listView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case refetchMsg:
		return v, v.fetchCmd()

	case listLoadedMsg:
		if msg.gen != v.gen {
			return v, nil
		}
		v.fetching = false
		v.loaded = true
		if msg.err != nil {
			v.errText = errorText(msg.err)
			return v, nil
		}
		v.errText = ""
		v.rows = msg.rows
		if v.cursor >= len(v.rows) {
			v.cursor = max(0, len(v.rows)-1)
		}
		return v, nil

	case tea.KeyMsg:
		keys := v.deps.Keys
		switch {
		case key.Matches(msg, keys.Up):
			if v.cursor > 0 {
				v.cursor--
			}
		case key.Matches(msg, keys.Down):
			if v.cursor < len(v.rows)-1 {
				v.cursor++
			}
		case key.Matches(msg, keys.Home):
			v.cursor = 0
		case key.Matches(msg, keys.End):
			v.cursor = max(0, len(v.rows)-1)
		case key.Matches(msg, keys.Refresh):
			return v, v.fetchCmd()
		case key.Matches(msg, keys.Back):
			return v, func() tea.Msg { return popViewMsg{} }
		case key.Matches(msg, keys.New):
			if v.cfg.form != nil {
				form := newFormView(v.ctx, v.deps, *v.cfg.form)
				return v, func() tea.Msg { return pushViewMsg{view: form} }
			}
		case key.Matches(msg, keys.Select):
			return v, v.openSelected()
		}
	}
	return v, nil
}

// openSelected remembers the highlighted row's id and pushes its detail
// view. The id write happens before the push so the detail view can read
// it back from the store.
func (v *listView) openSelected() tea.Cmd {
	if v.cfg.open == nil || v.cursor >= len(v.rows) {
		return nil
	}
	row := v.rows[v.cursor]
	if v.cfg.resource != "" {
		if err := v.deps.Session.SetSelectedID(v.ctx, v.cfg.resource, row.ID); err != nil {
			return func() tea.Msg { return statusNoteMsg{text: err.Error(), isErr: true} }
		}
	}
	next := v.cfg.open(row.ID)
	return func() tea.Msg { return pushViewMsg{view: next} }
}

func (v *listView) View() string {
	theme := v.deps.Theme
	faint := lipgloss.NewStyle().Foreground(theme.FaintText)
	selected := lipgloss.NewStyle().
		Background(theme.SelectedBackground).
		Foreground(theme.SelectedForeground)

	var b strings.Builder
	b.WriteString("\n")

	switch {
	case v.errText != "":
		b.WriteString("  " + lipgloss.NewStyle().Foreground(theme.ErrorText).Render(v.errText) + "\n")
	case !v.loaded:
		b.WriteString("  " + faint.Render("loading...") + "\n")
	case len(v.rows) == 0:
		b.WriteString("  " + faint.Render(v.cfg.emptyText) + "\n")
	default:
		for i, row := range v.rows {
			line := fmt.Sprintf("  #%-5d %s", row.ID, strings.Join(row.Columns, "  "))
			if i == v.cursor {
				line = selected.Render(line)
			}
			b.WriteString(line + "\n")
		}
	}

	help := []string{"j/k move", "Enter open", "r refresh", "Esc back"}
	if v.cfg.form != nil {
		help = append(help, "n new")
	}
	b.WriteString("\n  " + lipgloss.NewStyle().Foreground(theme.HelpText).Render(strings.Join(help, " · ")))
	return b.String()
}
