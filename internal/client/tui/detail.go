package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dmitrijs2005/deskmate/internal/client/models"
	"github.com/dmitrijs2005/deskmate/internal/client/session"
)

// detailAction is one extra key binding on a record screen. Exactly one of
// run/open is set: run executes a mutation against the record, open pushes
// another view for it.
type detailAction struct {
	binding key.Binding
	help    string

	run  func(ctx context.Context, id int) error
	note string // status note after a successful run
	pops bool   // pop back to the list after a successful run

	open func(id int) View
}

// detailConfig wires one resource's record screen.
type detailConfig struct {
	title    string
	resource session.Resource
	specs    []models.FieldSpec

	load func(ctx context.Context, id int) (any, error)

	// update backs the edit form; nil makes the record read-only.
	update     func(ctx context.Context, id int, body map[string]any) error
	updateNote string

	// editSpecs, when set, restricts the edit form to the mutable fields;
	// otherwise the display specs are used.
	editSpecs []models.FieldSpec

	actions []detailAction
}

// recordLoadedMsg delivers one record fetch, tagged with the request
// generation so stale responses are dropped.
type recordLoadedMsg struct {
	gen    int
	record any
	err    error
}

// actionResultMsg carries the outcome of an async detail action.
type actionResultMsg struct {
	err  error
	note string
	pops bool
}

type detailView struct {
	ctx  context.Context
	deps *Deps
	cfg  detailConfig

	id        int
	idMissing bool

	gen      int
	fetching bool
	loaded   bool

	record  any
	display *models.Draft
	errText string
}

// newDetailView reads the remembered id for the resource. When none is
// stored the view starts in a failed state and never touches the network.
func newDetailView(ctx context.Context, deps *Deps, cfg detailConfig) *detailView {
	v := &detailView{ctx: ctx, deps: deps, cfg: cfg}

	id, err := deps.Session.SelectedID(ctx, cfg.resource)
	if err != nil {
		v.idMissing = true
		v.loaded = true
		if errors.Is(err, session.ErrNoIdentifier) {
			v.errText = "no record selected"
		} else {
			v.errText = err.Error()
		}
		return v
	}
	v.id = id
	return v
}

func (v *detailView) Title() string { return v.cfg.title }

func (v *detailView) Init() tea.Cmd {
	return v.fetchCmd()
}

func (v *detailView) fetchCmd() tea.Cmd {
	if v.idMissing || v.fetching {
		return nil
	}
	v.fetching = true
	v.gen++
	gen := v.gen
	return func() tea.Msg {
		record, err := v.cfg.load(v.ctx, v.id)
		return recordLoadedMsg{gen: gen, record: record, err: err}
	}
}

func (v *detailView) editForm() View {
	specs := v.cfg.editSpecs
	if specs == nil {
		specs = v.cfg.specs
	}
	draft, err := models.DraftFromRecord(specs, v.record)
	if err != nil {
		draft = models.NewDraft(specs)
	}
	id := v.id
	return newFormView(v.ctx, v.deps, formConfig{
		title:       v.cfg.title + " · edit",
		specs:       specs,
		draft:       draft,
		successNote: v.cfg.updateNote,
		submit: func(ctx context.Context, body map[string]any) error {
			return v.cfg.update(ctx, id, body)
		},
	})
}

func (v *detailView) runAction(action detailAction) tea.Cmd {
	if action.open != nil {
		next := action.open(v.id)
		return func() tea.Msg { return pushViewMsg{view: next} }
	}
	id := v.id
	return func() tea.Msg {
		err := action.run(v.ctx, id)
		return actionResultMsg{err: err, note: action.note, pops: action.pops}
	}
}

func (v *detailView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case refetchMsg:
		return v, v.fetchCmd()

	case recordLoadedMsg:
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
		v.record = msg.record
		if display, err := models.DraftFromRecord(v.cfg.specs, msg.record); err == nil {
			v.display = display
		}
		return v, nil

	case actionResultMsg:
		if msg.err != nil {
			return v, func() tea.Msg { return statusNoteMsg{text: errorText(msg.err), isErr: true} }
		}
		if msg.pops {
			return v, tea.Batch(
				func() tea.Msg { return popViewMsg{refresh: true} },
				func() tea.Msg { return statusNoteMsg{text: msg.note} },
			)
		}
		return v, tea.Batch(
			v.fetchCmd(),
			func() tea.Msg { return statusNoteMsg{text: msg.note} },
		)

	case tea.KeyMsg:
		keys := v.deps.Keys
		switch {
		case key.Matches(msg, keys.Back):
			return v, func() tea.Msg { return popViewMsg{} }
		case key.Matches(msg, keys.Refresh):
			return v, v.fetchCmd()
		case key.Matches(msg, keys.Edit):
			if v.cfg.update != nil && v.record != nil {
				form := v.editForm()
				return v, func() tea.Msg { return pushViewMsg{view: form} }
			}
		default:
			if v.idMissing {
				return v, nil
			}
			for _, action := range v.cfg.actions {
				if !key.Matches(msg, action.binding) {
					continue
				}
				// open-type actions key on the identifier alone, even when
				// the record fetch failed; mutations need the loaded record
				if action.open == nil && v.record == nil {
					return v, nil
				}
				return v, v.runAction(action)
			}
		}
	}
	return v, nil
}

func (v *detailView) View() string {
	theme := v.deps.Theme
	faint := lipgloss.NewStyle().Foreground(theme.FaintText)
	label := lipgloss.NewStyle().Foreground(theme.FaintText).Width(18)

	var b strings.Builder
	b.WriteString("\n")

	switch {
	case v.errText != "":
		b.WriteString("  " + lipgloss.NewStyle().Foreground(theme.ErrorText).Render(v.errText) + "\n")
	case !v.loaded || v.display == nil:
		b.WriteString("  " + faint.Render("loading...") + "\n")
	default:
		for _, spec := range v.cfg.specs {
			value := v.display.Get(spec.Name)
			if value == "" {
				value = "-"
			}
			b.WriteString("  " + label.Render(spec.Label) + value + "\n")
		}
	}

	help := []string{"r refresh", "Esc back"}
	if v.cfg.update != nil {
		help = append(help, "e edit")
	}
	for _, action := range v.cfg.actions {
		help = append(help, action.help)
	}
	b.WriteString("\n  " + lipgloss.NewStyle().Foreground(theme.HelpText).Render(strings.Join(help, " · ")))
	return b.String()
}
