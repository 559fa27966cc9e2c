package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dmitrijs2005/deskmate/internal/client/models"
)

// notificationsLoadedMsg delivers the unread list, generation-tagged.
type notificationsLoadedMsg struct {
	gen     int
	entries []models.Notification
	err     error
}

// notificationReadMsg reports one acknowledged notification.
type notificationReadMsg struct {
	id  int
	err error
}

// notificationsView lists the agent's unread notifications. Acknowledging
// one removes exactly that row; the rest of the list is untouched until
// the next fetch.
type notificationsView struct {
	ctx  context.Context
	deps *Deps

	gen      int
	fetching bool
	loaded   bool

	entries []models.Notification
	errText string
	cursor  int
}

func newNotificationsView(ctx context.Context, deps *Deps) *notificationsView {
	return &notificationsView{ctx: ctx, deps: deps}
}

func (v *notificationsView) Title() string { return "notifications" }

func (v *notificationsView) Init() tea.Cmd {
	return v.fetchCmd()
}

func (v *notificationsView) fetchCmd() tea.Cmd {
	if v.fetching {
		return nil
	}
	v.fetching = true
	v.gen++
	gen := v.gen
	return func() tea.Msg {
		entries, err := v.deps.Notifications.Unread(v.ctx)
		return notificationsLoadedMsg{gen: gen, entries: entries, err: err}
	}
}

func (v *notificationsView) markReadCmd() tea.Cmd {
	if v.cursor >= len(v.entries) {
		return nil
	}
	id := v.entries[v.cursor].ID
	return func() tea.Msg {
		return notificationReadMsg{id: id, err: v.deps.Notifications.MarkRead(v.ctx, id)}
	}
}

func (v *notificationsView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case refetchMsg:
		return v, v.fetchCmd()

	case notificationsLoadedMsg:
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
		v.entries = msg.entries
		if v.cursor >= len(v.entries) {
			v.cursor = max(0, len(v.entries)-1)
		}
		return v, nil

	case notificationReadMsg:
		if msg.err != nil {
			return v, func() tea.Msg { return statusNoteMsg{text: errorText(msg.err), isErr: true} }
		}
		// drop only the acknowledged entry
		kept := v.entries[:0]
		for _, entry := range v.entries {
			if entry.ID != msg.id {
				kept = append(kept, entry)
			}
		}
		v.entries = kept
		if v.cursor >= len(v.entries) {
			v.cursor = max(0, len(v.entries)-1)
		}
		return v, refreshBadgeCmd(v.ctx, v.deps)

	case tea.KeyMsg:
		keys := v.deps.Keys
		switch {
		case key.Matches(msg, keys.Up):
			if v.cursor > 0 {
				v.cursor--
			}
		case key.Matches(msg, keys.Down):
			if v.cursor < len(v.entries)-1 {
				v.cursor++
			}
		case key.Matches(msg, keys.Refresh):
			return v, v.fetchCmd()
		case key.Matches(msg, keys.MarkRead):
			return v, v.markReadCmd()
		case key.Matches(msg, keys.Back):
			return v, func() tea.Msg { return popViewMsg{} }
		}
	}
	return v, nil
}

func (v *notificationsView) View() string {
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
	case len(v.entries) == 0:
		b.WriteString("  " + faint.Render("nothing unread") + "\n")
	default:
		for i, entry := range v.entries {
			line := fmt.Sprintf("  #%-5d ticket %d  %s", entry.ID, entry.TicketID, entry.Message)
			if i == v.cursor {
				line = selected.Render(line)
			}
			b.WriteString(line + "\n")
		}
	}

	help := lipgloss.NewStyle().Foreground(theme.HelpText)
	b.WriteString("\n  " + help.Render("j/k move · m mark read · r refresh · Esc back"))
	return b.String()
}
