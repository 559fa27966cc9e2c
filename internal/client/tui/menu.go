package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dmitrijs2005/deskmate/internal/client/config"
)

// menuEntry is one destination on the portal menu. Exactly one of open/run
// is set.
type menuEntry struct {
	label string
	open  func() View
	run   func() tea.Cmd
}

// menuView is the portal home screen. Its entries depend on the configured
// role: users see their own tickets, approvals, feedback and the report
// download; agents see the full queue, the directory screens, notifications
// and the dashboard.
type menuView struct {
	ctx  context.Context
	deps *Deps

	entries []menuEntry
	cursor  int
}

func newMenuView(ctx context.Context, deps *Deps) *menuView {
	v := &menuView{ctx: ctx, deps: deps}

	v.entries = []menuEntry{
		{label: "Tickets", open: func() View { return newTicketListView(ctx, deps) }},
		{label: "Approvals", open: func() View { return newApprovalListView(ctx, deps) }},
		{label: "Feedback", open: func() View { return newFeedbackListView(ctx, deps) }},
	}

	if deps.Config.Role == config.RoleAgent {
		v.entries = append(v.entries,
			menuEntry{label: "Notifications", open: func() View { return newNotificationsView(ctx, deps) }},
			menuEntry{label: "Dashboard", open: func() View { return newDashboardView(ctx, deps) }},
			menuEntry{label: "Users", open: func() View { return newUserListView(ctx, deps) }},
			menuEntry{label: "Agents", open: func() View { return newAgentListView(ctx, deps) }},
			menuEntry{label: "Groups", open: func() View { return newGroupListView(ctx, deps) }},
			menuEntry{label: "SLAs", open: func() View { return newSLAListView(ctx, deps) }},
			menuEntry{label: "Ticket types", open: func() View { return newTicketTypeListView(ctx, deps) }},
		)
	} else {
		v.entries = append(v.entries,
			menuEntry{label: "Download ticket report", run: func() tea.Cmd { return downloadReportCmd(ctx, deps) }},
		)
	}

	v.entries = append(v.entries, menuEntry{label: "Log out", run: func() tea.Cmd { return logoutCmd(ctx, deps) }})
	return v
}

func downloadReportCmd(ctx context.Context, deps *Deps) tea.Cmd {
	return func() tea.Msg {
		dir := filepath.Dir(deps.Config.StateDBPath)
		path, err := deps.Analytics.DownloadReport(ctx, dir)
		if err != nil {
			return statusNoteMsg{text: errorText(err), isErr: true}
		}
		return statusNoteMsg{text: "report saved to " + path}
	}
}

func logoutCmd(ctx context.Context, deps *Deps) tea.Cmd {
	return func() tea.Msg {
		if err := deps.Auth.Logout(ctx); err != nil {
			return statusNoteMsg{text: err.Error(), isErr: true}
		}
		return loggedOutMsg{}
	}
}

func (v *menuView) Title() string {
	return fmt.Sprintf("deskmate · %s portal", v.deps.Config.Role)
}

func (v *menuView) Init() tea.Cmd { return nil }

func (v *menuView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
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
		case key.Matches(msg, keys.Report):
			if v.deps.Config.Role == config.RoleUser {
				return v, downloadReportCmd(v.ctx, v.deps)
			}
		case key.Matches(msg, keys.Select):
			entry := v.entries[v.cursor]
			if entry.open != nil {
				next := entry.open()
				return v, func() tea.Msg { return pushViewMsg{view: next} }
			}
			return v, entry.run()
		}
	}
	return v, nil
}

func (v *menuView) View() string {
	theme := v.deps.Theme
	selected := lipgloss.NewStyle().
		Background(theme.SelectedBackground).
		Foreground(theme.SelectedForeground)

	var b strings.Builder
	b.WriteString("\n")
	for i, entry := range v.entries {
		line := "  " + entry.label
		if i == v.cursor {
			line = selected.Render(line)
		}
		b.WriteString(line + "\n")
	}

	help := lipgloss.NewStyle().Foreground(theme.HelpText)
	b.WriteString("\n  " + help.Render("j/k move · Enter open · q quit"))
	return b.String()
}
