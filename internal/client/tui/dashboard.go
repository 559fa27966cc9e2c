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

// metricsLoadedMsg delivers the joined dashboard metrics.
type metricsLoadedMsg struct {
	gen     int
	metrics models.DashboardMetrics
	err     error
}

// dashboardView shows the agent analytics: five metrics fetched side by
// side and joined into one screen.
type dashboardView struct {
	ctx  context.Context
	deps *Deps

	gen      int
	fetching bool
	loaded   bool

	metrics models.DashboardMetrics
	errText string
}

func newDashboardView(ctx context.Context, deps *Deps) *dashboardView {
	return &dashboardView{ctx: ctx, deps: deps}
}

func (v *dashboardView) Title() string { return "dashboard" }

func (v *dashboardView) Init() tea.Cmd {
	return v.fetchCmd()
}

func (v *dashboardView) fetchCmd() tea.Cmd {
	if v.fetching {
		return nil
	}
	v.fetching = true
	v.gen++
	gen := v.gen
	return func() tea.Msg {
		metrics, err := v.deps.Analytics.Dashboard(v.ctx)
		return metricsLoadedMsg{gen: gen, metrics: metrics, err: err}
	}
}

func (v *dashboardView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case refetchMsg:
		return v, v.fetchCmd()

	case metricsLoadedMsg:
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
		v.metrics = msg.metrics
		return v, nil

	case tea.KeyMsg:
		keys := v.deps.Keys
		switch {
		case key.Matches(msg, keys.Refresh):
			return v, v.fetchCmd()
		case key.Matches(msg, keys.Back):
			return v, func() tea.Msg { return popViewMsg{} }
		}
	}
	return v, nil
}

func (v *dashboardView) View() string {
	theme := v.deps.Theme
	faint := lipgloss.NewStyle().Foreground(theme.FaintText)
	label := lipgloss.NewStyle().Foreground(theme.FaintText).Width(28)
	header := lipgloss.NewStyle().Foreground(theme.HeaderForeground)

	var b strings.Builder
	b.WriteString("\n")

	switch {
	case v.errText != "":
		b.WriteString("  " + lipgloss.NewStyle().Foreground(theme.ErrorText).Render(v.errText) + "\n")
	case !v.loaded:
		b.WriteString("  " + faint.Render("loading...") + "\n")
	default:
		m := v.metrics
		b.WriteString("  " + label.Render("average satisfaction") + fmt.Sprintf("%.2f / 5", m.AverageSatisfaction) + "\n")
		b.WriteString("  " + label.Render("first response delinquency") + fmt.Sprintf("%d tickets", m.FirstResponseDelinquency) + "\n")
		b.WriteString("  " + label.Render("reopened tickets") + fmt.Sprintf("%d", m.ReopenedTickets) + "\n")

		b.WriteString("\n  " + header.Render("resolved by agent") + "\n")
		if len(m.TicketsResolvedByAgent) == 0 {
			b.WriteString("  " + faint.Render("none yet") + "\n")
		}
		for _, row := range m.TicketsResolvedByAgent {
			b.WriteString("  " + label.Render(row.AgentName) + fmt.Sprintf("%d", row.Count) + "\n")
		}

		b.WriteString("\n  " + header.Render("resolved by group") + "\n")
		if len(m.TicketsResolvedByGroup) == 0 {
			b.WriteString("  " + faint.Render("none yet") + "\n")
		}
		for _, row := range m.TicketsResolvedByGroup {
			b.WriteString("  " + label.Render(row.GroupName) + fmt.Sprintf("%d", row.Count) + "\n")
		}
	}

	help := lipgloss.NewStyle().Foreground(theme.HelpText)
	b.WriteString("\n  " + help.Render("r refresh · Esc back"))
	return b.String()
}
