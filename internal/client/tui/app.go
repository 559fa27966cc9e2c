// Package tui implements the terminal front end: a root model owning a
// navigation stack of views, with one view active at a time. Views are
// plain structs updated through bubbletea messages; all network work runs
// in commands so the update loop never blocks.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dmitrijs2005/deskmate/internal/client/config"
	"github.com/dmitrijs2005/deskmate/internal/client/models"
	"github.com/dmitrijs2005/deskmate/internal/client/services"
	"github.com/dmitrijs2005/deskmate/internal/client/session"
	"github.com/dmitrijs2005/deskmate/internal/logging"
)

// View is one screen of the client. Update returns the successor view
// (usually the receiver) plus a command, mirroring tea.Model but with a
// concrete interface the navigation stack can hold.
type View interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (View, tea.Cmd)
	View() string
	Title() string
}

// Deps bundles everything the views need. Built once at startup.
type Deps struct {
	Config  *config.Config
	Log     logging.Logger
	Session *session.Session

	Auth          services.AuthService
	Tickets       services.TicketService
	Notifications services.NotificationService
	Approvals     services.ApprovalService
	Feedback      services.FeedbackService
	Analytics     services.AnalyticsService

	Users       *services.Catalog[models.User]
	Agents      *services.Catalog[models.Agent]
	Groups      *services.Catalog[models.Group]
	SLAs        *services.Catalog[models.SLA]
	TicketTypes *services.Catalog[models.TicketType]

	Theme Theme
	Keys  KeyMap
}

// App is the root bubbletea model.
type App struct {
	deps *Deps
	ctx  context.Context

	stack []View

	width  int
	height int

	identity string
	badge    int

	status    string
	statusErr bool
}

// NewApp builds the root model. When a stored token for the configured role
// is present and not expired, the client resumes straight into the portal
// menu; otherwise it starts at the login screen.
func NewApp(ctx context.Context, deps *Deps) *App {
	app := &App{deps: deps, ctx: ctx}

	if token, err := deps.Session.Token(ctx); err == nil {
		if claims, err := session.PeekClaims(token); err == nil && !claims.Expired(time.Now()) {
			app.identity = claims.Subject
			app.stack = []View{newMenuView(ctx, deps)}
			return app
		}
	}

	app.stack = []View{newLoginView(ctx, deps)}
	return app
}

func (a *App) top() View {
	return a.stack[len(a.stack)-1]
}

func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.top().Init()}
	// a resumed agent session starts with a fresh unread count
	if a.identity != "" && a.deps.Config.Role == config.RoleAgent {
		cmds = append(cmds, refreshBadgeCmd(a.ctx, a.deps))
	}
	return tea.Batch(cmds...)
}

// refreshBadgeCmd fetches the unread notification count. Agent portal only.
func refreshBadgeCmd(ctx context.Context, deps *Deps) tea.Cmd {
	return func() tea.Msg {
		notifications, err := deps.Notifications.Unread(ctx)
		if err != nil {
			return badgeCountMsg{err: err}
		}
		return badgeCountMsg{count: len(notifications)}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// fall through to the active view so it can resize too

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		// "q" quits only when the active view is not capturing text input.
		captures := false
		if c, ok := a.top().(interface{ capturesKeys() bool }); ok {
			captures = c.capturesKeys()
		}
		if key.Matches(msg, a.deps.Keys.Quit) && !captures {
			return a, tea.Quit
		}

	case pushViewMsg:
		a.stack = append(a.stack, msg.view)
		return a, msg.view.Init()

	case popViewMsg:
		if len(a.stack) > 1 {
			a.stack = a.stack[:len(a.stack)-1]
		}
		if msg.refresh {
			return a.Update(refetchMsg{})
		}
		return a, nil

	case statusNoteMsg:
		a.status = msg.text
		a.statusErr = msg.isErr
		return a, nil

	case loggedInMsg:
		if token, err := a.deps.Session.Token(a.ctx); err == nil {
			if claims, err := session.PeekClaims(token); err == nil {
				a.identity = claims.Subject
			}
		}
		menu := newMenuView(a.ctx, a.deps)
		a.stack = []View{menu}
		cmds := []tea.Cmd{menu.Init()}
		if a.deps.Config.Role == config.RoleAgent {
			cmds = append(cmds, refreshBadgeCmd(a.ctx, a.deps))
		}
		return a, tea.Batch(cmds...)

	case loggedOutMsg:
		a.identity = ""
		a.badge = 0
		login := newLoginView(a.ctx, a.deps)
		a.stack = []View{login}
		return a, login.Init()

	case badgeCountMsg:
		if msg.err == nil {
			a.badge = msg.count
		}
		return a, nil
	}

	next, cmd := a.top().Update(msg)
	a.stack[len(a.stack)-1] = next
	return a, cmd
}

func (a *App) View() string {
	theme := a.deps.Theme

	titleStyle := lipgloss.NewStyle().Foreground(theme.HeaderForeground).Bold(true)
	faint := lipgloss.NewStyle().Foreground(theme.FaintText)
	badgeStyle := lipgloss.NewStyle().Foreground(theme.BadgeText).Bold(true)

	var header strings.Builder
	header.WriteString(titleStyle.Render(a.top().Title()))
	if a.identity != "" {
		header.WriteString(faint.Render(fmt.Sprintf("  %s (%s)", a.identity, a.deps.Config.Role)))
	}
	if a.badge > 0 {
		header.WriteString("  " + badgeStyle.Render(fmt.Sprintf("● %d unread", a.badge)))
	}

	status := a.status
	statusStyle := lipgloss.NewStyle().Foreground(theme.SuccessText)
	if a.statusErr {
		statusStyle = lipgloss.NewStyle().Foreground(theme.ErrorText)
	}

	sections := []string{
		header.String(),
		a.top().View(),
	}
	if status != "" {
		sections = append(sections, statusStyle.Render(status))
	}
	return strings.Join(sections, "\n")
}
