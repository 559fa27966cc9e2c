// Package cli assembles the deskmate client: it opens the local state
// database, builds the HTTP transport and application services, and runs
// the terminal program.
package cli

import (
	"context"
	"database/sql"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dmitrijs2005/deskmate/internal/client/api"
	"github.com/dmitrijs2005/deskmate/internal/client/config"
	"github.com/dmitrijs2005/deskmate/internal/client/services"
	"github.com/dmitrijs2005/deskmate/internal/client/session"
	"github.com/dmitrijs2005/deskmate/internal/client/tui"
	"github.com/dmitrijs2005/deskmate/internal/logging"

	_ "modernc.org/sqlite"
)

type App struct {
	config *config.Config
	db     *sql.DB
	log    logging.Logger
	deps   *tui.Deps
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	log, err := logging.NewFileLogger(c.LogFilePath)
	if err != nil {
		return nil, fmt.Errorf("error opening log file: %w", err)
	}

	db, err := session.InitDatabase(ctx, c.StateDBPath)
	if err != nil {
		log.Error(ctx, "error initializing state database", "error", err)
		return nil, err
	}

	sess := session.New(session.NewSQLiteStore(db), c.Role)
	apiClient := api.NewHTTPClient(c.ServerBaseURL, c.RequestTimeout, session.TokenSource{Session: sess}, log)

	deps := &tui.Deps{
		Config:  c,
		Log:     log,
		Session: sess,

		Auth:          services.NewAuthService(apiClient, sess, c.Role),
		Tickets:       services.NewTicketService(apiClient, c.Role),
		Notifications: services.NewNotificationService(apiClient),
		Approvals:     services.NewApprovalService(apiClient, c.Role),
		Feedback:      services.NewFeedbackService(apiClient, c.Role),
		Analytics:     services.NewAnalyticsService(apiClient),

		Users:       services.NewUserCatalog(apiClient),
		Agents:      services.NewAgentCatalog(apiClient),
		Groups:      services.NewGroupCatalog(apiClient),
		SLAs:        services.NewSLACatalog(apiClient),
		TicketTypes: services.NewTicketTypeCatalog(apiClient),

		Theme: tui.DefaultTheme,
		Keys:  tui.DefaultKeyMap,
	}

	return &App{config: c, db: db, log: log, deps: deps}, nil
}

func (a *App) Run(ctx context.Context) error {
	defer a.db.Close()

	program := tea.NewProgram(tui.NewApp(ctx, a.deps), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		a.log.Error(ctx, "program exited with error", "error", err)
		return err
	}
	return nil
}
