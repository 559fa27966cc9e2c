package tui

import (
	"context"
	"database/sql"
	"reflect"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/deskmate/internal/client/config"
	"github.com/dmitrijs2005/deskmate/internal/client/models"
	"github.com/dmitrijs2005/deskmate/internal/client/session"
	"github.com/dmitrijs2005/deskmate/internal/logging"

	_ "modernc.org/sqlite"
)

// runCmd executes a command tree and returns every message it produced,
// flattening tea.Batch.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, sub := range batch {
			out = append(out, runCmd(sub)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	// Cursor blink messages re-arm a timer command on every Update, so
	// pumping them through feed would never terminate; drop them.
	if reflect.TypeOf(msg).PkgPath() == "github.com/charmbracelet/bubbles/cursor" {
		return nil
	}
	return []tea.Msg{msg}
}

// feed runs a command and pumps every resulting message back into the
// view, returning the final view and all messages seen.
func feed(v View, cmd tea.Cmd) (View, []tea.Msg) {
	var seen []tea.Msg
	queue := runCmd(cmd)
	for len(queue) > 0 {
		msg := queue[0]
		queue = queue[1:]
		seen = append(seen, msg)
		var next tea.Cmd
		v, next = v.Update(msg)
		queue = append(queue, runCmd(next)...)
	}
	return v, seen
}

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// --- fakes ---

type fakeAuth struct {
	loginErr    error
	loginCalls  int
	logoutErr   error
	logoutCalls int
}

func (f *fakeAuth) Login(ctx context.Context, username, password string) error {
	f.loginCalls++
	return f.loginErr
}

func (f *fakeAuth) Logout(ctx context.Context) error {
	f.logoutCalls++
	return f.logoutErr
}

type fakeTickets struct {
	listRet   []models.Ticket
	listErr   error
	listCalls int

	getRet   models.Ticket
	getErr   error
	getCalls int

	createErr   error
	createCalls int

	updateErr   error
	updateCalls int
	lastUpdate  map[string]any

	commentsRet   []models.CommentEntry
	commentsErr   error
	commentsCalls int

	postRet     []models.CommentEntry
	postErr     error
	postCalls   int
	lastMessage string
	lastPrivate bool
}

func (f *fakeTickets) List(ctx context.Context) ([]models.Ticket, error) {
	f.listCalls++
	return f.listRet, f.listErr
}

func (f *fakeTickets) Get(ctx context.Context, id int) (models.Ticket, error) {
	f.getCalls++
	return f.getRet, f.getErr
}

func (f *fakeTickets) Create(ctx context.Context, body map[string]any) error {
	f.createCalls++
	return f.createErr
}

func (f *fakeTickets) Update(ctx context.Context, id int, body map[string]any) error {
	f.updateCalls++
	f.lastUpdate = body
	return f.updateErr
}

func (f *fakeTickets) Comments(ctx context.Context, ticketID int) ([]models.CommentEntry, error) {
	f.commentsCalls++
	return f.commentsRet, f.commentsErr
}

func (f *fakeTickets) PostComment(ctx context.Context, ticketID int, message string, isPrivate bool) ([]models.CommentEntry, error) {
	f.postCalls++
	f.lastMessage = message
	f.lastPrivate = isPrivate
	return f.postRet, f.postErr
}

type fakeNotifications struct {
	unreadRet   []models.Notification
	unreadErr   error
	unreadCalls int

	markErr   error
	markCalls []int
}

func (f *fakeNotifications) Unread(ctx context.Context) ([]models.Notification, error) {
	f.unreadCalls++
	return f.unreadRet, f.unreadErr
}

func (f *fakeNotifications) MarkRead(ctx context.Context, id int) error {
	f.markCalls = append(f.markCalls, id)
	return f.markErr
}

type fakeApprovals struct {
	listRet []models.Approval
	getRet  models.Approval

	decideErr   error
	decideCalls int
	lastStatus  string

	startErr   error
	startCalls int
}

func (f *fakeApprovals) List(ctx context.Context) ([]models.Approval, error) { return f.listRet, nil }
func (f *fakeApprovals) Get(ctx context.Context, id int) (models.Approval, error) {
	return f.getRet, nil
}

func (f *fakeApprovals) Decide(ctx context.Context, id int, status, comments string) error {
	f.decideCalls++
	f.lastStatus = status
	return f.decideErr
}

func (f *fakeApprovals) Resubmit(ctx context.Context, id int, comments string) error { return nil }

func (f *fakeApprovals) StartDraftProcess(ctx context.Context, ticketID int) error {
	f.startCalls++
	return f.startErr
}

func (f *fakeApprovals) Reassign(ctx context.Context, id, recipientID int) error { return nil }

type fakeFeedback struct {
	allRet      []models.Feedback
	getRet      models.Feedback
	getErr      error
	createErr   error
	createCalls int
	lastRating  int
}

func (f *fakeFeedback) All(ctx context.Context) ([]models.Feedback, error)     { return f.allRet, nil }
func (f *fakeFeedback) Get(ctx context.Context, id int) (models.Feedback, error) {
	return f.getRet, f.getErr
}

func (f *fakeFeedback) Create(ctx context.Context, ticketID, rating int, comments string) error {
	f.createCalls++
	f.lastRating = rating
	return f.createErr
}

func (f *fakeFeedback) Update(ctx context.Context, id, rating int, comments string) error {
	return nil
}
func (f *fakeFeedback) Delete(ctx context.Context, id int) error { return nil }

type fakeAnalytics struct {
	metrics models.DashboardMetrics
	err     error

	reportPath string
	reportErr  error
}

func (f *fakeAnalytics) Dashboard(ctx context.Context) (models.DashboardMetrics, error) {
	return f.metrics, f.err
}

func (f *fakeAnalytics) DownloadReport(ctx context.Context, dir string) (string, error) {
	return f.reportPath, f.reportErr
}

// testDeps builds a Deps with fake services and an in-memory session store.
func testDeps(t *testing.T, role config.Role) (*Deps, *session.Session) {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE session (key TEXT PRIMARY KEY, value TEXT NOT NULL);`)
	require.NoError(t, err)

	sess := session.New(session.NewSQLiteStore(db), role)

	deps := &Deps{
		Config:        &config.Config{Role: role, StateDBPath: "deskmate.db"},
		Log:           logging.NewNopLogger(),
		Session:       sess,
		Auth:          &fakeAuth{},
		Tickets:       &fakeTickets{},
		Notifications: &fakeNotifications{},
		Approvals:     &fakeApprovals{},
		Feedback:      &fakeFeedback{},
		Analytics:     &fakeAnalytics{},
		Theme:         DefaultTheme,
		Keys:          DefaultKeyMap,
	}
	return deps, sess
}
