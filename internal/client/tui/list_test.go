package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/deskmate/internal/client/config"
	"github.com/dmitrijs2005/deskmate/internal/client/models"
	"github.com/dmitrijs2005/deskmate/internal/client/session"
)

func ticketList(t *testing.T, role config.Role, tickets *fakeTickets) (View, *Deps, *session.Session) {
	t.Helper()
	deps, sess := testDeps(t, role)
	deps.Tickets = tickets
	return newTicketListView(context.Background(), deps), deps, sess
}

func TestList_LoadsRows(t *testing.T) {
	view, _, _ := ticketList(t, config.RoleUser, &fakeTickets{listRet: []models.Ticket{
		{ID: 1, Title: "VPN down", TicketStatus: "Open", Priority: "High"},
		{ID: 2, Title: "Printer jam", TicketStatus: "Closed", Priority: "Low"},
	}})

	view, _ = feed(view, view.Init())

	out := view.View()
	assert.Contains(t, out, "VPN down")
	assert.Contains(t, out, "Printer jam")
}

func TestList_EmptyIsNotFailure(t *testing.T) {
	view, _, _ := ticketList(t, config.RoleUser, &fakeTickets{})

	view, _ = feed(view, view.Init())

	out := view.View()
	assert.Contains(t, out, "no tickets")
	assert.NotContains(t, out, "cannot reach")
}

func TestList_FetchErrorRenders(t *testing.T) {
	view, _, _ := ticketList(t, config.RoleUser, &fakeTickets{listErr: errors.New("boom")})

	view, _ = feed(view, view.Init())

	assert.Contains(t, view.View(), "boom")
}

func TestList_RefreshGuardDropsConcurrentFetch(t *testing.T) {
	tickets := &fakeTickets{}
	view, _, _ := ticketList(t, config.RoleUser, tickets)
	lv := view.(*listView)

	// first fetch is in flight; mashing refresh issues nothing new
	cmd := lv.Init()
	require.NotNil(t, cmd)
	_, second := lv.Update(keyPress('r'))
	assert.Nil(t, second)

	// completing the first fetch lands normally
	feed(view, cmd)
	assert.Equal(t, 1, tickets.listCalls)
}

func TestList_StaleResponseDropped(t *testing.T) {
	tickets := &fakeTickets{listRet: []models.Ticket{{ID: 1, Title: "fresh"}}}
	view, _, _ := ticketList(t, config.RoleUser, tickets)
	lv := view.(*listView)

	cmd := lv.Init()
	view, _ = feed(view, cmd)
	lv = view.(*listView)

	// a response from a superseded generation must not overwrite the rows
	stale := listLoadedMsg{gen: lv.gen - 1, rows: []Row{{ID: 9, Columns: []string{"stale"}}}}
	view, _ = lv.Update(stale)

	assert.Contains(t, view.View(), "fresh")
	assert.NotContains(t, view.View(), "stale")
}

func TestList_OpenPersistsSelectedID(t *testing.T) {
	tickets := &fakeTickets{listRet: []models.Ticket{
		{ID: 41, Title: "first"},
		{ID: 42, Title: "second"},
	}}
	view, _, sess := ticketList(t, config.RoleUser, tickets)

	view, _ = feed(view, view.Init())
	view, _ = view.Update(keyPress('j')) // cursor to second row

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msgs := runCmd(cmd)
	require.Len(t, msgs, 1)
	_, ok := msgs[0].(pushViewMsg)
	require.True(t, ok)

	id, err := sess.SelectedID(context.Background(), session.ResourceTicket)
	require.NoError(t, err)
	assert.Equal(t, 42, id)
}

func TestList_NewFormOnlyForUsers(t *testing.T) {
	userView, _, _ := ticketList(t, config.RoleUser, &fakeTickets{})
	agentView, _, _ := ticketList(t, config.RoleAgent, &fakeTickets{})

	userView, _ = feed(userView, userView.Init())
	agentView, _ = feed(agentView, agentView.Init())

	assert.True(t, strings.Contains(userView.View(), "n new"))
	assert.False(t, strings.Contains(agentView.View(), "n new"))
}
