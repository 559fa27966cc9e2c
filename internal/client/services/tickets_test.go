package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/deskmate/internal/client/api"
	"github.com/dmitrijs2005/deskmate/internal/client/config"
)

func TestTicketList_RoleSelectsPath(t *testing.T) {
	tests := []struct {
		role     config.Role
		wantPath string
	}{
		{role: config.RoleUser, wantPath: "/tickets/user/"},
		{role: config.RoleAgent, wantPath: "/tickets/agent/"},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			client := &fakeAPI{Responses: map[string]string{
				tt.wantPath: `[{"id":1,"title":"VPN down"},{"id":2,"title":"Printer jam"}]`,
			}}
			svc := NewTicketService(client, tt.role)

			tickets, err := svc.List(context.Background())
			require.NoError(t, err)
			require.Len(t, tickets, 2)
			assert.Equal(t, []string{tt.wantPath}, client.paths())
			assert.Equal(t, "VPN down", tickets[0].Title)
		})
	}
}

func TestTicketList_EmptyQueueIsNotAnError(t *testing.T) {
	client := &fakeAPI{Responses: map[string]string{"/tickets/user/": `[]`}}
	svc := NewTicketService(client, config.RoleUser)

	tickets, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tickets)
}

func TestTicketGet(t *testing.T) {
	client := &fakeAPI{Responses: map[string]string{
		"/tickets/agent/7": `{"id":7,"title":"VPN down","ticket_status":"Open"}`,
	}}
	svc := NewTicketService(client, config.RoleAgent)

	ticket, err := svc.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 7, ticket.ID)
	assert.Equal(t, "Open", ticket.TicketStatus)
}

func TestTicketCreate_PostsUserPath(t *testing.T) {
	client := &fakeAPI{}
	svc := NewTicketService(client, config.RoleUser)

	body := map[string]any{"title": "VPN down", "priority": "High"}
	require.NoError(t, svc.Create(context.Background(), body))

	require.Len(t, client.Calls, 1)
	assert.Equal(t, http.MethodPost, client.Calls[0].Method)
	assert.Equal(t, "/tickets/user/create_ticket/", client.Calls[0].Path)
	assert.Equal(t, body, client.Calls[0].Body)
}

func TestTicketUpdate_PutsAgentPath(t *testing.T) {
	client := &fakeAPI{}
	svc := NewTicketService(client, config.RoleAgent)

	require.NoError(t, svc.Update(context.Background(), 7, map[string]any{"ticket_status": "Closed"}))

	require.Len(t, client.Calls, 1)
	assert.Equal(t, http.MethodPut, client.Calls[0].Method)
	assert.Equal(t, "/tickets/agent/update/7", client.Calls[0].Path)
}

func TestPostComment_PostsThenRefetchesOnce(t *testing.T) {
	client := &fakeAPI{Responses: map[string]string{
		"/ticket_history/user/7": `[{"id":1,"ticket_id":7,"message":"first"},{"id":2,"ticket_id":7,"message":"hello"}]`,
	}}
	svc := NewTicketService(client, config.RoleUser)

	entries, err := svc.PostComment(context.Background(), 7, "hello", false)
	require.NoError(t, err)

	assert.Equal(t, []string{"/ticket_history/user_comment/7", "/ticket_history/user/7"}, client.paths())
	require.Len(t, entries, 2)
	assert.Equal(t, "hello", entries[1].Message)
}

func TestPostComment_AgentCarriesPrivacyFlag(t *testing.T) {
	client := &fakeAPI{Responses: map[string]string{
		"/ticket_history/agent/7": `[{"id":1,"ticket_id":7,"message":"internal note","agent_id":3}]`,
	}}
	svc := NewTicketService(client, config.RoleAgent)

	entries, err := svc.PostComment(context.Background(), 7, "internal note", true)
	require.NoError(t, err)

	require.Len(t, client.Calls, 2)
	assert.Equal(t, "/ticket_history/agent_comment/7", client.Calls[0].Path)
	assert.Equal(t, map[string]any{"ticket_id": 7, "message": "internal note", "is_private": true}, client.Calls[0].Body)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].AgentAuthored())
}

func TestPostComment_FailedPostSkipsRefetch(t *testing.T) {
	client := &fakeAPI{Err: &api.RequestError{Status: 403, Body: `{"detail":"Access denied"}`}}
	svc := NewTicketService(client, config.RoleUser)

	_, err := svc.PostComment(context.Background(), 7, "hello", false)
	require.Error(t, err)
	assert.Equal(t, []string{"/ticket_history/user_comment/7"}, client.paths())
}

func TestComments_EmptyMessageIsStillSubmitted(t *testing.T) {
	// The backend accepts empty comment bodies; the client does not
	// second-guess that.
	client := &fakeAPI{Responses: map[string]string{"/ticket_history/user/7": `[]`}}
	svc := NewTicketService(client, config.RoleUser)

	_, err := svc.PostComment(context.Background(), 7, "", false)
	require.NoError(t, err)
	require.Len(t, client.Calls, 2)
}
