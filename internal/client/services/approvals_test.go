package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/deskmate/internal/client/config"
)

func TestApprovalList_RoleSelectsPath(t *testing.T) {
	tests := []struct {
		role     config.Role
		wantPath string
	}{
		{role: config.RoleUser, wantPath: "/approvals/user/"},
		{role: config.RoleAgent, wantPath: "/approvals/agent/"},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			client := &fakeAPI{Responses: map[string]string{
				tt.wantPath: `[{"id":1,"ticket_id":7,"status":"Pending"}]`,
			}}
			svc := NewApprovalService(client, tt.role)

			approvals, err := svc.List(context.Background())
			require.NoError(t, err)
			require.Len(t, approvals, 1)
			assert.Equal(t, "Pending", approvals[0].Status)
			assert.Equal(t, []string{tt.wantPath}, client.paths())
		})
	}
}

func TestApprovalDecide(t *testing.T) {
	client := &fakeAPI{}
	svc := NewApprovalService(client, config.RoleUser)
	ctx := context.Background()

	require.NoError(t, svc.Decide(ctx, 5, ApprovalApproved, "looks good"))

	require.Len(t, client.Calls, 1)
	assert.Equal(t, http.MethodPut, client.Calls[0].Method)
	assert.Equal(t, "/approvals/decision/5", client.Calls[0].Path)
	assert.Equal(t, map[string]any{"status": "Approved", "comments": "looks good"}, client.Calls[0].Body)
}

func TestApprovalDecide_RejectsUnknownStatus(t *testing.T) {
	client := &fakeAPI{}
	svc := NewApprovalService(client, config.RoleUser)

	require.Error(t, svc.Decide(context.Background(), 5, "Maybe", ""))
	assert.Empty(t, client.Calls, "invalid status must not reach the backend")
}

func TestApprovalResubmit_GoesBackToPending(t *testing.T) {
	client := &fakeAPI{}
	svc := NewApprovalService(client, config.RoleUser)

	require.NoError(t, svc.Resubmit(context.Background(), 5, "updated the draft"))

	require.Len(t, client.Calls, 1)
	assert.Equal(t, "/approvals/user/resubmit/5", client.Calls[0].Path)
	assert.Equal(t, map[string]any{"status": "Pending", "comments": "updated the draft"}, client.Calls[0].Body)
}

func TestApprovalStartDraftProcess(t *testing.T) {
	client := &fakeAPI{}
	svc := NewApprovalService(client, config.RoleAgent)

	require.NoError(t, svc.StartDraftProcess(context.Background(), 7))

	require.Len(t, client.Calls, 1)
	assert.Equal(t, http.MethodPost, client.Calls[0].Method)
	assert.Equal(t, "/approvals/start_draft_approval_process/7", client.Calls[0].Path)
}

func TestApprovalReassign(t *testing.T) {
	client := &fakeAPI{}
	svc := NewApprovalService(client, config.RoleAgent)

	require.NoError(t, svc.Reassign(context.Background(), 5, 9))

	require.Len(t, client.Calls, 1)
	assert.Equal(t, "/approvals/reassign/5", client.Calls[0].Path)
	assert.Equal(t, map[string]any{"recipient_id": 9}, client.Calls[0].Body)
}
