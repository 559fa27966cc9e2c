package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/deskmate/internal/client/api"
	"github.com/dmitrijs2005/deskmate/internal/client/config"
	"github.com/dmitrijs2005/deskmate/internal/client/models"
)

// Approval decision statuses accepted by the backend.
const (
	ApprovalApproved = "Approved"
	ApprovalRejected = "Rejected"
)

// ApprovalService handles the draft-approval workflow.
//
// Contract:
//   - List/Get: the approvals addressed to the current identity.
//   - Decide: approve or reject a pending approval (status must be one of
//     the Approval* constants; the backend rejects anything else).
//   - Resubmit: put a rejected approval back into Pending with a comment.
//   - StartDraftProcess: agent-only; kick off the approval chain for a
//     ticket's draft.
//   - Reassign: point an approval at a different recipient.
type ApprovalService interface {
	List(ctx context.Context) ([]models.Approval, error)
	Get(ctx context.Context, id int) (models.Approval, error)
	Decide(ctx context.Context, id int, status, comments string) error
	Resubmit(ctx context.Context, id int, comments string) error
	StartDraftProcess(ctx context.Context, ticketID int) error
	Reassign(ctx context.Context, id, recipientID int) error
}

type approvalService struct {
	api  api.Client
	role config.Role
}

func NewApprovalService(client api.Client, role config.Role) ApprovalService {
	return &approvalService{api: client, role: role}
}

func (a *approvalService) rolePrefix() string {
	if a.role == config.RoleAgent {
		return "agent"
	}
	return "user"
}

func (a *approvalService) List(ctx context.Context) ([]models.Approval, error) {
	var approvals []models.Approval
	path := fmt.Sprintf("/approvals/%s/", a.rolePrefix())
	if err := a.api.JSON(ctx, http.MethodGet, path, nil, &approvals); err != nil {
		return nil, err
	}
	return approvals, nil
}

func (a *approvalService) Get(ctx context.Context, id int) (models.Approval, error) {
	var approval models.Approval
	path := fmt.Sprintf("/approvals/%s/%d", a.rolePrefix(), id)
	if err := a.api.JSON(ctx, http.MethodGet, path, nil, &approval); err != nil {
		return models.Approval{}, err
	}
	return approval, nil
}

func (a *approvalService) Decide(ctx context.Context, id int, status, comments string) error {
	if status != ApprovalApproved && status != ApprovalRejected {
		return fmt.Errorf("invalid approval status %q", status)
	}
	path := fmt.Sprintf("/approvals/decision/%d", id)
	body := map[string]any{"status": status, "comments": comments}
	return a.api.JSON(ctx, http.MethodPut, path, body, nil)
}

func (a *approvalService) Resubmit(ctx context.Context, id int, comments string) error {
	path := fmt.Sprintf("/approvals/%s/resubmit/%d", a.rolePrefix(), id)
	body := map[string]any{"status": "Pending", "comments": comments}
	return a.api.JSON(ctx, http.MethodPost, path, body, nil)
}

func (a *approvalService) StartDraftProcess(ctx context.Context, ticketID int) error {
	path := fmt.Sprintf("/approvals/start_draft_approval_process/%d", ticketID)
	return a.api.JSON(ctx, http.MethodPost, path, nil, nil)
}

func (a *approvalService) Reassign(ctx context.Context, id, recipientID int) error {
	path := fmt.Sprintf("/approvals/reassign/%d", id)
	body := map[string]any{"recipient_id": recipientID}
	return a.api.JSON(ctx, http.MethodPut, path, body, nil)
}
