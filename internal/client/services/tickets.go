package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/deskmate/internal/client/api"
	"github.com/dmitrijs2005/deskmate/internal/client/config"
	"github.com/dmitrijs2005/deskmate/internal/client/models"
)

// TicketService exposes the ticket queue for the current role.
//
// Contract:
//   - List/Get: read the role's ticket queue (users see only their own
//     tickets, agents see everything; the backend enforces this).
//   - Create: user-only; the backend fills category, status and timestamps.
//   - Update: agent-only partial update; only the keys present in body
//     change.
//   - Comments: the conversation thread, oldest first. Users receive only
//     non-private entries; that filter is server-side.
//   - PostComment: append a comment, then refetch the thread exactly once
//     and return the fresh copy.
type TicketService interface {
	List(ctx context.Context) ([]models.Ticket, error)
	Get(ctx context.Context, id int) (models.Ticket, error)
	Create(ctx context.Context, body map[string]any) error
	Update(ctx context.Context, id int, body map[string]any) error
	Comments(ctx context.Context, ticketID int) ([]models.CommentEntry, error)
	PostComment(ctx context.Context, ticketID int, message string, isPrivate bool) ([]models.CommentEntry, error)
}

type ticketService struct {
	api  api.Client
	role config.Role
}

func NewTicketService(client api.Client, role config.Role) TicketService {
	return &ticketService{api: client, role: role}
}

func (t *ticketService) rolePrefix() string {
	if t.role == config.RoleAgent {
		return "agent"
	}
	return "user"
}

func (t *ticketService) List(ctx context.Context) ([]models.Ticket, error) {
	var tickets []models.Ticket
	path := fmt.Sprintf("/tickets/%s/", t.rolePrefix())
	if err := t.api.JSON(ctx, http.MethodGet, path, nil, &tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}

func (t *ticketService) Get(ctx context.Context, id int) (models.Ticket, error) {
	var ticket models.Ticket
	path := fmt.Sprintf("/tickets/%s/%d", t.rolePrefix(), id)
	if err := t.api.JSON(ctx, http.MethodGet, path, nil, &ticket); err != nil {
		return models.Ticket{}, err
	}
	return ticket, nil
}

func (t *ticketService) Create(ctx context.Context, body map[string]any) error {
	return t.api.JSON(ctx, http.MethodPost, "/tickets/user/create_ticket/", body, nil)
}

func (t *ticketService) Update(ctx context.Context, id int, body map[string]any) error {
	path := fmt.Sprintf("/tickets/agent/update/%d", id)
	return t.api.JSON(ctx, http.MethodPut, path, body, nil)
}

func (t *ticketService) Comments(ctx context.Context, ticketID int) ([]models.CommentEntry, error) {
	var entries []models.CommentEntry
	path := fmt.Sprintf("/ticket_history/%s/%d", t.rolePrefix(), ticketID)
	if err := t.api.JSON(ctx, http.MethodGet, path, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// PostComment submits the comment body for the current role and refetches
// the thread once. The backend ignores the client-supplied author ids and
// uses the token's identity.
func (t *ticketService) PostComment(ctx context.Context, ticketID int, message string, isPrivate bool) ([]models.CommentEntry, error) {
	var path string
	var body map[string]any
	if t.role == config.RoleAgent {
		path = fmt.Sprintf("/ticket_history/agent_comment/%d", ticketID)
		body = map[string]any{"ticket_id": ticketID, "message": message, "is_private": isPrivate}
	} else {
		path = fmt.Sprintf("/ticket_history/user_comment/%d", ticketID)
		body = map[string]any{"ticket_id": ticketID, "message": message, "user_id": 0}
	}

	if err := t.api.JSON(ctx, http.MethodPost, path, body, nil); err != nil {
		return nil, err
	}
	return t.Comments(ctx, ticketID)
}
