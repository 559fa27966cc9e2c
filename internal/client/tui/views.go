package tui

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/dmitrijs2005/deskmate/internal/client/config"
	"github.com/dmitrijs2005/deskmate/internal/client/models"
	"github.com/dmitrijs2005/deskmate/internal/client/services"
	"github.com/dmitrijs2005/deskmate/internal/client/session"
)

// Field descriptors per resource. The descriptor order is the form and
// display order; wire names match the backend schemas exactly.
var (
	ticketCreateSpecs = []models.FieldSpec{
		{Name: "title", Label: "Title", Kind: models.FieldText, Required: true},
		{Name: "description", Label: "Description", Kind: models.FieldText, Required: true},
		{Name: "priority", Label: "Priority", Kind: models.FieldText, Required: true},
		{Name: "ticket_type_id", Label: "Ticket type id", Kind: models.FieldNumber, Required: true},
		{Name: "sla_id", Label: "SLA id", Kind: models.FieldNumber, Required: true},
		{Name: "group_id", Label: "Group id", Kind: models.FieldNumber, Required: true},
		{Name: "due_date", Label: "Due date", Kind: models.FieldText, Required: true},
	}

	ticketUpdateSpecs = []models.FieldSpec{
		{Name: "title", Label: "Title", Kind: models.FieldText},
		{Name: "description", Label: "Description", Kind: models.FieldText},
		{Name: "category", Label: "Category", Kind: models.FieldText},
		{Name: "subcategory", Label: "Subcategory", Kind: models.FieldText},
		{Name: "ticket_status", Label: "Status", Kind: models.FieldText},
		{Name: "priority", Label: "Priority", Kind: models.FieldText},
		{Name: "agent_id", Label: "Agent id", Kind: models.FieldNumber},
		{Name: "group_id", Label: "Group id", Kind: models.FieldNumber},
	}

	userSpecs = []models.FieldSpec{
		{Name: "full_name", Label: "Full name", Kind: models.FieldText, Required: true},
		{Name: "email", Label: "Email", Kind: models.FieldText, Required: true},
		{Name: "password", Label: "Password", Kind: models.FieldText, Required: true},
		{Name: "division", Label: "Division", Kind: models.FieldText},
		{Name: "program", Label: "Program", Kind: models.FieldText},
		{Name: "employee_type", Label: "Employee type", Kind: models.FieldText},
		{Name: "supervisor_id", Label: "Supervisor id", Kind: models.FieldNumber},
		{Name: "active", Label: "Active", Kind: models.FieldBool},
	}

	agentSpecs = []models.FieldSpec{
		{Name: "full_name", Label: "Full name", Kind: models.FieldText, Required: true},
		{Name: "email", Label: "Email", Kind: models.FieldText, Required: true},
		{Name: "password", Label: "Password", Kind: models.FieldText, Required: true},
		{Name: "agent_type", Label: "Agent type", Kind: models.FieldText},
		{Name: "group_id", Label: "Group id", Kind: models.FieldNumber},
		{Name: "active", Label: "Active", Kind: models.FieldBool},
	}

	groupSpecs = []models.FieldSpec{
		{Name: "group_name", Label: "Group name", Kind: models.FieldText, Required: true},
	}

	slaSpecs = []models.FieldSpec{
		{Name: "sla_type", Label: "SLA type", Kind: models.FieldText, Required: true},
		{Name: "first_response_time", Label: "First response (s)", Kind: models.FieldNumber, Required: true},
		{Name: "resolution_time", Label: "Resolution (s)", Kind: models.FieldNumber, Required: true},
	}

	ticketTypeSpecs = []models.FieldSpec{
		{Name: "type_name", Label: "Type name", Kind: models.FieldText, Required: true},
		{Name: "category", Label: "Category", Kind: models.FieldText, Required: true},
		{Name: "sub_category", Label: "Subcategory", Kind: models.FieldText},
		{Name: "group_id", Label: "Group id", Kind: models.FieldNumber, Required: true},
		{Name: "sla_id", Label: "SLA id", Kind: models.FieldNumber, Required: true},
		{Name: "require_intake_form", Label: "Intake form", Kind: models.FieldBool},
	}

	feedbackFieldSpecs = []models.FieldSpec{
		{Name: "rating", Label: "Rating (0-5)", Kind: models.FieldNumber, Required: true, Min: 0, Max: 5},
		{Name: "comments", Label: "Comments", Kind: models.FieldText},
	}
)

// intField reads a numeric draft body value.
func intField(body map[string]any, name string) int {
	switch v := body[name].(type) {
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

// --- tickets ---

func newTicketListView(ctx context.Context, deps *Deps) View {
	cfg := listConfig{
		title:     "tickets",
		emptyText: "no tickets",
		resource:  session.ResourceTicket,
		fetch: func(ctx context.Context) ([]Row, error) {
			tickets, err := deps.Tickets.List(ctx)
			if err != nil {
				return nil, err
			}
			rows := make([]Row, len(tickets))
			for i, t := range tickets {
				status := lipgloss.NewStyle().
					Foreground(deps.Theme.StatusColor(t.TicketStatus)).
					Render(t.TicketStatus)
				rows[i] = Row{ID: t.ID, Columns: []string{status, t.Priority, t.Title}}
			}
			return rows, nil
		},
		open: func(id int) View { return newTicketDetailView(ctx, deps) },
	}
	if deps.Config.Role == config.RoleUser {
		cfg.form = &formConfig{
			title:       "new ticket",
			specs:       ticketCreateSpecs,
			successNote: "ticket created",
			submit: func(ctx context.Context, body map[string]any) error {
				return deps.Tickets.Create(ctx, body)
			},
		}
	}
	return newListView(ctx, deps, cfg)
}

func newTicketDetailView(ctx context.Context, deps *Deps) View {
	displaySpecs := append([]models.FieldSpec{
		{Name: "id", Label: "Id", Kind: models.FieldNumber},
	}, ticketUpdateSpecs...)

	cfg := detailConfig{
		title:    "ticket",
		resource: session.ResourceTicket,
		specs:    displaySpecs,
		load: func(ctx context.Context, id int) (any, error) {
			return deps.Tickets.Get(ctx, id)
		},
		actions: []detailAction{
			{
				binding: deps.Keys.Comment,
				help:    "c conversation",
				open:    func(id int) View { return newConversationView(ctx, deps) },
			},
		},
	}
	if deps.Config.Role == config.RoleAgent {
		cfg.update = func(ctx context.Context, id int, body map[string]any) error {
			return deps.Tickets.Update(ctx, id, body)
		}
		cfg.updateNote = "ticket updated"
		cfg.editSpecs = ticketUpdateSpecs
	}
	return newDetailView(ctx, deps, cfg)
}

// --- approvals ---

func newApprovalListView(ctx context.Context, deps *Deps) View {
	return newListView(ctx, deps, listConfig{
		title:     "approvals",
		emptyText: "no approvals",
		resource:  session.ResourceApproval,
		fetch: func(ctx context.Context) ([]Row, error) {
			approvals, err := deps.Approvals.List(ctx)
			if err != nil {
				return nil, err
			}
			rows := make([]Row, len(approvals))
			for i, a := range approvals {
				rows[i] = Row{ID: a.ID, Columns: []string{a.Status, fmt.Sprintf("ticket %d", a.TicketID), a.Comments}}
			}
			return rows, nil
		},
		open: func(id int) View { return newApprovalDetailView(ctx, deps) },
	})
}

func newApprovalDetailView(ctx context.Context, deps *Deps) View {
	specs := []models.FieldSpec{
		{Name: "id", Label: "Id", Kind: models.FieldNumber},
		{Name: "ticket_id", Label: "Ticket id", Kind: models.FieldNumber},
		{Name: "recipient_id", Label: "Recipient id", Kind: models.FieldNumber},
		{Name: "status", Label: "Status", Kind: models.FieldText},
		{Name: "comments", Label: "Comments", Kind: models.FieldText},
	}
	return newDetailView(ctx, deps, detailConfig{
		title:    "approval",
		resource: session.ResourceApproval,
		specs:    specs,
		load: func(ctx context.Context, id int) (any, error) {
			return deps.Approvals.Get(ctx, id)
		},
		actions: []detailAction{
			{
				binding: deps.Keys.Approve,
				help:    "a approve",
				note:    "approval recorded",
				run: func(ctx context.Context, id int) error {
					return deps.Approvals.Decide(ctx, id, services.ApprovalApproved, "")
				},
			},
			{
				binding: deps.Keys.Reject,
				help:    "x reject",
				note:    "rejection recorded",
				run: func(ctx context.Context, id int) error {
					return deps.Approvals.Decide(ctx, id, services.ApprovalRejected, "")
				},
			},
			{
				binding: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "resubmit")),
				help:    "s resubmit",
				note:    "approval resubmitted",
				run: func(ctx context.Context, id int) error {
					return deps.Approvals.Resubmit(ctx, id, "")
				},
			},
		},
	})
}

// --- feedback ---

func newFeedbackListView(ctx context.Context, deps *Deps) View {
	return newListView(ctx, deps, listConfig{
		title:     "feedback",
		emptyText: "no feedback yet",
		resource:  session.ResourceFeedback,
		fetch: func(ctx context.Context) ([]Row, error) {
			records, err := deps.Feedback.All(ctx)
			if err != nil {
				return nil, err
			}
			rows := make([]Row, len(records))
			for i, f := range records {
				rows[i] = Row{ID: f.ID, Columns: []string{fmt.Sprintf("ticket %d", f.TicketID), strconv.Itoa(f.Rating) + "/5", f.Comments}}
			}
			return rows, nil
		},
		open: func(id int) View { return newFeedbackDetailView(ctx, deps) },
	})
}

func newFeedbackDetailView(ctx context.Context, deps *Deps) View {
	specs := []models.FieldSpec{
		{Name: "id", Label: "Id", Kind: models.FieldNumber},
		{Name: "ticket_id", Label: "Ticket id", Kind: models.FieldNumber},
		{Name: "rating", Label: "Rating", Kind: models.FieldNumber, Min: 0, Max: 5},
		{Name: "comments", Label: "Comments", Kind: models.FieldText},
	}
	cfg := detailConfig{
		title:    "feedback",
		resource: session.ResourceFeedback,
		specs:    specs,
		load: func(ctx context.Context, id int) (any, error) {
			return deps.Feedback.Get(ctx, id)
		},
	}
	if deps.Config.Role == config.RoleUser {
		cfg.update = func(ctx context.Context, id int, body map[string]any) error {
			return deps.Feedback.Update(ctx, id, intField(body, "rating"), body["comments"].(string))
		}
		cfg.updateNote = "feedback updated"
		cfg.actions = []detailAction{
			{
				binding: deps.Keys.Delete,
				help:    "Del delete",
				note:    "feedback deleted",
				pops:    true,
				run: func(ctx context.Context, id int) error {
					return deps.Feedback.Delete(ctx, id)
				},
			},
		}
	}
	return newDetailView(ctx, deps, cfg)
}

// --- directory (agent portal) ---

// catalogViews builds the list/detail pair for one administered resource.
func catalogViews[T any](ctx context.Context, deps *Deps, catalog *services.Catalog[T],
	name string, resource session.Resource, specs []models.FieldSpec,
	toRow func(T) Row) View {

	detail := func() View {
		cfg := detailConfig{
			title:    name,
			resource: resource,
			specs:    specs,
			load: func(ctx context.Context, id int) (any, error) {
				return catalog.Get(ctx, id)
			},
			update:     catalog.Update,
			updateNote: name + " updated",
			actions: []detailAction{
				{
					binding: deps.Keys.Delete,
					help:    "Del delete",
					note:    name + " deleted",
					pops:    true,
					run:     catalog.Delete,
				},
			},
		}
		if catalog.CanDeactivate() {
			cfg.actions = append(cfg.actions, detailAction{
				binding: deps.Keys.Deactivate,
				help:    "D deactivate",
				note:    name + " deactivated",
				run:     catalog.Deactivate,
			})
		}
		return newDetailView(ctx, deps, cfg)
	}

	return newListView(ctx, deps, listConfig{
		title:     name + "s",
		emptyText: "no records",
		resource:  resource,
		fetch: func(ctx context.Context) ([]Row, error) {
			records, err := catalog.List(ctx)
			if err != nil {
				return nil, err
			}
			rows := make([]Row, len(records))
			for i, record := range records {
				rows[i] = toRow(record)
			}
			return rows, nil
		},
		open: func(id int) View { return detail() },
		form: &formConfig{
			title:       "new " + name,
			specs:       specs,
			successNote: name + " created",
			submit:      catalog.Create,
		},
	})
}

func newUserListView(ctx context.Context, deps *Deps) View {
	return catalogViews(ctx, deps, deps.Users, "user", session.ResourceUser, userSpecs,
		func(u models.User) Row {
			active := "active"
			if !u.Active {
				active = "inactive"
			}
			return Row{ID: u.ID, Columns: []string{u.FullName, u.Email, active}}
		})
}

func newAgentListView(ctx context.Context, deps *Deps) View {
	return catalogViews(ctx, deps, deps.Agents, "agent", session.ResourceAgent, agentSpecs,
		func(a models.Agent) Row {
			return Row{ID: a.ID, Columns: []string{a.FullName, a.AgentType}}
		})
}

func newGroupListView(ctx context.Context, deps *Deps) View {
	return catalogViews(ctx, deps, deps.Groups, "group", session.ResourceGroup, groupSpecs,
		func(g models.Group) Row {
			return Row{ID: g.ID, Columns: []string{g.GroupName}}
		})
}

func newSLAListView(ctx context.Context, deps *Deps) View {
	return catalogViews(ctx, deps, deps.SLAs, "SLA", session.ResourceSLA, slaSpecs,
		func(s models.SLA) Row {
			return Row{ID: s.ID, Columns: []string{s.SLAType, s.FirstResponseTime.String(), s.ResolutionTime.String()}}
		})
}

func newTicketTypeListView(ctx context.Context, deps *Deps) View {
	return catalogViews(ctx, deps, deps.TicketTypes, "ticket type", session.ResourceTicketType, ticketTypeSpecs,
		func(t models.TicketType) Row {
			return Row{ID: t.ID, Columns: []string{t.TypeName, t.Category}}
		})
}
