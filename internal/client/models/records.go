// Package models holds the flat records mirrored 1:1 from the help-desk
// backend, plus the client-only draft form state. The client keeps no
// derived or normalized state beyond what a single view needs.
package models

import (
	"time"

	"github.com/dmitrijs2005/deskmate/internal/timex"
)

// Ticket is the mutable ticket record. Created by a user action, mutated by
// agent/user updates and status transitions, never deleted client-side.
type Ticket struct {
	ID           int       `json:"id"`
	UserID       int       `json:"user_id"`
	AgentID      int       `json:"agent_id"`
	TicketTypeID int       `json:"ticket_type_id"`
	SLAID        int       `json:"sla_id"`
	GroupID      int       `json:"group_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	Subcategory  string    `json:"subcategory"`
	TicketStatus string    `json:"ticket_status"`
	Priority     string    `json:"priority"`
	DueDate      time.Time `json:"due_date"`
}

// CommentEntry is one message in a ticket's conversation thread. Append-only,
// ordered by creation time, authored by either a user or an agent.
type CommentEntry struct {
	ID        int       `json:"id"`
	TicketID  int       `json:"ticket_id"`
	Message   string    `json:"message"`
	IsPrivate bool      `json:"is_private"`
	CreatedAt time.Time `json:"created_at"`
	UserID    int       `json:"user_id"`
	AgentID   int       `json:"agent_id"`
}

// AgentAuthored reports how the entry renders: a non-empty agent identifier
// means agent-authored, anything else user-authored. Display-only
// classification, not an invariant the client enforces.
func (c CommentEntry) AgentAuthored() bool {
	return c.AgentID != 0
}

// Notification is created by the backend; the client only ever flips the
// read flag from false to true.
type Notification struct {
	ID       int       `json:"id"`
	TicketID int       `json:"ticket_id"`
	AgentID  int       `json:"agent_id,omitempty"`
	UserID   int       `json:"user_id,omitempty"`
	Read     bool      `json:"read"`
	Message  string    `json:"message"`
	SentAt   time.Time `json:"sent_at"`
}

// User is an end-user account managed from the agent portal.
type User struct {
	ID           int    `json:"id"`
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	Division     string `json:"division"`
	Program      string `json:"program"`
	EmployeeType string `json:"employee_type"`
	SupervisorID int    `json:"supervisor_id"`
	Active       bool   `json:"active"`
}

// Agent is a help-desk agent account.
type Agent struct {
	ID        int    `json:"id"`
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	AgentType string `json:"agent_type"`
	GroupID   int    `json:"group_id"`
	Active    bool   `json:"active"`
}

// Group is an agent group.
type Group struct {
	ID        int    `json:"id"`
	GroupName string `json:"group_name"`
}

// SLA carries the response/resolution targets. The backend encodes the
// intervals as seconds, which timex.Duration accepts.
type SLA struct {
	ID                int            `json:"id"`
	SLAType           string         `json:"sla_type"`
	FirstResponseTime timex.Duration `json:"first_response_time"`
	ResolutionTime    timex.Duration `json:"resolution_time"`
}

// TicketType categorizes tickets and binds them to a group and an SLA.
type TicketType struct {
	ID                int    `json:"id"`
	GroupID           int    `json:"group_id"`
	SLAID             int    `json:"sla_id"`
	TypeName          string `json:"type_name"`
	Category          string `json:"category"`
	SubCategory       string `json:"sub_category"`
	RequireIntakeForm bool   `json:"require_intake_form"`
}

// Approval tracks a draft-approval process started from a ticket.
type Approval struct {
	ID          int       `json:"id"`
	TicketID    int       `json:"ticket_id"`
	RecipientID int       `json:"recipient_id"`
	Status      string    `json:"status"`
	Comments    string    `json:"comments"`
	CreatedAt   time.Time `json:"created_at"`
}

// Feedback is a user's rating of a resolved ticket. Rating is bounded 0–5.
type Feedback struct {
	ID       int    `json:"id"`
	TicketID int    `json:"ticket_id"`
	Rating   int    `json:"rating"`
	Comments string `json:"comments"`
}

// ResolvedByAgent is one row of the "tickets resolved by agent" breakdown.
type ResolvedByAgent struct {
	AgentName string `json:"agent_name"`
	Count     int    `json:"resolved_ticket_count"`
}

// ResolvedByGroup is one row of the "tickets resolved by group" breakdown.
type ResolvedByGroup struct {
	GroupName string `json:"group_name"`
	Count     int    `json:"resolved_ticket_count"`
}

// DashboardMetrics is the joined result of the five analytics fetches the
// agent home view issues side by side.
type DashboardMetrics struct {
	AverageSatisfaction      float64
	FirstResponseDelinquency int
	ReopenedTickets          int
	TicketsResolvedByAgent   []ResolvedByAgent
	TicketsResolvedByGroup   []ResolvedByGroup
}
