package session

import (
	"context"
	"strconv"

	"github.com/dmitrijs2005/deskmate/internal/client/config"
)

// Resource names a record kind whose last-selected id is remembered across
// restarts. The value doubles as the storage key suffix.
type Resource string

const (
	ResourceTicket     Resource = "ticket"
	ResourceUser       Resource = "user"
	ResourceAgent      Resource = "agent"
	ResourceGroup      Resource = "group"
	ResourceSLA        Resource = "sla"
	ResourceTicketType Resource = "ticket_type"
	ResourceApproval   Resource = "approval"
	ResourceFeedback   Resource = "feedback"
)

func tokenKey(role config.Role) string {
	if role == config.RoleAgent {
		return "agent_token"
	}
	return "user_token"
}

func selectedKey(r Resource) string {
	return "selected_" + string(r) + "_id"
}

// Session layers role-aware typed accessors over the raw key-value store.
// Tokens are keyed per role, so a user login never clobbers an agent login
// in the same database.
type Session struct {
	store Store
	role  config.Role
}

func New(store Store, role config.Role) *Session {
	return &Session{store: store, role: role}
}

// Token returns the stored auth token for the session's role, or "" plus
// ErrNoIdentifier when no login has been performed.
func (s *Session) Token(ctx context.Context) (string, error) {
	return s.store.Get(ctx, tokenKey(s.role))
}

func (s *Session) SetToken(ctx context.Context, token string) error {
	return s.store.Set(ctx, tokenKey(s.role), token)
}

func (s *Session) ClearToken(ctx context.Context) error {
	return s.store.Delete(ctx, tokenKey(s.role))
}

// SelectedID returns the remembered id for the resource, or ErrNoIdentifier
// when nothing has been selected yet.
func (s *Session) SelectedID(ctx context.Context, r Resource) (int, error) {
	value, err := s.store.Get(ctx, selectedKey(r))
	if err != nil {
		return 0, err
	}
	id, err := strconv.Atoi(value)
	if err != nil {
		// A corrupt value reads the same as no value.
		return 0, ErrNoIdentifier
	}
	return id, nil
}

func (s *Session) SetSelectedID(ctx context.Context, r Resource, id int) error {
	return s.store.Set(ctx, selectedKey(r), strconv.Itoa(id))
}

func (s *Session) ClearSelectedID(ctx context.Context, r Resource) error {
	return s.store.Delete(ctx, selectedKey(r))
}

// BearerToken satisfies the transport's token source: it swallows the
// absence error so unauthenticated requests go out with an empty bearer
// value and fail server-side with 401 instead of being blocked locally.
func (s *Session) BearerToken(ctx context.Context) string {
	token, err := s.Token(ctx)
	if err != nil {
		return ""
	}
	return token
}

// TokenSource adapts the session to the transport's TokenSource interface.
type TokenSource struct {
	Session *Session
}

func (t TokenSource) Token(ctx context.Context) string {
	return t.Session.BearerToken(ctx)
}
