package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/deskmate/internal/client/api"
	"github.com/dmitrijs2005/deskmate/internal/client/models"
)

// CatalogRoutes names the REST paths of one administered resource. The
// backend uses a distinct verb-style path per operation instead of plain
// REST verbs on one path, so each operation carries its own template.
// Item, Update, Deactivate and Delete templates take the record id;
// Deactivate is empty for resources without a soft-disable.
type CatalogRoutes struct {
	List       string
	Item       string
	Create     string
	Update     string
	Deactivate string
	Delete     string
}

// Catalog is the uniform CRUD surface of the agent portal's directory
// screens (users, agents, groups, SLAs, ticket types).
type Catalog[T any] struct {
	api    api.Client
	routes CatalogRoutes
}

func NewCatalog[T any](client api.Client, routes CatalogRoutes) *Catalog[T] {
	return &Catalog[T]{api: client, routes: routes}
}

func (c *Catalog[T]) List(ctx context.Context) ([]T, error) {
	var records []T
	if err := c.api.JSON(ctx, http.MethodGet, c.routes.List, nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *Catalog[T]) Get(ctx context.Context, id int) (T, error) {
	var record T
	path := fmt.Sprintf(c.routes.Item, id)
	if err := c.api.JSON(ctx, http.MethodGet, path, nil, &record); err != nil {
		var zero T
		return zero, err
	}
	return record, nil
}

func (c *Catalog[T]) Create(ctx context.Context, body map[string]any) error {
	return c.api.JSON(ctx, http.MethodPost, c.routes.Create, body, nil)
}

func (c *Catalog[T]) Update(ctx context.Context, id int, body map[string]any) error {
	path := fmt.Sprintf(c.routes.Update, id)
	return c.api.JSON(ctx, http.MethodPut, path, body, nil)
}

// CanDeactivate reports whether the resource supports soft-disable.
func (c *Catalog[T]) CanDeactivate() bool {
	return c.routes.Deactivate != ""
}

func (c *Catalog[T]) Deactivate(ctx context.Context, id int) error {
	if c.routes.Deactivate == "" {
		return fmt.Errorf("resource does not support deactivation")
	}
	path := fmt.Sprintf(c.routes.Deactivate, id)
	return c.api.JSON(ctx, http.MethodPut, path, nil, nil)
}

func (c *Catalog[T]) Delete(ctx context.Context, id int) error {
	path := fmt.Sprintf(c.routes.Delete, id)
	return c.api.JSON(ctx, http.MethodDelete, path, nil, nil)
}

func NewUserCatalog(client api.Client) *Catalog[models.User] {
	return NewCatalog[models.User](client, CatalogRoutes{
		List:       "/users/",
		Item:       "/users/%d",
		Create:     "/users/user_creation",
		Update:     "/users/user_update/%d",
		Deactivate: "/users/user_deactivation/%d",
		Delete:     "/users/user_deletion/%d",
	})
}

func NewAgentCatalog(client api.Client) *Catalog[models.Agent] {
	return NewCatalog[models.Agent](client, CatalogRoutes{
		List:       "/agents/",
		Item:       "/agents/%d",
		Create:     "/agents/agent_creation",
		Update:     "/agents/agent_update/%d",
		Deactivate: "/agents/agent_deactivation/%d",
		Delete:     "/agents/agent_deletion/%d",
	})
}

func NewGroupCatalog(client api.Client) *Catalog[models.Group] {
	return NewCatalog[models.Group](client, CatalogRoutes{
		List:   "/groups/",
		Item:   "/groups/%d",
		Create: "/groups/group_creation",
		Update: "/groups/group_update/%d",
		Delete: "/groups/group_deletion/%d",
	})
}

func NewSLACatalog(client api.Client) *Catalog[models.SLA] {
	return NewCatalog[models.SLA](client, CatalogRoutes{
		List:   "/ticket_slas/",
		Item:   "/ticket_slas/%d",
		Create: "/ticket_slas/sla_creation",
		Update: "/ticket_slas/sla_update/%d",
		Delete: "/ticket_slas/sla_deletion/%d",
	})
}

func NewTicketTypeCatalog(client api.Client) *Catalog[models.TicketType] {
	return NewCatalog[models.TicketType](client, CatalogRoutes{
		List:   "/ticket_type/",
		Item:   "/ticket_type/%d",
		Create: "/ticket_type/ticket_type_creation",
		Update: "/ticket_type/ticket_type_update/%d",
		Delete: "/ticket_type/ticket_type_deletion/%d",
	})
}
