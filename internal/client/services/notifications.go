package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/deskmate/internal/client/api"
	"github.com/dmitrijs2005/deskmate/internal/client/models"
)

// NotificationService drives the agent portal's notification badge.
//
// Contract:
//   - Unread: the agent's pending notifications (the backend returns only
//     entries with read=false).
//   - MarkRead: acknowledge a single notification. Other notifications are
//     unaffected.
type NotificationService interface {
	Unread(ctx context.Context) ([]models.Notification, error)
	MarkRead(ctx context.Context, id int) error
}

type notificationService struct {
	api api.Client
}

func NewNotificationService(client api.Client) NotificationService {
	return &notificationService{api: client}
}

func (n *notificationService) Unread(ctx context.Context) ([]models.Notification, error) {
	var notifications []models.Notification
	if err := n.api.JSON(ctx, http.MethodGet, "/agent_notifications/", nil, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (n *notificationService) MarkRead(ctx context.Context, id int) error {
	path := fmt.Sprintf("/agent_notifications/%d", id)
	return n.api.JSON(ctx, http.MethodPut, path, nil, nil)
}
