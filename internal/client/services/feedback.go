package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/deskmate/internal/client/api"
	"github.com/dmitrijs2005/deskmate/internal/client/config"
	"github.com/dmitrijs2005/deskmate/internal/client/models"
)

// FeedbackService manages satisfaction ratings on resolved tickets.
//
// Contract:
//   - All: every feedback record visible to the current identity.
//   - Get: one record by id.
//   - Create: user-only, attached to a resolved ticket. Rating is 0-5;
//     the bound is validated client-side before the request goes out.
//   - Update/Delete: user-only edits of an own record.
type FeedbackService interface {
	All(ctx context.Context) ([]models.Feedback, error)
	Get(ctx context.Context, id int) (models.Feedback, error)
	Create(ctx context.Context, ticketID, rating int, comments string) error
	Update(ctx context.Context, id, rating int, comments string) error
	Delete(ctx context.Context, id int) error
}

type feedbackService struct {
	api  api.Client
	role config.Role
}

func NewFeedbackService(client api.Client, role config.Role) FeedbackService {
	return &feedbackService{api: client, role: role}
}

func validRating(rating int) error {
	if rating < 0 || rating > 5 {
		return fmt.Errorf("rating must be between 0 and 5, got %d", rating)
	}
	return nil
}

func (f *feedbackService) All(ctx context.Context) ([]models.Feedback, error) {
	path := "/feedback/user/all_feedback/"
	if f.role == config.RoleAgent {
		path = "/feedback/agent/all_feedback"
	}
	var records []models.Feedback
	if err := f.api.JSON(ctx, http.MethodGet, path, nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (f *feedbackService) Get(ctx context.Context, id int) (models.Feedback, error) {
	prefix := "user"
	if f.role == config.RoleAgent {
		prefix = "agent"
	}
	var record models.Feedback
	path := fmt.Sprintf("/feedback/%s/%d", prefix, id)
	if err := f.api.JSON(ctx, http.MethodGet, path, nil, &record); err != nil {
		return models.Feedback{}, err
	}
	return record, nil
}

func (f *feedbackService) Create(ctx context.Context, ticketID, rating int, comments string) error {
	if err := validRating(rating); err != nil {
		return err
	}
	path := fmt.Sprintf("/feedback/user/create/%d", ticketID)
	body := map[string]any{"rating": rating, "comments": comments}
	return f.api.JSON(ctx, http.MethodPost, path, body, nil)
}

func (f *feedbackService) Update(ctx context.Context, id, rating int, comments string) error {
	if err := validRating(rating); err != nil {
		return err
	}
	path := fmt.Sprintf("/feedback/user/update/%d", id)
	body := map[string]any{"rating": rating, "comments": comments}
	return f.api.JSON(ctx, http.MethodPut, path, body, nil)
}

func (f *feedbackService) Delete(ctx context.Context, id int) error {
	path := fmt.Sprintf("/feedback/user/delete/%d", id)
	return f.api.JSON(ctx, http.MethodDelete, path, nil, nil)
}
