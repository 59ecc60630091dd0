package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/activity"
	"github.com/orgdesk/backend/internal/domain/shared"
	"github.com/orgdesk/backend/internal/infrastructure/logger"
)

// ActivityLogHandler writes every organization-scoped event to the activity log
type ActivityLogHandler struct {
	repo activity.Repository
}

// NewActivityLogHandler creates the handler
func NewActivityLogHandler(repo activity.Repository) *ActivityLogHandler {
	return &ActivityLogHandler{repo: repo}
}

// EventTypes subscribes to everything
func (h *ActivityLogHandler) EventTypes() []string {
	return nil
}

// Handle appends the event. Events without an organization (user registration) are skipped.
func (h *ActivityLogHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	if event.OrganizationID() == uuid.Nil {
		return nil
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode %s: %w", event.EventType(), err)
	}
	var actor *uuid.UUID
	if id, err := uuid.Parse(logger.GetUserID(ctx)); err == nil {
		actor = &id
	}
	return h.repo.Append(ctx, activity.NewEntry(event, actor, payload))
}

var _ shared.EventHandler = (*ActivityLogHandler)(nil)
