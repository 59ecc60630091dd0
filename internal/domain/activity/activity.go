// Package activity records an audit trail of what happened inside an organization.
package activity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/shared"
)

// Entry is one recorded domain event
type Entry struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	ActorID        *uuid.UUID
	EventType      string
	AggregateType  string
	AggregateID    uuid.UUID
	Payload        []byte
	OccurredAt     time.Time
}

// NewEntry builds an entry from a domain event and its encoded payload
func NewEntry(event shared.DomainEvent, actorID *uuid.UUID, payload []byte) *Entry {
	return &Entry{
		ID:             event.EventID(),
		OrganizationID: event.OrganizationID(),
		ActorID:        actorID,
		EventType:      event.EventType(),
		AggregateType:  event.AggregateType(),
		AggregateID:    event.AggregateID(),
		Payload:        payload,
		OccurredAt:     event.OccurredAt(),
	}
}

// FilterSchema lists the filters accepted when browsing the activity log
var FilterSchema = shared.FilterSchema{
	Fields: map[string]shared.FilterField{
		"aggregateType": {Column: "aggregate_type", Kind: shared.FieldText},
		"aggregateId":   {Column: "aggregate_id", Kind: shared.FieldUUID},
		"eventType":     {Column: "event_type", Kind: shared.FieldText},
	},
}

// Repository persists activity entries
type Repository interface {
	Append(ctx context.Context, entries ...*Entry) error
	List(ctx context.Context, orgID uuid.UUID, query shared.Query, filter shared.Filter) ([]Entry, int64, error)
}
