package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/activity"
)

// ActivityModel is one row of the activity log
type ActivityModel struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrganizationID uuid.UUID  `gorm:"type:uuid;not null;index:idx_activity_org_time,priority:1"`
	ActorID        *uuid.UUID `gorm:"type:uuid"`
	EventType      string     `gorm:"type:varchar(100);not null"`
	AggregateType  string     `gorm:"type:varchar(50);not null"`
	AggregateID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	Payload        string     `gorm:"type:jsonb"`
	OccurredAt     time.Time  `gorm:"not null;index:idx_activity_org_time,priority:2"`
}

// TableName returns the table name for GORM
func (ActivityModel) TableName() string {
	return "activity_log"
}

// ToDomain converts the model to an activity entry
func (m *ActivityModel) ToDomain() activity.Entry {
	return activity.Entry{
		ID:             m.ID,
		OrganizationID: m.OrganizationID,
		ActorID:        m.ActorID,
		EventType:      m.EventType,
		AggregateType:  m.AggregateType,
		AggregateID:    m.AggregateID,
		Payload:        []byte(m.Payload),
		OccurredAt:     m.OccurredAt,
	}
}

// ActivityFromDomain converts an activity entry to its model
func ActivityFromDomain(e *activity.Entry) *ActivityModel {
	payload := string(e.Payload)
	if payload == "" {
		payload = "{}"
	}
	return &ActivityModel{
		ID:             e.ID,
		OrganizationID: e.OrganizationID,
		ActorID:        e.ActorID,
		EventType:      e.EventType,
		AggregateType:  e.AggregateType,
		AggregateID:    e.AggregateID,
		Payload:        payload,
		OccurredAt:     e.OccurredAt,
	}
}
