package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/activity"
	"github.com/orgdesk/backend/internal/domain/shared"
	"github.com/orgdesk/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormActivityRepository implements activity.Repository
type GormActivityRepository struct {
	db *gorm.DB
}

// NewGormActivityRepository creates a new GormActivityRepository
func NewGormActivityRepository(db *gorm.DB) *GormActivityRepository {
	return &GormActivityRepository{db: db}
}

// Append inserts entries in one batch
func (r *GormActivityRepository) Append(ctx context.Context, entries ...*activity.Entry) error {
	if len(entries) == 0 {
		return nil
	}
	rows := make([]*models.ActivityModel, len(entries))
	for i, e := range entries {
		rows[i] = models.ActivityFromDomain(e)
	}
	return translate(r.db.WithContext(ctx).CreateInBatches(rows, 100).Error)
}

// List returns a page of the organization's activity, newest first
func (r *GormActivityRepository) List(ctx context.Context, orgID uuid.UUID, q shared.Query, f shared.Filter) ([]activity.Entry, int64, error) {
	f.OrderBy = "occurred_at"
	if f.OrderDir == "" {
		f.OrderDir = "desc"
	}
	rows, total, err := listPage[models.ActivityModel](r.db.WithContext(ctx), "activity_log", orgID, q, f, nil, ActivitySortFields, "occurred_at")
	if err != nil {
		return nil, 0, err
	}
	out := make([]activity.Entry, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, total, nil
}

var _ activity.Repository = (*GormActivityRepository)(nil)
