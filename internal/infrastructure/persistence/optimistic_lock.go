package persistence

import (
	"github.com/orgdesk/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// versioned is the slice of shared.BaseAggregateRoot the lock needs
type versioned interface {
	StoredVersion() int
	MarkStored()
}

// saveWithLock inserts an aggregate that was never stored, or updates it only
// while the row still carries the version it was read at. A row changed (or
// removed) in between reports shared.ErrConcurrencyConflict.
func saveWithLock(tx *gorm.DB, model any, aggregate versioned) error {
	if aggregate.StoredVersion() == 0 {
		if err := tx.Create(model).Error; err != nil {
			return err
		}
		aggregate.MarkStored()
		return nil
	}

	result := tx.Model(model).
		Where("version = ?", aggregate.StoredVersion()).
		Select("*").
		Omit("id", "created_at").
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	aggregate.MarkStored()
	return nil
}
