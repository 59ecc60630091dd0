package persistence

import (
	"errors"

	"github.com/orgdesk/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// translate maps GORM errors onto domain errors. It relies on TranslateError
// being enabled so unique violations surface as gorm.ErrDuplicatedKey.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.ErrAlreadyExists
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return shared.NewDomainError("INVALID_REFERENCE", "Referenced record does not exist")
	}
	return err
}
