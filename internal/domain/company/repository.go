package company

import (
	"context"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/shared"
)

// Repository persists companies
type Repository interface {
	FindByID(ctx context.Context, orgID, id uuid.UUID) (*Company, error)
	FindMain(ctx context.Context, orgID uuid.UUID) (*Company, error)
	List(ctx context.Context, orgID uuid.UUID, query shared.Query, filter shared.Filter) ([]Company, int64, error)
	// ExistsBy reports whether another company of the organization uses value in column (siren or siret)
	ExistsBy(ctx context.Context, orgID uuid.UUID, column, value string, excludeID *uuid.UUID) (bool, error)
	Count(ctx context.Context, orgID uuid.UUID) (int64, error)
	Save(ctx context.Context, company *Company) error
	// SaveAsMain stores the company as the organization's only main company.
	// The previous main company is cleared in the same transaction.
	SaveAsMain(ctx context.Context, company *Company) error
	Delete(ctx context.Context, orgID, id uuid.UUID) error
}
