package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/shared"
)

// ProductRepository persists products
type ProductRepository interface {
	FindByID(ctx context.Context, orgID, id uuid.UUID) (*Product, error)
	List(ctx context.Context, orgID uuid.UUID, query shared.Query, filter shared.Filter) ([]Product, int64, error)
	// ExistsByReference reports whether another product of the organization uses ref
	ExistsByReference(ctx context.Context, orgID uuid.UUID, ref string, excludeID *uuid.UUID) (bool, error)
	CountByStatus(ctx context.Context, orgID uuid.UUID) (map[string]int64, error)
	CountByCategory(ctx context.Context, orgID, categoryID uuid.UUID) (int64, error)
	Save(ctx context.Context, product *Product) error
	Delete(ctx context.Context, orgID, id uuid.UUID) error
}

// CategoryRepository persists product categories
type CategoryRepository interface {
	FindByID(ctx context.Context, orgID, id uuid.UUID) (*ProductCategory, error)
	List(ctx context.Context, orgID uuid.UUID, query shared.Query, filter shared.Filter) ([]ProductCategory, int64, error)
	// FindAll returns every category of the organization, archived ones included when asked
	FindAll(ctx context.Context, orgID uuid.UUID, includeArchived bool) ([]*ProductCategory, error)
	// ExistsByName reports whether a sibling under parentID already has the name (case-insensitive)
	ExistsByName(ctx context.Context, orgID uuid.UUID, parentID *uuid.UUID, name string, excludeID *uuid.UUID) (bool, error)
	CountChildren(ctx context.Context, orgID, id uuid.UUID) (int64, error)
	Count(ctx context.Context, orgID uuid.UUID) (int64, error)
	Save(ctx context.Context, category *ProductCategory) error
	Delete(ctx context.Context, orgID, id uuid.UUID) error
}
