package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/shared"
)

// UniqueField names a column that must be unique within an organization
type UniqueField string

const (
	UniqueReference UniqueField = "reference"
	UniqueSIREN     UniqueField = "siren"
	UniqueSIRET     UniqueField = "siret"
)

// ClientRepository persists clients
type ClientRepository interface {
	FindByID(ctx context.Context, orgID, id uuid.UUID) (*Client, error)
	List(ctx context.Context, orgID uuid.UUID, query shared.Query, filter shared.Filter) ([]Client, int64, error)
	// ExistsBy reports whether another client of the organization already uses value.
	// excludeID skips the client being updated.
	ExistsBy(ctx context.Context, orgID uuid.UUID, field UniqueField, value string, excludeID *uuid.UUID) (bool, error)
	CountByStatus(ctx context.Context, orgID uuid.UUID) (map[string]int64, error)
	Save(ctx context.Context, client *Client) error
	// Delete removes the client along with its addresses and contacts
	Delete(ctx context.Context, orgID, id uuid.UUID) error
}

// SupplierRepository persists suppliers
type SupplierRepository interface {
	FindByID(ctx context.Context, orgID, id uuid.UUID) (*Supplier, error)
	List(ctx context.Context, orgID uuid.UUID, query shared.Query, filter shared.Filter) ([]Supplier, int64, error)
	ExistsBy(ctx context.Context, orgID uuid.UUID, field UniqueField, value string, excludeID *uuid.UUID) (bool, error)
	CountByStatus(ctx context.Context, orgID uuid.UUID) (map[string]int64, error)
	Save(ctx context.Context, supplier *Supplier) error
	// Delete removes the supplier along with its addresses and contacts
	Delete(ctx context.Context, orgID, id uuid.UUID) error
}

// AddressRepository persists addresses
type AddressRepository interface {
	FindByID(ctx context.Context, orgID, id uuid.UUID) (*Address, error)
	ListByOwner(ctx context.Context, orgID uuid.UUID, owner Owner) ([]Address, error)
	Save(ctx context.Context, address *Address) error
	// SaveAsDefault stores the address as the only default of its owner and type.
	// Clearing the previous default and writing this one happen atomically.
	SaveAsDefault(ctx context.Context, address *Address) error
	Delete(ctx context.Context, orgID, id uuid.UUID) error
}

// ContactRepository persists contacts
type ContactRepository interface {
	FindByID(ctx context.Context, orgID, id uuid.UUID) (*Contact, error)
	ListByOwner(ctx context.Context, orgID uuid.UUID, owner Owner) ([]Contact, error)
	Save(ctx context.Context, contact *Contact) error
	// SaveAsPrimary stores the contact as the only primary contact of its owner
	SaveAsPrimary(ctx context.Context, contact *Contact) error
	Delete(ctx context.Context, orgID, id uuid.UUID) error
}
