package partner

import "github.com/google/uuid"

// OwnerType names the kind of record an address or contact hangs off
type OwnerType string

const (
	OwnerClient   OwnerType = "CLIENT"
	OwnerSupplier OwnerType = "SUPPLIER"
	OwnerCompany  OwnerType = "COMPANY"
)

// Owner identifies the record an address or contact belongs to
type Owner struct {
	Type OwnerType
	ID   uuid.UUID
}

// IsValid reports whether the owner type is known and the id set
func (o Owner) IsValid() bool {
	switch o.Type {
	case OwnerClient, OwnerSupplier, OwnerCompany:
		return o.ID != uuid.Nil
	}
	return false
}
