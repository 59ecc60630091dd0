package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/shared"
)

// AggregateTypeSupplier is the aggregate type for suppliers
const AggregateTypeSupplier = "supplier"

// SupplierType classifies what a supplier provides
type SupplierType string

const (
	SupplierTypeManufacturer    SupplierType = "MANUFACTURER"
	SupplierTypeWholesaler      SupplierType = "WHOLESALER"
	SupplierTypeDistributor     SupplierType = "DISTRIBUTOR"
	SupplierTypeServiceProvider SupplierType = "SERVICE_PROVIDER"
	SupplierTypeOther           SupplierType = "OTHER"
)

// IsValid reports whether the type is known
func (t SupplierType) IsValid() bool {
	switch t {
	case SupplierTypeManufacturer, SupplierTypeWholesaler, SupplierTypeDistributor,
		SupplierTypeServiceProvider, SupplierTypeOther:
		return true
	}
	return false
}

// SupplierStatus is the working state of a supplier relationship
type SupplierStatus string

const (
	SupplierStatusActive   SupplierStatus = "ACTIVE"
	SupplierStatusInactive SupplierStatus = "INACTIVE"
	SupplierStatusBlocked  SupplierStatus = "BLOCKED"
	SupplierStatusArchived SupplierStatus = "ARCHIVED"
)

// SupplierStatusTransitions lists the moves a supplier's status may make
var SupplierStatusTransitions = shared.TransitionTable[SupplierStatus]{
	SupplierStatusActive:   {SupplierStatusInactive, SupplierStatusBlocked, SupplierStatusArchived},
	SupplierStatusInactive: {SupplierStatusActive, SupplierStatusArchived},
	SupplierStatusBlocked:  {SupplierStatusActive, SupplierStatusInactive, SupplierStatusArchived},
	SupplierStatusArchived: {SupplierStatusInactive},
}

// Supplier is a vendor the organization buys from
type Supplier struct {
	shared.OrgAggregateRoot
	shared.Archivable
	Reference        string
	Name             string
	Type             SupplierType
	Status           SupplierStatus
	Contact          shared.ContactInfo
	Fiscal           shared.FiscalIDs
	PaymentTermsDays int
	Notes            string
}

// NewSupplier creates an ACTIVE supplier
func NewSupplier(orgID uuid.UUID, supplierType SupplierType, paymentTermsDays int, d PartyDetails) (*Supplier, error) {
	s := &Supplier{
		OrgAggregateRoot: shared.NewOrgAggregateRoot(orgID),
		Status:           SupplierStatusActive,
	}
	if err := s.apply(supplierType, paymentTermsDays, d); err != nil {
		return nil, err
	}
	s.AddDomainEvent(shared.NewLifecycleEvent(AggregateTypeSupplier, "created", s.ID, orgID))
	return s, nil
}

// Update replaces the editable fields
func (s *Supplier) Update(supplierType SupplierType, paymentTermsDays int, d PartyDetails) error {
	if err := s.apply(supplierType, paymentTermsDays, d); err != nil {
		return err
	}
	s.IncrementVersion()
	s.AddDomainEvent(shared.NewLifecycleEvent(AggregateTypeSupplier, "updated", s.ID, s.OrganizationID))
	return nil
}

func (s *Supplier) apply(supplierType SupplierType, paymentTermsDays int, d PartyDetails) error {
	if supplierType == "" {
		supplierType = SupplierTypeOther
	}
	if !supplierType.IsValid() {
		return shared.NewFieldError("INVALID_TYPE", "type", "Unknown supplier type")
	}
	if paymentTermsDays < 0 || paymentTermsDays > 365 {
		return shared.NewFieldError("INVALID_PAYMENT_TERMS", "payment_terms_days", "Payment terms must be between 0 and 365 days")
	}
	clean, err := d.normalize()
	if err != nil {
		return err
	}
	s.Type = supplierType
	s.PaymentTermsDays = paymentTermsDays
	s.Reference = clean.Reference
	s.Name = clean.Name
	s.Contact = clean.Contact
	s.Fiscal = clean.Fiscal
	s.Notes = clean.Notes
	return nil
}

// ChangeStatus moves the supplier to a new status
func (s *Supplier) ChangeStatus(to SupplierStatus, enforce bool) error {
	if !SupplierStatusTransitions.Known(to) {
		return shared.NewFieldError("INVALID_STATUS", "status", "Unknown supplier status")
	}
	if enforce {
		if err := SupplierStatusTransitions.Validate(s.Status, to); err != nil {
			return err
		}
	} else if s.Status == to {
		return nil
	}
	from := s.Status
	s.Status = to
	if to == SupplierStatusArchived {
		s.MarkArchived(time.Now())
	} else {
		s.ClearArchived()
	}
	s.IncrementVersion()
	s.AddDomainEvent(shared.NewStatusChangedEvent(AggregateTypeSupplier, s.ID, s.OrganizationID, string(from), string(to)))
	return nil
}

// Archive moves the supplier to ARCHIVED
func (s *Supplier) Archive(enforce bool) error {
	if s.Status == SupplierStatusArchived {
		return shared.NewDomainError("INVALID_STATE", "Supplier is already archived")
	}
	return s.ChangeStatus(SupplierStatusArchived, enforce)
}

// Restore brings an archived supplier back as INACTIVE
func (s *Supplier) Restore() error {
	if s.Status != SupplierStatusArchived {
		return shared.NewDomainError("INVALID_STATE", "Supplier is not archived")
	}
	return s.ChangeStatus(SupplierStatusInactive, true)
}

// SupplierFilterSchema lists the filters and search columns accepted when listing suppliers
var SupplierFilterSchema = shared.FilterSchema{
	Fields: map[string]shared.FilterField{
		"status":   {Column: "status", Kind: shared.FieldText},
		"type":     {Column: "type", Kind: shared.FieldText},
		"archived": {Column: "archived_at", Kind: shared.FieldPresence},
	},
	SearchColumns: []string{"name", "reference", "email", "siren", "siret", "vat_number", SearchAddressCity},
}
