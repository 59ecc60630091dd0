package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// AggregateTypeProduct is the aggregate type for products
const AggregateTypeProduct = "product"

// ProductType tells goods from services
type ProductType string

const (
	ProductTypeGood    ProductType = "GOOD"
	ProductTypeService ProductType = "SERVICE"
)

// IsValid reports whether the type is known
func (t ProductType) IsValid() bool {
	return t == ProductTypeGood || t == ProductTypeService
}

// ProductStatus is the sales lifecycle of a product
type ProductStatus string

const (
	ProductStatusDraft        ProductStatus = "DRAFT"
	ProductStatusActive       ProductStatus = "ACTIVE"
	ProductStatusInactive     ProductStatus = "INACTIVE"
	ProductStatusDiscontinued ProductStatus = "DISCONTINUED"
	ProductStatusArchived     ProductStatus = "ARCHIVED"
)

// ProductStatusTransitions lists the moves a product's status may make
var ProductStatusTransitions = shared.TransitionTable[ProductStatus]{
	ProductStatusDraft:        {ProductStatusActive, ProductStatusArchived},
	ProductStatusActive:       {ProductStatusInactive, ProductStatusDiscontinued, ProductStatusArchived},
	ProductStatusInactive:     {ProductStatusActive, ProductStatusDiscontinued, ProductStatusArchived},
	ProductStatusDiscontinued: {ProductStatusArchived},
	ProductStatusArchived:     {ProductStatusInactive},
}

var maxVATRate = decimal.NewFromInt(100)

// Product is an item or service an organization sells
type Product struct {
	shared.OrgAggregateRoot
	shared.Archivable
	Reference   string
	Name        string
	Description string
	Type        ProductType
	Status      ProductStatus
	Unit        string
	UnitPrice   decimal.Decimal
	VATRate     decimal.Decimal
	CategoryID  *uuid.UUID
	SupplierID  *uuid.UUID
	Barcode     string
}

// ProductDetails holds the editable fields of a product
type ProductDetails struct {
	Reference   string
	Name        string
	Description string
	Type        ProductType
	Unit        string
	UnitPrice   decimal.Decimal
	VATRate     decimal.Decimal
	CategoryID  *uuid.UUID
	SupplierID  *uuid.UUID
	Barcode     string
}

// NewProduct creates a product, DRAFT unless another initial status is given
func NewProduct(orgID uuid.UUID, status ProductStatus, d ProductDetails) (*Product, error) {
	if status == "" {
		status = ProductStatusDraft
	}
	if status == ProductStatusArchived || !ProductStatusTransitions.Known(status) {
		return nil, shared.NewFieldError("INVALID_STATUS", "status", "Invalid initial product status")
	}
	p := &Product{
		OrgAggregateRoot: shared.NewOrgAggregateRoot(orgID),
		Status:           status,
	}
	if err := p.apply(d); err != nil {
		return nil, err
	}
	p.AddDomainEvent(shared.NewLifecycleEvent(AggregateTypeProduct, "created", p.ID, orgID))
	return p, nil
}

// Update replaces the editable fields
func (p *Product) Update(d ProductDetails) error {
	if err := p.apply(d); err != nil {
		return err
	}
	p.IncrementVersion()
	p.AddDomainEvent(shared.NewLifecycleEvent(AggregateTypeProduct, "updated", p.ID, p.OrganizationID))
	return nil
}

func (p *Product) apply(d ProductDetails) error {
	ref := shared.NormalizeReference(d.Reference)
	if err := shared.ValidateReference(ref); err != nil {
		return err
	}
	name := strings.TrimSpace(d.Name)
	if err := shared.ValidateRequiredName("name", name, 200); err != nil {
		return err
	}
	if d.Type == "" {
		d.Type = ProductTypeGood
	}
	if !d.Type.IsValid() {
		return shared.NewFieldError("INVALID_TYPE", "type", "Product type must be GOOD or SERVICE")
	}
	unit := strings.TrimSpace(d.Unit)
	if unit == "" {
		unit = "unit"
	}
	if len(unit) > 20 {
		return shared.NewFieldError("INVALID_UNIT", "unit", "Unit cannot exceed 20 characters")
	}
	if d.UnitPrice.IsNegative() {
		return shared.NewFieldError("INVALID_PRICE", "unit_price", "Unit price cannot be negative")
	}
	if d.VATRate.IsNegative() || d.VATRate.GreaterThan(maxVATRate) {
		return shared.NewFieldError("INVALID_VAT_RATE", "vat_rate", "VAT rate must be between 0 and 100")
	}
	barcode := strings.TrimSpace(d.Barcode)
	if len(barcode) > 50 {
		return shared.NewFieldError("INVALID_BARCODE", "barcode", "Barcode cannot exceed 50 characters")
	}
	description := strings.TrimSpace(d.Description)
	if len(description) > 5000 {
		return shared.NewFieldError("INVALID_DESCRIPTION", "description", "Description cannot exceed 5000 characters")
	}

	p.Reference = ref
	p.Name = name
	p.Description = description
	p.Type = d.Type
	p.Unit = unit
	p.UnitPrice = d.UnitPrice.Round(4)
	p.VATRate = d.VATRate.Round(2)
	p.CategoryID = d.CategoryID
	p.SupplierID = d.SupplierID
	p.Barcode = barcode
	return nil
}

// PriceWithVAT returns the unit price including VAT, rounded to cents
func (p *Product) PriceWithVAT() decimal.Decimal {
	factor := decimal.NewFromInt(1).Add(p.VATRate.Div(maxVATRate))
	return p.UnitPrice.Mul(factor).Round(2)
}

// ChangeStatus moves the product to a new status. With enforce=false the transition
// table is only advisory.
func (p *Product) ChangeStatus(to ProductStatus, enforce bool) error {
	if !ProductStatusTransitions.Known(to) {
		return shared.NewFieldError("INVALID_STATUS", "status", "Unknown product status")
	}
	if enforce {
		if err := ProductStatusTransitions.Validate(p.Status, to); err != nil {
			return err
		}
	} else if p.Status == to {
		return nil
	}
	from := p.Status
	p.Status = to
	if to == ProductStatusArchived {
		p.MarkArchived(time.Now())
	} else {
		p.ClearArchived()
	}
	p.IncrementVersion()
	p.AddDomainEvent(shared.NewStatusChangedEvent(AggregateTypeProduct, p.ID, p.OrganizationID, string(from), string(to)))
	return nil
}

// Archive moves the product to ARCHIVED
func (p *Product) Archive(enforce bool) error {
	if p.Status == ProductStatusArchived {
		return shared.NewDomainError("INVALID_STATE", "Product is already archived")
	}
	return p.ChangeStatus(ProductStatusArchived, enforce)
}

// Restore brings an archived product back as INACTIVE
func (p *Product) Restore() error {
	if p.Status != ProductStatusArchived {
		return shared.NewDomainError("INVALID_STATE", "Product is not archived")
	}
	return p.ChangeStatus(ProductStatusInactive, true)
}

// ProductFilterSchema lists the filters and search columns accepted when listing products
var ProductFilterSchema = shared.FilterSchema{
	Fields: map[string]shared.FilterField{
		"status":     {Column: "status", Kind: shared.FieldText},
		"type":       {Column: "type", Kind: shared.FieldText},
		"categoryId": {Column: "category_id", Kind: shared.FieldUUID},
		"supplierId": {Column: "supplier_id", Kind: shared.FieldUUID},
		"archived":   {Column: "archived_at", Kind: shared.FieldPresence},
	},
	SearchColumns: []string{"name", "reference", "barcode"},
}
