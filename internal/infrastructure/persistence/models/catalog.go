package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CategoryModel is the persistence model for product categories
type CategoryModel struct {
	OrgAggregateModel
	Name        string     `gorm:"type:varchar(100);not null"`
	Description string     `gorm:"type:text"`
	Color       string     `gorm:"type:varchar(7)"`
	ParentID    *uuid.UUID `gorm:"type:uuid;index"`
	SortOrder   int        `gorm:"not null;default:0"`
	ArchivedAt  *time.Time `gorm:"index"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "product_categories"
}

// ToDomain converts the model to a domain category
func (m *CategoryModel) ToDomain() *catalog.ProductCategory {
	return &catalog.ProductCategory{
		OrgAggregateRoot: m.OrgAggregateRoot(),
		Archivable:       archivable(m.ArchivedAt),
		Name:             m.Name,
		Description:      m.Description,
		Color:            m.Color,
		ParentID:         m.ParentID,
		SortOrder:        m.SortOrder,
	}
}

// CategoryFromDomain converts a domain category to its model
func CategoryFromDomain(c *catalog.ProductCategory) *CategoryModel {
	m := &CategoryModel{
		Name:        c.Name,
		Description: c.Description,
		Color:       c.Color,
		ParentID:    c.ParentID,
		SortOrder:   c.SortOrder,
		ArchivedAt:  c.ArchivedAt,
	}
	m.FromOrgAggregateRoot(c.OrgAggregateRoot)
	return m
}

// ProductModel is the persistence model for products
type ProductModel struct {
	OrgAggregateModel
	Reference   string                `gorm:"type:varchar(50);not null"`
	Name        string                `gorm:"type:varchar(200);not null"`
	Description string                `gorm:"type:text"`
	Type        catalog.ProductType   `gorm:"type:varchar(20);not null"`
	Status      catalog.ProductStatus `gorm:"type:varchar(20);not null;index"`
	Unit        string                `gorm:"type:varchar(20);not null"`
	UnitPrice   decimal.Decimal       `gorm:"type:decimal(15,4);not null;default:0"`
	VATRate     decimal.Decimal       `gorm:"column:vat_rate;type:decimal(5,2);not null;default:0"`
	CategoryID  *uuid.UUID            `gorm:"type:uuid;index"`
	SupplierID  *uuid.UUID            `gorm:"type:uuid;index"`
	Barcode     string                `gorm:"type:varchar(50)"`
	ArchivedAt  *time.Time            `gorm:"index"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the model to a domain product
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		OrgAggregateRoot: m.OrgAggregateRoot(),
		Archivable:       archivable(m.ArchivedAt),
		Reference:        m.Reference,
		Name:             m.Name,
		Description:      m.Description,
		Type:             m.Type,
		Status:           m.Status,
		Unit:             m.Unit,
		UnitPrice:        m.UnitPrice,
		VATRate:          m.VATRate,
		CategoryID:       m.CategoryID,
		SupplierID:       m.SupplierID,
		Barcode:          m.Barcode,
	}
}

// ProductFromDomain converts a domain product to its model
func ProductFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{
		Reference:   p.Reference,
		Name:        p.Name,
		Description: p.Description,
		Type:        p.Type,
		Status:      p.Status,
		Unit:        p.Unit,
		UnitPrice:   p.UnitPrice,
		VATRate:     p.VATRate,
		CategoryID:  p.CategoryID,
		SupplierID:  p.SupplierID,
		Barcode:     p.Barcode,
		ArchivedAt:  p.ArchivedAt,
	}
	m.FromOrgAggregateRoot(p.OrgAggregateRoot)
	return m
}
