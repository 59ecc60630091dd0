package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/application/workflow"
	"github.com/orgdesk/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ProductInput creates or updates a product. Status is only read on create.
type ProductInput struct {
	Reference   string          `json:"reference" validate:"required,max=50"`
	Name        string          `json:"name" validate:"required,max=200" sanitize:"text"`
	Description string          `json:"description" validate:"max=5000" sanitize:"text"`
	Type        string          `json:"type" validate:"omitempty,oneof=GOOD SERVICE"`
	Status      string          `json:"status" validate:"omitempty,oneof=DRAFT ACTIVE INACTIVE DISCONTINUED"`
	Unit        string          `json:"unit" validate:"max=20" sanitize:"text"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	VATRate     decimal.Decimal `json:"vat_rate"`
	CategoryID  *uuid.UUID      `json:"category_id"`
	SupplierID  *uuid.UUID      `json:"supplier_id"`
	Barcode     string          `json:"barcode" validate:"max=50"`
}

func (in ProductInput) details() catalog.ProductDetails {
	return catalog.ProductDetails{
		Reference:   in.Reference,
		Name:        in.Name,
		Description: in.Description,
		Type:        catalog.ProductType(in.Type),
		Unit:        in.Unit,
		UnitPrice:   in.UnitPrice,
		VATRate:     in.VATRate,
		CategoryID:  in.CategoryID,
		SupplierID:  in.SupplierID,
		Barcode:     in.Barcode,
	}
}

// StatusInput requests a status change
type StatusInput struct {
	Status string `json:"status" validate:"required,max=30"`
}

// ProductResponse is a product in API responses
type ProductResponse struct {
	ID              uuid.UUID       `json:"id"`
	Reference       string          `json:"reference"`
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	Type            string          `json:"type"`
	Status          string          `json:"status"`
	AllowedStatuses []string        `json:"allowed_statuses"`
	Unit            string          `json:"unit"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	VATRate         decimal.Decimal `json:"vat_rate"`
	PriceWithVAT    decimal.Decimal `json:"price_with_vat"`
	CategoryID      *uuid.UUID      `json:"category_id,omitempty"`
	SupplierID      *uuid.UUID      `json:"supplier_id,omitempty"`
	Barcode         string          `json:"barcode,omitempty"`
	ArchivedAt      *time.Time      `json:"archived_at,omitempty"`
	Version         int             `json:"version"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ToProductResponse converts a domain product
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:              p.ID,
		Reference:       p.Reference,
		Name:            p.Name,
		Description:     p.Description,
		Type:            string(p.Type),
		Status:          string(p.Status),
		AllowedStatuses: workflow.Allowed(catalog.ProductStatusTransitions, p.Status),
		Unit:            p.Unit,
		UnitPrice:       p.UnitPrice,
		VATRate:         p.VATRate,
		PriceWithVAT:    p.PriceWithVAT(),
		CategoryID:      p.CategoryID,
		SupplierID:      p.SupplierID,
		Barcode:         p.Barcode,
		ArchivedAt:      p.ArchivedAt,
		Version:         p.Version,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// CategoryInput creates or updates a category. ParentID is only read on create;
// use Move to re-parent.
type CategoryInput struct {
	Name        string     `json:"name" validate:"required,max=100" sanitize:"text"`
	Description string     `json:"description" validate:"max=2000" sanitize:"text"`
	Color       string     `json:"color" validate:"omitempty,hexcolor"`
	ParentID    *uuid.UUID `json:"parent_id"`
	SortOrder   int        `json:"sort_order" validate:"min=0"`
}

func (in CategoryInput) details() catalog.CategoryDetails {
	return catalog.CategoryDetails{
		Name:        in.Name,
		Description: in.Description,
		Color:       in.Color,
		SortOrder:   in.SortOrder,
	}
}

// MoveInput re-parents a category; a nil parent moves it to the top level
type MoveInput struct {
	ParentID *uuid.UUID `json:"parent_id"`
}

// CategoryResponse is a category in API responses
type CategoryResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Color       string     `json:"color,omitempty"`
	ParentID    *uuid.UUID `json:"parent_id,omitempty"`
	SortOrder   int        `json:"sort_order"`
	ArchivedAt  *time.Time `json:"archived_at,omitempty"`
	Version     int        `json:"version"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ToCategoryResponse converts a domain category
func ToCategoryResponse(c *catalog.ProductCategory) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Color:       c.Color,
		ParentID:    c.ParentID,
		SortOrder:   c.SortOrder,
		ArchivedAt:  c.ArchivedAt,
		Version:     c.Version,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// CategoryTreeNode is a category with its nested children. Children is left
// out of the JSON for leaves.
type CategoryTreeNode struct {
	CategoryResponse
	ChildCount  int                `json:"child_count"`
	HasChildren bool               `json:"has_children"`
	Children    []CategoryTreeNode `json:"children,omitempty"`
}

// ToCategoryTree converts a built tree
func ToCategoryTree(nodes []*catalog.CategoryTreeNode) []CategoryTreeNode {
	out := make([]CategoryTreeNode, len(nodes))
	for i, n := range nodes {
		out[i] = CategoryTreeNode{
			CategoryResponse: ToCategoryResponse(n.Category),
			ChildCount:       n.ChildCount,
			HasChildren:      n.HasChildren,
		}
		if n.HasChildren {
			out[i].Children = ToCategoryTree(n.Children)
		}
	}
	return out
}

// TreeQuery selects the part of the tree to return
type TreeQuery struct {
	RootID          *uuid.UUID
	IncludeArchived bool
}
