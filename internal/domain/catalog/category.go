package catalog

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/shared"
)

// AggregateTypeCategory is the aggregate type for product categories
const AggregateTypeCategory = "product_category"

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// ErrCircularReference is returned when a category would become its own ancestor
var ErrCircularReference = shared.NewFieldError("CIRCULAR_REFERENCE", "parent_id",
	"A category cannot be moved under itself or one of its descendants")

// ProductCategory groups products; categories nest through ParentID
type ProductCategory struct {
	shared.OrgAggregateRoot
	shared.Archivable
	Name        string
	Description string
	Color       string
	ParentID    *uuid.UUID
	SortOrder   int
}

// CategoryDetails holds the editable fields of a category
type CategoryDetails struct {
	Name        string
	Description string
	Color       string
	SortOrder   int
}

// NewCategory creates a category under parentID, or at the root when nil
func NewCategory(orgID uuid.UUID, parentID *uuid.UUID, d CategoryDetails) (*ProductCategory, error) {
	c := &ProductCategory{
		OrgAggregateRoot: shared.NewOrgAggregateRoot(orgID),
		ParentID:         parentID,
	}
	if err := c.apply(d); err != nil {
		return nil, err
	}
	c.AddDomainEvent(shared.NewLifecycleEvent(AggregateTypeCategory, "created", c.ID, orgID))
	return c, nil
}

// Update replaces the editable fields
func (c *ProductCategory) Update(d CategoryDetails) error {
	if err := c.apply(d); err != nil {
		return err
	}
	c.IncrementVersion()
	return nil
}

func (c *ProductCategory) apply(d CategoryDetails) error {
	name := strings.TrimSpace(d.Name)
	if err := shared.ValidateRequiredName("name", name, 100); err != nil {
		return err
	}
	color := strings.TrimSpace(d.Color)
	if color != "" && !colorPattern.MatchString(color) {
		return shared.NewFieldError("INVALID_COLOR", "color", "Color must be a hex value such as #1E88E5")
	}
	description := strings.TrimSpace(d.Description)
	if len(description) > 2000 {
		return shared.NewFieldError("INVALID_DESCRIPTION", "description", "Description cannot exceed 2000 characters")
	}
	if d.SortOrder < 0 {
		return shared.NewFieldError("INVALID_SORT_ORDER", "sort_order", "Sort order cannot be negative")
	}
	c.Name = name
	c.Description = description
	c.Color = strings.ToUpper(color)
	c.SortOrder = d.SortOrder
	return nil
}

// MoveTo re-parents the category. all is the organization's category list, used to
// reject moves that would create a cycle.
func (c *ProductCategory) MoveTo(parentID *uuid.UUID, all []*ProductCategory) error {
	if parentID != nil && WouldCreateCycle(all, c.ID, *parentID) {
		return ErrCircularReference
	}
	c.ParentID = parentID
	c.IncrementVersion()
	c.AddDomainEvent(shared.NewLifecycleEvent(AggregateTypeCategory, "moved", c.ID, c.OrganizationID))
	return nil
}

// Archive stamps the category as archived
func (c *ProductCategory) Archive() error {
	if c.IsArchived() {
		return shared.NewDomainError("INVALID_STATE", "Category is already archived")
	}
	c.MarkArchived(time.Now())
	c.IncrementVersion()
	c.AddDomainEvent(shared.NewLifecycleEvent(AggregateTypeCategory, "archived", c.ID, c.OrganizationID))
	return nil
}

// Restore clears the archive stamp
func (c *ProductCategory) Restore() error {
	if !c.IsArchived() {
		return shared.NewDomainError("INVALID_STATE", "Category is not archived")
	}
	c.ClearArchived()
	c.IncrementVersion()
	c.AddDomainEvent(shared.NewLifecycleEvent(AggregateTypeCategory, "restored", c.ID, c.OrganizationID))
	return nil
}

// CategoryFilterSchema lists the filters and search columns accepted when listing categories
var CategoryFilterSchema = shared.FilterSchema{
	Fields: map[string]shared.FilterField{
		"parentId": {Column: "parent_id", Kind: shared.FieldUUID},
		"archived": {Column: "archived_at", Kind: shared.FieldPresence},
	},
	SearchColumns: []string{"name", "description"},
}
