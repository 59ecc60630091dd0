package persistence

import "strings"

// ValidateSortOrder normalizes the sort direction to ASC or DESC, defaulting to DESC
func ValidateSortOrder(orderDir string) string {
	if strings.ToUpper(strings.TrimSpace(orderDir)) == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField returns sortField when whitelisted, defaultField otherwise
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed != "" && allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

var commonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

func withCommon(fields ...string) map[string]bool {
	out := make(map[string]bool, len(commonSortFields)+len(fields))
	for k := range commonSortFields {
		out[k] = true
	}
	for _, f := range fields {
		out[f] = true
	}
	return out
}

var (
	// PartySortFields are the sortable columns of clients and suppliers
	PartySortFields = withCommon("reference", "name", "status", "type", "email")
	// ProductSortFields are the sortable columns of products
	ProductSortFields = withCommon("reference", "name", "status", "type", "unit_price")
	// CategorySortFields are the sortable columns of categories
	CategorySortFields = withCommon("name", "sort_order")
	// CompanySortFields are the sortable columns of companies
	CompanySortFields = withCommon("legal_name", "trade_name")
	// OrganizationSortFields are the sortable columns of organizations
	OrganizationSortFields = withCommon("name", "slug")
	// ActivitySortFields are the sortable columns of the activity log
	ActivitySortFields = map[string]bool{"occurred_at": true}
)
