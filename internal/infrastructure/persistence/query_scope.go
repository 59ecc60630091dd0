package persistence

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SearchResolver builds the condition for a search column that is not a plain
// column of the listed table, such as a related address city
type SearchResolver func(pattern string) (string, []any)

// scopeQuery applies built predicates and the free-text search to a query on table
func scopeQuery(table string, q shared.Query, resolvers map[string]SearchResolver) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		for _, p := range q.Predicates {
			if expr := predicateExpr(table, p); expr != nil {
				db = db.Where(expr)
			}
		}
		if q.HasSearch() {
			sql, args := searchCondition(table, q, resolvers)
			if sql != "" {
				db = db.Where(sql, args...)
			}
		}
		return db
	}
}

func predicateExpr(table string, p shared.Predicate) clause.Expression {
	col := clause.Column{Table: table, Name: p.Column}
	switch p.Op {
	case shared.OpEq:
		if len(p.Values) != 1 {
			return nil
		}
		return clause.Eq{Column: col, Value: p.Values[0]}
	case shared.OpIn:
		if len(p.Values) == 0 {
			return nil
		}
		return clause.IN{Column: col, Values: p.Values}
	case shared.OpIsNull:
		return clause.Eq{Column: col, Value: nil}
	case shared.OpNotNull:
		return clause.Neq{Column: col, Value: nil}
	}
	return nil
}

// searchCondition ORs a case-insensitive substring match over every search column
func searchCondition(table string, q shared.Query, resolvers map[string]SearchResolver) (string, []any) {
	pattern := "%" + escapeLike(strings.ToLower(q.Search)) + "%"
	parts := make([]string, 0, len(q.SearchColumns))
	args := make([]any, 0, len(q.SearchColumns))
	for _, column := range q.SearchColumns {
		if resolve, ok := resolvers[column]; ok {
			sql, vars := resolve(pattern)
			parts = append(parts, sql)
			args = append(args, vars...)
			continue
		}
		if strings.Contains(column, ".") {
			continue
		}
		parts = append(parts, fmt.Sprintf(`LOWER(%s.%s) LIKE ? ESCAPE '\'`, table, column))
		args = append(args, pattern)
	}
	if len(parts) == 0 {
		return "", nil
	}
	return "(" + strings.Join(parts, " OR ") + ")", args
}

// escapeLike neutralizes LIKE wildcards in user input
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// addressCityResolver matches owners having an address whose city contains the term
func addressCityResolver(table, ownerType string) SearchResolver {
	return func(pattern string) (string, []any) {
		sql := fmt.Sprintf(`EXISTS (SELECT 1 FROM addresses a WHERE a.owner_type = ? AND a.owner_id = %s.id AND LOWER(a.city) LIKE ? ESCAPE '\')`, table)
		return sql, []any{ownerType, pattern}
	}
}

// orderAndPage applies a whitelisted sort and the page window
func orderAndPage(db *gorm.DB, table string, f shared.Filter, allowed map[string]bool, defaultField string) *gorm.DB {
	field := ValidateSortField(f.OrderBy, allowed, defaultField)
	dir := ValidateSortOrder(f.OrderDir)
	db = db.Order(fmt.Sprintf("%s.%s %s", table, field, dir))
	if field != "id" {
		db = db.Order(table + ".id")
	}
	return db.Offset(f.Offset()).Limit(f.PageSize)
}

// listPage runs a filtered, counted and paginated query of model M scoped to an organization
func listPage[M any](db *gorm.DB, table string, orgID uuid.UUID, q shared.Query, f shared.Filter,
	resolvers map[string]SearchResolver, sortFields map[string]bool, defaultSort string) ([]M, int64, error) {
	f.Normalize()
	base := db.Model(new(M)).
		Where(clause.Eq{Column: clause.Column{Table: table, Name: "organization_id"}, Value: orgID}).
		Scopes(scopeQuery(table, q, resolvers))

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []M
	if total == 0 {
		return rows, 0, nil
	}
	if err := orderAndPage(base.Session(&gorm.Session{}), table, f, sortFields, defaultSort).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// exists reports whether a row of model M matches the conditions
func exists[M any](db *gorm.DB, conds ...clause.Expression) (bool, error) {
	var count int64
	q := db.Model(new(M))
	for _, c := range conds {
		if c != nil {
			q = q.Where(c)
		}
	}
	if err := q.Limit(1).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func eq(column string, value any) clause.Expression {
	return clause.Eq{Column: clause.Column{Name: column}, Value: value}
}

// excluding skips the record being updated; nil means no exclusion
func excluding(excludeID *uuid.UUID) clause.Expression {
	if excludeID == nil {
		return nil
	}
	return clause.Neq{Column: clause.Column{Name: "id"}, Value: *excludeID}
}

// countByStatus groups rows of model M by status for an organization
func countByStatus[M any](db *gorm.DB, orgID uuid.UUID) (map[string]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	if err := db.Model(new(M)).
		Select("status, COUNT(*) AS count").
		Where("organization_id = ?", orgID).
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.Status] = r.Count
	}
	return out, nil
}
