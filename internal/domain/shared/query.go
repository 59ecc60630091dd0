package shared

import (
	"sort"
	"strings"

	"github.com/google/uuid"
)

// FieldKind tells the filter builder how to read a filter value
type FieldKind int

const (
	// FieldText accepts a string (equality) or a list of strings (membership)
	FieldText FieldKind = iota
	// FieldUUID accepts an id, a list of ids, or null for "not set"
	FieldUUID
	// FieldBool accepts a bool or its string form
	FieldBool
	// FieldPresence maps true/false onto NOT NULL / NULL of a nullable column
	FieldPresence
)

// PredicateOp is the comparison emitted for one filter key
type PredicateOp string

const (
	OpEq      PredicateOp = "eq"
	OpIn      PredicateOp = "in"
	OpIsNull  PredicateOp = "is_null"
	OpNotNull PredicateOp = "not_null"
)

// FilterField binds a public filter key to a column
type FilterField struct {
	Column string
	Kind   FieldKind
}

// FilterSchema describes which filter keys and search columns an entity supports
type FilterSchema struct {
	Fields        map[string]FilterField
	SearchColumns []string
}

// Predicate is one structured condition produced by the builder
type Predicate struct {
	Column string
	Op     PredicateOp
	Values []any
}

// Query is the storage-agnostic result of building a filter
type Query struct {
	Predicates    []Predicate
	Search        string
	SearchColumns []string
}

// HasSearch reports whether a free-text clause should be applied
func (q Query) HasSearch() bool {
	return q.Search != "" && len(q.SearchColumns) > 0
}

// Build translates loosely typed filters and a search term into predicates.
// Unknown keys and malformed values are dropped.
func (s FilterSchema) Build(filters map[string]any, search string) Query {
	q := Query{}

	keys := make([]string, 0, len(filters))
	for k := range filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		field, ok := s.Fields[key]
		if !ok {
			continue
		}
		if p, ok := buildPredicate(field, filters[key]); ok {
			q.Predicates = append(q.Predicates, p)
		}
	}

	if term := strings.TrimSpace(search); term != "" && len(s.SearchColumns) > 0 {
		q.Search = term
		q.SearchColumns = append([]string(nil), s.SearchColumns...)
	}
	return q
}

func buildPredicate(field FilterField, value any) (Predicate, bool) {
	switch field.Kind {
	case FieldText:
		return textPredicate(field.Column, value)
	case FieldUUID:
		return uuidPredicate(field.Column, value)
	case FieldBool:
		b, ok := boolValue(value)
		if !ok {
			return Predicate{}, false
		}
		return Predicate{Column: field.Column, Op: OpEq, Values: []any{b}}, true
	case FieldPresence:
		b, ok := boolValue(value)
		if !ok {
			return Predicate{}, false
		}
		if b {
			return Predicate{Column: field.Column, Op: OpNotNull}, true
		}
		return Predicate{Column: field.Column, Op: OpIsNull}, true
	}
	return Predicate{}, false
}

func textPredicate(column string, value any) (Predicate, bool) {
	if s, ok := value.(string); ok {
		s = strings.TrimSpace(s)
		if s == "" {
			return Predicate{}, false
		}
		return Predicate{Column: column, Op: OpEq, Values: []any{s}}, true
	}

	items, ok := listValue(value)
	if !ok {
		return Predicate{}, false
	}
	values := make([]any, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			continue
		}
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		values = append(values, s)
	}
	if len(values) == 0 {
		return Predicate{}, false
	}
	return Predicate{Column: column, Op: OpIn, Values: values}, true
}

func uuidPredicate(column string, value any) (Predicate, bool) {
	if value == nil {
		return Predicate{Column: column, Op: OpIsNull}, true
	}
	if s, ok := value.(string); ok && strings.EqualFold(strings.TrimSpace(s), "null") {
		return Predicate{Column: column, Op: OpIsNull}, true
	}
	if id, ok := uuidValue(value); ok {
		return Predicate{Column: column, Op: OpEq, Values: []any{id}}, true
	}

	items, ok := listValue(value)
	if !ok {
		return Predicate{}, false
	}
	values := make([]any, 0, len(items))
	seen := make(map[uuid.UUID]struct{}, len(items))
	for _, item := range items {
		id, ok := uuidValue(item)
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		values = append(values, id)
	}
	if len(values) == 0 {
		return Predicate{}, false
	}
	return Predicate{Column: column, Op: OpIn, Values: values}, true
}

func uuidValue(value any) (uuid.UUID, bool) {
	switch v := value.(type) {
	case uuid.UUID:
		return v, v != uuid.Nil
	case *uuid.UUID:
		if v == nil || *v == uuid.Nil {
			return uuid.Nil, false
		}
		return *v, true
	case string:
		id, err := uuid.Parse(strings.TrimSpace(v))
		if err != nil {
			return uuid.Nil, false
		}
		return id, true
	}
	return uuid.Nil, false
}

func boolValue(value any) (bool, bool) {
	switch v := value.(type) {
	case bool:
		return v, true
	case *bool:
		if v == nil {
			return false, false
		}
		return *v, true
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "1", "yes":
			return true, true
		case "false", "0", "no":
			return false, true
		}
	}
	return false, false
}

func listValue(value any) ([]any, bool) {
	switch v := value.(type) {
	case []any:
		return v, true
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out, true
	case []uuid.UUID:
		out := make([]any, len(v))
		for i, id := range v {
			out[i] = id
		}
		return out, true
	}
	return nil, false
}
