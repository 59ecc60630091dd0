// Package workflow applies the status transition setting to entity status changes.
package workflow

import (
	"sort"

	"github.com/orgdesk/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Policy says whether transition tables are enforced or advisory
type Policy struct {
	Enforce bool
}

// Transitions describes a transition table to clients
type Transitions struct {
	Enforced bool                `json:"enforced"`
	Statuses []string            `json:"statuses"`
	Allowed  map[string][]string `json:"allowed"`
}

// Describe renders the table with statuses in a stable order
func Describe[S ~string](p Policy, table shared.TransitionTable[S]) Transitions {
	out := Transitions{Enforced: p.Enforce, Allowed: make(map[string][]string, len(table))}
	for from, next := range table {
		out.Statuses = append(out.Statuses, string(from))
		targets := make([]string, len(next))
		for i, to := range next {
			targets[i] = string(to)
		}
		out.Allowed[string(from)] = targets
	}
	sort.Strings(out.Statuses)
	return out
}

// Allowed lists the statuses reachable from the current one
func Allowed[S ~string](table shared.TransitionTable[S], from S) []string {
	next := table.Allowed(from)
	out := make([]string, len(next))
	for i, s := range next {
		out[i] = string(s)
	}
	return out
}

// Audit logs a change the table does not allow. Enforced policies reject such
// changes before they get here, so only advisory mode ever logs.
func Audit[S ~string](p Policy, log *zap.Logger, aggregate string, table shared.TransitionTable[S], from, to S) {
	if p.Enforce || from == to || table.CanTransition(from, to) {
		return
	}
	log.Warn("status changed outside the transition table",
		zap.String("aggregate", aggregate),
		zap.String("from", string(from)),
		zap.String("to", string(to)))
}
