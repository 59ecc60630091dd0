package telemetry

import (
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"gorm.io/gorm"
)

// InstrumentGORM adds a span per query. Query arguments are left out of spans
// unless logVariables is set.
func InstrumentGORM(db *gorm.DB, dbSystem string, logVariables bool) error {
	opts := []otelgorm.Option{otelgorm.WithDBName(dbSystem)}
	if !logVariables {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	return db.Use(otelgorm.NewPlugin(opts...))
}
