package persistence

import (
	"fmt"

	"github.com/orgdesk/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// organization-scoped unique constraints that GORM tags cannot express on embedded columns
var extraIndexes = []string{
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_clients_org_reference ON clients (organization_id, reference)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_clients_org_siren ON clients (organization_id, siren) WHERE siren <> ''`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_clients_org_siret ON clients (organization_id, siret) WHERE siret <> ''`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_suppliers_org_reference ON suppliers (organization_id, reference)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_suppliers_org_siren ON suppliers (organization_id, siren) WHERE siren <> ''`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_suppliers_org_siret ON suppliers (organization_id, siret) WHERE siret <> ''`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_products_org_reference ON products (organization_id, reference)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_companies_org_siren ON companies (organization_id, siren) WHERE siren <> ''`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_companies_org_siret ON companies (organization_id, siret) WHERE siret <> ''`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_companies_one_main ON companies (organization_id) WHERE is_main = true`,
}

// AutoMigrate creates the schema from the models. It serves SQLite deployments and
// tests; PostgreSQL deployments use the versioned migrations instead.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	for _, stmt := range extraIndexes {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("auto-migrate index: %w", err)
		}
	}
	return nil
}
