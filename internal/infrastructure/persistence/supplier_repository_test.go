package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/partner"
	"github.com/orgdesk/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormSupplierRepository_FindByID(t *testing.T) {
	t.Run("finds supplier within organization", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewGormSupplierRepository(db)
		orgID, id := uuid.New(), uuid.New()
		now := time.Now()

		rows := sqlmock.NewRows([]string{"id", "organization_id", "created_at", "updated_at", "version", "reference", "name", "type", "status", "payment_terms_days"}).
			AddRow(id, orgID, now, now, 2, "SUP-001", "Acme Supplies", "DISTRIBUTOR", "ACTIVE", 45)

		mock.ExpectQuery(`SELECT \* FROM "suppliers" WHERE organization_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(orgID, id, 1).
			WillReturnRows(rows)

		supplier, err := repo.FindByID(context.Background(), orgID, id)
		require.NoError(t, err)
		assert.Equal(t, id, supplier.ID)
		assert.Equal(t, orgID, supplier.OrganizationID)
		assert.Equal(t, "SUP-001", supplier.Reference)
		assert.Equal(t, partner.SupplierTypeDistributor, supplier.Type)
		assert.Equal(t, partner.SupplierStatusActive, supplier.Status)
		assert.Equal(t, 45, supplier.PaymentTermsDays)
		assert.Equal(t, 2, supplier.Version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing supplier is NOT_FOUND", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewGormSupplierRepository(db)

		mock.ExpectQuery(`SELECT \* FROM "suppliers" WHERE organization_id = \$1 AND id = \$2`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.FindByID(context.Background(), uuid.New(), uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormSupplierRepository_ExistsBy(t *testing.T) {
	t.Run("reports a taken reference", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewGormSupplierRepository(db)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "suppliers" WHERE "organization_id" = \$1 AND "reference" = \$2`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		taken, err := repo.ExistsBy(context.Background(), uuid.New(), partner.UniqueReference, "SUP-001", nil)
		require.NoError(t, err)
		assert.True(t, taken)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("excludes the record being updated", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewGormSupplierRepository(db)
		self := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "suppliers" WHERE "organization_id" = \$1 AND "siren" = \$2 AND "id" <> \$3`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		taken, err := repo.ExistsBy(context.Background(), uuid.New(), partner.UniqueSIREN, "732829320", &self)
		require.NoError(t, err)
		assert.False(t, taken)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormSupplierRepository_Save_VersionGuard(t *testing.T) {
	newSupplier := func(t *testing.T) *partner.Supplier {
		t.Helper()
		s, err := partner.NewSupplier(uuid.New(), partner.SupplierTypeDistributor, 30, partner.PartyDetails{Reference: "SUP-001", Name: "Acme Supplies"})
		require.NoError(t, err)
		return s
	}

	t.Run("an update is guarded by the stored version", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewGormSupplierRepository(db)
		supplier := newSupplier(t)
		supplier.MarkStored()
		require.NoError(t, supplier.Update(partner.SupplierTypeDistributor, 30, partner.PartyDetails{Reference: "SUP-001", Name: "Acme"}))

		mock.ExpectExec(`UPDATE "suppliers" SET .* WHERE version = \$\d+ AND .*"id" = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Save(context.Background(), supplier)
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
		assert.Equal(t, 1, supplier.StoredVersion(), "a rejected save keeps the version it was read at")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormSupplierRepository_Delete(t *testing.T) {
	t.Run("removes owned records and unlinks products", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewGormSupplierRepository(db)
		orgID, id := uuid.New(), uuid.New()

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "addresses" WHERE organization_id = \$1 AND owner_type = \$2 AND owner_id = \$3`).
			WithArgs(orgID, partner.OwnerSupplier, id).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(`DELETE FROM "contacts" WHERE organization_id = \$1 AND owner_type = \$2 AND owner_id = \$3`).
			WithArgs(orgID, partner.OwnerSupplier, id).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE "products" SET "supplier_id"=\$1`).
			WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectExec(`DELETE FROM "suppliers" WHERE organization_id = \$1 AND id = \$2`).
			WithArgs(orgID, id).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.Delete(context.Background(), orgID, id))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nothing deleted rolls back as NOT_FOUND", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewGormSupplierRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "addresses"`).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`DELETE FROM "contacts"`).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`UPDATE "products"`).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`DELETE FROM "suppliers"`).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.Delete(context.Background(), uuid.New(), uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error rolls back", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewGormSupplierRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "addresses"`).WillReturnError(sql.ErrConnDone)
		mock.ExpectRollback()

		err := repo.Delete(context.Background(), uuid.New(), uuid.New())
		assert.ErrorIs(t, err, sql.ErrConnDone)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
