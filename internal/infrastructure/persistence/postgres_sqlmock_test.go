package persistence_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Franquicias-api/internal/domain"
	"github.com/jhoicas/Franquicias-api/internal/domain/entity"
	"github.com/jhoicas/Franquicias-api/internal/domain/repository"
	"github.com/jhoicas/Franquicias-api/internal/infrastructure/persistence"
	"github.com/jhoicas/Franquicias-api/internal/infrastructure/persistence/postgres"
)

// Estas pruebas fijan la forma del SQL enviado a PostgreSQL ($n) y la traducción de SQLSTATE.

func newMockStore(t *testing.T) (*persistence.Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return persistence.NewStore(db, postgres.Dialect{}), mock
}

func TestPostgres_CreateFranchiseUsesDollarPlaceholders(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO franchises (name, created_at, updated_at) VALUES ($1, $2, $3) RETURNING id`)).
		WithArgs("Acme", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	f := &entity.Franchise{Name: "Acme"}
	require.NoError(t, store.Repos().Franchises.Create(context.Background(), f))
	assert.EqualValues(t, 7, f.ID)
}

func TestPostgres_UniqueViolationMapsToDuplicate(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`INSERT INTO franchises`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "uq_franchises_name"})

	err := store.Repos().Franchises.Create(context.Background(), &entity.Franchise{Name: "Acme"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestPostgres_ForeignKeyViolationMapsToNotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO branches (name, franchise_id, created_at, updated_at) VALUES ($1, $2, $3, $4) RETURNING id`)).
		WithArgs("North", int64(99), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23503"})

	err := store.Repos().Branches.Create(context.Background(), &entity.Branch{Name: "North", FranchiseID: 99})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPostgres_OtherErrorsAreStorageFailures(t *testing.T) {
	store, mock := newMockStore(t)
	boom := errors.New("conexión perdida")

	mock.ExpectQuery(`SELECT EXISTS`).WithArgs("Acme").WillReturnError(boom)

	_, err := store.Repos().Franchises.ExistsByName(context.Background(), "Acme")
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.ErrorIs(t, err, boom)
}

func TestPostgres_DeleteWithoutRowsIsNotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM products WHERE id = $1`)).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.Repos().Products.Delete(context.Background(), 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPostgres_TopStockQueryShape(t *testing.T) {
	store, mock := newMockStore(t)

	cols := []string{
		"id", "name", "stock", "branch_id", "created_at", "updated_at",
		"id", "name", "franchise_id", "created_at", "updated_at",
	}
	mock.ExpectQuery(`(?s)FROM products p\s+JOIN branches b ON b.id = p.branch_id\s+WHERE b.franchise_id = \$1\s+AND p.stock = \(SELECT MAX\(p2.stock\) FROM products p2 WHERE p2.branch_id = p.branch_id\)\s+ORDER BY b.id, p.id`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(cols))

	rows, err := store.Repos().Products.TopStockByFranchiseID(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestPostgres_TxRunnerRollsBackOnError(t *testing.T) {
	store, mock := newMockStore(t)
	runner := persistence.NewTxRunner(store)

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := runner.Run(context.Background(), func(repository.Repos) error {
		return domain.ErrNotFound
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPostgres_TxRunnerCommitFailureIsStorage(t *testing.T) {
	store, mock := newMockStore(t)
	runner := persistence.NewTxRunner(store)

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errors.New("commit falló"))

	err := runner.Run(context.Background(), func(repository.Repos) error { return nil })
	assert.ErrorIs(t, err, domain.ErrStorage)
}
