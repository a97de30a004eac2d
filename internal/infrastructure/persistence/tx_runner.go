package persistence

import (
	"context"
	"fmt"

	"github.com/jhoicas/Franquicias-api/internal/domain/repository"
)

// TxRunner ejecuta callbacks dentro de una transacción.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner con el almacén.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// La conexión se libera en todas las salidas (éxito, error de negocio o de almacenamiento).
func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.Repos) error) error {
	tx, err := r.store.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("begin transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(r.store.reposFor(tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return storageErr("commit transaction", fmt.Errorf("%s: %w", r.store.dialect.Name(), err))
	}
	return nil
}
