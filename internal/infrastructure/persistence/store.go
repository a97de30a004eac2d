package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jhoicas/Franquicias-api/internal/domain/repository"
)

// Store es el almacén relacional de franquicias, sucursales y productos.
// Envuelve un *sql.DB (pgx o sqlite) junto con su dialecto.
type Store struct {
	db      *sql.DB
	dialect Dialect
	now     func() time.Time
}

// Option configura el Store.
type Option func(*Store)

// WithClock reemplaza el reloj usado para created_at/updated_at.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore construye el almacén sobre una conexión ya abierta.
func NewStore(db *sql.DB, dialect Dialect, opts ...Option) *Store {
	s := &Store{
		db:      db,
		dialect: dialect,
		now:     func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Migrate aplica las migraciones embebidas del dialecto.
func (s *Store) Migrate(ctx context.Context) error {
	return ApplyMigrations(ctx, s.db, s.dialect)
}

// Ping verifica la conectividad con la base de datos.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping %s: %w", s.dialect.Name(), err)
	}
	return nil
}

// Close libera el pool de conexiones.
func (s *Store) Close() error {
	return s.db.Close()
}

// Repos devuelve repositorios atados al pool (fuera de transacción).
func (s *Store) Repos() repository.Repos {
	return s.reposFor(s.db)
}

func (s *Store) reposFor(q Querier) repository.Repos {
	return repository.Repos{
		Franchises: NewFranchiseRepository(q, s.dialect, s.now),
		Branches:   NewBranchRepository(q, s.dialect, s.now),
		Products:   NewProductRepository(q, s.dialect, s.now),
	}
}
