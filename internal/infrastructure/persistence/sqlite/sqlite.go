// Package sqlite abre el almacén embebido sobre modernc.org/sqlite (sin cgo).
// Se usa en desarrollo local y en las pruebas.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/jhoicas/Franquicias-api/internal/infrastructure/persistence"
	"github.com/jhoicas/Franquicias-api/pkg/config"
	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Dialect implementa persistence.Dialect para SQLite.
type Dialect struct{}

var _ persistence.Dialect = Dialect{}

func (Dialect) Name() string                { return config.DriverSQLite }
func (Dialect) Rebind(query string) string { return query }

func (Dialect) IsUniqueViolation(err error) bool {
	return hasCode(err, sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY) ||
		containsMessage(err, "UNIQUE constraint failed")
}

func (Dialect) IsForeignKeyViolation(err error) bool {
	return hasCode(err, sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY) ||
		containsMessage(err, "FOREIGN KEY constraint failed")
}

func hasCode(err error, codes ...int) bool {
	var sqlErr *msqlite.Error
	if !errors.As(err, &sqlErr) {
		return false
	}
	for _, c := range codes {
		if sqlErr.Code() == c {
			return true
		}
	}
	return false
}

func containsMessage(err error, msg string) bool {
	return err != nil && strings.Contains(err.Error(), msg)
}

// Open abre (o crea) la base en path con llaves foráneas activas.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("ruta sqlite requerida")
	}
	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite: %w", err)
	}
	// Un único escritor evita SQLITE_BUSY entre transacciones concurrentes.
	db.SetMaxOpenConns(1)

	if err := ensureForeignKeysEnabled(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func dsn(path string) string {
	q := url.Values{}
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", "busy_timeout(5000)")
	q.Set("_time_format", "sqlite")
	return "file:" + path + "?" + q.Encode()
}

func ensureForeignKeysEnabled(ctx context.Context, db *sql.DB) error {
	var enabled int
	if err := db.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&enabled); err != nil {
		return fmt.Errorf("verificar foreign_keys: %w", err)
	}
	if enabled != 1 {
		return fmt.Errorf("sqlite foreign_keys deshabilitado")
	}
	return nil
}
