package persistence

import (
	"context"
	"database/sql"
	"time"

	"github.com/jhoicas/Franquicias-api/internal/domain/entity"
	"github.com/jhoicas/Franquicias-api/internal/domain/repository"
)

var _ repository.FranchiseRepository = (*FranchiseRepo)(nil)

// FranchiseRepo implementación del puerto FranchiseRepository sobre database/sql.
type FranchiseRepo struct {
	q       Querier
	dialect Dialect
	now     func() time.Time
}

// NewFranchiseRepository construye el adaptador de persistencia para franquicias.
func NewFranchiseRepository(q Querier, dialect Dialect, now func() time.Time) *FranchiseRepo {
	return &FranchiseRepo{q: q, dialect: dialect, now: now}
}

// Create inserta la franquicia y completa ID y timestamps.
func (r *FranchiseRepo) Create(ctx context.Context, f *entity.Franchise) error {
	ts := r.now()
	query := `INSERT INTO franchises (name, created_at, updated_at) VALUES (?, ?, ?) RETURNING id`
	if err := r.q.QueryRowContext(ctx, r.dialect.Rebind(query), f.Name, ts, ts).Scan(&f.ID); err != nil {
		return classify(r.dialect, "insert franchise", err)
	}
	f.CreatedAt, f.UpdatedAt = ts, ts
	return nil
}

// GetByID obtiene una franquicia por ID.
func (r *FranchiseRepo) GetByID(ctx context.Context, id int64) (*entity.Franchise, error) {
	query := `SELECT ` + franchiseColumns + ` FROM franchises f WHERE f.id = ?`
	var f entity.Franchise
	found, err := scanOne(r.q.QueryRowContext(ctx, r.dialect.Rebind(query), id), "get franchise", franchiseDest(&f)...)
	if err != nil || !found {
		return nil, err
	}
	return &f, nil
}

// GetByIDWithBranches obtiene la franquicia con sus sucursales en una sola consulta.
func (r *FranchiseRepo) GetByIDWithBranches(ctx context.Context, id int64) (*entity.FranchiseWithBranches, error) {
	list, err := r.queryWithBranches(ctx, "get franchise with branches", `WHERE f.id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return &list[0], nil
}

// List devuelve todas las franquicias sin relaciones.
func (r *FranchiseRepo) List(ctx context.Context) ([]entity.Franchise, error) {
	query := `SELECT ` + franchiseColumns + ` FROM franchises f ORDER BY f.id`
	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, storageErr("list franchises", err)
	}
	defer rows.Close()
	list := make([]entity.Franchise, 0)
	for rows.Next() {
		var f entity.Franchise
		if err := rows.Scan(franchiseDest(&f)...); err != nil {
			return nil, storageErr("scan franchise", err)
		}
		list = append(list, f)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list franchises", err)
	}
	return list, nil
}

// ListWithBranches devuelve todas las franquicias con sus sucursales (LEFT JOIN).
func (r *FranchiseRepo) ListWithBranches(ctx context.Context) ([]entity.FranchiseWithBranches, error) {
	return r.queryWithBranches(ctx, "list franchises with branches", "")
}

func (r *FranchiseRepo) queryWithBranches(ctx context.Context, op, where string, args ...any) ([]entity.FranchiseWithBranches, error) {
	query := `
		SELECT ` + franchiseColumns + `,
		       b.id, b.name, b.franchise_id, b.created_at, b.updated_at
		FROM franchises f
		LEFT JOIN branches b ON b.franchise_id = f.id
		` + where + `
		ORDER BY f.id, b.id`
	rows, err := r.q.QueryContext(ctx, r.dialect.Rebind(query), args...)
	if err != nil {
		return nil, storageErr(op, err)
	}
	defer rows.Close()

	list := make([]entity.FranchiseWithBranches, 0)
	for rows.Next() {
		var (
			f                  entity.Franchise
			bID, bFranchiseID  sql.NullInt64
			bName              sql.NullString
			bCreated, bUpdated sql.NullTime
		)
		if err := rows.Scan(concat(franchiseDest(&f), []any{&bID, &bName, &bFranchiseID, &bCreated, &bUpdated})...); err != nil {
			return nil, storageErr(op, err)
		}
		if n := len(list); n == 0 || list[n-1].ID != f.ID {
			list = append(list, entity.FranchiseWithBranches{Franchise: f, Branches: make([]entity.Branch, 0)})
		}
		if bID.Valid {
			last := &list[len(list)-1]
			last.Branches = append(last.Branches, entity.Branch{
				ID:          bID.Int64,
				Name:        bName.String,
				FranchiseID: bFranchiseID.Int64,
				CreatedAt:   bCreated.Time,
				UpdatedAt:   bUpdated.Time,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr(op, err)
	}
	return list, nil
}

// ExistsByID indica si la franquicia existe.
func (r *FranchiseRepo) ExistsByID(ctx context.Context, id int64) (bool, error) {
	return exists(ctx, r.q, r.dialect, "exists franchise",
		`SELECT EXISTS(SELECT 1 FROM franchises WHERE id = ?)`, id)
}

// ExistsByName indica si ya hay una franquicia con ese nombre exacto.
func (r *FranchiseRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	return exists(ctx, r.q, r.dialect, "exists franchise name",
		`SELECT EXISTS(SELECT 1 FROM franchises WHERE name = ?)`, name)
}

// Update persiste el nombre y renueva updated_at.
func (r *FranchiseRepo) Update(ctx context.Context, f *entity.Franchise) error {
	ts := r.now()
	err := execAffecting(ctx, r.q, r.dialect, "update franchise",
		`UPDATE franchises SET name = ?, updated_at = ? WHERE id = ?`, f.Name, ts, f.ID)
	if err != nil {
		return err
	}
	f.UpdatedAt = ts
	return nil
}

// Delete elimina la franquicia; sucursales y productos caen por ON DELETE CASCADE.
func (r *FranchiseRepo) Delete(ctx context.Context, id int64) error {
	return execAffecting(ctx, r.q, r.dialect, "delete franchise", `DELETE FROM franchises WHERE id = ?`, id)
}
