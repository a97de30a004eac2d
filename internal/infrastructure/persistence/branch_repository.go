package persistence

import (
	"context"
	"database/sql"
	"time"

	"github.com/jhoicas/Franquicias-api/internal/domain/entity"
	"github.com/jhoicas/Franquicias-api/internal/domain/repository"
)

var _ repository.BranchRepository = (*BranchRepo)(nil)

// BranchRepo implementación del puerto BranchRepository sobre database/sql.
type BranchRepo struct {
	q       Querier
	dialect Dialect
	now     func() time.Time
}

// NewBranchRepository construye el adaptador de persistencia para sucursales.
func NewBranchRepository(q Querier, dialect Dialect, now func() time.Time) *BranchRepo {
	return &BranchRepo{q: q, dialect: dialect, now: now}
}

// Create inserta la sucursal. Un franchise_id inexistente se reporta como domain.ErrNotFound.
func (r *BranchRepo) Create(ctx context.Context, b *entity.Branch) error {
	ts := r.now()
	query := `INSERT INTO branches (name, franchise_id, created_at, updated_at) VALUES (?, ?, ?, ?) RETURNING id`
	if err := r.q.QueryRowContext(ctx, r.dialect.Rebind(query), b.Name, b.FranchiseID, ts, ts).Scan(&b.ID); err != nil {
		return classify(r.dialect, "insert branch", err)
	}
	b.CreatedAt, b.UpdatedAt = ts, ts
	return nil
}

// GetByID obtiene una sucursal por ID.
func (r *BranchRepo) GetByID(ctx context.Context, id int64) (*entity.Branch, error) {
	query := `SELECT ` + branchColumns + ` FROM branches b WHERE b.id = ?`
	var b entity.Branch
	found, err := scanOne(r.q.QueryRowContext(ctx, r.dialect.Rebind(query), id), "get branch", branchDest(&b)...)
	if err != nil || !found {
		return nil, err
	}
	return &b, nil
}

// GetByIDWithFranchise obtiene la sucursal junto con su franquicia.
func (r *BranchRepo) GetByIDWithFranchise(ctx context.Context, id int64) (*entity.BranchWithFranchise, error) {
	query := `
		SELECT ` + branchColumns + `, ` + franchiseColumns + `
		FROM branches b
		JOIN franchises f ON f.id = b.franchise_id
		WHERE b.id = ?`
	var bw entity.BranchWithFranchise
	found, err := scanOne(r.q.QueryRowContext(ctx, r.dialect.Rebind(query), id), "get branch with franchise",
		concat(branchDest(&bw.Branch), franchiseDest(&bw.Franchise))...)
	if err != nil || !found {
		return nil, err
	}
	return &bw, nil
}

// GetByIDWithFranchiseAndProducts obtiene la sucursal con franquicia y productos ordenados por ID.
func (r *BranchRepo) GetByIDWithFranchiseAndProducts(ctx context.Context, id int64) (*entity.BranchDetail, error) {
	query := `
		SELECT ` + branchColumns + `, ` + franchiseColumns + `,
		       p.id, p.name, p.stock, p.branch_id, p.created_at, p.updated_at
		FROM branches b
		JOIN franchises f ON f.id = b.franchise_id
		LEFT JOIN products p ON p.branch_id = b.id
		WHERE b.id = ?
		ORDER BY p.id`
	rows, err := r.q.QueryContext(ctx, r.dialect.Rebind(query), id)
	if err != nil {
		return nil, storageErr("get branch detail", err)
	}
	defer rows.Close()

	var detail *entity.BranchDetail
	for rows.Next() {
		var (
			bw                 entity.BranchWithFranchise
			pID, pStock, pBID  sql.NullInt64
			pName              sql.NullString
			pCreated, pUpdated sql.NullTime
		)
		dest := concat(branchDest(&bw.Branch), franchiseDest(&bw.Franchise),
			[]any{&pID, &pName, &pStock, &pBID, &pCreated, &pUpdated})
		if err := rows.Scan(dest...); err != nil {
			return nil, storageErr("get branch detail", err)
		}
		if detail == nil {
			detail = &entity.BranchDetail{BranchWithFranchise: bw, Products: make([]entity.Product, 0)}
		}
		if pID.Valid {
			detail.Products = append(detail.Products, entity.Product{
				ID:        pID.Int64,
				Name:      pName.String,
				Stock:     pStock.Int64,
				BranchID:  pBID.Int64,
				CreatedAt: pCreated.Time,
				UpdatedAt: pUpdated.Time,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("get branch detail", err)
	}
	return detail, nil
}

// ListByFranchiseWithFranchise lista las sucursales de una franquicia, cada una con su franquicia.
func (r *BranchRepo) ListByFranchiseWithFranchise(ctx context.Context, franchiseID int64) ([]entity.BranchWithFranchise, error) {
	query := `
		SELECT ` + branchColumns + `, ` + franchiseColumns + `
		FROM branches b
		JOIN franchises f ON f.id = b.franchise_id
		WHERE b.franchise_id = ?
		ORDER BY b.id`
	rows, err := r.q.QueryContext(ctx, r.dialect.Rebind(query), franchiseID)
	if err != nil {
		return nil, storageErr("list branches", err)
	}
	defer rows.Close()
	list := make([]entity.BranchWithFranchise, 0)
	for rows.Next() {
		var bw entity.BranchWithFranchise
		if err := rows.Scan(concat(branchDest(&bw.Branch), franchiseDest(&bw.Franchise))...); err != nil {
			return nil, storageErr("scan branch", err)
		}
		list = append(list, bw)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list branches", err)
	}
	return list, nil
}

// ExistsByID indica si la sucursal existe.
func (r *BranchRepo) ExistsByID(ctx context.Context, id int64) (bool, error) {
	return exists(ctx, r.q, r.dialect, "exists branch",
		`SELECT EXISTS(SELECT 1 FROM branches WHERE id = ?)`, id)
}

// ExistsByNameAndFranchiseID verifica la unicidad del nombre dentro de la franquicia.
func (r *BranchRepo) ExistsByNameAndFranchiseID(ctx context.Context, name string, franchiseID int64) (bool, error) {
	return exists(ctx, r.q, r.dialect, "exists branch name",
		`SELECT EXISTS(SELECT 1 FROM branches WHERE name = ? AND franchise_id = ?)`, name, franchiseID)
}

// Update persiste el nombre y renueva updated_at. La franquicia dueña no cambia.
func (r *BranchRepo) Update(ctx context.Context, b *entity.Branch) error {
	ts := r.now()
	err := execAffecting(ctx, r.q, r.dialect, "update branch",
		`UPDATE branches SET name = ?, updated_at = ? WHERE id = ?`, b.Name, ts, b.ID)
	if err != nil {
		return err
	}
	b.UpdatedAt = ts
	return nil
}

// Delete elimina la sucursal y sus productos.
func (r *BranchRepo) Delete(ctx context.Context, id int64) error {
	return execAffecting(ctx, r.q, r.dialect, "delete branch", `DELETE FROM branches WHERE id = ?`, id)
}
