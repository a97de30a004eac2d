package persistence

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jhoicas/Franquicias-api/internal/domain"
	"github.com/jhoicas/Franquicias-api/internal/domain/entity"
)

const (
	franchiseColumns = `f.id, f.name, f.created_at, f.updated_at`
	branchColumns    = `b.id, b.name, b.franchise_id, b.created_at, b.updated_at`
	productColumns   = `p.id, p.name, p.stock, p.branch_id, p.created_at, p.updated_at`
)

func franchiseDest(f *entity.Franchise) []any {
	return []any{&f.ID, &f.Name, &f.CreatedAt, &f.UpdatedAt}
}

func branchDest(b *entity.Branch) []any {
	return []any{&b.ID, &b.Name, &b.FranchiseID, &b.CreatedAt, &b.UpdatedAt}
}

func productDest(p *entity.Product) []any {
	return []any{&p.ID, &p.Name, &p.Stock, &p.BranchID, &p.CreatedAt, &p.UpdatedAt}
}

func concat(groups ...[]any) []any {
	var out []any
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// scanOne ejecuta Scan y traduce sql.ErrNoRows a (false, nil).
func scanOne(row scanner, op string, dest ...any) (bool, error) {
	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, storageErr(op, err)
	}
	return true, nil
}

func exists(ctx context.Context, q Querier, d Dialect, op, query string, args ...any) (bool, error) {
	var ok bool
	if err := q.QueryRowContext(ctx, d.Rebind(query), args...).Scan(&ok); err != nil {
		return false, storageErr(op, err)
	}
	return ok, nil
}

// execAffecting ejecuta una sentencia que debe tocar al menos una fila.
func execAffecting(ctx context.Context, q Querier, d Dialect, op, query string, args ...any) error {
	res, err := q.ExecContext(ctx, d.Rebind(query), args...)
	if err != nil {
		return classify(d, op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storageErr(op, err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
