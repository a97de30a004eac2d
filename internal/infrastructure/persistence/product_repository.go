package persistence

import (
	"context"
	"time"

	"github.com/jhoicas/Franquicias-api/internal/domain/entity"
	"github.com/jhoicas/Franquicias-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre database/sql.
type ProductRepo struct {
	q       Querier
	dialect Dialect
	now     func() time.Time
}

// NewProductRepository construye el adaptador de persistencia para productos.
func NewProductRepository(q Querier, dialect Dialect, now func() time.Time) *ProductRepo {
	return &ProductRepo{q: q, dialect: dialect, now: now}
}

const productWithBranchSelect = `
		SELECT ` + productColumns + `, ` + branchColumns + `
		FROM products p
		JOIN branches b ON b.id = p.branch_id`

func productWithBranchDest(pw *entity.ProductWithBranch) []any {
	return concat(productDest(&pw.Product), branchDest(&pw.Branch))
}

// Create inserta el producto. Un branch_id inexistente se reporta como domain.ErrNotFound.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	ts := r.now()
	query := `INSERT INTO products (name, stock, branch_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?) RETURNING id`
	if err := r.q.QueryRowContext(ctx, r.dialect.Rebind(query), p.Name, p.Stock, p.BranchID, ts, ts).Scan(&p.ID); err != nil {
		return classify(r.dialect, "insert product", err)
	}
	p.CreatedAt, p.UpdatedAt = ts, ts
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products p WHERE p.id = ?`
	var p entity.Product
	found, err := scanOne(r.q.QueryRowContext(ctx, r.dialect.Rebind(query), id), "get product", productDest(&p)...)
	if err != nil || !found {
		return nil, err
	}
	return &p, nil
}

// GetByIDWithBranch obtiene el producto con su sucursal.
func (r *ProductRepo) GetByIDWithBranch(ctx context.Context, id int64) (*entity.ProductWithBranch, error) {
	query := productWithBranchSelect + ` WHERE p.id = ?`
	var pw entity.ProductWithBranch
	found, err := scanOne(r.q.QueryRowContext(ctx, r.dialect.Rebind(query), id), "get product with branch",
		productWithBranchDest(&pw)...)
	if err != nil || !found {
		return nil, err
	}
	return &pw, nil
}

// ListByBranchWithBranch lista los productos de una sucursal ordenados por ID.
func (r *ProductRepo) ListByBranchWithBranch(ctx context.Context, branchID int64) ([]entity.ProductWithBranch, error) {
	return r.listWithBranch(ctx, "list products",
		productWithBranchSelect+` WHERE p.branch_id = ? ORDER BY p.id`, branchID)
}

// TopStockByFranchiseID resuelve el máximo por sucursal en una sola consulta con subconsulta correlacionada.
func (r *ProductRepo) TopStockByFranchiseID(ctx context.Context, franchiseID int64) ([]entity.ProductWithBranch, error) {
	query := productWithBranchSelect + `
		WHERE b.franchise_id = ?
		  AND p.stock = (SELECT MAX(p2.stock) FROM products p2 WHERE p2.branch_id = p.branch_id)
		ORDER BY b.id, p.id`
	return r.listWithBranch(ctx, "top stock products", query, franchiseID)
}

func (r *ProductRepo) listWithBranch(ctx context.Context, op, query string, args ...any) ([]entity.ProductWithBranch, error) {
	rows, err := r.q.QueryContext(ctx, r.dialect.Rebind(query), args...)
	if err != nil {
		return nil, storageErr(op, err)
	}
	defer rows.Close()
	list := make([]entity.ProductWithBranch, 0)
	for rows.Next() {
		var pw entity.ProductWithBranch
		if err := rows.Scan(productWithBranchDest(&pw)...); err != nil {
			return nil, storageErr(op, err)
		}
		list = append(list, pw)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr(op, err)
	}
	return list, nil
}

// ExistsByID indica si el producto existe.
func (r *ProductRepo) ExistsByID(ctx context.Context, id int64) (bool, error) {
	return exists(ctx, r.q, r.dialect, "exists product",
		`SELECT EXISTS(SELECT 1 FROM products WHERE id = ?)`, id)
}

// ExistsByNameAndBranchID verifica la unicidad del nombre dentro de la sucursal.
func (r *ProductRepo) ExistsByNameAndBranchID(ctx context.Context, name string, branchID int64) (bool, error) {
	return exists(ctx, r.q, r.dialect, "exists product name",
		`SELECT EXISTS(SELECT 1 FROM products WHERE name = ? AND branch_id = ?)`, name, branchID)
}

// Update persiste nombre y stock y renueva updated_at.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	ts := r.now()
	err := execAffecting(ctx, r.q, r.dialect, "update product",
		`UPDATE products SET name = ?, stock = ?, updated_at = ? WHERE id = ?`, p.Name, p.Stock, ts, p.ID)
	if err != nil {
		return err
	}
	p.UpdatedAt = ts
	return nil
}

// Delete elimina el producto.
func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	return execAffecting(ctx, r.q, r.dialect, "delete product", `DELETE FROM products WHERE id = ?`, id)
}
