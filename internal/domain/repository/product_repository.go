package repository

import (
	"context"

	"github.com/jhoicas/Franquicias-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	GetByIDWithBranch(ctx context.Context, id int64) (*entity.ProductWithBranch, error)
	ListByBranchWithBranch(ctx context.Context, branchID int64) ([]entity.ProductWithBranch, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	ExistsByNameAndBranchID(ctx context.Context, name string, branchID int64) (bool, error)
	// Update persiste nombre y stock.
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id int64) error
	// TopStockByFranchiseID devuelve, por cada sucursal de la franquicia, los productos cuyo stock
	// es el máximo de esa sucursal. Los empates se devuelven todos; sucursales sin productos no aportan filas.
	TopStockByFranchiseID(ctx context.Context, franchiseID int64) ([]entity.ProductWithBranch, error)
}
