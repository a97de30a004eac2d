package repository

import (
	"context"

	"github.com/jhoicas/Franquicias-api/internal/domain/entity"
)

// FranchiseRepository define el puerto de persistencia para Franchise (DIP).
// Las lecturas devuelven (nil, nil) cuando la fila no existe.
type FranchiseRepository interface {
	Create(ctx context.Context, franchise *entity.Franchise) error
	GetByID(ctx context.Context, id int64) (*entity.Franchise, error)
	GetByIDWithBranches(ctx context.Context, id int64) (*entity.FranchiseWithBranches, error)
	List(ctx context.Context) ([]entity.Franchise, error)
	ListWithBranches(ctx context.Context) ([]entity.FranchiseWithBranches, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Update(ctx context.Context, franchise *entity.Franchise) error
	// Delete elimina la franquicia y, por cascada, sus sucursales y productos.
	// Devuelve domain.ErrNotFound si no afectó filas.
	Delete(ctx context.Context, id int64) error
}
