package repository

import (
	"context"

	"github.com/jhoicas/Franquicias-api/internal/domain/entity"
)

// BranchRepository define el puerto de persistencia para Branch (DIP).
type BranchRepository interface {
	Create(ctx context.Context, branch *entity.Branch) error
	GetByID(ctx context.Context, id int64) (*entity.Branch, error)
	GetByIDWithFranchise(ctx context.Context, id int64) (*entity.BranchWithFranchise, error)
	GetByIDWithFranchiseAndProducts(ctx context.Context, id int64) (*entity.BranchDetail, error)
	ListByFranchiseWithFranchise(ctx context.Context, franchiseID int64) ([]entity.BranchWithFranchise, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	ExistsByNameAndFranchiseID(ctx context.Context, name string, franchiseID int64) (bool, error)
	Update(ctx context.Context, branch *entity.Branch) error
	Delete(ctx context.Context, id int64) error
}
