package usecase

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/Franquicias-api/internal/application/dto"
	"github.com/jhoicas/Franquicias-api/internal/application/projection"
	"github.com/jhoicas/Franquicias-api/internal/domain"
	"github.com/jhoicas/Franquicias-api/internal/domain/entity"
	"github.com/jhoicas/Franquicias-api/internal/domain/repository"
	"github.com/jhoicas/Franquicias-api/pkg/logger"
)

// BranchUseCase casos de uso de sucursales.
type BranchUseCase struct {
	uow unitOfWork
	log *logger.Logger
}

// NewBranchUseCase construye el caso de uso.
func NewBranchUseCase(pool Dispatcher, tx TxRunner, tracer trace.Tracer, log *logger.Logger) *BranchUseCase {
	return &BranchUseCase{
		uow: unitOfWork{pool: pool, tx: tx, tracer: tracer},
		log: log.Named("branch"),
	}
}

// Create crea una sucursal en una franquicia existente; el nombre es único dentro de ella.
func (uc *BranchUseCase) Create(ctx context.Context, in dto.CreateBranchRequest) (*dto.BranchResponse, error) {
	var out dto.BranchResponse
	err := uc.uow.run(ctx, "branch.create", func(ctx context.Context, r repository.Repos) error {
		exists, err := r.Franchises.ExistsByID(ctx, in.FranchiseID)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("franquicia %d: %w", in.FranchiseID, domain.ErrNotFound)
		}
		dup, err := r.Branches.ExistsByNameAndFranchiseID(ctx, in.Name, in.FranchiseID)
		if err != nil {
			return err
		}
		if dup {
			return fmt.Errorf("sucursal %q en franquicia %d: %w", in.Name, in.FranchiseID, domain.ErrDuplicate)
		}
		b := &entity.Branch{Name: in.Name, FranchiseID: in.FranchiseID}
		if err := r.Branches.Create(ctx, b); err != nil {
			return err
		}
		return uc.reload(ctx, r, b.ID, &out)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("branch_id", out.ID).Int64("franchise_id", out.FranchiseID).Msg("sucursal creada")
	return &out, nil
}

// GetByID obtiene la sucursal con su franquicia y productos. (nil, nil) si no existe.
func (uc *BranchUseCase) GetByID(ctx context.Context, id int64) (*dto.BranchResponse, error) {
	var out *dto.BranchResponse
	err := uc.uow.run(ctx, "branch.get", func(ctx context.Context, r repository.Repos) error {
		b, err := r.Branches.GetByIDWithFranchiseAndProducts(ctx, id)
		if err != nil || b == nil {
			return err
		}
		res := projection.BranchFull(*b)
		out = &res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListByFranchise lista las sucursales de una franquicia; lista vacía si no tiene.
func (uc *BranchUseCase) ListByFranchise(ctx context.Context, franchiseID int64) ([]dto.BranchResponse, error) {
	var out []dto.BranchResponse
	err := uc.uow.run(ctx, "branch.list", func(ctx context.Context, r repository.Repos) error {
		list, err := r.Branches.ListByFranchiseWithFranchise(ctx, franchiseID)
		if err != nil {
			return err
		}
		out = projection.BranchesShallow(list)
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Debug().Int64("franchise_id", franchiseID).Int("count", len(out)).Msg("sucursales listadas")
	return out, nil
}

// UpdateName renombra la sucursal. Mantener el mismo nombre no valida unicidad.
func (uc *BranchUseCase) UpdateName(ctx context.Context, id int64, name string) (*dto.BranchResponse, error) {
	var out dto.BranchResponse
	err := uc.uow.run(ctx, "branch.update_name", func(ctx context.Context, r repository.Repos) error {
		b, err := r.Branches.GetByIDWithFranchise(ctx, id)
		if err != nil {
			return err
		}
		if b == nil {
			return fmt.Errorf("sucursal %d: %w", id, domain.ErrNotFound)
		}
		if b.Name != name {
			dup, err := r.Branches.ExistsByNameAndFranchiseID(ctx, name, b.FranchiseID)
			if err != nil {
				return err
			}
			if dup {
				return fmt.Errorf("sucursal %q en franquicia %d: %w", name, b.FranchiseID, domain.ErrDuplicate)
			}
		}
		b.Name = name
		if err := r.Branches.Update(ctx, &b.Branch); err != nil {
			return err
		}
		return uc.reload(ctx, r, id, &out)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("branch_id", id).Str("name", name).Msg("sucursal renombrada")
	return &out, nil
}

// Delete elimina la sucursal y sus productos.
func (uc *BranchUseCase) Delete(ctx context.Context, id int64) error {
	err := uc.uow.run(ctx, "branch.delete", func(ctx context.Context, r repository.Repos) error {
		exists, err := r.Branches.ExistsByID(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("sucursal %d: %w", id, domain.ErrNotFound)
		}
		return r.Branches.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Int64("branch_id", id).Msg("sucursal eliminada")
	return nil
}

func (uc *BranchUseCase) reload(ctx context.Context, r repository.Repos, id int64, out *dto.BranchResponse) error {
	b, err := r.Branches.GetByIDWithFranchise(ctx, id)
	if err != nil {
		return err
	}
	if b == nil {
		return fmt.Errorf("sucursal %d tras guardar: %w", id, domain.ErrNotFound)
	}
	*out = projection.BranchShallow(*b)
	return nil
}
