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
	"github.com/jhoicas/Franquicias-api/internal/platform/metrics"
	"github.com/jhoicas/Franquicias-api/pkg/logger"
)

// UnknownFranchiseName se usa en el reporte de top stock cuando la franquicia no existe.
const UnknownFranchiseName = "Unknown"

// FranchiseUseCase casos de uso de franquicias.
type FranchiseUseCase struct {
	uow unitOfWork
	log *logger.Logger
}

// NewFranchiseUseCase construye el caso de uso.
func NewFranchiseUseCase(pool Dispatcher, tx TxRunner, tracer trace.Tracer, log *logger.Logger) *FranchiseUseCase {
	return &FranchiseUseCase{
		uow: unitOfWork{pool: pool, tx: tx, tracer: tracer},
		log: log.Named("franchise"),
	}
}

// Create crea una franquicia con nombre único.
func (uc *FranchiseUseCase) Create(ctx context.Context, in dto.CreateFranchiseRequest) (*dto.FranchiseResponse, error) {
	var out dto.FranchiseResponse
	err := uc.uow.run(ctx, "franchise.create", func(ctx context.Context, r repository.Repos) error {
		exists, err := r.Franchises.ExistsByName(ctx, in.Name)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("franquicia %q: %w", in.Name, domain.ErrDuplicate)
		}
		f := &entity.Franchise{Name: in.Name}
		if err := r.Franchises.Create(ctx, f); err != nil {
			return err
		}
		saved, err := r.Franchises.GetByID(ctx, f.ID)
		if err != nil {
			return err
		}
		if saved == nil {
			return fmt.Errorf("franquicia %d tras guardar: %w", f.ID, domain.ErrNotFound)
		}
		out = projection.FranchiseShallow(*saved)
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("franchise_id", out.ID).Str("name", out.Name).Msg("franquicia creada")
	return &out, nil
}

// GetByID obtiene la franquicia con sus sucursales. (nil, nil) si no existe.
func (uc *FranchiseUseCase) GetByID(ctx context.Context, id int64) (*dto.FranchiseResponse, error) {
	var out *dto.FranchiseResponse
	err := uc.uow.run(ctx, "franchise.get", func(ctx context.Context, r repository.Repos) error {
		f, err := r.Franchises.GetByIDWithBranches(ctx, id)
		if err != nil || f == nil {
			return err
		}
		res := projection.FranchiseFull(*f)
		out = &res
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Debug().Int64("franchise_id", id).Bool("found", out != nil).Msg("franquicia consultada")
	return out, nil
}

// List devuelve todas las franquicias con sus sucursales. Si la consulta con sucursales falla,
// responde con el listado simple (sin sucursales) en una unidad de trabajo nueva.
func (uc *FranchiseUseCase) List(ctx context.Context) ([]dto.FranchiseResponse, error) {
	var out []dto.FranchiseResponse
	err := uc.uow.run(ctx, "franchise.list", func(ctx context.Context, r repository.Repos) error {
		list, err := r.Franchises.ListWithBranches(ctx)
		if err != nil {
			return err
		}
		out = make([]dto.FranchiseResponse, 0, len(list))
		for _, f := range list {
			out = append(out, projection.FranchiseFull(f))
		}
		return nil
	})
	if err == nil {
		return out, nil
	}

	metrics.ListFallbacks.Inc()
	uc.log.Warn().Err(err).Stringer("shape", projection.Bare).Msg("listado de franquicias con sucursales falló; se devuelve sin sucursales")

	err = uc.uow.run(ctx, "franchise.list_bare", func(ctx context.Context, r repository.Repos) error {
		list, err := r.Franchises.List(ctx)
		if err != nil {
			return err
		}
		out = make([]dto.FranchiseResponse, 0, len(list))
		for _, f := range list {
			out = append(out, projection.FranchiseBare(f))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateName renombra la franquicia. Mantener el mismo nombre no valida unicidad.
func (uc *FranchiseUseCase) UpdateName(ctx context.Context, id int64, name string) (*dto.FranchiseResponse, error) {
	var out dto.FranchiseResponse
	err := uc.uow.run(ctx, "franchise.update_name", func(ctx context.Context, r repository.Repos) error {
		f, err := r.Franchises.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if f == nil {
			return fmt.Errorf("franquicia %d: %w", id, domain.ErrNotFound)
		}
		if f.Name != name {
			exists, err := r.Franchises.ExistsByName(ctx, name)
			if err != nil {
				return err
			}
			if exists {
				return fmt.Errorf("franquicia %q: %w", name, domain.ErrDuplicate)
			}
		}
		f.Name = name
		if err := r.Franchises.Update(ctx, f); err != nil {
			return err
		}
		saved, err := r.Franchises.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if saved == nil {
			return fmt.Errorf("franquicia %d tras guardar: %w", id, domain.ErrNotFound)
		}
		out = projection.FranchiseShallow(*saved)
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("franchise_id", id).Str("name", name).Msg("franquicia renombrada")
	return &out, nil
}

// Delete elimina la franquicia con sus sucursales y productos.
func (uc *FranchiseUseCase) Delete(ctx context.Context, id int64) error {
	err := uc.uow.run(ctx, "franchise.delete", func(ctx context.Context, r repository.Repos) error {
		exists, err := r.Franchises.ExistsByID(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("franquicia %d: %w", id, domain.ErrNotFound)
		}
		return r.Franchises.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Int64("franchise_id", id).Msg("franquicia eliminada")
	return nil
}

// TopStockProducts devuelve el producto de mayor stock de cada sucursal (todos, si hay empate).
// Una franquicia inexistente produce un reporte vacío con nombre UnknownFranchiseName.
func (uc *FranchiseUseCase) TopStockProducts(ctx context.Context, franchiseID int64) (*dto.TopStockProductsResponse, error) {
	var out dto.TopStockProductsResponse
	err := uc.uow.run(ctx, "franchise.top_stock", func(ctx context.Context, r repository.Repos) error {
		f, err := r.Franchises.GetByID(ctx, franchiseID)
		if err != nil {
			return err
		}
		if f == nil {
			out = projection.TopStock(franchiseID, UnknownFranchiseName, nil)
			return nil
		}
		rows, err := r.Products.TopStockByFranchiseID(ctx, franchiseID)
		if err != nil {
			return err
		}
		out = projection.TopStock(f.ID, f.Name, rows)
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Debug().Int64("franchise_id", franchiseID).Int("rows", len(out.BranchTopProducts)).Msg("top stock calculado")
	return &out, nil
}
