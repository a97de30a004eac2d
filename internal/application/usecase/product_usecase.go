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

// ProductUseCase casos de uso de productos.
type ProductUseCase struct {
	uow unitOfWork
	log *logger.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(pool Dispatcher, tx TxRunner, tracer trace.Tracer, log *logger.Logger) *ProductUseCase {
	return &ProductUseCase{
		uow: unitOfWork{pool: pool, tx: tx, tracer: tracer},
		log: log.Named("product"),
	}
}

// Create crea un producto en una sucursal existente; el nombre es único dentro de ella.
// El stock llega validado (no negativo) desde la capa HTTP.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	var stock int64
	if in.Stock != nil {
		stock = *in.Stock
	}
	var out dto.ProductResponse
	err := uc.uow.run(ctx, "product.create", func(ctx context.Context, r repository.Repos) error {
		exists, err := r.Branches.ExistsByID(ctx, in.BranchID)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("sucursal %d: %w", in.BranchID, domain.ErrNotFound)
		}
		dup, err := r.Products.ExistsByNameAndBranchID(ctx, in.Name, in.BranchID)
		if err != nil {
			return err
		}
		if dup {
			return fmt.Errorf("producto %q en sucursal %d: %w", in.Name, in.BranchID, domain.ErrDuplicate)
		}
		p := &entity.Product{Name: in.Name, Stock: stock, BranchID: in.BranchID}
		if err := r.Products.Create(ctx, p); err != nil {
			return err
		}
		return uc.reload(ctx, r, p.ID, &out)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("product_id", out.ID).Int64("branch_id", out.BranchID).Int64("stock", out.Stock).Msg("producto creado")
	return &out, nil
}

// GetByID obtiene el producto con su sucursal. (nil, nil) si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	var out *dto.ProductResponse
	err := uc.uow.run(ctx, "product.get", func(ctx context.Context, r repository.Repos) error {
		p, err := r.Products.GetByIDWithBranch(ctx, id)
		if err != nil || p == nil {
			return err
		}
		res := projection.ProductFull(*p)
		out = &res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListByBranch lista los productos de una sucursal.
func (uc *ProductUseCase) ListByBranch(ctx context.Context, branchID int64) ([]dto.ProductResponse, error) {
	var out []dto.ProductResponse
	err := uc.uow.run(ctx, "product.list", func(ctx context.Context, r repository.Repos) error {
		list, err := r.Products.ListByBranchWithBranch(ctx, branchID)
		if err != nil {
			return err
		}
		out = projection.ProductsShallow(list)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateName renombra el producto. Mantener el mismo nombre no valida unicidad.
func (uc *ProductUseCase) UpdateName(ctx context.Context, id int64, name string) (*dto.ProductResponse, error) {
	return uc.update(ctx, "product.update_name", id, func(ctx context.Context, r repository.Repos, p *entity.ProductWithBranch) error {
		if p.Name == name {
			return nil
		}
		dup, err := r.Products.ExistsByNameAndBranchID(ctx, name, p.BranchID)
		if err != nil {
			return err
		}
		if dup {
			return fmt.Errorf("producto %q en sucursal %d: %w", name, p.BranchID, domain.ErrDuplicate)
		}
		p.Name = name
		return nil
	})
}

// UpdateStock fija el stock del producto.
func (uc *ProductUseCase) UpdateStock(ctx context.Context, id int64, stock int64) (*dto.ProductResponse, error) {
	return uc.update(ctx, "product.update_stock", id, func(_ context.Context, _ repository.Repos, p *entity.ProductWithBranch) error {
		p.Stock = stock
		return nil
	})
}

// update carga el producto con su sucursal, aplica mutate, persiste y vuelve a leer.
func (uc *ProductUseCase) update(
	ctx context.Context,
	name string,
	id int64,
	mutate func(ctx context.Context, r repository.Repos, p *entity.ProductWithBranch) error,
) (*dto.ProductResponse, error) {
	var out dto.ProductResponse
	err := uc.uow.run(ctx, name, func(ctx context.Context, r repository.Repos) error {
		p, err := r.Products.GetByIDWithBranch(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("producto %d: %w", id, domain.ErrNotFound)
		}
		if err := mutate(ctx, r, p); err != nil {
			return err
		}
		if err := r.Products.Update(ctx, &p.Product); err != nil {
			return err
		}
		return uc.reload(ctx, r, id, &out)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("op", name).Int64("product_id", id).Str("name", out.Name).Int64("stock", out.Stock).Msg("producto actualizado")
	return &out, nil
}

// Delete elimina el producto.
func (uc *ProductUseCase) Delete(ctx context.Context, id int64) error {
	err := uc.uow.run(ctx, "product.delete", func(ctx context.Context, r repository.Repos) error {
		exists, err := r.Products.ExistsByID(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("producto %d: %w", id, domain.ErrNotFound)
		}
		return r.Products.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Int64("product_id", id).Msg("producto eliminado")
	return nil
}

func (uc *ProductUseCase) reload(ctx context.Context, r repository.Repos, id int64, out *dto.ProductResponse) error {
	p, err := r.Products.GetByIDWithBranch(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("producto %d tras guardar: %w", id, domain.ErrNotFound)
	}
	*out = projection.ProductShallow(*p)
	return nil
}
