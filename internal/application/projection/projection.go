// Package projection convierte entidades en respuestas con una forma explícita.
//
// Cada tipo de entidad tiene una sola rutina de conversión parametrizada por Shape. Las funciones
// exportadas solo aceptan la variante de entidad que ya trae cargadas las relaciones que esa forma
// necesita, de modo que no existe forma de proyectar una relación no cargada.
package projection

import (
	"github.com/jhoicas/Franquicias-api/internal/application/dto"
	"github.com/jhoicas/Franquicias-api/internal/domain/entity"
)

// Shape selecciona cuánto de las relaciones se incluye en la respuesta.
type Shape int

const (
	// Bare solo campos propios; ningún campo derivado de relaciones.
	Bare Shape = iota
	// Shallow campos propios y del padre; hijos como lista vacía.
	Shallow
	// Full campos propios, del padre y un nivel de hijos (cada hijo en Shallow).
	Full
)

func (s Shape) String() string {
	switch s {
	case Bare:
		return "bare"
	case Shallow:
		return "shallow"
	case Full:
		return "full"
	default:
		return "unknown"
	}
}

// ─── Franchise ─────────────────────────────────────────────────────────────

// FranchiseBare proyecta una franquicia sin sucursales (branches = null).
func FranchiseBare(f entity.Franchise) dto.FranchiseResponse {
	return franchise(f, nil, Bare)
}

// FranchiseShallow proyecta una franquicia con branches = [].
func FranchiseShallow(f entity.Franchise) dto.FranchiseResponse {
	return franchise(f, nil, Shallow)
}

// FranchiseFull proyecta una franquicia con sus sucursales, sin productos.
func FranchiseFull(f entity.FranchiseWithBranches) dto.FranchiseResponse {
	return franchise(f.Franchise, f.Branches, Full)
}

func franchise(f entity.Franchise, branches []entity.Branch, shape Shape) dto.FranchiseResponse {
	out := dto.FranchiseResponse{
		ID:        f.ID,
		Name:      f.Name,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
	switch shape {
	case Shallow:
		out.Branches = []dto.BranchResponse{}
	case Full:
		out.Branches = make([]dto.BranchResponse, 0, len(branches))
		for _, b := range branches {
			out.Branches = append(out.Branches, branch(b, &f, nil, Shallow))
		}
	}
	return out
}

// ─── Branch ────────────────────────────────────────────────────────────────

// BranchBare proyecta una sucursal sin datos de franquicia ni productos.
func BranchBare(b entity.Branch) dto.BranchResponse {
	return branch(b, nil, nil, Bare)
}

// BranchShallow proyecta una sucursal con su franquicia y products = [].
func BranchShallow(b entity.BranchWithFranchise) dto.BranchResponse {
	return branch(b.Branch, &b.Franchise, nil, Shallow)
}

// BranchFull proyecta una sucursal con franquicia y productos.
func BranchFull(b entity.BranchDetail) dto.BranchResponse {
	return branch(b.Branch, &b.Franchise, b.Products, Full)
}

// BranchesShallow proyecta un listado de sucursales.
func BranchesShallow(list []entity.BranchWithFranchise) []dto.BranchResponse {
	out := make([]dto.BranchResponse, 0, len(list))
	for _, b := range list {
		out = append(out, BranchShallow(b))
	}
	return out
}

func branch(b entity.Branch, owner *entity.Franchise, products []entity.Product, shape Shape) dto.BranchResponse {
	out := dto.BranchResponse{
		ID:        b.ID,
		Name:      b.Name,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
	if shape == Bare {
		return out
	}
	out.FranchiseID = owner.ID
	out.FranchiseName = owner.Name
	out.Products = make([]dto.ProductResponse, 0, len(products))
	if shape == Full {
		for _, p := range products {
			out.Products = append(out.Products, product(p, &b, Shallow))
		}
	}
	return out
}

// ─── Product ───────────────────────────────────────────────────────────────

// ProductBare proyecta un producto sin datos de sucursal.
func ProductBare(p entity.Product) dto.ProductResponse {
	return product(p, nil, Bare)
}

// ProductShallow proyecta un producto con su sucursal.
func ProductShallow(p entity.ProductWithBranch) dto.ProductResponse {
	return product(p.Product, &p.Branch, Shallow)
}

// ProductFull equivale a Shallow: un producto no tiene hijos.
func ProductFull(p entity.ProductWithBranch) dto.ProductResponse {
	return product(p.Product, &p.Branch, Full)
}

// ProductsShallow proyecta un listado de productos.
func ProductsShallow(list []entity.ProductWithBranch) []dto.ProductResponse {
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, ProductShallow(p))
	}
	return out
}

func product(p entity.Product, owner *entity.Branch, shape Shape) dto.ProductResponse {
	out := dto.ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Stock:     p.Stock,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if shape != Bare {
		out.BranchID = owner.ID
		out.BranchName = owner.Name
	}
	return out
}

// ─── Top stock ─────────────────────────────────────────────────────────────

// TopStock arma el reporte con una fila por producto devuelto, en el orden recibido.
func TopStock(franchiseID int64, franchiseName string, rows []entity.ProductWithBranch) dto.TopStockProductsResponse {
	out := dto.TopStockProductsResponse{
		FranchiseID:       franchiseID,
		FranchiseName:     franchiseName,
		BranchTopProducts: make([]dto.BranchTopProduct, 0, len(rows)),
	}
	for _, r := range rows {
		out.BranchTopProducts = append(out.BranchTopProducts, dto.BranchTopProduct{
			BranchID:    r.Branch.ID,
			BranchName:  r.Branch.Name,
			ProductID:   r.ID,
			ProductName: r.Name,
			Stock:       r.Stock,
		})
	}
	return out
}
