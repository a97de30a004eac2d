package dto

import "time"

// CreateFranchiseRequest entrada para crear una franquicia.
type CreateFranchiseRequest struct {
	Name string `json:"name" validate:"required,notblank,min=2,max=100"`
}

// FranchiseResponse salida de una franquicia. Branches es null cuando las sucursales no se cargaron.
type FranchiseResponse struct {
	ID        int64            `json:"id"`
	Name      string           `json:"name"`
	Branches  []BranchResponse `json:"branches"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// TopStockProductsResponse producto(s) con mayor stock por sucursal de una franquicia.
type TopStockProductsResponse struct {
	FranchiseID       int64             `json:"franchise_id"`
	FranchiseName     string            `json:"franchise_name"`
	BranchTopProducts []BranchTopProduct `json:"branch_top_products"`
}

// BranchTopProduct una fila del reporte; los empates generan varias filas por sucursal.
type BranchTopProduct struct {
	BranchID    int64  `json:"branch_id"`
	BranchName  string `json:"branch_name"`
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	Stock       int64  `json:"stock"`
}
