package dto

import "time"

// CreateProductRequest entrada para crear un producto en una sucursal.
type CreateProductRequest struct {
	Name     string `json:"name" validate:"required,notblank,min=2,max=100"`
	Stock    *int64 `json:"stock" validate:"required,gte=0"`
	BranchID int64  `json:"branch_id" validate:"required,gt=0"`
}

// UpdateStockRequest entrada para fijar el stock de un producto.
type UpdateStockRequest struct {
	Stock *int64 `json:"stock" validate:"required,gte=0"`
}

// ProductResponse salida de un producto. Los campos de sucursal se omiten si no se cargó.
type ProductResponse struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Stock      int64     `json:"stock"`
	BranchID   int64     `json:"branch_id,omitempty"`
	BranchName string    `json:"branch_name,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
