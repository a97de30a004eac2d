package dto

import "time"

// CreateBranchRequest entrada para crear una sucursal.
type CreateBranchRequest struct {
	Name        string `json:"name" validate:"required,notblank,min=2,max=100"`
	FranchiseID int64  `json:"franchise_id" validate:"required,gt=0"`
}

// BranchResponse salida de una sucursal. Los campos de franquicia se omiten si no se cargó.
type BranchResponse struct {
	ID            int64             `json:"id"`
	Name          string            `json:"name"`
	FranchiseID   int64             `json:"franchise_id,omitempty"`
	FranchiseName string            `json:"franchise_name,omitempty"`
	Products      []ProductResponse `json:"products"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}
