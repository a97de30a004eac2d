package entity

import "time"

// Branch representa una sucursal. El nombre es único solo dentro de su franquicia.
type Branch struct {
	ID          int64
	Name        string
	FranchiseID int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BranchWithFranchise es una sucursal con su franquicia cargada.
type BranchWithFranchise struct {
	Branch
	Franchise Franchise
}

// BranchDetail es una sucursal con franquicia y productos cargados.
type BranchDetail struct {
	BranchWithFranchise
	Products []Product
}
