package entity

import "time"

// Franchise representa una franquicia. El nombre es único en todo el sistema.
type Franchise struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FranchiseWithBranches es una franquicia leída junto con sus sucursales (carga eager).
// Las sucursales no traen productos.
type FranchiseWithBranches struct {
	Franchise
	Branches []Branch
}
