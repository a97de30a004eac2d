package entity

import "time"

// Product representa un producto de una sucursal. El nombre es único dentro de la sucursal
// y Stock nunca es negativo.
type Product struct {
	ID        int64
	Name      string
	Stock     int64
	BranchID  int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProductWithBranch es un producto con su sucursal cargada.
type ProductWithBranch struct {
	Product
	Branch Branch
}
