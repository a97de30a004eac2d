package repository

// Repos agrupa los repositorios atados a una misma transacción.
type Repos struct {
	Franchises FranchiseRepository
	Branches   BranchRepository
	Products   ProductRepository
}
