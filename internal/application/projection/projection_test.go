package projection_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Franquicias-api/internal/application/projection"
	"github.com/jhoicas/Franquicias-api/internal/domain/entity"
)

var ts = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func acme() entity.Franchise {
	return entity.Franchise{ID: 1, Name: "Acme", CreatedAt: ts, UpdatedAt: ts}
}

func north() entity.Branch {
	return entity.Branch{ID: 10, Name: "North", FranchiseID: 1, CreatedAt: ts, UpdatedAt: ts}
}

func widget() entity.Product {
	return entity.Product{ID: 100, Name: "Widget", Stock: 7, BranchID: 10, CreatedAt: ts, UpdatedAt: ts}
}

// ── Franquicia ───────────────────────────────────────────────────────────────

func TestFranchiseShapes(t *testing.T) {
	bare := projection.FranchiseBare(acme())
	assert.Nil(t, bare.Branches)

	shallow := projection.FranchiseShallow(acme())
	require.NotNil(t, shallow.Branches)
	assert.Empty(t, shallow.Branches)

	full := projection.FranchiseFull(entity.FranchiseWithBranches{Franchise: acme(), Branches: []entity.Branch{north()}})
	require.Len(t, full.Branches, 1)
	b := full.Branches[0]
	assert.Equal(t, "North", b.Name)
	assert.EqualValues(t, 1, b.FranchiseID)
	assert.Equal(t, "Acme", b.FranchiseName)
	assert.Empty(t, b.Products, "las sucursales anidadas no traen productos")
}

func TestFranchiseBare_SerializesBranchesAsNull(t *testing.T) {
	raw, err := json.Marshal(projection.FranchiseBare(acme()))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"branches":null`)

	raw, err = json.Marshal(projection.FranchiseShallow(acme()))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"branches":[]`)
}

// ── Sucursal ─────────────────────────────────────────────────────────────────

func TestBranchShapes(t *testing.T) {
	bare := projection.BranchBare(north())
	assert.Zero(t, bare.FranchiseID)
	assert.Empty(t, bare.FranchiseName)
	assert.Nil(t, bare.Products)

	withFranchise := entity.BranchWithFranchise{Branch: north(), Franchise: acme()}
	shallow := projection.BranchShallow(withFranchise)
	assert.Equal(t, "Acme", shallow.FranchiseName)
	require.NotNil(t, shallow.Products)
	assert.Empty(t, shallow.Products)

	full := projection.BranchFull(entity.BranchDetail{BranchWithFranchise: withFranchise, Products: []entity.Product{widget()}})
	require.Len(t, full.Products, 1)
	assert.EqualValues(t, 10, full.Products[0].BranchID)
	assert.Equal(t, "North", full.Products[0].BranchName)
}

func TestBranchBare_OmitsFranchiseFieldsInJSON(t *testing.T) {
	raw, err := json.Marshal(projection.BranchBare(north()))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "franchise_id")
	assert.NotContains(t, string(raw), "franchise_name")
}

// ── Producto ─────────────────────────────────────────────────────────────────

func TestProductShapes(t *testing.T) {
	bare := projection.ProductBare(widget())
	assert.Zero(t, bare.BranchID)
	assert.EqualValues(t, 7, bare.Stock)

	pw := entity.ProductWithBranch{Product: widget(), Branch: north()}
	assert.Equal(t, projection.ProductShallow(pw), projection.ProductFull(pw))
	assert.Equal(t, "North", projection.ProductShallow(pw).BranchName)

	list := projection.ProductsShallow(nil)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

// ── Top stock ────────────────────────────────────────────────────────────────

func TestTopStock_OneRowPerProductInOrder(t *testing.T) {
	b2 := entity.Branch{ID: 11, Name: "South", FranchiseID: 1}
	rows := []entity.ProductWithBranch{
		{Product: entity.Product{ID: 1, Name: "A", Stock: 5}, Branch: north()},
		{Product: entity.Product{ID: 2, Name: "B", Stock: 5}, Branch: north()},
		{Product: entity.Product{ID: 3, Name: "C", Stock: 2}, Branch: b2},
	}
	out := projection.TopStock(1, "Acme", rows)
	assert.EqualValues(t, 1, out.FranchiseID)
	assert.Equal(t, "Acme", out.FranchiseName)
	require.Len(t, out.BranchTopProducts, 3)
	assert.Equal(t, "North", out.BranchTopProducts[1].BranchName)
	assert.Equal(t, "C", out.BranchTopProducts[2].ProductName)

	empty := projection.TopStock(9, "Unknown", nil)
	assert.NotNil(t, empty.BranchTopProducts)
	assert.Empty(t, empty.BranchTopProducts)
}

func TestShapeString(t *testing.T) {
	assert.Equal(t, "bare", projection.Bare.String())
	assert.Equal(t, "shallow", projection.Shallow.String())
	assert.Equal(t, "full", projection.Full.String())
}
