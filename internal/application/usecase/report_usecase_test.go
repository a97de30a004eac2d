package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Franquicias-api/internal/application/dto"
	"github.com/jhoicas/Franquicias-api/internal/application/usecase"
)

type fakeGenerator struct {
	got dto.TopStockProductsResponse
	err error
}

func (g *fakeGenerator) GenerateTopStockPDF(_ context.Context, report dto.TopStockProductsResponse) ([]byte, error) {
	g.got = report
	if g.err != nil {
		return nil, g.err
	}
	return []byte("%PDF-fake"), nil
}

func TestReportTopStockPDF_RendersComputedReport(t *testing.T) {
	e := newEnv(t, nil)
	f := e.franchise(t, "Acme")
	b := e.branch(t, f.ID, "North")
	e.product(t, b.ID, "Widget", 7)

	gen := &fakeGenerator{}
	uc := usecase.NewReportUseCase(e.franchises, gen)

	out, filename, err := uc.TopStockPDF(context.Background(), f.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fake"), out)
	assert.Contains(t, filename, "top-stock-franquicia-")
	assert.Equal(t, "Acme", gen.got.FranchiseName)
	require.Len(t, gen.got.BranchTopProducts, 1)
	assert.Equal(t, "Widget", gen.got.BranchTopProducts[0].ProductName)
}

func TestReportTopStockPDF_WrapsGeneratorError(t *testing.T) {
	e := newEnv(t, nil)
	f := e.franchise(t, "Acme")

	boom := errors.New("sin fuentes")
	uc := usecase.NewReportUseCase(e.franchises, &fakeGenerator{err: boom})

	_, _, err := uc.TopStockPDF(context.Background(), f.ID)
	assert.ErrorIs(t, err, boom)
}
