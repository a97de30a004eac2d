package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/Franquicias-api/internal/application/dto"
)

// TopStockPDFGenerator puerto de salida para renderizar el reporte de top stock.
type TopStockPDFGenerator interface {
	GenerateTopStockPDF(ctx context.Context, report dto.TopStockProductsResponse) ([]byte, error)
}

// ReportUseCase genera la versión PDF del reporte de top stock.
type ReportUseCase struct {
	franchises *FranchiseUseCase
	generator  TopStockPDFGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(franchises *FranchiseUseCase, generator TopStockPDFGenerator) *ReportUseCase {
	return &ReportUseCase{franchises: franchises, generator: generator}
}

// TopStockPDF calcula el reporte y lo renderiza. Devuelve los bytes y el nombre de archivo sugerido.
func (uc *ReportUseCase) TopStockPDF(ctx context.Context, franchiseID int64) ([]byte, string, error) {
	report, err := uc.franchises.TopStockProducts(ctx, franchiseID)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err := uc.generator.GenerateTopStockPDF(ctx, *report)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: top stock franquicia %d: %w", franchiseID, err)
	}
	return pdfBytes, fmt.Sprintf("top-stock-franquicia-%d.pdf", franchiseID), nil
}
