package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Franquicias-api/internal/application/dto"
	"github.com/jhoicas/Franquicias-api/internal/application/usecase"
)

// FranchiseHandler maneja las peticiones HTTP para franquicias.
type FranchiseHandler struct {
	uc      *usecase.FranchiseUseCase
	reports *usecase.ReportUseCase
}

// NewFranchiseHandler construye el handler.
func NewFranchiseHandler(uc *usecase.FranchiseUseCase, reports *usecase.ReportUseCase) *FranchiseHandler {
	return &FranchiseHandler{uc: uc, reports: reports}
}

// Create godoc
// @Summary      Crear franquicia
// @Tags         franchises
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateFranchiseRequest  true  "Nombre de la franquicia"
// @Success      201   {object}  dto.FranchiseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/v1/franchises [post]
func (h *FranchiseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateFranchiseRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar franquicias con sus sucursales
// @Description  Si la carga de sucursales falla, responde las franquicias con branches = null.
// @Tags         franchises
// @Produce      json
// @Success      200  {array}   dto.FranchiseResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/v1/franchises [get]
func (h *FranchiseHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener franquicia por ID
// @Tags         franchises
// @Produce      json
// @Param        id   path  int  true  "ID de la franquicia"
// @Success      200  {object}  dto.FranchiseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/franchises/{id} [get]
func (h *FranchiseHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return errorJSON(c, fiber.StatusNotFound, CodeNotFound, "franquicia no encontrada")
	}
	return c.JSON(out)
}

// UpdateName godoc
// @Summary      Renombrar franquicia
// @Tags         franchises
// @Accept       json
// @Produce      json
// @Param        id    path  int                    true  "ID de la franquicia"
// @Param        body  body  dto.UpdateNameRequest  true  "Nuevo nombre"
// @Success      200   {object}  dto.FranchiseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/v1/franchises/{id}/name [put]
func (h *FranchiseHandler) UpdateName(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdateNameRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.UpdateName(c.UserContext(), id, in.Name)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar franquicia (con sus sucursales y productos)
// @Tags         franchises
// @Param        id   path  int  true  "ID de la franquicia"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/franchises/{id} [delete]
func (h *FranchiseHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// TopStockProducts godoc
// @Summary      Producto con mayor stock por sucursal
// @Description  Incluye todos los productos empatados. Una franquicia inexistente responde lista vacía con nombre "Unknown".
// @Tags         franchises
// @Produce      json
// @Param        id   path  int  true  "ID de la franquicia"
// @Success      200  {object}  dto.TopStockProductsResponse
// @Router       /api/v1/franchises/{id}/top-stock-products [get]
func (h *FranchiseHandler) TopStockProducts(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.TopStockProducts(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// TopStockProductsPDF godoc
// @Summary      Reporte PDF de productos con mayor stock por sucursal
// @Tags         franchises
// @Produce      application/pdf
// @Param        id   path  int  true  "ID de la franquicia"
// @Success      200  {file}  binary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/v1/franchises/{id}/top-stock-products/pdf [get]
func (h *FranchiseHandler) TopStockProductsPDF(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	pdfBytes, filename, err := h.reports.TopStockPDF(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
