package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Franquicias-api/internal/application/dto"
	"github.com/jhoicas/Franquicias-api/internal/application/usecase"
)

// BranchHandler maneja las peticiones HTTP para sucursales.
type BranchHandler struct {
	uc *usecase.BranchUseCase
}

// NewBranchHandler construye el handler.
func NewBranchHandler(uc *usecase.BranchUseCase) *BranchHandler {
	return &BranchHandler{uc: uc}
}

// Create godoc
// @Summary      Crear sucursal
// @Tags         branches
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBranchRequest  true  "Sucursal"
// @Success      201   {object}  dto.BranchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/v1/branches [post]
func (h *BranchHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBranchRequest
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
// @Summary      Listar sucursales de una franquicia
// @Tags         branches
// @Produce      json
// @Param        franchise_id  query  int  true  "ID de la franquicia"
// @Success      200  {array}   dto.BranchResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/v1/branches [get]
func (h *BranchHandler) List(c *fiber.Ctx) error {
	franchiseID, err := parseQueryID(c, "franchise_id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.ListByFranchise(c.UserContext(), franchiseID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener sucursal con sus productos
// @Tags         branches
// @Produce      json
// @Param        id   path  int  true  "ID de la sucursal"
// @Success      200  {object}  dto.BranchResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/branches/{id} [get]
func (h *BranchHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return errorJSON(c, fiber.StatusNotFound, CodeNotFound, "sucursal no encontrada")
	}
	return c.JSON(out)
}

// UpdateName godoc
// @Summary      Renombrar sucursal
// @Tags         branches
// @Accept       json
// @Produce      json
// @Param        id    path  int                    true  "ID de la sucursal"
// @Param        body  body  dto.UpdateNameRequest  true  "Nuevo nombre"
// @Success      200   {object}  dto.BranchResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/v1/branches/{id}/name [put]
func (h *BranchHandler) UpdateName(c *fiber.Ctx) error {
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
// @Summary      Eliminar sucursal (con sus productos)
// @Tags         branches
// @Param        id   path  int  true  "ID de la sucursal"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/branches/{id} [delete]
func (h *BranchHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
