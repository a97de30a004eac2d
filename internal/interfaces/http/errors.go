package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Franquicias-api/internal/application/dto"
	"github.com/jhoicas/Franquicias-api/internal/domain"
)

// Códigos de error expuestos en dto.ErrorResponse.
const (
	CodeInvalidBody = "INVALID_BODY"
	CodeValidation  = "VALIDATION"
	CodeNotFound    = "NOT_FOUND"
	CodeDuplicate   = "DUPLICATE"
	CodeInternal    = "INTERNAL"
)

func errorJSON(c *fiber.Ctx, status int, code, msg string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

// respondError traduce errores de dominio: NotFound 404, Duplicate 409, resto 500.
// Los 500 no exponen el detalle del almacenamiento.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return errorJSON(c, fiber.StatusBadRequest, CodeValidation, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return errorJSON(c, fiber.StatusNotFound, CodeNotFound, err.Error())
	case errors.Is(err, domain.ErrDuplicate):
		return errorJSON(c, fiber.StatusConflict, CodeDuplicate, err.Error())
	default:
		requestLogger(c).Error().Err(err).Msg("error interno")
		return errorJSON(c, fiber.StatusInternalServerError, CodeInternal, "error interno del servidor")
	}
}

// parseID lee un identificador positivo de la ruta.
func parseID(c *fiber.Ctx, param string) (int64, error) {
	return parsePositive(c.Params(param), param)
}

// parseQueryID lee un identificador positivo obligatorio del query string.
func parseQueryID(c *fiber.Ctx, key string) (int64, error) {
	return parsePositive(c.Query(key), key)
}

func parsePositive(raw, name string) (int64, error) {
	if raw == "" {
		return 0, validationErr(name + " es requerido")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, validationErr(name + " debe ser un entero positivo")
	}
	return id, nil
}
