package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/Franquicias-api/internal/application/dto"
	"github.com/jhoicas/Franquicias-api/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(fmt.Sprintf("registrar notblank: %v", err))
	}
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func validationErr(msg string) error {
	return fmt.Errorf("%s: %w", msg, domain.ErrValidation)
}

// normalizeName aplica NFC para que la unicidad compare la misma forma de cada carácter.
func normalizeName(s string) string {
	return norm.NFC.String(s)
}

// normalizeNames pasa a NFC el nombre de las peticiones que lo llevan, antes de validar longitudes.
func normalizeNames(out any) {
	switch in := out.(type) {
	case *dto.CreateFranchiseRequest:
		in.Name = normalizeName(in.Name)
	case *dto.CreateBranchRequest:
		in.Name = normalizeName(in.Name)
	case *dto.CreateProductRequest:
		in.Name = normalizeName(in.Name)
	case *dto.UpdateNameRequest:
		in.Name = normalizeName(in.Name)
	}
}

// bindJSON decodifica el cuerpo, normaliza los nombres y valida las etiquetas `validate`.
// Devuelve un error ya respondido (INVALID_BODY o VALIDATION) o nil.
func bindJSON(c *fiber.Ctx, out any) (bool, error) {
	if err := c.BodyParser(out); err != nil {
		return false, errorJSON(c, fiber.StatusBadRequest, CodeInvalidBody, "cuerpo inválido")
	}
	normalizeNames(out)
	if err := validate.Struct(out); err != nil {
		return false, errorJSON(c, fiber.StatusBadRequest, CodeValidation, describe(err))
	}
	return true, nil
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required", "notblank":
			msgs = append(msgs, fe.Field()+" es requerido")
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s debe tener al menos %s caracteres", fe.Field(), fe.Param()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s debe tener como máximo %s caracteres", fe.Field(), fe.Param()))
		case "gte":
			msgs = append(msgs, fmt.Sprintf("%s debe ser mayor o igual a %s", fe.Field(), fe.Param()))
		case "gt":
			msgs = append(msgs, fmt.Sprintf("%s debe ser mayor que %s", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s inválido (%s)", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}
