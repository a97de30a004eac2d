package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound   = errors.New("recurso no encontrado")
	ErrDuplicate  = errors.New("recurso duplicado")
	ErrValidation = errors.New("entrada inválida")
	ErrStorage    = errors.New("falla de almacenamiento")
)
