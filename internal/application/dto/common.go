package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// UpdateNameRequest entrada para renombrar una franquicia, sucursal o producto.
type UpdateNameRequest struct {
	Name string `json:"name" validate:"required,notblank,min=2,max=100"`
}

// HealthResponse salida de GET /health.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}
