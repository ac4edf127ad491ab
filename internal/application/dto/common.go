package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Resultados de mutación reportados al cliente.
const (
	ResultCreated  = "created"
	ResultUpdated  = "updated"
	ResultNoChange = "no_change"
	ResultDeleted  = "deleted"
)

// MutationResponse salida de update/delete: distingue "cambió" de "coincidió sin cambios".
// Affected es 0 cuando un delete no encontró el documento (se reporta igual como éxito).
type MutationResponse struct {
	Result   string `json:"result"`
	Message  string `json:"message"`
	Affected int64  `json:"affected"`
}
