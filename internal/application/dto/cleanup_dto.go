package dto

// Mensajes fijos del endpoint de limpieza.
const (
	CleanupDoneMessage   = "Limpeza concluída"
	CleanupFailedMessage = "Limpeza falhou"
	NoSessionError       = "Unauthorized: No session"
	AdminRequiredError   = "Unauthorized: Admin access required"
)

// CleanupResponse resultado de POST /api/admin/cleanup.
// DeletedImages es nil (se omite) cuando el borrado de imágenes está deshabilitado.
type CleanupResponse struct {
	Message          string    `json:"message"`
	DeletedCustomers []string  `json:"deletedCustomers"`
	DeletedImages    *[]string `json:"deletedImages,omitempty"`
	Errors           []string  `json:"errors"`
}

// CleanupErrorResponse cuerpo de los errores 401/403/500 del endpoint de limpieza.
type CleanupErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
