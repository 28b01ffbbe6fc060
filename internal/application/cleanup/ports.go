package cleanup

import (
	"context"

	"github.com/jhoicas/fixture-cleanup/internal/domain/repository"
)

// PurgeTxRunner ejecuta el borrado de un cliente y sus facturas en una sola transacción.
type PurgeTxRunner interface {
	RunPurge(ctx context.Context, fn func(
		customerRepo repository.CustomerRepository,
		invoiceRepo repository.InvoiceRepository,
	) error) error
}

// ImageRemover borra la foto de un cliente del directorio de uploads.
type ImageRemover interface {
	// Resolve traduce image_url a una ruta relativa a la raíz de uploads; ok=false si apunta fuera.
	Resolve(imageURL string) (relPath string, ok bool)
	// Remove elimina el archivo; domain.ErrFileNotFound si no existe.
	Remove(relPath string) error
}
