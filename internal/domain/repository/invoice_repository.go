package repository

import "context"

// InvoiceRepository define el puerto de persistencia para Invoice.
type InvoiceRepository interface {
	// DeleteByCustomer elimina todas las facturas del cliente y devuelve cuántas se borraron.
	DeleteByCustomer(ctx context.Context, customerID string) (int64, error)
}
