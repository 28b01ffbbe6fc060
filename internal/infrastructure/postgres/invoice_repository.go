package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/fixture-cleanup/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// DeleteByCustomer elimina las facturas del cliente.
func (r *InvoiceRepo) DeleteByCustomer(ctx context.Context, customerID string) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM invoices WHERE customer_id = $1`, customerID)
	if err != nil {
		return 0, fmt.Errorf("delete invoices: %w", err)
	}
	return tag.RowsAffected(), nil
}
