package repository

import (
	"context"

	"github.com/jhoicas/fixture-cleanup/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	// FindByName devuelve los clientes cuyo nombre coincide exactamente, en orden estable.
	FindByName(ctx context.Context, name string) ([]*entity.Customer, error)
	Delete(ctx context.Context, id string) error
}
