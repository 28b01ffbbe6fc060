package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/fixture-cleanup/internal/domain"
	"github.com/jhoicas/fixture-cleanup/internal/domain/entity"
	"github.com/jhoicas/fixture-cleanup/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// FindByName busca por igualdad exacta de nombre. El orden por id hace determinista "el primero".
func (r *CustomerRepo) FindByName(ctx context.Context, name string) ([]*entity.Customer, error) {
	query := `
		SELECT id::text, name, COALESCE(image_url, '')
		FROM customers WHERE name = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, name)
	if err != nil {
		return nil, fmt.Errorf("find customers by name: %w", err)
	}
	defer rows.Close()
	var list []*entity.Customer
	for rows.Next() {
		var c entity.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.ImageURL); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Delete elimina un cliente por ID. ErrNotFound si ya no existe.
func (r *CustomerRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("delete customer: %w (%s)", domain.ErrConflict, constraintName(err))
		}
		return fmt.Errorf("delete customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete customer: %w", domain.ErrNotFound)
	}
	return nil
}
