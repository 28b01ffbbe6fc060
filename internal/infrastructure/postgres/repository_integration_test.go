package postgres

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fixture-cleanup/internal/domain"
	"github.com/jhoicas/fixture-cleanup/internal/domain/entity"
	"github.com/jhoicas/fixture-cleanup/internal/domain/repository"
)

// newTestPool conecta a TEST_DATABASE_URL dentro de un schema temporal con las tablas de migrations/.
// Sin la variable, los tests se omiten.
func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()
	schema := "cleanup_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")

	admin, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	_, err = admin.Exec(ctx, "CREATE SCHEMA "+schema)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = admin.Exec(context.Background(), "DROP SCHEMA "+schema+" CASCADE")
		admin.Close()
	})

	cfg, err := pgxpool.ParseConfig(dsn)
	require.NoError(t, err)
	cfg.ConnConfig.RuntimeParams["search_path"] = schema
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	ddl, err := os.ReadFile("migrations/001_cleanup_schema.sql")
	require.NoError(t, err)
	_, err = pool.Exec(ctx, string(ddl))
	require.NoError(t, err)
	return pool
}

func insertCustomer(t *testing.T, pool *pgxpool.Pool, name, image string, invoices int) string {
	t.Helper()
	ctx := context.Background()
	id := uuid.NewString()
	var img any
	if image != "" {
		img = image
	}
	_, err := pool.Exec(ctx, `INSERT INTO customers (id, name, image_url) VALUES ($1, $2, $3)`, id, name, img)
	require.NoError(t, err)
	for i := 0; i < invoices; i++ {
		_, err := pool.Exec(ctx, `INSERT INTO invoices (id, customer_id, amount) VALUES ($1, $2, $3)`, uuid.NewString(), id, 100*(i+1))
		require.NoError(t, err)
	}
	return id
}

func countRows(t *testing.T, pool *pgxpool.Pool, query, id string) int {
	t.Helper()
	var n int
	require.NoError(t, pool.QueryRow(context.Background(), query, id).Scan(&n))
	return n
}

func TestCustomerRepo_FindByName(t *testing.T) {
	pool := newTestPool(t)
	id := insertCustomer(t, pool, "Steven Tey", "/uploads/steven.png", 0)
	insertCustomer(t, pool, "steven tey", "", 0)

	list, err := NewCustomerRepository(pool).FindByName(context.Background(), "Steven Tey")
	require.NoError(t, err)
	require.Len(t, list, 1, "la comparación es exacta")
	assert.Equal(t, id, list[0].ID)
	assert.Equal(t, "/uploads/steven.png", list[0].ImageURL)

	list, err = NewCustomerRepository(pool).FindByName(context.Background(), "Emil L")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestTxRunner_RunPurge_Commit(t *testing.T) {
	pool := newTestPool(t)
	id := insertCustomer(t, pool, "Steven Tey", "", 2)

	var removed int64
	err := NewTxRunner(pool).RunPurge(context.Background(), func(c repository.CustomerRepository, i repository.InvoiceRepository) error {
		n, err := i.DeleteByCustomer(context.Background(), id)
		if err != nil {
			return err
		}
		removed = n
		return c.Delete(context.Background(), id)
	})
	require.NoError(t, err)

	assert.EqualValues(t, 2, removed)
	assert.Zero(t, countRows(t, pool, `SELECT count(*) FROM customers WHERE id = $1`, id))
	assert.Zero(t, countRows(t, pool, `SELECT count(*) FROM invoices WHERE customer_id = $1`, id))
}

func TestTxRunner_RunPurge_RollbackConservaFacturas(t *testing.T) {
	pool := newTestPool(t)
	id := insertCustomer(t, pool, "Hector Simpson", "", 2)
	boom := errors.New("boom")

	err := NewTxRunner(pool).RunPurge(context.Background(), func(c repository.CustomerRepository, i repository.InvoiceRepository) error {
		if _, err := i.DeleteByCustomer(context.Background(), id); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 2, countRows(t, pool, `SELECT count(*) FROM invoices WHERE customer_id = $1`, id))
}

func TestCustomerRepo_Delete_ForeignKeyEsConflicto(t *testing.T) {
	pool := newTestPool(t)
	id := insertCustomer(t, pool, "Emil L", "", 1)

	err := NewCustomerRepository(pool).Delete(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Contains(t, err.Error(), "invoices_customer_id_fkey")
}

func TestCustomerRepo_Delete_Inexistente(t *testing.T) {
	pool := newTestPool(t)
	err := NewCustomerRepository(pool).Delete(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserRepo_FindByEmail(t *testing.T) {
	pool := newTestPool(t)
	_, err := pool.Exec(context.Background(),
		`INSERT INTO users (id, email, password_hash, name, role) VALUES ($1, 'ops@example.com', 'x', 'Ops', 'admin')`,
		uuid.NewString())
	require.NoError(t, err)

	u, err := NewUserRepository(pool).FindByEmail(context.Background(), "OPS@example.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, entity.RoleAdmin, u.Role)
	assert.True(t, u.IsActive())

	u, err = NewUserRepository(pool).FindByEmail(context.Background(), "nadie@example.com")
	require.NoError(t, err)
	assert.Nil(t, u)
}
