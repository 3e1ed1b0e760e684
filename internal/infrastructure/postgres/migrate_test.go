package postgres

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingQuerier registra los scripts ejecutados; solo Exec se usa en Migrate.
type recordingQuerier struct {
	scripts []string
	failAt  int
}

func (q *recordingQuerier) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	q.scripts = append(q.scripts, sql)
	if q.failAt > 0 && len(q.scripts) == q.failAt {
		return pgconn.CommandTag{}, errors.New("syntax error")
	}
	return pgconn.NewCommandTag("CREATE TABLE"), nil
}

func (q *recordingQuerier) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("no usado")
}

func (q *recordingQuerier) QueryRow(context.Context, string, ...any) pgx.Row {
	return nil
}

func TestMigrate_AplicaScriptsEmbebidosEnOrden(t *testing.T) {
	names, err := fs.Glob(migrationsFS, "migrations/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, names)
	assert.Equal(t, "migrations/001_inventory.sql", names[0])

	q := &recordingQuerier{}
	require.NoError(t, Migrate(context.Background(), q))
	require.Len(t, q.scripts, len(names))
	assert.Contains(t, q.scripts[0], "CREATE TABLE IF NOT EXISTS inventory_items")
	assert.Contains(t, q.scripts[0], "ux_inventory_items_roll_category")
	assert.Contains(t, q.scripts[0], "accessory_sales")
}

func TestMigrate_DetieneEnElPrimerError(t *testing.T) {
	q := &recordingQuerier{failAt: 1}
	err := Migrate(context.Background(), q)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "001_inventory.sql")
	assert.Len(t, q.scripts, 1)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("timeout")))
}
