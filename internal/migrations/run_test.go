package migrations

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// migratedDB поднимает Postgres в контейнере и применяет миграции из корня модуля.
func migratedDB(t *testing.T) *sql.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("integration test skipped in short mode")
	}
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("churn"),
		postgres.WithUsername("churn"),
		postgres.WithPassword("churn"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("pgx", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, Run(db, migrationsDir(t)))
	return db
}

func migrationsDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.Abs("../../migrations")
	require.NoError(t, err)
	return dir
}

func TestRun_Schema(t *testing.T) {
	db := migratedDB(t)

	var indexes []string
	rows, err := db.Query(`SELECT indexname FROM pg_indexes WHERE tablename = 'customers' ORDER BY indexname`)
	require.NoError(t, err)
	defer rows.Close()
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		indexes = append(indexes, name)
	}
	require.NoError(t, rows.Err())

	assert.Contains(t, indexes, "idx_customers_contract")
	assert.Contains(t, indexes, "idx_customers_internet_service")
}

func TestRun_Constraints(t *testing.T) {
	db := migratedDB(t)

	tests := []struct {
		name    string
		tenure  int
		monthly float64
		total   any
		wantErr bool
	}{
		{name: "корректная строка", tenure: 12, monthly: 70.35, total: 845.5},
		{name: "новый клиент без TotalCharges", tenure: 0, monthly: 20.25, total: nil},
		{name: "отрицательный стаж", tenure: -1, monthly: 20, total: nil, wantErr: true},
		{name: "отрицательный платёж", tenure: 1, monthly: -5, total: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := db.Exec(
				`INSERT INTO customers (tenure, monthly_charges, total_charges, churn) VALUES ($1, $2, $3, 'No')`,
				tt.tenure, tt.monthly, tt.total,
			)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestRun_NoChange(t *testing.T) {
	db := migratedDB(t)

	_, err := db.Exec(`INSERT INTO customers (tenure, monthly_charges, churn) VALUES (5, 50, 'Yes')`)
	require.NoError(t, err)

	require.NoError(t, Run(db, migrationsDir(t)))

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM customers`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestRun_MissingDir(t *testing.T) {
	db := migratedDB(t)

	assert.Error(t, Run(db, filepath.Join(t.TempDir(), "missing")))
}
