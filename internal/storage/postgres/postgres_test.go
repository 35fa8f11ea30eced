package postgres

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/nabeelimtiaz667/cust-churn-analysis/internal/migrations"
	"github.com/nabeelimtiaz667/cust-churn-analysis/internal/models"
)

func setupTestDB(t *testing.T) (string, func()) {
	if testing.Short() {
		t.Skip("integration test skipped in short mode")
	}
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err, "failed to start container")

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	return dsn, func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}
}

func TestImportAndLoad(t *testing.T) {
	dsn, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	src, err := New(ctx, dsn)
	require.NoError(t, err)
	defer src.Close()

	path, err := filepath.Abs("../../../migrations")
	require.NoError(t, err)
	require.NoError(t, migrations.Run(src.DB(), path))

	total := 108.15
	input := []models.Record{
		{CustomerID: "1", Gender: "Male", Tenure: 2, Contract: "Month-to-month", InternetService: "DSL",
			MonthlyCharges: 53.85, TotalCharges: &total, Churn: models.ChurnYes},
		{CustomerID: "2", Gender: "Female", SeniorCitizen: true, Tenure: 0, Contract: "Two year",
			InternetService: "No", MonthlyCharges: 20, Churn: models.ChurnNo},
	}

	n, err := ImportRecords(ctx, dsn, input)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	got, err := src.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, input[0], got[0])
	assert.Nil(t, got[1].TotalCharges)
	assert.True(t, got[1].SeniorCitizen)
	assert.Equal(t, "postgres:customers", src.Name())
}

func TestLoad_EmptyTable(t *testing.T) {
	dsn, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	src, err := New(ctx, dsn)
	require.NoError(t, err)
	defer src.Close()

	path, err := filepath.Abs("../../../migrations")
	require.NoError(t, err)
	require.NoError(t, migrations.Run(src.DB(), path))

	got, err := src.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}
