package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nabeelimtiaz667/cust-churn-analysis/internal/lib/jwt"
)

const testData = "../../internal/storage/csvsource/testdata/customers.csv"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestQueryCommands(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "статистика", args: []string{"stats", "--data", testData}, want: `"total_customers": 5`},
		{name: "статистика с фильтром", args: []string{"stats", "--data", testData, "--contract", "Month-to-month"}, want: `"total_customers": 3`},
		{name: "график", args: []string{"chart", "contractChurn", "--data", testData}, want: `"Two year"`},
		{name: "неизвестный график", args: []string{"chart", "missing", "--data", testData}, want: "{}"},
		{name: "каталог", args: []string{"charts"}, want: "monthlyGroupsChurn"},
		{name: "фильтры", args: []string{"filters", "--data", testData}, want: "Fiber optic"},
		{
			name: "скоринг",
			args: []string{"predict", "--model", "../../model/churn_model.json", "--contract", "Two year", "--monthly", "20", "--tenure", "70"},
			want: `"probability"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestQueryCommands_Errors(t *testing.T) {
	t.Setenv("DATASET_POSTGRES_DSN", "")
	t.Setenv("JWT_SECRET_KEY", "")

	tests := []struct {
		name string
		args []string
	}{
		{name: "нет файла", args: []string{"stats", "--data", "missing.csv"}},
		{name: "нет имени графика", args: []string{"chart"}},
		{name: "нет модели", args: []string{"predict", "--model", "missing.json"}},
		{name: "импорт без dsn", args: []string{"import", "--data", testData}},
		{name: "токен без секрета", args: []string{"token"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestTokenCommand(t *testing.T) {
	out, err := run(t, "token", "--secret", "s3cret", "--subject", "ops", "--ttl", "1h")
	require.NoError(t, err)

	claims, err := jwt.NewJWTMaker("s3cret", time.Hour).ParseToken(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, jwt.RoleAdmin, claims.Role)
	assert.Equal(t, "ops", claims.Subject)
}

func TestDashboardCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "churn.xlsx")

	out, err := run(t, "dashboard", "--data", testData, "--out", path, "--silent")
	require.NoError(t, err)
	assert.Contains(t, out, path)
	assert.FileExists(t, path)
}
