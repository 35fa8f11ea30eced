// Package postgres читает датасет клиентов из таблицы customers в PostgreSQL
// и загружает в неё записи пакетно.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5"
	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/nabeelimtiaz667/cust-churn-analysis/internal/models"
)

const tableName = "customers"

var copyColumns = []string{
	"customer_id", "gender", "senior_citizen", "partner", "dependents", "tenure",
	"phone_service", "internet_service", "contract", "payment_method",
	"monthly_charges", "total_charges", "churn",
}

const selectQuery = `SELECT customer_id, gender, senior_citizen, partner, dependents, tenure,
		phone_service, internet_service, contract, payment_method,
		monthly_charges, total_charges, churn
	FROM customers
	ORDER BY id`

// Source читает записи из PostgreSQL.
type Source struct {
	db *sqlx.DB
}

// New подключается к базе по строке подключения dsn.
func New(ctx context.Context, dsn string) (*Source, error) {
	const op = "storage.postgres.New"

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Source{db: db}, nil
}

// Name возвращает описание источника для логов.
func (s *Source) Name() string {
	return "postgres:" + tableName
}

// DB возвращает соединение database/sql, например для миграций.
func (s *Source) DB() *sql.DB {
	return s.db.DB
}

// Load читает все строки таблицы в порядке вставки.
func (s *Source) Load(ctx context.Context) ([]models.Record, error) {
	const op = "storage.postgres.Load"

	var records []models.Record
	if err := s.db.SelectContext(ctx, &records, selectQuery); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return records, nil
}

// Close закрывает соединение.
func (s *Source) Close() error {
	return s.db.Close()
}

// ImportRecords копирует записи в таблицу customers через COPY и возвращает число вставленных строк.
func ImportRecords(ctx context.Context, dsn string, records []models.Record) (int64, error) {
	const op = "storage.postgres.ImportRecords"

	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer conn.Close(ctx)

	n, err := conn.CopyFrom(ctx, pgx.Identifier{tableName}, copyColumns,
		pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
			r := records[i]
			return []any{
				r.CustomerID, r.Gender, r.SeniorCitizen, r.Partner, r.Dependents, r.Tenure,
				r.PhoneService, r.InternetService, r.Contract, r.PaymentMethod,
				r.MonthlyCharges, r.TotalCharges, r.Churn,
			}, nil
		}))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}
