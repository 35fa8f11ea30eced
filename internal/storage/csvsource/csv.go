// Package csvsource загружает датасет клиентов из CSV-файла.
package csvsource

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/nabeelimtiaz667/cust-churn-analysis/internal/models"
)

// ErrMissingColumn возвращается, если в заголовке нет обязательной колонки.
var ErrMissingColumn = errors.New("missing required column")

// Колонки CSV.
const (
	colCustomerID      = "customerID"
	colGender          = "gender"
	colSeniorCitizen   = "SeniorCitizen"
	colPartner         = "Partner"
	colDependents      = "Dependents"
	colTenure          = "tenure"
	colPhoneService    = "PhoneService"
	colInternetService = "InternetService"
	colContract        = "Contract"
	colPaymentMethod   = "PaymentMethod"
	colMonthlyCharges  = "MonthlyCharges"
	colTotalCharges    = "TotalCharges"
	colChurn           = "Churn"
)

var requiredColumns = []string{
	colGender, colSeniorCitizen, colPartner, colDependents, colTenure, colPhoneService,
	colInternetService, colContract, colPaymentMethod, colMonthlyCharges, colTotalCharges, colChurn,
}

// Source читает CSV-файл по пути Path.
type Source struct {
	Path string
}

// New создаёт источник для файла path.
func New(path string) *Source {
	return &Source{Path: path}
}

// Name возвращает описание источника для логов.
func (s *Source) Name() string {
	return "csv:" + s.Path
}

// Load читает и разбирает файл.
func (s *Source) Load(ctx context.Context) ([]models.Record, error) {
	const op = "csvsource.Load"

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer f.Close()

	records, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return records, nil
}

// Parse разбирает CSV с заголовком.
//
// Порядок колонок определяется заголовком, лишние колонки игнорируются.
// Некорректные tenure, MonthlyCharges и SeniorCitizen дают ошибку с номером строки.
// Нечисловой TotalCharges (например, пробел у новых клиентов) становится отсутствующим значением.
func Parse(r io.Reader) ([]models.Record, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}

	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	var records []models.Record
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		rec, err := parseRow(row, index)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseRow(row []string, index map[string]int) (models.Record, error) {
	get := func(col string) string {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	tenure, err := parseTenure(get(colTenure))
	if err != nil {
		return models.Record{}, err
	}
	monthly, err := strconv.ParseFloat(get(colMonthlyCharges), 64)
	if err != nil || monthly < 0 || math.IsNaN(monthly) || math.IsInf(monthly, 0) {
		return models.Record{}, fmt.Errorf("invalid %s %q", colMonthlyCharges, get(colMonthlyCharges))
	}
	senior, err := parseBool(get(colSeniorCitizen))
	if err != nil {
		return models.Record{}, fmt.Errorf("invalid %s: %w", colSeniorCitizen, err)
	}

	return models.Record{
		CustomerID:      get(colCustomerID),
		Gender:          get(colGender),
		SeniorCitizen:   senior,
		Partner:         get(colPartner),
		Dependents:      get(colDependents),
		Tenure:          tenure,
		PhoneService:    get(colPhoneService),
		InternetService: get(colInternetService),
		Contract:        get(colContract),
		PaymentMethod:   get(colPaymentMethod),
		MonthlyCharges:  monthly,
		TotalCharges:    ParseOptionalFloat(get(colTotalCharges)),
		Churn:           get(colChurn),
	}, nil
}

func parseTenure(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil && n >= 0 {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 || f != math.Trunc(f) {
		return 0, fmt.Errorf("invalid %s %q", colTenure, s)
	}
	return int(f), nil
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "1", "yes", "true":
		return true, nil
	case "0", "no", "false", "":
		return false, nil
	}
	return false, fmt.Errorf("unexpected value %q", s)
}

// ParseOptionalFloat возвращает nil для пустых и нечисловых значений.
func ParseOptionalFloat(s string) *float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}
