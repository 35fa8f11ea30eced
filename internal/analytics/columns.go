package analytics

import "github.com/nabeelimtiaz667/cust-churn-analysis/internal/models"

// Column категориальная колонка датасета.
type Column string

// Категориальные колонки.
const (
	ColumnChurn           Column = "Churn"
	ColumnGender          Column = "gender"
	ColumnSeniorCitizen   Column = "SeniorCitizen"
	ColumnPartner         Column = "Partner"
	ColumnDependents      Column = "Dependents"
	ColumnInternetService Column = "InternetService"
	ColumnContract        Column = "Contract"
	ColumnPaymentMethod   Column = "PaymentMethod"
	ColumnPhoneService    Column = "PhoneService"
)

// Подписи SeniorCitizen.
const (
	LabelNotSenior = "Not Senior"
	LabelSenior    = "Senior"
)

// Value возвращает значение колонки для записи.
func (c Column) Value(r *models.Record) string {
	switch c {
	case ColumnChurn:
		return r.Churn
	case ColumnGender:
		return r.Gender
	case ColumnSeniorCitizen:
		if r.SeniorCitizen {
			return LabelSenior
		}
		return LabelNotSenior
	case ColumnPartner:
		return r.Partner
	case ColumnDependents:
		return r.Dependents
	case ColumnInternetService:
		return r.InternetService
	case ColumnContract:
		return r.Contract
	case ColumnPaymentMethod:
		return r.PaymentMethod
	case ColumnPhoneService:
		return r.PhoneService
	}
	return ""
}

// FixedLabels возвращает полный набор подписей колонки или nil, если набор определяется данными.
func (c Column) FixedLabels() []string {
	if c == ColumnSeniorCitizen {
		return []string{LabelNotSenior, LabelSenior}
	}
	return nil
}

// NumericColumn числовая колонка датасета.
type NumericColumn string

// Числовые колонки.
const (
	ColumnTenure         NumericColumn = "tenure"
	ColumnMonthlyCharges NumericColumn = "MonthlyCharges"
	ColumnTotalCharges   NumericColumn = "TotalCharges"
)

// Value возвращает значение колонки и false, если значение отсутствует.
func (c NumericColumn) Value(r *models.Record) (float64, bool) {
	switch c {
	case ColumnTenure:
		return float64(r.Tenure), true
	case ColumnMonthlyCharges:
		return r.MonthlyCharges, true
	case ColumnTotalCharges:
		if r.TotalCharges == nil {
			return 0, false
		}
		return *r.TotalCharges, true
	}
	return 0, false
}
