// Package models содержит доменные структуры сервиса аналитики оттока:
// запись о клиенте, неизменяемый снимок датасета, параметры фильтрации,
// результаты агрегаций и структуры скоринга.
package models

// Значения поля Churn.
const (
	ChurnYes = "Yes"
	ChurnNo  = "No"
)

// Record представляет одну строку датасета клиентов.
// TotalCharges равен nil, если исходное значение отсутствовало или не парсилось как число.
type Record struct {
	CustomerID      string   `json:"customerID" db:"customer_id"`
	Gender          string   `json:"gender" db:"gender"`
	SeniorCitizen   bool     `json:"SeniorCitizen" db:"senior_citizen"`
	Partner         string   `json:"Partner" db:"partner"`
	Dependents      string   `json:"Dependents" db:"dependents"`
	Tenure          int      `json:"tenure" db:"tenure"`
	PhoneService    string   `json:"PhoneService" db:"phone_service"`
	InternetService string   `json:"InternetService" db:"internet_service"`
	Contract        string   `json:"Contract" db:"contract"`
	PaymentMethod   string   `json:"PaymentMethod" db:"payment_method"`
	MonthlyCharges  float64  `json:"MonthlyCharges" db:"monthly_charges"`
	TotalCharges    *float64 `json:"TotalCharges" db:"total_charges"`
	Churn           string   `json:"Churn" db:"churn"`
}

// Churned сообщает, ушёл ли клиент.
func (r *Record) Churned() bool {
	return r.Churn == ChurnYes
}

// Dataset упорядоченный неизменяемый снимок записей.
// После создания через NewDataset содержимое не меняется.
type Dataset struct {
	records []Record
}

// NewDataset копирует записи в новый снимок.
func NewDataset(records []Record) *Dataset {
	cp := make([]Record, len(records))
	copy(cp, records)
	return &Dataset{records: cp}
}

// Len возвращает количество записей.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.records)
}

// At возвращает указатель на запись с индексом i. Запись нельзя изменять.
func (d *Dataset) At(i int) *Record {
	return &d.records[i]
}
