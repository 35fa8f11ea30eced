package models

// Значения-заглушки "без ограничения" для фильтров.
const (
	AllSegments  = "All Segments"
	AllServices  = "All Services"
	AllContracts = "All Contracts"
)

// Значения фильтра периода.
const (
	PeriodLast30Days  = "Last 30 days"
	PeriodLast90Days  = "Last 90 days"
	PeriodLast6Months = "Last 6 months"
	PeriodLastYear    = "Last year"
)

// Значения фильтра сегмента.
const (
	SegmentNew       = "New Customers"
	SegmentLongTerm  = "Long-term Customers"
	SegmentHighValue = "High-value Customers"
)

// FilterSpec описывает набор необязательных предикатов, объединяемых через AND.
// Пустое поле означает отсутствие ограничения.
type FilterSpec struct {
	TimePeriod string `json:"time_period,omitempty"`
	Segment    string `json:"segment,omitempty"`
	Service    string `json:"service,omitempty"`
	Contract   string `json:"contract,omitempty"`
}

// FilterVocabulary допустимые значения фильтров для клиентских выпадающих списков.
type FilterVocabulary struct {
	TimePeriods []string `json:"time_periods"`
	Segments    []string `json:"segments"`
	Services    []string `json:"services"`
	Contracts   []string `json:"contracts"`
}
