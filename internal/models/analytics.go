package models

// Stats сводная статистика по отфильтрованному срезу.
type Stats struct {
	TotalCustomers int     `json:"total_customers"`
	ChurnRate      float64 `json:"churn_rate"`
	AvgMonthly     float64 `json:"avg_monthly"`
	AvgTenure      float64 `json:"avg_tenure"`
}

// ChartResult результат построения графика.
// Конкретный тип: *SeriesResult, *BreakdownResult или EmptyResult.
type ChartResult interface {
	isChartResult()
}

// SeriesResult одна серия значений: {labels, values}.
type SeriesResult struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// BreakdownResult две серии, ушедшие и оставшиеся клиенты: {labels, churned, not_churned}.
type BreakdownResult struct {
	Labels     []string  `json:"labels"`
	Churned    []float64 `json:"churned"`
	NotChurned []float64 `json:"not_churned"`
}

// EmptyResult возвращается для неизвестного графика и сериализуется в {}.
type EmptyResult struct{}

func (*SeriesResult) isChartResult()    {}
func (*BreakdownResult) isChartResult() {}
func (EmptyResult) isChartResult()      {}
