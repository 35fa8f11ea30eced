package analytics

import "github.com/nabeelimtiaz667/cust-churn-analysis/internal/models"

// Верхние границы tenure для фильтра периода.
var timePeriodMaxTenure = map[string]int{
	models.PeriodLast30Days:  1,
	models.PeriodLast90Days:  3,
	models.PeriodLast6Months: 6,
	models.PeriodLastYear:    12,
}

// ApplyFilters возвращает строки, удовлетворяющие всем заданным предикатам.
//
// Неизвестные значения периода и сегмента не ограничивают выборку.
// Сервис и контракт сравниваются точно, поэтому неизвестное значение не совпадёт ни с одной строкой.
// Предикаты периода и сегмента по tenure применяются вместе, даже если их пересечение пусто.
func ApplyFilters(v View, spec models.FilterSpec) View {
	preds := predicates(spec)
	if len(preds) == 0 {
		return v
	}
	return v.where(func(r *models.Record) bool {
		for _, p := range preds {
			if !p(r) {
				return false
			}
		}
		return true
	})
}

func predicates(spec models.FilterSpec) []func(*models.Record) bool {
	var preds []func(*models.Record) bool

	if maxTenure, ok := timePeriodMaxTenure[spec.TimePeriod]; ok {
		preds = append(preds, func(r *models.Record) bool { return r.Tenure <= maxTenure })
	}

	switch spec.Segment {
	case models.SegmentNew:
		preds = append(preds, func(r *models.Record) bool { return r.Tenure <= 6 })
	case models.SegmentLongTerm:
		preds = append(preds, func(r *models.Record) bool { return r.Tenure > 24 })
	case models.SegmentHighValue:
		preds = append(preds, func(r *models.Record) bool { return r.MonthlyCharges > 80 })
	}

	if spec.Service != "" && spec.Service != models.AllServices {
		service := spec.Service
		preds = append(preds, func(r *models.Record) bool { return r.InternetService == service })
	}

	if spec.Contract != "" && spec.Contract != models.AllContracts {
		contract := spec.Contract
		preds = append(preds, func(r *models.Record) bool { return r.Contract == contract })
	}

	return preds
}
