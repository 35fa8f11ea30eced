// Package request разбирает общие параметры HTTP-запросов.
package request

import (
	"net/http"

	"github.com/nabeelimtiaz667/cust-churn-analysis/internal/models"
)

// Имена query-параметров фильтра.
const (
	ParamTimePeriod = "time_period"
	ParamSegment    = "segment"
	ParamService    = "service"
	ParamContract   = "contract"
)

// FilterSpec собирает фильтр из query-параметров. Отсутствующие параметры остаются пустыми.
func FilterSpec(r *http.Request) models.FilterSpec {
	q := r.URL.Query()
	return models.FilterSpec{
		TimePeriod: q.Get(ParamTimePeriod),
		Segment:    q.Get(ParamSegment),
		Service:    q.Get(ParamService),
		Contract:   q.Get(ParamContract),
	}
}
