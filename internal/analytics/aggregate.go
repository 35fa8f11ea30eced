package analytics

import (
	"math"
	"sort"
	"strconv"

	"github.com/montanaflynn/stats"

	"github.com/nabeelimtiaz667/cust-churn-analysis/internal/models"
)

// Bins границы полуоткрытых интервалов [Edges[i], Edges[i+1]).
// Последняя граница может быть +Inf.
type Bins struct {
	Edges []float64
}

// StepBins строит границы from, from+step, ..., to.
func StepBins(from, to, step float64) Bins {
	var edges []float64
	for e := from; e <= to; e += step {
		edges = append(edges, e)
	}
	return Bins{Edges: edges}
}

// Unbounded добавляет верхний интервал до +Inf.
func (b Bins) Unbounded() Bins {
	edges := make([]float64, len(b.Edges), len(b.Edges)+1)
	copy(edges, b.Edges)
	return Bins{Edges: append(edges, math.Inf(1))}
}

// Len возвращает количество интервалов.
func (b Bins) Len() int {
	if len(b.Edges) < 2 {
		return 0
	}
	return len(b.Edges) - 1
}

// Labels возвращает подписи интервалов вида "20-30"; для неограниченного интервала "8000+".
func (b Bins) Labels() []string {
	labels := make([]string, b.Len())
	for i := range labels {
		lo, hi := b.Edges[i], b.Edges[i+1]
		if math.IsInf(hi, 1) {
			labels[i] = formatEdge(lo) + "+"
			continue
		}
		labels[i] = formatEdge(lo) + "-" + formatEdge(hi)
	}
	return labels
}

// Index возвращает номер интервала, содержащего x, или false, если x вне границ.
func (b Bins) Index(x float64) (int, bool) {
	if b.Len() == 0 || math.IsNaN(x) {
		return 0, false
	}
	j := sort.Search(len(b.Edges), func(j int) bool { return b.Edges[j] > x })
	if j == 0 || j == len(b.Edges) {
		return 0, false
	}
	return j - 1, true
}

func formatEdge(e float64) string {
	return strconv.FormatFloat(e, 'f', -1, 64)
}

// round округляет до places знаков; NaN превращается в 0.
func round(x float64, places int) float64 {
	r, err := stats.Round(x, places)
	if err != nil {
		return 0
	}
	return r
}

// churnRate доля ушедших в процентах, 0 для пустой группы.
func churnRate(churned, total int) float64 {
	if total == 0 {
		return 0
	}
	return round(float64(churned)/float64(total)*100, 2)
}

func mean(values []float64) float64 {
	m, err := stats.Mean(values)
	if err != nil {
		return 0
	}
	return m
}

// SummaryStats считает количество клиентов, процент оттока и средние значения.
// Для пустого среза все поля равны 0.
func SummaryStats(v View) models.Stats {
	n := v.Len()
	if n == 0 {
		return models.Stats{}
	}

	monthly := make([]float64, n)
	tenure := make([]float64, n)
	churned := 0
	for i := 0; i < n; i++ {
		r := v.At(i)
		monthly[i] = r.MonthlyCharges
		tenure[i] = float64(r.Tenure)
		if r.Churned() {
			churned++
		}
	}

	return models.Stats{
		TotalCustomers: n,
		ChurnRate:      churnRate(churned, n),
		AvgMonthly:     round(mean(monthly), 2),
		AvgTenure:      round(mean(tenure), 1),
	}
}

// ValueCounts считает вхождения каждого значения колонки.
// Порядок: по убыванию количества, при равенстве по первому появлению.
func ValueCounts(v View, col Column) *models.SeriesResult {
	counts := make(map[string]int)
	var order []string
	for i := 0; i < v.Len(); i++ {
		key := col.Value(v.At(i))
		if _, seen := counts[key]; !seen {
			order = append(order, key)
		}
		counts[key]++
	}

	sort.SliceStable(order, func(i, j int) bool { return counts[order[i]] > counts[order[j]] })

	res := &models.SeriesResult{
		Labels: make([]string, 0, len(order)),
		Values: make([]float64, 0, len(order)),
	}
	for _, key := range order {
		res.Labels = append(res.Labels, key)
		res.Values = append(res.Values, float64(counts[key]))
	}
	return res
}

// CrossTab считает ушедших и оставшихся клиентов по значениям колонки.
// Если у колонки фиксированный набор подписей, он возвращается целиком, недостающие значения равны 0.
// Иначе подписями служат встретившиеся значения в порядке возрастания.
func CrossTab(v View, col Column) *models.BreakdownResult {
	type pair struct{ yes, no int }
	groups := make(map[string]*pair)
	for i := 0; i < v.Len(); i++ {
		r := v.At(i)
		key := col.Value(r)
		g, ok := groups[key]
		if !ok {
			g = &pair{}
			groups[key] = g
		}
		switch r.Churn {
		case models.ChurnYes:
			g.yes++
		case models.ChurnNo:
			g.no++
		}
	}

	labels := col.FixedLabels()
	if labels == nil {
		labels = make([]string, 0, len(groups))
		for key := range groups {
			labels = append(labels, key)
		}
		sort.Strings(labels)
	}

	res := &models.BreakdownResult{
		Labels:     labels,
		Churned:    make([]float64, len(labels)),
		NotChurned: make([]float64, len(labels)),
	}
	for i, label := range labels {
		if g, ok := groups[label]; ok {
			res.Churned[i] = float64(g.yes)
			res.NotChurned[i] = float64(g.no)
		}
	}
	return res
}

// TenureSeries считает процент оттока для каждого месяца tenure от first до last включительно.
// Месяцы без клиентов дают 0.
func TenureSeries(v View, first, last int) *models.SeriesResult {
	size := last - first + 1
	if size < 0 {
		size = 0
	}
	totals := make([]int, size)
	churned := make([]int, size)
	for i := 0; i < v.Len(); i++ {
		r := v.At(i)
		if r.Tenure < first || r.Tenure > last {
			continue
		}
		totals[r.Tenure-first]++
		if r.Churned() {
			churned[r.Tenure-first]++
		}
	}

	res := &models.SeriesResult{
		Labels: make([]string, size),
		Values: make([]float64, size),
	}
	for i := 0; i < size; i++ {
		res.Labels[i] = strconv.Itoa(first + i)
		res.Values[i] = churnRate(churned[i], totals[i])
	}
	return res
}

// BinnedHistogram раскладывает строки по интервалам и считает ушедших и оставшихся в каждом.
// Строки без значения колонки пропускаются.
func BinnedHistogram(v View, col NumericColumn, bins Bins) *models.BreakdownResult {
	res := &models.BreakdownResult{
		Labels:     bins.Labels(),
		Churned:    make([]float64, bins.Len()),
		NotChurned: make([]float64, bins.Len()),
	}
	for i := 0; i < v.Len(); i++ {
		r := v.At(i)
		x, ok := col.Value(r)
		if !ok {
			continue
		}
		idx, ok := bins.Index(x)
		if !ok {
			continue
		}
		switch r.Churn {
		case models.ChurnYes:
			res.Churned[idx]++
		case models.ChurnNo:
			res.NotChurned[idx]++
		}
	}
	return res
}

// BinnedRate раскладывает строки по интервалам и считает процент оттока в каждом.
// Пустой интервал даёт 0.
func BinnedRate(v View, col NumericColumn, bins Bins) *models.SeriesResult {
	totals := make([]int, bins.Len())
	churned := make([]int, bins.Len())
	for i := 0; i < v.Len(); i++ {
		r := v.At(i)
		x, ok := col.Value(r)
		if !ok {
			continue
		}
		idx, ok := bins.Index(x)
		if !ok {
			continue
		}
		totals[idx]++
		if r.Churned() {
			churned[idx]++
		}
	}

	res := &models.SeriesResult{
		Labels: bins.Labels(),
		Values: make([]float64, bins.Len()),
	}
	for i := range res.Values {
		res.Values[i] = churnRate(churned[i], totals[i])
	}
	return res
}
