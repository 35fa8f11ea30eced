package analytics

import (
	"sort"

	"github.com/nabeelimtiaz667/cust-churn-analysis/internal/models"
)

// Kind тип агрегации графика.
type Kind int

// Типы агрегаций.
const (
	KindValueCounts Kind = iota
	KindTenureSeries
	KindCrossTab
	KindBinnedHistogram
	KindBinnedRate
)

func (k Kind) String() string {
	switch k {
	case KindValueCounts:
		return "valueCounts"
	case KindTenureSeries:
		return "tenureSeries"
	case KindCrossTab:
		return "crossTab"
	case KindBinnedHistogram:
		return "binnedHistogram"
	case KindBinnedRate:
		return "binnedRate"
	}
	return "unknown"
}

// Диапазон месяцев для графика оттока по tenure.
const (
	TenureFirstMonth = 1
	TenureLastMonth  = 72
)

// Наборы интервалов для финансовых графиков.
var (
	MonthlyChargesBins = StepBins(20, 120, 10)
	TotalChargesBins   = StepBins(0, 8000, 1000).Unbounded()
)

// Имена графиков.
const (
	ChartChurnRate          = "churnRate"
	ChartTenureChurn        = "tenureChurn"
	ChartGenderChurn        = "genderChurn"
	ChartSeniorChurn        = "seniorChurn"
	ChartPartnerChurn       = "partnerChurn"
	ChartDependentsChurn    = "dependentsChurn"
	ChartInternetChurn      = "internetChurn"
	ChartContractChurn      = "contractChurn"
	ChartPaymentChurn       = "paymentChurn"
	ChartPhoneChurn         = "phoneChurn"
	ChartMonthlyChargesDist = "monthlyChargesDist"
	ChartTotalChargesDist   = "totalChargesDist"
	ChartMonthlyGroupsChurn = "monthlyGroupsChurn"
)

// ChartDef описывает, как построить график: тип агрегации и её параметры.
type ChartDef struct {
	Kind    Kind
	Column  Column
	Numeric NumericColumn
	Bins    Bins
}

var catalog = map[string]ChartDef{
	ChartChurnRate:          {Kind: KindValueCounts, Column: ColumnChurn},
	ChartTenureChurn:        {Kind: KindTenureSeries, Numeric: ColumnTenure},
	ChartGenderChurn:        {Kind: KindCrossTab, Column: ColumnGender},
	ChartSeniorChurn:        {Kind: KindCrossTab, Column: ColumnSeniorCitizen},
	ChartPartnerChurn:       {Kind: KindCrossTab, Column: ColumnPartner},
	ChartDependentsChurn:    {Kind: KindCrossTab, Column: ColumnDependents},
	ChartInternetChurn:      {Kind: KindCrossTab, Column: ColumnInternetService},
	ChartContractChurn:      {Kind: KindCrossTab, Column: ColumnContract},
	ChartPaymentChurn:       {Kind: KindCrossTab, Column: ColumnPaymentMethod},
	ChartPhoneChurn:         {Kind: KindCrossTab, Column: ColumnPhoneService},
	ChartMonthlyChargesDist: {Kind: KindBinnedHistogram, Numeric: ColumnMonthlyCharges, Bins: MonthlyChargesBins},
	ChartTotalChargesDist:   {Kind: KindBinnedHistogram, Numeric: ColumnTotalCharges, Bins: TotalChargesBins},
	ChartMonthlyGroupsChurn: {Kind: KindBinnedRate, Numeric: ColumnMonthlyCharges, Bins: MonthlyChargesBins},
}

// LookupChart возвращает описание графика по имени.
func LookupChart(name string) (ChartDef, bool) {
	def, ok := catalog[name]
	return def, ok
}

// ChartNames возвращает имена всех графиков в алфавитном порядке.
func ChartNames() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build строит график по описанию.
func (d ChartDef) Build(v View) models.ChartResult {
	switch d.Kind {
	case KindValueCounts:
		return ValueCounts(v, d.Column)
	case KindTenureSeries:
		return TenureSeries(v, TenureFirstMonth, TenureLastMonth)
	case KindCrossTab:
		return CrossTab(v, d.Column)
	case KindBinnedHistogram:
		return BinnedHistogram(v, d.Numeric, d.Bins)
	case KindBinnedRate:
		return BinnedRate(v, d.Numeric, d.Bins)
	}
	return models.EmptyResult{}
}
