// Package dashboard выгружает статический дашборд оттока в книгу Excel:
// таблицы данных и нативные диаграммы на четырёх листах.
package dashboard

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"

	"github.com/nabeelimtiaz667/cust-churn-analysis/internal/analytics"
	"github.com/nabeelimtiaz667/cust-churn-analysis/internal/models"
)

// Source строит статистику и графики по фильтру.
type Source interface {
	ComputeStats(spec models.FilterSpec) models.Stats
	ComputeChart(name string, spec models.FilterSpec) models.ChartResult
}

// Progress получает отметку после построения каждого графика.
type Progress interface {
	Add(n int) error
}

// Panel одна диаграмма листа.
type Panel struct {
	Chart string
	Title string
	Type  excelize.ChartType
}

// Sheet лист книги и его диаграммы.
type Sheet struct {
	Name   string
	Panels []Panel
}

// Layout раскладка дашборда по листам.
var Layout = []Sheet{
	{
		Name: "Overview",
		Panels: []Panel{
			{Chart: analytics.ChartChurnRate, Title: "Churn Distribution", Type: excelize.Pie},
			{Chart: analytics.ChartTenureChurn, Title: "Churn Rate by Tenure (months)", Type: excelize.Line},
		},
	},
	{
		Name: "Demographics",
		Panels: []Panel{
			{Chart: analytics.ChartGenderChurn, Title: "Churn by Gender", Type: excelize.ColStacked},
			{Chart: analytics.ChartSeniorChurn, Title: "Churn by Senior Citizen", Type: excelize.ColStacked},
			{Chart: analytics.ChartPartnerChurn, Title: "Churn by Partner", Type: excelize.ColStacked},
			{Chart: analytics.ChartDependentsChurn, Title: "Churn by Dependents", Type: excelize.ColStacked},
		},
	},
	{
		Name: "Services",
		Panels: []Panel{
			{Chart: analytics.ChartInternetChurn, Title: "Churn by Internet Service", Type: excelize.ColStacked},
			{Chart: analytics.ChartContractChurn, Title: "Churn by Contract", Type: excelize.ColStacked},
			{Chart: analytics.ChartPaymentChurn, Title: "Churn by Payment Method", Type: excelize.BarStacked},
			{Chart: analytics.ChartPhoneChurn, Title: "Churn by Phone Service", Type: excelize.ColStacked},
		},
	},
	{
		Name: "Financials",
		Panels: []Panel{
			{Chart: analytics.ChartMonthlyChargesDist, Title: "Monthly Charges Distribution", Type: excelize.ColStacked},
			{Chart: analytics.ChartTotalChargesDist, Title: "Total Charges Distribution", Type: excelize.ColStacked},
			{Chart: analytics.ChartMonthlyGroupsChurn, Title: "Churn Rate by Monthly Charges (%)", Type: excelize.Col},
		},
	},
}

const (
	// минимальная высота панели в строках
	panelRows   = 18
	chartHeight = 320
	chartWidth  = 560
	chartCol    = "F"
	statsRows   = 6
	concurrency = 4
)

// PanelCount возвращает число диаграмм в раскладке.
func PanelCount() int {
	n := 0
	for _, s := range Layout {
		n += len(s.Panels)
	}
	return n
}

// Build строит книгу для фильтра spec. Графики считаются параллельно,
// запись в книгу выполняется последовательно.
func Build(ctx context.Context, src Source, spec models.FilterSpec, progress Progress) (*excelize.File, error) {
	const op = "dashboard.Build"

	results, err := compute(ctx, src, spec, progress)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	f := excelize.NewFile()
	for i, sheet := range Layout {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet.Name); err != nil {
				return nil, fmt.Errorf("%s: %w", op, err)
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		row := 1
		if i == 0 {
			if err := writeStats(f, sheet.Name, src.ComputeStats(spec)); err != nil {
				return nil, fmt.Errorf("%s: %w", op, err)
			}
			row += statsRows
		}

		for _, p := range sheet.Panels {
			used, err := writePanel(f, sheet.Name, row, p, results[p.Chart])
			if err != nil {
				return nil, fmt.Errorf("%s: %s: %w", op, p.Chart, err)
			}
			row += max(panelRows, used+2)
		}
	}
	f.SetActiveSheet(0)
	return f, nil
}

// Export строит книгу и сохраняет её в path.
func Export(ctx context.Context, src Source, spec models.FilterSpec, path string, progress Progress) error {
	const op = "dashboard.Export"

	f, err := Build(ctx, src, spec, progress)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func compute(ctx context.Context, src Source, spec models.FilterSpec, progress Progress) (map[string]models.ChartResult, error) {
	var panels []Panel
	for _, s := range Layout {
		panels = append(panels, s.Panels...)
	}

	out := make([]models.ChartResult, len(panels))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, p := range panels {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res := src.ComputeChart(p.Chart, spec)
			if _, empty := res.(models.EmptyResult); empty {
				return fmt.Errorf("unknown chart %q", p.Chart)
			}
			out[i] = res
			if progress != nil {
				_ = progress.Add(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := make(map[string]models.ChartResult, len(panels))
	for i, p := range panels {
		results[p.Chart] = out[i]
	}
	return results, nil
}

func writeStats(f *excelize.File, sheet string, st models.Stats) error {
	rows := [][]any{
		{"Total Customers", st.TotalCustomers},
		{"Churn Rate (%)", st.ChurnRate},
		{"Avg Monthly Charges", st.AvgMonthly},
		{"Avg Tenure (months)", st.AvgTenure},
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return err
		}
	}
	return nil
}

// writePanel пишет таблицу графика начиная со строки top, ставит диаграмму справа от неё
// и возвращает число занятых таблицей строк.
func writePanel(f *excelize.File, sheet string, top int, p Panel, res models.ChartResult) (int, error) {
	var (
		header []any
		rows   [][]any
	)
	switch r := res.(type) {
	case *models.SeriesResult:
		header = []any{p.Title, "Value"}
		for i, l := range r.Labels {
			rows = append(rows, []any{l, r.Values[i]})
		}
	case *models.BreakdownResult:
		header = []any{p.Title, "Churned", "Not Churned"}
		for i, l := range r.Labels {
			rows = append(rows, []any{l, r.Churned[i], r.NotChurned[i]})
		}
	default:
		return 0, fmt.Errorf("unsupported result %T", res)
	}
	if len(rows) == 0 {
		rows = append(rows, []any{"no data", 0})
	}

	cell, err := excelize.CoordinatesToCellName(1, top)
	if err != nil {
		return 0, err
	}
	if err := f.SetSheetRow(sheet, cell, &header); err != nil {
		return 0, err
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, top+1+i)
		if err != nil {
			return 0, err
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return 0, err
		}
	}

	first, last := top+1, top+len(rows)
	categories := fmt.Sprintf("'%s'!$A$%d:$A$%d", sheet, first, last)
	series := make([]excelize.ChartSeries, 0, len(header)-1)
	for col := 2; col <= len(header); col++ {
		name, err := excelize.ColumnNumberToName(col)
		if err != nil {
			return 0, err
		}
		series = append(series, excelize.ChartSeries{
			Name:       fmt.Sprintf("'%s'!$%s$%d", sheet, name, top),
			Categories: categories,
			Values:     fmt.Sprintf("'%s'!$%s$%d:$%s$%d", sheet, name, first, name, last),
		})
	}

	err = f.AddChart(sheet, fmt.Sprintf("%s%d", chartCol, top), &excelize.Chart{
		Type:      p.Type,
		Series:    series,
		Title:     []excelize.RichTextRun{{Text: p.Title}},
		Dimension: excelize.ChartDimension{Width: chartWidth, Height: chartHeight},
		Legend:    excelize.ChartLegend{Position: "bottom"},
		PlotArea:  excelize.ChartPlotArea{ShowVal: p.Type == excelize.Pie, ShowPercent: p.Type == excelize.Pie},
	})
	if err != nil {
		return 0, err
	}
	return len(rows) + 1, nil
}
