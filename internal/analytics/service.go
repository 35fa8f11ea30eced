package analytics

import (
	"log/slog"
	"sort"
	"time"

	"github.com/nabeelimtiaz667/cust-churn-analysis/internal/models"
)

// Snapshotter отдаёт текущий неизменяемый снимок датасета.
type Snapshotter interface {
	Snapshot() *models.Dataset
}

// Observer принимает метрики выполнения запросов.
type Observer interface {
	ObserveQuery(operation string, duration time.Duration)
	IncChartRequest(chart string, known bool)
}

// Service фасад запросов: фильтрация снимка и построение статистики и графиков.
// Каждый вызов читает снимок один раз и ничего не кэширует.
type Service struct {
	store    Snapshotter
	log      *slog.Logger
	observer Observer
}

// NewService создаёт фасад над хранилищем. observer может быть nil.
func NewService(store Snapshotter, log *slog.Logger, observer Observer) *Service {
	if observer == nil {
		observer = noopObserver{}
	}
	return &Service{
		store:    store,
		log:      log,
		observer: observer,
	}
}

func (s *Service) view(spec models.FilterSpec) View {
	return ApplyFilters(NewView(s.store.Snapshot()), spec)
}

// ComputeStats возвращает сводную статистику по отфильтрованному срезу.
func (s *Service) ComputeStats(spec models.FilterSpec) models.Stats {
	started := time.Now()
	defer func() { s.observer.ObserveQuery("stats", time.Since(started)) }()

	return SummaryStats(s.view(spec))
}

// ComputeChart строит график по имени из каталога.
// Для неизвестного имени возвращается EmptyResult, а не ошибка.
func (s *Service) ComputeChart(name string, spec models.FilterSpec) models.ChartResult {
	def, ok := LookupChart(name)
	s.observer.IncChartRequest(name, ok)
	if !ok {
		s.log.Debug("unknown chart requested", slog.String("chart", name))
		return models.EmptyResult{}
	}

	started := time.Now()
	defer func() { s.observer.ObserveQuery("chart", time.Since(started)) }()

	return def.Build(s.view(spec))
}

// Charts возвращает имена доступных графиков.
func (s *Service) Charts() []string {
	return ChartNames()
}

// ListFilters возвращает словарь фильтров: фиксированные периоды и сегменты,
// а также отсортированные значения сервисов и контрактов из полного датасета.
func (s *Service) ListFilters() models.FilterVocabulary {
	d := s.store.Snapshot()
	return models.FilterVocabulary{
		TimePeriods: []string{
			models.PeriodLast30Days,
			models.PeriodLast90Days,
			models.PeriodLast6Months,
			models.PeriodLastYear,
		},
		Segments: []string{
			models.AllSegments,
			models.SegmentNew,
			models.SegmentLongTerm,
			models.SegmentHighValue,
		},
		Services:  append([]string{models.AllServices}, distinct(d, ColumnInternetService)...),
		Contracts: append([]string{models.AllContracts}, distinct(d, ColumnContract)...),
	}
}

func distinct(d *models.Dataset, col Column) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for i := 0; i < d.Len(); i++ {
		v := col.Value(d.At(i))
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

type noopObserver struct{}

func (noopObserver) ObserveQuery(string, time.Duration) {}
func (noopObserver) IncChartRequest(string, bool)       {}
