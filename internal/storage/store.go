// Package storage владеет снимком датасета клиентов на всё время жизни процесса.
//
// Снимок загружается из источника (CSV или PostgreSQL), приводится к доменной модели
// и публикуется атомарно. Опубликованный снимок никогда не изменяется: перезагрузка
// строит новый снимок и подменяет указатель целиком.
package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nabeelimtiaz667/cust-churn-analysis/internal/lib/sl"
	"github.com/nabeelimtiaz667/cust-churn-analysis/internal/models"
)

// ErrEmptyDataset возвращается, если источник не вернул ни одной записи.
var ErrEmptyDataset = errors.New("dataset is empty")

// Source загружает записи датасета.
type Source interface {
	Load(ctx context.Context) ([]models.Record, error)
	Name() string
}

// Observer принимает метрики загрузки датасета.
type Observer interface {
	SetDatasetRows(rows int)
	IncReload(ok bool)
}

// Store хранит текущий снимок датасета. Чтение снимка не требует блокировок.
type Store struct {
	source   Source
	log      *slog.Logger
	observer Observer

	current atomic.Pointer[models.Dataset]
	reload  sync.Mutex
}

// New создаёт хранилище и выполняет первую загрузку.
// Хранилище возвращается только после успешной публикации снимка.
func New(ctx context.Context, source Source, log *slog.Logger, observer Observer) (*Store, error) {
	const op = "storage.New"

	s := &Store{
		source:   source,
		log:      log,
		observer: observer,
	}
	if _, err := s.Reload(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s, nil
}

// Snapshot возвращает текущий снимок.
func (s *Store) Snapshot() *models.Dataset {
	return s.current.Load()
}

// Rows возвращает число записей текущего снимка.
func (s *Store) Rows() int {
	return s.Snapshot().Len()
}

// Name возвращает описание источника.
func (s *Store) Name() string {
	return s.source.Name()
}

// Reload загружает новый снимок из источника и атомарно публикует его.
// При ошибке остаётся предыдущий снимок.
func (s *Store) Reload(ctx context.Context) (int, error) {
	const op = "storage.Reload"

	s.reload.Lock()
	defer s.reload.Unlock()

	records, err := s.source.Load(ctx)
	if err == nil && len(records) == 0 {
		err = ErrEmptyDataset
	}
	if err != nil {
		s.observe(0, false)
		return 0, fmt.Errorf("%s: %s: %w", op, s.source.Name(), err)
	}

	dataset := models.NewDataset(records)
	s.current.Store(dataset)
	s.observe(dataset.Len(), true)

	s.log.Info("dataset loaded",
		slog.String("source", s.source.Name()),
		slog.Int("rows", dataset.Len()),
	)
	return dataset.Len(), nil
}

// Run периодически перезагружает датасет, пока не отменён ctx.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.Reload(ctx); err != nil {
				s.log.Error("failed to reload dataset", sl.Err(err))
			}
		}
	}
}

func (s *Store) observe(rows int, ok bool) {
	if s.observer == nil {
		return
	}
	s.observer.IncReload(ok)
	if ok {
		s.observer.SetDatasetRows(rows)
	}
}
