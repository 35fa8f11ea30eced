// Package prediction связывает модель скоринга с кэшем результатов и публикацией событий.
package prediction

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"

	"github.com/nabeelimtiaz667/cust-churn-analysis/internal/lib/sl"
	"github.com/nabeelimtiaz667/cust-churn-analysis/internal/models"
)

const cachePrefix = "prediction:"

// Scorer оценивает одного клиента.
type Scorer interface {
	Predict(in models.PredictionInput) (models.PredictionOutput, error)
	Version() string
}

// Cache описывает методы для кэширования результатов.
type Cache interface {
	// Get пытается получить значение из кэша по ключу.
	Get(ctx context.Context, key string, result any) (bool, error)
	// Set сохраняет значение в кэш.
	Set(ctx context.Context, key string, value any) error
}

// Publisher отправляет событие о скоринге.
type Publisher interface {
	Publish(message any) error
}

// Observer учитывает результаты скоринга в метриках.
type Observer interface {
	IncPrediction(label string, cached bool)
}

// Service выполняет скоринг. Кэш, публикация и метрики необязательны.
type Service struct {
	scorer    Scorer
	cache     Cache
	publisher Publisher
	observer  Observer
	log       *slog.Logger
	now       func() time.Time
}

// Option настраивает Service.
type Option func(*Service)

// WithCache включает кэширование результатов.
func WithCache(c Cache) Option {
	return func(s *Service) { s.cache = c }
}

// WithPublisher включает публикацию событий.
func WithPublisher(p Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

// WithObserver подключает метрики.
func WithObserver(o Observer) Option {
	return func(s *Service) { s.observer = o }
}

// New создаёт сервис скоринга.
func New(scorer Scorer, log *slog.Logger, opts ...Option) *Service {
	s := &Service{
		scorer: scorer,
		log:    log,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Predict возвращает результат скоринга, сначала проверяя кэш.
// Ошибки кэша и брокера только логируются, ошибка модели возвращается вызывающему.
func (s *Service) Predict(ctx context.Context, in models.PredictionInput) (models.PredictionOutput, error) {
	const op = "services.prediction.Predict"

	log := s.log.With(slog.String("op", op))

	key, err := s.cacheKey(in)
	if err != nil {
		return models.PredictionOutput{}, fmt.Errorf("%s: %w", op, err)
	}

	if s.cache != nil {
		var cached models.PredictionOutput
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			log.Warn("failed to read prediction from cache", sl.Err(err))
		} else if found {
			log.Debug("prediction served from cache", slog.String("key", key))
			s.observe(cached.PredictionLabel, true)
			return cached, nil
		}
	}

	out, err := s.scorer.Predict(in)
	if err != nil {
		return models.PredictionOutput{}, fmt.Errorf("%s: %w", op, err)
	}
	s.observe(out.PredictionLabel, false)

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, out); err != nil {
			log.Warn("failed to cache prediction", sl.Err(err))
		}
	}

	if s.publisher != nil {
		event := models.PredictionEvent{
			ID:           uuid.NewString(),
			ModelVersion: s.scorer.Version(),
			Input:        in,
			Output:       out,
			CreatedAt:    s.now().UTC().Format(time.RFC3339),
		}
		if err := s.publisher.Publish(event); err != nil {
			log.Warn("failed to publish prediction event", sl.Err(err))
		}
	}

	return out, nil
}

// cacheKey строит ключ из версии модели и хэша входа.
func (s *Service) cacheKey(in models.PredictionInput) (string, error) {
	data, err := json.Marshal(in)
	if err != nil {
		return "", err
	}
	sum := blake2b.Sum256(data)
	return cachePrefix + s.scorer.Version() + ":" + hex.EncodeToString(sum[:]), nil
}

func (s *Service) observe(label string, cached bool) {
	if s.observer != nil {
		s.observer.IncPrediction(label, cached)
	}
}
