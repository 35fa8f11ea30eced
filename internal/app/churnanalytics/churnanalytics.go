package churnanalytics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/nabeelimtiaz667/cust-churn-analysis/internal/analytics"
	"github.com/nabeelimtiaz667/cust-churn-analysis/internal/cache"
	"github.com/nabeelimtiaz667/cust-churn-analysis/internal/config"
	"github.com/nabeelimtiaz667/cust-churn-analysis/internal/grpc/server"
	"github.com/nabeelimtiaz667/cust-churn-analysis/internal/lib/jwt"
	"github.com/nabeelimtiaz667/cust-churn-analysis/internal/lib/rabbitmq"
	"github.com/nabeelimtiaz667/cust-churn-analysis/internal/lib/sl"
	"github.com/nabeelimtiaz667/cust-churn-analysis/internal/metrics"
	"github.com/nabeelimtiaz667/cust-churn-analysis/internal/migrations"
	"github.com/nabeelimtiaz667/cust-churn-analysis/internal/scoring"
	"github.com/nabeelimtiaz667/cust-churn-analysis/internal/services/prediction"
	"github.com/nabeelimtiaz667/cust-churn-analysis/internal/storage"
	"github.com/nabeelimtiaz667/cust-churn-analysis/internal/storage/csvsource"
	"github.com/nabeelimtiaz667/cust-churn-analysis/internal/storage/postgres"
)

const (
	shutdownTimeout  = 15 * time.Second
	rabbitMQRetries  = 5
	rabbitMQInterval = 2 * time.Second
)

// App HTTP- и gRPC-серверы сервиса с их зависимостями.
type App struct {
	server *http.Server
	grpc   *server.Server
	grpcLn net.Listener
	store  *storage.Store
	cfg    *config.Config
	logger *slog.Logger

	closers []func() error
}

// New загружает датасет и модель, подключает необязательные Redis и RabbitMQ
// и собирает маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	a := &App{cfg: cfg, logger: logger}
	if err := a.init(ctx); err != nil {
		a.close()
		return nil, err
	}
	return a, nil
}

func (a *App) init(ctx context.Context) error {
	const op = "churnanalytics.New"

	m := metrics.New()

	source, err := a.openSource(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	a.store, err = storage.New(ctx, source, a.logger, m)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	model, err := scoring.Load(a.cfg.Model.ArtifactPath)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	a.logger.Info("model loaded", slog.String("version", model.Version()))

	opts := []prediction.Option{prediction.WithObserver(m)}
	if a.cfg.RedisConnection.Address != "" {
		c, err := cache.New(ctx, a.cfg.RedisConnection)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		a.closers = append(a.closers, c.Close)
		opts = append(opts, prediction.WithCache(c))
	}
	if a.cfg.RabbitMQ.URL != "" {
		p, err := a.openPublisher()
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		opts = append(opts, prediction.WithPublisher(p))
	}

	router := chi.NewRouter()
	RegisterRoutes(router, a.logger, Deps{
		Analytics: analytics.NewService(a.store, a.logger, m),
		Dataset:   a.store,
		Predictor: prediction.New(model, a.logger, opts...),
		Tokens:    jwt.NewJWTMaker(a.cfg.JWTToken.SecretKey, a.cfg.JWTToken.TokenTTL),
		Metrics:   m,
		RateLimit: a.cfg.RateLimit,
		CORS:      a.cfg.CORS,
	})

	a.server = &http.Server{
		Addr:         a.cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  a.cfg.HTTPServer.Timeout,
		WriteTimeout: a.cfg.HTTPServer.Timeout,
		IdleTimeout:  a.cfg.HTTPServer.IdleTimeout,
	}

	a.grpcLn, err = net.Listen("tcp", a.cfg.GRPCServer.Address)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	a.grpc = server.New(a.logger)
	return nil
}

func (a *App) openSource(ctx context.Context) (storage.Source, error) {
	switch a.cfg.Dataset.Source {
	case config.SourcePostgres:
		src, err := postgres.New(ctx, a.cfg.Dataset.PostgresDSN)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, src.Close)
		if err := migrations.Run(src.DB(), a.cfg.Dataset.MigrationsPath); err != nil {
			return nil, err
		}
		return src, nil
	default:
		return csvsource.New(a.cfg.Dataset.CSVPath), nil
	}
}

func (a *App) openPublisher() (*rabbitmq.Publisher, error) {
	conn, err := rabbitmq.Connect(a.cfg.RabbitMQ.URL, rabbitMQRetries, rabbitMQInterval)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, conn.Close)

	ch, err := rabbitmq.SetupChannel(conn, a.cfg.RabbitMQ.Exchange)
	if err != nil {
		return nil, err
	}
	p := rabbitmq.NewPublisher(ch, a.cfg.RabbitMQ.Exchange, a.cfg.RabbitMQ.RoutingKey)
	a.closers = append(a.closers, p.Close)

	go a.watchConnection(conn)
	return p, nil
}

func (a *App) watchConnection(conn *amqp.Connection) {
	if err := <-conn.NotifyClose(make(chan *amqp.Error, 1)); err != nil {
		a.logger.Warn("rabbitmq connection closed", slog.String("reason", err.Reason))
	}
}

// Run запускает серверы и перезагрузку датасета и блокируется до отмены ctx.
func (a *App) Run(ctx context.Context) error {
	defer a.close()

	go a.store.Run(ctx, a.cfg.Dataset.ReloadInterval)

	errCh := make(chan error, 2)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()
	go func() {
		errCh <- a.grpc.Serve(a.grpcLn)
	}()
	a.grpc.SetServing(true)

	select {
	case err := <-errCh:
		a.grpc.Stop()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down servers gracefully")
		a.grpc.Stop()
		return a.server.Shutdown(timeoutCtx)
	}
}

// close освобождает ресурсы в обратном порядке открытия.
func (a *App) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Error("failed to close resource", sl.Err(err))
		}
	}
	a.closers = nil
}
