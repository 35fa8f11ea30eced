package storage

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nabeelimtiaz667/cust-churn-analysis/internal/models"
)

type SourceMock struct{ mock.Mock }

func (m *SourceMock) Load(ctx context.Context) ([]models.Record, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Record), args.Error(1)
}

func (m *SourceMock) Name() string { return "mock" }

type ObserverMock struct {
	mu      sync.Mutex
	rows    int
	reloads map[bool]int
}

func (o *ObserverMock) SetDatasetRows(rows int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.rows = rows
}

func (o *ObserverMock) IncReload(ok bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.reloads == nil {
		o.reloads = make(map[bool]int)
	}
	o.reloads[ok]++
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func records(n int) []models.Record {
	out := make([]models.Record, n)
	for i := range out {
		out[i] = models.Record{Tenure: i, Churn: models.ChurnNo}
	}
	return out
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(m *SourceMock)
		wantErr error
		rows    int
	}{
		{
			name: "успешная загрузка",
			setup: func(m *SourceMock) {
				m.On("Load", mock.Anything).Return(records(3), nil).Once()
			},
			rows: 3,
		},
		{
			name: "ошибка источника",
			setup: func(m *SourceMock) {
				m.On("Load", mock.Anything).Return(nil, errors.New("boom")).Once()
			},
			wantErr: errors.New("boom"),
		},
		{
			name: "пустой датасет",
			setup: func(m *SourceMock) {
				m.On("Load", mock.Anything).Return([]models.Record{}, nil).Once()
			},
			wantErr: ErrEmptyDataset,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := new(SourceMock)
			tt.setup(src)
			obs := &ObserverMock{}

			store, err := New(context.Background(), src, newNoopLogger(), obs)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr.Error())
				assert.Nil(t, store)
				assert.Equal(t, 1, obs.reloads[false])
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.rows, store.Snapshot().Len())
			assert.Equal(t, tt.rows, obs.rows)
			src.AssertExpectations(t)
		})
	}
}

func TestNew_EmptyDatasetIsSentinel(t *testing.T) {
	src := new(SourceMock)
	src.On("Load", mock.Anything).Return([]models.Record{}, nil).Once()

	_, err := New(context.Background(), src, newNoopLogger(), nil)

	assert.ErrorIs(t, err, ErrEmptyDataset)
}

func TestReload_SwapsSnapshotAndKeepsOldOne(t *testing.T) {
	src := new(SourceMock)
	src.On("Load", mock.Anything).Return(records(2), nil).Once()
	src.On("Load", mock.Anything).Return(records(5), nil).Once()
	src.On("Load", mock.Anything).Return(nil, errors.New("source unavailable")).Once()

	store, err := New(context.Background(), src, newNoopLogger(), nil)
	require.NoError(t, err)

	first := store.Snapshot()
	require.Equal(t, 2, first.Len())

	rows, err := store.Reload(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, rows)
	assert.Equal(t, 5, store.Snapshot().Len())
	// старый снимок не изменился
	assert.Equal(t, 2, first.Len())

	_, err = store.Reload(context.Background())
	require.Error(t, err)
	assert.Equal(t, 5, store.Snapshot().Len())
	assert.Equal(t, 5, store.Rows())
	src.AssertExpectations(t)
}

func TestReload_ConcurrentReaders(t *testing.T) {
	src := new(SourceMock)
	src.On("Load", mock.Anything).Return(records(10), nil)

	store, err := New(context.Background(), src, newNoopLogger(), nil)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				d := store.Snapshot()
				assert.Equal(t, 10, d.Len())
			}
		}()
	}
	for i := 0; i < 5; i++ {
		_, err := store.Reload(context.Background())
		require.NoError(t, err)
	}
	wg.Wait()
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	src := new(SourceMock)
	src.On("Load", mock.Anything).Return(records(1), nil)

	store, err := New(context.Background(), src, newNoopLogger(), nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		store.Run(ctx, 5*time.Millisecond)
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
	assert.GreaterOrEqual(t, len(src.Calls), 2)
}
