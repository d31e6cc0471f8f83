package activity

/*
Файл journal.go реализует журнал действий оператора.

- Record не блокирует вызывающего: событие уходит в буферизированный канал,
  при переполнении оно сбрасывается с записью в лог.
- Воркер копит события и отдает их всем хранилищам пачкой,
  по таймеру или при достижении BatchSize.
- Stop закрывает вход, воркер вычитывает остаток канала и делает финальный flush.
*/

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Storage определяет, куда физически сохраняются события
type Storage interface {
	// WriteBatch сохраняет пачку событий за один раз
	WriteBatch(ctx context.Context, events []Event) error
}

type Recorder interface {
	Record(event Event)
}

type Options struct {
	BufferSize    int
	BatchSize     int
	FlushInterval time.Duration
	Metrics       *Metrics // nil — метрики пишутся в отдельный, никуда не подключенный реестр
}

func (o Options) withDefaults() Options {
	if o.BufferSize <= 0 {
		o.BufferSize = 1000
	}
	if o.BatchSize <= 0 {
		o.BatchSize = 100
	}
	if o.FlushInterval <= 0 {
		o.FlushInterval = 500 * time.Millisecond
	}
	if o.Metrics == nil {
		o.Metrics = NewMetrics(nil)
	}
	return o
}

type Journal struct {
	ch     chan Event
	sinks  []Storage
	opts   Options
	logger *zap.Logger
	wg     sync.WaitGroup

	mu       sync.RWMutex // Record держит RLock, Stop берет Lock перед close
	isClosed atomic.Bool
}

func NewJournal(opts Options, logger *zap.Logger, sinks ...Storage) *Journal {
	opts = opts.withDefaults()
	return &Journal{
		ch:     make(chan Event, opts.BufferSize),
		sinks:  sinks,
		opts:   opts,
		logger: logger.Named("activity"),
	}
}

func (j *Journal) Start() {
	j.wg.Add(1)
	go j.worker()
}

// Stop запирает вход в канал и ждет, пока воркер всё допишет.
func (j *Journal) Stop() {
	j.mu.Lock()
	if j.isClosed.Swap(true) {
		j.mu.Unlock()
		return
	}
	close(j.ch)
	j.mu.Unlock()

	j.logger.Info("stopping journal: flushing buffer")
	j.wg.Wait()
	j.logger.Info("journal stopped")
}

func (j *Journal) Record(event Event) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}

	j.mu.RLock()
	defer j.mu.RUnlock()

	if j.isClosed.Load() {
		j.opts.Metrics.Dropped.WithLabelValues("stopped").Inc()
		j.logger.Warn("activity dropped: journal is stopping",
			zap.String("id", event.ID), zap.String("title", event.Title))
		return
	}

	select {
	case j.ch <- event:
		j.opts.Metrics.BufferFill.Set(float64(len(j.ch)))
	default:
		j.opts.Metrics.Dropped.WithLabelValues("overflow").Inc()
		j.logger.Error("activity_buffer_overflow",
			zap.String("id", event.ID),
			zap.String("title", event.Title),
		)
	}
}

func (j *Journal) worker() {
	defer j.wg.Done()

	batch := make([]Event, 0, j.opts.BatchSize)
	ticker := time.NewTicker(j.opts.FlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}
		for _, sink := range j.sinks {
			// Background: контекст запроса к этому моменту уже может быть закрыт
			if err := sink.WriteBatch(context.Background(), batch); err != nil {
				j.opts.Metrics.SinkErrors.Inc()
				j.logger.Error("activity flush failed", zap.Int("events", len(batch)), zap.Error(err))
			}
		}
		j.opts.Metrics.Flushed.Add(float64(len(batch)))
		j.opts.Metrics.BufferFill.Set(float64(len(j.ch)))
		batch = batch[:0]
	}

	for {
		select {
		case event, ok := <-j.ch:
			if !ok {
				flush()
				return
			}
			batch = append(batch, event)
			if len(batch) >= j.opts.BatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		}
	}
}
