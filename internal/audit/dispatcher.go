package audit

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

type Event struct {
	BarbershopID uint
	UserID       *uint
	Action       string
	Entity       string
	EntityID     *uint
	Metadata     any
	RequestID    string
	OccurredAt   time.Time
}

// Sink recebe os eventos de auditoria (banco, kafka, ...).
type Sink interface {
	Record(ctx context.Context, ev Event) error
}

type Dispatcher struct {
	log   *zap.Logger
	sinks []Sink
	queue chan Event
	done  chan struct{}

	mu     sync.RWMutex
	closed bool
}

const queueSize = 100

func NewDispatcher(log *zap.Logger, sinks ...Sink) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}

	d := &Dispatcher{
		log:   log,
		sinks: sinks,
		queue: make(chan Event, queueSize),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		for _, s := range d.sinks {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := s.Record(ctx, ev); err != nil {
				d.log.Warn("audit sink failed",
					zap.String("action", ev.Action),
					zap.Uint("barbershop_id", ev.BarbershopID),
					zap.Error(err),
				)
			}
			cancel()
		}
	}
}

// Dispatch nunca bloqueia a requisição. Dispatcher nil é ignorado.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return
	}

	select {
	case d.queue <- ev:
	default:
		// fila cheia → descartamos audit (nunca quebrar API)
		d.log.Warn("audit queue full, dropping event", zap.String("action", ev.Action))
	}
}

// Close drena a fila e espera o worker terminar.
func (d *Dispatcher) Close(ctx context.Context) error {
	if d == nil {
		return nil
	}

	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
