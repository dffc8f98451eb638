// Package events writes the audit trail without blocking requests.
//
// Mutations queue an event on a buffered channel and a worker goroutine
// persists them, optionally fanning them out to an AMQP exchange. When
// the queue is full the event is dropped, the audit trail is not worth
// failing or delaying the mutation itself.
package events

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/splitpot/backend/internal/models"
	"gorm.io/gorm"
)

// Default is the worker Record queues on. It is set at startup.
var Default *Worker

// Record queues an event on the default worker. Without a running
// worker the event is discarded.
func Record(event models.Event) {
	if Default == nil {
		return
	}

	Default.Record(event)
}

// A Publisher forwards persisted events to the outside world.
type Publisher interface {
	Publish(ctx context.Context, event models.Event) error
}

// Worker persists queued events in the background.
type Worker struct {
	db        *gorm.DB
	publisher Publisher
	queue     chan models.Event
	wg        sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewWorker returns a worker writing to db. The publisher may be nil,
// events are then only persisted.
func NewWorker(db *gorm.DB, publisher Publisher, buffer int) *Worker {
	ctx, cancel := context.WithCancel(context.Background())
	return &Worker{
		db:        db,
		publisher: publisher,
		queue:     make(chan models.Event, buffer),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Start launches the worker goroutine.
func (w *Worker) Start() {
	w.wg.Go(func() {
		for {
			select {
			case <-w.ctx.Done():
				// Drain what is still queued before going down. The
				// worker context is canceled already, so publishing
				// gets a fresh one.
				for len(w.queue) > 0 {
					w.save(context.Background(), <-w.queue)
				}
				return
			case event := <-w.queue:
				w.save(w.ctx, event)
			}
		}
	})
}

// Record queues an event. It never blocks, when the queue is full the
// event is dropped with a warning.
func (w *Worker) Record(event models.Event) {
	select {
	case w.queue <- event:
	default:
		log.Warn().Str("resource", event.Resource).Str("action", string(event.Action)).Msg("Events queue full, dropping event")
	}
}

// Shutdown stops the worker after it drained the queue.
func (w *Worker) Shutdown() {
	w.cancel()
	w.wg.Wait()
}

func (w *Worker) save(ctx context.Context, event models.Event) {
	err := w.db.Create(&event).Error
	if err != nil {
		log.Error().Err(err).Str("resource", event.Resource).Msg("Events")
		return
	}

	if w.publisher == nil {
		return
	}

	err = w.publisher.Publish(ctx, event)
	if err != nil {
		log.Error().Err(err).Str("resource", event.Resource).Msg("Events")
	}
}
