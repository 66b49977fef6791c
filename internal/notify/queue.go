package notify

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/codenuga/ledger-api/internal/ledger"
)

const (
	// workerCount is the number of concurrent delivery workers.
	workerCount = 2

	// maxAttempts bounds per-sink delivery retries.
	maxAttempts = 3
)

// Dispatcher queues expense notifications and delivers them to every sink
// in the background. It uses Go channels for distribution and is safe for
// concurrent use. This implementation is suitable for single-instance
// deployments; a multi-instance deployment would need an external queue.
//
// Delivery is fire-and-forget: a full queue or a failing sink never affects
// the operation that produced the notification.
type Dispatcher struct {
	composer  *Composer
	sinks     []Sink
	log       zerolog.Logger
	queue     chan delivery
	closeChan chan struct{}
	wg        sync.WaitGroup
	mu        sync.RWMutex
	closed    bool
}

// NewDispatcher creates a dispatcher. bufferSize determines how many
// notifications can be queued before new ones are dropped.
func NewDispatcher(composer *Composer, sinks []Sink, bufferSize int, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		composer:  composer,
		sinks:     sinks,
		log:       log,
		queue:     make(chan delivery, bufferSize),
		closeChan: make(chan struct{}),
	}
}

// NotifyExpense implements the recorder's notifier interface. It enqueues
// the notification without blocking: when the queue is full or the
// dispatcher is stopped, the notification is dropped and logged.
func (d *Dispatcher) NotifyExpense(ctx context.Context, n ledger.ExpenseNotification) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.log.Warn().Str("payer", n.Payer).Msg("Dispatcher stopped, notification dropped")
		return
	}

	select {
	case d.queue <- delivery{notification: n, enqueuedAt: time.Now()}:
	default:
		d.log.Warn().Str("payer", n.Payer).Msg("Notification queue full, notification dropped")
	}
}

// Start launches the delivery workers. The context bounds the lifetime of
// all workers.
func (d *Dispatcher) Start(ctx context.Context) {
	for i := 0; i < workerCount; i++ {
		d.wg.Add(1)
		go d.worker(ctx)
	}
}

func (d *Dispatcher) worker(ctx context.Context) {
	defer d.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case <-d.closeChan:
			d.drain(ctx)
			return
		case dl := <-d.queue:
			d.deliver(ctx, dl)
		}
	}
}

// drain delivers whatever is still buffered at shutdown. Enqueues stop
// before closeChan is closed, so the queue only shrinks here.
func (d *Dispatcher) drain(ctx context.Context) {
	for {
		select {
		case dl := <-d.queue:
			d.deliver(ctx, dl)
		default:
			return
		}
	}
}

// deliver composes the message once and pushes it to every sink. Each sink
// is retried independently with linear backoff; exhausted sinks are logged
// and skipped.
func (d *Dispatcher) deliver(ctx context.Context, dl delivery) {
	message, err := d.composer.Compose(ctx, dl.notification)
	if err != nil {
		d.log.Error().Err(err).Str("payer", dl.notification.Payer).Msg("Failed to compose notification")
		return
	}

	for _, sink := range d.sinks {
		if err := d.send(ctx, sink, message); err != nil {
			d.log.Error().Err(err).Str("sink", sink.Name()).Msg("Notification delivery failed")
			continue
		}
		d.log.Debug().
			Str("sink", sink.Name()).
			Dur("queued_for", time.Since(dl.enqueuedAt)).
			Msg("Notification delivered")
	}
}

func (d *Dispatcher) send(ctx context.Context, sink Sink, message string) error {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if lastErr = sink.Send(ctx, message); lastErr == nil {
			return nil
		}

		if attempt == maxAttempts {
			break
		}
		backoff := time.Duration(attempt) * time.Second
		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return lastErr
}

// Stop shuts the dispatcher down and waits for queued and in-flight
// deliveries to finish. The context bounds the wait; workers abandon the
// remaining queue if their Start context is cancelled first.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	close(d.closeChan)
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

var _ ledger.ExpenseNotifier = (*Dispatcher)(nil)
