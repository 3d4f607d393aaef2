package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/smartcare/clinic-api/internal/api/metrics"
	"github.com/smartcare/clinic-api/internal/core/domain"
	"github.com/smartcare/clinic-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	sinkTimeout    = 5 * time.Second
)

// Dispatcher routes audit events to a fixed set of workers using consistent
// hashing on the actor, so one actor's events reach the sinks in order.
// Every worker writes each event to every sink.
type Dispatcher struct {
	workers []chan domain.AuditEvent
	sinks   []ports.AuditSink
	log     zerolog.Logger

	mu      sync.RWMutex
	closed  bool
	wg      sync.WaitGroup
	dropped atomic.Int64
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, log zerolog.Logger, sinks ...ports.AuditSink) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.AuditEvent, numWorkers),
		sinks:   sinks,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AuditEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers exit once Close has drained
// their channel or ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Record enqueues an event without blocking. When the worker's channel is
// full, or the dispatcher is closed, the event is dropped and counted.
func (d *Dispatcher) Record(event domain.AuditEvent) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.drop(event, "closed")
		return
	}

	idx := d.shardIndex(event.Actor)
	select {
	case d.workers[idx] <- event:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		d.drop(event, "queue_full")
	}
}

// Close stops accepting events and waits for queued ones to be written.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	for _, ch := range d.workers {
		close(ch)
	}
	d.mu.Unlock()

	d.wg.Wait()
}

// Dropped returns how many events were discarded.
func (d *Dispatcher) Dropped() int64 {
	return d.dropped.Load()
}

func (d *Dispatcher) drop(event domain.AuditEvent, reason string) {
	d.dropped.Add(1)
	metrics.AuditEventsDroppedTotal.WithLabelValues(reason).Inc()
	d.log.Warn().
		Str("actor", event.Actor).
		Str("action", string(event.Action)).
		Str("reason", reason).
		Msg("audit event dropped")
}

// shardIndex maps an actor deterministically to a worker index.
func (d *Dispatcher) shardIndex(actor string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(actor))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AuditEvent) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
			d.deliver(ctx, id, event)
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, id int, event domain.AuditEvent) {
	for _, sink := range d.sinks {
		writeCtx, cancel := context.WithTimeout(ctx, sinkTimeout)
		err := sink.Write(writeCtx, event)
		cancel()
		if err != nil {
			metrics.AuditSinkErrorsTotal.Inc()
			d.log.Error().Err(err).
				Str("actor", event.Actor).
				Str("action", string(event.Action)).
				Int("worker_id", id).
				Msg("audit sink write failed")
			continue
		}
	}
	metrics.AuditEventsTotal.WithLabelValues(string(event.Action)).Inc()
}
