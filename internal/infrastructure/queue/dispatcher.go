package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/99minutos/products-api/internal/core/domain"
	"github.com/99minutos/products-api/internal/core/ports"
	"github.com/99minutos/products-api/internal/pkg/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// AuditDispatcher writes validation audit records in the background. Records
// are sharded by owner across a fixed set of workers, so one owner's records
// are persisted in the order they were decided.
type AuditDispatcher struct {
	workers []chan domain.ValidationAudit
	repo    ports.AuditRepository
	log     zerolog.Logger
	wg      sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

// NewAuditDispatcher creates an AuditDispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewAuditDispatcher(numWorkers int, repo ports.AuditRepository, log zerolog.Logger) *AuditDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &AuditDispatcher{
		workers: make([]chan domain.ValidationAudit, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.ValidationAudit, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. ctx bounds every insert; cancelling
// it stops the workers without draining.
func (d *AuditDispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Shutdown stops accepting records, closes the worker queues and waits for
// the buffered records to be persisted. It returns ctx.Err() if ctx expires
// first; the caller then cancels the Start context to abandon the rest.
func (d *AuditDispatcher) Shutdown(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		for _, ch := range d.workers {
			close(ch)
		}
	}
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
		pending := 0
		for _, ch := range d.workers {
			pending += len(ch)
		}
		d.log.Warn().Int("pending", pending).Msg("audit drain interrupted")
		return ctx.Err()
	}
}

// Record hands a record to the worker responsible for its owner. When that
// worker's buffer is full, or the dispatcher is shut down, the record is
// dropped and logged; the caller is never blocked.
func (d *AuditDispatcher) Record(audit domain.ValidationAudit) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	idx := d.shardIndex(audit.Owner)
	if d.closed {
		metrics.AuditErrorsTotal.Inc()
		d.log.Warn().
			Str("owner", audit.Owner).
			Str("name", audit.Name).
			Msg("audit dispatcher stopped, record dropped")
		return
	}
	select {
	case d.workers[idx] <- audit:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.AuditErrorsTotal.Inc()
		d.log.Warn().
			Str("owner", audit.Owner).
			Str("name", audit.Name).
			Int("worker_id", idx).
			Msg("audit queue full, record dropped")
	}
}

// shardIndex maps an owner deterministically to a worker index.
func (d *AuditDispatcher) shardIndex(owner string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(owner))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *AuditDispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.ValidationAudit) {
	defer d.wg.Done()
	label := strconv.Itoa(id)

	for {
		select {
		case <-ctx.Done():
			return
		case audit, ok := <-ch:
			if !ok {
				return
			}
			metrics.AuditQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			if err := d.repo.InsertValidation(ctx, &audit); err != nil {
				metrics.AuditErrorsTotal.Inc()
				d.log.Error().Err(err).
					Str("owner", audit.Owner).
					Str("name", audit.Name).
					Int("worker_id", id).
					Msg("audit insert failed")
			}
		}
	}
}
