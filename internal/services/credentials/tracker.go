package credentials

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/types"
	"github.com/shashank-sharma/backend/internal/logger"
	"github.com/shashank-sharma/backend/internal/metrics"
	"github.com/shashank-sharma/backend/internal/store"
	"github.com/shashank-sharma/backend/internal/util"
)

// Tracker is the bounded, non-blocking buffer-batch-flush pipeline that
// sits between instrumentation points (the egress transport, the
// dev-token ingress middleware, direct SSH tracking) and the
// credential_usage store.
type Tracker struct {
	config      *Config
	buffer      chan *UsageEvent
	flushTicker *time.Ticker
	sem         *semaphore.Weighted
	wg          sync.WaitGroup
	ctx         context.Context
	cancel      context.CancelFunc

	eventsBuffered  int64
	eventsFlushed   int64
	errors          int64
	bufferOverflows int64
}

func NewTracker(config *Config) *Tracker {
	if config == nil {
		config = DefaultConfig()
	}

	ctx, cancel := context.WithCancel(context.Background())

	tracker := &Tracker{
		config:      config,
		buffer:      make(chan *UsageEvent, config.BufferSize),
		flushTicker: time.NewTicker(config.FlushInterval),
		sem:         semaphore.NewWeighted(int64(config.WorkerPoolSize)),
		ctx:         ctx,
		cancel:      cancel,
	}

	tracker.wg.Add(1)
	go tracker.worker()

	return tracker
}

// TrackUsage enqueues an event, never blocking the caller beyond the
// submission grace period (~100ms).
func (t *Tracker) TrackUsage(ctx context.Context, event *UsageEvent) error {
	atomic.AddInt64(&t.eventsBuffered, 1)
	metrics.EventsBuffered.Inc()

	select {
	case t.buffer <- event:
		metrics.BufferDepth.Inc()
		return nil
	case <-time.After(100 * time.Millisecond):
		select {
		case t.buffer <- event:
			metrics.BufferDepth.Inc()
			return nil
		default:
			atomic.AddInt64(&t.bufferOverflows, 1)
			metrics.BufferOverflows.Inc()
			logger.LogWarning("Credential usage buffer full, dropping oldest event")

			select {
			case <-t.buffer:
				metrics.BufferDepth.Dec()
				select {
				case t.buffer <- event:
					metrics.BufferDepth.Inc()
					return nil
				default:
					return newTrackingError(KindOverflow, "buffer full, event dropped", nil)
				}
			default:
				return newTrackingError(KindOverflow, "buffer full, event dropped", nil)
			}
		}
	}
}

// Flush drains whatever is currently buffered and writes it immediately.
func (t *Tracker) Flush(ctx context.Context) error {
	events := t.drainBuffer()
	if len(events) == 0 {
		return nil
	}
	return t.writeBatch(ctx, events)
}

// Shutdown stops the flush ticker, cancels the dispatcher, performs a
// final best-effort flush, and waits (bounded by ctx) for in-flight
// writers to finish.
func (t *Tracker) Shutdown(ctx context.Context) error {
	logger.LogInfo("Shutting down credential usage tracker...")
	t.flushTicker.Stop()
	t.cancel()

	if err := t.Flush(ctx); err != nil {
		logger.LogError("Error flushing events during shutdown: %v", err)
	}

	done := make(chan struct{})
	go func() {
		t.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logger.LogInfo("Credential usage tracker shut down successfully")
		return nil
	case <-ctx.Done():
		return newTrackingError(KindShutdownTimeout, "shutdown timeout", ctx.Err())
	}
}

func (t *Tracker) GetStats() TrackerStats {
	return TrackerStats{
		EventsBuffered:  atomic.LoadInt64(&t.eventsBuffered),
		EventsFlushed:   atomic.LoadInt64(&t.eventsFlushed),
		Errors:          atomic.LoadInt64(&t.errors),
		BufferOverflows: atomic.LoadInt64(&t.bufferOverflows),
	}
}

func (t *Tracker) worker() {
	defer t.wg.Done()

	for {
		select {
		case <-t.ctx.Done():
			events := t.drainBuffer()
			if len(events) > 0 {
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				_ = t.writeBatch(ctx, events)
				cancel()
			}
			return

		case <-t.flushTicker.C:
			events := t.drainBuffer()
			if len(events) > 0 {
				t.dispatchBatch(events)
			}

		case event := <-t.buffer:
			metrics.BufferDepth.Dec()
			events := []*UsageEvent{event}
			events = append(events, t.drainBufferUpTo(t.config.BatchSize-1)...)

			if len(events) >= t.config.BatchSize {
				t.dispatchBatch(events)
			} else {
				for i := len(events) - 1; i > 0; i-- {
					select {
					case t.buffer <- events[i]:
						metrics.BufferDepth.Inc()
					default:
						atomic.AddInt64(&t.bufferOverflows, 1)
						metrics.BufferOverflows.Inc()
					}
				}
			}
		}
	}
}

// dispatchBatch acquires a worker slot and writes the batch asynchronously.
// If the pool is saturated, it falls back to a direct synchronous write
// so a batch is never silently dropped while waiting on a slot.
func (t *Tracker) dispatchBatch(events []*UsageEvent) {
	if !t.sem.TryAcquire(1) {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := t.writeBatch(ctx, events); err != nil {
			logger.LogError("Error flushing credential usage events: %v", err)
		}
		return
	}

	t.wg.Add(1)
	go func(evts []*UsageEvent) {
		defer t.sem.Release(1)
		defer t.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := t.writeBatch(ctx, evts); err != nil {
			logger.LogError("Error flushing credential usage events: %v", err)
		}
	}(events)
}

func (t *Tracker) drainBuffer() []*UsageEvent {
	events := make([]*UsageEvent, 0, t.config.BatchSize)
	for {
		select {
		case event := <-t.buffer:
			metrics.BufferDepth.Dec()
			events = append(events, event)
		default:
			return events
		}
	}
}

func (t *Tracker) drainBufferUpTo(n int) []*UsageEvent {
	events := make([]*UsageEvent, 0, n)
	for i := 0; i < n; i++ {
		select {
		case event := <-t.buffer:
			metrics.BufferDepth.Dec()
			events = append(events, event)
		default:
			return events
		}
	}
	return events
}

// writeBatch persists events with retry-with-backoff. Per-record success
// is tracked across attempts so a retried batch only re-submits records
// that actually failed on the previous pass — events carry freshly
// generated IDs, so blindly re-saving the whole batch on any failure
// would duplicate the records that already succeeded.
func (t *Tracker) writeBatch(ctx context.Context, events []*UsageEvent) error {
	if len(events) == 0 {
		return nil
	}

	dao := store.GetDao()
	collection, err := dao.FindCollectionByNameOrId("credential_usage")
	if err != nil {
		return nil
	}

	pending := events
	var lastErr error

	for attempt := 0; attempt < t.config.RetryAttempts && len(pending) > 0; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(t.config.RetryBackoff * time.Duration(attempt)):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		var stillFailing []*UsageEvent
		lastErr = nil

		for _, event := range pending {
			record := eventToRecord(collection, event)
			if err := dao.Save(record); err != nil {
				lastErr = err
				stillFailing = append(stillFailing, event)
				logger.LogError("Error saving credential usage record: %v", err)
				atomic.AddInt64(&t.errors, 1)
				metrics.Errors.Inc()
			} else {
				atomic.AddInt64(&t.eventsFlushed, 1)
				metrics.EventsFlushed.Inc()
			}
		}

		pending = stillFailing
	}

	if len(pending) == 0 {
		logger.LogDebug("Flushed %d credential usage events", len(events))
		return nil
	}

	return newTrackingError(KindStoreWrite, "failed to write batch after retries", lastErr)
}

func eventToRecord(collection *core.Collection, event *UsageEvent) *core.Record {
	record := core.NewRecord(collection)
	record.Id = util.GenerateRandomId()
	record.Set("credential_type", event.CredentialType)
	record.Set("credential_id", event.CredentialID)
	record.Set("user", event.UserID)
	record.Set("service", event.Service)
	record.Set("endpoint", event.Endpoint)
	record.Set("method", event.Method)
	record.Set("status_code", event.StatusCode)
	record.Set("response_time_ms", event.ResponseTimeMs)
	record.Set("tokens_used", event.TokensUsed)
	record.Set("request_size_bytes", event.RequestSize)
	record.Set("response_size_bytes", event.ResponseSize)

	if event.ErrorType != "" {
		record.Set("error_type", event.ErrorType)
	}
	if event.ErrorMessage != "" {
		record.Set("error_message", event.ErrorMessage)
	}

	timestamp := types.DateTime{}
	timestamp.Scan(event.Timestamp)
	record.Set("timestamp", timestamp)

	if len(event.Metadata) > 0 {
		if metadataJSON, err := json.Marshal(event.Metadata); err == nil {
			var metadataRaw types.JSONRaw
			if err := metadataRaw.Scan(metadataJSON); err == nil {
				record.Set("metadata", metadataRaw)
			}
		}
	}

	return record
}

var _ UsageTracker = (*Tracker)(nil)
