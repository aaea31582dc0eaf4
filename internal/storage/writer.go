package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"
)

var ErrWriterClosed = errors.New("storage: writer closed")

const retryDelay = 50 * time.Millisecond

// Writer serializes snapshot writes on one goroutine. Pending writes for the
// same key coalesce so only the newest value reaches the store.
type Writer struct {
	store  Store
	logger hclog.Logger

	mu      sync.Mutex
	pending map[string][]byte
	order   []string
	closed  bool
	wake    chan struct{}
	idle    *sync.Cond
	busy    bool
	done    chan struct{}
	dropped error
}

func NewWriter(store Store, logger hclog.Logger) *Writer {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	w := &Writer{
		store:   store,
		logger:  logger.Named("writer"),
		pending: make(map[string][]byte),
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	w.idle = sync.NewCond(&w.mu)
	go w.loop()
	return w
}

// Enqueue schedules value for key and returns without waiting for the store.
func (w *Writer) Enqueue(key string, value []byte) error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrWriterClosed
	}
	if _, ok := w.pending[key]; !ok {
		w.order = append(w.order, key)
	}
	w.pending[key] = append([]byte(nil), value...)
	// wake is closed under mu, so the send must happen before unlocking.
	select {
	case w.wake <- struct{}{}:
	default:
	}
	w.mu.Unlock()
	return nil
}

// Flush blocks until every write queued before the call has been attempted.
// It reports the writes dropped since the previous Flush.
func (w *Writer) Flush(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() {
		w.mu.Lock()
		w.idle.Broadcast()
		w.mu.Unlock()
	})
	defer stop()

	w.mu.Lock()
	defer w.mu.Unlock()
	for len(w.order) > 0 || w.busy {
		if err := ctx.Err(); err != nil {
			return err
		}
		w.idle.Wait()
	}
	err := w.dropped
	w.dropped = nil
	return err
}

// Close drains queued writes and stops the worker.
func (w *Writer) Close(ctx context.Context) error {
	err := w.Flush(ctx)
	w.mu.Lock()
	if !w.closed {
		w.closed = true
		close(w.wake)
	}
	w.mu.Unlock()
	select {
	case <-w.done:
	case <-ctx.Done():
		return ctx.Err()
	}
	return err
}

func (w *Writer) loop() {
	defer close(w.done)
	for range w.wake {
		w.drain()
	}
	w.drain()
}

func (w *Writer) drain() {
	for {
		w.mu.Lock()
		if len(w.order) == 0 {
			w.busy = false
			w.idle.Broadcast()
			w.mu.Unlock()
			return
		}
		key := w.order[0]
		w.order = w.order[1:]
		value := w.pending[key]
		delete(w.pending, key)
		w.busy = true
		w.mu.Unlock()

		err := w.write(key, value)

		if err != nil {
			w.mu.Lock()
			w.dropped = errors.Join(w.dropped, fmt.Errorf("write %s: %w", key, err))
			w.mu.Unlock()
		}
	}
}

func (w *Writer) write(key string, value []byte) error {
	ctx := context.Background()
	err := w.store.Save(ctx, key, value)
	if err == nil {
		return nil
	}
	w.logger.Warn("snapshot write failed, retrying", "key", key, "error", err)
	time.Sleep(retryDelay)
	if err = w.store.Save(ctx, key, value); err != nil {
		w.logger.Error("snapshot write dropped", "key", key, "error", err)
		return err
	}
	return nil
}
