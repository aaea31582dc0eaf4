package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"
)

type recordingStore struct {
	mu       sync.Mutex
	values   map[string][]byte
	saves    int
	failures int
	block    chan struct{}
}

func newRecordingStore() *recordingStore {
	return &recordingStore{values: make(map[string][]byte)}
}

func (s *recordingStore) Load(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	return v, nil
}

func (s *recordingStore) Save(_ context.Context, key string, value []byte) error {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	if s.failures > 0 {
		s.failures--
		return errors.New("disk full")
	}
	s.values[key] = value
	return nil
}

func (s *recordingStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

func TestWriterLastWriteWins(t *testing.T) {
	store := newRecordingStore()
	w := NewWriter(store, nil)
	for i := range 100 {
		if err := w.Enqueue(PlayerKey, fmt.Appendf(nil, `{"n":%d}`, i)); err != nil {
			t.Fatalf("enqueue: %v", err)
		}
	}
	if err := w.Close(t.Context()); err != nil {
		t.Fatalf("close: %v", err)
	}
	got, err := store.Load(t.Context(), PlayerKey)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(got) != `{"n":99}` {
		t.Fatalf("expected last value to win, got %s", got)
	}
	if store.saves > 100 {
		t.Fatalf("unexpected save count %d", store.saves)
	}
}

func TestWriterCoalescesPendingWrites(t *testing.T) {
	store := newRecordingStore()
	store.block = make(chan struct{})
	w := NewWriter(store, nil)

	_ = w.Enqueue(SettingsKey, []byte("a"))
	time.Sleep(10 * time.Millisecond)
	_ = w.Enqueue(SettingsKey, []byte("b"))
	_ = w.Enqueue(SettingsKey, []byte("c"))
	close(store.block)

	if err := w.Flush(t.Context()); err != nil {
		t.Fatalf("flush: %v", err)
	}
	got, _ := store.Load(t.Context(), SettingsKey)
	if string(got) != "c" {
		t.Fatalf("expected c, got %s", got)
	}
	if store.saves > 2 {
		t.Fatalf("expected queued writes to coalesce, got %d saves", store.saves)
	}
	_ = w.Close(t.Context())
}

func TestWriterRetriesOnce(t *testing.T) {
	store := newRecordingStore()
	store.failures = 1
	w := NewWriter(store, nil)
	_ = w.Enqueue(ConfessionKey, []byte("{}"))
	if err := w.Flush(t.Context()); err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}

	store.mu.Lock()
	store.failures = 2
	store.mu.Unlock()
	_ = w.Enqueue(ConfessionKey, []byte(`{"x":1}`))
	if err := w.Flush(t.Context()); err == nil {
		t.Fatal("expected error after retry exhausted")
	}
	got, _ := store.Load(t.Context(), ConfessionKey)
	if string(got) != "{}" {
		t.Fatalf("failed write must not replace stored value, got %s", got)
	}
	_ = w.Close(t.Context())
}

func TestWriterRejectsAfterClose(t *testing.T) {
	w := NewWriter(newRecordingStore(), nil)
	if err := w.Close(t.Context()); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := w.Enqueue(PlayerKey, nil); !errors.Is(err, ErrWriterClosed) {
		t.Fatalf("expected ErrWriterClosed, got %v", err)
	}
	if err := w.Close(t.Context()); err != nil {
		t.Fatalf("second close: %v", err)
	}
}

func TestWriterFlushHonorsContext(t *testing.T) {
	store := newRecordingStore()
	store.block = make(chan struct{})
	w := NewWriter(store, nil)
	_ = w.Enqueue(PlayerKey, []byte("x"))

	ctx, cancel := context.WithTimeout(t.Context(), 20*time.Millisecond)
	defer cancel()
	if err := w.Flush(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	close(store.block)
	_ = w.Close(t.Context())
}

type failingKeyStore struct {
	*recordingStore
	failKey string
}

func (s failingKeyStore) Save(ctx context.Context, key string, value []byte) error {
	if key == s.failKey {
		return errors.New("read-only volume")
	}
	return s.recordingStore.Save(ctx, key, value)
}

func TestWriterFlushKeepsEarlierDroppedWrite(t *testing.T) {
	store := failingKeyStore{recordingStore: newRecordingStore(), failKey: SettingsKey}
	store.block = make(chan struct{})
	w := NewWriter(store, nil)

	_ = w.Enqueue(PlayerKey, []byte("first"))
	time.Sleep(10 * time.Millisecond)
	_ = w.Enqueue(SettingsKey, []byte("lost"))
	_ = w.Enqueue(ConfessionKey, []byte("ok"))
	close(store.block)

	err := w.Flush(t.Context())
	if err == nil || !strings.Contains(err.Error(), SettingsKey) {
		t.Fatalf("expected dropped settings write to be reported, got %v", err)
	}
	if got, _ := store.Load(t.Context(), ConfessionKey); string(got) != "ok" {
		t.Fatalf("expected later write to land, got %q", got)
	}
	if err := w.Flush(t.Context()); err != nil {
		t.Fatalf("expected errors cleared after being reported, got %v", err)
	}
	_ = w.Close(t.Context())
}

func TestWriterEnqueueRacingClose(t *testing.T) {
	for range 200 {
		w := NewWriter(newRecordingStore(), nil)
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			for i := range 50 {
				err := w.Enqueue(PlayerKey, fmt.Appendf(nil, "%d", i))
				if err != nil && !errors.Is(err, ErrWriterClosed) {
					t.Errorf("enqueue: %v", err)
					return
				}
			}
		}()
		go func() {
			defer wg.Done()
			_ = w.Close(t.Context())
		}()
		wg.Wait()
		_ = w.Close(t.Context())
	}
}
