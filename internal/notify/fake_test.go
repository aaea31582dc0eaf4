package notify

import (
	"context"
	"fmt"
	"sync"
)

type fakeScheduler struct {
	mu         sync.Mutex
	calls      []string
	granted    bool
	registered []Registration
	next       int
}

func newFakeScheduler(granted bool) *fakeScheduler {
	return &fakeScheduler{granted: granted}
}

func (f *fakeScheduler) RequestPermission(context.Context) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "permission")
	return f.granted, nil
}

func (f *fakeScheduler) CancelAll(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "cancel")
	f.registered = nil
	return nil
}

func (f *fakeScheduler) ScheduleRecurring(_ context.Context, a Alert) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.next++
	id := fmt.Sprintf("n-%d", f.next)
	f.calls = append(f.calls, "schedule:"+a.TimeID)
	f.registered = append(f.registered, Registration{ID: id, Alert: a})
	return id, nil
}

func (f *fakeScheduler) ListScheduled(context.Context) ([]Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Registration(nil), f.registered...), nil
}

type fakeDeliverer struct {
	mu        sync.Mutex
	available bool
	err       error
	sent      []Notification
}

func (f *fakeDeliverer) Available(context.Context) bool { return f.available }

func (f *fakeDeliverer) Deliver(_ context.Context, n Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, n)
	return nil
}
