package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sandeepkv93/graced/internal/storage"
)

type registrySnapshot struct {
	Registrations []Registration `json:"registrations"`
}

// Registry is a Scheduler that records registrations in the key-value store.
// The daemon arms timers from the same record.
type Registry struct {
	store     storage.Store
	deliverer Deliverer
	now       func() time.Time
	newID     func() string
	mu        sync.Mutex
}

func NewRegistry(store storage.Store, deliverer Deliverer) *Registry {
	return &Registry{
		store:     store,
		deliverer: deliverer,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// RequestPermission reports whether the configured deliverer can reach the
// user at all.
func (r *Registry) RequestPermission(ctx context.Context) (bool, error) {
	if r.deliverer == nil {
		return false, nil
	}
	return r.deliverer.Available(ctx), nil
}

func (r *Registry) CancelAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.store.Remove(ctx, storage.RegistryKey); err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("cancel registrations: %w", err)
	}
	return nil
}

func (r *Registry) ScheduleRecurring(ctx context.Context, a Alert) (string, error) {
	if err := a.Validate(); err != nil {
		return "", err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	regs, err := r.load(ctx)
	if err != nil {
		return "", err
	}
	reg := Registration{ID: r.newID(), Alert: a, CreatedAt: r.now().UTC()}
	regs = append(regs, reg)
	raw, err := json.Marshal(registrySnapshot{Registrations: regs})
	if err != nil {
		return "", err
	}
	if err := r.store.Save(ctx, storage.RegistryKey, raw); err != nil {
		return "", fmt.Errorf("save registration: %w", err)
	}
	return reg.ID, nil
}

func (r *Registry) ListScheduled(ctx context.Context) ([]Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

func (r *Registry) load(ctx context.Context) ([]Registration, error) {
	raw, err := r.store.Load(ctx, storage.RegistryKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return []Registration{}, nil
		}
		return nil, fmt.Errorf("load registrations: %w", err)
	}
	var snap registrySnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("decode registrations: %w", err)
	}
	if snap.Registrations == nil {
		snap.Registrations = []Registration{}
	}
	return snap.Registrations, nil
}
