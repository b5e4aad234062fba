// Package mounts keeps the live student list components of the HTTP
// host. Each page visit mounts one component under a fresh ULID; the
// browser then re-renders it by id until it settles.
package mounts

import (
	"context"
	"crypto/rand"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/aanand-mishra/student-list/internal/directory"
	"github.com/aanand-mishra/student-list/internal/storage"
	"github.com/aanand-mishra/student-list/internal/studentlist"
	"github.com/aanand-mishra/student-list/internal/types"
)

// ErrNotFound is returned for an unknown or already unmounted id.
var ErrNotFound = errors.New("mount not found")

// Registry maps mount ids to components.
type Registry struct {
	fetcher studentlist.Fetcher
	storage storage.Storage
	log     *slog.Logger
	now     func() time.Time

	mu         sync.RWMutex
	components map[string]entry
	entropy    *ulid.MonotonicEntropy
}

type entry struct {
	component *studentlist.Component
	mountedAt time.Time
}

// New returns an empty registry. Settled outcomes go to store; a nil
// store disables the history.
func New(fetcher studentlist.Fetcher, store storage.Storage, log *slog.Logger) *Registry {
	if log == nil {
		log = slog.Default()
	}
	return &Registry{
		fetcher:    fetcher,
		storage:    store,
		log:        log,
		now:        time.Now,
		components: make(map[string]entry),
		entropy:    ulid.Monotonic(rand.Reader, 0),
	}
}

// Mount creates and mounts a fresh component and returns its id.
//
// The fetch is detached from ctx's cancellation: a request context ends
// as soon as the redirect is written, the component must outlive it.
// Only Unmount cancels the fetch.
func (r *Registry) Mount(ctx context.Context) (string, *studentlist.Component) {
	now := r.now()

	r.mu.Lock()
	id := ulid.MustNew(ulid.Timestamp(now), r.entropy).String()
	r.mu.Unlock()

	log := r.log.With(slog.String("mount_id", id))
	c := studentlist.New(r.fetcher,
		studentlist.WithLogger(log),
		studentlist.WithSettleHook(func(s studentlist.State, err error) {
			r.record(log, id, s, err)
		}),
	)

	r.mu.Lock()
	r.components[id] = entry{component: c, mountedAt: now}
	r.mu.Unlock()

	c.Mount(context.WithoutCancel(ctx))
	return id, c
}

// Get returns the component mounted under id.
func (r *Registry) Get(id string) (*studentlist.Component, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.components[id]
	if !ok {
		return nil, ErrNotFound
	}
	return e.component, nil
}

// Unmount detaches and forgets the component mounted under id.
func (r *Registry) Unmount(id string) error {
	r.mu.Lock()
	e, ok := r.components[id]
	delete(r.components, id)
	r.mu.Unlock()

	if !ok {
		return ErrNotFound
	}
	e.component.Unmount()
	return nil
}

// UnmountAll detaches every component; used on shutdown.
func (r *Registry) UnmountAll() {
	r.mu.Lock()
	components := r.components
	r.components = make(map[string]entry)
	r.mu.Unlock()

	for _, e := range components {
		e.component.Unmount()
	}
}

// Prune unmounts settled components mounted more than maxAge ago and
// returns how many it removed. Components still loading are kept.
func (r *Registry) Prune(maxAge time.Duration) int {
	cutoff := r.now().Add(-maxAge)

	r.mu.Lock()
	var stale []*studentlist.Component
	for id, e := range r.components {
		if e.mountedAt.Before(cutoff) && e.component.Settled() {
			stale = append(stale, e.component)
			delete(r.components, id)
		}
	}
	r.mu.Unlock()

	for _, c := range stale {
		c.Unmount()
	}
	return len(stale)
}

// Len reports how many components are mounted.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.components)
}

func (r *Registry) record(log *slog.Logger, id string, s studentlist.State, err error) {
	if r.storage == nil {
		return
	}

	outcome := types.Outcome{
		MountID:   id,
		Status:    types.OutcomeOK,
		Count:     len(s.Students),
		SettledAt: r.now().UTC(),
	}
	if s.Failed {
		outcome.Status = types.OutcomeError
		outcome.Error = s.Err
	}

	var statusErr *directory.StatusError
	if errors.As(err, &statusErr) {
		outcome.StatusCode = statusErr.Code
	}

	if err := r.storage.RecordOutcome(outcome); err != nil {
		log.Error("failed to record outcome", slog.String("error", err.Error()))
	}
}
