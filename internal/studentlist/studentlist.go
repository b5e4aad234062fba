// Package studentlist is the student list component: a loading flag, an
// error message and a list of students, filled by exactly one fetch per
// mount and turned into HTML by a pure render function.
//
// LIFECYCLE:
//
//	c := studentlist.New(client)   // fresh state: loading, no error, no rows
//	c.Mount(ctx)                   // starts the single fetch
//	<-c.Done()                     // closed once the fetch settles
//	c.Render(w)                    // loading, error or table
//	c.Unmount()                    // late results are dropped from now on
package studentlist

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/aanand-mishra/student-list/internal/types"
)

// Fetcher is the one outbound call the component makes.
// *directory.Client satisfies it.
type Fetcher interface {
	FetchStudents(ctx context.Context) ([]types.Student, error)
}

// SettleHook observes the settled state together with the raw fetch
// error (nil on success).
type SettleHook func(s State, err error)

// Option configures a Component.
type Option func(*Component)

// WithLogger sets the logger used for lifecycle events.
func WithLogger(log *slog.Logger) Option {
	return func(c *Component) { c.log = log }
}

// WithSettleHook registers fn to run once when the fetch settles.
// It never runs for a component that was unmounted first.
func WithSettleHook(fn SettleHook) Option {
	return func(c *Component) { c.onSettle = fn }
}

// Component owns one State. It is safe for concurrent use: the fetch
// goroutine writes, any number of renderers read snapshots.
type Component struct {
	fetcher  Fetcher
	log      *slog.Logger
	onSettle SettleHook

	mountOnce sync.Once
	done      chan struct{}
	closeDone sync.Once

	mu      sync.Mutex
	state   State
	live    bool
	cancel  context.CancelFunc
	settled bool
}

// New returns an unmounted component in its initial state.
func New(fetcher Fetcher, opts ...Option) *Component {
	c := &Component{
		fetcher: fetcher,
		log:     slog.Default(),
		state:   Initial(),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Mount starts the fetch. Only the first call does anything.
//
// The fetch runs on its own goroutine; Mount returns immediately so the
// caller can render the loading state straight away.
func (c *Component) Mount(ctx context.Context) {
	c.mountOnce.Do(func() {
		fetchCtx, cancel := context.WithCancel(ctx)

		c.mu.Lock()
		c.live = true
		c.cancel = cancel
		c.mu.Unlock()

		c.log.Debug("student list mounted")
		go c.fetch(fetchCtx)
	})
}

func (c *Component) fetch(ctx context.Context) {
	students, err := c.fetcher.FetchStudents(ctx)

	c.mu.Lock()
	if !c.live {
		c.mu.Unlock()
		c.log.Debug("dropping fetch result for unmounted student list")
		return
	}
	c.state = c.state.Settle(students, err)
	c.settled = true
	c.live = false
	c.cancel()
	snapshot := c.state.clone()
	c.mu.Unlock()

	if err != nil {
		c.log.Warn("student list fetch failed", slog.String("error", err.Error()))
	} else {
		c.log.Info("student list loaded", slog.Int("count", len(students)))
	}

	if c.onSettle != nil {
		c.onSettle(snapshot, err)
	}
	c.closeDone.Do(func() { close(c.done) })
}

// Unmount detaches the component. An in-flight request is cancelled and
// its result, if it still arrives, is not applied. Unmounting twice is
// harmless.
func (c *Component) Unmount() {
	// A component unmounted before mounting must never fetch.
	c.mountOnce.Do(func() {})

	c.mu.Lock()
	wasLive := c.live
	c.live = false
	if c.cancel != nil {
		c.cancel()
	}
	c.mu.Unlock()

	if wasLive {
		c.log.Debug("student list unmounted before fetch settled")
	}
	c.closeDone.Do(func() { close(c.done) })
}

// Done is closed when the fetch settles or the component is unmounted,
// whichever happens first.
func (c *Component) Done() <-chan struct{} {
	return c.done
}

// Settled reports whether a fetch outcome has been applied.
func (c *Component) Settled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.settled
}

// State returns a snapshot of the current state.
func (c *Component) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Render writes the current state as HTML.
func (c *Component) Render(w io.Writer) error {
	return Render(w, c.State())
}
