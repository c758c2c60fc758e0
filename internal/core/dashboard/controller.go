package dashboard

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/seckatie/launchwatch/internal/core/spacex"
)

// ErrEmptyQuery is returned by Submit when there is nothing to look up.
var ErrEmptyQuery = errors.New("empty launch id")

// State is a copy of a controller's view state taken for rendering.
type State struct {
	Launches     []spacex.LaunchSummary
	Result       *spacex.LaunchDetail
	ErrorVisible bool
	Query        string
	// Elapsed is derived from Result at the time the snapshot was taken.
	Elapsed spacex.Elapsed
}

// HasResult reports whether the result card should be rendered.
func (s State) HasResult() bool {
	return s.Result != nil
}

// CanSubmit mirrors the disabled state of the submit button.
func (s State) CanSubmit() bool {
	return strings.TrimSpace(s.Query) != ""
}

// RecentNewestFirst returns the launches in display order. The stored slice
// keeps server order.
func (s State) RecentNewestFirst() []spacex.LaunchSummary {
	out := make([]spacex.LaunchSummary, len(s.Launches))
	for i, l := range s.Launches {
		out[len(s.Launches)-1-i] = l
	}
	return out
}

// Controller owns the state of one dashboard page. Launches is written only
// by LoadRecent; Result and ErrorVisible only by Submit completions.
type Controller struct {
	fetcher   spacex.Fetcher
	now       func() time.Time
	listeners listeners

	mu           sync.Mutex
	launches     []spacex.LaunchSummary
	result       *spacex.LaunchDetail
	errorVisible bool
	query        string
	generation   uint64
	lastActive   time.Time
}

// NewController creates a controller backed by the given fetcher.
func NewController(fetcher spacex.Fetcher) *Controller {
	return newController(fetcher, time.Now, make(listeners))
}

func newController(fetcher spacex.Fetcher, now func() time.Time, l listeners) *Controller {
	return &Controller{
		fetcher:    fetcher,
		now:        now,
		listeners:  l,
		lastActive: now(),
	}
}

// RegisterEventListener adds a listener for a specific event kind.
// Listeners are called synchronously in registration order after the state
// change is applied. Register before the controller is shared.
func (c *Controller) RegisterEventListener(kind EventKind, listener EventListener) {
	c.listeners[kind] = append(c.listeners[kind], listener)
}

// LoadRecent fetches the recent launches. A failed fetch stores an empty
// list; the error is reported through OnLaunchesFailedEvent and returned.
func (c *Controller) LoadRecent(ctx context.Context) error {
	c.touch()
	launches, err := c.fetcher.FetchRecentLaunches(ctx)
	if err != nil {
		launches = nil
	}

	c.mu.Lock()
	c.launches = launches
	c.mu.Unlock()

	if err != nil {
		c.listeners.emit(LaunchesFailedEvent{Err: err})
		return err
	}
	c.listeners.emit(LaunchesLoadedEvent{Count: len(launches)})
	return nil
}

// SetQuery records the current input value.
func (c *Controller) SetQuery(q string) {
	c.mu.Lock()
	c.query = q
	c.lastActive = c.now()
	c.mu.Unlock()
}

// Submit looks up id and applies the outcome. An empty id returns
// ErrEmptyQuery without calling the API. When another Submit was issued
// after this one, this outcome is discarded. The query is cleared either way.
func (c *Controller) Submit(ctx context.Context, id string) (State, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return c.Snapshot(), ErrEmptyQuery
	}

	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.lastActive = c.now()
	c.mu.Unlock()

	res := spacex.Lookup(ctx, c.fetcher, id)

	c.mu.Lock()
	latest := c.generation
	stale := gen != latest
	if !stale {
		if res.Failed() {
			c.result = nil
			c.errorVisible = true
		} else {
			detail := res.Detail
			c.result = &detail
			c.errorVisible = false
		}
	}
	c.query = ""
	c.mu.Unlock()

	switch {
	case stale:
		c.listeners.emit(LookupDiscardedEvent{Generation: gen, Latest: latest, ID: id})
	case res.Failed():
		c.listeners.emit(LookupFailedEvent{Generation: gen, ID: id, Result: res.Kind, Err: res.Err})
	default:
		c.listeners.emit(LookupSucceededEvent{Generation: gen, Detail: res.Detail})
	}

	return c.Snapshot(), nil
}

// Snapshot copies the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := State{
		Launches:     append([]spacex.LaunchSummary(nil), c.launches...),
		ErrorVisible: c.errorVisible,
		Query:        c.query,
	}
	if c.result != nil {
		detail := *c.result
		s.Result = &detail
		s.Elapsed = spacex.ElapsedSince(detail.DateUTC, c.now())
	}
	return s
}

// LastActive returns when the controller was last used.
func (c *Controller) LastActive() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastActive
}

func (c *Controller) touch() {
	c.mu.Lock()
	c.lastActive = c.now()
	c.mu.Unlock()
}
