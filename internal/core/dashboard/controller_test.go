package dashboard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seckatie/launchwatch/internal/core/spacex"
)

// fakeFetcher serves canned launches. Lookups of ids present in block wait
// until the matching channel is closed.
type fakeFetcher struct {
	mu       sync.Mutex
	recent   []spacex.LaunchSummary
	listErr  error
	details  map[string]spacex.LaunchDetail
	block    map[string]chan struct{}
	started  chan string
	lookups  []string
	listHits int
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		details: make(map[string]spacex.LaunchDetail),
		block:   make(map[string]chan struct{}),
		started: make(chan string, 10),
	}
}

func (f *fakeFetcher) FetchRecentLaunches(context.Context) ([]spacex.LaunchSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listHits++
	return f.recent, f.listErr
}

func (f *fakeFetcher) LookupLaunch(_ context.Context, id string) (spacex.LaunchDetail, error) {
	f.mu.Lock()
	f.lookups = append(f.lookups, id)
	wait := f.block[id]
	detail, ok := f.details[id]
	f.mu.Unlock()

	f.started <- id
	if wait != nil {
		<-wait
	}
	if !ok {
		return spacex.LaunchDetail{}, spacex.ErrNotFound
	}
	return detail, nil
}

func (f *fakeFetcher) lookupCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.lookups)
}

func detailFor(id string, date time.Time) spacex.LaunchDetail {
	ok := true
	return spacex.LaunchDetail{
		LaunchSummary: spacex.LaunchSummary{ID: id, Name: "Launch " + id, DateUTC: date},
		Success:       &ok,
	}
}

func TestControllerLoadRecent(t *testing.T) {
	t.Run("stores launches in server order", func(t *testing.T) {
		f := newFakeFetcher()
		f.recent = []spacex.LaunchSummary{{ID: "a"}, {ID: "b"}, {ID: "c"}}
		c := NewController(f)

		var loaded []int
		c.RegisterEventListener(OnLaunchesLoadedEvent, func(e Event) error {
			loaded = append(loaded, e.(LaunchesLoadedEvent).Count)
			return nil
		})

		require.NoError(t, c.LoadRecent(context.Background()))
		s := c.Snapshot()
		require.Len(t, s.Launches, 3)
		assert.Equal(t, "a", s.Launches[0].ID)
		assert.Equal(t, []int{3}, loaded)

		newest := s.RecentNewestFirst()
		assert.Equal(t, "c", newest[0].ID)
		assert.Equal(t, "a", newest[2].ID)
		assert.Equal(t, "a", s.Launches[0].ID, "display order must not mutate state")
	})

	t.Run("failure falls back to empty and is reported", func(t *testing.T) {
		f := newFakeFetcher()
		f.listErr = errors.New("network down")
		c := NewController(f)

		var failed error
		c.RegisterEventListener(OnLaunchesFailedEvent, func(e Event) error {
			failed = e.(LaunchesFailedEvent).Err
			return nil
		})

		err := c.LoadRecent(context.Background())
		require.Error(t, err)
		assert.Empty(t, c.Snapshot().Launches)
		assert.EqualError(t, failed, "network down")
	})
}

func TestControllerSubmit(t *testing.T) {
	launchDate := time.Date(2026, 10, 18, 10, 0, 0, 0, time.UTC)
	now := launchDate.Add(3661 * time.Second)

	newTestController := func(f *fakeFetcher) *Controller {
		return newController(f, func() time.Time { return now }, make(listeners))
	}

	t.Run("empty id never calls the API", func(t *testing.T) {
		f := newFakeFetcher()
		c := newTestController(f)

		for _, id := range []string{"", "   "} {
			_, err := c.Submit(context.Background(), id)
			assert.ErrorIs(t, err, ErrEmptyQuery)
		}
		assert.Equal(t, 0, f.lookupCount())
	})

	t.Run("found populates result and elapsed", func(t *testing.T) {
		f := newFakeFetcher()
		f.details["abc"] = detailFor("abc", launchDate)
		c := newTestController(f)
		c.SetQuery("abc")

		s, err := c.Submit(context.Background(), "abc")
		require.NoError(t, err)
		require.True(t, s.HasResult())
		assert.Equal(t, "abc", s.Result.ID)
		assert.False(t, s.ErrorVisible)
		assert.Equal(t, spacex.Elapsed{Days: 0, Hours: 1, Minutes: 1, Seconds: 1}, s.Elapsed)
		assert.Empty(t, s.Query)
		assert.False(t, s.CanSubmit())
	})

	t.Run("not found shows error and clears query", func(t *testing.T) {
		f := newFakeFetcher()
		c := newTestController(f)
		c.SetQuery("nope")
		assert.True(t, c.Snapshot().CanSubmit())

		var kinds []spacex.ResultKind
		c.RegisterEventListener(OnLookupFailedEvent, func(e Event) error {
			kinds = append(kinds, e.(LookupFailedEvent).Result)
			return nil
		})

		s, err := c.Submit(context.Background(), "nope")
		require.NoError(t, err)
		assert.True(t, s.ErrorVisible)
		assert.False(t, s.HasResult())
		assert.Empty(t, s.Query)
		assert.Equal(t, []spacex.ResultKind{spacex.ResultNotFound}, kinds)
	})

	t.Run("success after failure clears the banner", func(t *testing.T) {
		f := newFakeFetcher()
		f.details["good"] = detailFor("good", launchDate)
		c := newTestController(f)

		s, _ := c.Submit(context.Background(), "bad")
		require.True(t, s.ErrorVisible)

		s, _ = c.Submit(context.Background(), "good")
		assert.False(t, s.ErrorVisible)
		assert.True(t, s.HasResult())
	})

	t.Run("failure after success clears the card", func(t *testing.T) {
		f := newFakeFetcher()
		f.details["good"] = detailFor("good", launchDate)
		c := newTestController(f)

		s, _ := c.Submit(context.Background(), "good")
		require.True(t, s.HasResult())

		s, _ = c.Submit(context.Background(), "bad")
		assert.True(t, s.ErrorVisible)
		assert.False(t, s.HasResult())
	})

	t.Run("stale completion is discarded", func(t *testing.T) {
		f := newFakeFetcher()
		f.details["slow"] = detailFor("slow", launchDate)
		f.details["fast"] = detailFor("fast", launchDate)
		release := make(chan struct{})
		f.block["slow"] = release
		c := newTestController(f)

		var discarded []string
		c.RegisterEventListener(OnLookupDiscardedEvent, func(e Event) error {
			discarded = append(discarded, e.(LookupDiscardedEvent).ID)
			return nil
		})

		done := make(chan struct{})
		go func() {
			defer close(done)
			c.Submit(context.Background(), "slow")
		}()
		require.Equal(t, "slow", <-f.started)

		s, err := c.Submit(context.Background(), "fast")
		require.NoError(t, err)
		require.Equal(t, "fast", <-f.started)
		assert.Equal(t, "fast", s.Result.ID)

		close(release)
		<-done

		s = c.Snapshot()
		assert.Equal(t, "fast", s.Result.ID)
		assert.Equal(t, []string{"slow"}, discarded)
	})
}

func TestControllerSnapshotIsCopy(t *testing.T) {
	f := newFakeFetcher()
	f.recent = []spacex.LaunchSummary{{ID: "a"}}
	c := NewController(f)
	require.NoError(t, c.LoadRecent(context.Background()))

	s := c.Snapshot()
	s.Launches[0].ID = "mutated"
	assert.Equal(t, "a", c.Snapshot().Launches[0].ID)
}

func TestEventKindString(t *testing.T) {
	tests := []struct {
		kind     EventKind
		expected string
	}{
		{OnLaunchesLoadedEvent, "launches_loaded"},
		{OnLaunchesFailedEvent, "launches_failed"},
		{OnLookupSucceededEvent, "lookup_succeeded"},
		{OnLookupFailedEvent, "lookup_failed"},
		{OnLookupDiscardedEvent, "lookup_discarded"},
		{EventKind(999), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.kind.String())
		})
	}
}

func TestListenerErrorDoesNotStopOthers(t *testing.T) {
	f := newFakeFetcher()
	c := NewController(f)

	calls := 0
	c.RegisterEventListener(OnLaunchesLoadedEvent, func(Event) error {
		calls++
		return errors.New("listener failed")
	})
	c.RegisterEventListener(OnLaunchesLoadedEvent, func(Event) error {
		calls++
		return nil
	})

	require.NoError(t, c.LoadRecent(context.Background()))
	assert.Equal(t, 2, calls)
}
