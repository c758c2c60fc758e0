package dashboard

import (
	"log"

	"github.com/seckatie/launchwatch/internal/core/spacex"
)

// ------------------------------
// Event System
// ------------------------------
//
// A Controller emits typed events whenever one of its operations completes.
// Register listeners to react to these changes.
//
// Example usage:
//
//	c.RegisterEventListener(dashboard.OnLookupFailedEvent, func(event dashboard.Event) error {
//	    ev := event.(dashboard.LookupFailedEvent)
//	    log.Printf("Lookup %q failed: %v", ev.ID, ev.Err)
//	    return nil
//	})
//
// Event is the common interface for all controller events.
type Event interface {
	Kind() EventKind
}

// EventKind represents all the kinds of events a Controller can emit.
type EventKind int

const (
	// OnLaunchesLoadedEvent is emitted after the recent list is stored.
	OnLaunchesLoadedEvent EventKind = iota
	// OnLaunchesFailedEvent is emitted when the list fetch failed and the
	// empty fallback was stored.
	OnLaunchesFailedEvent
	// OnLookupSucceededEvent is emitted when a lookup result is applied.
	OnLookupSucceededEvent
	// OnLookupFailedEvent is emitted when a lookup error is applied.
	OnLookupFailedEvent
	// OnLookupDiscardedEvent is emitted when a lookup finished after a newer
	// one was issued and its outcome was dropped.
	OnLookupDiscardedEvent
)

func (k EventKind) String() string {
	switch k {
	case OnLaunchesLoadedEvent:
		return "launches_loaded"
	case OnLaunchesFailedEvent:
		return "launches_failed"
	case OnLookupSucceededEvent:
		return "lookup_succeeded"
	case OnLookupFailedEvent:
		return "lookup_failed"
	case OnLookupDiscardedEvent:
		return "lookup_discarded"
	default:
		return "unknown"
	}
}

// LaunchesLoadedEvent carries the number of launches stored.
type LaunchesLoadedEvent struct {
	Count int
}

func (e LaunchesLoadedEvent) Kind() EventKind { return OnLaunchesLoadedEvent }

// LaunchesFailedEvent carries the fetch error that was swallowed.
type LaunchesFailedEvent struct {
	Err error
}

func (e LaunchesFailedEvent) Kind() EventKind { return OnLaunchesFailedEvent }

// LookupSucceededEvent is emitted with the applied detail.
type LookupSucceededEvent struct {
	Generation uint64
	Detail     spacex.LaunchDetail
}

func (e LookupSucceededEvent) Kind() EventKind { return OnLookupSucceededEvent }

// LookupFailedEvent is emitted with the submitted id and the cause.
type LookupFailedEvent struct {
	Generation uint64
	ID         string
	Result     spacex.ResultKind
	Err        error
}

func (e LookupFailedEvent) Kind() EventKind { return OnLookupFailedEvent }

// LookupDiscardedEvent reports a stale completion.
type LookupDiscardedEvent struct {
	Generation uint64
	Latest     uint64
	ID         string
}

func (e LookupDiscardedEvent) Kind() EventKind { return OnLookupDiscardedEvent }

// EventListener is a callback that handles events of a specific kind.
type EventListener func(event Event) error

// listeners holds registered callbacks. Each controller owns its own map.
type listeners map[EventKind][]EventListener

func (l listeners) clone() listeners {
	out := make(listeners, len(l))
	for kind, ls := range l {
		out[kind] = append([]EventListener(nil), ls...)
	}
	return out
}

func (l listeners) emit(event Event) {
	for _, listener := range l[event.Kind()] {
		if err := listener(event); err != nil {
			log.Printf("Event listener error for %s: %v", event.Kind(), err)
		}
	}
}
