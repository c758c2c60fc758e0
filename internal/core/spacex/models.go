package spacex

import (
	"time"

	"github.com/seckatie/launchwatch/internal/core"
)

// LaunchSummary is one entry of the past launches list.
type LaunchSummary struct {
	ID            string
	Name          string
	DateUTC       time.Time
	PatchImageURL string // may be empty
}

// LaunchDetail is a single launch returned by a lookup.
type LaunchDetail struct {
	LaunchSummary
	// Success is nil when the API omits the field or sends null.
	Success *bool
}

// StatusLabel reports SUCCESS only for an explicit true. A missing success
// field is shown as FAILURE.
func (d LaunchDetail) StatusLabel() string {
	if d.Success != nil && *d.Success {
		return core.StatusSuccess
	}
	return core.StatusFailure
}

// Succeeded mirrors StatusLabel as a bool for templates.
func (d LaunchDetail) Succeeded() bool {
	return d.Success != nil && *d.Success
}

// launchPayload is the subset of the v4 launch object this package reads.
type launchPayload struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	DateUTC time.Time `json:"date_utc"`
	Success *bool     `json:"success"`
	Links   struct {
		Patch struct {
			Small *string `json:"small"`
		} `json:"patch"`
	} `json:"links"`
}

func (p launchPayload) summary() LaunchSummary {
	s := LaunchSummary{
		ID:      p.ID,
		Name:    p.Name,
		DateUTC: p.DateUTC,
	}
	if p.Links.Patch.Small != nil {
		s.PatchImageURL = *p.Links.Patch.Small
	}
	return s
}

func (p launchPayload) detail() LaunchDetail {
	return LaunchDetail{
		LaunchSummary: p.summary(),
		Success:       p.Success,
	}
}

// ResultKind tags a LookupResult.
type ResultKind int

const (
	// ResultFound means the launch was returned.
	ResultFound ResultKind = iota
	// ResultNotFound means the API answered 404.
	ResultNotFound
	// ResultTransportError covers every other failure.
	ResultTransportError
)

func (k ResultKind) String() string {
	switch k {
	case ResultFound:
		return "found"
	case ResultNotFound:
		return "not_found"
	case ResultTransportError:
		return "transport_error"
	default:
		return "unknown"
	}
}

// LookupResult is the outcome of one lookup.
type LookupResult struct {
	Kind   ResultKind
	Detail LaunchDetail // set only when Kind == ResultFound
	Err    error
}

// Failed reports whether the lookup should render as the error banner.
// Not-found and transport errors are not distinguished for display.
func (r LookupResult) Failed() bool {
	return r.Kind != ResultFound
}
