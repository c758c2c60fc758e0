package core

import "time"

// Upstream API defaults
const (
	DefaultAPIBaseURL = "https://api.spacexdata.com/v4"
	DefaultAPITimeout = 15 * time.Second
)

// Number of past launches kept for the dashboard list
const RecentLaunchCount = 3

// Lookup status labels shown on the result card
const (
	StatusSuccess = "SUCCESS"
	StatusFailure = "FAILURE"
)

// LookupErrorMessage is the single banner shown for any failed lookup.
const LookupErrorMessage = "ERROR: Invalid launch ID"

// Timeout defaults for dashboard snapshots
const (
	DefaultSnapshotTimeout  = 35 * time.Second
	DefaultResourceTimeout  = 10 * time.Second
	DefaultNetworkIdleDelay = 500 * time.Millisecond
)

// Resource limits
const (
	MaxResourceSize = 5 * 1024 * 1024 // 5MB
)

// HTTP client configuration
const (
	UserAgent = "Mozilla/5.0 (compatible; launchwatch/1.0)"
)
