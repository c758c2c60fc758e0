package spacex

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/seckatie/launchwatch/internal/core"
)

// ErrNotFound is returned by LookupLaunch when the API answers 404.
var ErrNotFound = errors.New("launch not found")

// StatusError is returned for any other non-2xx response.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.StatusCode, e.URL)
}

// Fetcher is the read surface the dashboard depends on.
type Fetcher interface {
	FetchRecentLaunches(ctx context.Context) ([]LaunchSummary, error)
	LookupLaunch(ctx context.Context, id string) (LaunchDetail, error)
}

// Client reads launches from the SpaceX v4 REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Options configures a Client.
type Options struct {
	// BaseURL is the API root, e.g. https://api.spacexdata.com/v4.
	// If empty, core.DefaultAPIBaseURL is used.
	BaseURL string
	// Timeout bounds each request. Zero means no timeout.
	Timeout time.Duration
	// HTTPClient overrides the underlying client (Timeout is then ignored).
	HTTPClient *http.Client
}

// NewClient creates a Client. The HTTP client is reused across calls so
// connections are pooled.
func NewClient(opts Options) *Client {
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		base = core.DefaultAPIBaseURL
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 4,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		}
	}
	return &Client{baseURL: base, httpClient: httpClient}
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchRecentLaunches reads the past launches collection and keeps the last
// three entries in the order the server returned them.
func (c *Client) FetchRecentLaunches(ctx context.Context) ([]LaunchSummary, error) {
	var payload []launchPayload
	if err := c.getJSON(ctx, c.baseURL+"/launches/past", &payload); err != nil {
		return nil, fmt.Errorf("fetch past launches: %w", err)
	}

	launches := make([]LaunchSummary, 0, len(payload))
	for _, p := range payload {
		launches = append(launches, p.summary())
	}
	return LastN(launches, core.RecentLaunchCount), nil
}

// LookupLaunch reads a single launch by identifier.
func (c *Client) LookupLaunch(ctx context.Context, id string) (LaunchDetail, error) {
	if id == "" {
		return LaunchDetail{}, errors.New("empty launch id")
	}
	var payload launchPayload
	if err := c.getJSON(ctx, c.baseURL+"/launches/"+url.PathEscape(id), &payload); err != nil {
		return LaunchDetail{}, fmt.Errorf("lookup launch %q: %w", id, err)
	}
	return payload.detail(), nil
}

// Lookup wraps LookupLaunch into a LookupResult.
func Lookup(ctx context.Context, f Fetcher, id string) LookupResult {
	detail, err := f.LookupLaunch(ctx, id)
	switch {
	case err == nil:
		return LookupResult{Kind: ResultFound, Detail: detail}
	case errors.Is(err, ErrNotFound):
		return LookupResult{Kind: ResultNotFound, Err: err}
	default:
		return LookupResult{Kind: ResultTransportError, Err: err}
	}
}

// LastN returns the trailing n elements of s without reordering them.
// Slices of length n or less are returned unchanged.
func LastN[T any](s []T, n int) []T {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", core.UserAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("GET %s failed after %v: %v", endpoint, time.Since(start), err)
		return fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	log.Printf("GET %s -> %d in %v", endpoint, resp.StatusCode, time.Since(start))

	if resp.StatusCode == http.StatusNotFound {
		io.Copy(io.Discard, resp.Body)
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return &StatusError{StatusCode: resp.StatusCode, URL: endpoint}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("error decoding response: %w", err)
	}
	return nil
}
