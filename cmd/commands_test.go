/*
Copyright © 2025 Katie Mulliken <katie@mulliken.net>
*/
package cmd

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func newFakeAPI(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/launches/past", func(w http.ResponseWriter, r *http.Request) {
		var items []string
		for i := 0; i < 5; i++ {
			items = append(items, fmt.Sprintf(`{"id":"L%d","name":"Mission %d","date_utc":"2022-0%d-01T12:00:00.000Z","links":{"patch":{"small":null}}}`, i, i, i+1))
		}
		fmt.Fprint(w, "["+strings.Join(items, ",")+"]")
	})
	mux.HandleFunc("/launches/found", func(w http.ResponseWriter, r *http.Request) {
		date := time.Now().Add(-3661 * time.Second).UTC().Format(time.RFC3339)
		fmt.Fprintf(w, `{"id":"found","name":"Crew-1","date_utc":%q,"success":true,"links":{"patch":{"small":"https://img.test/p.png"}}}`, date)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// resetFlags restores defaults so one test's flags do not leak into the next.
func resetFlags(flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	})
}

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		resetFlags(rootCmd.PersistentFlags())
	})
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestRecentCmd(t *testing.T) {
	api := newFakeAPI(t)

	out, err := executeCommand(t, "recent", "--api-base", api.URL)
	if err != nil {
		t.Fatalf("recent returned error: %v", err)
	}

	i4 := strings.Index(out, "Mission 4")
	i3 := strings.Index(out, "Mission 3")
	i2 := strings.Index(out, "Mission 2")
	if i4 < 0 || i3 < 0 || i2 < 0 {
		t.Fatalf("expected last three launches, got:\n%s", out)
	}
	if !(i4 < i3 && i3 < i2) {
		t.Errorf("expected newest first, got:\n%s", out)
	}
	if strings.Contains(out, "Mission 1") || strings.Contains(out, "Mission 0") {
		t.Errorf("expected only three launches, got:\n%s", out)
	}
}

func TestRecentCmd_UnavailableAPIPrintsEmpty(t *testing.T) {
	api := newFakeAPI(t)

	out, err := executeCommand(t, "recent", "--api-base", api.URL+"/nowhere")
	if err != nil {
		t.Fatalf("recent returned error: %v", err)
	}
	if !strings.Contains(out, "No recent launches.") {
		t.Errorf("expected empty fallback, got:\n%s", out)
	}
}

func TestLookupCmd(t *testing.T) {
	api := newFakeAPI(t)

	t.Run("found", func(t *testing.T) {
		out, err := executeCommand(t, "lookup", "found", "--api-base", api.URL)
		if err != nil {
			t.Fatalf("lookup returned error: %v", err)
		}
		if !strings.Contains(out, "Crew-1 [SUCCESS]") {
			t.Errorf("expected result card, got:\n%s", out)
		}
		if !strings.Contains(out, "0 days, 1 hours, 1 minutes,") {
			t.Errorf("expected elapsed time, got:\n%s", out)
		}
	})

	t.Run("not found", func(t *testing.T) {
		out, err := executeCommand(t, "lookup", "missing", "--api-base", api.URL)
		if err == nil {
			t.Fatal("expected lookup to fail")
		}
		if !strings.Contains(out, "ERROR: Invalid launch ID") {
			t.Errorf("expected error banner, got:\n%s", out)
		}
	})

	t.Run("requires an id", func(t *testing.T) {
		if _, err := executeCommand(t, "lookup", "--api-base", api.URL); err == nil {
			t.Error("expected error without launch id")
		}
	})
}

func TestSnapshotCmd_Flags(t *testing.T) {
	tests := []struct {
		name         string
		flagName     string
		defaultValue interface{}
		flagType     string
	}{
		{"url flag has correct default", "url", "http://localhost:8080/", "string"},
		{"out flag has correct default", "out", "launchwatch-snapshot.html", "string"},
		{"timeout flag has correct default", "timeout", 40 * time.Second, "duration"},
		{"wait-selector flag has correct default", "wait-selector", "#past-launches .past-launches--card", "string"},
		{"chrome-path flag has correct default", "chrome-path", "", "string"},
		{"headful flag has correct default", "headful", false, "bool"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var flag interface{}
			var err error

			switch tt.flagType {
			case "string":
				flag, err = snapshotCmd.Flags().GetString(tt.flagName)
			case "bool":
				flag, err = snapshotCmd.Flags().GetBool(tt.flagName)
			case "duration":
				flag, err = snapshotCmd.Flags().GetDuration(tt.flagName)
			}

			if err != nil {
				t.Fatalf("Failed to get flag %s: %v", tt.flagName, err)
			}

			if flag != tt.defaultValue {
				t.Errorf("Flag %s: got %v, want %v", tt.flagName, flag, tt.defaultValue)
			}
		})
	}
}

func TestSnapshotCmd_UsageOutput(t *testing.T) {
	var buf bytes.Buffer
	snapshotCmd.SetOut(&buf)
	snapshotCmd.SetErr(&buf)

	if err := snapshotCmd.Usage(); err != nil {
		t.Errorf("Usage() returned error: %v", err)
	}

	expectedFlags := []string{"--url", "--out", "--timeout", "--chrome-path", "--headful"}
	for _, flag := range expectedFlags {
		if !bytes.Contains(buf.Bytes(), []byte(flag)) {
			t.Errorf("Expected usage to mention %s", flag)
		}
	}
}
