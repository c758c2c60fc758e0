package spacex

import (
	"fmt"
	"time"
)

// Elapsed is a duration split into whole days, hours, minutes and seconds.
type Elapsed struct {
	Days    int64 `json:"days"`
	Hours   int64 `json:"hours"`
	Minutes int64 `json:"minutes"`
	Seconds int64 `json:"seconds"`
}

// ElapsedSince decomposes now - date. Every step is a floor division, so a
// date in the future yields negative Days while the smaller units stay in
// their usual ranges. The result is not clamped.
func ElapsedSince(date, now time.Time) Elapsed {
	total := floorDiv(int64(now.Sub(date)), int64(time.Second))

	days := floorDiv(total, 86400)
	rem := total - days*86400
	hours := floorDiv(rem, 3600)
	rem -= hours * 3600
	minutes := floorDiv(rem, 60)
	seconds := rem - minutes*60

	return Elapsed{Days: days, Hours: hours, Minutes: minutes, Seconds: seconds}
}

func (e Elapsed) String() string {
	return fmt.Sprintf("%d days, %d hours, %d minutes, %d seconds", e.Days, e.Hours, e.Minutes, e.Seconds)
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
