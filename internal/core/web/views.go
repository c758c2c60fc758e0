package web

import (
	"html/template"
	"time"

	"github.com/seckatie/launchwatch/internal/core"
	"github.com/seckatie/launchwatch/internal/core/dashboard"
	"github.com/seckatie/launchwatch/internal/core/spacex"
)

type pageView struct {
	Session      string
	ActivePage   string
	State        dashboard.State
	ErrorMessage string
}

type launchCardView struct {
	ID            string
	Name          string
	PatchImageURL string
	LaunchDate    string
	LaunchTime    string
}

type resultView struct {
	ID            string
	Name          string
	PatchImageURL string
	StatusLabel   string
	Succeeded     bool
	Since         string // RFC3339, read by the elapsed ticker socket
	Elapsed       string
}

type elapsedMessage struct {
	spacex.Elapsed
	Text string `json:"text"`
}

func newPageView(session string, state dashboard.State) pageView {
	return pageView{
		Session:      session,
		ActivePage:   "dashboard",
		State:        state,
		ErrorMessage: core.LookupErrorMessage,
	}
}

func newLaunchCards(state dashboard.State) []launchCardView {
	var cards []launchCardView
	for _, l := range state.RecentNewestFirst() {
		local := l.DateUTC.Local()
		cards = append(cards, launchCardView{
			ID:            l.ID,
			Name:          l.Name,
			PatchImageURL: l.PatchImageURL,
			LaunchDate:    local.Format("1/2/2006"),
			LaunchTime:    local.Format("3:04:05 PM"),
		})
	}
	return cards
}

func newResultView(state dashboard.State) *resultView {
	if state.Result == nil {
		return nil
	}
	d := state.Result
	return &resultView{
		ID:            d.ID,
		Name:          d.Name,
		PatchImageURL: d.PatchImageURL,
		StatusLabel:   d.StatusLabel(),
		Succeeded:     d.Succeeded(),
		Since:         d.DateUTC.UTC().Format(time.RFC3339Nano),
		Elapsed:       state.Elapsed.String(),
	}
}

var templateFuncs = template.FuncMap{
	"launchCards": newLaunchCards,
	"result":      newResultView,
}
