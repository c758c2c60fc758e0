package web

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/seckatie/launchwatch/internal/core/dashboard"
)

func (ws *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	// A plain form post redirects back here with its session so the page can
	// show the outcome. The session moves to a new id on the way, so reloading
	// the redirect URL starts over like any other page load.
	if id := r.URL.Query().Get("session"); id != "" {
		if newID, c, ok := ws.sessions.Reissue(id); ok {
			ws.renderTemplate(w, "index.html", newPageView(newID, c.Snapshot()))
			return
		}
	}

	id, c := ws.sessions.New()
	ws.renderTemplate(w, "index.html", newPageView(id, c.Snapshot()))
}

// handleRecentLaunches loads the recent launches for a session and returns
// the cards fragment. A failed fetch renders an empty list. An expired
// session is replaced rather than refused.
func (ws *Server) handleRecentLaunches(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	_, c := ws.sessions.GetOrNew(r.URL.Query().Get("session"))

	// The error is reported through the controller's event listeners.
	_ = c.LoadRecent(r.Context())

	ws.renderTemplate(w, "launches.html", c.Snapshot())
}

// handleLookup submits the typed launch id for a session. HTMX requests get
// the search fragment back; plain form posts are redirected to the page.
// A page whose session expired gets a new one, carried in the fragment.
func (ws *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	session, c := ws.sessions.GetOrNew(r.FormValue("session"))

	state, err := c.Submit(r.Context(), r.FormValue("id"))
	if errors.Is(err, dashboard.ErrEmptyQuery) {
		http.Error(w, "Missing launch id", http.StatusBadRequest)
		return
	}

	if isHTMX(r) {
		ws.renderTemplate(w, "search.html", newPageView(session, state))
		return
	}

	http.Redirect(w, r, "/?session="+url.QueryEscape(session), http.StatusSeeOther)
}
