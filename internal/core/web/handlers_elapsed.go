package web

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/seckatie/launchwatch/internal/core/dashboard"
	"github.com/seckatie/launchwatch/internal/core/spacex"
)

const elapsedWriteWait = 10 * time.Second

// handleElapsed streams the elapsed time since ?since= once per second over
// a websocket. An optional ?session= is kept active while the socket is open. The stream ends when the page closes the socket, which
// happens when the result card is swapped out.
func (ws *Server) handleElapsed(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	since, err := time.Parse(time.RFC3339, r.URL.Query().Get("since"))
	if err != nil {
		http.Error(w, "Invalid since parameter", http.StatusBadRequest)
		return
	}

	conn, err := ws.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied to the client.
		log.Printf("Failed to upgrade elapsed socket: %v", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// The page never sends anything; reading only detects the close.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	// An open ticker keeps its page's session alive.
	session := r.URL.Query().Get("session")

	ticker := dashboard.NewElapsedTicker(since)
	ticker.Now = ws.now
	err = ticker.Run(ctx, func(e spacex.Elapsed) error {
		if session != "" {
			ws.sessions.Touch(session)
		}
		conn.SetWriteDeadline(time.Now().Add(elapsedWriteWait))
		return conn.WriteJSON(elapsedMessage{Elapsed: e, Text: e.String()})
	})
	if err != nil && !errors.Is(err, context.Canceled) && !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		log.Printf("Elapsed socket ended: %v", err)
	}
}
