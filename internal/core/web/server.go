package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/seckatie/launchwatch/internal/core/dashboard"
)

//go:embed templates/*.html static/*.css static/*.js
var templatesFS embed.FS

type Server struct {
	sessions  *dashboard.Registry
	templates *template.Template
	staticFS  http.FileSystem
	upgrader  websocket.Upgrader
	now       func() time.Time
}

// StartServer serves the dashboard on addr until ctx is cancelled, then
// shuts down gracefully.
func StartServer(ctx context.Context, addr string, sessions *dashboard.Registry) error {
	ws, err := newServer(sessions)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	ws.registerRoutes(mux)

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting web server at %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Println("Shutting down web server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Println("Web server exited gracefully")
	return nil
}

func newServer(sessions *dashboard.Registry) (*Server, error) {
	templates, err := template.New("").Funcs(templateFuncs).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	staticSub, err := fs.Sub(templatesFS, "static")
	if err != nil {
		return nil, err
	}

	return &Server{
		sessions:  sessions,
		templates: templates,
		staticFS:  http.FS(staticSub),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		now: time.Now,
	}, nil
}

func (ws *Server) registerRoutes(mux *http.ServeMux) {
	ws.registerStaticRoutes(mux)

	mux.HandleFunc("/", ws.handleIndex)
	mux.HandleFunc("/launches/recent", ws.handleRecentLaunches)
	mux.HandleFunc("/lookup", ws.handleLookup)
	mux.HandleFunc("/elapsed", ws.handleElapsed)
	mux.HandleFunc("/healthz", ws.handleHealth)
}

func (ws *Server) registerStaticRoutes(mux *http.ServeMux) {
	// Serve embedded static assets (CSS, JS)
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(ws.staticFS)))
}
