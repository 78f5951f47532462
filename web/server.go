// Package web serves the progressive renderer to browsers. Every
// websocket connection owns one renderer; completed passes go out as
// base64 PNG frames inside JSON messages, coarse first, until the ladder
// converges or the parameters change.
package web

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/coder/websocket"
)

// Options configure the server. Zero values mean the defaults.
type Options struct {
	Addr   string
	Width  int
	Height int
	FPS    int
}

func (o Options) withDefaults() Options {
	if o.Addr == "" {
		o.Addr = ":8080"
	}
	if o.Width <= 0 {
		o.Width = 768
	}
	if o.Height <= 0 {
		o.Height = 512
	}
	if o.FPS <= 0 {
		o.FPS = 30
	}
	return o
}

// NewServer builds the http server with the page and websocket endpoints.
func NewServer(opts Options) *http.Server {
	opts = opts.withDefaults()
	mux := http.NewServeMux()
	mux.HandleFunc("/", servePage)
	mux.HandleFunc("/ws", serveSocket(opts))
	return &http.Server{
		Addr:              opts.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, opts Options) error {
	srv := NewServer(opts)
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	log.Printf("listening on http://localhost%s", srv.Addr)

	select {
	case <-ctx.Done():
		shutCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		return srv.Shutdown(shutCtx)
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func servePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, indexHTML)
}

func serveSocket(opts Options) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: []string{"*"}, // TODO: tighten in prod
		})
		if err != nil {
			log.Println(err)
			return
		}
		defer c.CloseNow()

		s := newSession(opts)
		if err := s.run(r.Context(), c); err != nil {
			log.Printf("session %s: %v", r.RemoteAddr, err)
		}
	}
}
