// Package spectate serves a read-only JSON view of a running match over
// HTTP, grounded on the teacher's admin.Admin HTTP surface (gorilla/mux
// router, *http.Server with explicit timeouts) but with a single GET
// endpoint instead of the full player-coordination API, since spectating
// is additive and non-normative.
package spectate

import (
	"encoding/json"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/net/netutil"

	"github.com/jedna-game/jedna"
)

// maxSpectators bounds concurrent connections to the listener, the way the
// teacher never needed to because admin assumed a small, fixed set of
// players; a spectator endpoint has no such bound by construction.
const maxSpectators = 32

// Server exposes the current ActionRequestView of a running engine.
type Server struct {
	logger     *log.Logger
	httpServer *http.Server
	engine     *jedna.Engine
}

// New builds a Server bound to addr, reading state from engine on every
// request. The engine pointer is read without locking: callers must only
// use this alongside a runner.Runner driving the same engine from a single
// goroutine per turn, matching how the view is already built between
// mutations elsewhere in the harness.
func New(logger *log.Logger, addr string, engine *jedna.Engine) *Server {
	s := &Server{logger: logger, engine: engine}

	r := mux.NewRouter()
	r.Path("/state").Methods("GET").HandlerFunc(s.handleState)

	s.httpServer = &http.Server{
		Handler:      r,
		Addr:         addr,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		IdleTimeout:  1 * time.Minute,
	}

	return s
}

// ListenAndServe binds addr, wraps the listener with netutil.LimitListener
// to cap concurrent spectators, and serves until the listener is closed.
func (s *Server) ListenAndServe() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	limited := netutil.LimitListener(ln, maxSpectators)

	s.logger.Printf("spectate: serving at %s", s.httpServer.Addr)
	return s.httpServer.Serve(limited)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	if !s.engine.Started() {
		http.Error(w, "game has not started", http.StatusServiceUnavailable)
		return
	}

	view := jedna.BuildActionRequestView(s.engine)
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(view); err != nil {
		s.logger.Printf("spectate: encode state: %v", err)
	}
}
