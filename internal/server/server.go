// internal/server/server.go
package server

import (
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"sync"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/tamzrod/lux-bridge/internal/link"
	"github.com/tamzrod/lux-bridge/internal/snapshot"
)

// LinkInfo is the read-only view of the link the status page renders.
// The server never owns or mutates connection state.
type LinkInfo interface {
	State() link.State
	ReconnectAttempts() uint64
	LocalAddr() string
	SignalStrengthDbm() int
}

// Config is the server's immutable runtime config.
type Config struct {
	Addr       string
	DeviceName string
	// AccessLog mirrors requests to stdout when set.
	AccessLog bool
}

// Server answers inbound queries with the latest stored reading.
// It serves the snapshot regardless of link state or staleness; the
// timestamp field exposes staleness rather than hiding it. While the
// link is down the listener is simply unreachable — absence of
// connectivity is the failure mode, not an error response.
type Server struct {
	cfg     Config
	store   *snapshot.Store
	link    LinkInfo
	handler http.Handler

	mu  sync.Mutex
	ln  net.Listener
	srv *http.Server
}

func New(cfg Config, store *snapshot.Store, li LinkInfo, metricsHandler http.Handler) (*Server, error) {
	if cfg.Addr == "" {
		return nil, errors.New("server: listen address required")
	}
	if store == nil {
		return nil, errors.New("server: store required")
	}

	s := &Server{cfg: cfg, store: store, link: li}

	router := mux.NewRouter()
	router.HandleFunc("/", s.handleStatus).Methods("GET")
	router.HandleFunc("/data", s.handleData).Methods("GET")
	if metricsHandler != nil {
		router.Handle("/metrics", metricsHandler).Methods("GET")
	}

	// Any origin may read the surface: the presentation client runs on
	// a different network origin than the device.
	var h http.Handler = handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET"}),
	)(router)

	if cfg.AccessLog {
		h = handlers.LoggingHandler(os.Stdout, h)
	}

	s.handler = h
	return s, nil
}

// Rebind (re)starts the listener. Called on every entry into
// Connected: the transport handle may be stale after a link change.
// Idempotent in effect — an existing listener is torn down first.
func (s *Server) Rebind() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()

	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}

	srv := &http.Server{Handler: s.handler}
	s.ln = ln
	s.srv = srv

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("server: serve: %v", err)
		}
	}()

	log.Printf("server: listening on %s", ln.Addr())
	return nil
}

// Stop tears the listener down.
func (s *Server) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *Server) stopLocked() {
	if s.srv != nil {
		_ = s.srv.Close()
		s.srv = nil
		s.ln = nil
	}
}

// BoundAddr returns the live listener address, or "" while down.
func (s *Server) BoundAddr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return ""
	}
	return s.ln.Addr().String()
}
