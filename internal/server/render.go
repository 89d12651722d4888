// internal/server/render.go
package server

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
)

// dataResponse is the wire form of /data. Exactly four fields.
type dataResponse struct {
	VisibleIR uint16  `json:"visible_ir"`
	IR        uint16  `json:"ir"`
	Lux       float64 `json:"lux"`
	Timestamp uint64  `json:"timestamp"`
}

func (s *Server) handleData(w http.ResponseWriter, _ *http.Request) {
	snap := s.store.Latest()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(dataResponse{
		VisibleIR: snap.VisibleIR,
		IR:        snap.IR,
		Lux:       math.Round(snap.Lux*100) / 100,
		Timestamp: snap.CapturedAtMs,
	})
}

// handleStatus renders a human-readable link/address summary.
// Formatting only: no contract on exact bytes.
func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	fmt.Fprintf(w, "<html><head><title>%s</title></head><body>", s.cfg.DeviceName)
	fmt.Fprintf(w, "<h1>%s</h1>", s.cfg.DeviceName)

	if s.link != nil {
		fmt.Fprintf(w, "<p>link: %s</p>", s.link.State())
		fmt.Fprintf(w, "<p>address: %s</p>", s.link.LocalAddr())
		fmt.Fprintf(w, "<p>signal: %d dBm</p>", s.link.SignalStrengthDbm())
		fmt.Fprintf(w, "<p>reconnects: %d</p>", s.link.ReconnectAttempts())
	}

	snap := s.store.Latest()
	fmt.Fprintf(w, "<p>last reading: %.2f lux at t=%dms</p>", snap.Lux, snap.CapturedAtMs)
	fmt.Fprint(w, "</body></html>")
}
