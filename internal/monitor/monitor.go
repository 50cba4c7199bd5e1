// Package monitor serves the live values of a running simulation over HTTP,
// the way a SCADA front end would poll them.
package monitor

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/san-kum/turbsim/internal/params"
)

type snapshot struct {
	Time   float64            `json:"time"`
	Ticks  int                `json:"ticks"`
	Params map[string]float64 `json:"params"`
}

// Monitor holds the latest tick snapshot and serves it. The simulation
// pushes copies; request handlers never touch the live parameter arrays.
type Monitor struct {
	addr   string
	server *http.Server

	mu   sync.Mutex
	snap snapshot
}

func New(addr string) *Monitor {
	m := &Monitor{addr: addr}

	r := mux.NewRouter()
	r.HandleFunc("/api/params", m.handleParams).Methods("GET")
	r.HandleFunc("/api/status", m.handleStatus).Methods("GET")

	m.server = &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
	return m
}

// Update records the current dynamic values. Called once per tick from the
// simulation loop.
func (m *Monitor) Update(t float64, ticks int, dyn *params.Array) {
	if dyn == nil {
		return
	}
	snap := snapshot{Time: t, Ticks: ticks, Params: dyn.Snapshot()}

	m.mu.Lock()
	m.snap = snap
	m.mu.Unlock()
}

func (m *Monitor) handleParams(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	snap := m.snap
	m.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snap.Params)
}

func (m *Monitor) handleStatus(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	snap := m.snap
	m.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"time":  snap.Time,
		"ticks": snap.Ticks,
	})
}

// Start serves in the background until Shutdown.
func (m *Monitor) Start() {
	go func() {
		// The simulation keeps running without its monitor.
		if err := m.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "monitor: %v\n", err)
		}
	}()
}

func (m *Monitor) Shutdown(ctx context.Context) error {
	return m.server.Shutdown(ctx)
}

// Handler exposes the router for tests.
func (m *Monitor) Handler() http.Handler { return m.server.Handler }
