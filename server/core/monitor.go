package core

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/automoto/boxninja/shared/logging"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait         = 10 * time.Second
	defaultResultRows = 50
	maxResultRows     = 500
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		return u.Host == r.Host
	},
}

// Monitor is the read-only HTTP surface for spectators and operators.
type Monitor struct {
	lobby   *Lobby
	results ResultSource
	loop    *BroadcastLoop
	log     *zap.SugaredLogger
}

// NewMonitor builds the monitor. results may be nil when no ledger is open.
func NewMonitor(lobby *Lobby, results ResultSource, loop *BroadcastLoop) *Monitor {
	return &Monitor{
		lobby:   lobby,
		results: results,
		loop:    loop,
		log:     logging.Named("monitor"),
	}
}

// Routes returns the monitor's handlers.
func (m *Monitor) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", m.health)
	mux.HandleFunc("GET /rooms", m.rooms)
	mux.HandleFunc("GET /results", m.recentResults)
	mux.HandleFunc("GET /ws", m.stream)
	return mux
}

func (m *Monitor) health(w http.ResponseWriter, _ *http.Request) {
	m.writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"players": m.lobby.PlayerCount(),
	})
}

func (m *Monitor) rooms(w http.ResponseWriter, _ *http.Request) {
	m.writeJSON(w, http.StatusOK, m.lobby.Summaries())
}

func (m *Monitor) recentResults(w http.ResponseWriter, r *http.Request) {
	if m.results == nil {
		m.writeJSON(w, http.StatusOK, []RoomResult{})
		return
	}
	limit := defaultResultRows
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			m.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "limit must be a positive integer"})
			return
		}
		limit = min(n, maxResultRows)
	}
	results, err := m.results.RecentResults(r.Context(), limit)
	if err != nil {
		m.log.Warnw("list results", "error", err)
		m.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "results unavailable"})
		return
	}
	if results == nil {
		results = []RoomResult{}
	}
	m.writeJSON(w, http.StatusOK, results)
}

// stream upgrades to a websocket and pushes msgpack frames until the
// spectator goes away.
func (m *Monitor) stream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		m.log.Debugw("upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	frames, unsubscribe := m.loop.Subscribe()
	defer unsubscribe()

	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	m.log.Debugw("spectator attached", "remote", r.RemoteAddr)
	for {
		select {
		case <-gone:
			m.log.Debugw("spectator left", "remote", r.RemoteAddr)
			return
		case data := <-frames:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
				return
			}
		}
	}
}

func (m *Monitor) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		m.log.Warnw("encode response", "error", err)
	}
}
