package master

import (
	"encoding/json"
	"net/http"

	"github.com/automoto/boxninja/shared/logging"
	"github.com/automoto/boxninja/shared/protocol"
)

const maxRequestBody = 1 << 16 // 64 KB

// Routes wires the directory endpoints onto a new mux.
func Routes(reg *Registry) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /servers", ListServers(reg))
	mux.HandleFunc("POST /servers/register", RegisterServer(reg))
	mux.HandleFunc("POST /servers/heartbeat", Heartbeat(reg))
	mux.HandleFunc("GET /health", Health())
	return mux
}

func ListServers(reg *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Access-Control-Allow-Origin", "*")

		if err := json.NewEncoder(w).Encode(reg.List()); err != nil {
			logging.Named("master").Warnw("list encode error", "error", err)
		}
	}
}

func RegisterServer(reg *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Access-Control-Allow-Origin", "*")

		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
		var req protocol.RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
			return
		}
		if req.Name == "" || req.Address == "" {
			http.Error(w, `{"error":"name and address required"}`, http.StatusBadRequest)
			return
		}

		id := reg.Register(ServerInfo{
			Name:       req.Name,
			Address:    req.Address,
			Players:    req.Players,
			MaxPlayers: req.MaxPlayers,
			Version:    req.Version,
			Region:     req.Region,
		})

		logging.Named("master").Infow("registered server", "name", req.Name, "address", req.Address, "id", id)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(protocol.RegisterResponse{ID: id})
	}
}

func Heartbeat(reg *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Access-Control-Allow-Origin", "*")

		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
		var req protocol.HeartbeatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
			return
		}

		if !reg.Heartbeat(req.ID, req.Players) {
			http.Error(w, `{"error":"unknown server"}`, http.StatusNotFound)
			return
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}
}

func Health() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}
}
