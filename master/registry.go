// Package master is the directory relay servers register with and clients
// list servers from.
package master

import (
	"sort"
	"sync"
	"time"

	"github.com/automoto/boxninja/shared/logging"
	"github.com/segmentio/ksuid"
	"go.uber.org/zap"
)

// ServerInfo describes a relay server visible to clients.
type ServerInfo struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Address    string `json:"address"`
	Players    int    `json:"players"`
	MaxPlayers int    `json:"maxPlayers"`
	Version    string `json:"version"`
	Region     string `json:"region"`
}

type serverRecord struct {
	ServerInfo
	LastSeen time.Time
}

// Registry is an in-memory store of active relay servers with TTL-based
// expiry.
type Registry struct {
	mu      sync.RWMutex
	servers map[string]*serverRecord
	ttl     time.Duration
	now     func() time.Time
	log     *zap.SugaredLogger
	stopCh  chan struct{}
	stopped sync.Once
}

func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		servers: make(map[string]*serverRecord),
		ttl:     ttl,
		now:     time.Now,
		log:     logging.Named("master"),
		stopCh:  make(chan struct{}),
	}
}

// StartCleanup expires stale entries every interval until Stop.
func (r *Registry) StartCleanup(interval time.Duration) {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	go r.cleanupLoop(interval)
}

func (r *Registry) Stop() {
	r.stopped.Do(func() { close(r.stopCh) })
}

func (r *Registry) Register(info ServerInfo) string {
	id := ksuid.New().String()
	info.ID = id

	r.mu.Lock()
	r.servers[id] = &serverRecord{
		ServerInfo: info,
		LastSeen:   r.now(),
	}
	r.mu.Unlock()

	return id
}

func (r *Registry) Heartbeat(id string, players int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.servers[id]
	if !ok {
		return false
	}
	rec.LastSeen = r.now()
	rec.Players = players
	return true
}

// List returns live servers ordered by id.
func (r *Registry) List() []ServerInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]ServerInfo, 0, len(r.servers))
	for _, rec := range r.servers {
		result = append(result, rec.ServerInfo)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// Expire drops every entry not seen within the TTL and returns how many
// were removed.
func (r *Registry) Expire() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	n := 0
	for id, rec := range r.servers {
		if age := now.Sub(rec.LastSeen); age >= r.ttl {
			r.log.Infow("expired server", "name", rec.Name, "id", id, "lastSeen", age.Round(time.Second))
			delete(r.servers, id)
			n++
		}
	}
	return n
}

func (r *Registry) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopCh:
			return
		case <-ticker.C:
			r.Expire()
		}
	}
}
