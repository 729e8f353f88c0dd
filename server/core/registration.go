package core

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/automoto/boxninja/shared/logging"
	"github.com/automoto/boxninja/shared/netconfig"
	"github.com/automoto/boxninja/shared/protocol"
	"go.uber.org/zap"
)

// PlayerCounter reports how many players a relay currently holds.
type PlayerCounter interface {
	PlayerCount() int
}

// RegistrationOptions describes this relay to the master directory.
type RegistrationOptions struct {
	MasterURL string
	Name      string
	Address   string
	Version   string
	Region    string
	Interval  time.Duration
}

// Registration registers with the master directory and keeps the entry
// alive with heartbeats.
type Registration struct {
	opts     RegistrationOptions
	serverID string
	players  PlayerCounter
	client   *http.Client
	log      *zap.SugaredLogger
}

func NewRegistration(opts RegistrationOptions, players PlayerCounter) *Registration {
	if opts.Interval <= 0 {
		opts.Interval = 30 * time.Second
	}
	return &Registration{
		opts:    opts,
		players: players,
		client:  &http.Client{Timeout: 5 * time.Second},
		log:     logging.Named("registration"),
	}
}

// Run registers and then heartbeats until ctx is done. Failures are logged
// and retried on the next beat.
func (r *Registration) Run(ctx context.Context) error {
	if err := r.register(ctx); err != nil {
		r.log.Warnw("initial registration failed", "master", r.opts.MasterURL, "error", err)
	}

	ticker := time.NewTicker(r.opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := r.sendHeartbeat(ctx); err != nil {
				r.log.Warnw("heartbeat failed", "error", err)
			}
		}
	}
}

func (r *Registration) register(ctx context.Context) error {
	body, err := json.Marshal(protocol.RegisterRequest{
		Name:       r.opts.Name,
		Address:    r.opts.Address,
		Players:    r.players.PlayerCount(),
		MaxPlayers: netconfig.RoomSize,
		Version:    r.opts.Version,
		Region:     r.opts.Region,
	})
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	resp, err := r.post(ctx, "/servers/register", body)
	if err != nil {
		return fmt.Errorf("post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var result protocol.RegisterResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	r.serverID = result.ID
	r.log.Infow("registered with master", "id", r.serverID)
	return nil
}

func (r *Registration) sendHeartbeat(ctx context.Context) error {
	if r.serverID == "" {
		return r.register(ctx)
	}
	body, err := json.Marshal(protocol.HeartbeatRequest{
		ID:      r.serverID,
		Players: r.players.PlayerCount(),
	})
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	resp, err := r.post(ctx, "/servers/heartbeat", body)
	if err != nil {
		return fmt.Errorf("post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		r.log.Infow("master lost our registration, re-registering")
		return r.register(ctx)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	return nil
}

func (r *Registration) post(ctx context.Context, path string, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.opts.MasterURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return r.client.Do(req)
}
