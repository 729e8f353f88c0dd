package core

import (
	"sync"
	"time"

	"github.com/automoto/boxninja/shared/logging"
	"github.com/vmihailenco/msgpack/v5"
)

// Frame is one spectator update.
type Frame struct {
	Tick  uint64        `msgpack:"tick"`
	Time  time.Time     `msgpack:"time"`
	Rooms []RoomSummary `msgpack:"rooms"`
}

// BroadcastLoop encodes the lobby at a fixed rate and hands each frame to
// every subscriber. Slow subscribers only ever hold the newest frame.
type BroadcastLoop struct {
	lobby    *Lobby
	tickRate int
	tick     uint64

	mu   sync.Mutex
	subs map[chan []byte]struct{}

	stopOnce sync.Once
	stopChan chan struct{}
}

func NewBroadcastLoop(lobby *Lobby, tickRate int) *BroadcastLoop {
	if tickRate <= 0 {
		tickRate = 10
	}
	return &BroadcastLoop{
		lobby:    lobby,
		tickRate: tickRate,
		subs:     make(map[chan []byte]struct{}),
		stopChan: make(chan struct{}),
	}
}

func (g *BroadcastLoop) Run() {
	log := logging.Named("monitor")
	ticker := time.NewTicker(time.Second / time.Duration(g.tickRate))
	defer ticker.Stop()

	log.Infow("broadcast loop started", "rate", g.tickRate)

	for {
		select {
		case <-g.stopChan:
			log.Infow("broadcast loop stopped")
			return
		case <-ticker.C:
			if err := g.broadcast(); err != nil {
				log.Warnw("encode frame", "error", err)
			}
		}
	}
}

func (g *BroadcastLoop) Stop() {
	g.stopOnce.Do(func() { close(g.stopChan) })
}

// Subscribe returns a channel of encoded frames. Call the returned func to
// unsubscribe.
func (g *BroadcastLoop) Subscribe() (<-chan []byte, func()) {
	ch := make(chan []byte, 1)
	g.mu.Lock()
	g.subs[ch] = struct{}{}
	g.mu.Unlock()
	return ch, func() {
		g.mu.Lock()
		delete(g.subs, ch)
		g.mu.Unlock()
	}
}

// Subscribers is the number of attached spectators.
func (g *BroadcastLoop) Subscribers() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.subs)
}

func (g *BroadcastLoop) broadcast() error {
	if g.Subscribers() == 0 {
		return nil
	}
	g.tick++
	data, err := EncodeFrame(Frame{Tick: g.tick, Time: time.Now(), Rooms: g.lobby.Summaries()})
	if err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	for ch := range g.subs {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- data:
		default:
		}
	}
	return nil
}

// EncodeFrame renders f as msgpack.
func EncodeFrame(f Frame) ([]byte, error) {
	return msgpack.Marshal(&f)
}

// DecodeFrame parses a msgpack frame.
func DecodeFrame(data []byte) (Frame, error) {
	var f Frame
	err := msgpack.Unmarshal(data, &f)
	return f, err
}
