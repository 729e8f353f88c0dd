package core

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net"
	"sync"
	"time"

	"github.com/automoto/boxninja/config"
	"github.com/automoto/boxninja/shared/logging"
	"github.com/automoto/boxninja/shared/messages"
	"github.com/automoto/boxninja/shared/netconfig"
	"github.com/automoto/boxninja/shared/protocol"
	"github.com/segmentio/ksuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrRoomFull is returned when a player is added to a room that already
// holds four seats.
var ErrRoomFull = errors.New("room is full")

// RoomState is a room's position in its lifecycle. States only move forward.
type RoomState int

const (
	Filling RoomState = iota
	Full
	AwaitingDifficulty
	Relaying
	Terminal
)

func (s RoomState) String() string {
	switch s {
	case Filling:
		return "filling"
	case Full:
		return "full"
	case AwaitingDifficulty:
		return "awaiting-difficulty"
	case Relaying:
		return "relaying"
	case Terminal:
		return "terminal"
	}
	return "unknown"
}

type seat struct {
	color    netconfig.Color
	conn     *protocol.Conn
	finished bool
	closed   bool
}

// Room relays positions and scores between four seated players.
type Room struct {
	ID ksuid.KSUID

	mu         sync.Mutex
	state      RoomState
	colors     []netconfig.Color
	seats      []*seat
	pending    map[netconfig.Color]bool
	positions  netconfig.Positions
	scores     netconfig.Scores
	difficulty netconfig.Difficulty
	created    time.Time
	started    time.Time

	sink ResultSink
	log  *zap.SugaredLogger
	done chan struct{}
}

// NewRoom creates an empty room with shuffled seat colors. Finished rooms
// are reported to sink, which may be nil.
func NewRoom(sink ResultSink) *Room {
	colors := netconfig.AllColors
	rand.Shuffle(len(colors), func(i, j int) {
		colors[i], colors[j] = colors[j], colors[i]
	})
	return newRoom(sink, colors[:])
}

func newRoom(sink ResultSink, colors []netconfig.Color) *Room {
	id := ksuid.New()
	return &Room{
		ID:        id,
		colors:    colors,
		pending:   make(map[netconfig.Color]bool),
		positions: netconfig.NewPositions(),
		scores:    netconfig.NewScores(),
		created:   time.Now(),
		sink:      sink,
		log:       logging.Named("room").With("room", id.String()),
		done:      make(chan struct{}),
	}
}

// Add greets conn with the next free color and seats it once the peer
// acknowledges. It reports whether the room became full. A failed greeting
// closes conn and leaves the seat free.
func (r *Room) Add(conn net.Conn) (bool, error) {
	color, err := r.reserve()
	if err != nil {
		return false, err
	}
	return r.admit(context.Background(), conn, color)
}

// reserve holds the next free color for a greeting in progress. Greetings
// run concurrently, so a color stays held until admit settles it.
func (r *Room) reserve() (netconfig.Color, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != Filling {
		return "", ErrRoomFull
	}
	for _, c := range r.colors {
		if r.pending[c] || r.seatedLocked(c) {
			continue
		}
		r.pending[c] = true
		return c, nil
	}
	return "", ErrRoomFull
}

func (r *Room) seatedLocked(c netconfig.Color) bool {
	for _, s := range r.seats {
		if s.color == c {
			return true
		}
	}
	return false
}

// admit greets conn with a reserved color. Cancelling ctx or exceeding
// Server.GreetSeconds abandons the greeting.
func (r *Room) admit(ctx context.Context, conn net.Conn, color netconfig.Color) (bool, error) {
	pc := protocol.NewConn(conn)
	stop := context.AfterFunc(ctx, func() { pc.Close() })
	if secs := config.Server.GreetSeconds; secs > 0 {
		_ = conn.SetDeadline(time.Now().Add(time.Duration(secs) * time.Second))
	}
	err := greet(pc, color)
	if err == nil {
		_ = conn.SetDeadline(time.Time{})
	}
	if !stop() && err == nil {
		err = ctx.Err()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.pending, color)
	if err != nil {
		pc.Close()
		return false, fmt.Errorf("greet %s: %w", color, err)
	}
	r.seats = append(r.seats, &seat{color: color, conn: pc})
	r.log.Infow("player seated", "color", color, "remote", conn.RemoteAddr(), "seats", len(r.seats))
	if len(r.seats) == netconfig.RoomSize {
		r.state = Full
		return true, nil
	}
	return false, nil
}

func greet(conn *protocol.Conn, color netconfig.Color) error {
	if err := conn.Send(messages.Connect{Color: color}); err != nil {
		return err
	}
	raw, err := conn.Recv()
	if err != nil {
		return err
	}
	return protocol.DecodeAck(raw)
}

// Run drives a full room to completion: it asks the first seat for a
// difficulty, then relays every seat concurrently until all of them have
// quit or disconnected. Cancelling ctx closes every seat.
func (r *Room) Run(ctx context.Context) error {
	r.mu.Lock()
	if r.state != Full {
		state := r.state
		r.mu.Unlock()
		return fmt.Errorf("run room in state %s", state)
	}
	r.state = AwaitingDifficulty
	seats := append([]*seat(nil), r.seats...)
	r.mu.Unlock()
	defer close(r.done)

	stop := context.AfterFunc(ctx, r.closeAll)
	defer stop()

	d := r.chooseDifficulty(seats[0])

	r.mu.Lock()
	r.difficulty = d
	r.state = Relaying
	r.started = time.Now()
	r.mu.Unlock()
	r.log.Infow("relay started", "difficulty", d.String(), "levels", d.Levels())

	var g errgroup.Group
	for _, s := range seats {
		if r.isClosed(s) {
			continue
		}
		g.Go(func() error {
			err := r.relay(ctx, s, d)
			r.closeSeat(s, err)
			return nil
		})
	}
	_ = g.Wait()

	r.mu.Lock()
	r.state = Terminal
	result := r.resultLocked()
	r.mu.Unlock()
	r.log.Infow("room finished", "scores", result.Players)

	if r.sink != nil {
		if err := r.sink.RecordRoom(context.WithoutCancel(ctx), result); err != nil {
			r.log.Warnw("could not record room result", "error", err)
			return fmt.Errorf("record room %s: %w", r.ID, err)
		}
	}
	return nil
}

// chooseDifficulty asks s for the level count. Anything but a valid code
// falls back to the configured default.
func (r *Room) chooseDifficulty(s *seat) netconfig.Difficulty {
	fallback, err := netconfig.ParseDifficulty(config.Server.DefaultDifficulty)
	if err != nil {
		fallback = netconfig.Normal
	}

	if err := s.conn.Send(messages.ChooseDifficulty{}); err != nil {
		r.closeSeat(s, err)
		return fallback
	}
	raw, err := s.conn.Recv()
	if err != nil {
		r.closeSeat(s, err)
		return fallback
	}
	d, err := protocol.DecodeDifficulty(raw)
	if errors.Is(err, protocol.ErrQuit) {
		r.closeSeat(s, errSeatQuit)
		return fallback
	}
	if err != nil {
		r.log.Warnw("invalid difficulty, using default", "color", s.color, "error", err, "default", fallback)
		return fallback
	}
	return d
}

func (r *Room) isClosed(s *seat) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return s.closed
}

// closeSeat closes s once and logs why it ended.
func (r *Room) closeSeat(s *seat, reason error) {
	r.mu.Lock()
	already := s.closed
	s.closed = true
	r.mu.Unlock()
	if already {
		return
	}
	s.conn.Close()

	log := r.log.With("color", s.color)
	var pe *protocol.ProtocolError
	switch {
	case reason == nil, errors.Is(reason, errSeatQuit):
		log.Infow("player left")
	case protocol.IsDisconnect(reason):
		log.Infow("player disconnected")
	case errors.As(reason, &pe):
		log.Warnw("closing seat after malformed message", "error", reason)
	default:
		log.Warnw("closing seat", "error", reason)
	}
}

func (r *Room) closeAll() {
	r.mu.Lock()
	seats := append([]*seat(nil), r.seats...)
	r.mu.Unlock()
	for _, s := range seats {
		r.closeSeat(s, net.ErrClosed)
	}
}

// Done is closed when Run returns.
func (r *Room) Done() <-chan struct{} {
	return r.done
}

// State returns the current lifecycle state.
func (r *Room) State() RoomState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Full reports whether the room stopped accepting players.
func (r *Room) Full() bool {
	return r.State() != Filling
}

// PlayerCount is the number of seats still connected.
func (r *Room) PlayerCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, s := range r.seats {
		if !s.closed {
			n++
		}
	}
	return n
}

// Positions returns a copy of the position table.
func (r *Room) Positions() netconfig.Positions {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(netconfig.Positions, len(r.positions))
	for c, p := range r.positions {
		out[c] = p
	}
	return out
}

// Scores returns a copy of the score table.
func (r *Room) Scores() netconfig.Scores {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(netconfig.Scores, len(r.scores))
	for c, v := range r.scores {
		out[c] = v
	}
	return out
}

func (r *Room) setPosition(c netconfig.Color, p netconfig.Position) {
	r.mu.Lock()
	r.positions[c] = p
	r.mu.Unlock()
}

func (r *Room) setScore(c netconfig.Color, v int) {
	r.mu.Lock()
	r.scores[c] = v
	r.mu.Unlock()
}

func (r *Room) markFinished(s *seat) {
	r.mu.Lock()
	s.finished = true
	r.mu.Unlock()
}

// RoomSummary is the monitor's view of a room.
type RoomSummary struct {
	ID         string              `json:"id" msgpack:"id"`
	State      string              `json:"state" msgpack:"state"`
	Difficulty string              `json:"difficulty,omitempty" msgpack:"difficulty,omitempty"`
	Seats      []SeatSummary       `json:"seats" msgpack:"seats"`
	Positions  netconfig.Positions `json:"positions" msgpack:"positions"`
	Scores     netconfig.Scores    `json:"scores" msgpack:"scores"`
	Created    time.Time           `json:"created" msgpack:"created"`
}

type SeatSummary struct {
	Color     netconfig.Color `json:"color" msgpack:"color"`
	Connected bool            `json:"connected" msgpack:"connected"`
	Finished  bool            `json:"finished" msgpack:"finished"`
}

// Summary captures the room under its lock.
func (r *Room) Summary() RoomSummary {
	r.mu.Lock()
	defer r.mu.Unlock()
	sum := RoomSummary{
		ID:         r.ID.String(),
		State:      r.state.String(),
		Difficulty: string(r.difficulty),
		Seats:      make([]SeatSummary, 0, len(r.seats)),
		Positions:  make(netconfig.Positions, len(r.positions)),
		Scores:     make(netconfig.Scores, len(r.scores)),
		Created:    r.created,
	}
	for _, s := range r.seats {
		sum.Seats = append(sum.Seats, SeatSummary{Color: s.color, Connected: !s.closed, Finished: s.finished})
	}
	for c, p := range r.positions {
		sum.Positions[c] = p
	}
	for c, v := range r.scores {
		sum.Scores[c] = v
	}
	return sum
}

func (r *Room) resultLocked() RoomResult {
	res := RoomResult{
		RoomID:     r.ID.String(),
		Difficulty: string(r.difficulty),
		StartedAt:  r.started,
		EndedAt:    time.Now(),
	}
	for _, s := range r.seats {
		res.Players = append(res.Players, PlayerResult{
			Color:    s.color,
			Score:    r.scores[s.color],
			Finished: s.finished,
		})
	}
	return res
}
