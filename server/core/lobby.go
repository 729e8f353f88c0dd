package core

import (
	"context"
	"net"
	"sync"

	"github.com/automoto/boxninja/shared/logging"
	"github.com/automoto/boxninja/shared/netconfig"
	"go.uber.org/zap"
)

// Lobby seats incoming players into rooms, opening a new room whenever the
// current one is full. Rooms are never reused.
type Lobby struct {
	mu    sync.Mutex
	rooms []*Room
	sink  ResultSink
	wg    sync.WaitGroup
	log   *zap.SugaredLogger
}

func NewLobby(sink ResultSink) *Lobby {
	return &Lobby{
		sink: sink,
		log:  logging.Named("lobby"),
	}
}

// Seat greets conn in the oldest room with a free color, opening a new room
// when none has one, and starts the room's relay once it fills. Seat is safe
// for concurrent use; a slow greeting only holds its own color.
func (l *Lobby) Seat(ctx context.Context, conn net.Conn) (*Room, error) {
	room, color := l.reserve()

	full, err := room.admit(ctx, conn, color)
	if err != nil {
		l.log.Warnw("could not seat player", "room", room.ID.String(), "remote", conn.RemoteAddr(), "error", err)
		return room, err
	}
	if full {
		l.log.Infow("room full, starting relay", "room", room.ID.String())
		l.wg.Add(1)
		go func() {
			defer l.wg.Done()
			if err := room.Run(ctx); err != nil {
				l.log.Warnw("room ended with error", "room", room.ID.String(), "error", err)
			}
		}()
	}
	return room, nil
}

// reserve holds a color in the first filling room that has one free,
// opening a room if needed.
func (l *Lobby) reserve() (*Room, netconfig.Color) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, r := range l.rooms {
		if c, err := r.reserve(); err == nil {
			return r, c
		}
	}
	room := NewRoom(l.sink)
	l.rooms = append(l.rooms, room)
	l.log.Debugw("room opened", "room", room.ID.String(), "rooms", len(l.rooms))
	c, _ := room.reserve()
	return room, c
}

// Rooms returns every room opened so far, oldest first.
func (l *Lobby) Rooms() []*Room {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]*Room(nil), l.rooms...)
}

// Summaries captures every room that has not turned terminal.
func (l *Lobby) Summaries() []RoomSummary {
	rooms := l.Rooms()
	out := make([]RoomSummary, 0, len(rooms))
	for _, r := range rooms {
		if r.State() == Terminal {
			continue
		}
		out = append(out, r.Summary())
	}
	return out
}

// PlayerCount is the number of connected players across all rooms.
func (l *Lobby) PlayerCount() int {
	n := 0
	for _, r := range l.Rooms() {
		n += r.PlayerCount()
	}
	return n
}

// closeWaiting hangs up players seated in rooms that never filled.
func (l *Lobby) closeWaiting() {
	for _, r := range l.Rooms() {
		if r.State() == Filling {
			r.closeAll()
		}
	}
}

// Wait blocks until every started room has finished.
func (l *Lobby) Wait() {
	l.wg.Wait()
}
