package network

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/automoto/boxninja/shared/logging"
	"github.com/automoto/boxninja/shared/messages"
	"github.com/automoto/boxninja/shared/netconfig"
	"github.com/automoto/boxninja/shared/protocol"
)

type ClientState int

const (
	StateDisconnected ClientState = iota
	StateConnecting
	StateSeated  // color assigned
	StateRunning // BEGIN received
	StateError
)

// EventKind identifies a lifecycle event delivered to the simulation.
type EventKind int

const (
	EventSeated EventKind = iota
	EventBegin
	EventClosed
)

type Event struct {
	Kind   EventKind
	Color  netconfig.Color // EventSeated
	Levels int             // EventBegin; 0 for a bare BEGIN
	Err    error           // EventClosed; nil on a clean close
}

// LocalStatus is what the simulation publishes for the next reply to the
// room. The client never reads the player directly.
type LocalStatus struct {
	Position netconfig.Position
	Finished bool // arrived in the lounge
	Score    int  // cycles the run took, valid once Finished
}

// Client speaks the client end of the room protocol over one TCP
// connection. All shared fields are protected by mu; the read loop runs on
// its own goroutine and only talks to the simulation through the status and
// the channels below.
type Client struct {
	mu sync.RWMutex

	state     ClientState
	lastError error
	color     netconfig.Color
	conn      *protocol.Conn
	status    LocalStatus
	doneSent  bool
	quitting  bool

	difficulty func() netconfig.Difficulty

	positionsCh chan netconfig.Positions // size-1 buffered; latest wins
	scoresCh    chan netconfig.Scores    // size-1 buffered; latest wins
	eventsCh    chan Event
}

// NewClient returns a disconnected client. difficulty answers the room's
// DIFF prompt.
func NewClient(difficulty func() netconfig.Difficulty) *Client {
	return &Client{
		state:       StateDisconnected,
		difficulty:  difficulty,
		positionsCh: make(chan netconfig.Positions, 1),
		scoresCh:    make(chan netconfig.Scores, 1),
		eventsCh:    make(chan Event, 8),
	}
}

// Dial connects to a relay server and starts the read loop.
func (c *Client) Dial(ctx context.Context, address string) error {
	c.mu.Lock()
	c.state = StateConnecting
	c.lastError = nil
	c.mu.Unlock()

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", address)
	if err != nil {
		err = fmt.Errorf("dial %s: %w", address, err)
		c.setError(err)
		return err
	}
	logging.Named("client").Infow("connected", "address", address)
	c.Start(conn)
	return nil
}

// Start runs the protocol over an established connection.
func (c *Client) Start(conn net.Conn) {
	pc := protocol.NewConn(conn)
	c.mu.Lock()
	c.conn = pc
	if c.state == StateDisconnected {
		c.state = StateConnecting
	}
	c.mu.Unlock()

	go c.readLoop(pc)
}

func (c *Client) readLoop(conn *protocol.Conn) {
	log := logging.Named("client")
	for {
		raw, err := conn.Recv()
		if err != nil {
			c.closed(err)
			return
		}
		if err := c.handle(conn, raw); err != nil {
			if errors.Is(err, errQuitSent) {
				c.closed(nil)
				return
			}
			var pe *protocol.ProtocolError
			if errors.As(err, &pe) {
				log.Warnw("ignoring malformed message", "raw", raw, "error", err)
				continue
			}
			c.closed(err)
			return
		}
	}
}

var errQuitSent = errors.New("quit sent")

func (c *Client) handle(conn *protocol.Conn, raw string) error {
	msg, err := protocol.DecodeServer(raw)
	if err != nil {
		return err
	}

	switch m := msg.(type) {
	case messages.Connect:
		c.mu.Lock()
		c.color = m.Color
		c.state = StateSeated
		c.mu.Unlock()
		c.push(Event{Kind: EventSeated, Color: m.Color})
		return conn.Send(messages.Ack{})

	case messages.ChooseDifficulty:
		d := netconfig.Normal
		if c.difficulty != nil {
			d = c.difficulty()
		}
		logging.Named("client").Infow("chose difficulty", "difficulty", d.String())
		return conn.Send(messages.DifficultyChoice{Difficulty: d})

	case messages.Begin:
		c.mu.Lock()
		c.state = StateRunning
		c.mu.Unlock()
		c.push(Event{Kind: EventBegin, Levels: m.Levels})
		return conn.Send(messages.Ack{})

	case messages.PositionTable:
		latest(c.positionsCh, m.Positions)
		if m.Legacy {
			return conn.Send(messages.Ack{})
		}
		return c.report(conn)

	case messages.DataRequest:
		c.mu.RLock()
		pos := c.status.Position
		c.mu.RUnlock()
		return conn.Send(messages.Position{Position: pos})

	case messages.ScoreTable:
		latest(c.scoresCh, m.Scores)
		c.mu.RLock()
		score := c.status.Score
		c.mu.RUnlock()
		return conn.Send(messages.Score{Value: score})
	}
	return nil
}

// report answers a position table: QUIT once asked to leave, DONE exactly
// once after finishing, a plain position otherwise.
func (c *Client) report(conn *protocol.Conn) error {
	c.mu.Lock()
	status := c.status
	quitting := c.quitting
	sendDone := status.Finished && !c.doneSent
	if sendDone {
		c.doneSent = true
	}
	c.mu.Unlock()

	switch {
	case quitting:
		if err := conn.Send(messages.Quit{}); err != nil {
			return err
		}
		return errQuitSent
	case sendDone:
		return conn.Send(messages.Done{Position: status.Position})
	}
	return conn.Send(messages.Position{Position: status.Position})
}

func (c *Client) closed(err error) {
	log := logging.Named("client")
	c.mu.Lock()
	quitting := c.quitting
	if err != nil && !quitting && !protocol.IsDisconnect(err) {
		c.state = StateError
		c.lastError = err
	} else if c.state != StateError {
		c.state = StateDisconnected
	}
	conn := c.conn
	c.conn = nil
	c.mu.Unlock()

	if conn != nil {
		_ = conn.Close()
	}
	if quitting || protocol.IsDisconnect(err) {
		err = nil
	}
	log.Infow("disconnected", "error", err)
	c.push(Event{Kind: EventClosed, Err: err})
}

// SetStatus publishes the simulation's latest state for the next reply.
func (c *Client) SetStatus(s LocalStatus) {
	c.mu.Lock()
	c.status = s
	c.mu.Unlock()
}

// Quit asks the read loop to answer the next position table with QUIT and
// hang up.
func (c *Client) Quit() {
	c.mu.Lock()
	c.quitting = true
	c.mu.Unlock()
}

// Close sends QUIT immediately and closes the connection.
func (c *Client) Close() error {
	c.mu.Lock()
	c.quitting = true
	conn := c.conn
	c.conn = nil
	c.state = StateDisconnected
	c.mu.Unlock()

	if conn == nil {
		return nil
	}
	_ = conn.Send(messages.Quit{})
	return conn.Close()
}

func (c *Client) State() ClientState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Client) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastError
}

func (c *Client) Color() netconfig.Color {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.color
}

func (c *Client) setError(err error) {
	c.mu.Lock()
	c.state = StateError
	c.lastError = err
	c.mu.Unlock()
}

func (c *Client) push(ev Event) {
	select {
	case c.eventsCh <- ev:
	default:
		logging.Named("client").Warnw("event mailbox full, dropping", "kind", ev.Kind)
	}
}

// LatestPositions returns the most recent position table, or nil. Non-blocking.
func (c *Client) LatestPositions() netconfig.Positions {
	select {
	case p := <-c.positionsCh:
		return p
	default:
		return nil
	}
}

// LatestScores returns the most recent score table, or nil. Non-blocking.
func (c *Client) LatestScores() netconfig.Scores {
	select {
	case s := <-c.scoresCh:
		return s
	default:
		return nil
	}
}

// DrainEvents returns all pending lifecycle events, non-blocking.
func (c *Client) DrainEvents() []Event {
	return drainChan(c.eventsCh)
}

// latest replaces whatever is buffered in ch with v.
func latest[T any](ch chan T, v T) {
	select { // drain stale, push latest
	case <-ch:
	default:
	}
	select {
	case ch <- v:
	default:
	}
}

func drainChan[T any](ch chan T) []T {
	var out []T
	for {
		select {
		case v := <-ch:
			out = append(out, v)
		default:
			return out
		}
	}
}
