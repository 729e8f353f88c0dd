package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/automoto/boxninja/config"
	"github.com/automoto/boxninja/shared/messages"
	"github.com/automoto/boxninja/shared/netconfig"
	"github.com/automoto/boxninja/shared/protocol"
)

var errSeatQuit = errors.New("seat quit")

func relayInterval() time.Duration {
	rate := config.Server.RelayRate
	if rate <= 0 {
		rate = 60
	}
	return time.Second / time.Duration(rate)
}

// relay runs one seat's conversation: BEGIN, then a position exchange per
// tick until the peer quits, disconnects, sends something malformed, or
// fails MaxRelayErrors reads in a row.
func (r *Room) relay(ctx context.Context, s *seat, d netconfig.Difficulty) error {
	if err := s.conn.Send(messages.Begin{Levels: d.Levels()}); err != nil {
		return err
	}
	raw, err := s.conn.Recv()
	if err != nil {
		return err
	}
	if err := protocol.DecodeAck(raw); err != nil {
		if errors.Is(err, protocol.ErrQuit) {
			return errSeatQuit
		}
		return err
	}

	ticker := time.NewTicker(relayInterval())
	defer ticker.Stop()

	failures := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		err := r.cycle(s)
		var pe *protocol.ProtocolError
		switch {
		case err == nil:
			failures = 0
		case errors.Is(err, errSeatQuit), protocol.IsDisconnect(err), errors.As(err, &pe):
			return err
		default:
			failures++
			r.log.Warnw("relay cycle failed", "color", s.color, "error", err, "failures", failures)
			if failures >= config.Server.MaxRelayErrors {
				return fmt.Errorf("%d consecutive relay failures: %w", failures, err)
			}
		}
	}
}

// cycle sends the position table and applies the seat's answer.
func (r *Room) cycle(s *seat) error {
	if err := s.conn.Send(messages.PositionTable{Positions: r.Positions()}); err != nil {
		return err
	}
	raw, err := s.conn.Recv()
	if err != nil {
		return err
	}
	msg, err := protocol.DecodeReport(raw)
	if err != nil {
		return err
	}

	switch m := msg.(type) {
	case messages.Quit:
		return errSeatQuit
	case messages.Position:
		r.setPosition(s.color, m.Position)
	case messages.Done:
		r.setPosition(s.color, m.Position)
		r.markFinished(s)
		return r.collectScore(s)
	}
	return nil
}

// collectScore runs the score handshake that follows a DONE.
func (r *Room) collectScore(s *seat) error {
	if err := s.conn.Send(messages.ScoreTable{Scores: r.Scores()}); err != nil {
		return err
	}
	raw, err := s.conn.Recv()
	if err != nil {
		return err
	}
	v, err := protocol.DecodeScore(raw)
	if errors.Is(err, protocol.ErrQuit) {
		return errSeatQuit
	}
	if err != nil {
		return err
	}
	r.setScore(s.color, v)
	r.log.Infow("player finished", "color", s.color, "cycles", v)
	return nil
}
