// Package protocol implements the colon-delimited text encoding spoken between
// clients and rooms. Token spellings are fixed for interop with existing peers.
package protocol

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/automoto/boxninja/shared/messages"
	"github.com/automoto/boxninja/shared/netconfig"
)

// Wire tokens.
const (
	ACK   = "ACK"
	DIFF  = "DIFF"
	DATA  = "DATA"
	BEGIN = "BEGIN"
	DONE  = "DONE"
	SCORE = "SCORE"
	POS   = "POS"
	QUIT  = "QUIT"
)

// MaxMessageSize bounds a single read.
const MaxMessageSize = 1024

const sep = ":"

var ErrUnknownColor = errors.New("unknown color")

// ProtocolError reports a message that does not match the grammar expected
// at this point of the conversation.
type ProtocolError struct {
	Expect string // token or message kind that was expected
	Raw    string
	Reason string
	Err    error
}

func (e *ProtocolError) Error() string {
	msg := fmt.Sprintf("protocol: expected %s, got %q: %s", e.Expect, e.Raw, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}

func protoErr(expect, raw, reason string, err error) *ProtocolError {
	return &ProtocolError{Expect: expect, Raw: raw, Reason: reason, Err: err}
}

// Encode renders msg in wire form.
func Encode(msg messages.Message) (string, error) {
	switch m := msg.(type) {
	case messages.Connect:
		return string(m.Color), nil
	case messages.ChooseDifficulty:
		return DIFF, nil
	case messages.DifficultyChoice:
		return string(m.Difficulty), nil
	case messages.Begin:
		if m.Levels <= 0 {
			return BEGIN, nil
		}
		return BEGIN + sep + strconv.Itoa(m.Levels), nil
	case messages.PositionTable:
		return encodePositions(m), nil
	case messages.DataRequest:
		return DATA, nil
	case messages.Position:
		return encodePosition(m.Position), nil
	case messages.Done:
		return DONE + sep + encodePosition(m.Position), nil
	case messages.ScoreTable:
		return encodeScores(m.Scores), nil
	case messages.Score:
		return strconv.Itoa(m.Value), nil
	case messages.Quit:
		return QUIT, nil
	case messages.Ack:
		return ACK, nil
	}
	return "", fmt.Errorf("protocol: cannot encode %T", msg)
}

func encodePosition(p netconfig.Position) string {
	return strconv.Itoa(p.Level) + sep + FormatFloat(p.X) + sep + FormatFloat(p.Y)
}

func encodePositions(t messages.PositionTable) string {
	var b strings.Builder
	if !t.Legacy {
		b.WriteString(POS)
	}
	for i, c := range netconfig.AllColors {
		if i > 0 || !t.Legacy {
			b.WriteString(sep)
		}
		p := t.Positions[c]
		b.WriteString(string(c))
		b.WriteString(sep)
		fmt.Fprintf(&b, "(%d, %s, %s)", p.Level, FormatFloat(p.X), FormatFloat(p.Y))
	}
	return b.String()
}

func encodeScores(s netconfig.Scores) string {
	var b strings.Builder
	b.WriteString(SCORE)
	for _, c := range netconfig.AllColors {
		b.WriteString(sep)
		b.WriteString(string(c))
		b.WriteString(sep)
		b.WriteString(strconv.Itoa(s[c]))
	}
	return b.String()
}

// FormatFloat renders f as the shortest decimal that parses back to the same
// value, always with a fractional part ("10" becomes "10.0").
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// DecodeServer parses a message sent by a room to a client.
func DecodeServer(raw string) (messages.Message, error) {
	switch {
	case raw == DIFF:
		return messages.ChooseDifficulty{}, nil
	case raw == DATA:
		return messages.DataRequest{}, nil
	case raw == BEGIN:
		return messages.Begin{}, nil
	case strings.HasPrefix(raw, BEGIN+sep):
		n, err := strconv.Atoi(strings.TrimPrefix(raw, BEGIN+sep))
		if err != nil || n <= 0 {
			return nil, protoErr(BEGIN, raw, "level count must be a positive integer", err)
		}
		return messages.Begin{Levels: n}, nil
	case strings.HasPrefix(raw, POS+sep):
		positions, err := decodePositions(strings.TrimPrefix(raw, POS+sep))
		if err != nil {
			return nil, protoErr(POS, raw, "bad position table", err)
		}
		return messages.PositionTable{Positions: positions}, nil
	case strings.HasPrefix(raw, SCORE+sep):
		scores, err := decodeScores(strings.TrimPrefix(raw, SCORE+sep))
		if err != nil {
			return nil, protoErr(SCORE, raw, "bad score table", err)
		}
		return messages.ScoreTable{Scores: scores}, nil
	}

	if c, err := netconfig.ParseColor(raw); err == nil {
		return messages.Connect{Color: c}, nil
	}
	if strings.Contains(raw, "(") {
		positions, err := decodePositions(raw)
		if err != nil {
			return nil, protoErr(POS, raw, "bad legacy position table", err)
		}
		return messages.PositionTable{Positions: positions, Legacy: true}, nil
	}
	return nil, protoErr("server message", raw, "unknown token", nil)
}

func decodePositions(body string) (netconfig.Positions, error) {
	fields := strings.Split(body, sep)
	if len(fields)%2 != 0 {
		return nil, fmt.Errorf("odd field count %d", len(fields))
	}
	positions := netconfig.NewPositions()
	for i := 0; i < len(fields); i += 2 {
		c, err := netconfig.ParseColor(fields[i])
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownColor, fields[i])
		}
		p, err := parseTuple(fields[i+1])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", c, err)
		}
		positions[c] = p
	}
	return positions, nil
}

// parseTuple reads "(<level>, <x>, <y>)".
func parseTuple(s string) (netconfig.Position, error) {
	if len(s) < 2 || s[0] != '(' || s[len(s)-1] != ')' {
		return netconfig.Position{}, fmt.Errorf("tuple %q not parenthesized", s)
	}
	parts := strings.Split(s[1:len(s)-1], ", ")
	if len(parts) != 3 {
		return netconfig.Position{}, fmt.Errorf("tuple %q has %d fields", s, len(parts))
	}
	return parsePosition(parts)
}

func parsePosition(parts []string) (netconfig.Position, error) {
	level, err := strconv.Atoi(parts[0])
	if err != nil {
		return netconfig.Position{}, fmt.Errorf("level: %w", err)
	}
	x, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return netconfig.Position{}, fmt.Errorf("x: %w", err)
	}
	y, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return netconfig.Position{}, fmt.Errorf("y: %w", err)
	}
	return netconfig.Position{Level: level, X: x, Y: y}, nil
}

func decodeScores(body string) (netconfig.Scores, error) {
	fields := strings.Split(body, sep)
	if len(fields)%2 != 0 {
		return nil, fmt.Errorf("odd field count %d", len(fields))
	}
	scores := netconfig.NewScores()
	for i := 0; i < len(fields); i += 2 {
		c, err := netconfig.ParseColor(fields[i])
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownColor, fields[i])
		}
		v, err := strconv.Atoi(fields[i+1])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", c, err)
		}
		scores[c] = v
	}
	return scores, nil
}

// DecodeReport parses a client's answer to a position table: a Position,
// a Done, or a Quit. Anything containing QUIT is a Quit.
func DecodeReport(raw string) (messages.Message, error) {
	if strings.Contains(raw, QUIT) {
		return messages.Quit{}, nil
	}
	done := strings.HasPrefix(raw, DONE+sep)
	body := strings.TrimPrefix(raw, DONE+sep)

	parts := strings.Split(body, sep)
	if len(parts) != 3 {
		return nil, protoErr("position report", raw, fmt.Sprintf("want 3 fields, got %d", len(parts)), nil)
	}
	p, err := parsePosition(parts)
	if err != nil {
		return nil, protoErr("position report", raw, "non-numeric field", err)
	}
	if done {
		return messages.Done{Position: p}, nil
	}
	return messages.Position{Position: p}, nil
}

// DecodeAck checks for ACK. A QUIT is reported as ErrQuit.
func DecodeAck(raw string) error {
	if raw == ACK {
		return nil
	}
	if strings.Contains(raw, QUIT) {
		return ErrQuit
	}
	return protoErr(ACK, raw, "unexpected reply", nil)
}

// ErrQuit is returned when a peer answers a handshake step with QUIT.
var ErrQuit = errors.New("peer quit")

// DecodeDifficulty parses the first seat's answer to DIFF.
func DecodeDifficulty(raw string) (netconfig.Difficulty, error) {
	if strings.Contains(raw, QUIT) {
		return "", ErrQuit
	}
	d, err := netconfig.ParseDifficulty(strings.TrimSpace(raw))
	if err != nil {
		return "", protoErr("difficulty", raw, "not a difficulty code", err)
	}
	return d, nil
}

// DecodeScore parses a client's answer to a score table.
func DecodeScore(raw string) (int, error) {
	if strings.Contains(raw, QUIT) {
		return 0, ErrQuit
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, protoErr("score", raw, "not an integer", err)
	}
	return v, nil
}
