// Package messages defines the typed messages exchanged between a client and
// its room. The textual encoding lives in shared/protocol.
package messages

import "github.com/automoto/boxninja/shared/netconfig"

// Message is implemented by every wire message.
type Message interface {
	isMessage()
}

// Connect assigns a seat color. Sent once, right after accept.
type Connect struct {
	Color netconfig.Color
}

// ChooseDifficulty asks the room's first seat for a difficulty code.
type ChooseDifficulty struct{}

// DifficultyChoice is the first seat's answer to ChooseDifficulty.
type DifficultyChoice struct {
	Difficulty netconfig.Difficulty
}

// Begin starts a run covering Levels levels. Levels is zero when a peer
// sent the bare legacy token.
type Begin struct {
	Levels int
}

// PositionTable carries every seat's last known position.
// Legacy is set when the table arrived without the POS token.
type PositionTable struct {
	Positions netconfig.Positions
	Legacy    bool
}

// DataRequest is the legacy prompt for the client's position.
type DataRequest struct{}

// Position is a client's regular report.
type Position struct {
	Position netconfig.Position
}

// Done reports arrival in the end-of-run lounge.
type Done struct {
	Position netconfig.Position
}

// ScoreTable carries every seat's reported score. Sent right after a Done.
type ScoreTable struct {
	Scores netconfig.Scores
}

// Score is a client's answer to ScoreTable: its elapsed cycle count.
type Score struct {
	Value int
}

// Quit asks the room to close this seat.
type Quit struct{}

// Ack acknowledges Connect, Begin and legacy tables.
type Ack struct{}

func (Connect) isMessage()          {}
func (ChooseDifficulty) isMessage() {}
func (DifficultyChoice) isMessage() {}
func (Begin) isMessage()            {}
func (PositionTable) isMessage()    {}
func (DataRequest) isMessage()      {}
func (Position) isMessage()         {}
func (Done) isMessage()             {}
func (ScoreTable) isMessage()       {}
func (Score) isMessage()            {}
func (Quit) isMessage()             {}
func (Ack) isMessage()              {}
