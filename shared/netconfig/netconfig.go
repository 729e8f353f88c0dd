// Package netconfig defines lightweight types shared between client and server
// for the wire protocol. It has no dependencies on the simulation so the relay
// server binary stays small.
package netconfig

import (
	"fmt"
	"strconv"
)

// Color identifies a seat in a room and the player occupying it.
type Color string

const (
	Purple Color = "Purple"
	Red    Color = "Red"
	Green  Color = "Green"
	Brown  Color = "Brown"
)

// AllColors lists the seat colors in wire order. Every POS and SCORE
// message enumerates colors in this order.
var AllColors = [...]Color{Purple, Red, Green, Brown}

// RoomSize is the number of seats in a room.
const RoomSize = len(AllColors)

// ParseColor validates a color token.
func ParseColor(s string) (Color, error) {
	for _, c := range AllColors {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown color %q", s)
}

// Difficulty is the level-count code chosen by a room's first seat.
type Difficulty string

const (
	Normal  Difficulty = "3"
	Hard    Difficulty = "5"
	Extreme Difficulty = "6"
)

// ParseDifficulty validates a difficulty code.
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(s); d {
	case Normal, Hard, Extreme:
		return d, nil
	}
	return "", fmt.Errorf("unknown difficulty %q", s)
}

// Levels returns how many levels a run at this difficulty covers.
func (d Difficulty) Levels() int {
	n, err := strconv.Atoi(string(d))
	if err != nil {
		return 0
	}
	return n
}

func (d Difficulty) String() string {
	switch d {
	case Normal:
		return "normal"
	case Hard:
		return "hard"
	case Extreme:
		return "extreme"
	}
	return "unknown"
}

// Position is the relayed state of one player: the level index it is on and
// its top-left corner.
type Position struct {
	Level int
	X, Y  float64
}

// Positions maps every seat color to its last known position.
type Positions map[Color]Position

// Scores maps every seat color to its reported score.
type Scores map[Color]int

// NewPositions returns a map with every color at the zero position.
func NewPositions() Positions {
	p := make(Positions, RoomSize)
	for _, c := range AllColors {
		p[c] = Position{}
	}
	return p
}

// NewScores returns a map with every color at zero.
func NewScores() Scores {
	s := make(Scores, RoomSize)
	for _, c := range AllColors {
		s[c] = 0
	}
	return s
}
