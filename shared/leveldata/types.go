// Package leveldata describes levels as ordered lists of typed body records.
// It has no dependencies on donburi or resolv; pure data only.
package leveldata

import "errors"

// Kind names a body type. The spelling matches the class/type attribute of
// TMX objects.
type Kind string

const (
	Block          Kind = "Block"
	Door           Kind = "Door"
	SpringBoard    Kind = "SpringBoard"
	Key            Kind = "Key"
	GravityRotator Kind = "GravityRotator"
	Jet            Kind = "Jet"
	Spikes         Kind = "Spikes"
	Crossbow       Kind = "Crossbow"
)

var ErrUnknownKind = errors.New("unknown body kind")

// ParseKind validates a kind name.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case Block, Door, SpringBoard, Key, GravityRotator, Jet, Spikes, Crossbow:
		return k, nil
	}
	return "", ErrUnknownKind
}

// Body is one static body descriptor. W and H are only read for kinds with a
// free extent (Block, Spikes); every other kind has a fixed size.
type Body struct {
	Kind Kind
	X, Y float64
	W, H float64

	Dir    int // Spikes facing, GravityRotator turn direction
	DX, DY int // Crossbow facing
	Open   bool
}

// Point is a player start position.
type Point struct {
	X, Y float64
}

// Level is an ordered body list plus the player start point. Order matters:
// collision resolution visits bodies in this order.
type Level struct {
	Name   string
	Start  Point
	Bodies []Body
}

// Keys counts the Key bodies of the level.
func (l Level) Keys() int {
	n := 0
	for _, b := range l.Bodies {
		if b.Kind == Key {
			n++
		}
	}
	return n
}
