package scenes

import (
	"github.com/automoto/boxninja/components"
)

// BodyView is a detached copy of one body, safe to read from any goroutine.
type BodyView struct {
	Kind components.Kind
	components.Rect

	Angle     float64 // degrees into a running quarter turn
	Turns     int
	Collected bool
	Degree    float64
	Open      bool
	Facing    int

	ArrowLaunched bool
	Arrow         components.Rect
}

// Snapshot is the state published after every tick. It shares no memory
// with the simulation.
type Snapshot struct {
	Tick       int
	Clock      components.Clock
	Level      string
	LevelIndex int
	InLounge   bool
	Rotating   bool
	Started    bool
	Finished   bool
	Score      int

	Player    components.PlayerData
	Bodies    []BodyView
	Opponents []components.OpponentData
}

func viewOf(b *components.Body) BodyView {
	v := BodyView{
		Kind:  b.Kind,
		Rect:  b.Rect,
		Angle: b.Rotation.Angle,
		Turns: b.Rotation.Turns,
	}
	switch {
	case b.PowerUp != nil:
		v.Collected = b.PowerUp.Collected
		v.Degree = b.PowerUp.Degree
	case b.Door != nil:
		v.Open = b.Door.Open
	case b.Spikes != nil:
		v.Facing = b.Spikes.Facing
	case b.Crossbow != nil:
		v.ArrowLaunched = b.Crossbow.Arrow.Arrow.Launched
		v.Arrow = b.Crossbow.Arrow.Rect
	}
	return v
}
