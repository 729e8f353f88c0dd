package components

import (
	"github.com/solarlune/resolv"
	"github.com/tanema/gween"
)

// Kind tags every simulated body.
type Kind int

const (
	KindBlock Kind = iota
	KindPlayer
	KindKey
	KindGravityRotator
	KindDoor
	KindSpikes
	KindSpringBoard
	KindJet
	KindCrossbow
	KindArrow
)

var kindNames = [...]string{
	KindBlock:          "Block",
	KindPlayer:         "Player",
	KindKey:            "Key",
	KindGravityRotator: "GravityRotator",
	KindDoor:           "Door",
	KindSpikes:         "Spikes",
	KindSpringBoard:    "SpringBoard",
	KindJet:            "Jet",
	KindCrossbow:       "Crossbow",
	KindArrow:          "Arrow",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Unknown"
	}
	return kindNames[k]
}

// IsPowerUp reports whether bodies of this kind are collected on contact.
func (k Kind) IsPowerUp() bool {
	return k == KindKey || k == KindGravityRotator || k == KindJet
}

// Rect is an axis-aligned rectangle with its origin at the top-left corner.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Overlaps is the strict overlap test. Rectangles that only share an edge
// do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W &&
		r.X+r.W > o.X &&
		r.Y < o.Y+o.H &&
		r.Y+r.H > o.Y
}

// RotationData is the quarter-turn animation state every body carries.
type RotationData struct {
	Angle  float64 // degrees into the current turn
	Dir    int     // +1 or -1
	Active bool
	Turns  int // cumulative quarter turns, always in 0..3
}

type PowerUpData struct {
	Collected bool
	Degree    float64      // cosmetic spin, 0..359
	Spin      *gween.Tween // drives Degree
	Dir       int          // GravityRotator turn direction
}

type DoorData struct {
	Open      bool
	Closing   bool
	TowardsUp bool // shrinks along its height rather than its width
}

type SpikesData struct {
	Facing int
}

type CrossbowData struct {
	DX, DY int
	Index  int // creation order within its level
	Timing int // ticks between reset and launch
	Count  int
	Arrow  *Body
}

type ArrowData struct {
	VX, VY   float64
	OriginX  float64
	OriginY  float64
	Launched bool
	Inset    float64
}

// Body is one simulated entity. Shared state lives here; variant state sits
// in the pointer matching Kind and is nil for every other kind.
type Body struct {
	Kind Kind
	Rect
	ID       int // construction order within the level
	Rotation RotationData

	PowerUp  *PowerUpData
	Door     *DoorData
	Spikes   *SpikesData
	Crossbow *CrossbowData
	Arrow    *ArrowData

	Proxy *resolv.Object // broad-phase stand-in, padded by ProxyPad
}

// ProxyPad is added on every side of a body's broad-phase proxy so a grid
// query never misses a strict overlap.
const ProxyPad = 1.0

// Hitbox is the rectangle other bodies hit. Arrows are inset on their long
// axis; everything else uses its full rectangle.
func (b *Body) Hitbox() Rect {
	if b.Arrow == nil || b.Arrow.Inset == 0 {
		return b.Rect
	}
	r := b.Rect
	in := b.Arrow.Inset
	if r.W >= r.H {
		r.X += in
		r.W -= 2 * in
	} else {
		r.Y += in
		r.H -= 2 * in
	}
	return r
}

// Collides reports whether r overlaps the body's full rectangle.
func (b *Body) Collides(r Rect) bool {
	return b.Rect.Overlaps(r)
}

// SyncProxy copies the body rectangle onto its broad-phase proxy.
func (b *Body) SyncProxy() {
	if b.Proxy == nil {
		return
	}
	b.Proxy.X = b.X - ProxyPad
	b.Proxy.Y = b.Y - ProxyPad
	b.Proxy.W = b.W + 2*ProxyPad
	b.Proxy.H = b.H + 2*ProxyPad
	b.Proxy.Update()
}
