package factory

import (
	"github.com/automoto/boxninja/components"
	cfg "github.com/automoto/boxninja/config"
	"github.com/automoto/boxninja/shared/leveldata"
	"github.com/automoto/boxninja/tags"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// BuildContext carries the per-build counters. A fresh context is used for
// every level build, so crossbow indices restart at 0.
type BuildContext struct {
	crossbows int
}

func NewBuildContext() *BuildContext {
	return &BuildContext{}
}

// NextCrossbow hands out the next crossbow creation index.
func (c *BuildContext) NextCrossbow() int {
	n := c.crossbows
	c.crossbows++
	return n
}

// CrossbowTiming returns the launch delay in ticks for the n-th crossbow of
// a level: every StaggerEvery-th index fires later, the rest earlier.
func CrossbowTiming(n int) int {
	step := n * cfg.Crossbow.TimingStep
	if n%cfg.Crossbow.StaggerEvery == 0 {
		return cfg.Crossbow.BaseTiming + step
	}
	return cfg.Crossbow.BaseTiming - step
}

// BuildStage turns a level descriptor into a fresh Stage with its own
// broad-phase space. The first door becomes the gate.
func BuildStage(desc leveldata.Level) *components.Stage {
	ctx := NewBuildContext()
	stage := &components.Stage{
		Name:  desc.Name,
		Start: desc.Start,
		Space: NewSpace(),
	}

	for i, d := range desc.Bodies {
		b := NewBody(ctx, d)
		b.ID = i
		stage.Bodies = append(stage.Bodies, b)

		switch b.Kind {
		case components.KindDoor:
			if stage.Gate == nil {
				stage.Gate = b
			}
			addProxy(stage.Space, b, tags.ResolvSolid)
		case components.KindKey:
			stage.RequiredKeys++
			addProxy(stage.Space, b, tags.ResolvPowerUp)
		case components.KindGravityRotator, components.KindJet:
			addProxy(stage.Space, b, tags.ResolvPowerUp)
		case components.KindCrossbow:
			addProxy(stage.Space, b, tags.ResolvCrossbow)
			addProxy(stage.Space, b.Crossbow.Arrow, tags.ResolvArrow)
		default:
			addProxy(stage.Space, b, tags.ResolvSolid)
		}
	}
	return stage
}

// NewBody creates the simulated body for one descriptor.
func NewBody(ctx *BuildContext, d leveldata.Body) *components.Body {
	switch d.Kind {
	case leveldata.Door:
		return &components.Body{
			Kind: components.KindDoor,
			Rect: components.Rect{X: d.X, Y: d.Y, W: cfg.Bodies.DoorWidth, H: cfg.Bodies.DoorHeight},
			Door: &components.DoorData{Open: d.Open, TowardsUp: true},
		}
	case leveldata.SpringBoard:
		return &components.Body{
			Kind: components.KindSpringBoard,
			Rect: components.Rect{X: d.X, Y: d.Y, W: cfg.Bodies.SpringBoardWidth, H: cfg.Bodies.SpringBoardHeight},
		}
	case leveldata.Key:
		return newPowerUp(components.KindKey, d, 0)
	case leveldata.GravityRotator:
		return newPowerUp(components.KindGravityRotator, d, d.Dir)
	case leveldata.Jet:
		return newPowerUp(components.KindJet, d, 0)
	case leveldata.Spikes:
		return &components.Body{
			Kind:   components.KindSpikes,
			Rect:   components.Rect{X: d.X, Y: d.Y, W: d.W, H: d.H},
			Spikes: &components.SpikesData{Facing: d.Dir},
		}
	case leveldata.Crossbow:
		return newCrossbow(ctx, d)
	}
	return &components.Body{
		Kind: components.KindBlock,
		Rect: components.Rect{X: d.X, Y: d.Y, W: d.W, H: d.H},
	}
}

func newPowerUp(kind components.Kind, d leveldata.Body, dir int) *components.Body {
	size := cfg.Bodies.PowerUpSize
	return &components.Body{
		Kind: kind,
		Rect: components.Rect{X: d.X, Y: d.Y, W: size, H: size},
		PowerUp: &components.PowerUpData{
			Spin: NewSpin(),
			Dir:  dir,
		},
	}
}

// NewSpin returns the tween driving a power-up's cosmetic spin: one degree
// per tick over a full turn.
func NewSpin() *gween.Tween {
	return gween.New(0, 360, 360, ease.Linear)
}

// newCrossbow builds a launcher and its arrow. The arrow rests centered in
// the launcher and faces the same way.
func newCrossbow(ctx *BuildContext, d leveldata.Body) *components.Body {
	w, h := cfg.Bodies.CrossbowLength, cfg.Bodies.CrossbowDepth
	if d.DY != 0 {
		w, h = h, w
	}

	aw, ah := cfg.Bodies.ArrowLength, cfg.Bodies.ArrowThickness
	if d.DY != 0 {
		aw, ah = ah, aw
	}
	ax := d.X + (w-aw)/2
	ay := d.Y + (h-ah)/2

	arrow := &components.Body{
		Kind: components.KindArrow,
		Rect: components.Rect{X: ax, Y: ay, W: aw, H: ah},
		Arrow: &components.ArrowData{
			VX:      cfg.Crossbow.ArrowSpeed * float64(d.DX),
			VY:      cfg.Crossbow.ArrowSpeed * float64(d.DY),
			OriginX: ax,
			OriginY: ay,
			Inset:   cfg.Crossbow.ArrowInset,
		},
	}

	index := ctx.NextCrossbow()
	return &components.Body{
		Kind: components.KindCrossbow,
		Rect: components.Rect{X: d.X, Y: d.Y, W: w, H: h},
		Crossbow: &components.CrossbowData{
			DX:     d.DX,
			DY:     d.DY,
			Index:  index,
			Timing: CrossbowTiming(index),
			Arrow:  arrow,
		},
	}
}
