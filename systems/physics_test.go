package systems

import (
	"math"
	"testing"

	"github.com/automoto/boxninja/components"
	cfg "github.com/automoto/boxninja/config"
	"github.com/automoto/boxninja/shared/leveldata"
)

func block(x, y, w, h float64) *components.Body {
	return &components.Body{Kind: components.KindBlock, Rect: components.Rect{X: x, Y: y, W: w, H: h}}
}

func stageOf(bodies ...*components.Body) *components.Stage {
	return &components.Stage{Bodies: bodies, Start: leveldata.Point{X: 300, Y: 300}}
}

func newPlayer(x, y, w, h float64) *components.PlayerData {
	return &components.PlayerData{Rect: components.Rect{X: x, Y: y, W: w, H: h}, Alive: true}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestBlockLanding(t *testing.T) {
	p := newPlayer(10, 10, 10, 10)
	p.VY = 5
	StepPlayer(p, stageOf(block(0, 20, 100, 10)), &components.WorldData{})

	if p.Y != 20-p.H {
		t.Errorf("y = %v, want %v", p.Y, 20-p.H)
	}
	if p.VY != 0 || !p.Standing || p.Jumping {
		t.Errorf("vy=%v standing=%v jumping=%v", p.VY, p.Standing, p.Jumping)
	}
}

func TestSpringBoardBounce(t *testing.T) {
	tests := []struct {
		vy, want float64
	}{
		{10, -11},
		{20, -20},
		{15, -15},
	}
	for _, tt := range tests {
		spring := &components.Body{Kind: components.KindSpringBoard, Rect: components.Rect{X: 0, Y: 100, W: 80, H: 10}}
		p := newPlayer(10, 55, 40, 40)
		p.VY = tt.vy
		StepPlayer(p, stageOf(spring), &components.WorldData{})

		if !almostEqual(p.VY, tt.want) {
			t.Errorf("vy %v: got %v, want %v", tt.vy, p.VY, tt.want)
		}
		if p.Y != 60 {
			t.Errorf("vy %v: y = %v, want 60", tt.vy, p.Y)
		}
		if p.Standing {
			t.Errorf("vy %v: springboard should not ground the player", tt.vy)
		}
	}
}

func TestCeilingBump(t *testing.T) {
	p := newPlayer(10, 35, 10, 10)
	p.VY = -8
	StepPlayer(p, stageOf(block(0, 20, 100, 10)), &components.WorldData{})

	if p.Y != 30 || p.VY != cfg.Physics.CeilingNudge {
		t.Errorf("y=%v vy=%v", p.Y, p.VY)
	}
}

func TestCornerTouchIsNotALanding(t *testing.T) {
	p := newPlayer(100, 10, 10, 10)
	p.VX, p.VY = -3, 5
	StepPlayer(p, stageOf(block(0, 20, 100, 10)), &components.WorldData{})

	if p.Standing {
		t.Error("player landed from a corner")
	}
	if p.X != 100 {
		t.Errorf("x = %v, want 100", p.X)
	}
	if !almostEqual(p.VY, 5-cfg.Physics.Gravity/2) {
		t.Errorf("vy = %v", p.VY)
	}
}

func TestWallSnapAppliesHalfGravityPerBody(t *testing.T) {
	p := newPlayer(8, 10, 40, 20)
	p.VX, p.VY = 3, 1
	StepPlayer(p, stageOf(block(50, 0, 10, 40), block(49, 0, 10, 40)), &components.WorldData{})

	if p.X != 9 {
		t.Errorf("x = %v, want 9", p.X)
	}
	if !almostEqual(p.VY, 1-cfg.Physics.Gravity) {
		t.Errorf("vy = %v, want two half-gravity corrections", p.VY)
	}
}

func TestLandingWhileWalking(t *testing.T) {
	p := newPlayer(50, 20, 10, 10)
	p.VX = 3
	p.VY = 2
	floor := block(0, 30, 200, 10)
	StepPlayer(p, stageOf(floor), &components.WorldData{})

	if !p.Standing || p.X != 53 || p.Y != 20 {
		t.Errorf("player = %+v", p.Rect)
	}
}

func TestStopLeftKeepsRightwardVelocity(t *testing.T) {
	p := newPlayer(0, 0, 40, 40)
	StartLeft(p)
	StartRight(p)
	StopLeft(p)
	if p.VX != cfg.Physics.MoveSpeed {
		t.Errorf("vx = %v, want %v", p.VX, cfg.Physics.MoveSpeed)
	}
	StopRight(p)
	if p.VX != 0 {
		t.Errorf("vx = %v, want 0", p.VX)
	}
}

func TestFall(t *testing.T) {
	p := newPlayer(0, 0, 40, 40)
	Fall(p)
	if p.VY != cfg.Physics.Gravity {
		t.Errorf("vy = %v", p.VY)
	}

	p.Floating = true
	p.VY = 0
	Fall(p)
	if !almostEqual(p.VY, -cfg.Physics.FloatPull) {
		t.Errorf("floating vy = %v", p.VY)
	}

	p.VY = -cfg.Physics.FloatMaxRise
	Fall(p)
	if p.VY != -cfg.Physics.FloatMaxRise {
		t.Errorf("float pull went past the cap: %v", p.VY)
	}
}

func TestJumpBoostWhileHeld(t *testing.T) {
	p := newPlayer(0, 0, 40, 40)
	p.Standing = true
	Jump(p)
	if p.VY != -cfg.Physics.JumpSpeed || !p.Jumping || !p.KeepJumping {
		t.Fatalf("after takeoff: %+v", p)
	}

	p.Standing = false
	Jump(p)
	if p.VY != -cfg.Physics.JumpSpeed-cfg.Physics.JumpBoost {
		t.Errorf("boost vy = %v", p.VY)
	}

	p.VY = -9
	Jump(p)
	if p.KeepJumping || p.VY != -9 {
		t.Errorf("boost past max: vy=%v keep=%v", p.VY, p.KeepJumping)
	}

	p.VY = -2
	Jump(p)
	if p.VY != -2 {
		t.Error("boost resumed after being released")
	}
}

func TestFloatDampsAndExpires(t *testing.T) {
	p := newPlayer(300, 300, 40, 40)
	p.VY = -5
	Float(p, components.Clock{Cycles: 0, Frame: 1})
	if !p.Floating || !almostEqual(p.VY, -1) {
		t.Fatalf("floating=%v vy=%v", p.Floating, p.VY)
	}

	StepPlayer(p, stageOf(), &components.WorldData{Clock: components.Clock{Cycles: 3, Frame: 60}})
	if !p.Floating {
		t.Fatal("float expired early")
	}
	StepPlayer(p, stageOf(), &components.WorldData{Clock: components.Clock{Cycles: 4, Frame: 1}})
	if p.Floating {
		t.Error("float did not expire after its duration")
	}

	p.VY = 3
	Float(p, components.Clock{})
	if p.VY != 0 {
		t.Errorf("falling vy = %v, want 0", p.VY)
	}
}

func TestDieKeepsHorizontalVelocity(t *testing.T) {
	p := newPlayer(10, 10, 40, 40)
	p.VX, p.VY = -3, 4
	p.Keys = 2
	p.Floating = true
	Die(p, leveldata.Point{X: 50, Y: 60})

	if p.Alive || p.X != 50 || p.Y != 60 || p.VX != -3 || p.VY != 0 || p.Keys != 0 || p.Floating {
		t.Errorf("after death: %+v", p)
	}
}

func TestGodModeSuppressesDeath(t *testing.T) {
	cfg.Debug.GodMode = true
	t.Cleanup(func() { cfg.Debug.GodMode = false })

	p := newPlayer(10, 10, 40, 40)
	Die(p, leveldata.Point{})
	if !p.Alive || p.X != 10 {
		t.Error("god mode player died")
	}
}

func TestPassed(t *testing.T) {
	tests := []struct {
		x, y float64
		want bool
	}{
		{300, 300, false},
		{-40, 300, true},
		{-39, 300, false},
		{600, 300, true},
		{300, -40, true},
		{300, 600, true},
		{590, 300, false},
	}
	for _, tt := range tests {
		if got := Passed(newPlayer(tt.x, tt.y, 40, 40)); got != tt.want {
			t.Errorf("Passed(%v,%v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestRotationFreezesPlayer(t *testing.T) {
	p := newPlayer(100, 100, 40, 40)
	p.VX, p.VY = 3, 2
	world := &components.WorldData{Rotating: true}

	Fall(p)
	StepPlayer(p, stageOf(block(0, 140, 600, 10)), world)
	if p.X != 100 || p.Y != 100 {
		t.Errorf("player moved while rotating: %+v", p.Rect)
	}
	if !almostEqual(p.VY, 2+cfg.Physics.Gravity) {
		t.Errorf("vy = %v, gravity should keep building", p.VY)
	}
}

func TestOverlapIsStrictAndSymmetric(t *testing.T) {
	a := components.Rect{X: 0, Y: 0, W: 10, H: 10}
	tests := []struct {
		b    components.Rect
		want bool
	}{
		{components.Rect{X: 10, Y: 0, W: 10, H: 10}, false},
		{components.Rect{X: 0, Y: 10, W: 10, H: 10}, false},
		{components.Rect{X: 9.5, Y: 9.5, W: 10, H: 10}, true},
		{components.Rect{X: 2, Y: 2, W: 2, H: 2}, true},
		{components.Rect{X: -10, Y: -10, W: 10, H: 10}, false},
	}
	for _, tt := range tests {
		if a.Overlaps(tt.b) != tt.want || tt.b.Overlaps(a) != tt.want {
			t.Errorf("overlap %+v = %v, want %v both ways", tt.b, a.Overlaps(tt.b), tt.want)
		}
	}
}
