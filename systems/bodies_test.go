package systems

import (
	"testing"

	"github.com/automoto/boxninja/components"
	"github.com/automoto/boxninja/shared/leveldata"
	"github.com/automoto/boxninja/systems/factory"
)

func door(x, y, w, h float64) *components.Body {
	return &components.Body{
		Kind: components.KindDoor,
		Rect: components.Rect{X: x, Y: y, W: w, H: h},
		Door: &components.DoorData{TowardsUp: true},
	}
}

func TestDoorClosureIsMonotonicAndTerminal(t *testing.T) {
	d := door(590, 490, 10, 100)
	OpenDoor(d)
	if !d.Door.TowardsUp {
		t.Fatal("tall door should shrink along its height")
	}

	prevW, prevH := d.W, d.H
	for i := 0; i < 150; i++ {
		updateDoor(d)
		if d.W > prevW || d.H > prevH {
			t.Fatalf("tick %d: door grew to %vx%v", i, d.W, d.H)
		}
		prevW, prevH = d.W, d.H
	}
	if d.H != 0 || d.W != 10 || d.Y != 490 {
		t.Errorf("door = %+v", d.Rect)
	}
	if !d.Door.Open {
		t.Fatal("door not open after closing")
	}
	updateDoor(d)
	if !d.Door.Open || d.H != 0 {
		t.Error("open door changed")
	}
}

func TestDoorAnchorsAfterTurns(t *testing.T) {
	d := door(0, 0, 10, 100)
	d.Rotation.Turns = 2
	OpenDoor(d)
	updateDoor(d)
	if d.Y != 1 || d.H != 99 {
		t.Errorf("upside-down door = %+v", d.Rect)
	}

	w := door(0, 0, 100, 10)
	w.Rotation.Turns = 3
	OpenDoor(w)
	if w.Door.TowardsUp {
		t.Fatal("wide door should shrink along its width")
	}
	updateDoor(w)
	if w.X != 1 || w.W != 99 {
		t.Errorf("turned door = %+v", w.Rect)
	}
}

func TestDoorPausesWhileRotating(t *testing.T) {
	d := door(0, 0, 10, 100)
	OpenDoor(d)
	d.Rotation.Active = true
	updateDoor(d)
	if d.H != 100 {
		t.Errorf("door shrank mid-turn: h = %v", d.H)
	}
}

func TestClosingDoorFlipsOnRotation(t *testing.T) {
	d := door(0, 0, 10, 100)
	OpenDoor(d)
	BeginRotation(stageOf(d), &components.WorldData{}, 1)
	if d.Door.TowardsUp {
		t.Error("closing door kept its shrink axis across a turn")
	}
}

func arrowStage() *components.Stage {
	return factory.BuildStage(leveldata.Level{
		Start: leveldata.Point{X: 20, Y: 20},
		Bodies: []leveldata.Body{
			{Kind: leveldata.Block, X: 100, Y: 290, W: 10, H: 50},
			{Kind: leveldata.Key, X: 200, Y: 305},
			{Kind: leveldata.Crossbow, X: 300, Y: 300, DX: -1},
		},
	})
}

func TestArrowLaunchesAndResets(t *testing.T) {
	stage := arrowStage()
	bow := stage.Bodies[2]
	arrow := bow.Crossbow.Arrow
	world := &components.WorldData{}

	if bow.Crossbow.Timing != 40 {
		t.Fatalf("timing = %d", bow.Crossbow.Timing)
	}
	ox := arrow.X

	for tick := 1; tick <= 99; tick++ {
		UpdateBody(bow, world)
		switch tick {
		case 39:
			if arrow.Arrow.Launched || arrow.X != ox {
				t.Fatalf("tick 39: launched early")
			}
		case 40:
			if !arrow.Arrow.Launched || arrow.X != ox-10 {
				t.Fatalf("tick 40: launched=%v x=%v", arrow.Arrow.Launched, arrow.X)
			}
		case 58:
			if !arrow.Arrow.Launched {
				t.Fatal("tick 58: arrow stopped before the wall")
			}
		case 59:
			if arrow.Arrow.Launched || arrow.X != ox || arrow.Y != arrow.Arrow.OriginY {
				t.Fatalf("tick 59: arrow not reset, x=%v", arrow.X)
			}
		case 98:
			if arrow.Arrow.Launched {
				t.Fatal("tick 98: relaunched early")
			}
		case 99:
			if !arrow.Arrow.Launched {
				t.Fatal("tick 99: countdown did not restart from zero")
			}
		}
	}
	if stage.Bodies[1].PowerUp.Collected {
		t.Error("arrow collected a key")
	}
}

func TestArrowKillsPlayer(t *testing.T) {
	stage := arrowStage()
	arrow := stage.Bodies[2].Crossbow.Arrow
	p := newPlayer(arrow.X, arrow.Y-10, 20, 20)

	StepPlayer(p, stage, &components.WorldData{})
	if p.Alive {
		t.Fatal("player survived a resting arrow")
	}
	if p.X != 20 || p.Y != 20 {
		t.Errorf("player not back at start: %+v", p.Rect)
	}
}

func TestArrowHitboxIsInset(t *testing.T) {
	stage := arrowStage()
	arrow := stage.Bodies[2].Crossbow.Arrow
	hit := arrow.Hitbox()
	if hit.X != arrow.X+3 || hit.W != arrow.W-6 || hit.H != arrow.H {
		t.Errorf("hitbox = %+v, arrow = %+v", hit, arrow.Rect)
	}
}

func TestPowerUpContacts(t *testing.T) {
	key := &components.Body{Kind: components.KindKey, Rect: components.Rect{X: 100, Y: 100, W: 20, H: 20}, PowerUp: &components.PowerUpData{}}
	jet := &components.Body{Kind: components.KindJet, Rect: components.Rect{X: 100, Y: 100, W: 20, H: 20}, PowerUp: &components.PowerUpData{}}
	stage := stageOf(key, jet)
	p := newPlayer(90, 90, 40, 40)
	p.VY = -2

	StepPlayer(p, stage, &components.WorldData{})
	if p.Keys != 1 || !key.PowerUp.Collected {
		t.Errorf("keys = %d", p.Keys)
	}
	if !p.Floating || !jet.PowerUp.Collected {
		t.Error("jet not applied")
	}

	StepPlayer(p, stage, &components.WorldData{})
	if p.Keys != 1 {
		t.Errorf("key counted twice: %d", p.Keys)
	}
}

func TestSpikesKill(t *testing.T) {
	spikes := &components.Body{Kind: components.KindSpikes, Rect: components.Rect{X: 0, Y: 580, W: 600, H: 10}, Spikes: &components.SpikesData{Facing: -1}}
	p := newPlayer(100, 545, 40, 40)
	p.VY = 3

	StepPlayer(p, stageOf(spikes), &components.WorldData{})
	if p.Alive {
		t.Error("player survived spikes")
	}
}

func TestOpenDoorIsInert(t *testing.T) {
	d := door(100, 100, 10, 100)
	d.Door.Open = true
	p := newPlayer(60, 120, 40, 40)
	p.VX = 3

	StepPlayer(p, stageOf(d), &components.WorldData{})
	if p.X != 63 {
		t.Errorf("open door blocked the player: x = %v", p.X)
	}

	d.Door.Open = false
	p = newPlayer(60, 120, 40, 40)
	p.VX = 3
	StepPlayer(p, stageOf(d), &components.WorldData{})
	if p.X != 60 {
		t.Errorf("closed door let the player through: x = %v", p.X)
	}
}

func TestGravityRotatorStartsRotation(t *testing.T) {
	rot := &components.Body{Kind: components.KindGravityRotator, Rect: components.Rect{X: 100, Y: 100, W: 20, H: 20}, PowerUp: &components.PowerUpData{Dir: -1}}
	floor := block(0, 590, 600, 10)
	world := &components.WorldData{}
	p := newPlayer(90, 90, 40, 40)

	StepPlayer(p, stageOf(rot, floor), world)
	if !world.Rotating || !floor.Rotation.Active || floor.Rotation.Dir != -1 || floor.Rotation.Turns != 3 {
		t.Errorf("world rotating=%v floor=%+v", world.Rotating, floor.Rotation)
	}
}

func snapshotRects(stage *components.Stage) []components.Rect {
	var out []components.Rect
	for _, b := range stage.Bodies {
		out = append(out, b.Rect)
		if b.Crossbow != nil {
			a := b.Crossbow.Arrow
			out = append(out, a.Rect, components.Rect{X: a.Arrow.OriginX, Y: a.Arrow.OriginY, W: a.Arrow.VX, H: a.Arrow.VY})
		}
	}
	return out
}

func turn(stage *components.Stage, world *components.WorldData, dir int) {
	BeginRotation(stage, world, dir)
	for i := 0; i < 1000 && world.Rotating; i++ {
		for _, b := range stage.Bodies {
			AdvanceRotation(b, world)
		}
	}
}

func TestFourQuarterTurnsRestoreTheLevel(t *testing.T) {
	for _, dir := range []int{1, -1} {
		stage := factory.BuildStage(leveldata.Builtin()[4])
		world := &components.WorldData{}
		before := snapshotRects(stage)

		var facing []int
		for _, b := range stage.Bodies {
			if b.Spikes != nil {
				facing = append(facing, b.Spikes.Facing)
			}
		}

		for i := 0; i < 4; i++ {
			turn(stage, world, dir)
			if world.Rotating {
				t.Fatalf("dir %d turn %d: rotation never finished", dir, i)
			}
		}

		after := snapshotRects(stage)
		for i := range before {
			if before[i] != after[i] {
				t.Errorf("dir %d: rect %d = %+v, want %+v", dir, i, after[i], before[i])
			}
		}
		j := 0
		for _, b := range stage.Bodies {
			if b.Rotation.Turns != 0 || b.Rotation.Active || b.Rotation.Angle != 0 {
				t.Errorf("dir %d: %s rotation = %+v", dir, b.Kind, b.Rotation)
			}
			if b.Spikes != nil {
				if b.Spikes.Facing != facing[j] {
					t.Errorf("dir %d: spikes facing %d, want %d", dir, b.Spikes.Facing, facing[j])
				}
				j++
			}
		}
	}
}

func TestQuarterTurnMovesFloorToWall(t *testing.T) {
	floor := block(0, 590, 600, 10)
	world := &components.WorldData{}
	turn(stageOf(floor), world, 1)

	if floor.Rect != (components.Rect{X: 590, Y: 0, W: 10, H: 600}) {
		t.Errorf("floor after +90 = %+v", floor.Rect)
	}
}

func TestSpikesFlipOnParity(t *testing.T) {
	tests := []struct {
		dir, turns int
		flips      bool
	}{
		{1, 0, true},
		{1, 1, false},
		{-1, 0, false},
		{-1, 3, true},
	}
	for _, tt := range tests {
		s := &components.Body{Kind: components.KindSpikes, Rect: components.Rect{X: 10, Y: 300, W: 10, H: 100}, Spikes: &components.SpikesData{Facing: 1}}
		s.Rotation.Turns = tt.turns
		turn(stageOf(s), &components.WorldData{}, tt.dir)
		if got := s.Spikes.Facing == -1; got != tt.flips {
			t.Errorf("dir %d from %d: flipped=%v, want %v", tt.dir, tt.turns, got, tt.flips)
		}
	}
}

func TestArrowTurnsWithCrossbow(t *testing.T) {
	stage := arrowStage()
	bow := stage.Bodies[2]
	turn(stage, &components.WorldData{}, 1)

	a := bow.Crossbow.Arrow
	if a.W != 9 || a.H != 30 {
		t.Errorf("arrow extent = %vx%v", a.W, a.H)
	}
	if a.Arrow.VX != 0 || a.Arrow.VY != 10 {
		t.Errorf("arrow velocity = (%v,%v)", a.Arrow.VX, a.Arrow.VY)
	}
	if bow.Crossbow.DX != 0 || bow.Crossbow.DY != 1 {
		t.Errorf("facing = (%d,%d)", bow.Crossbow.DX, bow.Crossbow.DY)
	}
	if !bow.Rect.Overlaps(a.Rect) {
		t.Error("arrow left its launcher")
	}
}

func TestPowerUpSpinWraps(t *testing.T) {
	b := factory.NewBody(factory.NewBuildContext(), leveldata.Body{Kind: leveldata.Key})
	for i := 0; i < 359; i++ {
		spinPowerUp(b)
	}
	if b.PowerUp.Degree != 359 {
		t.Errorf("degree = %v, want 359", b.PowerUp.Degree)
	}
	spinPowerUp(b)
	if b.PowerUp.Degree != 0 {
		t.Errorf("degree = %v, want 0 after a full turn", b.PowerUp.Degree)
	}
}

func TestDescribeSpaceClassifiesProxies(t *testing.T) {
	stage := factory.BuildStage(leveldata.Builtin()[3])
	counts := map[string]int{}
	for _, e := range DescribeSpace(stage) {
		counts[e.Class]++
		if e.Class == "arrow" && e.Kind != components.KindArrow {
			t.Errorf("arrow proxy carries %v", e.Kind)
		}
	}
	want := map[string]int{"solid": 8, "powerup": 5, "crossbow": 1, "arrow": 1}
	for class, n := range want {
		if counts[class] != n {
			t.Errorf("%s = %d, want %d (all %v)", class, counts[class], n, counts)
		}
	}
	if DescribeSpace(nil) != nil {
		t.Error("nil stage should describe nothing")
	}
}
