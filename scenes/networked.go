package scenes

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/automoto/boxninja/components"
	cfg "github.com/automoto/boxninja/config"
	"github.com/automoto/boxninja/network"
	"github.com/automoto/boxninja/shared/leveldata"
	"github.com/automoto/boxninja/shared/logging"
	"github.com/automoto/boxninja/shared/netconfig"
	"github.com/automoto/boxninja/systems"
	"github.com/automoto/boxninja/systems/factory"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

type Options struct {
	Catalog    []leveldata.Level
	Difficulty netconfig.Difficulty // run length offline; records key online until BEGIN says otherwise
	Client     *network.Client      // nil plays offline
}

// SessionScene owns the simulation. Update runs one tick on the caller's
// goroutine; everything else only talks to it through the input channel,
// the network client mailboxes and published snapshots.
type SessionScene struct {
	ecsWorld   *ecs.ECS
	netClient  *network.Client
	catalog    []leveldata.Level
	difficulty netconfig.Difficulty
	once       sync.Once

	inputCh chan components.InputEvent

	snapMu   sync.RWMutex
	snapshot Snapshot

	tick     int
	recorded bool
	closed   bool
	closeErr error
}

func NewSessionScene(opts Options) *SessionScene {
	catalog := opts.Catalog
	if len(catalog) == 0 {
		catalog = leveldata.Builtin()
	}
	d := opts.Difficulty
	if _, err := netconfig.ParseDifficulty(string(d)); err != nil {
		d = netconfig.Normal
	}
	return &SessionScene{
		netClient:  opts.Client,
		catalog:    catalog,
		difficulty: d,
		inputCh:    make(chan components.InputEvent, 64),
	}
}

func (s *SessionScene) configure() {
	s.ecsWorld = ecs.NewECS(donburi.NewWorld())

	offline := s.netClient == nil
	factory.CreateWorld(s.ecsWorld, offline)
	levelEntry := factory.CreateLevel(s.ecsWorld, s.catalog, s.difficulty.Levels())
	stage := components.Level.Get(levelEntry).Current
	systems.LogStage(stage)
	start := stage.Start

	color := netconfig.Purple
	if !offline && s.netClient.Color() != "" {
		color = s.netClient.Color()
	}
	factory.CreatePlayer(s.ecsWorld, color, start)
	if offline {
		factory.CreateOpponents(s.ecsWorld, color)
	}

	s.ecsWorld.AddSystem(systems.UpdateInput)
	s.ecsWorld.AddSystem(systems.UpdatePlayer)
	s.ecsWorld.AddSystem(systems.UpdateLevel)
	s.ecsWorld.AddSystem(systems.UpdateClock)
}

// Input queues a key transition for the next tick. It never blocks; when
// the queue is full the event is dropped.
func (s *SessionScene) Input(ev components.InputEvent) {
	select {
	case s.inputCh <- ev:
	default:
	}
}

// Snapshot returns the state published after the last tick.
func (s *SessionScene) Snapshot() Snapshot {
	s.snapMu.RLock()
	defer s.snapMu.RUnlock()
	return s.snapshot
}

// Update runs one simulation tick.
func (s *SessionScene) Update() {
	s.once.Do(s.configure)

	if s.netClient != nil {
		s.applyNetwork()
	}
	for _, ev := range drainInput(s.inputCh) {
		systems.PushInput(s.ecsWorld, ev)
	}

	s.ecsWorld.Update()
	s.tick++

	s.recordFinish()
	s.publish()
}

func (s *SessionScene) applyNetwork() {
	log := logging.Named("session")
	world := systems.GetWorld(s.ecsWorld)

	for _, ev := range s.netClient.DrainEvents() {
		switch ev.Kind {
		case network.EventSeated:
			if entry, ok := systems.GetPlayer(s.ecsWorld); ok {
				components.Player.Get(entry).Color = ev.Color
			}
			factory.CreateOpponents(s.ecsWorld, ev.Color)
			log.Infow("seated", "color", ev.Color)
		case network.EventBegin:
			s.begin(ev.Levels)
			systems.BeginRun(world)
			log.Infow("run started", "levels", systems.GetLevel(s.ecsWorld).Count)
		case network.EventClosed:
			s.closed = true
			s.closeErr = ev.Err
		}
	}

	if positions := s.netClient.LatestPositions(); positions != nil {
		systems.ApplyPositions(s.ecsWorld, positions)
	}
	if scores := s.netClient.LatestScores(); scores != nil {
		systems.ApplyScores(s.ecsWorld, scores)
	}
}

// begin fixes the run length announced by the room.
func (s *SessionScene) begin(levels int) {
	if levels <= 0 {
		return
	}
	if d, err := netconfig.ParseDifficulty(strconv.Itoa(levels)); err == nil {
		s.difficulty = d
	}
	level := systems.GetLevel(s.ecsWorld)
	if levels > len(level.Catalog) {
		levels = len(level.Catalog)
	}
	level.Count = levels
}

func (s *SessionScene) recordFinish() {
	world := systems.GetWorld(s.ecsWorld)
	if !world.Finished || s.recorded {
		return
	}
	s.recorded = true
	best, err := systems.RecordRun(s.difficulty, world.Score)
	if err != nil {
		logging.Named("session").Warnw("could not save record", "error", err)
		return
	}
	if best {
		logging.Named("session").Infow("new best", "difficulty", s.difficulty.String(), "cycles", world.Score)
	}
}

func (s *SessionScene) publish() {
	world := systems.GetWorld(s.ecsWorld)
	level := systems.GetLevel(s.ecsWorld)
	entry, ok := systems.GetPlayer(s.ecsWorld)
	if world == nil || level == nil || !ok {
		return
	}
	player := *components.Player.Get(entry)

	if s.netClient != nil {
		s.netClient.SetStatus(network.LocalStatus{
			Position: netconfig.Position{Level: player.Level, X: player.X, Y: player.Y},
			Finished: world.Finished,
			Score:    world.Score,
		})
	}

	snap := Snapshot{
		Tick:       s.tick,
		Clock:      world.Clock,
		Level:      level.Current.Name,
		LevelIndex: level.Index,
		InLounge:   level.InLounge(),
		Rotating:   world.Rotating,
		Started:    world.Started,
		Finished:   world.Finished,
		Score:      world.Score,
		Player:     player,
		Bodies:     make([]BodyView, 0, len(level.Current.Bodies)),
	}
	for _, b := range level.Current.Bodies {
		snap.Bodies = append(snap.Bodies, viewOf(b))
	}
	components.Opponent.Each(s.ecsWorld.World, func(e *donburi.Entry) {
		snap.Opponents = append(snap.Opponents, *components.Opponent.Get(e))
	})

	s.snapMu.Lock()
	s.snapshot = snap
	s.snapMu.Unlock()
}

// Run ticks the scene at the configured frame rate until ctx is done or the
// room hangs up.
func (s *SessionScene) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(cfg.C.FPS))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.Update()
			if s.closed {
				return s.closeErr
			}
		}
	}
}

func drainInput(ch chan components.InputEvent) []components.InputEvent {
	var out []components.InputEvent
	for {
		select {
		case v := <-ch:
			out = append(out, v)
		default:
			return out
		}
	}
}
