package systems

import (
	"github.com/automoto/boxninja/components"
	"github.com/automoto/boxninja/shared/logging"
	"github.com/automoto/boxninja/systems/factory"
	"github.com/yohamta/donburi/ecs"
)

// UpdateLevel handles what follows the player step: a death rebuilds the
// level and ends the tick, a held key count opens the gate, leaving the
// viewport advances the run. The bodies update last.
func UpdateLevel(ecs *ecs.ECS) {
	world := GetWorld(ecs)
	level := GetLevel(ecs)
	entry, ok := GetPlayer(ecs)
	if world == nil || level == nil || !ok {
		return
	}
	player := components.Player.Get(entry)

	if !player.Alive {
		RebuildLevel(level, world)
		player.Alive = true
		return
	}

	stage := level.Current
	if !level.InLounge() && stage.Gate != nil && player.Keys >= stage.RequiredKeys {
		if !stage.Gate.Door.Closing {
			OpenDoor(stage.Gate)
		}
		if Passed(player) {
			AdvanceLevel(level, world, player)
		}
	}

	UpdateBodies(level.Current, world)
}

// RebuildLevel replaces the current stage with a fresh build of the same
// descriptor.
func RebuildLevel(level *components.LevelData, world *components.WorldData) {
	level.Current = factory.BuildStage(level.Descriptor())
	world.Rotating = false
}

// AdvanceLevel moves to the next level, or into the lounge after the last
// one, and puts the player on the new start point.
func AdvanceLevel(level *components.LevelData, world *components.WorldData, player *components.PlayerData) {
	level.Index++
	if level.InLounge() {
		level.Index = level.Count
		FinishRun(world)
		logging.Named("level").Infow("run finished", "cycles", world.Score)
	} else {
		logging.Named("level").Debugw("level passed", "next", level.Index)
	}

	level.Current = factory.BuildStage(level.Descriptor())
	world.Rotating = false
	LogStage(level.Current)

	Reset(player, level.Current.Start)
	player.Level = level.Index
}
