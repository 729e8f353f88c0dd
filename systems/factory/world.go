package factory

import (
	"github.com/automoto/boxninja/archetypes"
	"github.com/automoto/boxninja/components"
	"github.com/automoto/boxninja/shared/leveldata"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

func CreateWorld(ecs *ecs.ECS, started bool) *donburi.Entry {
	world := archetypes.World.Spawn(ecs)
	components.World.SetValue(world, components.WorldData{
		Clock:   components.Clock{Frame: 1},
		Started: started,
	})
	return world
}

// CreateLevel spawns the level singleton on the first catalog entry. count
// is the number of levels in the run and is clamped to the catalog.
func CreateLevel(ecs *ecs.ECS, catalog []leveldata.Level, count int) *donburi.Entry {
	if len(catalog) == 0 {
		panic("level catalog is empty")
	}
	if count <= 0 || count > len(catalog) {
		count = len(catalog)
	}

	level := archetypes.Level.Spawn(ecs)
	data := &components.LevelData{
		Catalog: catalog,
		Lounge:  leveldata.Lounge(),
		Count:   count,
	}
	data.Current = BuildStage(data.Descriptor())
	components.Level.Set(level, data)
	return level
}
