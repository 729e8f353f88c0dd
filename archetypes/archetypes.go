package archetypes

import (
	"github.com/automoto/boxninja/components"
	cfg "github.com/automoto/boxninja/config"
	"github.com/automoto/boxninja/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var (
	World = newArchetype(
		components.World,
	)
	Level = newArchetype(
		components.Level,
	)
	Player = newArchetype(
		tags.Player,
		components.Player,
		components.Input,
	)
	Opponent = newArchetype(
		tags.Opponent,
		components.Opponent,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(ecs *ecs.ECS, cs ...donburi.IComponentType) *donburi.Entry {
	e := ecs.World.Entry(ecs.Create(
		cfg.Default,
		append(a.components, cs...)...,
	))
	return e
}
