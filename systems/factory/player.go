package factory

import (
	"github.com/automoto/boxninja/archetypes"
	"github.com/automoto/boxninja/components"
	cfg "github.com/automoto/boxninja/config"
	"github.com/automoto/boxninja/shared/leveldata"
	"github.com/automoto/boxninja/shared/netconfig"
	"github.com/automoto/boxninja/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

func CreatePlayer(ecs *ecs.ECS, color netconfig.Color, start leveldata.Point) *donburi.Entry {
	player := archetypes.Player.Spawn(ecs)

	size := cfg.Bodies.PlayerSize
	components.Player.SetValue(player, components.PlayerData{
		Rect:  components.Rect{X: start.X, Y: start.Y, W: size, H: size},
		Color: color,
		Alive: true,
	})
	components.Input.SetValue(player, components.InputData{})

	return player
}

// CreateOpponents spawns a snapshot entity for every seat except local.
func CreateOpponents(ecs *ecs.ECS, local netconfig.Color) []*donburi.Entry {
	var entries []*donburi.Entry
	for _, c := range netconfig.AllColors {
		if c == local {
			continue
		}
		e := archetypes.Opponent.Spawn(ecs)
		components.Opponent.SetValue(e, components.OpponentData{Color: c})
		entries = append(entries, e)
	}
	return entries
}

// FindOpponent returns the opponent entry for color.
func FindOpponent(ecs *ecs.ECS, color netconfig.Color) (*donburi.Entry, bool) {
	var found *donburi.Entry
	tags.Opponent.Each(ecs.World, func(e *donburi.Entry) {
		if components.Opponent.Get(e).Color == color {
			found = e
		}
	})
	return found, found != nil
}
