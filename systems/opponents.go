package systems

import (
	"github.com/automoto/boxninja/components"
	"github.com/automoto/boxninja/shared/netconfig"
	"github.com/automoto/boxninja/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// ApplyPositions copies a relayed position table onto the opponent
// snapshots. The local seat is not an opponent and is never touched.
func ApplyPositions(ecs *ecs.ECS, positions netconfig.Positions) {
	tags.Opponent.Each(ecs.World, func(e *donburi.Entry) {
		o := components.Opponent.Get(e)
		if p, ok := positions[o.Color]; ok {
			o.Position = p
			o.Seen = true
		}
	})
}

func ApplyScores(ecs *ecs.ECS, scores netconfig.Scores) {
	tags.Opponent.Each(ecs.World, func(e *donburi.Entry) {
		o := components.Opponent.Get(e)
		if s, ok := scores[o.Color]; ok {
			o.Score = s
		}
	})
}
