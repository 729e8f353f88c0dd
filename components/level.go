package components

import (
	"github.com/automoto/boxninja/shared/leveldata"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// Stage is a level built from its descriptor. The body list never changes
// after construction; a death rebuilds the whole stage.
type Stage struct {
	Name         string
	Bodies       []*Body
	Gate         *Body // nil only in the lounge
	RequiredKeys int
	Start        leveldata.Point
	Space        *resolv.Space
}

type LevelData struct {
	Catalog []leveldata.Level
	Lounge  leveldata.Level
	Index   int // catalog index; equals Count while in the lounge
	Count   int // levels in this run
	Current *Stage
}

// InLounge reports whether the run is over and the player waits in the
// lounge.
func (l *LevelData) InLounge() bool {
	return l.Index >= l.Count
}

// Descriptor returns the static description of the current level.
func (l *LevelData) Descriptor() leveldata.Level {
	if l.InLounge() {
		return l.Lounge
	}
	return l.Catalog[l.Index]
}

var Level = donburi.NewComponentType[LevelData]()
