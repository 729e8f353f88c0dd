package systems

import (
	"github.com/automoto/boxninja/components"
	"github.com/automoto/boxninja/shared/logging"
	"github.com/automoto/boxninja/tags"
	"go.uber.org/zap/zapcore"
)

// SpaceEntry is one broad-phase object, classified by its tags.
type SpaceEntry struct {
	Class      string
	X, Y, W, H float64
	Kind       components.Kind
}

// DescribeSpace lists every object registered in the stage's space.
func DescribeSpace(stage *components.Stage) []SpaceEntry {
	if stage == nil || stage.Space == nil {
		return nil
	}
	var out []SpaceEntry
	for _, obj := range stage.Space.Objects() {
		e := SpaceEntry{Class: "other", X: obj.X, Y: obj.Y, W: obj.W, H: obj.H}
		if obj.HasTags(tags.ResolvArrow) {
			e.Class = tags.ResolvArrow
		} else if obj.HasTags(tags.ResolvCrossbow) {
			e.Class = tags.ResolvCrossbow
		} else if obj.HasTags(tags.ResolvPowerUp) {
			e.Class = tags.ResolvPowerUp
		} else if obj.HasTags(tags.ResolvSolid) {
			e.Class = tags.ResolvSolid
		}
		if b, ok := obj.Data.(*components.Body); ok {
			e.Kind = b.Kind
		}
		out = append(out, e)
	}
	return out
}

// LogStage dumps the stage layout when debug logging is enabled.
func LogStage(stage *components.Stage) {
	log := logging.Named("debug")
	if !log.Desugar().Core().Enabled(zapcore.DebugLevel) {
		return
	}
	entries := DescribeSpace(stage)
	log.Debugw("stage built", "name", stage.Name, "objects", len(entries), "keys", stage.RequiredKeys)
	for _, e := range entries {
		log.Debugw("space object", "class", e.Class, "kind", e.Kind, "x", e.X, "y", e.Y, "w", e.W, "h", e.H)
	}
}
