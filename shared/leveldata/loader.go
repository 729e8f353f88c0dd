package leveldata

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lafriks/go-tiled"
)

// Object group names read from TMX files.
const (
	BodiesGroup = "bodies"
	StartGroup  = "start"
)

// LoadLevel parses a TMX file into a Level. Bodies come from the "bodies"
// object group in document order, the start point from the first object of
// the "start" group. It takes an fs.FS so callers can pass embed.FS or
// os.DirFS.
func LoadLevel(fsys fs.FS, tmxPath string) (Level, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return Level{}, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	level := Level{Name: strings.TrimSuffix(filepath.Base(tmxPath), ".tmx")}
	hasStart := false

	for _, og := range levelMap.ObjectGroups {
		switch og.Name {
		case BodiesGroup:
			for _, o := range og.Objects {
				body, err := bodyFromObject(o)
				if err != nil {
					return Level{}, fmt.Errorf("%s: object %d: %w", tmxPath, o.ID, err)
				}
				level.Bodies = append(level.Bodies, body)
			}
		case StartGroup:
			if len(og.Objects) > 0 && !hasStart {
				level.Start = Point{X: og.Objects[0].X, Y: og.Objects[0].Y}
				hasStart = true
			}
		}
	}

	if !hasStart {
		return Level{}, fmt.Errorf("%s: no %q object group", tmxPath, StartGroup)
	}
	return level, nil
}

func bodyFromObject(o *tiled.Object) (Body, error) {
	name := o.Class
	if name == "" {
		name = o.Type //nolint:staticcheck // TMX uses type= attribute
	}
	kind, err := ParseKind(name)
	if err != nil {
		return Body{}, fmt.Errorf("%w: %q", err, name)
	}

	b := Body{Kind: kind, X: o.X, Y: o.Y, W: o.Width, H: o.Height}
	switch kind {
	case Spikes, GravityRotator:
		b.Dir = o.Properties.GetInt("dir")
	case Crossbow:
		b.DX = o.Properties.GetInt("dx")
		b.DY = o.Properties.GetInt("dy")
	case Door:
		b.Open = o.Properties.GetBool("open")
	}
	return b, nil
}

// LoadAllLevels loads every .tmx file in levelsDir, ordered by file name.
func LoadAllLevels(fsys fs.FS, levelsDir string) ([]Level, error) {
	pattern := levelsDir + "/*.tmx"
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no .tmx files found in %s", levelsDir)
	}
	sort.Strings(matches)

	levels := make([]Level, 0, len(matches))
	for _, path := range matches {
		level, err := LoadLevel(fsys, path)
		if err != nil {
			return nil, err
		}
		levels = append(levels, level)
	}
	return levels, nil
}
