package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// File mirrors the global configuration as TOML sections. Keys that are
// absent from a file keep their current value.
type File struct {
	Game     Config
	Physics  PhysicsConfig
	Rotation RotationConfig
	Crossbow CrossbowConfig
	Bodies   BodiesConfig
	Server   ServerConfig
	Client   ClientConfig
	Monitor  MonitorConfig
	Master   MasterConfig
	Debug    DebugConfig
}

// Current captures the globals as a File.
func Current() File {
	return File{
		Game:     *C,
		Physics:  Physics,
		Rotation: Rotation,
		Crossbow: Crossbow,
		Bodies:   Bodies,
		Server:   Server,
		Client:   Client,
		Monitor:  Monitor,
		Master:   Master,
		Debug:    Debug,
	}
}

// Apply replaces the globals with f.
func Apply(f File) {
	game := f.Game
	C = &game
	Physics = f.Physics
	Rotation = f.Rotation
	Crossbow = f.Crossbow
	Bodies = f.Bodies
	Server = f.Server
	Client = f.Client
	Monitor = f.Monitor
	Master = f.Master
	Debug = f.Debug
}

// Parse overlays TOML data onto the current globals and returns the result
// without applying it.
func Parse(data []byte) (File, error) {
	f := Current()
	if err := toml.Unmarshal(data, &f); err != nil {
		return f, err
	}
	return f, nil
}

// Load overlays the TOML file at path onto the globals. A missing file
// leaves the defaults in place.
func Load(path string) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	f, err := Parse(data)
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	Apply(f)
	return nil
}
