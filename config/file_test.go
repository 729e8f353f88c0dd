package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseOverlaysOnlyPresentKeys(t *testing.T) {
	f, err := Parse([]byte(`
[Physics]
Gravity = 0.5

[Server]
Address = "127.0.0.1:4321"
MaxRelayErrors = 2
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if f.Physics.Gravity != 0.5 {
		t.Errorf("gravity = %v, want 0.5", f.Physics.Gravity)
	}
	if f.Physics.MoveSpeed != Physics.MoveSpeed {
		t.Errorf("move speed changed to %v", f.Physics.MoveSpeed)
	}
	if f.Server.Address != "127.0.0.1:4321" || f.Server.MaxRelayErrors != 2 {
		t.Errorf("server = %+v", f.Server)
	}
	if f.Server.RelayRate != Server.RelayRate {
		t.Errorf("relay rate changed to %d", f.Server.RelayRate)
	}
	if f.Game.Width != 600 {
		t.Errorf("width = %d, want 600", f.Game.Width)
	}
}

func TestParseRejectsBadToml(t *testing.T) {
	if _, err := Parse([]byte("[Physics\nGravity = ")); err == nil {
		t.Fatal("expected an error for malformed TOML")
	}
}

func TestLoadMissingFileKeepsDefaults(t *testing.T) {
	before := Current()
	if err := Load(filepath.Join(t.TempDir(), "absent.toml")); err != nil {
		t.Fatalf("load: %v", err)
	}
	if Current() != before {
		t.Error("globals changed after loading a missing file")
	}
}

func TestLoadAppliesFile(t *testing.T) {
	before := Current()
	t.Cleanup(func() { Apply(before) })

	path := filepath.Join(t.TempDir(), "boxninja.toml")
	if err := os.WriteFile(path, []byte("[Debug]\nGodMode = true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := Load(path); err != nil {
		t.Fatalf("load: %v", err)
	}
	if !Debug.GodMode {
		t.Error("god mode not applied")
	}
	if C.FPS != before.Game.FPS {
		t.Errorf("fps = %d, want %d", C.FPS, before.Game.FPS)
	}
}
