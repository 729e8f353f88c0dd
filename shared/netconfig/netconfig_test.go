package netconfig

import "testing"

func TestParseColor(t *testing.T) {
	for _, c := range AllColors {
		got, err := ParseColor(string(c))
		if err != nil || got != c {
			t.Errorf("ParseColor(%q) = %q, %v", c, got, err)
		}
	}
	if _, err := ParseColor("purple"); err == nil {
		t.Error("color tokens are case sensitive")
	}
}

func TestDifficultyLevels(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{"3", 3},
		{"5", 5},
		{"6", 6},
	}
	for _, tt := range tests {
		d, err := ParseDifficulty(tt.code)
		if err != nil {
			t.Fatalf("ParseDifficulty(%q): %v", tt.code, err)
		}
		if d.Levels() != tt.want {
			t.Errorf("%s.Levels() = %d, want %d", d, d.Levels(), tt.want)
		}
	}
	if _, err := ParseDifficulty("4"); err == nil {
		t.Error("expected error for unknown code")
	}
}

func TestDefaultMapsCoverAllColors(t *testing.T) {
	p := NewPositions()
	s := NewScores()
	if len(p) != RoomSize || len(s) != RoomSize {
		t.Fatalf("len = %d/%d, want %d", len(p), len(s), RoomSize)
	}
	for _, c := range AllColors {
		if p[c] != (Position{}) || s[c] != 0 {
			t.Errorf("%s not zero", c)
		}
	}
}
