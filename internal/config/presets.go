package config

import "sort"

var Presets = map[string]*Config{
	"classic": DefaultConfig(),
	// No walls and no balls; clicks spawn them.
	"empty": {
		Arena:   ArenaConfig{Width: DefaultWidth, Height: DefaultHeight},
		Physics: PhysicsConfig{Friction: DefaultFriction, Restitution: DefaultRestitution},
		FPS:     DefaultFPS,
	},
	"maze": {
		Arena:   ArenaConfig{Width: DefaultWidth, Height: DefaultHeight},
		Physics: PhysicsConfig{Friction: DefaultFriction, Restitution: 0.95},
		Walls: []WallConfig{
			{X: 100, Y: 150, Length: 300, Orientation: "horizontal"},
			{X: 400, Y: 300, Length: 300, Orientation: "horizontal"},
			{X: 100, Y: 450, Length: 250, Orientation: "horizontal"},
			{X: 250, Y: 150, Length: 150, Orientation: "vertical"},
			{X: 550, Y: 50, Length: 200, Orientation: "vertical"},
			{X: 650, Y: 320, Length: 200, Orientation: "vertical"},
		},
		Bodies: []BodyConfig{{X: 60, Y: 60, VX: 12, VY: 9, Color: DefaultBodyColor}},
		FPS:    DefaultFPS,
	},
	"crowd": {
		Arena:   ArenaConfig{Width: DefaultWidth, Height: DefaultHeight},
		Physics: PhysicsConfig{Friction: DefaultFriction, Restitution: 0.8},
		Walls:   []WallConfig{{X: 200, Y: 300, Length: 400, Orientation: "horizontal"}},
		Bodies: []BodyConfig{
			{X: 100, Y: 100, VX: 8, VY: 3, Color: DefaultBodyColor},
			{X: 300, Y: 120, VX: -6, VY: 5, Color: "#00a0ff"},
			{X: 500, Y: 90, VX: 4, VY: 7, Color: "#20c040"},
			{X: 700, Y: 150, VX: -9, VY: 2, Color: "#ffb000"},
			{X: 150, Y: 480, VX: 5, VY: -8, Color: "#a040ff"},
			{X: 600, Y: 500, VX: -7, VY: -6, Color: "#ff40a0"},
		},
		FPS: DefaultFPS,
	},
	"capped": {
		Arena:     ArenaConfig{Width: DefaultWidth, Height: DefaultHeight},
		Physics:   PhysicsConfig{Friction: DefaultFriction, Restitution: DefaultRestitution},
		Bodies:    []BodyConfig{{X: 400, Y: 300, Color: DefaultBodyColor}},
		FPS:       DefaultFPS,
		MaxBodies: 8,
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
