package config

import (
	"fmt"
	"os"

	"github.com/jinzhu/copier"
	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/ballsim/internal/arena"
)

const (
	DefaultWidth       = 800.0
	DefaultHeight      = 600.0
	DefaultFriction    = arena.DefaultFriction
	DefaultRestitution = 0.9
	DefaultFPS         = 60
	DefaultBodyColor   = "#ff0000"
)

// Script actions understood by the headless runner.
const (
	ActionMove    = "move"
	ActionPress   = "press"
	ActionRelease = "release"
	ActionRaise   = "raise"
	ActionLower   = "lower"
	ActionQuit    = "quit"
)

type Config struct {
	Arena     ArenaConfig   `yaml:"arena"`
	Physics   PhysicsConfig `yaml:"physics"`
	Walls     []WallConfig  `yaml:"walls"`
	Bodies    []BodyConfig  `yaml:"bodies"`
	Seed      int64         `yaml:"seed"`
	FPS       int           `yaml:"fps"`
	MaxBodies int           `yaml:"max_bodies"`
	Script    []ScriptEvent `yaml:"script,omitempty"`
}

type ArenaConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type PhysicsConfig struct {
	Friction    float64 `yaml:"friction"`
	Restitution float64 `yaml:"restitution"`
}

type WallConfig struct {
	X           float64 `yaml:"x"`
	Y           float64 `yaml:"y"`
	Length      float64 `yaml:"length"`
	Orientation string  `yaml:"orientation"`
}

type BodyConfig struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	VX    float64 `yaml:"vx"`
	VY    float64 `yaml:"vy"`
	Color string  `yaml:"color,omitempty"`
}

// ScriptEvent is one scripted input for a headless run. Move sets the
// pointer; press and release act at the current pointer unless X/Y are given.
type ScriptEvent struct {
	Tick   int     `yaml:"tick"`
	Action string  `yaml:"action"`
	X      float64 `yaml:"x,omitempty"`
	Y      float64 `yaml:"y,omitempty"`
	Button string  `yaml:"button,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Arena: ArenaConfig{Width: DefaultWidth, Height: DefaultHeight},
		Physics: PhysicsConfig{
			Friction:    DefaultFriction,
			Restitution: DefaultRestitution,
		},
		Walls: []WallConfig{
			{X: 150, Y: 420, Length: 250, Orientation: "horizontal"},
			{X: 560, Y: 120, Length: 220, Orientation: "vertical"},
		},
		Bodies: []BodyConfig{
			{X: DefaultWidth / 2, Y: DefaultHeight / 2, Color: DefaultBodyColor},
		},
		FPS: DefaultFPS,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	minSide := 2 * arena.DragRadius
	if c.Arena.Width <= minSide || c.Arena.Height <= minSide {
		return fmt.Errorf("%w: %gx%g (need more than %g per side)", ErrInvalidArena, c.Arena.Width, c.Arena.Height, minSide)
	}
	if c.Physics.Friction <= 0 || c.Physics.Friction > 1 {
		return fmt.Errorf("%w: friction %g not in (0, 1]", ErrInvalidPhysics, c.Physics.Friction)
	}
	if c.Physics.Restitution < 0 || c.Physics.Restitution > 1 {
		return fmt.Errorf("%w: %g", ErrInvalidRestitution, c.Physics.Restitution)
	}
	if c.FPS < 0 {
		return fmt.Errorf("%w: fps %d", ErrInvalidPhysics, c.FPS)
	}
	if c.MaxBodies < 0 {
		return fmt.Errorf("%w: max_bodies %d", ErrInvalidBody, c.MaxBodies)
	}
	for i, w := range c.Walls {
		if w.Length <= 0 {
			return fmt.Errorf("%w %d: length %g", ErrInvalidWall, i, w.Length)
		}
		if _, err := ParseOrientation(w.Orientation); err != nil {
			return fmt.Errorf("%w %d: %v", ErrInvalidWall, i, err)
		}
	}
	for i, b := range c.Bodies {
		if _, err := parseColor(b.Color); err != nil {
			return fmt.Errorf("%w %d: %v", ErrInvalidBody, i, err)
		}
	}
	for i, ev := range c.Script {
		if ev.Tick < 0 {
			return fmt.Errorf("%w %d: negative tick", ErrInvalidScript, i)
		}
		switch ev.Action {
		case ActionMove, ActionPress, ActionRelease, ActionRaise, ActionLower, ActionQuit:
		default:
			return fmt.Errorf("%w %d: unknown action %q", ErrInvalidScript, i, ev.Action)
		}
		if _, err := ParseButton(ev.Button); err != nil {
			return fmt.Errorf("%w %d: %v", ErrInvalidScript, i, err)
		}
	}
	return nil
}

func ParseOrientation(s string) (arena.Orientation, error) {
	switch s {
	case "", "horizontal", "h":
		return arena.Horizontal, nil
	case "vertical", "v":
		return arena.Vertical, nil
	}
	return 0, fmt.Errorf("unknown orientation %q", s)
}

func ParseButton(s string) (arena.Button, error) {
	switch s {
	case "", "primary", "left":
		return arena.ButtonPrimary, nil
	case "secondary", "right":
		return arena.ButtonSecondary, nil
	case "middle":
		return arena.ButtonMiddle, nil
	}
	return 0, fmt.Errorf("unknown button %q", s)
}

func parseColor(s string) (colorful.Color, error) {
	if s == "" {
		s = DefaultBodyColor
	}
	return colorful.Hex(s)
}

// Options returns the world options described by the config.
func (c *Config) Options() arena.Options {
	return arena.Options{
		Width:       c.Arena.Width,
		Height:      c.Arena.Height,
		Restitution: c.Physics.Restitution,
		Friction:    c.Physics.Friction,
		MaxBodies:   c.MaxBodies,
	}
}

// BuildWorld validates the config and creates the world with its walls and
// seed bodies.
func (c *Config) BuildWorld(rng arena.RandSource) (*arena.World, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	w := arena.NewWorld(c.Options(), rng)
	for _, wc := range c.Walls {
		o, _ := ParseOrientation(wc.Orientation)
		w.AddWall(arena.NewBoundary(wc.X, wc.Y, wc.Length, o))
	}
	for _, bc := range c.Bodies {
		col, _ := parseColor(bc.Color)
		b := arena.NewBody(arena.Vec2{X: bc.X, Y: bc.Y}, c.Physics.Restitution, col)
		b.Vel = arena.Vec2{X: bc.VX, Y: bc.VY}
		b.Friction = c.Physics.Friction
		w.AddBody(b)
	}
	return w, nil
}

// Clone returns a deep copy of the config.
func (c *Config) Clone() *Config {
	out := new(Config)
	if err := copier.CopyWithOption(out, c, copier.Option{DeepCopy: true}); err != nil {
		// Config holds only plain values and slices of them.
		panic(fmt.Sprintf("config: clone: %v", err))
	}
	return out
}
