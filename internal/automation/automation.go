package automation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/ballsim/internal/config"
	"github.com/san-kum/ballsim/internal/experiment"
	"github.com/san-kum/ballsim/internal/sim"
)

var ErrInvalidStep = errors.New("automation: invalid step")

// Scenario is a batch of headless runs read from YAML.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep runs one scene. Preset and Config are mutually exclusive;
// with neither the default scene is used. Zero Seed keeps the scene's seed.
type ScenarioStep struct {
	Preset    string               `yaml:"preset,omitempty"`
	Config    string               `yaml:"config,omitempty"`
	Seed      int64                `yaml:"seed,omitempty"`
	Ticks     int                  `yaml:"ticks"`
	MaxBodies int                  `yaml:"max_bodies,omitempty"`
	Metrics   []string             `yaml:"metrics,omitempty"`
	Script    []config.ScriptEvent `yaml:"script,omitempty"`
	SaveAs    string               `yaml:"save_as,omitempty"`
}

// StepResult pairs a finished run with the scene it ran.
type StepResult struct {
	Name   string
	Config *config.Config
	Result *sim.Result
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &scenario, nil
}

// Scene resolves the step's config and display name.
func (s ScenarioStep) Scene() (*config.Config, string, error) {
	var (
		cfg  *config.Config
		name = "classic"
	)
	switch {
	case s.Preset != "" && s.Config != "":
		return nil, "", fmt.Errorf("%w: both preset and config given", ErrInvalidStep)
	case s.Preset != "":
		if cfg = config.GetPreset(s.Preset); cfg == nil {
			return nil, "", fmt.Errorf("%w: unknown preset %q", ErrInvalidStep, s.Preset)
		}
		name = s.Preset
	case s.Config != "":
		c, err := config.Load(s.Config)
		if err != nil {
			return nil, "", err
		}
		cfg, name = c, s.Config
	default:
		cfg = config.DefaultConfig()
	}

	if s.Seed != 0 {
		cfg.Seed = s.Seed
	}
	if s.MaxBodies != 0 {
		cfg.MaxBodies = s.MaxBodies
	}
	if len(s.Script) > 0 {
		cfg.Script = append([]config.ScriptEvent(nil), s.Script...)
	}
	if s.SaveAs != "" {
		name = s.SaveAs
	}
	return cfg, name, cfg.Validate()
}

// RunScenario executes every step in order and stops at the first failure,
// returning the steps that completed.
func RunScenario(ctx context.Context, scenario *Scenario, registry *experiment.Registry, log *slog.Logger) ([]StepResult, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		if step.Ticks <= 0 {
			return results, fmt.Errorf("step %d: %w: ticks must be positive", i+1, ErrInvalidStep)
		}
		cfg, name, err := step.Scene()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		metrics, err := registry.Metrics(step.Metrics)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		log.Info("running step", "step", i+1, "of", len(scenario.Steps), "scene", name, "ticks", step.Ticks)

		exp := experiment.New(cfg, log.With("step", i+1))
		if err := exp.Setup(metrics); err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}
		result, err := exp.Run(ctx, step.Ticks)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		results = append(results, StepResult{Name: name, Config: cfg, Result: result})
	}

	return results, nil
}
