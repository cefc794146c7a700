package viz

import (
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/ballsim/internal/arena"
	"github.com/san-kum/ballsim/internal/config"
)

var sceneInfo = map[string]string{
	"classic": "one ball, two walls",
	"empty":   "open arena, click to add balls",
	"maze":    "fast ball in a maze",
	"crowd":   "six balls colliding",
	"capped":  "spawn cap of eight",
}

var (
	pickTitle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	pickSub    = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	pickCursor = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	pickActive = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	pickDesc   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff"))
	pickIdle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	pickKey    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
)

// picker lists the preset scenes and hands the chosen one to a live Model.
type picker struct {
	cursor  int
	scenes  []string
	opts    Options
	prepare func(*config.Config) error
	scene   *config.Config
	live    *Model
	err     error
}

func newPicker(opts Options, prepare func(*config.Config) error) picker {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	return picker{scenes: config.ListPresets(), opts: opts, prepare: prepare}
}

func (p picker) Init() tea.Cmd { return nil }

func (p picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if p.live != nil {
		next, cmd := p.live.Update(msg)
		live := next.(Model)
		p.live = &live
		return p, cmd
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return p, tea.Quit
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.scenes)-1 {
			p.cursor++
		}
	case "enter", " ":
		return p.start()
	}
	return p, nil
}

func (p picker) start() (tea.Model, tea.Cmd) {
	name := p.scenes[p.cursor]
	cfg := config.GetPreset(name)
	if p.prepare != nil {
		if err := p.prepare(cfg); err != nil {
			p.err = err
			return p, tea.Quit
		}
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	p.scene = cfg
	build := func() (*arena.World, error) {
		return cfg.BuildWorld(rand.New(rand.NewSource(cfg.Seed)))
	}
	w, err := build()
	if err != nil {
		p.err = err
		return p, tea.Quit
	}
	opts := p.opts
	opts.Title = name
	opts.FPS = cfg.FPS
	opts.Rebuild = build
	live := NewModel(w, opts)
	p.live = &live
	opts.Logger.Info("scene started", "scene", name, "seed", cfg.Seed, "bodies", w.Len())
	return p, live.Init()
}

func (p picker) View() string {
	if p.live != nil {
		return p.live.View()
	}
	var b strings.Builder
	b.WriteString("\n\n    " + pickTitle.Render("BALLSIM") + "\n    " + pickSub.Render("bouncing ball arena") + "\n    " + pickSub.Render("─────────────────────────") + "\n\n")
	for i, name := range p.scenes {
		desc := sceneInfo[name]
		if i == p.cursor {
			fmt.Fprintf(&b, "    %s %s  %s\n", pickCursor.Render("▸"), pickActive.Render(fmt.Sprintf("%-10s", name)), pickDesc.Render(desc))
		} else {
			fmt.Fprintf(&b, "    %s  %s\n", pickIdle.Render(fmt.Sprintf("  %-10s", name)), pickIdle.Render(desc))
		}
	}
	b.WriteString("\n    " + pickKey.Render("j/k") + pickIdle.Render(" navigate  ") + pickKey.Render("enter") + pickIdle.Render(" select  ") + pickKey.Render("q") + pickIdle.Render(" quit") + "\n")
	return b.String()
}

// RunInteractive shows the scene picker, then the live view of the chosen
// scene. prepare, when set, adjusts the chosen preset before it is built;
// a preset still without a seed gets one from the clock.
func RunInteractive(opts Options, prepare func(*config.Config) error) error {
	final, err := tea.NewProgram(newPicker(opts, prepare), tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	if err != nil {
		return err
	}
	if p, ok := final.(picker); ok {
		if p.err != nil {
			return p.err
		}
		if p.live != nil {
			return p.live.Err()
		}
	}
	return nil
}
