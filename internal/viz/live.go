package viz

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/ballsim/internal/arena"
	"github.com/san-kum/ballsim/internal/metrics"
)

const (
	defaultCols     = 80
	defaultRows     = 24
	historyCapacity = 600
)

type TickMsg time.Time

// Options configures the live view.
type Options struct {
	Title  string
	FPS    int
	Theme  Theme
	Logger *slog.Logger
	// Rebuild recreates the scene for the reset key. Nil disables reset.
	Rebuild func() (*arena.World, error)
}

// Model drives an arena.World from terminal input. Mouse cells are mapped to
// arena coordinates through the Braille canvas, so a press on a drawn body
// lands on that body.
type Model struct {
	world   *arena.World
	opts    Options
	styles  styles
	canvas  *Canvas
	pointer arena.Vec2
	pending []arena.Event
	kinetic []float64
	last    arena.Report
	running bool
	help    bool
	err     error
}

func NewModel(w *arena.World, opts Options) Model {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Theme.Name == "" {
		opts.Theme = ThemeClassic
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	width, height := w.Size()
	return Model{
		world:   w,
		opts:    opts,
		styles:  newStyles(opts.Theme),
		canvas:  NewCanvas(defaultCols, defaultRows),
		pointer: arena.Vec2{X: width / 2, Y: height / 2},
		kinetic: make([]float64, 0, historyCapacity),
		running: true,
	}
}

func (m Model) World() *arena.World { return m.world }

// Err returns the error that ended the view, if any.
func (m Model) Err() error { return m.err }

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.opts.FPS), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return m.tick() }

// Update queues input events and steps the world on every tick.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			if !m.running {
				return m, tea.Quit
			}
			m.pending = append(m.pending, arena.Quit{})
		case "up", "k", "+":
			m.pending = append(m.pending, arena.KeyDown{Code: arena.KeyRaiseRestitution})
		case "down", "j", "-":
			m.pending = append(m.pending, arena.KeyDown{Code: arena.KeyLowerRestitution})
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "t":
			m.opts.Theme = NextTheme(m.opts.Theme)
			m.styles = newStyles(m.opts.Theme)
		case "?":
			m.help = !m.help
		}
	case tea.MouseMsg:
		m.mouse(msg)
	case TickMsg:
		if m.running && m.step() {
			return m, tea.Quit
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) mouse(msg tea.MouseMsg) {
	p, inside := m.toArena(msg.X, msg.Y)
	if inside {
		m.pointer = p
	}
	switch msg.Action {
	case tea.MouseActionPress:
		if !inside {
			return
		}
		if btn, ok := mouseButton(msg.Button); ok {
			m.pending = append(m.pending, arena.PointerDown{Pos: p, Button: btn})
		}
	case tea.MouseActionRelease:
		// A drag may end over the side panel or the padding.
		m.pending = append(m.pending, arena.PointerUp{Button: arena.ButtonPrimary})
	}
}

func mouseButton(b tea.MouseButton) (arena.Button, bool) {
	switch b {
	case tea.MouseButtonLeft:
		return arena.ButtonPrimary, true
	case tea.MouseButtonRight:
		return arena.ButtonSecondary, true
	case tea.MouseButtonMiddle:
		return arena.ButtonMiddle, true
	}
	return 0, false
}

// toArena maps a terminal cell to the arena point under the center of its
// Braille dots. Cells outside the canvas report false.
func (m *Model) toArena(col, row int) (arena.Vec2, bool) {
	col -= canvasOffsetX
	row -= canvasOffsetY
	if col < 0 || row < 0 || col >= m.canvas.Width || row >= m.canvas.Height {
		return arena.Vec2{}, false
	}
	sx, sy := m.scale()
	return arena.Vec2{X: (float64(col)*2 + 1) * sx, Y: (float64(row)*4 + 2) * sy}, true
}

// scale returns arena units per canvas dot.
func (m *Model) scale() (float64, float64) {
	w, h := m.world.Size()
	dw, dh := m.canvas.Dots()
	return w / float64(dw), h / float64(dh)
}

// step advances the world one frame and reports whether it asked to quit.
func (m *Model) step() bool {
	rep := m.world.Step(arena.Frame{Events: m.pending, Pointer: m.pointer})
	m.pending = m.pending[:0]
	m.last = rep

	for _, id := range rep.Spawned {
		m.opts.Logger.Debug("body spawned", "id", id, "tick", rep.Tick, "bodies", m.world.Len())
	}
	for _, id := range rep.Evicted {
		m.opts.Logger.Info("body evicted", "id", id, "tick", rep.Tick)
	}

	m.kinetic = append(m.kinetic, metrics.Kinetic(m.world))
	if len(m.kinetic) > historyCapacity {
		m.kinetic = m.kinetic[1:]
	}
	return rep.Quit
}

func (m *Model) reset() {
	if m.opts.Rebuild == nil {
		return
	}
	w, err := m.opts.Rebuild()
	if err != nil {
		m.opts.Logger.Error("reset failed", "err", err)
		m.err = err
		return
	}
	m.world = w
	m.pending = m.pending[:0]
	m.kinetic = m.kinetic[:0]
	m.last = arena.Report{}
	m.opts.Logger.Info("scene reset")
}

// draw rasterises the world's draw list. Dots are not square in arena units,
// so circles become ellipses that stay within the body's hit radius. Text
// commands are shown in the side panel instead.
func (m *Model) draw() {
	m.canvas.Clear()
	sx, sy := m.scale()
	for _, c := range m.world.Draw() {
		x, y := int(c.Pos.X/sx), int(c.Pos.Y/sy)
		switch c.Kind {
		case arena.DrawRect:
			w, h := max(1, int(c.W/sx)), max(1, int(c.H/sy))
			m.canvas.FillRect(x, y, w, h, m.opts.Theme.Wall)
		case arena.DrawCircle:
			m.canvas.Ellipse(x, y, max(1, int(c.Radius/sx)), max(1, int(c.Radius/sy)), TermColor(c.Color))
		case arena.DrawDot:
			m.canvas.Set(x, y, TermColor(c.Color))
		}
	}
}

// View renders the canvas beside the stats panel.
func (m Model) View() string {
	m.draw()
	st := m.styles

	var s strings.Builder
	title := m.opts.Title
	if title == "" {
		title = "ballsim"
	}
	s.WriteString(st.header.Render(strings.ToUpper(title)) + "\n")

	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	s.WriteString(st.accent.Render(status) + "\n\n")

	if len(m.kinetic) > 1 {
		chart := asciigraph.Plot(m.kinetic, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Kinetic"))
		s.WriteString(st.graph.Render(chart) + "\n\n")
	}

	if b, ok := m.world.Primary(); ok {
		for _, line := range arena.Labels(b) {
			name, value, _ := strings.Cut(line, ": ")
			s.WriteString(st.label.Render(name) + st.value.Render(value) + "\n")
		}
		s.WriteString(st.label.Render("") + ProgressBar(b.Restitution, 20) + "\n")
	}
	s.WriteString(st.label.Render("Bodies") + st.value.Render(fmt.Sprintf("%d", m.world.Len())) + "\n")
	s.WriteString(st.label.Render("Tick") + st.value.Render(fmt.Sprintf("%d", m.world.Tick())) + "\n")
	s.WriteString(st.label.Render("Hits") + st.value.Render(fmt.Sprintf("wall %d  body %d", m.last.WallHits, m.last.BodyHits)) + "\n")

	s.WriteString(st.muted.Render("\n─────────────────────\nclick: grab/spawn  SP: pause\n↑↓: elasticity  R: reset\nT: theme  ?: help  Q: quit"))

	main := lipgloss.JoinHorizontal(lipgloss.Top, canvasStyle.Render(m.canvas.Render()), statsStyle.Render(s.String()))
	if m.help {
		return helpText + "\n\n" + main
	}
	return main
}

const helpText = `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Click    - Grab a ball / spawn one  ║
║  Release  - Let go of held balls     ║
║  Up/K     - Raise elasticity (+0.05) ║
║  Down/J   - Lower elasticity (-0.05) ║
║  Space    - Pause/Resume             ║
║  R        - Reset scene              ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`

// Run starts the live view on the alternate screen with mouse motion
// reporting enabled.
func Run(w *arena.World, opts Options) error {
	p := tea.NewProgram(NewModel(w, opts), tea.WithAltScreen(), tea.WithMouseCellMotion())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(Model); ok {
		return m.Err()
	}
	return nil
}
