package gui

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/ballsim/internal/arena"
	"github.com/san-kum/ballsim/internal/audio"
	"github.com/san-kum/ballsim/internal/metrics"
)

const telemetryCapacity = 200

// Options configures the window.
type Options struct {
	Title  string
	FPS    int
	Logger *slog.Logger
	// Rebuild recreates the scene for the R key. Nil disables reset.
	Rebuild func() (*arena.World, error)
	// Sound plays kinetic energy and collisions on the default audio device.
	Sound bool
}

// App owns the raylib window and feeds it one arena frame per rendered
// frame. The window is sized to the arena, so pointer coordinates are arena
// coordinates.
type App struct {
	World     *arena.World
	Running   bool
	Telemetry []float64
	ShowHUD   bool

	opts    Options
	log     *slog.Logger
	pending []arena.Event
	synth   *audio.Synth
	quit    bool
}

func NewApp(w *arena.World, opts Options) *App {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Title == "" {
		opts.Title = "ballsim"
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &App{
		World:     w,
		Running:   true,
		Telemetry: make([]float64, 0, telemetryCapacity),
		ShowHUD:   true,
		opts:      opts,
		log:       log,
	}
}

// Run opens a window the size of the arena and blocks until it is closed.
func Run(w *arena.World, opts Options) {
	app := NewApp(w, opts)
	width, height := w.Size()
	rl.InitWindow(int32(width), int32(height), app.opts.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(app.opts.FPS))
	rl.SetExitKey(0)

	if app.opts.Sound {
		synth := audio.NewSynth()
		player, err := audio.Start(synth)
		if err != nil {
			app.log.Warn("sound disabled", "err", err)
		} else {
			defer player.Close()
			app.synth = synth
		}
	}

	app.log.Info("window opened", "width", width, "height", height, "fps", app.opts.FPS, "sound", app.synth != nil)
	app.RunLoop()
	app.log.Info("window closed", "tick", app.World.Tick(), "bodies", app.World.Len())
}

func (a *App) RunLoop() {
	for !a.quit {
		a.Update()
		a.Draw()
	}
}

// Update polls raylib input and steps the world.
func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeySpace) {
		a.Running = !a.Running
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.reset()
	}
	if rl.IsKeyPressed(rl.KeyH) {
		a.ShowHUD = !a.ShowHUD
	}

	a.advance(pollFrame())
}

// advance steps the world with frame. While paused, events other than Quit
// are held back and delivered with the next stepped frame, so a release made
// during a pause still frees the held ball.
func (a *App) advance(frame arena.Frame) {
	if !a.Running {
		for _, ev := range frame.Events {
			if _, ok := ev.(arena.Quit); ok {
				a.quit = true
				continue
			}
			a.pending = append(a.pending, ev)
		}
		return
	}
	if len(a.pending) > 0 {
		frame.Events = append(a.pending, frame.Events...)
		a.pending = nil
	}

	rep := a.World.Step(frame)
	for _, id := range rep.Spawned {
		a.log.Debug("body spawned", "id", id, "tick", rep.Tick, "bodies", a.World.Len())
	}
	for _, id := range rep.Evicted {
		a.log.Info("body evicted", "id", id, "tick", rep.Tick)
	}

	kinetic := metrics.Kinetic(a.World)
	if a.synth != nil {
		a.synth.Feed(kinetic, rep.WallHits+rep.BodyHits)
	}
	a.Telemetry = append(a.Telemetry, kinetic)
	if len(a.Telemetry) > telemetryCapacity {
		a.Telemetry = a.Telemetry[1:]
	}
	a.quit = rep.Quit
}

func (a *App) reset() {
	if a.opts.Rebuild == nil {
		return
	}
	w, err := a.opts.Rebuild()
	if err != nil {
		a.log.Error("reset failed", "err", err)
		return
	}
	a.World = w
	a.pending = nil
	a.Telemetry = a.Telemetry[:0]
	a.log.Info("scene reset")
}

// pollFrame translates this frame's raylib input into arena events.
func pollFrame() arena.Frame {
	mouse := rl.GetMousePosition()
	pointer := arena.Vec2{X: float64(mouse.X), Y: float64(mouse.Y)}

	var events []arena.Event
	if rl.WindowShouldClose() || rl.IsKeyPressed(rl.KeyQ) {
		events = append(events, arena.Quit{})
	}
	for _, b := range []struct {
		rl  rl.MouseButton
		btn arena.Button
	}{
		{rl.MouseLeftButton, arena.ButtonPrimary},
		{rl.MouseRightButton, arena.ButtonSecondary},
		{rl.MouseMiddleButton, arena.ButtonMiddle},
	} {
		if rl.IsMouseButtonPressed(b.rl) {
			events = append(events, arena.PointerDown{Pos: pointer, Button: b.btn})
		}
		if rl.IsMouseButtonReleased(b.rl) {
			events = append(events, arena.PointerUp{Button: b.btn})
		}
	}
	if rl.IsKeyPressed(rl.KeyUp) {
		events = append(events, arena.KeyDown{Code: arena.KeyRaiseRestitution})
	}
	if rl.IsKeyPressed(rl.KeyDown) {
		events = append(events, arena.KeyDown{Code: arena.KeyLowerRestitution})
	}

	return arena.Frame{Events: events, Pointer: pointer}
}
