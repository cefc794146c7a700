package arena

// Options configures a World.
type Options struct {
	Width, Height float64
	// Restitution is given to bodies spawned into an empty world.
	Restitution float64
	// Friction is given to spawned bodies. Zero means DefaultFriction.
	Friction float64
	// MaxBodies caps the arena. Zero means unbounded: repeated spawns grow
	// the arena without limit. When positive, the oldest free body is
	// evicted to make room for a spawn.
	MaxBodies int
}

// Report summarises one tick.
type Report struct {
	Tick     int
	Quit     bool
	Spawned  []int
	Evicted  []int
	Grabbed  []int
	Released []int
	WallHits int
	BodyHits int
}

// World owns the bodies and walls and advances them one frame at a time.
type World struct {
	opts   Options
	bodies []*Body
	walls  []Boundary
	rng    RandSource
	nextID int
	tick   int
}

func NewWorld(opts Options, rng RandSource) *World {
	return &World{
		opts:   opts,
		bodies: make([]*Body, 0),
		walls:  make([]Boundary, 0),
		rng:    rng,
		nextID: 1,
	}
}

func (w *World) Options() Options { return w.opts }

func (w *World) Size() (float64, float64) { return w.opts.Width, w.opts.Height }

func (w *World) Tick() int { return w.tick }

func (w *World) Len() int { return len(w.bodies) }

// Bodies returns the bodies in arena order. The slice is a copy; the bodies
// are shared.
func (w *World) Bodies() []*Body {
	out := make([]*Body, len(w.bodies))
	copy(out, w.bodies)
	return out
}

// Body looks a body up by its stable ID.
func (w *World) Body(id int) (*Body, bool) {
	for _, b := range w.bodies {
		if b.ID == id {
			return b, true
		}
	}
	return nil, false
}

// Primary returns the first body of the arena, the one the HUD describes.
func (w *World) Primary() (*Body, bool) {
	if len(w.bodies) == 0 {
		return nil, false
	}
	return w.bodies[0], true
}

func (w *World) Walls() []Boundary {
	out := make([]Boundary, len(w.walls))
	copy(out, w.walls)
	return out
}

func (w *World) AddWall(b Boundary) { w.walls = append(w.walls, b) }

// AddBody appends b and assigns it the next stable ID.
func (w *World) AddBody(b *Body) *Body {
	b.ID = w.nextID
	w.nextID++
	w.bodies = append(w.bodies, b)
	return b
}

// Spawn creates a resting body at p with a random color and the restitution
// of the primary body.
func (w *World) Spawn(p Vec2) (spawned *Body, evicted []int) {
	rest := w.opts.Restitution
	if first, ok := w.Primary(); ok {
		rest = first.Restitution
	}
	if w.opts.MaxBodies > 0 {
		for len(w.bodies) >= w.opts.MaxBodies {
			id, ok := w.evictOldest()
			if !ok {
				break
			}
			evicted = append(evicted, id)
		}
	}
	b := NewBody(p, rest, RandomColor(w.rng))
	if w.opts.Friction > 0 {
		b.Friction = w.opts.Friction
	}
	return w.AddBody(b), evicted
}

func (w *World) evictOldest() (int, bool) {
	for i, b := range w.bodies {
		if b.Dragging() {
			continue
		}
		w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
		return b.ID, true
	}
	return 0, false
}

func (w *World) anyDragging() bool {
	for _, b := range w.bodies {
		if b.Dragging() {
			return true
		}
	}
	return false
}

// Step advances the world by one frame: input events, integration, wall and
// edge resolution, then one pass over every body pair.
func (w *World) Step(f Frame) Report {
	w.tick++
	rep := Report{Tick: w.tick}

	for _, ev := range f.Events {
		w.dispatch(ev, &rep)
	}

	for _, b := range w.bodies {
		b.Integrate(f.Pointer)
	}

	for _, b := range w.bodies {
		rep.WallHits += ResolveBoundaries(b, w.walls, w.opts.Width, w.opts.Height, w.rng)
	}

	for i := 0; i < len(w.bodies); i++ {
		for j := i + 1; j < len(w.bodies); j++ {
			if SwapThenDamp(w.bodies[i], w.bodies[j], w.rng) {
				rep.BodyHits++
			}
		}
	}

	return rep
}

func (w *World) dispatch(ev Event, rep *Report) {
	switch e := ev.(type) {
	case PointerDown:
		hit := false
		for _, b := range w.bodies {
			if b.Dragging() || !b.Hit(e.Pos) {
				continue
			}
			b.Grab(e.Pos)
			rep.Grabbed = append(rep.Grabbed, b.ID)
			hit = true
		}
		if hit || e.Button != ButtonPrimary || w.anyDragging() {
			return
		}
		b, evicted := w.Spawn(e.Pos)
		rep.Spawned = append(rep.Spawned, b.ID)
		rep.Evicted = append(rep.Evicted, evicted...)
	case PointerUp:
		for _, b := range w.bodies {
			if b.Dragging() {
				b.Release()
				rep.Released = append(rep.Released, b.ID)
			}
		}
	case KeyDown:
		var delta float64
		switch e.Code {
		case KeyRaiseRestitution:
			delta = RestitutionStep
		case KeyLowerRestitution:
			delta = -RestitutionStep
		default:
			return
		}
		for _, b := range w.bodies {
			b.AdjustRestitution(delta)
		}
	case Quit:
		rep.Quit = true
	}
}
