package metrics

import "github.com/san-kum/ballsim/internal/arena"

type HitKind int

const (
	WallHits HitKind = iota
	BodyHits
)

// Hits counts boundary or pairwise corrections over a run.
type Hits struct {
	name  string
	kind  HitKind
	total int
}

func NewHits(kind HitKind) *Hits {
	name := "wall_hits"
	if kind == BodyHits {
		name = "body_hits"
	}
	return &Hits{name: name, kind: kind}
}

func (h *Hits) Name() string { return h.name }

func (h *Hits) Observe(w *arena.World, rep arena.Report) {
	if h.kind == BodyHits {
		h.total += rep.BodyHits
		return
	}
	h.total += rep.WallHits
}

func (h *Hits) Value() float64 { return float64(h.total) }

func (h *Hits) Reset() { h.total = 0 }

// BodyCount reports the arena size at the latest tick.
type BodyCount struct {
	count int
}

func NewBodyCount() *BodyCount { return &BodyCount{} }

func (c *BodyCount) Name() string { return "bodies" }

func (c *BodyCount) Observe(w *arena.World, rep arena.Report) { c.count = w.Len() }

func (c *BodyCount) Value() float64 { return float64(c.count) }

func (c *BodyCount) Reset() { c.count = 0 }
