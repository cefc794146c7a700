package metrics

import (
	"math"

	"github.com/san-kum/ballsim/internal/arena"
)

// Kinetic returns the total kinetic energy of the free bodies, assuming unit
// mass. Dragged bodies hold a cached grab impulse rather than a real
// velocity and are skipped.
func Kinetic(w *arena.World) float64 {
	total := 0.0
	for _, b := range w.Bodies() {
		if b.Dragging() {
			continue
		}
		total += 0.5 * (b.Vel.X*b.Vel.X + b.Vel.Y*b.Vel.Y)
	}
	return total
}

type Energy struct {
	name        string
	samples     int
	totalEnergy float64
}

func NewEnergy() *Energy {
	return &Energy{name: "energy"}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(w *arena.World, rep arena.Report) {
	e.totalEnergy += Kinetic(w)
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *Energy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}

// EnergyLoss reports the fraction of the first observed nonzero kinetic
// energy that is gone by the latest tick. Spawns and drags inject energy, so
// the value can go negative.
type EnergyLoss struct {
	name          string
	initialEnergy float64
	currentEnergy float64
}

func NewEnergyLoss() *EnergyLoss {
	return &EnergyLoss{name: "energy_loss"}
}

func (e *EnergyLoss) Name() string { return e.name }

func (e *EnergyLoss) Observe(w *arena.World, rep arena.Report) {
	energy := Kinetic(w)
	if e.initialEnergy == 0 {
		e.initialEnergy = energy
	}
	e.currentEnergy = energy
}

func (e *EnergyLoss) Value() float64 {
	if e.initialEnergy == 0 {
		return 0
	}
	return 1 - e.currentEnergy/e.initialEnergy
}

func (e *EnergyLoss) Reset() {
	e.initialEnergy = 0
	e.currentEnergy = 0
}

type PeakSpeed struct {
	name string
	peak float64
}

func NewPeakSpeed() *PeakSpeed {
	return &PeakSpeed{name: "peak_speed"}
}

func (p *PeakSpeed) Name() string { return p.name }

func (p *PeakSpeed) Observe(w *arena.World, rep arena.Report) {
	for _, b := range w.Bodies() {
		if !b.Dragging() {
			p.peak = math.Max(p.peak, b.Speed())
		}
	}
}

func (p *PeakSpeed) Value() float64 { return p.peak }

func (p *PeakSpeed) Reset() { p.peak = 0 }
