package audio

import (
	"math"
	"sync"
)

const (
	SampleRate = 44100
	BufferSize = 512
)

const (
	// energyKnee is the kinetic energy at which the drone reaches half volume.
	energyKnee = 50.0
	// glide is the per-sample step of the drone level towards its target.
	glide     = 0.0005
	pingFreq  = 880.0
	pingDecay = 0.9995
	silence   = 1e-4
)

// A major triad over two octaves, A2 to A3.
var chord = []float64{110.00, 138.59, 164.81, 220.00}

// Synth turns arena state into sound: a drone whose loudness and brightness
// follow kinetic energy, and a short ping per collision. Feed is called from
// the simulation loop, Render from the audio callback.
type Synth struct {
	Volume float64

	mu     sync.Mutex
	energy float64
	hits   int

	level   float64
	t       float64
	lowpass [2]float64
	ping    float64
	pingT   float64
}

func NewSynth() *Synth {
	return &Synth{Volume: 0.25}
}

// Feed records one simulation frame: the total kinetic energy and the number
// of wall and body collisions it produced.
func (s *Synth) Feed(kinetic float64, hits int) {
	s.mu.Lock()
	s.energy = kinetic
	s.hits += hits
	s.mu.Unlock()
}

// Energy returns the kinetic energy of the last fed frame.
func (s *Synth) Energy() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.energy
}

// Render fills a non-interleaved buffer, one slice per channel. Collisions
// fed since the previous call restart the ping.
func (s *Synth) Render(out [][]float32) {
	if len(out) == 0 {
		return
	}
	s.mu.Lock()
	target := s.energy / (s.energy + energyKnee)
	hits := s.hits
	s.hits = 0
	s.mu.Unlock()

	if hits > 0 {
		s.ping = math.Min(1, s.ping+0.5*float64(hits))
		s.pingT = 0
	}

	const dt = 1.0 / SampleRate
	for i := range out[0] {
		s.level += (target - s.level) * glide
		cutoff := 200 + 1800*s.level

		var l, r float64
		g := 1 / float64(len(chord))
		for j, f := range chord {
			swell := 0.75 + 0.25*math.Sin(0.3*s.t+float64(j))
			l += g * swell * math.Sin(2*math.Pi*f*0.998*s.t)
			r += g * swell * math.Sin(2*math.Pi*f*1.002*s.t)
		}
		l = onePole(&s.lowpass[0], l*s.level, cutoff, dt)
		r = onePole(&s.lowpass[1], r*s.level, cutoff, dt)

		if s.ping > silence {
			p := s.ping * math.Sin(2*math.Pi*pingFreq*s.pingT)
			l += p
			r += p
			s.ping *= pingDecay
			s.pingT += dt
		} else {
			s.ping = 0
		}

		out[0][i] = float32(l * s.Volume)
		if len(out) > 1 {
			out[1][i] = float32(r * s.Volume)
		}
		s.t += dt
	}
}

// onePole is a one-pole low-pass filter; state carries the previous output.
func onePole(state *float64, x, cutoff, dt float64) float64 {
	rc := 1 / (2 * math.Pi * cutoff)
	*state += dt / (rc + dt) * (x - *state)
	return *state
}
