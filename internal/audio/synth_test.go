package audio

import "testing"

func buffer() [][]float32 {
	return [][]float32{make([]float32, BufferSize), make([]float32, BufferSize)}
}

func peak(out [][]float32) float32 {
	var m float32
	for _, ch := range out {
		for _, v := range ch {
			if v < 0 {
				v = -v
			}
			if v > m {
				m = v
			}
		}
	}
	return m
}

func TestSynth_StillArenaIsSilent(t *testing.T) {
	s := NewSynth()
	s.Feed(0, 0)
	out := buffer()
	for i := 0; i < 10; i++ {
		s.Render(out)
	}
	if p := peak(out); p != 0 {
		t.Errorf("expected silence, peak %v", p)
	}
}

func TestSynth_EnergyRaisesDrone(t *testing.T) {
	s := NewSynth()
	s.Feed(1e6, 0)
	if s.Energy() != 1e6 {
		t.Errorf("Energy() = %v", s.Energy())
	}

	out := buffer()
	s.Render(out)
	first := peak(out)
	for i := 0; i < 20; i++ {
		s.Render(out)
	}
	if first == 0 || peak(out) <= first {
		t.Errorf("drone should swell: first %v, later %v", first, peak(out))
	}
	if peak(out) > 1 {
		t.Errorf("output clipped: %v", peak(out))
	}
}

func TestSynth_CollisionPingDecays(t *testing.T) {
	s := NewSynth()
	s.Feed(0, 2)
	out := buffer()
	s.Render(out)
	if peak(out) == 0 {
		t.Fatal("collision produced no sound")
	}

	s.Feed(0, 0)
	for i := 0; i < 100; i++ {
		s.Render(out)
	}
	if p := peak(out); p != 0 {
		t.Errorf("ping should die out, peak %v", p)
	}
}

func TestSynth_MonoBuffer(t *testing.T) {
	s := NewSynth()
	s.Feed(0, 1)
	out := [][]float32{make([]float32, 64)}
	s.Render(out)
	if peak(out) == 0 {
		t.Error("mono buffer left silent")
	}
	s.Render(nil)
}
