package arena

// TrailLength bounds the number of remembered positions per body.
const TrailLength = 20

// Trail is a fixed-capacity FIFO of recent positions, oldest first.
type Trail struct {
	buf   [TrailLength]Vec2
	start int
	n     int
}

func (t *Trail) Push(p Vec2) {
	if t.n < TrailLength {
		t.buf[(t.start+t.n)%TrailLength] = p
		t.n++
		return
	}
	t.buf[t.start] = p
	t.start = (t.start + 1) % TrailLength
}

func (t *Trail) Len() int { return t.n }

// Points returns a copy of the trail, oldest first.
func (t *Trail) Points() []Vec2 {
	out := make([]Vec2, t.n)
	for i := range out {
		out[i] = t.buf[(t.start+i)%TrailLength]
	}
	return out
}
