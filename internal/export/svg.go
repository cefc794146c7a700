package export

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/ballsim/internal/arena"
	"github.com/san-kum/ballsim/internal/sim"
)

const svgHeader = `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
`

// FrameToSVG renders one frame's draw commands on a white background, in
// command order so later primitives paint over earlier ones.
func FrameToSVG(cmds []arena.DrawCmd, width, height float64) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, svgHeader, width, height, width, height)
	sb.WriteString(`<rect width="100%" height="100%" fill="#ffffff"/>` + "\n")

	for _, c := range cmds {
		fill := hex(c.Color)
		switch c.Kind {
		case arena.DrawRect:
			fmt.Fprintf(&sb, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
				c.Pos.X, c.Pos.Y, c.W, c.H, fill)
		case arena.DrawCircle, arena.DrawDot:
			fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>`+"\n",
				c.Pos.X, c.Pos.Y, c.Radius, fill)
		case arena.DrawText:
			// raylib places text by its top-left corner; SVG uses the baseline.
			fmt.Fprintf(&sb, `<text x="%.1f" y="%.1f" font-family="monospace" font-size="20" fill="%s">%s</text>`+"\n",
				c.Pos.X, c.Pos.Y+16, fill, html.EscapeString(c.Text))
		}
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

// TrajectoryToSVG draws the primary body's recorded path inside a width x
// height arena outline. Arena coordinates are used as-is.
func TrajectoryToSVG(samples []sim.Sample, width, height float64, stroke colorful.Color) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, svgHeader, width, height, width, height)
	sb.WriteString(`<rect width="100%" height="100%" fill="#0a0a0a"/>` + "\n")

	if len(samples) >= 2 {
		fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="`, hex(stroke))
		for i, s := range samples {
			if i == 0 {
				fmt.Fprintf(&sb, "M%.1f,%.1f", s.X, s.Y)
				continue
			}
			fmt.Fprintf(&sb, " L%.1f,%.1f", s.X, s.Y)
		}
		sb.WriteString(`"/>` + "\n")

		last := samples[len(samples)-1]
		fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>`+"\n",
			last.X, last.Y, arena.BaseRadius, hex(stroke))
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

// WriteSVG writes svg to w.
func WriteSVG(w io.Writer, svg string) error {
	_, err := io.WriteString(w, svg)
	return err
}

func hex(c colorful.Color) string {
	return c.Clamped().Hex()
}
