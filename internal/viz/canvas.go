package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille cells hold 2x4 dots:
//
//	1 4
//	2 5
//	3 6
//	7 8
const brailleBlank = 0x2800

var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a Braille dot grid of Width x Height cells, i.e. Width*2 x
// Height*4 dots. Each cell keeps the color of the last shape drawn into it.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Colors        [][]lipgloss.Color
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Colors: make([][]lipgloss.Color, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Colors[i] = make([]lipgloss.Color, w)
	}
	c.Clear()
	return c
}

// Dots returns the canvas size in dots.
func (c *Canvas) Dots() (int, int) { return c.Width * 2, c.Height * 4 }

// Set lights the dot at (x, y) with color col. Out of range dots are ignored.
func (c *Canvas) Set(x, y int, col lipgloss.Color) {
	if x < 0 || y < 0 {
		return
	}
	row, cell := y/4, x/2
	if cell >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][cell] |= pixelMap[y%4][x%2]
	if col != "" {
		c.Colors[row][cell] = col
	}
}

// Lit reports whether the dot at (x, y) is set.
func (c *Canvas) Lit(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&pixelMap[y%4][x%2] != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
			c.Colors[i][j] = ""
		}
	}
}

// FillRect lights every dot of the w x h rectangle whose top-left corner is
// (x, y).
func (c *Canvas) FillRect(x, y, w, h int, col lipgloss.Color) {
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			c.Set(x+dx, y+dy, col)
		}
	}
}

// Ellipse draws the outline of an axis-aligned ellipse with radii rx and ry:
// every dot inside it with a 4-neighbour outside.
func (c *Canvas) Ellipse(cx, cy, rx, ry int, col lipgloss.Color) {
	if rx <= 0 || ry <= 0 {
		c.Set(cx, cy, col)
		return
	}
	inside := func(dx, dy int) bool {
		return float64(dx*dx)/float64(rx*rx)+float64(dy*dy)/float64(ry*ry) <= 1
	}
	for dy := -ry; dy <= ry; dy++ {
		for dx := -rx; dx <= rx; dx++ {
			if !inside(dx, dy) {
				continue
			}
			if !inside(dx+1, dy) || !inside(dx-1, dy) || !inside(dx, dy+1) || !inside(dx, dy-1) {
				c.Set(cx+dx, cy+dy, col)
			}
		}
	}
}

// FillCircle lights every dot within r of (cx, cy).
func (c *Canvas) FillCircle(cx, cy, r int, col lipgloss.Color) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				c.Set(cx+dx, cy+dy, col)
			}
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, col lipgloss.Color) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// String returns the canvas without color.
func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// Render returns the canvas with each cell styled in its color. Runs of
// equally colored cells share one style.
func (c *Canvas) Render() string {
	var b strings.Builder
	for i, row := range c.Grid {
		start := 0
		for j := 1; j <= len(row); j++ {
			if j < len(row) && c.Colors[i][j] == c.Colors[i][start] {
				continue
			}
			run := string(row[start:j])
			if col := c.Colors[i][start]; col != "" {
				run = lipgloss.NewStyle().Foreground(col).Render(run)
			}
			b.WriteString(run)
			start = j
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
