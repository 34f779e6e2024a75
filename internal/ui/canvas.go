package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/chewxy/math32"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-galaxy/internal/fx"
)

// Exposure controls how quickly accumulated light saturates.
const exposure = 1.6

// glyphRamp maps tone-mapped brightness to characters, dimmest first.
var glyphRamp = []rune(" ·∙:+*✦✶█")

// Canvas is a terminal-cell framebuffer. Particles add light to cells;
// solid glyphs (bodies, rings, labels) sit on top of the light.
type Canvas struct {
	w, h  int
	light []float32 // r,g,b per cell
	glyph []rune
	tint  []colorful.Color
}

// NewCanvas allocates a w×h canvas.
func NewCanvas(w, h int) *Canvas {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Canvas{
		w:     w,
		h:     h,
		light: make([]float32, w*h*3),
		glyph: make([]rune, w*h),
		tint:  make([]colorful.Color, w*h),
	}
}

// Size returns the canvas dimensions.
func (c *Canvas) Size() (int, int) {
	return c.w, c.h
}

func (c *Canvas) inside(x, y int) bool {
	return x >= 0 && x < c.w && y >= 0 && y < c.h
}

// Add accumulates light in cell (x, y).
func (c *Canvas) Add(x, y int, r, g, b float32) {
	if !c.inside(x, y) {
		return
	}
	i := (y*c.w + x) * 3
	c.light[i] += r
	c.light[i+1] += g
	c.light[i+2] += b
}

// Set places a solid glyph, replacing whatever light the cell holds.
func (c *Canvas) Set(x, y int, ch rune, col colorful.Color) {
	if !c.inside(x, y) {
		return
	}
	i := y*c.w + x
	c.glyph[i] = ch
	c.tint[i] = col
}

// SetIfEmpty places a glyph only over an unlit, unset cell.
func (c *Canvas) SetIfEmpty(x, y int, ch rune, col colorful.Color) {
	if !c.inside(x, y) {
		return
	}
	i := y*c.w + x
	if c.glyph[i] != 0 || c.light[i*3]+c.light[i*3+1]+c.light[i*3+2] > 0 {
		return
	}
	c.glyph[i] = ch
	c.tint[i] = col
}

// Glyph returns the solid glyph at (x, y), or 0.
func (c *Canvas) Glyph(x, y int) rune {
	if !c.inside(x, y) {
		return 0
	}
	return c.glyph[y*c.w+x]
}

// WriteText writes s starting at (x, y), clipped to the canvas.
func (c *Canvas) WriteText(x, y int, s string, col colorful.Color) {
	for i, r := range []rune(s) {
		c.Set(x+i, y, r, col)
	}
}

func luminance(r, g, b float32) float32 {
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// Bloom spreads light above the threshold into neighbouring cells. The
// radius sets the number of 3×3 blur passes and strength scales the glow
// added back.
func (c *Canvas) Bloom(b fx.Bloom) {
	if b.Strength <= 0 || c.w == 0 || c.h == 0 {
		return
	}

	// Bright pass
	bright := make([]float32, len(c.light))
	threshold := float32(b.Threshold)
	for i := 0; i < len(c.light); i += 3 {
		r, g, bl := c.light[i], c.light[i+1], c.light[i+2]
		l := luminance(r, g, bl)
		if l <= threshold || l == 0 {
			continue
		}
		k := (l - threshold) / l
		bright[i] = r * k
		bright[i+1] = g * k
		bright[i+2] = bl * k
	}

	passes := 1 + int(b.Radius*4)
	tmp := make([]float32, len(bright))
	for p := 0; p < passes; p++ {
		c.boxBlur(bright, tmp)
		bright, tmp = tmp, bright
	}

	s := float32(b.Strength)
	for i := range c.light {
		c.light[i] += bright[i] * s
	}
}

// boxBlur writes a 3×3 mean of src into dst, treating off-canvas cells as
// dark.
func (c *Canvas) boxBlur(src, dst []float32) {
	for y := 0; y < c.h; y++ {
		for x := 0; x < c.w; x++ {
			var r, g, b float32
			for dy := -1; dy <= 1; dy++ {
				yy := y + dy
				if yy < 0 || yy >= c.h {
					continue
				}
				for dx := -1; dx <= 1; dx++ {
					xx := x + dx
					if xx < 0 || xx >= c.w {
						continue
					}
					j := (yy*c.w + xx) * 3
					r += src[j]
					g += src[j+1]
					b += src[j+2]
				}
			}
			i := (y*c.w + x) * 3
			dst[i] = r / 9
			dst[i+1] = g / 9
			dst[i+2] = b / 9
		}
	}
}

// toneMap compresses unbounded light into [0,1).
func toneMap(v float32) float32 {
	return 1 - math32.Exp(-v*exposure)
}

// cell resolves the glyph and colour shown at index i.
func (c *Canvas) cell(i int) (rune, colorful.Color) {
	if ch := c.glyph[i]; ch != 0 {
		return ch, c.tint[i]
	}
	r, g, b := c.light[i*3], c.light[i*3+1], c.light[i*3+2]
	l := toneMap(luminance(r, g, b))
	idx := int(l * float32(len(glyphRamp)))
	if idx >= len(glyphRamp) {
		idx = len(glyphRamp) - 1
	}
	if idx <= 0 {
		return ' ', colorful.Color{}
	}
	col := colorful.Color{
		R: float64(toneMap(r)),
		G: float64(toneMap(g)),
		B: float64(toneMap(b)),
	}
	// Normalise so dim cells keep their hue; the glyph carries brightness.
	if m := max(col.R, col.G, col.B); m > 0 {
		k := 0.35 + 0.65*float64(l)
		col = colorful.Color{R: col.R / m * k, G: col.G / m * k, B: col.B / m * k}
	}
	return glyphRamp[idx], col.Clamped()
}

// Render returns the canvas as text. With color set, runs of cells sharing
// a colour are styled together to keep escape sequences short.
func (c *Canvas) Render(color bool) string {
	var b strings.Builder
	var run strings.Builder

	for y := 0; y < c.h; y++ {
		runHex := ""
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if runHex == "" {
				b.WriteString(run.String())
			} else {
				b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(runHex)).Render(run.String()))
			}
			run.Reset()
		}

		for x := 0; x < c.w; x++ {
			ch, col := c.cell(y*c.w + x)
			hex := ""
			if color && ch != ' ' {
				hex = col.Hex()
			}
			if hex != runHex {
				flush()
				runHex = hex
			}
			run.WriteRune(ch)
		}
		flush()
		if y < c.h-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
