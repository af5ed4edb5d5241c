// Package oled is an in-memory SSD1306-style monochrome panel. It implements
// pong.Display over a 1bpp page buffer laid out exactly as the controller's
// GDDRAM: one byte covers eight vertical pixels, pages run top to bottom.
package oled

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/Garsondee/oled-pong/internal/pong"
)

// ErrNotStarted is returned by Display before Begin has been called.
var ErrNotStarted = errors.New("oled: display not started")

// FlushFunc receives the page buffer on every Display call. The slice is
// owned by the framebuffer and is only valid for the duration of the call.
type FlushFunc func(buf []byte) error

// Framebuffer is a double-buffered monochrome panel. Drawing goes to the back
// buffer; Display copies it to the front buffer and hands it to the flush
// hook. Not safe for concurrent use.
type Framebuffer struct {
	w, h  int
	back  []byte
	front []byte

	cfg    pong.DisplayConfig
	begun  bool
	flush  FlushFunc
	frames int

	face      font.Face
	cursorX   int
	cursorY   int
	textSize  int
	textColor pong.Color
}

// Option configures a Framebuffer.
type Option func(*Framebuffer)

// WithFlush sets the hook called by Display.
func WithFlush(fn FlushFunc) Option {
	return func(f *Framebuffer) { f.flush = fn }
}

// WithFace replaces the text face. The default is basicfont.Face7x13.
func WithFace(face font.Face) Option {
	return func(f *Framebuffer) { f.face = face }
}

// New returns a w x h panel. h is rounded up to a whole number of pages.
func New(w, h int, opts ...Option) *Framebuffer {
	pages := (h + 7) / 8
	f := &Framebuffer{
		w:         w,
		h:         pages * 8,
		back:      make([]byte, w*pages),
		front:     make([]byte, w*pages),
		face:      basicfont.Face7x13,
		textSize:  1,
		textColor: pong.White,
	}
	for _, o := range opts {
		o(f)
	}
	return f
}

// NewPanel returns a framebuffer the size of the playfield.
func NewPanel(opts ...Option) *Framebuffer {
	return New(pong.Width, pong.Height, opts...)
}

func (f *Framebuffer) Begin(cfg pong.DisplayConfig) error {
	f.cfg = cfg
	f.begun = true
	f.ClearDisplay()
	return nil
}

// Config returns the configuration passed to Begin.
func (f *Framebuffer) Config() pong.DisplayConfig { return f.cfg }

// Display publishes the back buffer.
func (f *Framebuffer) Display() error {
	if !f.begun {
		return ErrNotStarted
	}
	copy(f.front, f.back)
	f.frames++
	if f.flush == nil {
		return nil
	}
	if err := f.flush(f.front); err != nil {
		return fmt.Errorf("oled: flush frame %d: %w", f.frames, err)
	}
	return nil
}

// Frames returns how many times Display has published a frame.
func (f *Framebuffer) Frames() int { return f.frames }

func (f *Framebuffer) ClearDisplay() {
	for i := range f.back {
		f.back[i] = 0
	}
	f.cursorX, f.cursorY = 0, 0
}

// FillRect draws a filled rectangle, clipped to the panel.
func (f *Framebuffer) FillRect(x, y, w, h int, c pong.Color) {
	x0, y0 := max(x, 0), max(y, 0)
	x1, y1 := min(x+w, f.w), min(y+h, f.h)
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			f.set(px, py, c)
		}
	}
}

func (f *Framebuffer) set(x, y int, c pong.Color) {
	i := x + (y/8)*f.w
	bit := byte(1) << uint(y%8)
	switch c {
	case pong.White:
		f.back[i] |= bit
	case pong.Black:
		f.back[i] &^= bit
	case pong.Inverse:
		f.back[i] ^= bit
	}
}

func (f *Framebuffer) SetCursor(x, y int) { f.cursorX, f.cursorY = x, y }

// SetTextSize sets the integer glyph scale; values below 1 become 1.
func (f *Framebuffer) SetTextSize(n int) { f.textSize = max(n, 1) }

func (f *Framebuffer) SetTextColor(c pong.Color) { f.textColor = c }

// Print draws v formatted with fmt.Sprint at the cursor and advances it.
// A newline returns to column 0 one text line down.
func (f *Framebuffer) Print(v any) {
	for _, r := range fmt.Sprint(v) {
		switch r {
		case '\n':
			f.cursorX = 0
			f.cursorY += f.lineHeight() * f.textSize
		case '\r':
		default:
			f.cursorX += f.drawGlyph(f.cursorX, f.cursorY, r)
		}
	}
}

// TextBounds returns the pixel size of s at the given text size.
func (f *Framebuffer) TextBounds(s string, size int) (int, int) {
	size = max(size, 1)
	w := 0
	for _, r := range s {
		w += f.advance(r) * size
	}
	return w, f.lineHeight() * size
}

// drawGlyph renders r with its top-left cell corner at (x, y) and returns
// the scaled advance.
func (f *Framebuffer) drawGlyph(x, y int, r rune) int {
	ascent := f.face.Metrics().Ascent.Ceil()
	dr, mask, mp, adv, ok := f.face.Glyph(fixed.P(0, ascent), r)
	if !ok {
		dr, mask, mp, adv, _ = f.face.Glyph(fixed.P(0, ascent), '?')
	}
	n := f.textSize
	for gy := dr.Min.Y; gy < dr.Max.Y; gy++ {
		for gx := dr.Min.X; gx < dr.Max.X; gx++ {
			_, _, _, a := mask.At(mp.X+gx-dr.Min.X, mp.Y+gy-dr.Min.Y).RGBA()
			if a < 0x8000 {
				continue
			}
			f.FillRect(x+gx*n, y+gy*n, n, n, f.textColor)
		}
	}
	return adv.Ceil() * n
}

func (f *Framebuffer) advance(r rune) int {
	adv, ok := f.face.GlyphAdvance(r)
	if !ok {
		adv, _ = f.face.GlyphAdvance('?')
	}
	return adv.Ceil()
}

func (f *Framebuffer) lineHeight() int {
	return f.face.Metrics().Height.Ceil()
}

func (f *Framebuffer) Bounds() image.Rectangle { return image.Rect(0, 0, f.w, f.h) }

// Pixel reports whether (x, y) is lit in the last published frame.
func (f *Framebuffer) Pixel(x, y int) bool {
	if x < 0 || y < 0 || x >= f.w || y >= f.h {
		return false
	}
	return f.front[x+(y/8)*f.w]&(1<<uint(y%8)) != 0
}

// Bytes returns a copy of the last published page buffer.
func (f *Framebuffer) Bytes() []byte {
	out := make([]byte, len(f.front))
	copy(out, f.front)
	return out
}

// RGBA renders the last published frame with the given on/off colours.
func (f *Framebuffer) RGBA(on, off color.RGBA) *image.RGBA {
	img := image.NewRGBA(f.Bounds())
	f.DrawInto(img.Pix, on, off)
	return img
}

// DrawInto writes the last published frame as RGBA bytes into pix, which
// must hold at least w*h*4 bytes.
func (f *Framebuffer) DrawInto(pix []byte, on, off color.RGBA) {
	for y := 0; y < f.h; y++ {
		for x := 0; x < f.w; x++ {
			c := off
			if f.Pixel(x, y) {
				c = on
			}
			i := (y*f.w + x) * 4
			pix[i+0] = c.R
			pix[i+1] = c.G
			pix[i+2] = c.B
			pix[i+3] = c.A
		}
	}
}

// String renders the last published frame as ASCII, '#' for lit pixels.
func (f *Framebuffer) String() string {
	var sb strings.Builder
	sb.Grow((f.w + 1) * f.h)
	for y := 0; y < f.h; y++ {
		for x := 0; x < f.w; x++ {
			if f.Pixel(x, y) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
