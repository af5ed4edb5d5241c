package oled

import (
	"errors"
	"image/color"
	"strings"
	"testing"

	"github.com/Garsondee/oled-pong/internal/pong"
)

func started(t *testing.T, opts ...Option) *Framebuffer {
	t.Helper()
	f := NewPanel(opts...)
	if err := f.Begin(pong.DefaultDisplayConfig); err != nil {
		t.Fatalf("begin: %v", err)
	}
	return f
}

func TestDisplay_BeforeBegin(t *testing.T) {
	f := NewPanel()
	if err := f.Display(); !errors.Is(err, ErrNotStarted) {
		t.Fatalf("expected ErrNotStarted, got %v", err)
	}
}

func TestFillRect_PageLayout(t *testing.T) {
	var got []byte
	f := started(t, WithFlush(func(buf []byte) error {
		got = append([]byte(nil), buf...)
		return nil
	}))
	f.FillRect(3, 6, 1, 4, pong.White) // rows 6,7 on page 0 and 8,9 on page 1
	if err := f.Display(); err != nil {
		t.Fatalf("display: %v", err)
	}
	if len(got) != pong.Width*pong.Height/8 {
		t.Fatalf("expected %d bytes, got %d", pong.Width*pong.Height/8, len(got))
	}
	if got[3] != 0xC0 {
		t.Fatalf("expected page 0 byte 0xC0, got 0x%02X", got[3])
	}
	if got[pong.Width+3] != 0x03 {
		t.Fatalf("expected page 1 byte 0x03, got 0x%02X", got[pong.Width+3])
	}
}

func TestFillRect_ClipsAndInverts(t *testing.T) {
	f := started(t)
	f.FillRect(-5, -5, 10, 10, pong.White)
	f.FillRect(120, 28, 20, 20, pong.White)
	f.FillRect(0, 0, 2, 2, pong.Inverse)
	f.FillRect(2, 2, 1, 1, pong.Black)
	if err := f.Display(); err != nil {
		t.Fatalf("display: %v", err)
	}
	if f.Pixel(0, 0) || f.Pixel(1, 1) {
		t.Fatal("inverse should have cleared the corner")
	}
	if !f.Pixel(4, 4) || f.Pixel(5, 5) {
		t.Fatal("clipped rect should cover exactly [0,5)x[0,5)")
	}
	if f.Pixel(2, 2) {
		t.Fatal("black should clear a pixel")
	}
	if !f.Pixel(127, 31) || f.Pixel(128, 31) {
		t.Fatal("rect should be clipped at the bottom-right edge")
	}
}

func TestDisplay_DoubleBuffered(t *testing.T) {
	f := started(t)
	f.FillRect(10, 10, 1, 1, pong.White)
	if f.Pixel(10, 10) {
		t.Fatal("drawing must not be visible before Display")
	}
	if err := f.Display(); err != nil {
		t.Fatalf("display: %v", err)
	}
	f.ClearDisplay()
	if !f.Pixel(10, 10) {
		t.Fatal("clearing the back buffer must not blank the published frame")
	}
	if f.Frames() != 1 {
		t.Fatalf("expected 1 frame, got %d", f.Frames())
	}
}

func TestDisplay_WrapsFlushError(t *testing.T) {
	bus := errors.New("bus error")
	f := started(t, WithFlush(func([]byte) error { return bus }))
	if err := f.Display(); !errors.Is(err, bus) {
		t.Fatalf("expected wrapped bus error, got %v", err)
	}
}

func TestPrint_DrawsInsideCellAndAdvances(t *testing.T) {
	f := started(t)
	f.SetCursor(10, 2)
	f.Print(8)
	if err := f.Display(); err != nil {
		t.Fatalf("display: %v", err)
	}
	lit := 0
	for y := 0; y < pong.Height; y++ {
		for x := 0; x < pong.Width; x++ {
			if !f.Pixel(x, y) {
				continue
			}
			lit++
			if x < 10 || x >= 17 || y < 2 || y >= 15 {
				t.Fatalf("glyph pixel (%d,%d) outside 7x13 cell at (10,2)", x, y)
			}
		}
	}
	if lit == 0 {
		t.Fatal("expected '8' to light some pixels")
	}
	if f.cursorX != 17 {
		t.Fatalf("expected cursor to advance to 17, got %d", f.cursorX)
	}
}

func TestPrint_ScaledAndNewline(t *testing.T) {
	f := started(t)
	f.SetTextSize(2)
	f.Print("a\nb")
	if f.cursorX != 14 || f.cursorY != 26 {
		t.Fatalf("expected cursor (14,26), got (%d,%d)", f.cursorX, f.cursorY)
	}
	f.SetTextSize(0)
	if f.textSize != 1 {
		t.Fatalf("text size should floor at 1, got %d", f.textSize)
	}
}

func TestTextBounds(t *testing.T) {
	f := NewPanel()
	w, h := f.TextBounds(pong.WinText, 2)
	if w != 7*7*2 || h != 13*2 {
		t.Fatalf("expected 98x26, got %dx%d", w, h)
	}
}

func TestRGBAAndString(t *testing.T) {
	f := started(t)
	f.FillRect(0, 0, 1, 1, pong.White)
	if err := f.Display(); err != nil {
		t.Fatalf("display: %v", err)
	}
	on := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	off := color.RGBA{A: 255}
	img := f.RGBA(on, off)
	if img.RGBAAt(0, 0) != on || img.RGBAAt(1, 0) != off {
		t.Fatalf("unexpected pixels %v %v", img.RGBAAt(0, 0), img.RGBAAt(1, 0))
	}
	rows := strings.Split(strings.TrimSuffix(f.String(), "\n"), "\n")
	if len(rows) != pong.Height || len(rows[0]) != pong.Width {
		t.Fatalf("expected %dx%d ascii, got %dx%d", pong.Width, pong.Height, len(rows[0]), len(rows))
	}
	if rows[0][0] != '#' || rows[0][1] != '.' {
		t.Fatalf("unexpected first row %q", rows[0][:4])
	}
}

func TestSession_RendersOntoPanel(t *testing.T) {
	f := NewPanel()
	s := pong.NewSession(f, pong.FixedInput(pong.SampleMax), pong.WithSeed(3))
	if err := s.Setup(pong.DefaultDisplayConfig); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if _, err := s.Tick(); err != nil {
		t.Fatalf("tick: %v", err)
	}
	// Player paddle at the bottom of its track, ball after one move.
	if !f.Pixel(0, pong.PaddleTrack) || !f.Pixel(1, pong.PaddleTrack+pong.PaddleHeight-1) {
		t.Fatal("expected player paddle on the left edge")
	}
	if !f.Pixel(s.Ball.X(), s.Ball.Y()) {
		t.Fatalf("expected ball pixel at (%d,%d)", s.Ball.X(), s.Ball.Y())
	}
	if !f.Pixel(pong.Width/2, 28) {
		t.Fatal("expected centre line dash")
	}
}
