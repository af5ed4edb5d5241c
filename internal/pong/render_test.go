package pong

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// recordingDisplay logs every call as a short string.
type recordingDisplay struct {
	ops      []string
	flushErr error
}

func (d *recordingDisplay) Begin(cfg DisplayConfig) error {
	d.ops = append(d.ops, fmt.Sprintf("begin 0x%02X", cfg.Address))
	return nil
}

func (d *recordingDisplay) Display() error {
	d.ops = append(d.ops, "display")
	return d.flushErr
}

func (d *recordingDisplay) ClearDisplay() { d.ops = append(d.ops, "clear") }

func (d *recordingDisplay) FillRect(x, y, w, h int, c Color) {
	d.ops = append(d.ops, fmt.Sprintf("rect %d,%d %dx%d %s", x, y, w, h, c))
}

func (d *recordingDisplay) SetCursor(x, y int)   { d.ops = append(d.ops, fmt.Sprintf("cursor %d,%d", x, y)) }
func (d *recordingDisplay) SetTextSize(n int)    { d.ops = append(d.ops, fmt.Sprintf("size %d", n)) }
func (d *recordingDisplay) SetTextColor(c Color) { d.ops = append(d.ops, "color "+c.String()) }
func (d *recordingDisplay) Print(v any)          { d.ops = append(d.ops, fmt.Sprintf("print %v", v)) }

func (d *recordingDisplay) has(op string) bool {
	for _, o := range d.ops {
		if o == op {
			return true
		}
	}
	return false
}

// measuringDisplay adds fixed 6x8-per-size text metrics.
type measuringDisplay struct {
	recordingDisplay
}

func (d *measuringDisplay) TextBounds(s string, size int) (int, int) {
	return len(s) * 6 * size, 8 * size
}

func TestSetup_BeginsClearsAndFlushes(t *testing.T) {
	d := &recordingDisplay{}
	s := NewSession(d, nil)
	if err := s.Setup(DefaultDisplayConfig); err != nil {
		t.Fatalf("setup: %v", err)
	}
	want := []string{"begin 0x3C", "clear", "display"}
	if strings.Join(d.ops, "|") != strings.Join(want, "|") {
		t.Fatalf("expected %v, got %v", want, d.ops)
	}
}

func TestRender_DrawsScene(t *testing.T) {
	d := &recordingDisplay{}
	tm := NewTestMatch(WithDisplay(d), WithBall(40, 10, 4, 2), WithPlayerPaddle(5), WithCPUPaddle(12))
	if err := tm.Session.Render(); err != nil {
		t.Fatalf("render: %v", err)
	}
	if d.ops[0] != "clear" || d.ops[len(d.ops)-1] != "display" {
		t.Fatalf("expected clear ... display, got %v", d.ops)
	}
	for _, op := range []string{
		"rect 0,5 2x9 white",
		"rect 126,12 2x9 white",
		"rect 40,10 2x2 white",
		"rect 64,0 1x2 white",
		"rect 64,28 1x2 white",
		"cursor 32,0",
		"cursor 96,0",
		"print 0",
	} {
		if !d.has(op) {
			t.Fatalf("missing %q in %v", op, d.ops)
		}
	}
	for _, o := range d.ops {
		if strings.HasPrefix(o, "print ") && o != "print 0" {
			t.Fatalf("unexpected banner while running: %q", o)
		}
	}
}

func TestRender_WinnerBannerCentred(t *testing.T) {
	d := &measuringDisplay{}
	tm := NewTestMatch(WithDisplay(d), WithScores(MaxScore-1, 0), WithBall(127, 16, 4, 2))
	if _, err := tm.Session.Tick(); err != nil {
		t.Fatalf("tick: %v", err)
	}
	// "Winner!" is 7 glyphs of 12x16 at size 2.
	for _, op := range []string{"size 2", "cursor 22,8", "print " + WinText, "rect 20,6 88x20 black"} {
		if !d.has(op) {
			t.Fatalf("missing %q in %v", op, d.ops)
		}
	}
}

func TestRender_LoserBannerWithoutMetrics(t *testing.T) {
	d := &recordingDisplay{}
	tm := NewTestMatch(WithDisplay(d), WithScores(0, MaxScore-1), WithBall(-4, 16, -4, 2))
	if _, err := tm.Session.Tick(); err != nil {
		t.Fatalf("tick: %v", err)
	}
	if !d.has("print "+LoseText) || !d.has("cursor 10,8") {
		t.Fatalf("expected loser banner at fixed offset, got %v", d.ops)
	}

	// The scene keeps rendering after the match ends.
	d.ops = nil
	if _, err := tm.Session.Tick(); err != nil {
		t.Fatalf("tick: %v", err)
	}
	if !d.has("print "+LoseText) || !d.has("rect 0,0 2x9 white") {
		t.Fatalf("expected full scene plus banner on later ticks, got %v", d.ops)
	}
}

func TestTick_WrapsFlushError(t *testing.T) {
	flushErr := errors.New("i2c nack")
	d := &recordingDisplay{flushErr: flushErr}
	s := NewSession(d, nil)
	_, err := s.Tick()
	if !errors.Is(err, flushErr) {
		t.Fatalf("expected wrapped flush error, got %v", err)
	}
}
