package emulator

import (
	"errors"
	"strings"
	"testing"

	"github.com/Garsondee/oled-pong/internal/config"
	"github.com/Garsondee/oled-pong/internal/pong"
)

type recordingAudio struct {
	events []pong.Event
}

func (r *recordingAudio) OnEvent(e pong.Event) { r.events = append(r.events, e) }

func newTestGame(t *testing.T, audio EventPlayer) *Game {
	t.Helper()
	cfg := config.Default()
	cfg.AI.Seed = 5
	g, err := New(cfg, audio)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	return g
}

func TestNew_LayoutFromScale(t *testing.T) {
	g := newTestGame(t, nil)
	w, h := g.Layout(0, 0)
	if w != 2*bezel+pong.Width*6 || h != 2*bezel+pong.Height*6+statusHeight {
		t.Fatalf("unexpected layout %dx%d", w, h)
	}
	if g.panel.Frames() != 1 {
		t.Fatalf("setup should publish one blank frame, got %d", g.panel.Frames())
	}
}

func TestKnobFromKeys(t *testing.T) {
	g := newTestGame(t, nil)
	start := g.knob.Value()
	g.knobFromKeys(true, false)
	if g.knob.Value() != start-g.cfg.Input.KeyStep {
		t.Fatalf("up should lower the sample, got %d", g.knob.Value())
	}
	g.knobFromKeys(true, true)
	if g.knob.Value() != start-g.cfg.Input.KeyStep {
		t.Fatal("both keys should cancel out")
	}
	for i := 0; i < 100; i++ {
		g.knobFromKeys(false, true)
	}
	if g.knob.Value() != pong.SampleMax {
		t.Fatalf("expected knob pinned at %d, got %d", pong.SampleMax, g.knob.Value())
	}
}

func TestKnobFromCursor_FollowsRow(t *testing.T) {
	g := newTestGame(t, nil)
	for _, row := range []int{0, 5, 12, pong.PaddleTrack} {
		g.knobFromCursor(bezel + row*g.cfg.Display.Scale)
		if got := pong.MapSample(g.knob.Value()); got != row {
			t.Fatalf("row %d: expected paddle at %d, got %d", row, row, got)
		}
	}
	g.knobFromCursor(10000)
	if pong.MapSample(g.knob.Value()) != pong.PaddleTrack {
		t.Fatal("cursor below the panel should pin the paddle to the bottom")
	}
}

func TestTick_PublishesFrameAndStatus(t *testing.T) {
	g := newTestGame(t, nil)
	if err := g.tick(); err != nil {
		t.Fatalf("tick: %v", err)
	}
	if g.panel.Frames() != 2 {
		t.Fatalf("expected 2 frames, got %d", g.panel.Frames())
	}
	if !strings.HasPrefix(g.status, "0 - 0") || !strings.Contains(g.status, "running") {
		t.Fatalf("unexpected status %q", g.status)
	}
}

func TestOnEvent_FlashesAndForwardsToAudio(t *testing.T) {
	audio := &recordingAudio{}
	g := newTestGame(t, audio)
	g.onEvent(pong.Event{Kind: pong.EventPoint, Side: pong.SidePlayer})
	if g.flash == nil {
		t.Fatal("a point should start the flash")
	}
	g.updateFlash(0.1)
	if g.flashLevel <= 0 || g.flashLevel >= 1 {
		t.Fatalf("expected flash partway through, got %.2f", g.flashLevel)
	}
	g.updateFlash(1)
	if g.flash != nil || g.flashLevel != 0 {
		t.Fatalf("flash should finish, got level %.2f", g.flashLevel)
	}
	if len(audio.events) != 1 || audio.events[0].Kind != pong.EventPoint {
		t.Fatalf("expected the point forwarded to audio, got %+v", audio.events)
	}
}

func TestCopyReport(t *testing.T) {
	old := writeClipboard
	defer func() { writeClipboard = old }()

	var copied string
	writeClipboard = func(s string) error {
		copied = s
		return nil
	}
	g := newTestGame(t, nil)
	if err := g.tick(); err != nil {
		t.Fatalf("tick: %v", err)
	}
	g.copyReport()
	if !strings.Contains(copied, "--- Summary at T=001 ---") || !strings.Contains(copied, "#") {
		t.Fatalf("unexpected clipboard text:\n%s", copied)
	}
	if g.status != "report copied" {
		t.Fatalf("unexpected status %q", g.status)
	}

	writeClipboard = func(string) error { return errors.New("no xclip") }
	g.copyReport()
	if g.status != "clipboard unavailable" {
		t.Fatalf("unexpected status %q", g.status)
	}
}

func TestBezelColor_FlashBrightens(t *testing.T) {
	g := newTestGame(t, nil)
	dark := g.bezelColor()
	g.flashLevel = 1
	bright := g.bezelColor()
	if int(bright.R)+int(bright.G)+int(bright.B) <= int(dark.R)+int(dark.G)+int(dark.B) {
		t.Fatalf("flash should brighten the bezel: %v -> %v", dark, bright)
	}
}
