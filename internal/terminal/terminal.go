// Package terminal shows the OLED panel in a terminal, two pixel rows per
// character cell, and reads the knob from the keyboard.
package terminal

import (
	"context"
	"fmt"
	"image/color"
	"time"

	"github.com/gdamore/tcell/v2"

	"fortio.org/log"

	"github.com/Garsondee/oled-pong/internal/oled"
	"github.com/Garsondee/oled-pong/internal/pong"
	"github.com/Garsondee/oled-pong/internal/pot"
)

// upperHalf paints the top pixel in the foreground colour and the bottom
// pixel in the background colour.
const upperHalf = '▀'

// View draws a framebuffer onto a tcell screen and turns key presses into
// knob movements.
type View struct {
	screen tcell.Screen
	panel  *oled.Framebuffer
	knob   *pot.Knob
	step   int
	on     tcell.Color
	off    tcell.Color
	status string
}

// NewView wires a screen to a panel and knob. step is the knob travel per
// key press.
func NewView(screen tcell.Screen, panel *oled.Framebuffer, knob *pot.Knob, step int, on, off color.RGBA) *View {
	return &View{
		screen: screen,
		panel:  panel,
		knob:   knob,
		step:   step,
		on:     tcell.NewRGBColor(int32(on.R), int32(on.G), int32(on.B)),
		off:    tcell.NewRGBColor(int32(off.R), int32(off.G), int32(off.B)),
	}
}

// SetStatus sets the line shown under the panel.
func (v *View) SetStatus(s string) { v.status = s }

// Draw paints the last published frame and the status line, then shows it.
func (v *View) Draw() {
	v.screen.Clear()
	b := v.panel.Bounds()
	for y := 0; y < b.Dy(); y += 2 {
		for x := 0; x < b.Dx(); x++ {
			fg, bg := v.off, v.off
			if v.panel.Pixel(x, y) {
				fg = v.on
			}
			if v.panel.Pixel(x, y+1) {
				bg = v.on
			}
			v.screen.SetContent(x, y/2, upperHalf, nil, tcell.StyleDefault.Foreground(fg).Background(bg))
		}
	}
	row := b.Dy()/2 + 1
	for i, r := range []rune(v.status) {
		v.screen.SetContent(i, row, r, nil, tcell.StyleDefault)
	}
	v.screen.Show()
}

// HandleEvent applies one terminal event. It returns true when the user
// asked to quit.
func (v *View) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyUp:
			v.knob.Turn(-v.step)
		case tcell.KeyDown:
			v.knob.Turn(v.step)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return true
			case 'w', 'k':
				v.knob.Turn(-v.step)
			case 's', 'j':
				v.knob.Turn(v.step)
			}
		}
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return false
}

// Run drives session at tps ticks per second until ctx is done or the user
// quits. Terminal events are polled on their own goroutine and handed to the
// tick loop over a channel; the session is only touched by the loop.
func Run(ctx context.Context, v *View, session *pong.Session, tps int) error {
	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(tps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if v.HandleEvent(ev) {
				log.Infof("Quit at tick %d", session.Ticks())
				return nil
			}
		case <-ticker.C:
			if _, err := session.Tick(); err != nil {
				return fmt.Errorf("terminal tick: %w", err)
			}
			v.SetStatus(fmt.Sprintf("player %d  cpu %d  %s  [w/s or arrows, q quits]",
				session.Player.Score.Value(), session.CPU.Score.Value(), session.State()))
			v.Draw()
		}
	}
}
