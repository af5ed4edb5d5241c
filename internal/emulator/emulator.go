// Package emulator runs the game in a desktop window that stands in for the
// OLED panel and the potentiometer.
package emulator

import (
	"fmt"
	"image/color"
	"math/rand"
	"time"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"fortio.org/log"

	"github.com/Garsondee/oled-pong/internal/config"
	"github.com/Garsondee/oled-pong/internal/oled"
	"github.com/Garsondee/oled-pong/internal/pong"
	"github.com/Garsondee/oled-pong/internal/pot"
)

// bezel is the gap around the panel; statusHeight is the text strip below it.
const (
	bezel        = 16
	statusHeight = 16
)

// writeClipboard is swapped out by tests.
var writeClipboard = clipboard.WriteAll

// EventPlayer receives game events for audio. *sound.Manager satisfies it.
type EventPlayer interface {
	OnEvent(e pong.Event)
}

// Game implements ebiten.Game around one pong.Session. Update and Draw run on
// ebiten's game goroutine, which is the only goroutine touching the session.
type Game struct {
	cfg     config.Config
	session *pong.Session
	panel   *oled.Framebuffer
	knob    *pot.Knob
	log     *pong.MatchLog
	audio   EventPlayer

	on, off color.RGBA
	screen  *ebiten.Image // panel-sized, created on first Draw
	pix     []byte

	flash      *gween.Tween
	flashLevel float32

	paused bool
	status string
	width  int
	height int
}

// New builds the emulator and runs Setup on the session. audio may be nil.
func New(cfg config.Config, audio EventPlayer) (*Game, error) {
	g := &Game{
		cfg:    cfg,
		panel:  oled.NewPanel(),
		knob:   pot.NewKnob(pong.PotChannel),
		log:    pong.NewMatchLog(false),
		audio:  audio,
		width:  2*bezel + pong.Width*cfg.Display.Scale,
		height: 2*bezel + pong.Height*cfg.Display.Scale + statusHeight,
	}
	g.on, g.off = cfg.Colors()
	g.pix = make([]byte, pong.Width*pong.Height*4)

	seed := cfg.AI.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.session = pong.NewSession(g.panel, g.knob,
		pong.WithRand(rand.New(rand.NewSource(seed))), // #nosec G404 -- game AI
		pong.WithMatchLog(g.log),
		pong.WithListener(g.onEvent),
	)
	if err := g.session.Setup(cfg.PanelConfig()); err != nil {
		return nil, fmt.Errorf("emulator setup: %w", err)
	}
	log.Infof("Emulator ready: %dx%d window, seed %d", g.width, g.height, seed)
	return g, nil
}

func (g *Game) Update() error {
	if err := g.handleInput(); err != nil {
		return err
	}
	g.updateFlash(1 / float32(ebiten.TPS()))
	if g.paused {
		return nil
	}
	return g.tick()
}

// tick runs one session tick and refreshes the status line.
func (g *Game) tick() error {
	if _, err := g.session.Tick(); err != nil {
		return fmt.Errorf("emulator tick: %w", err)
	}
	g.status = fmt.Sprintf("%d - %d  pot %4d  %s",
		g.session.Player.Score.Value(), g.session.CPU.Score.Value(), g.knob.Value(), g.session.State())
	return nil
}

// handleInput maps keys and the mouse onto the knob and the window controls.
func (g *Game) handleInput() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copyReport()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.cfg.Input.Mouse = !g.cfg.Input.Mouse
	}

	if g.cfg.Input.Mouse {
		_, my := ebiten.CursorPosition()
		g.knobFromCursor(my)
		return nil
	}
	up := ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW)
	down := ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS)
	g.knobFromKeys(up, down)
	return nil
}

// knobFromKeys turns the knob one step per tick while a key is held. Up
// lowers the sample so the paddle rises.
func (g *Game) knobFromKeys(up, down bool) {
	switch {
	case up && !down:
		g.knob.Turn(-g.cfg.Input.KeyStep)
	case down && !up:
		g.knob.Turn(g.cfg.Input.KeyStep)
	}
}

// knobFromCursor sets the knob so the paddle's top edge follows the cursor
// row over the panel.
func (g *Game) knobFromCursor(y int) {
	scale := g.cfg.Display.Scale
	row := (y - bezel) / scale
	g.knob.SetFraction(float64(row) / float64(pong.PaddleTrack))
}

func (g *Game) onEvent(e pong.Event) {
	if e.Kind == pong.EventPoint {
		g.flash = gween.New(1, 0, 0.35, ease.OutQuad)
	}
	if e.Kind == pong.EventGameOver {
		log.Infof("Game over at tick %d: player %d, cpu %d", e.Tick, e.PlayerScore, e.CPUScore)
	}
	if g.audio != nil {
		g.audio.OnEvent(e)
	}
}

func (g *Game) updateFlash(dt float32) {
	if g.flash == nil {
		g.flashLevel = 0
		return
	}
	v, done := g.flash.Update(dt)
	g.flashLevel = v
	if done {
		g.flash = nil
		g.flashLevel = 0
	}
}

// copyReport puts the match log summary and the current frame on the
// clipboard.
func (g *Game) copyReport() {
	text := g.log.Summary(g.session) + "\n" + g.log.Format() + "\n" + g.panel.String()
	if err := writeClipboard(text); err != nil {
		log.Warnf("Clipboard copy failed: %v", err)
		g.status = "clipboard unavailable"
		return
	}
	g.status = "report copied"
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.bezelColor())

	if g.screen == nil {
		g.screen = ebiten.NewImage(pong.Width, pong.Height)
	}
	g.panel.DrawInto(g.pix, g.on, g.off)
	g.screen.WritePixels(g.pix)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(g.cfg.Display.Scale), float64(g.cfg.Display.Scale))
	op.GeoM.Translate(bezel, bezel)
	screen.DrawImage(g.screen, op)

	line := g.status
	if g.paused {
		line += "  [paused]"
	}
	ebitenutil.DebugPrintAt(screen, line, bezel, 2*bezel+pong.Height*g.cfg.Display.Scale-statusHeight/2)
}

// bezelColor is dark grey, brightened toward the pixel colour while a
// point flash is running.
func (g *Game) bezelColor() color.RGBA {
	base := color.RGBA{R: 24, G: 24, B: 28, A: 255}
	lerp := func(a, b uint8) uint8 {
		return uint8(float32(a) + (float32(b)-float32(a))*g.flashLevel*0.5)
	}
	return color.RGBA{R: lerp(base.R, g.on.R), G: lerp(base.G, g.on.G), B: lerp(base.B, g.on.B), A: 255}
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// WindowSize returns the size the window should open at.
func (g *Game) WindowSize() (int, int) { return g.width, g.height }

// Session exposes the running session.
func (g *Game) Session() *pong.Session { return g.session }
