// Command pong-term runs the game inside a terminal, two panel rows per
// text row.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"fortio.org/cli"
	"fortio.org/log"
	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/oled-pong/internal/config"
	"github.com/Garsondee/oled-pong/internal/oled"
	"github.com/Garsondee/oled-pong/internal/pong"
	"github.com/Garsondee/oled-pong/internal/pot"
	"github.com/Garsondee/oled-pong/internal/sound"
	"github.com/Garsondee/oled-pong/internal/terminal"
)

func main() {
	os.Exit(Main())
}

func Main() int {
	cfgPath := flag.String("config", config.DefaultPath(), "settings `file` (TOML)")
	seed := flag.Int64("seed", 0, "AI random `seed`, overrides the settings file (0 keeps it)")
	mute := flag.Bool("mute", false, "disable sound")
	showLog := flag.Bool("log", false, "print the match log after quitting")
	cli.Main()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return log.FErrf("Error loading settings: %v", err)
	}
	if *seed != 0 {
		cfg.AI.Seed = *seed
	}
	if cfg.AI.Seed == 0 {
		cfg.AI.Seed = time.Now().UnixNano()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return log.FErrf("Error creating screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		return log.FErrf("Error initializing screen: %v", err)
	}

	panel := oled.NewPanel()
	knob := pot.NewKnob(pong.PotChannel)
	matchLog := pong.NewMatchLog(false)
	opts := []pong.Option{
		pong.WithRand(rand.New(rand.NewSource(cfg.AI.Seed))), // #nosec G404 -- game AI
		pong.WithMatchLog(matchLog),
	}
	if cfg.Sound.Enabled && !*mute {
		m := sound.NewManager(cfg.Sound.SampleRate, cfg.Sound.Volume)
		if err := m.Initialize(); err != nil {
			log.Warnf("Sound disabled: %v", err)
		} else {
			defer m.Close()
			opts = append(opts, pong.WithListener(m.OnEvent))
		}
	}
	session := pong.NewSession(panel, knob, opts...)
	if err := session.Setup(cfg.PanelConfig()); err != nil {
		screen.Fini()
		return log.FErrf("Error setting up panel: %v", err)
	}

	on, off := cfg.Colors()
	view := terminal.NewView(screen, panel, knob, cfg.Input.KeyStep, on, off)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	err = terminal.Run(ctx, view, session, cfg.Emulator.TPS)
	screen.Fini()
	if err != nil && ctx.Err() == nil {
		return log.FErrf("Error running game: %v", err)
	}
	if *showLog {
		fmt.Print(matchLog.Format())
	}
	fmt.Print(matchLog.Summary(session))
	return 0
}
