// Command pong runs the game in a desktop window that imitates the 128x32
// OLED panel. The potentiometer is emulated with the arrow keys or the mouse.
package main

import (
	"flag"
	"os"

	"fortio.org/cli"
	"fortio.org/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/oled-pong/internal/config"
	"github.com/Garsondee/oled-pong/internal/emulator"
	"github.com/Garsondee/oled-pong/internal/sound"
)

func main() {
	os.Exit(Main())
}

func Main() int {
	cfgPath := flag.String("config", config.DefaultPath(), "settings `file` (TOML)")
	dump := flag.Bool("dump-config", false, "print the effective settings and exit")
	seed := flag.Int64("seed", 0, "AI random `seed`, overrides the settings file (0 keeps it)")
	mute := flag.Bool("mute", false, "disable sound")
	cli.Main()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return log.FErrf("Error loading settings: %v", err)
	}
	if *seed != 0 {
		cfg.AI.Seed = *seed
	}
	if *mute {
		cfg.Sound.Enabled = false
	}
	if *dump {
		if err := cfg.Write(os.Stdout); err != nil {
			return log.FErrf("Error writing settings: %v", err)
		}
		return 0
	}

	var audio emulator.EventPlayer
	if cfg.Sound.Enabled {
		m := sound.NewManager(cfg.Sound.SampleRate, cfg.Sound.Volume)
		if err := m.Initialize(); err != nil {
			log.Warnf("Sound disabled: %v", err)
		} else {
			defer m.Close()
			audio = m
		}
	}

	g, err := emulator.New(cfg, audio)
	if err != nil {
		return log.FErrf("Error starting emulator: %v", err)
	}
	w, h := g.WindowSize()
	ebiten.SetWindowTitle(cfg.Emulator.Title)
	ebiten.SetWindowSize(w, h)
	ebiten.SetTPS(cfg.Emulator.TPS)
	if err := ebiten.RunGame(g); err != nil {
		return log.FErrf("Error running game: %v", err)
	}
	log.Infof("Bye after %d ticks", g.Session().Ticks())
	return 0
}
