// Package config loads the presentation settings shared by the front ends.
// Game rules are fixed in package pong and are deliberately absent here.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/Garsondee/oled-pong/internal/pong"
)

// Config is the on-disk settings file.
type Config struct {
	Display  Display  `toml:"display"`
	Emulator Emulator `toml:"emulator"`
	Sound    Sound    `toml:"sound"`
	Input    Input    `toml:"input"`
	AI       AI       `toml:"ai"`
}

type Display struct {
	Address     int    `toml:"address"`      // I2C address of the panel
	ExternalVCC bool   `toml:"external_vcc"` // panel driven from an external supply
	Scale       int    `toml:"scale"`        // emulator pixels per panel pixel
	OnColor     string `toml:"on_color"`     // "#rrggbb"
	OffColor    string `toml:"off_color"`
}

type Emulator struct {
	TPS   int    `toml:"tps"` // game ticks per second
	Title string `toml:"title"`
}

type Sound struct {
	Enabled    bool    `toml:"enabled"`
	Volume     float64 `toml:"volume"` // 0..1
	SampleRate int     `toml:"sample_rate"`
}

type Input struct {
	KeyStep int  `toml:"key_step"` // raw ADC counts per key-repeat tick
	Mouse   bool `toml:"mouse"`    // follow the mouse instead of keys
}

type AI struct {
	Seed int64 `toml:"seed"` // 0 picks a time-based seed
}

// Default returns the settings used when no file exists.
func Default() Config {
	return Config{
		Display: Display{
			Address:  int(pong.DefaultDisplayConfig.Address),
			Scale:    6,
			OnColor:  "#9be7ff",
			OffColor: "#05070a",
		},
		Emulator: Emulator{TPS: 30, Title: "OLED Pong"},
		Sound:    Sound{Enabled: true, Volume: 0.4, SampleRate: 44100},
		Input:    Input{KeyStep: 48},
	}
}

// DefaultPath is $XDG_CONFIG_HOME/oled-pong/config.toml or the home
// directory equivalent.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "oled-pong.toml"
	}
	return filepath.Join(dir, "oled-pong", "config.toml")
}

// Load reads path on top of Default. A missing file is not an error.
// Unknown keys are reported so typos do not silently fall back to defaults.
func Load(path string) (Config, error) {
	c := Default()
	md, err := toml.DecodeFile(path, &c)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	if und := md.Undecoded(); len(und) > 0 {
		keys := make([]string, len(und))
		for i, k := range und {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

// Validate checks ranges and colour syntax.
func (c Config) Validate() error {
	if c.Display.Address < 0 || c.Display.Address > 0x7F {
		return fmt.Errorf("display.address 0x%X is not a 7-bit I2C address", c.Display.Address)
	}
	if c.Display.Scale < 1 || c.Display.Scale > 32 {
		return fmt.Errorf("display.scale %d out of range [1,32]", c.Display.Scale)
	}
	if _, err := ParseColor(c.Display.OnColor); err != nil {
		return fmt.Errorf("display.on_color: %w", err)
	}
	if _, err := ParseColor(c.Display.OffColor); err != nil {
		return fmt.Errorf("display.off_color: %w", err)
	}
	if c.Emulator.TPS < 1 || c.Emulator.TPS > 240 {
		return fmt.Errorf("emulator.tps %d out of range [1,240]", c.Emulator.TPS)
	}
	if c.Sound.Volume < 0 || c.Sound.Volume > 1 {
		return fmt.Errorf("sound.volume %.2f out of range [0,1]", c.Sound.Volume)
	}
	if c.Sound.SampleRate < 8000 {
		return fmt.Errorf("sound.sample_rate %d too low", c.Sound.SampleRate)
	}
	if c.Input.KeyStep < 1 || c.Input.KeyStep > pong.SampleMax {
		return fmt.Errorf("input.key_step %d out of range [1,%d]", c.Input.KeyStep, pong.SampleMax)
	}
	return nil
}

// Write encodes c as TOML.
func (c Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// Save writes c to path, creating parent directories.
func (c Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("config create: %w", err)
	}
	if err := c.Write(f); err != nil {
		f.Close()
		return fmt.Errorf("config encode: %w", err)
	}
	return f.Close()
}

// PanelConfig is the pong.DisplayConfig passed to Display.Begin.
func (c Config) PanelConfig() pong.DisplayConfig {
	return pong.DisplayConfig{Address: uint8(c.Display.Address), ExternalVCC: c.Display.ExternalVCC}
}

// Colors returns the parsed on and off pixel colours. Call after Validate.
func (c Config) Colors() (on, off color.RGBA) {
	on, _ = ParseColor(c.Display.OnColor)
	off, _ = ParseColor(c.Display.OffColor)
	return on, off
}

// ParseColor parses "#rrggbb" into an opaque colour.
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("colour %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("colour %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF}, nil
}
