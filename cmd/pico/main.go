//go:build tinygo

// Command pico is the firmware build: an SSD1306 128x32 panel on I2C0 and a
// potentiometer on ADC0.
//
//	tinygo flash -target=pico ./cmd/pico
package main

import (
	"machine"
	"time"

	"tinygo.org/x/drivers/ssd1306"

	"github.com/Garsondee/oled-pong/internal/oled"
	"github.com/Garsondee/oled-pong/internal/pong"
)

const (
	sdaPin    = machine.GP4
	sclPin    = machine.GP5
	potPin    = machine.ADC0
	frameTime = 33 * time.Millisecond
)

// adcInput reads the pot. The RP2040 ADC is 12-bit, scaled by machine to
// 16 bits; the game expects 10.
type adcInput struct {
	adc machine.ADC
}

func (a adcInput) Read(channel int) int {
	if channel != pong.PotChannel {
		return 0
	}
	return int(a.adc.Get() >> 6)
}

func main() {
	time.Sleep(500 * time.Millisecond) // let USB serial attach

	cfg := pong.DefaultDisplayConfig
	i2c := machine.I2C0
	if err := i2c.Configure(machine.I2CConfig{
		Frequency: 400 * machine.KHz,
		SDA:       sdaPin,
		SCL:       sclPin,
	}); err != nil {
		println("i2c configure failed:", err.Error())
		halt()
	}
	dev := ssd1306.NewI2C(i2c)
	vcc := ssd1306.SWITCHCAPVCC
	if cfg.ExternalVCC {
		vcc = ssd1306.EXTERNALVCC
	}
	dev.Configure(ssd1306.Config{
		Address:  uint16(cfg.Address),
		Width:    pong.Width,
		Height:   pong.Height,
		VccState: vcc,
	})

	machine.InitADC()
	adc := machine.ADC{Pin: potPin}
	adc.Configure(machine.ADCConfig{})

	panel := oled.NewPanel(oled.WithFlush(func(buf []byte) error {
		if err := dev.SetBuffer(buf); err != nil {
			return err
		}
		return dev.Display()
	}))
	session := pong.NewSession(panel, adcInput{adc: adc},
		pong.WithSeed(int64(adc.Get())^time.Now().UnixNano()),
		pong.WithListener(func(e pong.Event) {
			if e.Kind == pong.EventPoint || e.Kind == pong.EventGameOver {
				println("tick", e.Tick, e.Kind.String(), e.Side.String(), e.PlayerScore, "-", e.CPUScore)
			}
		}),
	)
	if err := session.Setup(cfg); err != nil {
		println("setup failed:", err.Error())
		halt()
	}

	for {
		start := time.Now()
		if _, err := session.Tick(); err != nil {
			println("tick failed:", err.Error())
		}
		if d := frameTime - time.Since(start); d > 0 {
			time.Sleep(d)
		}
	}
}

func halt() {
	for {
		time.Sleep(time.Second)
	}
}
