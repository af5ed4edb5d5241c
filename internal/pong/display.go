package pong

// Color is a monochrome pixel operation, numbered as SSD1306 drivers do.
type Color uint8

const (
	Black   Color = iota // pixel off
	White                // pixel on
	Inverse              // toggle
)

func (c Color) String() string {
	switch c {
	case Black:
		return "black"
	case White:
		return "white"
	case Inverse:
		return "inverse"
	default:
		return "unknown"
	}
}

// DisplayConfig is passed to Display.Begin.
type DisplayConfig struct {
	Address     uint8 // I2C address, 0x3C on most 128x32 modules
	ExternalVCC bool  // false: panel generates its own drive voltage
}

// DefaultDisplayConfig is the usual wiring for a 128x32 I2C module.
var DefaultDisplayConfig = DisplayConfig{Address: 0x3C}

// Display is the drawing capability the game needs from a panel driver.
// Drawing calls only touch an off-screen buffer; Display pushes it out.
type Display interface {
	Begin(cfg DisplayConfig) error
	Display() error
	ClearDisplay()
	FillRect(x, y, w, h int, c Color)
	SetCursor(x, y int)
	SetTextSize(n int)
	SetTextColor(c Color)
	Print(v any)
}

// TextMeasurer is implemented by displays that can report the pixel size of
// a string at a given text size. The renderer uses it to centre banners.
type TextMeasurer interface {
	TextBounds(s string, size int) (w, h int)
}
