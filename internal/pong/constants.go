package pong

// Playfield geometry. The field matches a 128x32 SSD1306 panel one pixel to
// one unit, origin top-left.
const (
	Width    = 128
	Height   = 32
	MaxScore = 4
)

// Fixed object dimensions.
const (
	PaddleWidth  = 2
	PaddleHeight = 9
	BallWidth    = 2
	BallHeight   = 2
)

// Ball speeds in pixels per tick.
const (
	ballSpeedX = 4
	ballSpeedY = 2
)

// Hit tolerance above each paddle's top edge. The player gets a more
// generous margin than the CPU.
const (
	playerHitMargin = 4
	cpuHitMargin    = 2
)

// AI jitter: the CPU aims up to aiMaxJitter pixels above or below the ball.
const aiMaxJitter = 3

// Analog input range and the top-edge range a paddle can actually use.
const (
	SampleMax   = 1023
	PaddleTrack = Height - PaddleHeight // 23
)

// Channel the potentiometer is wired to.
const PotChannel = 0
