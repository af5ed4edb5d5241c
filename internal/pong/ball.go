package pong

// Ball is a 2x2 square tracked by its top-left corner. Its position is
// allowed to leave the field for a tick; the collision pass turns it around
// rather than clamping it.
type Ball struct {
	x, y   int
	hSpeed int
	vSpeed int
}

// NewBall returns a ball at (x, y) moving right and down.
func NewBall(x, y int) Ball {
	return Ball{x: x, y: y, hSpeed: ballSpeedX, vSpeed: ballSpeedY}
}

// Update advances the ball by one tick of velocity. No bounds checks.
func (b *Ball) Update() {
	b.x += b.hSpeed
	b.y += b.vSpeed
}

// Reset moves the ball to (x, y), but only while its current position lies
// inside [0,Width]x[0,Height]. A ball that is already off the field stays
// where it is and Reset returns false.
func (b *Ball) Reset(x, y int) bool {
	if !b.onField() {
		return false
	}
	b.x = x
	b.y = y
	return true
}

func (b *Ball) onField() bool {
	return b.x >= 0 && b.x <= Width && b.y >= 0 && b.y <= Height
}

func (b *Ball) FlipHorizontalDir() { b.hSpeed = -b.hSpeed }
func (b *Ball) FlipVerticalDir()   { b.vSpeed = -b.vSpeed }

// HorizontalDir returns the signed horizontal speed; only its sign matters
// to callers.
func (b Ball) HorizontalDir() int { return b.hSpeed }
func (b Ball) VerticalDir() int   { return b.vSpeed }

func (b Ball) X() int      { return b.x }
func (b Ball) Y() int      { return b.y }
func (b Ball) Width() int  { return BallWidth }
func (b Ball) Height() int { return BallHeight }
