package pong

// Paddle is a vertical bat. Only its top edge moves; size is fixed.
// The zero value is a paddle at the top of the field.
type Paddle struct {
	position int
}

// SetPosition moves the paddle's top edge to pos. Positions outside
// [0, Height] are rejected and the previous position is kept.
//
// The bound is Height rather than Height-PaddleHeight, so up to eight rows of
// a paddle can hang below the panel.
func (p *Paddle) SetPosition(pos int) bool {
	if pos < 0 || pos > Height {
		return false
	}
	p.position = pos
	return true
}

func (p Paddle) Position() int { return p.position }
func (p Paddle) Width() int    { return PaddleWidth }
func (p Paddle) Height() int   { return PaddleHeight }
