package pong

// Banner text shown once the match is over.
const (
	WinText  = "Winner!"
	LoseText = "Loser!"
)

const (
	bannerTextSize = 2
	bannerPad      = 2
	dashLen        = 2
	dashGap        = 2
	scoreRow       = 0
)

// Renderer draws a session onto a Display. It holds no game state.
type Renderer struct {
	d Display
}

func NewRenderer(d Display) *Renderer {
	return &Renderer{d: d}
}

// Render clears the buffer, draws the full scene and flushes it. The scene is
// drawn every tick; after GameOver the result banner is laid over it.
func (r *Renderer) Render(s *Session) error {
	r.d.ClearDisplay()
	r.drawPaddles(s)
	r.drawScores(s)
	r.drawCenterLine()
	r.drawBall(s.Ball)
	if s.state == StateGameOver {
		r.drawBanner(s.Winner())
	}
	return r.d.Display()
}

func (r *Renderer) drawPaddles(s *Session) {
	r.d.FillRect(0, s.Player.Paddle.Position(), PaddleWidth, PaddleHeight, White)
	r.d.FillRect(Width-PaddleWidth, s.CPU.Paddle.Position(), PaddleWidth, PaddleHeight, White)
}

func (r *Renderer) drawScores(s *Session) {
	r.d.SetTextSize(1)
	r.d.SetTextColor(White)
	r.d.SetCursor(Width/4, scoreRow)
	r.d.Print(s.Player.Score.Value())
	r.d.SetCursor(3*Width/4, scoreRow)
	r.d.Print(s.CPU.Score.Value())
}

func (r *Renderer) drawCenterLine() {
	for y := 0; y < Height; y += dashLen + dashGap {
		r.d.FillRect(Width/2, y, 1, dashLen, White)
	}
}

func (r *Renderer) drawBall(b Ball) {
	r.d.FillRect(b.x, b.y, BallWidth, BallHeight, White)
}

// drawBanner blanks a box in the middle of the field and prints the result
// in it. Without a TextMeasurer the text goes at a fixed offset.
func (r *Renderer) drawBanner(winner Side) {
	msg := LoseText
	if winner == SidePlayer {
		msg = WinText
	}
	x, y := 10, 8
	if m, ok := r.d.(TextMeasurer); ok {
		w, h := m.TextBounds(msg, bannerTextSize)
		x, y = (Width-w)/2, (Height-h)/2
		r.d.FillRect(x-bannerPad, y-bannerPad, w+2*bannerPad, h+2*bannerPad, Black)
	}
	r.d.SetTextSize(bannerTextSize)
	r.d.SetTextColor(White)
	r.d.SetCursor(x, y)
	r.d.Print(msg)
}
