package pong

import "testing"

func TestBall_UpdateIsLinear(t *testing.T) {
	cases := []Ball{
		{x: 64, y: 16, hSpeed: 4, vSpeed: 2},
		{x: 0, y: 0, hSpeed: -4, vSpeed: -2},
		{x: -4, y: 40, hSpeed: 4, vSpeed: -2},
		{x: 200, y: -9, hSpeed: -4, vSpeed: 2},
	}
	for _, b := range cases {
		before := b
		b.Update()
		if b.X() != before.x+before.hSpeed || b.Y() != before.y+before.vSpeed {
			t.Fatalf("from %+v expected (%d,%d), got (%d,%d)", before,
				before.x+before.hSpeed, before.y+before.vSpeed, b.X(), b.Y())
		}
	}
}

func TestBall_NewBallHeadsRightAndDown(t *testing.T) {
	b := NewBall(Width/2, Height/2)
	if b.X() != 64 || b.Y() != 16 {
		t.Fatalf("expected (64,16), got (%d,%d)", b.X(), b.Y())
	}
	if b.HorizontalDir() != 4 || b.VerticalDir() != 2 {
		t.Fatalf("expected speeds (4,2), got (%d,%d)", b.HorizontalDir(), b.VerticalDir())
	}
	if b.Width() != 2 || b.Height() != 2 {
		t.Fatalf("expected 2x2 ball, got %dx%d", b.Width(), b.Height())
	}
}

func TestBall_Flips(t *testing.T) {
	b := NewBall(10, 10)
	b.FlipHorizontalDir()
	b.FlipVerticalDir()
	if b.HorizontalDir() != -4 || b.VerticalDir() != -2 {
		t.Fatalf("expected (-4,-2), got (%d,%d)", b.HorizontalDir(), b.VerticalDir())
	}
	b.FlipHorizontalDir()
	if b.HorizontalDir() != 4 {
		t.Fatalf("double flip should restore +4, got %d", b.HorizontalDir())
	}
}

func TestBall_ResetGuardsOnCurrentPosition(t *testing.T) {
	tests := []struct {
		name  string
		x, y  int
		apply bool
	}{
		{"inside", 50, 10, true},
		{"right edge inclusive", Width, Height, true},
		{"origin", 0, 0, true},
		{"left of field", -4, 16, false},
		{"past right edge", Width + 2, 16, false},
		{"above field", 50, -2, false},
		{"below field", 50, Height + 2, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := Ball{x: tc.x, y: tc.y, hSpeed: 4, vSpeed: 2}
			got := b.Reset(96, 16)
			if got != tc.apply {
				t.Fatalf("expected reset applied=%v, got %v", tc.apply, got)
			}
			wantX, wantY := tc.x, tc.y
			if tc.apply {
				wantX, wantY = 96, 16
			}
			if b.X() != wantX || b.Y() != wantY {
				t.Fatalf("expected (%d,%d), got (%d,%d)", wantX, wantY, b.X(), b.Y())
			}
		})
	}
}
