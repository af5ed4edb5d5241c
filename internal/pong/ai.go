package pong

// Rand is the slice of math/rand the AI needs. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// AITarget picks where the CPU paddle's top edge should go this tick: the
// ball's row shifted up or down by 0..3 pixels at random. The result is not
// range-checked; Paddle.SetPosition rejects anything off the field.
func AITarget(b Ball, rng Rand) int {
	dir := 1
	if rng.Intn(2) == 0 {
		dir = -1
	}
	return b.y + dir*rng.Intn(aiMaxJitter+1)
}
