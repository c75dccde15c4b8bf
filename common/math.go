package common

import "github.com/fogleman/ease"

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// PingPong maps t onto 0..1..0 with a period of 1.
func PingPong(t float64) float64 {
	t -= float64(int(t))
	if t < 0 {
		t++
	}
	if t > 0.5 {
		return 2 - 2*t
	}
	return 2 * t
}

// EaseBetween moves from a to b and back once per period seconds,
// easing in and out at both ends.
func EaseBetween(a, b, elapsed, period float64) float64 {
	if period <= 0 {
		return a
	}
	return Lerp(a, b, ease.InOutQuad(PingPong(elapsed/period)))
}
