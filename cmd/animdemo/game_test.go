package main

import "testing"

func TestDirectionFor(t *testing.T) {
	cases := []struct {
		name                  string
		up, down, left, right bool
		last                  direction
		want                  direction
		moving                bool
	}{
		{"idle_keeps_last", false, false, false, false, dirLeft, dirLeft, false},
		{"up", true, false, false, false, dirDown, dirUp, true},
		{"right_wins", true, true, false, true, dirDown, dirRight, true},
		{"down_over_up", true, true, false, false, dirLeft, dirDown, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, moving := directionFor(c.up, c.down, c.left, c.right, c.last)
			if got != c.want || moving != c.moving {
				t.Fatalf("expected %s moving=%v, got %s moving=%v", c.want, c.moving, got, moving)
			}
		})
	}
}
