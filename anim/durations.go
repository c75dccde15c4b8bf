package anim

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

var (
	// ErrInvalidDuration is returned for zero or negative frame durations.
	ErrInvalidDuration = errors.New("anim: frame duration must be positive")
	// ErrDurationCount is returned when durations don't line up with the frames.
	ErrDurationCount = errors.New("anim: duration count does not match frame count")
)

// Durations describes how long each frame of an animation is shown.
type Durations interface {
	// Resolve returns exactly n per-frame durations.
	Resolve(n int) ([]time.Duration, error)
}

// Uniform shows every frame for the same duration.
type Uniform time.Duration

// Resolve implements Durations.
func (u Uniform) Resolve(n int) ([]time.Duration, error) {
	d := time.Duration(u)
	if d <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDuration, d)
	}
	out := make([]time.Duration, n)
	for i := range out {
		out[i] = d
	}
	return out, nil
}

// PerFrame lists the duration of each frame individually.
type PerFrame []time.Duration

// Resolve implements Durations.
func (p PerFrame) Resolve(n int) ([]time.Duration, error) {
	if len(p) != n {
		return nil, fmt.Errorf("%w: %d durations for %d frames", ErrDurationCount, len(p), n)
	}
	out := make([]time.Duration, n)
	for i, d := range p {
		if d <= 0 {
			return nil, fmt.Errorf("%w: frame %d has %v", ErrInvalidDuration, i+1, d)
		}
		out[i] = d
	}
	return out, nil
}

// Ranged assigns durations to frame selectors, e.g. {"1": time.Second, "2-7": 100 * time.Millisecond}.
// Every frame must be covered by exactly one selector.
type Ranged map[string]time.Duration

// Resolve implements Durations.
func (r Ranged) Resolve(n int) ([]time.Duration, error) {
	out := make([]time.Duration, n)
	seen := make([]bool, n)

	// Sorted keys keep error messages stable.
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		d := r[key]
		if d <= 0 {
			return nil, fmt.Errorf("%w: %q has %v", ErrInvalidDuration, key, d)
		}
		iv, err := ParseInterval(key)
		if err != nil {
			return nil, err
		}
		if !iv.Within(n) {
			return nil, fmt.Errorf("%w: %q selects frame %d of %d", ErrFrameOutOfRange, key, max(iv.First, iv.Last)+1, n)
		}
		for _, i := range iv.Indices() {
			if seen[i] {
				return nil, fmt.Errorf("%w: frame %d assigned twice", ErrDurationCount, i+1)
			}
			seen[i] = true
			out[i] = d
		}
	}
	for i, ok := range seen {
		if !ok {
			return nil, fmt.Errorf("%w: frame %d has no duration", ErrDurationCount, i+1)
		}
	}
	return out, nil
}
