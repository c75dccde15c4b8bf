package anim

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ErrInvalidInterval is returned for selectors that cannot be parsed.
	ErrInvalidInterval = errors.New("anim: invalid interval")

	intervalPattern = regexp.MustCompile(`^(\d+)-(\d+)$`)
)

// Interval is a run of zero-based indices produced from a 1-based
// selector such as 4, "1-8" or "7-2".
type Interval struct {
	First int
	Last  int
}

// Step is 1 for ascending intervals and -1 for descending ones.
func (iv Interval) Step() int {
	if iv.Last < iv.First {
		return -1
	}
	return 1
}

// Len returns the number of indices in the interval.
func (iv Interval) Len() int {
	if iv.Last < iv.First {
		return iv.First - iv.Last + 1
	}
	return iv.Last - iv.First + 1
}

// Within reports whether every index of the interval lies in [0, n).
// Intervals are contiguous, so checking both ends is enough.
func (iv Interval) Within(n int) bool {
	return iv.First >= 0 && iv.Last >= 0 && iv.First < n && iv.Last < n
}

// Indices expands the interval in selector order.
func (iv Interval) Indices() []int {
	out := make([]int, 0, iv.Len())
	step := iv.Step()
	for i := iv.First; ; i += step {
		out = append(out, i)
		if i == iv.Last {
			break
		}
	}
	return out
}

// ParseInterval parses a selector. Ints select a single 1-based index;
// strings may be a single number or an inclusive "a-b" range.
func ParseInterval(sel any) (Interval, error) {
	switch v := sel.(type) {
	case int:
		return singleInterval(v)
	case int64:
		return singleInterval(int(v))
	case uint:
		return singleInterval(int(v))
	case string:
		return parseIntervalString(v)
	default:
		return Interval{}, fmt.Errorf("%w: unsupported selector type %T", ErrInvalidInterval, sel)
	}
}

func singleInterval(n int) (Interval, error) {
	if n < 1 {
		return Interval{}, fmt.Errorf("%w: index %d must be >= 1", ErrInvalidInterval, n)
	}
	return Interval{First: n - 1, Last: n - 1}, nil
}

func parseIntervalString(s string) (Interval, error) {
	clean := strings.Join(strings.Fields(s), "")
	if clean == "" {
		return Interval{}, fmt.Errorf("%w: empty selector", ErrInvalidInterval)
	}
	if n, err := strconv.Atoi(clean); err == nil {
		return singleInterval(n)
	}

	m := intervalPattern.FindStringSubmatch(clean)
	if m == nil {
		return Interval{}, fmt.Errorf("%w: could not parse %q", ErrInvalidInterval, s)
	}
	lo, err := strconv.Atoi(m[1])
	if err != nil {
		return Interval{}, fmt.Errorf("%w: %q: %v", ErrInvalidInterval, s, err)
	}
	hi, err := strconv.Atoi(m[2])
	if err != nil {
		return Interval{}, fmt.Errorf("%w: %q: %v", ErrInvalidInterval, s, err)
	}
	if lo < 1 || hi < 1 {
		return Interval{}, fmt.Errorf("%w: %q uses 1-based indices", ErrInvalidInterval, s)
	}
	return Interval{First: lo - 1, Last: hi - 1}, nil
}

// ExpandSelectors parses each selector and concatenates the indices.
// Every index must be below n.
func ExpandSelectors(n int, sels ...any) ([]int, error) {
	var out []int
	for _, sel := range sels {
		iv, err := ParseInterval(sel)
		if err != nil {
			return nil, err
		}
		if !iv.Within(n) {
			return nil, fmt.Errorf("%w: %v selects index %d of %d", ErrFrameOutOfRange, sel, max(iv.First, iv.Last)+1, n)
		}
		out = append(out, iv.Indices()...)
	}
	return out, nil
}
