package blocks

import (
	"fmt"
	"time"
)

// PlayLevel maps a score to the interval between automatic steps. Scores at
// or above Thresholds[i] select tier i+1, so Speeds and FastDrop need one
// entry more than Thresholds.
//
// StartTier offsets every lookup. Fixed pins the tier to StartTier.
type PlayLevel struct {
	Thresholds []int
	Speeds     []time.Duration
	FastDrop   []time.Duration
	StartTier  int
	Fixed      bool
}

// BasicPlayLevel returns the standard five-tier table.
func BasicPlayLevel() PlayLevel {
	return PlayLevel{
		Thresholds: []int{5, 12, 20, 32},
		Speeds:     msDurations(800, 600, 400, 200, 100),
		FastDrop:   msDurations(80, 60, 40, 20, 5),
	}
}

func msDurations(ms ...int) []time.Duration {
	out := make([]time.Duration, len(ms))
	for i, v := range ms {
		out[i] = time.Duration(v) * time.Millisecond
	}
	return out
}

// Validate checks the table shape.
func (l PlayLevel) Validate() error {
	n := len(l.Thresholds) + 1
	if len(l.Speeds) != n || len(l.FastDrop) != n {
		return fmt.Errorf("play level: need %d speeds and fast drops, got %d and %d",
			n, len(l.Speeds), len(l.FastDrop))
	}
	for i := 1; i < len(l.Thresholds); i++ {
		if l.Thresholds[i] <= l.Thresholds[i-1] {
			return fmt.Errorf("play level: thresholds must increase (index %d)", i)
		}
	}
	for i := range l.Speeds {
		if l.Speeds[i] <= 0 || l.FastDrop[i] <= 0 {
			return fmt.Errorf("play level: tier %d has a non-positive interval", i)
		}
	}
	return nil
}

// Tier returns the zero-based speed tier for score.
func (l PlayLevel) Tier(score int) int {
	tier := l.StartTier
	if !l.Fixed {
		for _, t := range l.Thresholds {
			if score < t {
				break
			}
			tier++
		}
	}
	last := len(l.Speeds) - 1
	switch {
	case tier > last:
		return last
	case tier < 0:
		return 0
	}
	return tier
}

// Interval returns the normal fall interval for score.
func (l PlayLevel) Interval(score int) time.Duration {
	return l.Speeds[l.Tier(score)]
}

// FastDropInterval returns the fall interval while the player holds drop.
func (l PlayLevel) FastDropInterval(score int) time.Duration {
	return l.FastDrop[l.Tier(score)]
}
