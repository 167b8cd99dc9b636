package pipeline

import (
	"sort"
	"time"
)

// MaxStreak returns the longest run of consecutive calendar days in days.
// Input must be date-only values without duplicates, in any order.
func MaxStreak(days []time.Time) int {
	if len(days) == 0 {
		return 0
	}

	sorted := make([]time.Time, len(days))
	copy(sorted, days)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	best, run := 1, 1
	for i := 1; i < len(sorted); i++ {
		if daysBetween(sorted[i-1], sorted[i]) == 1 {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
	}
	return best
}

func daysBetween(a, b time.Time) int {
	return int(dayOf(b).Sub(dayOf(a)).Hours() / 24)
}

// dateSet collects distinct activity dates for streak computation.
type dateSet map[time.Time]struct{}

func (s dateSet) add(t time.Time) {
	s[dayOf(t)] = struct{}{}
}

func (s dateSet) streak() int {
	days := make([]time.Time, 0, len(s))
	for d := range s {
		days = append(days, d)
	}
	return MaxStreak(days)
}
